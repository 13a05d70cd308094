package planner

import "github.com/theoremus-urban-solutions/transit-planner/graph"

// pathNode is a persistent linked path; children share their parent's prefix
type pathNode struct {
	edge   graph.Edge
	parent *pathNode
	depth  int
}

func (n *pathNode) push(e graph.Edge) *pathNode {
	d := 1
	if n != nil {
		d = n.depth + 1
	}
	return &pathNode{edge: e, parent: n, depth: d}
}

// edges returns the path in travel order
func (n *pathNode) edges() []graph.Edge {
	if n == nil {
		return nil
	}
	out := make([]graph.Edge, n.depth)
	for cur := n; cur != nil; cur = cur.parent {
		out[cur.depth-1] = cur.edge
	}
	return out
}

// reversedEdges returns the path last pushed edge first. Paths grown
// backwards from a destination read in travel order this way.
func (n *pathNode) reversedEdges() []graph.Edge {
	if n == nil {
		return nil
	}
	out := make([]graph.Edge, 0, n.depth)
	for cur := n; cur != nil; cur = cur.parent {
		out = append(out, cur.edge)
	}
	return out
}

// bfs finds a fewest-edges path using only edges accepted by keep.
// A zero-length match (source == dest) is not a path.
func bfs(source, dest graph.StopID, next func(graph.StopID) []graph.Edge, keep func(graph.Edge) bool) []graph.Edge {
	if source == dest {
		return nil
	}
	type item struct {
		stop graph.StopID
		path *pathNode
	}
	visited := map[graph.StopID]struct{}{source: {}}
	queue := []item{{stop: source}}
	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		for _, e := range next(cur.stop) {
			if !keep(e) {
				continue
			}
			if _, ok := visited[e.To]; ok {
				continue
			}
			p := cur.path.push(e)
			if e.To == dest {
				return p.edges()
			}
			visited[e.To] = struct{}{}
			queue = append(queue, item{stop: e.To, path: p})
		}
	}
	return nil
}

func anyEdge(graph.Edge) bool { return true }

// simplePath reports whether a path starting at source never revisits a stop
func simplePath(source graph.StopID, path []graph.Edge) bool {
	seen := map[graph.StopID]struct{}{source: {}}
	for _, e := range path {
		if _, ok := seen[e.To]; ok {
			return false
		}
		seen[e.To] = struct{}{}
	}
	return true
}
