package planner

import (
	"github.com/theoremus-urban-solutions/transit-planner/graph"
)

// metroFinder composes source -> metro station -> metro station -> destination.
// Every station reachable from either endpoint is considered and the pair
// giving the fewest transfers, then fewest edges, wins.
type metroFinder struct {
	classify    Classifier
	searchLimit int
}

// feeder is a metro station together with the plain path linking it to an
// endpoint, in travel order
type feeder struct {
	station graph.StopID
	path    []graph.Edge
}

func (f metroFinder) isStation(g *graph.TransitGraph, id graph.StopID) bool {
	for _, e := range g.Neighbors(id) {
		if f.classify.isMetro(e) {
			return true
		}
	}
	for _, e := range g.Inbound(id) {
		if f.classify.isMetro(e) {
			return true
		}
	}
	return false
}

// stationsFrom lists metro stations reachable from start in BFS order.
// With reverse set the search follows inbound edges, yielding stations from
// which start can be reached; paths then run station -> start.
func (f metroFinder) stationsFrom(g *graph.TransitGraph, start graph.StopID, reverse bool) []feeder {
	type item struct {
		stop graph.StopID
		path *pathNode
	}
	var out []feeder
	visited := map[graph.StopID]struct{}{start: {}}
	queue := []item{{stop: start}}
	for head := 0; head < len(queue) && head < f.searchLimit; head++ {
		cur := queue[head]
		if f.isStation(g, cur.stop) {
			fd := feeder{station: cur.stop}
			if reverse {
				fd.path = cur.path.reversedEdges()
			} else {
				fd.path = cur.path.edges()
			}
			out = append(out, fd)
		}
		edges := g.Neighbors(cur.stop)
		if reverse {
			edges = g.Inbound(cur.stop)
		}
		for _, e := range edges {
			next := e.To
			if reverse {
				next = e.From
			}
			if _, ok := visited[next]; ok {
				continue
			}
			visited[next] = struct{}{}
			queue = append(queue, item{stop: next, path: cur.path.push(e)})
		}
	}
	return out
}

// metroTree runs one BFS over metro edges only from a station and returns
// the shortest path tree keyed by reached stop
func (f metroFinder) metroTree(g *graph.TransitGraph, from graph.StopID) map[graph.StopID]*pathNode {
	tree := map[graph.StopID]*pathNode{from: nil}
	queue := []graph.StopID{from}
	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		for _, e := range g.Neighbors(cur) {
			if !f.classify.isMetro(e) {
				continue
			}
			if _, ok := tree[e.To]; ok {
				continue
			}
			tree[e.To] = tree[cur].push(e)
			queue = append(queue, e.To)
		}
	}
	return tree
}

// find returns the best forced-metro route, or false when either endpoint
// has no metro access or no metro line joins the candidate stations
func (f metroFinder) find(g *graph.TransitGraph, source, dest graph.StopID) (candidate, bool) {
	starts := f.stationsFrom(g, source, false)
	if len(starts) == 0 {
		return candidate{}, false
	}
	ends := f.stationsFrom(g, dest, true)
	if len(ends) == 0 {
		return candidate{}, false
	}

	var best candidate
	found := false
	for _, a := range starts {
		tree := f.metroTree(g, a.station)
		for _, b := range ends {
			if a.station == b.station {
				continue
			}
			node, ok := tree[b.station]
			if !ok || node == nil {
				continue
			}
			middle := node.edges()
			full := make([]graph.Edge, 0, len(a.path)+len(middle)+len(b.path))
			full = append(full, a.path...)
			full = append(full, middle...)
			full = append(full, b.path...)
			if !simplePath(source, full) {
				continue
			}
			c := newCandidate(source, full, f.classify)
			if c.transfers() == 0 {
				// a single metro leg is already a direct route
				continue
			}
			if !found || c.transfers() < best.transfers() ||
				(c.transfers() == best.transfers() && len(c.edges) < len(best.edges)) {
				best, found = c, true
			}
		}
	}
	return best, found
}
