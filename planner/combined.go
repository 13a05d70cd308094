package planner

import (
	"log/slog"
	"sort"

	"github.com/theoremus-urban-solutions/transit-planner/graph"
)

// combinedFinder is the bounded multi-leg search
type combinedFinder struct {
	classify     Classifier
	maxStates    int
	maxTransfers int
	maxRoutes    int
}

type searchState struct {
	stop      graph.StopID
	service   string // "" before the first edge
	transfers int
	path      *pathNode
}

type stateKey struct {
	stop    graph.StopID
	service string
}

// revisits reports whether the state's current stop already appears
// earlier on its path. Parents were checked when they were dequeued, so
// only the newest stop can close a cycle.
func (s searchState) revisits(source graph.StopID) bool {
	if s.path == nil {
		return false
	}
	if s.stop == source {
		return true
	}
	for n := s.path.parent; n != nil; n = n.parent {
		if n.edge.To == s.stop {
			return true
		}
	}
	return false
}

// search explores (stop, last service) states breadth first and returns the
// complete paths reached before the queue drained or the state cap hit
func (f combinedFinder) search(g *graph.TransitGraph, source, dest graph.StopID) [][]graph.Edge {
	var found [][]graph.Edge
	best := map[stateKey]int{}
	queue := []searchState{{stop: source}}
	dequeued := 0
	head := 0
	for ; head < len(queue) && dequeued < f.maxStates; head++ {
		cur := queue[head]
		queue[head] = searchState{}
		dequeued++

		if cur.transfers > f.maxTransfers {
			continue
		}
		key := stateKey{stop: cur.stop, service: cur.service}
		if t, ok := best[key]; ok && t < cur.transfers {
			continue
		}
		if cur.revisits(source) {
			continue
		}
		if cur.stop == dest {
			if cur.path != nil {
				found = append(found, cur.path.edges())
			}
			continue
		}
		best[key] = cur.transfers

		for _, e := range g.Neighbors(cur.stop) {
			transfers := cur.transfers
			if cur.service != "" && cur.service != e.Service {
				transfers++
			}
			queue = append(queue, searchState{
				stop:      e.To,
				service:   e.Service,
				transfers: transfers,
				path:      cur.path.push(e),
			})
		}
		// drop the consumed prefix now and then so the backing array can shrink
		if head > 4096 && head*2 > len(queue) {
			queue = append([]searchState(nil), queue[head+1:]...)
			head = -1
		}
	}
	slog.Debug("combined search finished",
		"dequeued", dequeued, "pending", len(queue)-head, "paths", len(found),
		"capped", dequeued >= f.maxStates)
	return found
}

// find runs the search, then dedups and ranks the candidates
func (f combinedFinder) find(g *graph.TransitGraph, source, dest graph.StopID) []candidate {
	paths := f.search(g, source, dest)
	cands := make([]candidate, 0, len(paths))
	for _, p := range paths {
		c := newCandidate(source, p, f.classify)
		if c.transfers() == 0 {
			continue
		}
		cands = append(cands, c)
	}
	return rankCandidates(dedupCandidates(cands), f.maxRoutes)
}

// dedupCandidates keeps the fewest-edges candidate per leg signature, in
// order of first appearance of each signature
func dedupCandidates(cands []candidate) []candidate {
	index := map[string]int{}
	out := make([]candidate, 0, len(cands))
	for _, c := range cands {
		sig := c.signature()
		if i, ok := index[sig]; ok {
			if len(c.edges) < len(out[i].edges) {
				out[i] = c
			}
			continue
		}
		index[sig] = len(out)
		out = append(out, c)
	}
	return out
}

// rankCandidates orders metro routes first, then fewer legs, then fewer
// edges, and truncates to limit
func rankCandidates(cands []candidate, limit int) []candidate {
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.metro != b.metro {
			return a.metro
		}
		if len(a.legs) != len(b.legs) {
			return len(a.legs) < len(b.legs)
		}
		return len(a.edges) < len(b.edges)
	})
	if limit > 0 && len(cands) > limit {
		cands = cands[:limit]
	}
	return cands
}
