package graph

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownStop is returned by AddEdge when an endpoint is not registered
var ErrUnknownStop = errors.New("unknown stop")

// TransitGraph stores stops and their outgoing edges in insertion order.
// It is not safe for concurrent mutation; build it fully before sharing.
type TransitGraph struct {
	stops  []Stop
	out    [][]Edge
	in     [][]Edge
	byName map[string]StopID
	edges  int
}

// New creates an empty graph
func New() *TransitGraph {
	return &TransitGraph{byName: map[string]StopID{}}
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// AddStop registers a stop, indexes its lowercase name and returns its id.
// A later stop with the same name takes over the name index.
func (g *TransitGraph) AddStop(s Stop) StopID {
	id := StopID(len(g.stops))
	s.ID = id
	g.stops = append(g.stops, s)
	g.out = append(g.out, nil)
	g.in = append(g.in, nil)
	g.byName[nameKey(s.Name)] = id
	return id
}

// AddEdge appends a directed edge to from's list
func (g *TransitGraph) AddEdge(from, to StopID, cost, distance float64, mode Mode, service string) error {
	if !g.valid(from) || !g.valid(to) {
		return fmt.Errorf("edge %d->%d on %q: %w", from, to, service, ErrUnknownStop)
	}
	e := Edge{From: from, To: to, Service: service, Mode: mode, Cost: cost, Distance: distance}
	g.out[from] = append(g.out[from], e)
	g.in[to] = append(g.in[to], e)
	g.edges++
	return nil
}

func (g *TransitGraph) valid(id StopID) bool {
	return id >= 0 && int(id) < len(g.stops)
}

// Neighbors returns the outgoing edges of a stop, or nil
func (g *TransitGraph) Neighbors(id StopID) []Edge {
	if !g.valid(id) {
		return nil
	}
	return g.out[id]
}

// Inbound returns the edges arriving at a stop, or nil
func (g *TransitGraph) Inbound(id StopID) []Edge {
	if !g.valid(id) {
		return nil
	}
	return g.in[id]
}

// EdgesBetween returns every edge from one stop to another
func (g *TransitGraph) EdgesBetween(from, to StopID) []Edge {
	var res []Edge
	for _, e := range g.Neighbors(from) {
		if e.To == to {
			res = append(res, e)
		}
	}
	return res
}

// StopID looks a stop up by name, ignoring case
func (g *TransitGraph) StopID(name string) (StopID, bool) {
	id, ok := g.byName[nameKey(name)]
	if !ok {
		return NoStop, false
	}
	return id, true
}

// Stop returns the stop with the given id
func (g *TransitGraph) Stop(id StopID) (Stop, bool) {
	if !g.valid(id) {
		return Stop{}, false
	}
	return g.stops[id], true
}

// StopName returns the display name of a stop, or "" for unknown ids
func (g *TransitGraph) StopName(id StopID) string {
	s, _ := g.Stop(id)
	return s.Name
}

// Stops returns every stop in id order
func (g *TransitGraph) Stops() []Stop {
	return append([]Stop(nil), g.stops...)
}

func (g *TransitGraph) StopCount() int { return len(g.stops) }

func (g *TransitGraph) EdgeCount() int { return g.edges }

// Services returns the sorted distinct service names of the graph
func (g *TransitGraph) Services() []string {
	seen := map[string]struct{}{}
	for _, edges := range g.out {
		for _, e := range edges {
			seen[e.Service] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for s := range seen {
		names = append(names, s)
	}
	sort.Strings(names)
	return names
}
