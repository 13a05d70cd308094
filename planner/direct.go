package planner

import (
	"fmt"
	"sort"

	"github.com/theoremus-urban-solutions/transit-planner/graph"
)

// directFinder finds zero-transfer routes
type directFinder struct {
	classify Classifier
}

// find returns one route per service that connects source to destination
// without a transfer, metro first, then fewer stops, then service name
func (f directFinder) find(g *graph.TransitGraph, source, dest graph.StopID) []DirectRoute {
	inbound := map[string]struct{}{}
	for _, e := range g.Inbound(dest) {
		inbound[e.Service] = struct{}{}
	}
	candidates := make([]string, 0)
	seen := map[string]struct{}{}
	for _, e := range g.Neighbors(source) {
		if _, ok := seen[e.Service]; ok {
			continue
		}
		seen[e.Service] = struct{}{}
		if _, ok := inbound[e.Service]; ok {
			candidates = append(candidates, e.Service)
		}
	}
	sort.Strings(candidates)

	routes := make([]DirectRoute, 0, len(candidates))
	for _, service := range candidates {
		path := servicePath(g, source, dest, service)
		if len(path) == 0 {
			continue
		}
		dist := 0.0
		for _, e := range path {
			dist += e.Distance
		}
		routes = append(routes, DirectRoute{
			Type:     f.classify.EdgeMode(path[0]),
			Name:     service,
			Stops:    len(path),
			Details:  fmt.Sprintf("%s (%d stops)", service, len(path)),
			Distance: dist,
		})
	}
	sort.SliceStable(routes, func(i, j int) bool {
		a, b := routes[i], routes[j]
		if a.Type != b.Type {
			return a.Type == graph.Metro
		}
		if a.Stops != b.Stops {
			return a.Stops < b.Stops
		}
		return a.Name < b.Name
	})
	return routes
}

// servicePath runs a BFS restricted to one service. It returns nil when the
// destination is unreachable or equal to the source.
func servicePath(g *graph.TransitGraph, source, dest graph.StopID, service string) []graph.Edge {
	return bfs(source, dest, func(id graph.StopID) []graph.Edge { return g.Neighbors(id) },
		func(e graph.Edge) bool { return e.Service == service })
}
