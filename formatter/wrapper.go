package formatter

import (
	"errors"
	"sort"
	"strings"

	"github.com/theoremus-urban-solutions/transit-planner/graph"
	"github.com/theoremus-urban-solutions/transit-planner/planner"
)

// WrapErrorResponse builds the response returned when a query fails.
// The message of a *planner.NotFoundError is passed through as is.
func WrapErrorResponse(source, destination string, err error) *planner.RouteResponse {
	msg := "internal error"
	var nf *planner.NotFoundError
	if errors.As(err, &nf) {
		msg = nf.Error()
	} else if err != nil {
		msg = err.Error()
	}
	return &planner.RouteResponse{
		Source:         source,
		Destination:    destination,
		Status:         planner.StatusError,
		Message:        msg,
		DirectRoutes:   []planner.DirectRoute{},
		CombinedRoutes: []planner.CombinedRoute{},
	}
}

// StopNames returns the stop names of a graph sorted case-insensitively,
// optionally keeping only names containing filter
func StopNames(g *graph.TransitGraph, filter string) []string {
	filter = strings.ToLower(strings.TrimSpace(filter))
	names := make([]string, 0, g.StopCount())
	for _, s := range g.Stops() {
		if filter != "" && !strings.Contains(strings.ToLower(s.Name), filter) {
			continue
		}
		names = append(names, s.Name)
	}
	sort.SliceStable(names, func(i, j int) bool {
		a, b := strings.ToLower(names[i]), strings.ToLower(names[j])
		if a != b {
			return a < b
		}
		return names[i] < names[j]
	})
	return names
}
