package planner

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/theoremus-urban-solutions/transit-planner/config"
	"github.com/theoremus-urban-solutions/transit-planner/graph"
)

// GraphSource hands out the current graph snapshot and its version
type GraphSource interface {
	Snapshot() (*graph.TransitGraph, uint64)
}

// RoutePlanner answers route queries against the snapshot of a GraphSource
type RoutePlanner struct {
	source   GraphSource
	direct   directFinder
	combined combinedFinder
	metro    metroFinder
}

// New creates a planner; zero limits fall back to the config defaults
func New(source GraphSource, cfg config.PlannerConfig) *RoutePlanner {
	if cfg.MaxStates <= 0 {
		cfg.MaxStates = config.DefaultMaxStates
	}
	if cfg.MaxTransfers <= 0 {
		cfg.MaxTransfers = config.DefaultMaxTransfers
	}
	if cfg.MaxCombinedRoutes <= 0 {
		cfg.MaxCombinedRoutes = config.DefaultMaxCombinedRoutes
	}
	if cfg.MetroSearchLimit <= 0 {
		cfg.MetroSearchLimit = config.DefaultMetroSearchLimit
	}
	if len(cfg.MetroKeywords) == 0 {
		cfg.MetroKeywords = config.DefaultMetroKeywords
	}
	c := Classifier{Keywords: cfg.MetroKeywords, TrustModeTags: cfg.TrustModeTags}
	return &RoutePlanner{
		source: source,
		direct: directFinder{classify: c},
		combined: combinedFinder{
			classify:     c,
			maxStates:    cfg.MaxStates,
			maxTransfers: cfg.MaxTransfers,
			maxRoutes:    cfg.MaxCombinedRoutes,
		},
		metro: metroFinder{classify: c, searchLimit: cfg.MetroSearchLimit},
	}
}

// FindBestRoute plans a trip between two stop names on the current snapshot
func (p *RoutePlanner) FindBestRoute(sourceName, destinationName string) (*RouteResponse, error) {
	g, _ := p.source.Snapshot()
	return p.FindOnGraph(g, sourceName, destinationName)
}

// FindOnGraph plans a trip on an explicit graph. Unknown names fail with a
// *NotFoundError; an empty result is not an error.
func (p *RoutePlanner) FindOnGraph(g *graph.TransitGraph, sourceName, destinationName string) (*RouteResponse, error) {
	src, okSrc := g.StopID(sourceName)
	dst, okDst := g.StopID(destinationName)
	if !okSrc || !okDst {
		return nil, &NotFoundError{
			Source:             sourceName,
			Destination:        destinationName,
			MissingSource:      !okSrc,
			MissingDestination: !okDst,
		}
	}

	resp := &RouteResponse{
		Source:         sourceName,
		Destination:    destinationName,
		DirectRoutes:   p.direct.find(g, src, dst),
		CombinedRoutes: []CombinedRoute{},
	}
	if len(resp.DirectRoutes) > 0 {
		// bus-only alternatives add nothing next to a direct route
		if c, ok := p.metro.find(g, src, dst); ok {
			resp.CombinedRoutes = append(resp.CombinedRoutes, c.toCombinedRoute(g))
		}
	} else {
		for _, c := range p.combined.find(g, src, dst) {
			resp.CombinedRoutes = append(resp.CombinedRoutes, c.toCombinedRoute(g))
		}
	}

	if resp.Found() {
		resp.Status = StatusSuccess
		resp.Message = "Routes found."
	} else {
		resp.Status = StatusNoRoutes
		resp.Message = noRoutesMessage(sourceName, destinationName)
	}
	slog.Debug("route query",
		"source", sourceName, "destination", destinationName,
		"direct", len(resp.DirectRoutes), "combined", len(resp.CombinedRoutes))
	return resp, nil
}

func noRoutesMessage(source, destination string) string {
	return fmt.Sprintf("No routes found from %s to %s.", source, destination)
}

func cacheKey(version uint64, source, destination string) string {
	return fmt.Sprintf("%d|%s|%s", version,
		strings.ToLower(strings.TrimSpace(source)), strings.ToLower(strings.TrimSpace(destination)))
}
