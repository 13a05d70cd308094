package gtfs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/theoremus-urban-solutions/transit-planner/graph"
	"github.com/theoremus-urban-solutions/transit-planner/internal"
	"github.com/theoremus-urban-solutions/transit-planner/utils"
)

type linkKey struct {
	from, to, service string
}

// Description converts the index into a transit description. Trips are
// walked in sorted order so the result is stable for a given feed.
func (g *Index) Description() graph.Description {
	var desc graph.Description
	byName := map[string]int{}
	for _, id := range g.StopIDs() {
		s := g.stops[id]
		if _, ok := byName[s.name]; ok {
			continue
		}
		byName[s.name] = len(desc.Stops)
		desc.Stops = append(desc.Stops, graph.StopSpec{Name: s.name, Lat: s.lat, Lon: s.lon, HasCoord: s.hasCoord})
	}

	seen := map[linkKey]struct{}{}
	for _, trip := range g.TripIDs() {
		routeID := g.tripToRoute[trip]
		service := g.RouteName(routeID)
		mode := graph.Bus
		if IsRailRouteType(g.RouteType(routeID)) {
			mode = graph.Metro
		}
		seq := g.TripStopSeq[trip]
		for i := 1; i < len(seq); i++ {
			from, okFrom := g.stops[seq[i-1]]
			to, okTo := g.stops[seq[i]]
			if !okFrom || !okTo || from.name == to.name {
				continue
			}
			key := linkKey{from: from.name, to: to.name, service: service}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			desc.Links = append(desc.Links, graph.Link{
				Source:   from.name,
				Target:   to.name,
				Mode:     mode.String(),
				Service:  service,
				RouteID:  routeID,
				Cost:     graph.DefaultCost,
				Distance: linkDistance(from, to),
			})
		}
	}
	return desc
}

func linkDistance(a, b stopInfo) float64 {
	if !a.hasCoord || !b.hasCoord {
		return graph.DefaultDistance
	}
	return utils.HaversineKM(a.lat, a.lon, b.lat, b.lon)
}

// LoadDescription fetches a GTFS zip from a URL or local path and converts it
func LoadDescription(ctx context.Context, location string) (graph.Description, error) {
	if location == "" {
		return graph.Description{}, fmt.Errorf("gtfs: no feed location configured")
	}
	data, err := internal.Fetch(ctx, location)
	if err != nil {
		return graph.Description{}, fmt.Errorf("gtfs: %w", err)
	}
	idx, err := NewIndexFromBytes(data)
	if err != nil {
		return graph.Description{}, err
	}
	desc := idx.Description()
	if len(desc.Stops) == 0 {
		return graph.Description{}, graph.ErrEmptyDescription
	}
	slog.Info("gtfs feed parsed",
		"location", location, "stops", len(desc.Stops), "links", len(desc.Links), "trips", len(idx.TripStopSeq))
	return desc, nil
}

// Loader returns a graph.Loader reading the feed at location on every refresh
func Loader(location string) graph.Loader {
	return graph.LoaderFunc(func(ctx context.Context) (graph.Description, error) {
		return LoadDescription(ctx, location)
	})
}
