package gtfs

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Index stores the parts of a GTFS feed needed to build a stop graph
type Index struct {
	routes      map[string]route    // route_id -> route
	tripToRoute map[string]string   // trip_id -> route_id
	stops       map[string]stopInfo // stop_id -> stop
	TripStopSeq map[string][]string // trip_id -> ordered stop_ids
}

// NewIndex creates a new empty index
func NewIndex() *Index {
	return &Index{
		routes:      map[string]route{},
		tripToRoute: map[string]string{},
		stops:       map[string]stopInfo{},
		TripStopSeq: map[string][]string{},
	}
}

// NewIndexFromBytes parses a GTFS zip held in memory
func NewIndexFromBytes(data []byte) (*Index, error) {
	return NewIndexFromReader(bytes.NewReader(data), int64(len(data)))
}

// NewIndexFromReader parses a GTFS zip from any random access source
func NewIndexFromReader(r io.ReaderAt, size int64) (*Index, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open gtfs zip: %w", err)
	}
	g := NewIndex()
	if err := g.consumeZip(zr); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Index) consumeZip(zr *zip.Reader) error {
	for _, f := range zr.File {
		// feeds are sometimes zipped with a top-level folder
		name := strings.ToLower(f.Name)
		if i := strings.LastIndex(name, "/"); i >= 0 {
			name = name[i+1:]
		}
		switch name {
		case "routes.txt", "trips.txt", "stops.txt", "stop_times.txt":
			if err := g.consumeCSV(f, name); err != nil {
				return fmt.Errorf("read %s: %w", name, err)
			}
		}
	}
	return nil
}

// RouteName returns the service name of a route
func (g *Index) RouteName(routeID string) string {
	return g.routes[routeID].name(routeID)
}

// RouteType returns the GTFS route_type of a route, 3 (bus) when unknown
func (g *Index) RouteType(routeID string) int {
	if r, ok := g.routes[routeID]; ok {
		return r.routeType
	}
	return 3
}

func (g *Index) GetRouteIDForTrip(tripID string) string { return g.tripToRoute[tripID] }

func (g *Index) GetStopName(stopID string) string { return g.stops[stopID].name }

// StopCoord returns the latitude and longitude of a stop
func (g *Index) StopCoord(stopID string) (lat, lon float64, ok bool) {
	s, found := g.stops[stopID]
	if !found || !s.hasCoord {
		return 0, 0, false
	}
	return s.lat, s.lon, true
}

// StopIDs returns every stop id in sorted order
func (g *Index) StopIDs() []string {
	keys := make([]string, 0, len(g.stops))
	for k := range g.stops {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// TripIDs returns every trip with a stop sequence in sorted order
func (g *Index) TripIDs() []string {
	keys := make([]string, 0, len(g.TripStopSeq))
	for k := range g.TripStopSeq {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
