package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
)

// Link defaults applied when a description omits them
const (
	DefaultCost     = 10.0
	DefaultDistance = 1.0
	DefaultService  = "Unknown"
)

// ErrEmptyDescription is returned when a description carries no stops
var ErrEmptyDescription = errors.New("transit description has no stops")

// StopSpec describes one stop of a transit network
type StopSpec struct {
	Name     string `validate:"required"`
	Lat      float64
	Lon      float64
	HasCoord bool
}

// Link describes one directed connection between two named stops. A link
// naming a missing or unknown stop is skipped by Build, not rejected.
type Link struct {
	Source   string
	Target   string
	Mode     string
	Service  string `validate:"required"`
	RouteID  string
	Cost     float64 `validate:"gte=0"`
	Distance float64 `validate:"gte=0"`
}

// Description is the loader-independent form of a transit network
type Description struct {
	Stops []StopSpec `validate:"dive"`
	Links []Link     `validate:"dive"`
}

// wire shapes of transport_graph.json
type jsonNode struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Lat  *float64 `json:"lat"`
	Lng  *float64 `json:"lng"`
	Lon  *float64 `json:"lon"`
}

type jsonLink struct {
	Source    string   `json:"source"`
	Target    string   `json:"target"`
	Mode      string   `json:"mode"`
	Transport string   `json:"transport"`
	Service   string   `json:"service"`
	RouteID   string   `json:"routeId"`
	Cost      *float64 `json:"cost"`
	Distance  *float64 `json:"distance"`
}

type jsonGraph struct {
	Nodes []jsonNode `json:"nodes"`
	Stops []jsonNode `json:"stops"`
	Links []jsonLink `json:"links"`
}

// DecodeDescription reads a transport graph document:
//
//	{"nodes": [{"id": "Stop A"}], "links": [{"source": "Stop A", "target": "Stop B",
//	  "mode": "BUS", "transport": "Bus 12", "cost": 10, "distance": 1.2}]}
//
// "stops" is accepted for "nodes" and "service" for "transport".
func DecodeDescription(r io.Reader) (Description, error) {
	var raw jsonGraph
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return Description{}, fmt.Errorf("decode transport graph: %w", err)
	}
	nodes := raw.Nodes
	if len(nodes) == 0 {
		nodes = raw.Stops
	}
	if len(nodes) == 0 {
		return Description{}, ErrEmptyDescription
	}
	desc := Description{
		Stops: make([]StopSpec, 0, len(nodes)),
		Links: make([]Link, 0, len(raw.Links)),
	}
	for _, n := range nodes {
		spec := StopSpec{Name: n.ID}
		if spec.Name == "" {
			spec.Name = n.Name
		}
		lon := n.Lng
		if lon == nil {
			lon = n.Lon
		}
		if n.Lat != nil && lon != nil {
			spec.Lat, spec.Lon, spec.HasCoord = *n.Lat, *lon, true
		}
		desc.Stops = append(desc.Stops, spec)
	}
	for _, l := range raw.Links {
		link := Link{
			Source:   l.Source,
			Target:   l.Target,
			Mode:     l.Mode,
			Service:  l.Transport,
			RouteID:  l.RouteID,
			Cost:     DefaultCost,
			Distance: DefaultDistance,
		}
		if link.Service == "" {
			link.Service = l.Service
		}
		if link.Service == "" {
			link.Service = DefaultService
		}
		if l.Cost != nil {
			link.Cost = *l.Cost
		}
		if l.Distance != nil {
			link.Distance = *l.Distance
		}
		desc.Links = append(desc.Links, link)
	}
	if err := desc.Validate(); err != nil {
		return Description{}, err
	}
	return desc, nil
}

// Validate checks that every stop is named and every link has a service
// and non-negative weights
func (d Description) Validate() error {
	if err := validator.New().Struct(d); err != nil {
		return fmt.Errorf("invalid transit description: %w", err)
	}
	return nil
}

// Build creates a graph from the description. Links referencing unknown
// or empty stop names are skipped; the number skipped is returned.
func (d Description) Build() (*TransitGraph, int) {
	g := New()
	for _, s := range d.Stops {
		g.AddStop(Stop{Name: s.Name, Lat: s.Lat, Lon: s.Lon, HasCoord: s.HasCoord})
	}
	skipped := 0
	for _, l := range d.Links {
		from, ok1 := g.StopID(l.Source)
		to, ok2 := g.StopID(l.Target)
		if !ok1 || !ok2 {
			skipped++
			continue
		}
		if err := g.AddEdge(from, to, l.Cost, l.Distance, ParseMode(l.Mode), l.Service); err != nil {
			skipped++
		}
	}
	return g, skipped
}

// Mirrored returns a copy with a reversed twin for every link
func (d Description) Mirrored() Description {
	out := Description{
		Stops: append([]StopSpec(nil), d.Stops...),
		Links: make([]Link, 0, 2*len(d.Links)),
	}
	for _, l := range d.Links {
		back := l
		back.Source, back.Target = l.Target, l.Source
		out.Links = append(out.Links, l, back)
	}
	return out
}

// WithoutServices drops links whose route id or service name is suspended
func (d Description) WithoutServices(suspended map[string]bool) Description {
	if len(suspended) == 0 {
		return d
	}
	out := Description{
		Stops: d.Stops,
		Links: make([]Link, 0, len(d.Links)),
	}
	for _, l := range d.Links {
		if suspended[l.Service] || (l.RouteID != "" && suspended[l.RouteID]) {
			continue
		}
		out.Links = append(out.Links, l)
	}
	return out
}
