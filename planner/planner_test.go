package planner

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/theoremus-urban-solutions/transit-planner/config"
	"github.com/theoremus-urban-solutions/transit-planner/graph"
)

type link struct {
	from, to, service string
}

// buildGraph registers stops in the given order, then adds each link
func buildGraph(t *testing.T, stops []string, links []link) *graph.TransitGraph {
	t.Helper()
	g := graph.New()
	for _, s := range stops {
		g.AddStop(graph.Stop{Name: s})
	}
	for _, l := range links {
		from, ok := g.StopID(l.from)
		if !ok {
			t.Fatalf("unknown stop %q", l.from)
		}
		to, ok := g.StopID(l.to)
		if !ok {
			t.Fatalf("unknown stop %q", l.to)
		}
		if err := g.AddEdge(from, to, graph.DefaultCost, graph.DefaultDistance, graph.Bus, l.service); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

type fixedSource struct {
	g       *graph.TransitGraph
	version uint64
}

func (s *fixedSource) Snapshot() (*graph.TransitGraph, uint64) { return s.g, s.version }

func newPlanner(g *graph.TransitGraph) *RoutePlanner {
	return New(&fixedSource{g: g}, config.PlannerConfig{})
}

func TestFindBestRoute_MetroDirectBeatsBus(t *testing.T) {
	g := buildGraph(t, []string{"A", "B", "C", "D"}, []link{
		{"A", "B", "Bus1"},
		{"B", "C", "Bus1"},
		{"A", "C", "MRT1"},
	})
	resp, err := newPlanner(g).FindBestRoute("A", "C")
	if err != nil {
		t.Fatal(err)
	}
	if resp.Status != StatusSuccess || resp.Message != "Routes found." {
		t.Errorf("status = %q message = %q", resp.Status, resp.Message)
	}
	if len(resp.DirectRoutes) != 2 {
		t.Fatalf("direct routes = %+v", resp.DirectRoutes)
	}
	first := resp.DirectRoutes[0]
	if first.Name != "MRT1" || first.Type != graph.Metro || first.Stops != 1 || first.Details != "MRT1 (1 stops)" {
		t.Errorf("first direct route = %+v", first)
	}
	if resp.DirectRoutes[1].Name != "Bus1" || resp.DirectRoutes[1].Stops != 2 {
		t.Errorf("second direct route = %+v", resp.DirectRoutes[1])
	}
	for _, c := range resp.CombinedRoutes {
		if !c.HasMetro() {
			t.Errorf("bus-only combined route offered next to direct routes: %+v", c)
		}
	}
}

func TestFindBestRoute_IsolatedStop(t *testing.T) {
	g := buildGraph(t, []string{"A", "B", "C", "D"}, []link{
		{"A", "B", "Bus1"},
		{"B", "C", "Bus1"},
	})
	resp, err := newPlanner(g).FindBestRoute("A", "D")
	if err != nil {
		t.Fatalf("an unreachable stop is not an error: %v", err)
	}
	if resp.Status != StatusNoRoutes {
		t.Errorf("status = %q", resp.Status)
	}
	if resp.Message != "No routes found from A to D." {
		t.Errorf("message = %q", resp.Message)
	}
	if len(resp.DirectRoutes) != 0 || len(resp.CombinedRoutes) != 0 {
		t.Errorf("unexpected routes: %+v", resp)
	}
}

func TestFindBestRoute_FewerStopsFirst(t *testing.T) {
	g := buildGraph(t, []string{"A", "B1", "B2", "X", "C"}, []link{
		{"A", "B1", "Bus1"},
		{"B1", "B2", "Bus1"},
		{"B2", "C", "Bus1"},
		{"A", "X", "Bus2"},
		{"X", "C", "Bus2"},
	})
	resp, err := newPlanner(g).FindBestRoute("A", "C")
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, r := range resp.DirectRoutes {
		names = append(names, r.Name)
	}
	if !reflect.DeepEqual(names, []string{"Bus2", "Bus1"}) {
		t.Errorf("direct order = %v", names)
	}
	if resp.DirectRoutes[0].Stops != 2 || resp.DirectRoutes[1].Stops != 3 {
		t.Errorf("stops = %+v", resp.DirectRoutes)
	}
}

func TestFindBestRoute_UnknownStops(t *testing.T) {
	g := buildGraph(t, []string{"A", "B"}, []link{{"A", "B", "Bus1"}})
	p := newPlanner(g)

	tests := []struct {
		name        string
		src, dst    string
		missingSrc  bool
		missingDest bool
	}{
		{"source", "Nowhere", "B", true, false},
		{"destination", "A", "Nowhere", false, true},
		{"both", "X", "Y", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := p.FindBestRoute(tt.src, tt.dst)
			if resp != nil {
				t.Errorf("expected no response, got %+v", resp)
			}
			if !errors.Is(err, ErrStopNotFound) {
				t.Fatalf("err = %v, want ErrStopNotFound", err)
			}
			var nf *NotFoundError
			if !errors.As(err, &nf) {
				t.Fatalf("err is %T", err)
			}
			if nf.MissingSource != tt.missingSrc || nf.MissingDestination != tt.missingDest {
				t.Errorf("got %+v", nf)
			}
		})
	}
}

func TestFindBestRoute_CaseInsensitiveNames(t *testing.T) {
	g := buildGraph(t, []string{"Central", "Harbour"}, []link{{"Central", "Harbour", "Bus1"}})
	resp, err := newPlanner(g).FindBestRoute("central", " HARBOUR")
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.DirectRoutes) != 1 {
		t.Errorf("direct routes = %+v", resp.DirectRoutes)
	}
	if resp.Source != "central" {
		t.Errorf("source should echo the request, got %q", resp.Source)
	}
}

func TestFindBestRoute_SameStop(t *testing.T) {
	g := buildGraph(t, []string{"A", "B"}, []link{{"A", "B", "Bus1"}, {"B", "A", "Bus1"}})
	resp, err := newPlanner(g).FindBestRoute("A", "A")
	if err != nil {
		t.Fatal(err)
	}
	if resp.Found() {
		t.Errorf("a trip to the source itself is not a route: %+v", resp)
	}
}

func TestFindBestRoute_CombinedLegs(t *testing.T) {
	g := buildGraph(t, []string{"A", "B", "C"}, []link{
		{"A", "B", "Bus1"},
		{"B", "C", "Bus2"},
	})
	resp, err := newPlanner(g).FindBestRoute("A", "C")
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.DirectRoutes) != 0 || len(resp.CombinedRoutes) != 1 {
		t.Fatalf("got %+v", resp)
	}
	r := resp.CombinedRoutes[0]
	if r.TotalStops != 2 || r.TotalSteps != 2 {
		t.Errorf("totals = %d/%d", r.TotalStops, r.TotalSteps)
	}
	want := "A -> B (BUS: Bus1)\nB -> C (BUS: Bus2)"
	if r.Description != want {
		t.Errorf("description = %q, want %q", r.Description, want)
	}
	if r.Legs[0].Options[0] != "Bus1" || r.Legs[1].From != "B" || r.Legs[1].StopsCount != 1 {
		t.Errorf("legs = %+v", r.Legs)
	}
	if r.Distance != 2*graph.DefaultDistance {
		t.Errorf("distance = %v", r.Distance)
	}
}

func TestFindBestRoute_MetroRanksFirst(t *testing.T) {
	g := buildGraph(t, []string{"A", "B", "C", "D", "E"}, []link{
		{"A", "B", "Bus1"},
		{"B", "C", "Bus2"},
		{"A", "D", "Bus3"},
		{"D", "E", "Line MRT"},
		{"E", "C", "Bus4"},
	})
	resp, err := newPlanner(g).FindBestRoute("A", "C")
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.CombinedRoutes) != 2 {
		t.Fatalf("combined = %+v", resp.CombinedRoutes)
	}
	if !resp.CombinedRoutes[0].HasMetro() || resp.CombinedRoutes[0].TotalSteps != 3 {
		t.Errorf("metro route should rank first: %+v", resp.CombinedRoutes[0])
	}
	if resp.CombinedRoutes[1].TotalSteps != 2 {
		t.Errorf("second route = %+v", resp.CombinedRoutes[1])
	}
}

func TestFindBestRoute_MetroAlternativeNextToDirect(t *testing.T) {
	g := buildGraph(t, []string{"A", "B", "M1", "M2"}, []link{
		{"A", "B", "Bus1"},
		{"A", "M1", "Bus2"},
		{"M1", "M2", "MRT1"},
		{"M2", "B", "Bus3"},
	})
	resp, err := newPlanner(g).FindBestRoute("A", "B")
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.DirectRoutes) != 1 || resp.DirectRoutes[0].Name != "Bus1" {
		t.Fatalf("direct = %+v", resp.DirectRoutes)
	}
	if len(resp.CombinedRoutes) != 1 {
		t.Fatalf("combined = %+v", resp.CombinedRoutes)
	}
	want := "A -> M1 (BUS: Bus2)\nM1 -> M2 (METRO: MRT1)\nM2 -> B (BUS: Bus3)"
	if got := resp.CombinedRoutes[0].Description; got != want {
		t.Errorf("description = %q, want %q", got, want)
	}
}

// chain links stop i to stop i+1 with a different service per hop
func chain(t *testing.T, hops int) *graph.TransitGraph {
	t.Helper()
	stops := make([]string, hops+1)
	for i := range stops {
		stops[i] = "S" + string(rune('a'+i))
	}
	links := make([]link, hops)
	for i := 0; i < hops; i++ {
		links[i] = link{stops[i], stops[i+1], "Bus" + string(rune('A'+i))}
	}
	return buildGraph(t, stops, links)
}

func TestFindBestRoute_TransferBound(t *testing.T) {
	tests := []struct {
		hops  int
		found bool
	}{
		{6, true}, // five transfers
		{7, false},
	}
	for _, tt := range tests {
		g := chain(t, tt.hops)
		last := g.StopName(graph.StopID(tt.hops))
		resp, err := newPlanner(g).FindBestRoute("Sa", last)
		if err != nil {
			t.Fatal(err)
		}
		if resp.Found() != tt.found {
			t.Errorf("hops=%d found=%v, want %v", tt.hops, resp.Found(), tt.found)
		}
		for _, r := range resp.CombinedRoutes {
			if len(r.Legs) > config.DefaultMaxTransfers+1 {
				t.Errorf("route exceeds transfer bound: %d legs", len(r.Legs))
			}
		}
	}
}

func TestFindBestRoute_StateCap(t *testing.T) {
	g := buildGraph(t, []string{"A", "B", "C"}, []link{
		{"A", "B", "Bus1"},
		{"B", "C", "Bus2"},
	})
	p := New(&fixedSource{g: g}, config.PlannerConfig{MaxStates: 1})
	resp, err := p.FindBestRoute("A", "C")
	if err != nil {
		t.Fatal(err)
	}
	if resp.Found() || resp.Status != StatusNoRoutes {
		t.Errorf("capped search should find nothing: %+v", resp)
	}
}

func TestFindBestRoute_LimitsCombinedRoutes(t *testing.T) {
	stops := []string{"A", "Z"}
	var links []link
	for i := 0; i < 8; i++ {
		mid := "M" + string(rune('a'+i))
		stops = append(stops, mid)
		links = append(links, link{"A", mid, "In" + mid}, link{mid, "Z", "Out" + mid})
	}
	g := buildGraph(t, stops, links)
	resp, err := newPlanner(g).FindBestRoute("A", "Z")
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.CombinedRoutes) != config.DefaultMaxCombinedRoutes {
		t.Errorf("combined routes = %d", len(resp.CombinedRoutes))
	}
	if !strings.HasPrefix(resp.CombinedRoutes[0].Description, "A -> Ma ") {
		t.Errorf("ties should keep discovery order, got %q", resp.CombinedRoutes[0].Description)
	}
}

func TestFindBestRoute_Deterministic(t *testing.T) {
	g := buildGraph(t, []string{"A", "B", "C", "D", "E"}, []link{
		{"A", "B", "Bus1"},
		{"B", "C", "Bus2"},
		{"A", "D", "Bus3"},
		{"D", "C", "Bus4"},
		{"B", "E", "Bus1"},
		{"E", "C", "Bus5"},
	})
	p := newPlanner(g)
	first, err := p.FindBestRoute("A", "C")
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		again, err := p.FindBestRoute("A", "C")
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs:\n%+v\n%+v", i, first, again)
		}
	}
}

func TestFindBestRoute_NoCycles(t *testing.T) {
	g := buildGraph(t, []string{"A", "B", "C"}, []link{
		{"A", "B", "Bus1"},
		{"B", "A", "Bus2"},
		{"A", "B", "Bus3"},
		{"B", "C", "Bus4"},
	})
	resp, err := newPlanner(g).FindBestRoute("A", "C")
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range resp.CombinedRoutes {
		seen := map[string]bool{r.Legs[0].From: true}
		for _, l := range r.Legs {
			if seen[l.To] {
				t.Errorf("route revisits %s: %q", l.To, r.Description)
			}
			seen[l.To] = true
		}
	}
}

func TestFindBestRoute_MetroSelection(t *testing.T) {
	tests := []struct {
		name  string
		stops []string
		links []link
		want  []string // combined route descriptions
	}{
		{
			name:  "fewest transfers wins over first found",
			stops: []string{"S", "P", "Q", "R", "D"},
			links: []link{
				{"S", "D", "Bus9"},
				{"S", "P", "Bus1"},
				{"S", "R", "Bus3"},
				{"P", "Q", "MRT1"},
				{"Q", "D", "Bus2"},
				{"R", "D", "MRT2"},
			},
			want: []string{"S -> R (BUS: Bus3)\nR -> D (METRO: MRT2)"},
		},
		{
			name:  "fewest edges breaks transfer ties",
			stops: []string{"S", "P", "Q", "R", "D"},
			links: []link{
				{"S", "D", "Bus9"},
				{"S", "P", "Bus1"},
				{"S", "R", "Bus3"},
				{"P", "Q", "MRT1"},
				{"Q", "D", "MRT1"},
				{"R", "D", "MRT2"},
			},
			want: []string{"S -> R (BUS: Bus3)\nR -> D (METRO: MRT2)"},
		},
		{
			name:  "destination feeder found over inbound edges",
			stops: []string{"S", "M", "N", "D"},
			links: []link{
				{"S", "D", "Bus9"},
				{"S", "M", "MRT1"},
				{"M", "N", "Bus2"},
				{"N", "D", "Bus2"},
			},
			want: []string{"S -> M (METRO: MRT1)\nM -> D (BUS: Bus2)"},
		},
		{
			name:  "simple composition kept",
			stops: []string{"S", "X", "M", "N", "D"},
			links: []link{
				{"S", "D", "Bus9"},
				{"S", "X", "Bus1"},
				{"X", "M", "Bus1"},
				{"M", "N", "MRT1"},
				{"N", "D", "Bus2"},
			},
			want: []string{"S -> M (BUS: Bus1)\nM -> N (METRO: MRT1)\nN -> D (BUS: Bus2)"},
		},
		{
			name:  "composition revisiting a stop rejected",
			stops: []string{"S", "X", "M", "N", "D"},
			links: []link{
				{"S", "D", "Bus9"},
				{"S", "X", "Bus1"},
				{"X", "M", "Bus1"},
				{"M", "N", "MRT1"},
				{"N", "X", "Bus2"},
				{"X", "D", "Bus2"},
			},
		},
		{
			name:  "source without metro access",
			stops: []string{"S", "D", "Y", "Z"},
			links: []link{
				{"S", "D", "Bus1"},
				{"Y", "Z", "MRT1"},
				{"Z", "S", "Bus2"},
			},
		},
		{
			name:  "destination without metro access",
			stops: []string{"S", "D", "X", "Y"},
			links: []link{
				{"S", "D", "Bus1"},
				{"S", "X", "Bus2"},
				{"X", "Y", "MRT1"},
			},
		},
		{
			name:  "no metro at all",
			stops: []string{"S", "D"},
			links: []link{{"S", "D", "Bus1"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := newPlanner(buildGraph(t, tt.stops, tt.links)).FindBestRoute("S", "D")
			if err != nil {
				t.Fatal(err)
			}
			if resp.Status != StatusSuccess || len(resp.DirectRoutes) == 0 {
				t.Fatalf("expected a direct route, got %+v", resp)
			}
			if resp.CombinedRoutes == nil {
				t.Fatal("combined routes should be an empty list, not nil")
			}
			got := make([]string, 0, len(resp.CombinedRoutes))
			for _, r := range resp.CombinedRoutes {
				got = append(got, r.Description)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("combined = %q, want %q", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("combined[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFindBestRoute_StatePruning(t *testing.T) {
	tests := []struct {
		name  string
		stops []string
		links []link
		want  []string
	}{
		{
			name:  "equal transfers both kept",
			stops: []string{"S", "X", "Y", "M", "D"},
			links: []link{
				{"S", "X", "Bus1"},
				{"S", "Y", "Bus2"},
				{"X", "M", "Bus3"},
				{"Y", "M", "Bus3"},
				{"M", "D", "Bus3"},
			},
			want: []string{
				"S -> X (BUS: Bus1)\nX -> D (BUS: Bus3)",
				"S -> Y (BUS: Bus2)\nY -> D (BUS: Bus3)",
			},
		},
		{
			name:  "more transfers dropped",
			stops: []string{"S", "X", "Y", "Z", "M", "D"},
			links: []link{
				{"S", "X", "Bus1"},
				{"S", "Y", "Bus1"},
				{"X", "M", "Bus3"},
				{"Y", "Z", "Bus2"},
				{"Z", "M", "Bus3"},
				{"M", "D", "Bus3"},
			},
			want: []string{"S -> X (BUS: Bus1)\nX -> D (BUS: Bus3)"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := newPlanner(buildGraph(t, tt.stops, tt.links)).FindBestRoute("S", "D")
			if err != nil {
				t.Fatal(err)
			}
			if len(resp.DirectRoutes) != 0 {
				t.Fatalf("unexpected direct routes %+v", resp.DirectRoutes)
			}
			if len(resp.CombinedRoutes) != len(tt.want) {
				t.Fatalf("combined = %+v", resp.CombinedRoutes)
			}
			for i, w := range tt.want {
				if got := resp.CombinedRoutes[i].Description; got != w {
					t.Errorf("combined[%d] = %q, want %q", i, got, w)
				}
			}
		})
	}
}
