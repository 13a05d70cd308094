package planner

import (
	"strconv"
	"strings"

	"github.com/theoremus-urban-solutions/transit-planner/graph"
)

type leg struct {
	from     graph.StopID
	to       graph.StopID
	service  string
	mode     graph.Mode
	stops    int
	distance float64
}

// buildLegs groups consecutive edges on the same service into legs
func buildLegs(start graph.StopID, path []graph.Edge, c Classifier) []leg {
	if len(path) == 0 {
		return nil
	}
	legs := make([]leg, 0, 2)
	cur := leg{from: start, to: start, service: path[0].Service, mode: c.EdgeMode(path[0])}
	for _, e := range path {
		if e.Service != cur.service {
			legs = append(legs, cur)
			cur = leg{from: cur.to, to: cur.to, service: e.Service, mode: c.EdgeMode(e)}
		}
		cur.stops++
		cur.distance += e.Distance
		cur.to = e.To
	}
	return append(legs, cur)
}

// candidate is a complete source to destination edge sequence
type candidate struct {
	edges []graph.Edge
	legs  []leg
	metro bool
}

func newCandidate(start graph.StopID, path []graph.Edge, c Classifier) candidate {
	cand := candidate{edges: path, legs: buildLegs(start, path, c)}
	for _, l := range cand.legs {
		if l.mode == graph.Metro {
			cand.metro = true
			break
		}
	}
	return cand
}

func (c candidate) transfers() int {
	if len(c.legs) == 0 {
		return 0
	}
	return len(c.legs) - 1
}

// signature identifies a route by its ordered leg endpoints
func (c candidate) signature() string {
	var sb strings.Builder
	for _, l := range c.legs {
		sb.WriteString(strconv.Itoa(int(l.from)))
		sb.WriteString("->")
		sb.WriteString(strconv.Itoa(int(l.to)))
		sb.WriteByte('|')
	}
	return sb.String()
}

func (c candidate) toCombinedRoute(g *graph.TransitGraph) CombinedRoute {
	r := CombinedRoute{
		TotalStops: len(c.edges),
		TotalSteps: len(c.legs),
		Legs:       make([]RouteLeg, 0, len(c.legs)),
	}
	lines := make([]string, 0, len(c.legs))
	for _, l := range c.legs {
		rl := RouteLeg{
			From:          g.StopName(l.from),
			To:            g.StopName(l.to),
			TransportMode: l.mode,
			Options:       []string{l.service},
			StopsCount:    l.stops,
		}
		r.Legs = append(r.Legs, rl)
		r.Distance += l.distance
		lines = append(lines, rl.From+" -> "+rl.To+" ("+l.mode.String()+": "+l.service+")")
	}
	r.Description = strings.Join(lines, "\n")
	return r
}
