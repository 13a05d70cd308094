package planner

import "github.com/theoremus-urban-solutions/transit-planner/graph"

// Response statuses
const (
	StatusSuccess  = "success"
	StatusNoRoutes = "no routes found"
	StatusError    = "error"
)

// RouteResponse is the result of one query. Responses may be shared through
// the cache and must be treated as read-only.
type RouteResponse struct {
	Source         string          `json:"source"`
	Destination    string          `json:"destination"`
	Status         string          `json:"status"`
	Message        string          `json:"message"`
	DirectRoutes   []DirectRoute   `json:"directRoutes"`
	CombinedRoutes []CombinedRoute `json:"combinedRoutes"`
}

// DirectRoute is a zero-transfer trip on one service
type DirectRoute struct {
	Type     graph.Mode `json:"type"`
	Name     string     `json:"name"`
	Stops    int        `json:"stops"`
	Details  string     `json:"details"`
	Distance float64    `json:"distance"`
}

// CombinedRoute is a trip made of one or more legs
type CombinedRoute struct {
	TotalStops  int        `json:"totalStops"` // edges travelled
	TotalSteps  int        `json:"totalSteps"` // legs
	Legs        []RouteLeg `json:"legs"`
	Description string     `json:"description"`
	Distance    float64    `json:"distance"`
}

// RouteLeg is a maximal run of a route on one service
type RouteLeg struct {
	From          string     `json:"from"`
	To            string     `json:"to"`
	TransportMode graph.Mode `json:"transportMode"`
	Options       []string   `json:"options"`
	StopsCount    int        `json:"stopsCount"`
}

// HasMetro reports whether any leg runs on a metro service
func (r CombinedRoute) HasMetro() bool {
	for _, l := range r.Legs {
		if l.TransportMode == graph.Metro {
			return true
		}
	}
	return false
}

// Found reports whether the response carries any route
func (r *RouteResponse) Found() bool {
	return len(r.DirectRoutes) > 0 || len(r.CombinedRoutes) > 0
}
