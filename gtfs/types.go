package gtfs

// GTFS route_type values that are tagged METRO
const (
	RouteTypeSubway   = 1
	RouteTypeRail     = 2
	RouteTypeMonorail = 12
)

// IsRailRouteType reports whether a route_type runs on rails
func IsRailRouteType(t int) bool {
	return t == RouteTypeSubway || t == RouteTypeRail || t == RouteTypeMonorail
}

type stopInfo struct {
	name     string
	lat, lon float64
	hasCoord bool
}

type route struct {
	shortName string
	longName  string
	routeType int
}

// name returns the display name of a route
func (r route) name(routeID string) string {
	if r.shortName != "" {
		return r.shortName
	}
	if r.longName != "" {
		return r.longName
	}
	return routeID
}
