package gtfsrt

import "time"

// Period is an alert active window in unix seconds; zero means unbounded
type Period struct {
	Start int64
	End   int64
}

// Alert is a simplified representation of a GTFS-RT Alert
type Alert struct {
	ID       string
	Header   string
	Effect   string
	Periods  []Period
	RouteIDs []string
}

// ActiveAt reports whether the alert applies at t
func (a Alert) ActiveAt(t time.Time) bool {
	if len(a.Periods) == 0 {
		return true
	}
	now := t.Unix()
	for _, p := range a.Periods {
		if (p.Start == 0 || p.Start <= now) && (p.End == 0 || now < p.End) {
			return true
		}
	}
	return false
}
