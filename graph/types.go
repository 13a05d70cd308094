package graph

import (
	"encoding/json"
	"strings"
)

// StopID is the dense index of a stop inside one TransitGraph
type StopID int32

// NoStop is returned by lookups that miss
const NoStop StopID = -1

// Stop is a named boarding/alighting point
type Stop struct {
	ID       StopID
	Name     string
	Lat      float64
	Lon      float64
	HasCoord bool
}

// Mode is the transport mode tag carried by an edge
type Mode uint8

const (
	Bus Mode = iota
	Metro
)

func (m Mode) String() string {
	if m == Metro {
		return "METRO"
	}
	return "BUS"
}

func (m Mode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *Mode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*m = ParseMode(s)
	return nil
}

// ParseMode maps a mode tag to a Mode; anything that is not metro-like is a bus
func ParseMode(s string) Mode {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "METRO", "MRT", "SUBWAY", "RAIL", "TRAIN":
		return Metro
	default:
		return Bus
	}
}

// Edge is a directed connection run by one service
type Edge struct {
	From     StopID
	To       StopID
	Service  string
	Mode     Mode
	Cost     float64
	Distance float64
}
