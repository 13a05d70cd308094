package planner

import (
	"strings"

	"github.com/theoremus-urban-solutions/transit-planner/graph"
)

// Classifier decides whether a service is a metro line
type Classifier struct {
	Keywords []string
	// TrustModeTags also treats edges tagged METRO by the loader as metro
	TrustModeTags bool
}

// IsMetroService matches the service name against the metro keywords
func (c Classifier) IsMetroService(service string) bool {
	for _, k := range c.Keywords {
		if k != "" && strings.Contains(service, k) {
			return true
		}
	}
	return false
}

// EdgeMode returns the mode used for legs and route summaries
func (c Classifier) EdgeMode(e graph.Edge) graph.Mode {
	if c.IsMetroService(e.Service) || (c.TrustModeTags && e.Mode == graph.Metro) {
		return graph.Metro
	}
	return graph.Bus
}

func (c Classifier) isMetro(e graph.Edge) bool {
	return c.EdgeMode(e) == graph.Metro
}
