package formatter

import (
	"encoding/json"

	"github.com/theoremus-urban-solutions/transit-planner/planner"
)

// ResponseBuilder serializes route responses
type ResponseBuilder struct {
	Indent bool
}

// NewResponseBuilder creates a new response builder
func NewResponseBuilder(indent bool) *ResponseBuilder {
	return &ResponseBuilder{Indent: indent}
}

// BuildJSON serializes a route response to JSON
func (rb *ResponseBuilder) BuildJSON(res *planner.RouteResponse) ([]byte, error) {
	if rb.Indent {
		return json.MarshalIndent(res, "", "  ")
	}
	return json.Marshal(res)
}
