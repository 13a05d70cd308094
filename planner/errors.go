package planner

import (
	"errors"
	"fmt"
	"strings"
)

// ErrStopNotFound is the sentinel wrapped by NotFoundError
var ErrStopNotFound = errors.New("stop not found")

// NotFoundError reports which side of a query could not be resolved
type NotFoundError struct {
	Source             string
	Destination        string
	MissingSource      bool
	MissingDestination bool
}

func (e *NotFoundError) Error() string {
	var missing []string
	if e.MissingSource {
		missing = append(missing, fmt.Sprintf("unknown source %q", e.Source))
	}
	if e.MissingDestination {
		missing = append(missing, fmt.Sprintf("unknown destination %q", e.Destination))
	}
	return fmt.Sprintf("no route found from %s to %s: %s", e.Source, e.Destination, strings.Join(missing, ", "))
}

func (e *NotFoundError) Unwrap() error { return ErrStopNotFound }
