// Package planner finds, ranks and deduplicates transit routes on a
// graph.TransitGraph.
//
// A query resolves the two stop names and runs the direct search first
// (routes on a single service). When direct routes exist, the only combined
// route offered is the best one forced through a metro leg; otherwise a
// bounded breadth-first search over (stop, service) states produces up to
// five multi-leg alternatives.
//
// Every query works on one immutable graph snapshot and keeps no state
// between calls, so a RoutePlanner is safe for concurrent use.
package planner
