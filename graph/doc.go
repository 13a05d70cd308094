/*
Package graph provides the static transit graph used by the route planner.

A TransitGraph is a directed multigraph: stops are vertices, and every
connection between two stops is an Edge tagged with the service (bus or
metro line) that runs it. Several services may connect the same pair of
stops. Edges are never mirrored automatically; a loader that wants two-way
travel inserts both directions.

# Building

Graphs are built from a Description, the loader-independent shape of a
transit network (stop names plus directed links):

	desc, err := graph.DecodeDescription(file)
	if err != nil {
	    return err
	}
	g, skipped := desc.Build()

Links naming unknown stops are skipped and counted.

# Snapshots

A built graph is never mutated. Publish it through a Store so that queries
running during a rebuild see either the old graph or the new one:

	store := graph.NewStore()
	store.Refresh(ctx, graph.FileLoader("transport_graph.json"))
	g := store.Load()

Descriptions can be cached on disk with WriteSnapshot and ReadSnapshot to
skip re-parsing a large source on restart.
*/
package graph
