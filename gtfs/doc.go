/*
Package gtfs turns a GTFS static feed into a transit description.

Only the files needed to build a stop graph are read: stops.txt,
routes.txt, trips.txt and stop_times.txt. Every pair of consecutive stops
of a trip becomes a link on the trip's route.

# Basic Usage

Load from a URL or a local path:

	desc, err := gtfs.LoadDescription(ctx, "https://example.org/gtfs.zip")
	if err != nil {
	    log.Fatal(err)
	}
	g, skipped := desc.Build()

Or plug the feed into a graph.Store:

	store := graph.NewStore()
	_, err := store.Refresh(ctx, gtfs.Loader("gtfs.zip"))

# Service Names

A link's service is the route's route_short_name, falling back to
route_long_name and then route_id. The route_id is kept on every link so
service alerts can suspend a route by id.

# Stops

Stops are merged by name: platforms sharing a stop_name become one graph
stop, which lets the planner transfer between them. The first coordinates
seen for a name are kept.

# Modes

route_type 1 (subway), 2 (rail) and 12 (monorail) are tagged METRO, every
other route type BUS. Whether a tag is trusted for metro detection is up
to the planner.
*/
package gtfs
