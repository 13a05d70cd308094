// Package gtfsrt reads GTFS-Realtime service alerts and removes suspended
// services from a transit description before the graph is built.
//
// Only alerts with effect NO_SERVICE matter. An alert is active when the
// reference time falls inside one of its active periods, or always when
// it lists none. Every route_id it informs is suspended; links carrying
// that route id, or named after it, are dropped by FilterLoader.
package gtfsrt
