// Package server exposes the route planner over HTTP.
//
// Endpoints:
//   - POST /api/routes         body {"source": "...", "destination": "..."}
//   - GET  /api/routes         ?source=...&destination=...
//   - GET  /api/stops          optional ?q= substring filter
//   - GET  /api/health         graph size and version
//   - POST /api/graph/refresh  rebuild the graph from its configured source
//
// Unknown stop names answer 404 with status "error"; a query with no route
// answers 200 with status "no routes found".
package server
