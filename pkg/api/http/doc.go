// Package http provides the read-only HTTP introspection API.
//
// The HTTP server exposes endpoints for:
//   - Registered events and their listener counts
//   - A JSON view of the bus state
//   - Health checks
//   - Prometheus metrics
package http
