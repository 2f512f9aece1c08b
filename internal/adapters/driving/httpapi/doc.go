// Package httpapi exposes the discovery pipelines over HTTP.
//
// Endpoints:
//
//   - GET /api/extensions: extension repositories as a JSON array
//   - GET /api/go-modules: Go module repositories as a JSON array
//   - GET /healthz: liveness probe
//
// Discovery responses carry permissive CORS headers and answer OPTIONS
// preflights with 204. A pipeline failure becomes a 500 with a plain-text
// body of the form "Error fetching data: <message>".
package httpapi
