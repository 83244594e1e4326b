// Package server exposes the query pipeline over HTTP.
//
// Endpoints:
//
//	GET /search?query=...   aggregate result as JSON, graph base64-encoded
//	GET /graph?equation=... {"graph": "<base64 PNG>"} or {"error": "..."}
//	GET /health             liveness with process and system statistics
//	GET /metrics            Prometheus exposition
//
// Every request passes through request-id, security header, per-client
// rate limiting and metrics middleware.
package server
