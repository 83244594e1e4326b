// Package answer defines the request-scoped data model shared by the
// fan-out coordinator, the arbiters and the presentation layers: per-provider
// outcomes, normalized answers and the aggregate result of a query.
package answer
