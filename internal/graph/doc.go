// Package graph extracts a plottable expression from a query and renders
// it to PNG. Rendering is optional decoration: callers treat every error
// here as "no graph".
package graph
