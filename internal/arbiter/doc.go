// Package arbiter selects a single best answer from the normalized
// candidates of every provider.
package arbiter
