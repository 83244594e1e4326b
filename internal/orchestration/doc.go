// Package orchestration runs a query against every provider concurrently,
// normalizes the outcomes and selects a best answer. It decouples the core
// from presentation via the ProgressReporter and ResultPresenter interfaces.
package orchestration
