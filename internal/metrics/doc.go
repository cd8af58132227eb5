// Package metrics exposes computed reports as Prometheus metrics, either
// over HTTP (Handler) or as a node-exporter textfile (WriteTextfile).
//
// Gauges describe the most recently observed report and are reset on every
// Observe; counters accumulate across reports for the life of the process.
package metrics
