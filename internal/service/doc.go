// Package service holds the live state of the server: the current record
// snapshot and policy, the report cache, and the metrics and alert sinks
// that observe every unfiltered report.
package service
