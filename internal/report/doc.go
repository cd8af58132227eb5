// Package report runs every aggregator over one record snapshot and
// assembles the results into a Report.
//
// Normalisation happens once; the independent aggregators (OEE, KPI,
// Pareto/priorities, trend, dimensions, rollup) then run concurrently since
// they share no mutable state. Build is deterministic apart from Report.ID
// and Report.GeneratedAt.
package report
