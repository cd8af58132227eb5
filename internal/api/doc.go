// Package api implements the read-only HTTP REST API of shiftlens-server.
//
// New(reporter) returns an http.Handler that serves:
//
//	GET /api/v1/health      records loaded, counts, last load time
//	GET /api/v1/report      the full report
//	GET /api/v1/oee         per-shift OEE breakdown
//	GET /api/v1/kpi         reconciled downtime KPIs
//	GET /api/v1/pareto      Pareto of Big stoppages
//	GET /api/v1/priorities  priority matrix and narrative insights
//	GET /api/v1/trend       daily downtime trend
//	GET /api/v1/dimensions  downtime by natureza and by line
//	GET /api/v1/rollup      line / shift / product summary tree
//	GET /api/v1/alerts      active and recently resolved alerts
//
// Report endpoints accept the query parameters from, to (YYYY-MM-DD), line,
// shift, product and limit. All endpoints respond with JSON and return 405
// for non-GET methods. No external HTTP framework is used.
package api
