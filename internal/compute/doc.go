// Package compute derives OEE metrics for a production shift.
//
// oee.go provides the pure Compute(Input) function:
//
//	availability = operating / (available - strategic)            × 100
//	performance  = min(produced / nominal_speed / operating, 1)    × 100
//	quality      = (produced - loss) / produced                    × 100
//	oee          = availability × performance × quality / 10⁴
//
// engine.go provides Engine, which groups a snapshot's records by shift
// instance and runs Compute once per shift.
//
// Every output is rounded half-up to 2 decimals. Zero production yields an
// all-zero Output so callers can render an empty state.
package compute
