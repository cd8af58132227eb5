// Package trend buckets normalised stoppage events over time and over
// dimensions.
//
//	Daily      — minutes per category per calendar date, ascending.
//	ByNatureza — non-strategic minutes per root-cause family, ranked, top-N.
//	ByLine     — all minutes per production line, ranked, top-N.
package trend
