// Package timecalc converts wall-clock "HH:MM[:SS]" pairs into durations.
//
// DurationMinutes never fails: malformed or missing input yields 0, which
// callers treat as "unknown/excluded". An end time earlier than the start is
// read as a shift crossing midnight.
package timecalc
