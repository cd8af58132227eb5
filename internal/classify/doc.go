// Package classify assigns stoppage records to categories.
//
// Two independent taxonomies live here and are deliberately kept apart:
//
//   - Stoppage (stoppage.go) — analytics classification: Strategic, Big or
//     Small, driven by the classe text and a duration threshold.
//   - ShiftStoppage (shift.go) — shift-entry tagging: Strategic, Planned or
//     Unplanned, driven by an ordered keyword rule table.
//
// Both share the accent/case-insensitive text folding and keyword matching in
// match.go.
package classify
