package kpi

import (
	"log/slog"
	"math"

	"github.com/shiftlens/shiftlens/internal/normalize"
	"github.com/shiftlens/shiftlens/pkg/types"
)

// divergenceEpsilon is the minute difference below which the summary and the
// raw events are considered to agree.
const divergenceEpsilon = 0.01

// Field names reported in Divergence.Field.
const (
	FieldTotal     = "total"
	FieldBig       = "big"
	FieldSmall     = "small"
	FieldStrategic = "strategic"
)

// Summary is the reconciled KPI block for a set of stoppage events.
type Summary struct {
	TotalMinutes     float64 `json:"total_minutes"`
	BigMinutes       float64 `json:"big_minutes"`
	SmallMinutes     float64 `json:"small_minutes"`
	StrategicMinutes float64 `json:"strategic_minutes"`

	Occurrences          int `json:"occurrences"`
	BigOccurrences       int `json:"big_occurrences"`
	SmallOccurrences     int `json:"small_occurrences"`
	StrategicOccurrences int `json:"strategic_occurrences"`

	ImpactedLines int `json:"impacted_lines"`
	ShiftsTouched int `json:"shifts_touched"`

	BigPct       float64 `json:"big_pct"`
	SmallPct     float64 `json:"small_pct"`
	StrategicPct float64 `json:"strategic_pct"`

	// Divergences lists the minute totals where a positive precomputed value
	// disagreed with the raw event sum.
	Divergences []Divergence `json:"divergences,omitempty"`
}

// Divergence records one disagreement between the two minute sources.
type Divergence struct {
	Field       string  `json:"field"`
	Precomputed float64 `json:"precomputed"`
	Raw         float64 `json:"raw"`
}

// Compute aggregates events and reconciles the minute totals with pre.
func Compute(events []normalize.Event, pre types.DowntimeSummary) Summary {
	var raw types.DowntimeSummary
	var s Summary
	lines := make(map[string]struct{})
	shifts := make(map[string]struct{})

	for _, ev := range events {
		m := ev.Minutes()
		raw.TotalMinutes += m
		s.Occurrences++
		switch {
		case ev.IsStrategic():
			raw.StrategicMinutes += m
			s.StrategicOccurrences++
		case ev.IsBig():
			raw.BigMinutes += m
			s.BigOccurrences++
		default:
			raw.SmallMinutes += m
			s.SmallOccurrences++
		}
		lines[ev.LineID+"|"+ev.LineName] = struct{}{}
		if ev.ShiftID != "" {
			shifts[ev.ShiftID] = struct{}{}
		}
	}
	s.ImpactedLines = len(lines)
	s.ShiftsTouched = len(shifts)

	s.TotalMinutes = s.reconcile(FieldTotal, pre.TotalMinutes, raw.TotalMinutes)
	s.BigMinutes = s.reconcile(FieldBig, pre.BigMinutes, raw.BigMinutes)
	s.SmallMinutes = s.reconcile(FieldSmall, pre.SmallMinutes, raw.SmallMinutes)
	s.StrategicMinutes = s.reconcile(FieldStrategic, pre.StrategicMinutes, raw.StrategicMinutes)

	denom := s.TotalMinutes
	if denom == 0 {
		denom = 1
	}
	s.BigPct = s.BigMinutes / denom * 100
	s.SmallPct = s.SmallMinutes / denom * 100
	s.StrategicPct = s.StrategicMinutes / denom * 100
	return s
}

// reconcile returns pre when positive, else raw, and records a divergence
// when both are available and disagree.
func (s *Summary) reconcile(field string, pre, raw float64) float64 {
	if pre <= 0 {
		return raw
	}
	if math.Abs(pre-raw) > divergenceEpsilon {
		slog.Warn("kpi: precomputed summary disagrees with raw events",
			"field", field, "precomputed", pre, "raw", raw)
		s.Divergences = append(s.Divergences, Divergence{Field: field, Precomputed: pre, Raw: raw})
	}
	return pre
}
