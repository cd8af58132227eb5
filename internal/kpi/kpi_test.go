package kpi

import (
	"math"
	"testing"

	"github.com/shiftlens/shiftlens/internal/classify"
	"github.com/shiftlens/shiftlens/internal/normalize"
	"github.com/shiftlens/shiftlens/pkg/types"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func events() []normalize.Event {
	return []normalize.Event{
		{ShiftID: "s1", LineID: "L1", LineName: "A", Category: classify.Big, DurationMinutes: 60},
		{ShiftID: "s1", LineID: "L1", LineName: "A", Category: classify.Small, DurationMinutes: 5},
		{ShiftID: "s2", LineID: "L2", LineName: "B", Category: classify.Small, DurationMinutes: 15},
		{ShiftID: "s2", LineID: "L2", LineName: "B", Category: classify.Strategic, DurationMinutes: 120},
		{ShiftID: "s3", LineID: "", LineName: "C", Category: classify.Small, DurationMinutes: 0},
	}
}

func TestCompute_FallsBackToRawWhenSummaryEmpty(t *testing.T) {
	s := Compute(events(), types.DowntimeSummary{})

	if s.TotalMinutes != 200 || s.BigMinutes != 60 || s.SmallMinutes != 20 || s.StrategicMinutes != 120 {
		t.Errorf("minutes = total %v big %v small %v strategic %v, want 200/60/20/120",
			s.TotalMinutes, s.BigMinutes, s.SmallMinutes, s.StrategicMinutes)
	}
	if s.Occurrences != 5 || s.BigOccurrences != 1 || s.SmallOccurrences != 3 || s.StrategicOccurrences != 1 {
		t.Errorf("occurrences = %d/%d/%d/%d, want 5/1/3/1",
			s.Occurrences, s.BigOccurrences, s.SmallOccurrences, s.StrategicOccurrences)
	}
	if s.ImpactedLines != 3 || s.ShiftsTouched != 3 {
		t.Errorf("lines/shifts = %d/%d, want 3/3", s.ImpactedLines, s.ShiftsTouched)
	}
	if !almostEqual(s.BigPct, 30, 1e-9) || !almostEqual(s.SmallPct, 10, 1e-9) || !almostEqual(s.StrategicPct, 60, 1e-9) {
		t.Errorf("pct = %v/%v/%v, want 30/10/60", s.BigPct, s.SmallPct, s.StrategicPct)
	}
	if len(s.Divergences) != 0 {
		t.Errorf("Divergences = %v, want none", s.Divergences)
	}
}

func TestCompute_SummaryWinsWhenPositive(t *testing.T) {
	pre := types.DowntimeSummary{TotalMinutes: 1000, BigMinutes: 500, SmallMinutes: 0, StrategicMinutes: 250}
	s := Compute(events(), pre)

	if s.TotalMinutes != 1000 || s.BigMinutes != 500 || s.StrategicMinutes != 250 {
		t.Errorf("reconciled = %v/%v/%v, want 1000/500/250", s.TotalMinutes, s.BigMinutes, s.StrategicMinutes)
	}
	// Small summary is zero → raw sum.
	if s.SmallMinutes != 20 {
		t.Errorf("SmallMinutes = %v, want raw 20", s.SmallMinutes)
	}
	if !almostEqual(s.BigPct, 50, 1e-9) || !almostEqual(s.SmallPct, 2, 1e-9) {
		t.Errorf("pct big/small = %v/%v, want 50/2 (reconciled denominator)", s.BigPct, s.SmallPct)
	}
	if len(s.Divergences) != 3 {
		t.Fatalf("Divergences = %v, want 3 entries", s.Divergences)
	}
	if d := s.Divergences[0]; d.Field != FieldTotal || d.Precomputed != 1000 || d.Raw != 200 {
		t.Errorf("Divergences[0] = %+v", d)
	}
}

func TestCompute_AgreeingSummaryHasNoDivergence(t *testing.T) {
	pre := types.DowntimeSummary{TotalMinutes: 200, BigMinutes: 60, SmallMinutes: 20, StrategicMinutes: 120}
	if s := Compute(events(), pre); len(s.Divergences) != 0 {
		t.Errorf("Divergences = %v, want none", s.Divergences)
	}
}

func TestCompute_EmptyIsAllZero(t *testing.T) {
	s := Compute(nil, types.DowntimeSummary{})
	if s.TotalMinutes != 0 || s.BigPct != 0 || s.SmallPct != 0 || s.StrategicPct != 0 {
		t.Errorf("empty summary = %+v, want zeros", s)
	}
	if s.ImpactedLines != 0 || s.ShiftsTouched != 0 {
		t.Errorf("lines/shifts = %d/%d, want 0/0", s.ImpactedLines, s.ShiftsTouched)
	}
}
