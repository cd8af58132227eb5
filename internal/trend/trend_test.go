package trend

import (
	"fmt"
	"math"
	"testing"

	"github.com/shiftlens/shiftlens/internal/classify"
	"github.com/shiftlens/shiftlens/internal/normalize"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func ev(date, lineID, line, natureza string, cat classify.Category, minutes float64) normalize.Event {
	return normalize.Event{
		Date: date, LineID: lineID, LineName: line, Natureza: natureza,
		Category: cat, DurationMinutes: minutes,
	}
}

func TestDaily(t *testing.T) {
	events := []normalize.Event{
		ev("2026-03-02", "L1", "A", "Mecânica", classify.Big, 30),
		ev("2026-03-01", "L1", "A", "Mecânica", classify.Small, 5),
		ev("2026-03-02", "L2", "B", "Elétrica", classify.Strategic, 60),
		ev("2026-03-02", "L2", "B", "Elétrica", classify.Small, 4),
		ev("", "L2", "B", "Elétrica", classify.Big, 999),
	}
	points := Daily(events)
	if len(points) != 2 {
		t.Fatalf("points len = %d, want 2 (undated event dropped)", len(points))
	}
	if points[0].Date != "2026-03-01" || points[1].Date != "2026-03-02" {
		t.Errorf("dates = %s,%s want ascending", points[0].Date, points[1].Date)
	}
	p := points[1]
	if p.BigMinutes != 30 || p.SmallMinutes != 4 || p.StrategicMinutes != 60 || p.TotalMinutes != 94 || p.Occurrences != 3 {
		t.Errorf("2026-03-02 = %+v", p)
	}
}

func TestByNatureza_ExcludesStrategic(t *testing.T) {
	events := []normalize.Event{
		ev("d", "L1", "A", "Mecânica", classify.Big, 60),
		ev("d", "L1", "A", "Elétrica", classify.Small, 20),
		ev("d", "L1", "A", "Elétrica", classify.Big, 20),
		ev("d", "L1", "A", "Planejamento", classify.Strategic, 500),
	}
	slices := ByNatureza(events, DefaultDimensionLimit)
	if len(slices) != 2 {
		t.Fatalf("slices = %+v, want 2", slices)
	}
	if slices[0].Label != "Mecânica" || !almostEqual(slices[0].Percentage, 60, 1e-9) {
		t.Errorf("slices[0] = %+v, want Mecânica 60%%", slices[0])
	}
	if slices[1].Label != "Elétrica" || slices[1].Occurrences != 2 || !almostEqual(slices[1].Percentage, 40, 1e-9) {
		t.Errorf("slices[1] = %+v, want Elétrica 40%% x2", slices[1])
	}
}

func TestByLine_IncludesStrategicAndToleratesMissingID(t *testing.T) {
	events := []normalize.Event{
		ev("d", "", "Linha X", "n", classify.Strategic, 100),
		ev("d", "", "Linha X", "n", classify.Small, 0),
		ev("d", "L1", "Linha X", "n", classify.Big, 50),
		ev("d", "L2", "Linha Y", "n", classify.Big, 50),
	}
	slices := ByLine(events, DefaultDimensionLimit)
	if len(slices) != 3 {
		t.Fatalf("slices = %+v, want 3 groups", slices)
	}
	if slices[0].Key != "|Linha X" || slices[0].Minutes != 100 || slices[0].Occurrences != 2 {
		t.Errorf("slices[0] = %+v, want |Linha X 100 min x2", slices[0])
	}
	if !almostEqual(slices[0].Percentage, 50, 1e-9) {
		t.Errorf("slices[0].Percentage = %v, want 50", slices[0].Percentage)
	}
}

func TestRank_TruncatesAfterPercentages(t *testing.T) {
	var events []normalize.Event
	for i := 0; i < 10; i++ {
		events = append(events, ev("d", fmt.Sprint(i), fmt.Sprintf("L%02d", i), "n", classify.Big, 10))
	}
	slices := ByLine(events, 3)
	if len(slices) != 3 {
		t.Fatalf("len = %d, want 3", len(slices))
	}
	for _, s := range slices {
		if !almostEqual(s.Percentage, 10, 1e-9) {
			t.Errorf("%s percentage = %v, want 10 (full total)", s.Label, s.Percentage)
		}
	}
	if slices[0].Label != "L00" {
		t.Errorf("tie order: first = %s, want L00", slices[0].Label)
	}
}

func TestRollups_EmptyWhenTotalZero(t *testing.T) {
	events := []normalize.Event{
		ev("d", "L1", "A", "Planejamento", classify.Strategic, 30),
		ev("d", "L1", "A", "Mecânica", classify.Small, 0),
	}
	if got := ByNatureza(events, DefaultDimensionLimit); len(got) != 0 {
		t.Errorf("ByNatureza = %+v, want empty", got)
	}
	if got := ByLine(nil, DefaultDimensionLimit); len(got) != 0 {
		t.Errorf("ByLine(nil) = %+v, want empty", got)
	}
}
