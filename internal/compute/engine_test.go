package compute

import (
	"testing"

	"github.com/shiftlens/shiftlens/internal/classify"
	"github.com/shiftlens/shiftlens/internal/normalize"
	"github.com/shiftlens/shiftlens/pkg/types"
)

func TestEngine_ByShift_GroupsRecords(t *testing.T) {
	e := NewEngine(12)
	shifts := []types.ShiftInstance{
		{ID: "s2", Date: "2026-03-02", LineID: "L1", LineName: "Linha A"},
		{ID: "s1", Date: "2026-03-01", LineID: "L1", LineName: "Linha A"},
		{ID: "s3", Date: "2026-03-01", LineID: "L2", LineName: "Linha B"},
	}
	production := []types.ProductionRecord{
		{ShiftID: "s1", Quantity: 9600, NominalSpeed: 1200},
		{ShiftID: "s2", Quantity: 6000, NominalSpeed: 1000},
	}
	losses := []types.QualityLossRecord{{ShiftID: "s1", Quantity: 240}}
	events := []normalize.Event{
		{ShiftID: "s1", Category: classify.Big, DurationMinutes: 60},
		{ShiftID: "s2", Category: classify.Big, DurationMinutes: 120},
	}

	got := e.ByShift(shifts, production, losses, events)
	if len(got) != 3 {
		t.Fatalf("ByShift len = %d, want 3", len(got))
	}

	wantOrder := []string{"s1", "s3", "s2"}
	for i, id := range wantOrder {
		if got[i].ShiftID != id {
			t.Errorf("result[%d] = %s, want %s", i, got[i].ShiftID, id)
		}
	}

	if !almostEqual(got[0].OEE, 65, 0.001) {
		t.Errorf("s1 OEE = %.2f, want 65.00", got[0].OEE)
	}
	if got[1].Output != (Output{}) {
		t.Errorf("s3 without production should be zero, got %+v", got[1].Output)
	}
	// s2: available 12, operating 10, availability 83.33; net 6h, performance 60.
	if !almostEqual(got[2].Availability, 83.33, 0.001) || !almostEqual(got[2].Performance, 60, 0.001) {
		t.Errorf("s2 availability/performance = %.2f/%.2f, want 83.33/60.00", got[2].Availability, got[2].Performance)
	}
}

func TestNewEngine_DefaultHours(t *testing.T) {
	if e := NewEngine(0); e.availableHours != DefaultShiftAvailableHours {
		t.Errorf("availableHours = %v, want %v", e.availableHours, DefaultShiftAvailableHours)
	}
}
