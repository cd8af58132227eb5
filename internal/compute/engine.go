package compute

import (
	"sort"

	"github.com/shiftlens/shiftlens/internal/normalize"
	"github.com/shiftlens/shiftlens/pkg/types"
)

// ShiftResult is the OEE Output for one shift instance plus the identity
// fields a table needs to render it.
type ShiftResult struct {
	ShiftID       string `json:"shift_id"`
	Date          string `json:"date"`
	LineID        string `json:"line_id"`
	LineName      string `json:"line_name"`
	ProductID     string `json:"product_id"`
	WorkShiftName string `json:"work_shift_name,omitempty"`
	Output
}

// Engine computes per-shift OEE over a snapshot with a fixed shift length.
// An Engine holds no mutable state and is safe for concurrent use.
type Engine struct {
	availableHours float64
}

// NewEngine returns an Engine using availableHours as the shift length.
// A non-positive value falls back to DefaultShiftAvailableHours.
func NewEngine(availableHours float64) *Engine {
	if availableHours <= 0 {
		availableHours = DefaultShiftAvailableHours
	}
	return &Engine{availableHours: availableHours}
}

// ByShift runs Compute for every shift in shifts, using the production and
// quality-loss records and normalised events that belong to it. Results are
// sorted by date, line name and shift id.
func (e *Engine) ByShift(
	shifts []types.ShiftInstance,
	production []types.ProductionRecord,
	losses []types.QualityLossRecord,
	events []normalize.Event,
) []ShiftResult {
	prodBy := make(map[string][]types.ProductionRecord)
	for _, p := range production {
		prodBy[p.ShiftID] = append(prodBy[p.ShiftID], p)
	}
	lossBy := make(map[string][]types.QualityLossRecord)
	for _, q := range losses {
		lossBy[q.ShiftID] = append(lossBy[q.ShiftID], q)
	}
	evBy := make(map[string][]normalize.Event)
	for _, ev := range events {
		evBy[ev.ShiftID] = append(evBy[ev.ShiftID], ev)
	}

	out := make([]ShiftResult, 0, len(shifts))
	for _, s := range shifts {
		out = append(out, ShiftResult{
			ShiftID:       s.ID,
			Date:          s.Date,
			LineID:        s.LineID,
			LineName:      s.LineName,
			ProductID:     s.ProductID,
			WorkShiftName: s.WorkShiftName,
			Output: Compute(Input{
				ShiftID:        s.ID,
				Production:     prodBy[s.ID],
				QualityLoss:    lossBy[s.ID],
				Events:         evBy[s.ID],
				AvailableHours: e.availableHours,
			}),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.LineName != b.LineName {
			return a.LineName < b.LineName
		}
		return a.ShiftID < b.ShiftID
	})
	return out
}
