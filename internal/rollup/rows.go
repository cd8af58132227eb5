package rollup

import (
	"github.com/shiftlens/shiftlens/internal/normalize"
	"github.com/shiftlens/shiftlens/pkg/types"
)

// RowsFromShifts derives one summary row per shift instance from raw
// records. It is used when the record source does not supply precomputed
// summary rows.
func RowsFromShifts(
	shifts []types.ShiftInstance,
	production []types.ProductionRecord,
	losses []types.QualityLossRecord,
	events []normalize.Event,
) []types.SummaryRow {
	m := make(map[string]*types.Measures, len(shifts))
	for _, s := range shifts {
		m[s.ID] = &types.Measures{}
	}
	for _, p := range production {
		if acc, ok := m[p.ShiftID]; ok {
			acc.Produced += p.Quantity
		}
	}
	for _, q := range losses {
		if acc, ok := m[q.ShiftID]; ok {
			acc.Loss += q.Quantity
		}
	}
	for _, ev := range events {
		acc, ok := m[ev.ShiftID]
		if !ok {
			continue
		}
		mins := ev.Minutes()
		acc.DowntimeMinutes += mins
		acc.Occurrences++
		switch {
		case ev.IsStrategic():
			acc.StrategicMinutes += mins
		case ev.IsBig():
			acc.BigMinutes += mins
		default:
			acc.SmallMinutes += mins
		}
	}

	rows := make([]types.SummaryRow, 0, len(shifts))
	for _, s := range shifts {
		rows = append(rows, types.SummaryRow{
			LineID:          s.LineID,
			LineName:        s.LineName,
			ShiftInstanceID: s.ID,
			WorkShiftName:   s.WorkShiftName,
			Date:            s.Date,
			ProductID:       s.ProductID,
			ProductName:     s.ProductName,
			Status:          string(s.Status),
			Measures:        *m[s.ID],
		})
	}
	return rows
}
