package pareto

import (
	"sort"

	"github.com/shiftlens/shiftlens/internal/normalize"
)

// DefaultLimit is the reference number of causes returned.
const DefaultLimit = 12

// ABC class bounds on the cumulative percentage.
const (
	classABound = 80.0
	classBBound = 95.0
)

// Class is the ABC bucket of a Pareto row.
type Class string

const (
	ClassA Class = "A"
	ClassB Class = "B"
	ClassC Class = "C"
)

// Row is one cause in the Pareto ranking.
type Row struct {
	Cause                string  `json:"cause"`
	Minutes              float64 `json:"minutes"`
	Quantity             int     `json:"quantity"`
	Percentage           float64 `json:"percentage"`
	CumulativePercentage float64 `json:"cumulative_percentage"`
	Class                Class   `json:"class"`
}

// Build groups the Big events by cause (parada), ranks them by minutes then
// occurrence count (both descending, cause name ascending as a final key),
// and returns the first limit rows. A limit below 1 is clamped to 1. When the
// Big events add up to zero minutes the result is empty.
func Build(events []normalize.Event, limit int) []Row {
	if limit < 1 {
		limit = 1
	}

	idx := make(map[string]int)
	var rows []Row
	var total float64
	for _, ev := range events {
		if !ev.IsBig() {
			continue
		}
		i, ok := idx[ev.Parada]
		if !ok {
			i = len(rows)
			idx[ev.Parada] = i
			rows = append(rows, Row{Cause: ev.Parada})
		}
		m := ev.Minutes()
		rows[i].Minutes += m
		rows[i].Quantity++
		total += m
	}
	if total <= 0 {
		return []Row{}
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Minutes != b.Minutes {
			return a.Minutes > b.Minutes
		}
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		return a.Cause < b.Cause
	})

	var cum float64
	for i := range rows {
		rows[i].Percentage = rows[i].Minutes / total * 100
		cum += rows[i].Percentage
		if cum > 100 {
			cum = 100
		}
		rows[i].CumulativePercentage = cum
		rows[i].Class = classFor(i, cum)
	}

	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

// classFor assigns the ABC class; the leading cause is always A.
func classFor(rank int, cumulative float64) Class {
	switch {
	case rank == 0 || cumulative <= classABound:
		return ClassA
	case cumulative <= classBBound:
		return ClassB
	default:
		return ClassC
	}
}
