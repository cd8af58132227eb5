package trend

import (
	"sort"

	"github.com/shiftlens/shiftlens/internal/normalize"
)

// DefaultDimensionLimit is the reference number of slices returned by the
// dimensional rollups.
const DefaultDimensionLimit = 8

// Slice is one ranked group of a dimensional rollup.
type Slice struct {
	Key         string  `json:"key"`
	Label       string  `json:"label"`
	Minutes     float64 `json:"minutes"`
	Occurrences int     `json:"occurrences"`
	Percentage  float64 `json:"percentage"`
}

// ByNatureza ranks non-strategic events by root-cause family.
func ByNatureza(events []normalize.Event, limit int) []Slice {
	return rank(events, limit,
		func(ev normalize.Event) bool { return !ev.IsStrategic() },
		func(ev normalize.Event) (string, string) { return ev.Natureza, ev.Natureza },
	)
}

// ByLine ranks all events, strategic included, by production line. Lines are
// keyed by id and name together so rows with a missing id still group.
func ByLine(events []normalize.Event, limit int) []Slice {
	return rank(events, limit,
		func(normalize.Event) bool { return true },
		func(ev normalize.Event) (string, string) { return ev.LineID + "|" + ev.LineName, ev.LineName },
	)
}

// rank groups the events accepted by keep under key, sorts by minutes then
// occurrences (descending) then label, and truncates to limit after the
// percentages have been computed over the full total.
func rank(
	events []normalize.Event,
	limit int,
	keep func(normalize.Event) bool,
	key func(normalize.Event) (string, string),
) []Slice {
	if limit < 1 {
		limit = 1
	}

	idx := make(map[string]int)
	var out []Slice
	var total float64
	for _, ev := range events {
		if !keep(ev) {
			continue
		}
		k, label := key(ev)
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, Slice{Key: k, Label: label})
		}
		m := ev.Minutes()
		out[i].Minutes += m
		out[i].Occurrences++
		total += m
	}
	if total <= 0 {
		return []Slice{}
	}

	for i := range out {
		out[i].Percentage = out[i].Minutes / total * 100
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Minutes != b.Minutes {
			return a.Minutes > b.Minutes
		}
		if a.Occurrences != b.Occurrences {
			return a.Occurrences > b.Occurrences
		}
		return a.Label < b.Label
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
