package trend

import (
	"sort"

	"github.com/shiftlens/shiftlens/internal/normalize"
)

// Point is one day of the downtime trend.
type Point struct {
	Date             string  `json:"date"`
	BigMinutes       float64 `json:"big_minutes"`
	SmallMinutes     float64 `json:"small_minutes"`
	StrategicMinutes float64 `json:"strategic_minutes"`
	TotalMinutes     float64 `json:"total_minutes"`
	Occurrences      int     `json:"occurrences"`
}

// Daily groups events by date. Events without a date are skipped.
func Daily(events []normalize.Event) []Point {
	byDate := make(map[string]*Point)
	for _, ev := range events {
		if ev.Date == "" {
			continue
		}
		p, ok := byDate[ev.Date]
		if !ok {
			p = &Point{Date: ev.Date}
			byDate[ev.Date] = p
		}
		m := ev.Minutes()
		switch {
		case ev.IsStrategic():
			p.StrategicMinutes += m
		case ev.IsBig():
			p.BigMinutes += m
		default:
			p.SmallMinutes += m
		}
		p.TotalMinutes += m
		p.Occurrences++
	}

	out := make([]Point, 0, len(byDate))
	for _, p := range byDate {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
