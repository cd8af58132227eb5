package priority

import "github.com/shiftlens/shiftlens/internal/pareto"

// Tier is the urgency bucket of an action item.
type Tier string

const (
	Critical Tier = "critical"
	High     Tier = "high"
	Medium   Tier = "medium"
)

// Recommendation texts, chosen by Recommend.
const (
	RecommendRootCause  = "root-cause analysis with owner and plan"
	RecommendPrevention = "recurring-prevention checklist/setup review"
	RecommendMonitor    = "monitor trend"
)

// Reference thresholds.
const (
	DefaultCriticalCumulativePct = 50.0
	DefaultHighCumulativePct     = 80.0

	longStoppageMinutes = 30.0
	recurringQuantity   = 5
)

// Thresholds are the cumulative-percentage upper bounds of the Critical and
// High tiers.
type Thresholds struct {
	CriticalPct float64
	HighPct     float64
}

// DefaultThresholds returns the reference 50/80 split.
func DefaultThresholds() Thresholds {
	return Thresholds{CriticalPct: DefaultCriticalCumulativePct, HighPct: DefaultHighCumulativePct}
}

// Item is one prioritised cause.
type Item struct {
	pareto.Row
	AverageMinutes float64 `json:"average_minutes"`
	Tier           Tier    `json:"tier"`
	Recommendation string  `json:"recommendation"`
}

// Build maps Pareto rows to action items, preserving their order.
func Build(rows []pareto.Row, th Thresholds) []Item {
	out := make([]Item, 0, len(rows))
	for _, r := range rows {
		var avg float64
		if r.Quantity > 0 {
			avg = r.Minutes / float64(r.Quantity)
		}
		out = append(out, Item{
			Row:            r,
			AverageMinutes: avg,
			Tier:           th.TierFor(r.CumulativePercentage),
			Recommendation: Recommend(avg, r.Quantity),
		})
	}
	return out
}

// TierFor returns the tier for a cumulative percentage.
func (th Thresholds) TierFor(cumulative float64) Tier {
	switch {
	case cumulative <= th.CriticalPct:
		return Critical
	case cumulative <= th.HighPct:
		return High
	default:
		return Medium
	}
}

// Recommend picks the recommendation text: long average stoppages need a
// root-cause analysis, frequent ones a prevention review.
func Recommend(averageMinutes float64, quantity int) string {
	switch {
	case averageMinutes >= longStoppageMinutes:
		return RecommendRootCause
	case quantity >= recurringQuantity:
		return RecommendPrevention
	default:
		return RecommendMonitor
	}
}
