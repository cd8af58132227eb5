package priority

import (
	"testing"

	"github.com/shiftlens/shiftlens/internal/pareto"
)

func TestBuild(t *testing.T) {
	rows := []pareto.Row{
		{Cause: "A", Minutes: 120, Quantity: 2, Percentage: 50, CumulativePercentage: 50},
		{Cause: "B", Minutes: 72, Quantity: 6, Percentage: 30, CumulativePercentage: 80},
		{Cause: "C", Minutes: 48, Quantity: 4, Percentage: 20, CumulativePercentage: 100},
	}
	items := Build(rows, DefaultThresholds())

	want := []struct {
		tier Tier
		avg  float64
		rec  string
	}{
		{Critical, 60, RecommendRootCause},
		{High, 12, RecommendPrevention},
		{Medium, 12, RecommendMonitor},
	}
	if len(items) != len(want) {
		t.Fatalf("items len = %d, want %d", len(items), len(want))
	}
	for i, w := range want {
		it := items[i]
		if it.Tier != w.tier || it.AverageMinutes != w.avg || it.Recommendation != w.rec {
			t.Errorf("item %d = tier %s avg %.1f rec %q, want %s %.1f %q",
				i, it.Tier, it.AverageMinutes, it.Recommendation, w.tier, w.avg, w.rec)
		}
		if it.Cause != rows[i].Cause {
			t.Errorf("item %d cause = %s, want %s (order preserved)", i, it.Cause, rows[i].Cause)
		}
	}
}

func TestBuild_ZeroQuantity(t *testing.T) {
	items := Build([]pareto.Row{{Cause: "Z", Minutes: 10, CumulativePercentage: 10}}, DefaultThresholds())
	if items[0].AverageMinutes != 0 {
		t.Errorf("AverageMinutes = %v, want 0", items[0].AverageMinutes)
	}
	if items[0].Recommendation != RecommendMonitor {
		t.Errorf("Recommendation = %q, want %q", items[0].Recommendation, RecommendMonitor)
	}
}

func TestTierFor_Boundaries(t *testing.T) {
	th := DefaultThresholds()
	tests := []struct {
		cum  float64
		want Tier
	}{
		{0, Critical}, {50, Critical}, {50.01, High}, {80, High}, {80.01, Medium}, {100, Medium},
	}
	for _, tc := range tests {
		if got := th.TierFor(tc.cum); got != tc.want {
			t.Errorf("TierFor(%.2f) = %s, want %s", tc.cum, got, tc.want)
		}
	}
}

func TestRecommend_Boundaries(t *testing.T) {
	tests := []struct {
		avg  float64
		qty  int
		want string
	}{
		{30, 1, RecommendRootCause},
		{29.99, 5, RecommendPrevention},
		{29.99, 4, RecommendMonitor},
		{45, 10, RecommendRootCause},
	}
	for _, tc := range tests {
		if got := Recommend(tc.avg, tc.qty); got != tc.want {
			t.Errorf("Recommend(%.2f, %d) = %q, want %q", tc.avg, tc.qty, got, tc.want)
		}
	}
}
