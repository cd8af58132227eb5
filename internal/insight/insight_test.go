package insight

import (
	"testing"

	"github.com/shiftlens/shiftlens/internal/pareto"
	"github.com/shiftlens/shiftlens/internal/priority"
)

// fixedRand always returns the same index, clamped to n.
type fixedRand int

func (f fixedRand) Intn(n int) int {
	if int(f) >= n {
		return n - 1
	}
	return int(f)
}

func item(tier priority.Tier) priority.Item {
	return priority.Item{
		Row:  pareto.Row{Cause: "Quebra de correia", Minutes: 120, Percentage: 42.5},
		Tier: tier,
	}
}

func eligible(it priority.Item) map[string]bool {
	set := map[string]bool{}
	for _, tpl := range Templates(it.Tier) {
		set[Render(tpl, it)] = true
	}
	return set
}

func TestFor_OutputIsEligibleTemplate(t *testing.T) {
	g := NewSeeded(42)
	for _, tier := range []priority.Tier{priority.Critical, priority.High, priority.Medium} {
		it := item(tier)
		set := eligible(it)
		for i := 0; i < 10; i++ {
			if got := g.For(it); !set[got] {
				t.Errorf("tier %s: %q is not an eligible template", tier, got)
			}
		}
	}
}

func TestFor_NoRepeatUntilPoolExhausted(t *testing.T) {
	g := New(fixedRand(0))
	it := item(priority.Critical)
	n := len(Templates(priority.Critical))

	seen := map[string]bool{}
	for i := 0; i < n; i++ {
		got := g.For(it)
		if seen[got] {
			t.Fatalf("template repeated before pool exhausted: %q", got)
		}
		seen[got] = true
	}
	// Pool resets after exhaustion.
	if got := g.For(it); !seen[got] {
		t.Errorf("after reset got %q, want one of the known templates", got)
	}
}

func TestFor_SameSeedSameOutput(t *testing.T) {
	items := []priority.Item{item(priority.Critical), item(priority.High), item(priority.Critical)}
	a := NewSeeded(7).ForAll(items)
	b := NewSeeded(7).ForAll(items)
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("item %d: %q != %q with same seed", i, a[i], b[i])
		}
	}
}

func TestFor_UnknownTierIsEmpty(t *testing.T) {
	if got := NewSeeded(1).For(item("unknown")); got != "" {
		t.Errorf("For(unknown tier) = %q, want empty", got)
	}
}
