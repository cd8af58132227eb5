// Package insight renders short narrative sentences for prioritised
// stoppage causes. Template choice is random but drawn from an injectable
// Rand, and a Generator avoids repeating a template until every template of
// the same tier has been used once.
package insight

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/shiftlens/shiftlens/internal/priority"
)

// Rand is the subset of *rand.Rand used by Generator.
type Rand interface {
	Intn(n int) int
}

// Each template takes the cause, the minutes lost and the share of Big
// downtime, in that order.
var templates = map[priority.Tier][]string{
	priority.Critical: {
		"%s alone cost %.0f min, %.1f%% of big-stoppage time. Assign an owner now.",
		"Fixing %s recovers the most availability: %.0f min lost (%.1f%%).",
		"%s leads the ranking with %.0f min (%.1f%%); open a root-cause study.",
	},
	priority.High: {
		"%s added %.0f min of downtime (%.1f%%). Plan it for the next review.",
		"%s is in the vital few: %.0f min, %.1f%% of the total.",
	},
	priority.Medium: {
		"%s is minor for now (%.0f min, %.1f%%). Keep watching the trend.",
		"%s contributed %.0f min (%.1f%%); no immediate action needed.",
	},
}

// Templates returns the format strings eligible for tier.
func Templates(tier priority.Tier) []string {
	return append([]string(nil), templates[tier]...)
}

// Render formats one template for item.
func Render(format string, item priority.Item) string {
	return fmt.Sprintf(format, item.Cause, item.Minutes, item.Percentage)
}

// Generator picks templates for items. It is safe for concurrent use.
type Generator struct {
	mu   sync.Mutex
	rng  Rand
	used map[priority.Tier]map[int]bool
}

// New returns a Generator drawing from rng.
func New(rng Rand) *Generator {
	return &Generator{rng: rng, used: make(map[priority.Tier]map[int]bool)}
}

// NewSeeded returns a Generator backed by math/rand with a fixed seed.
func NewSeeded(seed int64) *Generator {
	return New(rand.New(rand.NewSource(seed)))
}

// For returns one narrative sentence for item.
func (g *Generator) For(item priority.Item) string {
	pool := templates[item.Tier]
	if len(pool) == 0 {
		return ""
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	used := g.used[item.Tier]
	if used == nil || len(used) >= len(pool) {
		used = make(map[int]bool, len(pool))
		g.used[item.Tier] = used
	}
	free := make([]int, 0, len(pool))
	for i := range pool {
		if !used[i] {
			free = append(free, i)
		}
	}
	pick := free[g.rng.Intn(len(free))]
	used[pick] = true
	return Render(pool[pick], item)
}

// ForAll returns one sentence per item, in order.
func (g *Generator) ForAll(items []priority.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, g.For(it))
	}
	return out
}
