package alerts

import (
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shiftlens/shiftlens/internal/compute"
	"github.com/shiftlens/shiftlens/internal/config"
)

const (
	defaultCooldown   = 15 * time.Minute
	maxHistoryLen     = 200
	recentWindowHours = 1
)

// Alert states.
const (
	StateFiring   = "firing"
	StateResolved = "resolved"
)

// Alert represents a single alert event produced by the rule engine.
type Alert struct {
	ID         string     `json:"id"`
	RuleName   string     `json:"rule_name"`
	ShiftID    string     `json:"shift_id"`
	LineName   string     `json:"line_name"`
	Date       string     `json:"date"`
	Severity   string     `json:"severity"`
	Message    string     `json:"message"`
	Value      float64    `json:"value"`
	FiredAt    time.Time  `json:"fired_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	State      string     `json:"state"`
}

// Engine evaluates alert rules against per-shift results and delivers
// webhook notifications when rules fire or resolve.
//
// Engine is safe for concurrent use.
type Engine struct {
	mu       sync.Mutex
	rules    []config.AlertRule
	webhooks []config.WebhookConfig
	active   map[string]*Alert    // key: "ruleName:shiftID"
	lastFire map[string]time.Time // last fire time per key (for cooldown)
	history  []*Alert             // recently resolved alerts
	client   *http.Client
	now      func() time.Time
	wg       sync.WaitGroup
}

// New creates an Engine from the alert configuration.
// An Engine with no rules is valid; Evaluate becomes a no-op.
func New(cfg config.AlertsConfig) *Engine {
	return &Engine{
		rules:    cfg.Rules,
		webhooks: cfg.Webhooks,
		active:   make(map[string]*Alert),
		lastFire: make(map[string]time.Time),
		client:   &http.Client{Timeout: 10 * time.Second},
		now:      time.Now,
	}
}

// Configure swaps the rules and webhooks after a config reload. Firing
// alerts of removed rules are resolved on the next Evaluate.
func (e *Engine) Configure(cfg config.AlertsConfig) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rules = cfg.Rules
	e.webhooks = cfg.Webhooks
}

// Evaluate tests every rule against every result. Alerts that fire are stored
// and delivered asynchronously. Firing alerts whose condition no longer
// holds, or whose shift or rule is gone, are resolved.
func (e *Engine) Evaluate(results []compute.ShiftResult) {
	e.mu.Lock()
	now := e.now()
	rules := e.rules
	var deliveries []*Alert

	seen := make(map[string]bool)
	for _, rule := range rules {
		for _, r := range results {
			key := rule.Name + ":" + r.ShiftID
			seen[key] = true
			fires, value := evalCondition(rule.Condition, r)

			if !fires {
				if a := e.resolve(key, now); a != nil {
					deliveries = append(deliveries, a)
				}
				continue
			}

			cooldown := rule.Cooldown
			if cooldown <= 0 {
				cooldown = defaultCooldown
			}
			if now.Sub(e.lastFire[key]) <= cooldown {
				continue
			}
			sev := rule.Severity
			if sev == "" {
				sev = "warning"
			}
			a := &Alert{
				ID:       uuid.NewString(),
				RuleName: rule.Name,
				ShiftID:  r.ShiftID,
				LineName: r.LineName,
				Date:     r.Date,
				Severity: sev,
				Value:    value,
				Message: fmt.Sprintf("[%s] %s fired on %s %s shift %s: %s = %.2f",
					sev, rule.Name, r.LineName, r.Date, r.ShiftID, rule.Condition, value),
				FiredAt: now,
				State:   StateFiring,
			}
			e.active[key] = a
			e.lastFire[key] = now
			cp := *a
			deliveries = append(deliveries, &cp)

			slog.Warn("alerts: rule fired",
				"rule", rule.Name,
				"shift", r.ShiftID,
				"line", r.LineName,
				"value", value,
				"severity", sev,
			)
		}
	}

	for key := range e.active {
		if !seen[key] {
			if a := e.resolve(key, now); a != nil {
				deliveries = append(deliveries, a)
			}
		}
	}
	e.mu.Unlock()

	for _, a := range deliveries {
		e.wg.Add(1)
		go func(a *Alert) {
			defer e.wg.Done()
			e.deliver(a)
		}(a)
	}
}

// resolve moves the firing alert under key to the history and returns a
// copy for delivery, or nil when nothing was firing. e.mu must be held.
func (e *Engine) resolve(key string, now time.Time) *Alert {
	a, ok := e.active[key]
	if !ok || a.State != StateFiring {
		return nil
	}
	resolved := now
	a.State = StateResolved
	a.ResolvedAt = &resolved
	delete(e.active, key)

	e.history = append(e.history, a)
	if len(e.history) > maxHistoryLen {
		e.history = e.history[len(e.history)-maxHistoryLen:]
	}

	slog.Info("alerts: rule resolved", "rule", a.RuleName, "shift", a.ShiftID)
	cp := *a
	return &cp
}

// Wait blocks until every pending webhook delivery has finished.
func (e *Engine) Wait() {
	e.wg.Wait()
}

// Active returns copies of all currently firing alerts plus any alerts
// resolved within the past hour, sorted newest first.
func (e *Engine) Active() []*Alert {
	e.mu.Lock()
	defer e.mu.Unlock()

	cutoff := e.now().Add(-recentWindowHours * time.Hour)
	out := make([]*Alert, 0, len(e.active))

	for _, a := range e.active {
		cp := *a
		out = append(out, &cp)
	}
	for _, a := range e.history {
		if a.ResolvedAt != nil && a.ResolvedAt.After(cutoff) {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].FiredAt.Equal(out[j].FiredAt) {
			return out[i].FiredAt.After(out[j].FiredAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
