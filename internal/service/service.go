package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/shiftlens/shiftlens/internal/alerts"
	"github.com/shiftlens/shiftlens/internal/metrics"
	"github.com/shiftlens/shiftlens/internal/report"
	"github.com/shiftlens/shiftlens/internal/source"
	"github.com/shiftlens/shiftlens/internal/store"
	"github.com/shiftlens/shiftlens/pkg/types"
)

// ErrNotLoaded is returned by Report before any snapshot has been loaded.
var ErrNotLoaded = errors.New("service: no record snapshot loaded")

// Query selects the scope of one report.
type Query struct {
	source.Filter

	// Limit overrides the policy's Pareto and dimension limits when > 0.
	Limit int
}

// Key is a stable cache key for q.
func (q Query) Key() string {
	return q.Filter.Key() + "|" + strconv.Itoa(q.Limit)
}

// IsZero reports whether q selects the full snapshot under the policy limits.
func (q Query) IsZero() bool {
	return q.Filter.IsZero() && q.Limit == 0
}

// Service computes reports over the current snapshot, caching them in a
// store.Store. It is safe for concurrent use.
type Service struct {
	path  string
	store *store.Store

	metrics *metrics.Registry
	alerts  *alerts.Engine

	mu       sync.RWMutex
	policy   report.Policy
	snap     *types.Snapshot
	loadedAt time.Time
}

// Option configures optional sinks of a Service.
type Option func(*Service)

// WithMetrics observes every unfiltered report in reg.
func WithMetrics(reg *metrics.Registry) Option {
	return func(s *Service) { s.metrics = reg }
}

// WithAlerts evaluates alert rules against every unfiltered report.
func WithAlerts(e *alerts.Engine) Option {
	return func(s *Service) { s.alerts = e }
}

// New returns a Service reading records from path. Call Load before the
// first Report.
func New(path string, policy report.Policy, st *store.Store, opts ...Option) *Service {
	s := &Service{path: path, policy: policy, store: st}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load re-reads the record file and invalidates the cache. On failure the
// previous snapshot stays active.
func (s *Service) Load() error {
	snap, err := source.Load(s.path)
	if err != nil {
		if s.metrics != nil {
			s.metrics.SourceLoadErrors.Inc()
		}
		return err
	}
	s.SetSnapshot(snap)
	slog.Info("service: records loaded",
		"path", s.path,
		"shifts", len(snap.Shifts),
		"stoppages", len(snap.Stoppages),
	)
	return nil
}

// SetSnapshot replaces the current snapshot and invalidates the cache.
func (s *Service) SetSnapshot(snap *types.Snapshot) {
	s.mu.Lock()
	s.snap = snap
	s.loadedAt = time.Now().UTC()
	s.mu.Unlock()
	s.store.Reset()
}

// SetPolicy replaces the policy and invalidates the cache.
func (s *Service) SetPolicy(p report.Policy) {
	s.mu.Lock()
	s.policy = p
	s.mu.Unlock()
	s.store.Reset()
}

// LoadedAt returns when the current snapshot was loaded; zero before Load.
func (s *Service) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Report returns the report for q, from cache when possible.
func (s *Service) Report(q Query) (*report.Report, error) {
	return s.store.GetOrBuild(q.Key(), func() (*report.Report, error) {
		s.mu.RLock()
		snap, policy := s.snap, s.policy
		s.mu.RUnlock()
		if snap == nil {
			return nil, ErrNotLoaded
		}

		start := time.Now()
		r := report.Build(source.Apply(snap, q.Filter), policy, report.Options{
			ProductID:      q.Product,
			ParetoLimit:    q.Limit,
			DimensionLimit: q.Limit,
		})
		elapsed := time.Since(start)
		slog.Debug("service: report built", "key", q.Key(), "events", r.EventCount, "elapsed", elapsed)

		if q.IsZero() {
			if s.metrics != nil {
				s.metrics.Observe(r, elapsed)
			}
			if s.alerts != nil {
				s.alerts.Evaluate(r.Shifts)
			}
		}
		return r, nil
	})
}

// Refresh rebuilds the unfiltered report so metrics and alerts follow a
// reload without waiting for a request.
func (s *Service) Refresh() error {
	if _, err := s.Report(Query{}); err != nil {
		return fmt.Errorf("service: refresh: %w", err)
	}
	return nil
}

// Alerts returns the active and recently resolved alerts, or nil when no
// alert engine is configured.
func (s *Service) Alerts() []*alerts.Alert {
	if s.alerts == nil {
		return nil
	}
	return s.alerts.Active()
}
