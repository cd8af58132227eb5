package report

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shiftlens/shiftlens/internal/classify"
	"github.com/shiftlens/shiftlens/internal/compute"
	"github.com/shiftlens/shiftlens/internal/insight"
	"github.com/shiftlens/shiftlens/internal/kpi"
	"github.com/shiftlens/shiftlens/internal/normalize"
	"github.com/shiftlens/shiftlens/internal/pareto"
	"github.com/shiftlens/shiftlens/internal/priority"
	"github.com/shiftlens/shiftlens/internal/rollup"
	"github.com/shiftlens/shiftlens/internal/trend"
	"github.com/shiftlens/shiftlens/pkg/types"
)

// Policy carries the configurable constants of every aggregator.
type Policy struct {
	ShiftAvailableHours float64
	BigThresholdMinutes float64
	ParetoLimit         int
	DimensionLimit      int
	Thresholds          priority.Thresholds

	// InsightSeed seeds the narrative generator; zero disables narratives.
	InsightSeed int64
}

// DefaultPolicy returns the reference policy: 12h shifts, 10 min threshold,
// top-12 Pareto, top-8 dimensions, 50/80 tiers.
func DefaultPolicy() Policy {
	return Policy{
		ShiftAvailableHours: compute.DefaultShiftAvailableHours,
		BigThresholdMinutes: classify.DefaultBigThresholdMinutes,
		ParetoLimit:         pareto.DefaultLimit,
		DimensionLimit:      trend.DefaultDimensionLimit,
		Thresholds:          priority.DefaultThresholds(),
	}
}

// Options narrow one Build call without changing the policy.
type Options struct {
	// ProductID restricts stoppage events to one effective product. Shift
	// measures follow the snapshot, so scope it with source.Apply first.
	ProductID string

	// ParetoLimit and DimensionLimit override the policy limits when > 0.
	ParetoLimit    int
	DimensionLimit int
}

// Report is the full set of aggregates for one snapshot.
type Report struct {
	ID          string    `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`

	Shifts     []compute.ShiftResult `json:"shifts"`
	KPI        kpi.Summary           `json:"kpi"`
	Pareto     []pareto.Row          `json:"pareto"`
	Priorities []priority.Item       `json:"priorities"`
	Insights   []string              `json:"insights,omitempty"`
	Trend      []trend.Point         `json:"trend"`
	ByNatureza []trend.Slice         `json:"by_natureza"`
	ByLine     []trend.Slice         `json:"by_line"`
	Rollup     []rollup.LineNode     `json:"rollup"`

	EventCount int      `json:"event_count"`
	Orphans    []string `json:"orphans,omitempty"`
}

// Build computes a Report for snap under policy p.
func Build(snap *types.Snapshot, p Policy, opts Options) *Report {
	norm := normalize.Normalize(normalize.Input{
		Stoppages:           snap.Stoppages,
		Shifts:              snap.Shifts,
		Catalog:             snap.Catalog,
		ProductID:           opts.ProductID,
		BigThresholdMinutes: p.BigThresholdMinutes,
	})
	if len(norm.Orphans) > 0 {
		slog.Warn("report: stoppages reference shifts outside the snapshot",
			"count", len(norm.Orphans))
	}
	events := norm.Events

	paretoLimit, dimLimit := p.ParetoLimit, p.DimensionLimit
	if opts.ParetoLimit > 0 {
		paretoLimit = opts.ParetoLimit
	}
	if opts.DimensionLimit > 0 {
		dimLimit = opts.DimensionLimit
	}

	r := &Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		EventCount:  len(events),
		Orphans:     norm.Orphans,
	}

	var wg sync.WaitGroup
	run := func(f func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f()
		}()
	}

	run(func() {
		r.Shifts = compute.NewEngine(p.ShiftAvailableHours).
			ByShift(snap.Shifts, snap.Production, snap.QualityLoss, events)
	})
	run(func() { r.KPI = kpi.Compute(events, snap.Summary) })
	run(func() {
		r.Pareto = pareto.Build(events, paretoLimit)
		r.Priorities = priority.Build(r.Pareto, p.Thresholds)
		if p.InsightSeed != 0 {
			r.Insights = insight.NewSeeded(p.InsightSeed).ForAll(r.Priorities)
		}
	})
	run(func() { r.Trend = trend.Daily(events) })
	run(func() {
		r.ByNatureza = trend.ByNatureza(events, dimLimit)
		r.ByLine = trend.ByLine(events, dimLimit)
	})
	run(func() {
		rows := snap.SummaryRows
		if len(rows) == 0 {
			rows = rollup.RowsFromShifts(snap.Shifts, snap.Production, snap.QualityLoss, events)
		}
		r.Rollup = rollup.Build(rows)
	})

	wg.Wait()
	return r
}
