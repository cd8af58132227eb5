package metrics

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"

	"github.com/shiftlens/shiftlens/internal/report"
)

const namespace = "shiftlens"

// Registry holds the shiftlens collectors on a private prometheus.Registry.
type Registry struct {
	reg *prometheus.Registry

	ShiftOEE          *prometheus.GaugeVec
	ShiftAvailability *prometheus.GaugeVec
	ShiftPerformance  *prometheus.GaugeVec
	ShiftQuality      *prometheus.GaugeVec
	DowntimeMinutes   *prometheus.GaugeVec
	CauseMinutes      *prometheus.GaugeVec
	Events            prometheus.Gauge
	LastReport        prometheus.Gauge

	ReportsBuilt     prometheus.Counter
	BuildSeconds     prometheus.Histogram
	OrphanStoppages  prometheus.Counter
	KPIDivergences   *prometheus.CounterVec
	SourceLoadErrors prometheus.Counter
}

// NewRegistry creates and registers every collector.
func NewRegistry() *Registry {
	shiftLabels := []string{"line", "date", "shift"}
	gauge := func(name, help string, labels ...string) *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help}, labels)
	}

	r := &Registry{
		reg:               prometheus.NewRegistry(),
		ShiftOEE:          gauge("shift_oee_percent", "OEE of one shift instance (0-100).", shiftLabels...),
		ShiftAvailability: gauge("shift_availability_percent", "Availability of one shift instance (0-100).", shiftLabels...),
		ShiftPerformance:  gauge("shift_performance_percent", "Performance of one shift instance (0-100).", shiftLabels...),
		ShiftQuality:      gauge("shift_quality_percent", "Quality of one shift instance (0-100).", shiftLabels...),
		DowntimeMinutes:   gauge("downtime_minutes", "Reconciled downtime minutes by stoppage category.", "category"),
		CauseMinutes:      gauge("pareto_cause_minutes", "Big-stoppage minutes of each Pareto cause.", "cause", "class"),
		Events: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "stoppage_events", Help: "Normalised stoppage events in the last report.",
		}),
		LastReport: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "last_report_timestamp_seconds", Help: "Generation time of the last report.",
		}),
		ReportsBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "reports_built_total", Help: "Reports computed.",
		}),
		BuildSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "report_build_seconds", Help: "Time spent computing a report.",
			Buckets: prometheus.DefBuckets,
		}),
		OrphanStoppages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "orphan_stoppages_total", Help: "Stoppage rows dropped for referencing an unknown shift.",
		}),
		KPIDivergences: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "kpi_divergences_total", Help: "Precomputed summary totals that disagreed with raw events.",
		}, []string{"field"}),
		SourceLoadErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "source_load_errors_total", Help: "Failed record snapshot loads.",
		}),
	}

	r.reg.MustRegister(
		r.ShiftOEE, r.ShiftAvailability, r.ShiftPerformance, r.ShiftQuality,
		r.DowntimeMinutes, r.CauseMinutes, r.Events, r.LastReport,
		r.ReportsBuilt, r.BuildSeconds, r.OrphanStoppages, r.KPIDivergences, r.SourceLoadErrors,
	)
	return r
}

// Observe replaces the gauges with the values of rep and bumps the counters.
// elapsed is the time Build took.
func (r *Registry) Observe(rep *report.Report, elapsed time.Duration) {
	r.ShiftOEE.Reset()
	r.ShiftAvailability.Reset()
	r.ShiftPerformance.Reset()
	r.ShiftQuality.Reset()
	for _, s := range rep.Shifts {
		lv := []string{s.LineName, s.Date, s.ShiftID}
		r.ShiftOEE.WithLabelValues(lv...).Set(s.OEE)
		r.ShiftAvailability.WithLabelValues(lv...).Set(s.Availability)
		r.ShiftPerformance.WithLabelValues(lv...).Set(s.Performance)
		r.ShiftQuality.WithLabelValues(lv...).Set(s.Quality)
	}

	r.DowntimeMinutes.WithLabelValues("total").Set(rep.KPI.TotalMinutes)
	r.DowntimeMinutes.WithLabelValues("big").Set(rep.KPI.BigMinutes)
	r.DowntimeMinutes.WithLabelValues("small").Set(rep.KPI.SmallMinutes)
	r.DowntimeMinutes.WithLabelValues("strategic").Set(rep.KPI.StrategicMinutes)

	r.CauseMinutes.Reset()
	for _, row := range rep.Pareto {
		r.CauseMinutes.WithLabelValues(row.Cause, string(row.Class)).Set(row.Minutes)
	}

	r.Events.Set(float64(rep.EventCount))
	r.LastReport.Set(float64(rep.GeneratedAt.Unix()))

	r.ReportsBuilt.Inc()
	r.BuildSeconds.Observe(elapsed.Seconds())
	r.OrphanStoppages.Add(float64(len(rep.Orphans)))
	for _, d := range rep.KPI.Divergences {
		r.KPIDivergences.WithLabelValues(d.Field).Inc()
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// WriteTextfile writes the current metrics to path in the text exposition
// format. The file is replaced atomically so a concurrent collector never
// reads a partial file.
func (r *Registry) WriteTextfile(path string) error {
	mfs, err := r.reg.Gather()
	if err != nil {
		return fmt.Errorf("metrics: gather: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".shiftlens-*.prom")
	if err != nil {
		return fmt.Errorf("metrics: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := expfmt.NewEncoder(tmp, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			tmp.Close()
			return fmt.Errorf("metrics: encode %s: %w", mf.GetName(), err)
		}
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("metrics: close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("metrics: chmod: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("metrics: rename to %q: %w", path, err)
	}
	return nil
}
