package service

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shiftlens/shiftlens/internal/alerts"
	"github.com/shiftlens/shiftlens/internal/config"
	"github.com/shiftlens/shiftlens/internal/metrics"
	"github.com/shiftlens/shiftlens/internal/report"
	"github.com/shiftlens/shiftlens/internal/source"
	"github.com/shiftlens/shiftlens/internal/store"
)

const records = `shifts:
  - {id: s1, date: "2026-03-01", line_id: L1, line_name: A, product_id: p1, status: Closed}
  - {id: s2, date: "2026-03-02", line_id: L2, line_name: B, product_id: p2, status: Open}
production:
  - {id: pr1, shift_id: s1, start: "06:00", end: "14:00", quantity: 9600, nominal_speed: 1200}
  - {id: pr2, shift_id: s2, start: "06:00", end: "14:00", quantity: 1000, nominal_speed: 1200}
quality_loss:
  - {id: q1, shift_id: s1, quantity: 240}
stoppages:
  - {id: st1, shift_id: s1, start: "09:00", end: "10:00", parada: Quebra}
  - {id: st2, shift_id: s2, start: "09:00", end: "09:30", parada: Setup}
`

func writeRecords(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "records.yaml")
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestReport_NotLoaded(t *testing.T) {
	s := New("unused.yaml", report.DefaultPolicy(), store.New(time.Minute))
	if _, err := s.Report(Query{}); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("err: got %v, want ErrNotLoaded", err)
	}
	if err := s.Refresh(); err == nil {
		t.Error("Refresh before Load: expected error")
	}
}

func TestReport_CachedAndFiltered(t *testing.T) {
	st := store.New(time.Minute)
	s := New(writeRecords(t, records), report.DefaultPolicy(), st)
	if err := s.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.LoadedAt().IsZero() {
		t.Error("LoadedAt not set")
	}

	all, err := s.Report(Query{})
	if err != nil {
		t.Fatal(err)
	}
	again, _ := s.Report(Query{})
	if all != again {
		t.Error("second Report call was not served from cache")
	}
	if len(all.Shifts) != 2 || all.KPI.TotalMinutes != 90 {
		t.Errorf("unfiltered: %d shifts, %v minutes", len(all.Shifts), all.KPI.TotalMinutes)
	}

	lineB, err := s.Report(Query{Filter: source.Filter{Line: "b"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(lineB.Shifts) != 1 || lineB.KPI.TotalMinutes != 30 {
		t.Errorf("line filter: %d shifts, %v minutes", len(lineB.Shifts), lineB.KPI.TotalMinutes)
	}

	prod, _ := s.Report(Query{Filter: source.Filter{Product: "p1"}})
	if prod.EventCount != 1 {
		t.Errorf("product filter: %d events, want 1", prod.EventCount)
	}
	if st.Count() != 3 {
		t.Errorf("cache entries: got %d, want 3", st.Count())
	}
}

func TestReport_ProductScopesShiftsAndSummary(t *testing.T) {
	withSummary := records + `summary:
  total_minutes: 90
  big_minutes: 60
`
	s := New(writeRecords(t, withSummary), report.DefaultPolicy(), store.New(time.Minute))
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}

	all, err := s.Report(Query{})
	if err != nil {
		t.Fatal(err)
	}
	if all.KPI.BigMinutes != 60 {
		t.Errorf("unfiltered big minutes: got %v, want 60 from the summary", all.KPI.BigMinutes)
	}

	r, err := s.Report(Query{Filter: source.Filter{Product: "p2"}})
	if err != nil {
		t.Fatal(err)
	}
	if r.EventCount != 1 || r.KPI.TotalMinutes != 30 || r.KPI.BigMinutes != 30 {
		t.Errorf("kpi: events=%d total=%v big=%v, want 1/30/30",
			r.EventCount, r.KPI.TotalMinutes, r.KPI.BigMinutes)
	}
	if len(r.Shifts) != 1 || r.Shifts[0].ShiftID != "s2" {
		t.Fatalf("shifts: got %+v, want only s2", r.Shifts)
	}
	if len(r.Rollup) != 1 || r.Rollup[0].LineName != "B" || r.Rollup[0].Measures.DowntimeMinutes != 30 {
		t.Errorf("rollup: got %+v, want line B with 30 downtime minutes", r.Rollup)
	}
}

func TestReport_LimitIsPartOfTheKey(t *testing.T) {
	st := store.New(time.Minute)
	s := New(writeRecords(t, records), report.DefaultPolicy(), st)
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}
	top, err := s.Report(Query{Limit: 1})
	if err != nil {
		t.Fatal(err)
	}
	all, _ := s.Report(Query{})
	if len(top.Pareto) != 1 || len(all.Pareto) != 2 {
		t.Errorf("pareto rows: limit=1 got %d, unlimited got %d", len(top.Pareto), len(all.Pareto))
	}
	if st.Count() != 2 {
		t.Errorf("cache entries: got %d, want 2", st.Count())
	}
}

func TestSetPolicy_InvalidatesCache(t *testing.T) {
	s := New(writeRecords(t, records), report.DefaultPolicy(), store.New(time.Minute))
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}
	before, _ := s.Report(Query{})

	p := report.DefaultPolicy()
	p.BigThresholdMinutes = 45
	s.SetPolicy(p)

	after, _ := s.Report(Query{})
	if after == before {
		t.Fatal("report not rebuilt after SetPolicy")
	}
	if after.KPI.SmallMinutes != 30 || after.KPI.BigMinutes != 60 {
		t.Errorf("kpi after threshold change: %+v", after.KPI)
	}
}

func TestLoad_FailureKeepsPreviousSnapshot(t *testing.T) {
	path := writeRecords(t, records)
	reg := metrics.NewRegistry()
	s := New(path, report.DefaultPolicy(), store.New(time.Minute), WithMetrics(reg))
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("shifts: [\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := s.Load(); err == nil {
		t.Fatal("expected error for malformed records")
	}
	r, err := s.Report(Query{})
	if err != nil || len(r.Shifts) != 2 {
		t.Errorf("previous snapshot lost: %v, %v", r, err)
	}
}

func TestRefresh_FeedsAlerts(t *testing.T) {
	eng := alerts.New(config.AlertsConfig{Rules: []config.AlertRule{
		{Name: "low-oee", Condition: "oee < 50", Severity: "critical"},
	}})
	s := New(writeRecords(t, records), report.DefaultPolicy(), store.New(time.Minute),
		WithAlerts(eng), WithMetrics(metrics.NewRegistry()))
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}
	if err := s.Refresh(); err != nil {
		t.Fatal(err)
	}
	got := s.Alerts()
	if len(got) != 1 || got[0].ShiftID != "s2" {
		t.Errorf("alerts: %+v, want one firing on s2", got)
	}
}
