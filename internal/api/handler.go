package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/shiftlens/shiftlens/internal/alerts"
	"github.com/shiftlens/shiftlens/internal/report"
	"github.com/shiftlens/shiftlens/internal/service"
	"github.com/shiftlens/shiftlens/internal/source"
)

// Reporter is the read side of service.Service used by the handlers.
type Reporter interface {
	Report(q service.Query) (*report.Report, error)
	Alerts() []*alerts.Alert
	LoadedAt() time.Time
}

// Handler is the HTTP handler for all /api/v1/* endpoints.
type Handler struct {
	svc Reporter
	mux *http.ServeMux
}

// New creates a Handler wired to svc and registers all routes.
func New(svc Reporter) http.Handler {
	h := &Handler{svc: svc, mux: http.NewServeMux()}

	h.mux.HandleFunc("/api/v1/health", h.health)
	h.mux.HandleFunc("/api/v1/report", h.withReport(func(r *report.Report) interface{} {
		return r
	}))
	h.mux.HandleFunc("/api/v1/oee", h.withReport(func(r *report.Report) interface{} {
		return nonNil(r.Shifts)
	}))
	h.mux.HandleFunc("/api/v1/kpi", h.withReport(func(r *report.Report) interface{} {
		return r.KPI
	}))
	h.mux.HandleFunc("/api/v1/pareto", h.withReport(func(r *report.Report) interface{} {
		return nonNil(r.Pareto)
	}))
	h.mux.HandleFunc("/api/v1/priorities", h.withReport(func(r *report.Report) interface{} {
		return PrioritiesResponse{Items: nonNil(r.Priorities), Insights: nonNil(r.Insights)}
	}))
	h.mux.HandleFunc("/api/v1/trend", h.withReport(func(r *report.Report) interface{} {
		return nonNil(r.Trend)
	}))
	h.mux.HandleFunc("/api/v1/dimensions", h.withReport(func(r *report.Report) interface{} {
		return DimensionsResponse{
			ByNatureza: nonNil(r.ByNatureza),
			ByLine:     nonNil(r.ByLine),
		}
	}))
	h.mux.HandleFunc("/api/v1/rollup", h.withReport(func(r *report.Report) interface{} {
		return nonNil(r.Rollup)
	}))
	h.mux.HandleFunc("/api/v1/alerts", h.alerts)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// --- route handlers ---------------------------------------------------------

// health returns GET /api/v1/health: whether records are loaded and how
// much the unfiltered report holds.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	resp := HealthResponse{AlertCount: countFiring(h.svc.Alerts())}
	rep, err := h.svc.Report(service.Query{})
	if err != nil {
		resp.State = "unavailable"
		resp.Error = err.Error()
		jsonResp(w, http.StatusServiceUnavailable, resp)
		return
	}

	resp.State = "ok"
	resp.ReportID = rep.ID
	resp.LoadedAt = h.svc.LoadedAt().Format(time.RFC3339)
	resp.ShiftCount = len(rep.Shifts)
	resp.EventCount = rep.EventCount
	resp.OrphanCount = len(rep.Orphans)
	jsonResp(w, http.StatusOK, resp)
}

// alerts returns GET /api/v1/alerts: firing alerts plus those resolved in
// the last hour.
func (h *Handler) alerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, nonNil(h.svc.Alerts()))
}

// withReport wraps a projection of the report selected by the request's
// query parameters into a GET handler.
func (h *Handler) withReport(project func(r *report.Report) interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		q, err := parseQuery(r)
		if err != nil {
			jsonErr(w, http.StatusBadRequest, err.Error())
			return
		}

		rep, err := h.svc.Report(q)
		if err != nil {
			if errors.Is(err, service.ErrNotLoaded) {
				jsonErr(w, http.StatusServiceUnavailable, err.Error())
				return
			}
			slog.Error("api: build report", "path", r.URL.Path, "err", err)
			jsonErr(w, http.StatusInternalServerError, "internal error")
			return
		}
		jsonResp(w, http.StatusOK, project(rep))
	}
}

// --- helpers ----------------------------------------------------------------

const dateLayout = "2006-01-02"

// parseQuery reads the report filters from the URL. A positive limit
// replaces the policy's Pareto and dimension limits for this report.
func parseQuery(r *http.Request) (service.Query, error) {
	v := r.URL.Query()
	q := service.Query{
		Filter: source.Filter{
			From:    v.Get("from"),
			To:      v.Get("to"),
			Line:    v.Get("line"),
			Shift:   v.Get("shift"),
			Product: v.Get("product"),
		},
	}
	for name, d := range map[string]string{"from": q.From, "to": q.To} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, d); err != nil {
			return q, fmt.Errorf("%s: want YYYY-MM-DD, got %q", name, d)
		}
	}
	if q.From != "" && q.To != "" && q.From > q.To {
		return q, fmt.Errorf("from %s is after to %s", q.From, q.To)
	}

	if s := v.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return q, fmt.Errorf("limit: want a positive integer, got %q", s)
		}
		q.Limit = n
	}
	return q, nil
}

// nonNil makes empty slices encode as [] instead of null.
func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

func countFiring(as []*alerts.Alert) int {
	n := 0
	for _, a := range as {
		if a.State == alerts.StateFiring {
			n++
		}
	}
	return n
}

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}
