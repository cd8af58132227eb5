package api

import (
	"github.com/shiftlens/shiftlens/internal/priority"
	"github.com/shiftlens/shiftlens/internal/trend"
)

// HealthResponse is the payload for GET /api/v1/health.
type HealthResponse struct {
	State       string `json:"state"` // "ok" | "unavailable"
	ReportID    string `json:"report_id,omitempty"`
	LoadedAt    string `json:"loaded_at,omitempty"` // RFC3339
	ShiftCount  int    `json:"shift_count"`
	EventCount  int    `json:"event_count"`
	OrphanCount int    `json:"orphan_count"`
	AlertCount  int    `json:"alert_count"`
	Error       string `json:"error,omitempty"`
}

// PrioritiesResponse is the payload for GET /api/v1/priorities.
type PrioritiesResponse struct {
	Items    []priority.Item `json:"items"`
	Insights []string        `json:"insights"`
}

// DimensionsResponse is the payload for GET /api/v1/dimensions.
type DimensionsResponse struct {
	ByNatureza []trend.Slice `json:"by_natureza"`
	ByLine     []trend.Slice `json:"by_line"`
}

// errorResponse is a generic JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}
