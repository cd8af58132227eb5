package types

// Measures are the quantity, loss and downtime totals carried by a summary
// row and accumulated by the hierarchical rollup.
type Measures struct {
	Produced         float64 `yaml:"produced" json:"produced"`
	Loss             float64 `yaml:"loss" json:"loss"`
	DowntimeMinutes  float64 `yaml:"downtime_minutes" json:"downtime_minutes"`
	BigMinutes       float64 `yaml:"big_minutes" json:"big_minutes"`
	SmallMinutes     float64 `yaml:"small_minutes" json:"small_minutes"`
	StrategicMinutes float64 `yaml:"strategic_minutes" json:"strategic_minutes"`
	Occurrences      int     `yaml:"occurrences" json:"occurrences"`
}

// Add returns the element-wise sum of m and o.
func (m Measures) Add(o Measures) Measures {
	return Measures{
		Produced:         m.Produced + o.Produced,
		Loss:             m.Loss + o.Loss,
		DowntimeMinutes:  m.DowntimeMinutes + o.DowntimeMinutes,
		BigMinutes:       m.BigMinutes + o.BigMinutes,
		SmallMinutes:     m.SmallMinutes + o.SmallMinutes,
		StrategicMinutes: m.StrategicMinutes + o.StrategicMinutes,
		Occurrences:      m.Occurrences + o.Occurrences,
	}
}

// SummaryRow is one pre-aggregated row of the per-line summary view.
// ShiftInstanceID is empty when no shift instance was registered for the
// line on Date.
type SummaryRow struct {
	LineID          string   `yaml:"line_id" json:"line_id"`
	LineName        string   `yaml:"line_name" json:"line_name"`
	ShiftInstanceID string   `yaml:"shift_instance_id" json:"shift_instance_id,omitempty"`
	WorkShiftName   string   `yaml:"work_shift_name" json:"work_shift_name,omitempty"`
	Date            string   `yaml:"date" json:"date"`
	ProductID       string   `yaml:"product_id" json:"product_id"`
	ProductName     string   `yaml:"product_name" json:"product_name"`
	Status          string   `yaml:"status" json:"status"`
	Measures        Measures `yaml:"measures" json:"measures"`
}

// DowntimeSummary is a precomputed per-period stoppage total, possibly
// produced by a different aggregation path than the raw stoppage records.
type DowntimeSummary struct {
	TotalMinutes     float64 `yaml:"total_minutes" json:"total_minutes"`
	BigMinutes       float64 `yaml:"big_minutes" json:"big_minutes"`
	SmallMinutes     float64 `yaml:"small_minutes" json:"small_minutes"`
	StrategicMinutes float64 `yaml:"strategic_minutes" json:"strategic_minutes"`
}

// Snapshot is a fully materialised set of records for one query scope, as
// handed over by a record source.
type Snapshot struct {
	Shifts      []ShiftInstance     `yaml:"shifts" json:"shifts"`
	Production  []ProductionRecord  `yaml:"production" json:"production"`
	QualityLoss []QualityLossRecord `yaml:"quality_loss" json:"quality_loss"`
	Stoppages   []StoppageRecord    `yaml:"stoppages" json:"stoppages"`
	Catalog     []CatalogEntry      `yaml:"catalog" json:"catalog"`

	// Summary is optional; a zero value means "not supplied".
	Summary DowntimeSummary `yaml:"summary" json:"summary"`

	// SummaryRows is optional; when empty the rollup is derived from Shifts.
	SummaryRows []SummaryRow `yaml:"summary_rows" json:"summary_rows"`
}
