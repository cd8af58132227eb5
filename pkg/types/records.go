package types

// ShiftStatus is the lifecycle state of a ShiftInstance.
type ShiftStatus string

const (
	ShiftNotStarted ShiftStatus = "NotStarted"
	ShiftOpen       ShiftStatus = "Open"
	ShiftClosed     ShiftStatus = "Closed"
)

// ShiftInstance is one concrete occurrence of a work shift on a line, date
// and product.
type ShiftInstance struct {
	ID string `yaml:"id" json:"id"`

	// Date is the calendar day of the shift, formatted "2006-01-02".
	Date string `yaml:"date" json:"date"`

	LineID        string      `yaml:"line_id" json:"line_id"`
	LineName      string      `yaml:"line_name" json:"line_name"`
	ProductID     string      `yaml:"product_id" json:"product_id"`
	ProductName   string      `yaml:"product_name" json:"product_name"`
	WorkShiftID   string      `yaml:"work_shift_id" json:"work_shift_id"`
	WorkShiftName string      `yaml:"work_shift_name" json:"work_shift_name"`
	Status        ShiftStatus `yaml:"status" json:"status"`
	Deleted       bool        `yaml:"deleted" json:"deleted,omitempty"`
}

// ProductionRecord is one logged production interval.
type ProductionRecord struct {
	ID      string `yaml:"id" json:"id"`
	ShiftID string `yaml:"shift_id" json:"shift_id"`

	// Start and End are wall-clock strings, "HH:MM" or "HH:MM:SS".
	Start string `yaml:"start" json:"start"`
	End   string `yaml:"end" json:"end"`

	Quantity float64 `yaml:"quantity" json:"quantity"`

	// NominalSpeed is the line speed snapshot (units/hour) captured when the
	// record was saved.
	NominalSpeed float64 `yaml:"nominal_speed" json:"nominal_speed"`

	Deleted bool `yaml:"deleted" json:"deleted,omitempty"`
}

// QualityLossRecord is a scrapped/lost quantity tied to a shift instance.
type QualityLossRecord struct {
	ID       string  `yaml:"id" json:"id"`
	ShiftID  string  `yaml:"shift_id" json:"shift_id"`
	Quantity float64 `yaml:"quantity" json:"quantity"`
	Deleted  bool    `yaml:"deleted" json:"deleted,omitempty"`
}

// StoppageRecord is one logged downtime interval with free-text cause fields.
type StoppageRecord struct {
	ID      string `yaml:"id" json:"id"`
	ShiftID string `yaml:"shift_id" json:"shift_id"`

	// ProductID overrides the shift's product when set.
	ProductID string `yaml:"product_id" json:"product_id,omitempty"`

	Start string `yaml:"start" json:"start"`
	End   string `yaml:"end" json:"end"`

	Natureza   string `yaml:"natureza" json:"natureza,omitempty"`
	Classe     string `yaml:"classe" json:"classe,omitempty"`
	Parada     string `yaml:"parada" json:"parada,omitempty"`
	Componente string `yaml:"componente" json:"componente,omitempty"`
	Observacao string `yaml:"observacao" json:"observacao,omitempty"`
	Codigo     string `yaml:"codigo" json:"codigo,omitempty"`

	// CatalogID links the record to a CatalogEntry; empty when unlinked.
	CatalogID string `yaml:"catalog_id" json:"catalog_id,omitempty"`

	Deleted bool `yaml:"deleted" json:"deleted,omitempty"`
}

// CatalogEntry is static reference data describing a known stoppage cause.
type CatalogEntry struct {
	ID         string `yaml:"id" json:"id"`
	Code       string `yaml:"code" json:"code"`
	Classe     string `yaml:"classe" json:"classe"`
	Natureza   string `yaml:"natureza" json:"natureza"`
	Parada     string `yaml:"parada" json:"parada"`
	Componente string `yaml:"componente" json:"componente"`
}
