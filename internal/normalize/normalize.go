package normalize

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/shiftlens/shiftlens/internal/classify"
	"github.com/shiftlens/shiftlens/internal/timecalc"
	"github.com/shiftlens/shiftlens/pkg/types"
)

// Fallback labels used when neither the catalog nor the record carries text.
const (
	FallbackClasse     = "Não informado"
	FallbackNatureza   = "Não informada"
	FallbackParada     = "Não informada"
	FallbackComponente = "Não informado"
	FallbackLine       = "Linha não informada"
)

// Event is one stoppage joined with its shift instance and catalog entry.
type Event struct {
	StoppageID    string `json:"stoppage_id"`
	ShiftID       string `json:"shift_id"`
	Date          string `json:"date"`
	LineID        string `json:"line_id"`
	LineName      string `json:"line_name"`
	ProductID     string `json:"product_id"`
	WorkShiftName string `json:"work_shift_name,omitempty"`

	Classe     string `json:"classe"`
	Natureza   string `json:"natureza"`
	Parada     string `json:"parada"`
	Componente string `json:"componente"`
	Observacao string `json:"observacao,omitempty"`
	Codigo     string `json:"codigo,omitempty"`

	Start           string            `json:"start"`
	End             string            `json:"end"`
	DurationMinutes float64           `json:"duration_minutes"`
	Category        classify.Category `json:"category"`
}

// IsStrategic reports whether the event is a strategic stoppage.
func (e Event) IsStrategic() bool { return e.Category == classify.Strategic }

// IsBig reports whether the event is a non-strategic stoppage above the threshold.
func (e Event) IsBig() bool { return e.Category == classify.Big }

// IsSmall reports whether the event is a non-strategic micro-stoppage.
func (e Event) IsSmall() bool { return e.Category == classify.Small }

// Minutes returns the duration contribution of the event to minute sums;
// non-positive durations contribute 0.
func (e Event) Minutes() float64 {
	if e.DurationMinutes <= 0 {
		return 0
	}
	return e.DurationMinutes
}

// Input is the data needed to normalise one batch of stoppage rows.
type Input struct {
	Stoppages []types.StoppageRecord
	Shifts    []types.ShiftInstance
	Catalog   []types.CatalogEntry

	// ProductID restricts the output to one effective product when non-empty.
	ProductID string

	// BigThresholdMinutes separates Big from Small; zero uses the default.
	BigThresholdMinutes float64
}

// Output is the normalised event list plus the ids of rows dropped because
// their shift instance was not supplied.
type Output struct {
	Events  []Event
	Orphans []string
}

// Normalize resolves, classifies and sorts every stoppage in in.
// Events are sorted by (date, line name, cause) ascending, then stoppage id.
func Normalize(in Input) Output {
	threshold := in.BigThresholdMinutes
	if threshold <= 0 {
		threshold = classify.DefaultBigThresholdMinutes
	}

	shifts := make(map[string]types.ShiftInstance, len(in.Shifts))
	for _, s := range in.Shifts {
		shifts[s.ID] = s
	}
	catalog := make(map[string]types.CatalogEntry, len(in.Catalog))
	for _, c := range in.Catalog {
		catalog[c.ID] = c
	}

	out := Output{Events: make([]Event, 0, len(in.Stoppages))}
	for _, row := range in.Stoppages {
		shift, ok := shifts[row.ShiftID]
		if !ok {
			slog.Debug("normalize: dropping stoppage without shift in scope",
				"stoppage", row.ID, "shift", row.ShiftID)
			out.Orphans = append(out.Orphans, row.ID)
			continue
		}

		productID := row.ProductID
		if productID == "" {
			productID = shift.ProductID
		}
		if in.ProductID != "" && productID != in.ProductID {
			continue
		}

		var entry types.CatalogEntry
		if row.CatalogID != "" {
			entry = catalog[row.CatalogID]
		}

		ev := Event{
			StoppageID:    row.ID,
			ShiftID:       shift.ID,
			Date:          shift.Date,
			LineID:        shift.LineID,
			LineName:      firstNonBlank(shift.LineName, FallbackLine),
			ProductID:     productID,
			WorkShiftName: shift.WorkShiftName,
			Classe:        firstNonBlank(entry.Classe, row.Classe, FallbackClasse),
			Natureza:      firstNonBlank(entry.Natureza, row.Natureza, FallbackNatureza),
			Parada:        firstNonBlank(entry.Parada, row.Parada, FallbackParada),
			Componente:    firstNonBlank(entry.Componente, row.Componente, FallbackComponente),
			Observacao:    strings.TrimSpace(row.Observacao),
			Codigo:        firstNonBlank(entry.Code, row.Codigo),
			Start:         row.Start,
			End:           row.End,
		}
		ev.DurationMinutes = timecalc.DurationMinutes(row.Start, row.End)
		ev.Category = classify.Stoppage(classify.StoppageFields{
			Classe:     ev.Classe,
			Natureza:   ev.Natureza,
			Parada:     ev.Parada,
			Observacao: ev.Observacao,
			Codigo:     ev.Codigo,
		}, ev.DurationMinutes, threshold)

		out.Events = append(out.Events, ev)
	}

	sort.SliceStable(out.Events, func(i, j int) bool {
		a, b := out.Events[i], out.Events[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.LineName != b.LineName {
			return a.LineName < b.LineName
		}
		if a.Parada != b.Parada {
			return a.Parada < b.Parada
		}
		return a.StoppageID < b.StoppageID
	})
	return out
}

// firstNonBlank returns the first value that is not empty after trimming.
func firstNonBlank(values ...string) string {
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			return t
		}
	}
	return ""
}
