package source

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/shiftlens/shiftlens/internal/classify"
	"github.com/shiftlens/shiftlens/pkg/types"
)

// Load reads the snapshot at path and drops soft-deleted rows. Files ending
// in ".json" are decoded as JSON, everything else as YAML.
func Load(path string) (*types.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: read %q: %w", path, err)
	}

	snap := &types.Snapshot{}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, snap)
	} else {
		err = yaml.Unmarshal(data, snap)
	}
	if err != nil {
		return nil, fmt.Errorf("source: parse %q: %w", path, err)
	}

	DropDeleted(snap)
	return snap, nil
}

// DropDeleted removes every soft-deleted row from snap in place.
func DropDeleted(snap *types.Snapshot) {
	snap.Shifts = keep(snap.Shifts, func(s types.ShiftInstance) bool { return !s.Deleted })
	snap.Production = keep(snap.Production, func(p types.ProductionRecord) bool { return !p.Deleted })
	snap.QualityLoss = keep(snap.QualityLoss, func(q types.QualityLossRecord) bool { return !q.Deleted })
	snap.Stoppages = keep(snap.Stoppages, func(s types.StoppageRecord) bool { return !s.Deleted })
}

// Filter scopes a snapshot. Zero fields do not filter.
type Filter struct {
	// From and To bound the shift date, inclusive, formatted "2006-01-02".
	From string
	To   string

	// Line matches a line id, or a line name ignoring case and accents.
	Line string

	// Shift matches a shift instance id, a work shift id, or a work shift
	// name ignoring case and accents.
	Shift string

	// Product matches the effective product id of a stoppage: its own
	// product_id when set, else its shift's.
	Product string
}

// IsZero reports whether f filters nothing.
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// Key is a stable cache key for f.
func (f Filter) Key() string {
	return strings.Join([]string{f.From, f.To, f.Line, f.Shift, f.Product}, "|")
}

func (f Filter) matchProduct(id string) bool {
	return f.Product == "" || id == f.Product
}

func (f Filter) matchDate(date string) bool {
	if f.From != "" && date < f.From {
		return false
	}
	if f.To != "" && date > f.To {
		return false
	}
	return true
}

func (f Filter) matchLine(id, name string) bool {
	if f.Line == "" {
		return true
	}
	return id == f.Line || classify.Fold(name) == classify.Fold(f.Line)
}

func (f Filter) matchShift(s types.ShiftInstance) bool {
	if f.Shift == "" {
		return true
	}
	return s.ID == f.Shift || s.WorkShiftID == f.Shift ||
		classify.Fold(s.WorkShiftName) == classify.Fold(f.Shift)
}

// Apply returns a new snapshot holding only the records in scope of f.
//
// Records follow their shift instance. Stoppages whose shift is absent from
// snap altogether are kept so normalisation can still report them as
// orphans. The precomputed downtime summary describes the unfiltered period
// and is dropped whenever f filters anything.
//
// Under a product filter a shift is in scope when it ran the product or holds
// a stoppage overridden to it. Production and quality loss belong to the
// shift's own product, so a shift kept only through an override contributes
// its stoppages but no output.
func Apply(snap *types.Snapshot, f Filter) *types.Snapshot {
	if f.IsZero() {
		cp := *snap
		return &cp
	}

	byID := make(map[string]types.ShiftInstance, len(snap.Shifts))
	for _, s := range snap.Shifts {
		byID[s.ID] = s
	}
	overridden := make(map[string]bool)
	if f.Product != "" {
		for _, st := range snap.Stoppages {
			if st.ProductID == f.Product {
				overridden[st.ShiftID] = true
			}
		}
	}

	inScope := make(map[string]bool, len(snap.Shifts))
	ownsProduct := make(map[string]bool, len(snap.Shifts))
	out := &types.Snapshot{Catalog: snap.Catalog}
	for _, s := range snap.Shifts {
		if !f.matchDate(s.Date) || !f.matchLine(s.LineID, s.LineName) || !f.matchShift(s) {
			continue
		}
		owns := f.matchProduct(s.ProductID)
		if !owns && !overridden[s.ID] {
			continue
		}
		inScope[s.ID] = true
		ownsProduct[s.ID] = owns
		out.Shifts = append(out.Shifts, s)
	}

	out.Production = keep(snap.Production, func(p types.ProductionRecord) bool { return ownsProduct[p.ShiftID] })
	out.QualityLoss = keep(snap.QualityLoss, func(q types.QualityLossRecord) bool { return ownsProduct[q.ShiftID] })
	out.Stoppages = keep(snap.Stoppages, func(st types.StoppageRecord) bool {
		shift, known := byID[st.ShiftID]
		if !known {
			return st.ProductID == "" || f.matchProduct(st.ProductID)
		}
		if !inScope[st.ShiftID] {
			return false
		}
		product := st.ProductID
		if product == "" {
			product = shift.ProductID
		}
		return f.matchProduct(product)
	})
	out.SummaryRows = keep(snap.SummaryRows, func(r types.SummaryRow) bool {
		if !f.matchDate(r.Date) || !f.matchLine(r.LineID, r.LineName) || !f.matchProduct(r.ProductID) {
			return false
		}
		if f.Shift == "" {
			return true
		}
		return r.ShiftInstanceID != "" && inScope[r.ShiftInstanceID]
	})
	return out
}

// keep returns the elements of in accepted by ok, in order.
func keep[T any](in []T, ok func(T) bool) []T {
	out := in[:0:0]
	for _, v := range in {
		if ok(v) {
			out = append(out, v)
		}
	}
	return out
}
