package rollup

import (
	"sort"

	"github.com/shiftlens/shiftlens/pkg/types"
)

// LineNode is the top level of the summary tree.
type LineNode struct {
	LineID   string `json:"line_id"`
	LineName string `json:"line_name"`
	Status   string `json:"status"`

	// ShiftCount is the number of distinct real shift instances on the line.
	ShiftCount int `json:"qtde_turnos"`

	Measures types.Measures `json:"measures"`
	Shifts   []ShiftNode    `json:"shifts"`
}

// ShiftNode is one shift instance, or the synthetic "no data" node of a line
// that has no registered shift.
type ShiftNode struct {
	ShiftInstanceID string `json:"shift_instance_id,omitempty"`
	Date            string `json:"date"`
	WorkShiftName   string `json:"work_shift_name,omitempty"`
	Status          string `json:"status"`

	Synthetic        bool `json:"synthetic,omitempty"`
	DaysWithoutEntry int  `json:"days_without_entry,omitempty"`

	Measures types.Measures `json:"measures"`
	Products []ProductNode  `json:"products"`
}

// ProductNode is the leaf level: one product within a shift node.
type ProductNode struct {
	ProductID   string         `json:"product_id"`
	ProductName string         `json:"product_name"`
	Status      string         `json:"status"`
	Measures    types.Measures `json:"measures"`
}

// group collects the rows that end up in one node.
type group struct {
	key  string
	rows []types.SummaryRow
}

// Build folds rows into the summary tree. Lines are ordered by name, shift
// nodes by date then id, products by name then id.
func Build(rows []types.SummaryRow) []LineNode {
	var lines []*group
	lineIdx := make(map[string]*group)
	for _, r := range rows {
		k := r.LineID + "|" + r.LineName
		g, ok := lineIdx[k]
		if !ok {
			g = &group{key: k}
			lineIdx[k] = g
			lines = append(lines, g)
		}
		g.rows = append(g.rows, r)
	}

	out := make([]LineNode, 0, len(lines))
	for _, g := range lines {
		out = append(out, buildLine(g.rows))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].LineName != out[j].LineName {
			return out[i].LineName < out[j].LineName
		}
		return out[i].LineID < out[j].LineID
	})
	return out
}

func buildLine(rows []types.SummaryRow) LineNode {
	line := LineNode{LineID: rows[0].LineID, LineName: rows[0].LineName}

	var real, empty []*group
	idx := make(map[string]*group)
	for _, r := range rows {
		k := "date:" + r.Date
		if r.ShiftInstanceID != "" {
			k = "id:" + r.ShiftInstanceID
		}
		g, ok := idx[k]
		if !ok {
			g = &group{key: k}
			idx[k] = g
			if r.ShiftInstanceID != "" {
				real = append(real, g)
			} else {
				empty = append(empty, g)
			}
		}
		g.rows = append(g.rows, r)
	}

	switch {
	case len(real) > 0:
		for _, g := range real {
			line.Shifts = append(line.Shifts, buildShift(g.rows))
		}
		line.ShiftCount = len(real)
	case len(empty) > 0:
		var merged []types.SummaryRow
		for _, g := range empty {
			merged = append(merged, g.rows...)
		}
		node := buildShift(merged)
		node.Synthetic = true
		node.DaysWithoutEntry = len(empty)
		line.Shifts = append(line.Shifts, node)
	}

	sort.SliceStable(line.Shifts, func(i, j int) bool {
		a, b := line.Shifts[i], line.Shifts[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		return a.ShiftInstanceID < b.ShiftInstanceID
	})

	var statuses []string
	for _, s := range line.Shifts {
		line.Measures = line.Measures.Add(s.Measures)
		statuses = append(statuses, s.Status)
	}
	line.Status = ResolveStatus(statuses)
	return line
}

// buildShift merges rows into one shift node. The node date is the earliest
// row date.
func buildShift(rows []types.SummaryRow) ShiftNode {
	node := ShiftNode{
		ShiftInstanceID: rows[0].ShiftInstanceID,
		Date:            rows[0].Date,
		WorkShiftName:   rows[0].WorkShiftName,
	}

	var statuses []string
	var products []*group
	idx := make(map[string]*group)
	for _, r := range rows {
		if r.Date != "" && (node.Date == "" || r.Date < node.Date) {
			node.Date = r.Date
		}
		node.Measures = node.Measures.Add(r.Measures)
		statuses = append(statuses, r.Status)

		k := r.ProductID + "|" + r.ProductName
		g, ok := idx[k]
		if !ok {
			g = &group{key: k}
			idx[k] = g
			products = append(products, g)
		}
		g.rows = append(g.rows, r)
	}
	node.Status = ResolveStatus(statuses)

	for _, g := range products {
		p := ProductNode{ProductID: g.rows[0].ProductID, ProductName: g.rows[0].ProductName}
		var ps []string
		for _, r := range g.rows {
			p.Measures = p.Measures.Add(r.Measures)
			ps = append(ps, r.Status)
		}
		p.Status = ResolveStatus(ps)
		node.Products = append(node.Products, p)
	}
	sort.SliceStable(node.Products, func(i, j int) bool {
		a, b := node.Products[i], node.Products[j]
		if a.ProductName != b.ProductName {
			return a.ProductName < b.ProductName
		}
		return a.ProductID < b.ProductID
	})
	return node
}
