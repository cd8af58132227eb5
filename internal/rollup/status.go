package rollup

import "github.com/shiftlens/shiftlens/internal/classify"

// Canonical statuses produced by ResolveStatus.
const (
	StatusOpen      = "Open"
	StatusClosed    = "Closed"
	StatusCancelled = "Cancelled"
)

// statusAliases maps folded raw statuses to their canonical form.
var statusAliases = map[string]string{
	"open":          StatusOpen,
	"aberto":        StatusOpen,
	"aberta":        StatusOpen,
	"em producao":   StatusOpen,
	"in production": StatusOpen,
	"inproduction":  StatusOpen,
	"closed":        StatusClosed,
	"fechado":       StatusClosed,
	"fechada":       StatusClosed,
	"encerrado":     StatusClosed,
	"encerrada":     StatusClosed,
	"cancelled":     StatusCancelled,
	"canceled":      StatusCancelled,
	"cancelado":     StatusCancelled,
	"cancelada":     StatusCancelled,
}

var statusPriority = []string{StatusOpen, StatusClosed, StatusCancelled}

// ResolveStatus picks one representative status from statuses.
func ResolveStatus(statuses []string) string {
	seen := make(map[string]bool, len(statuses))
	first := ""
	for _, s := range statuses {
		if first == "" && s != "" {
			first = s
		}
		if c, ok := statusAliases[classify.Fold(s)]; ok {
			seen[c] = true
		}
	}
	for _, c := range statusPriority {
		if seen[c] {
			return c
		}
	}
	return first
}
