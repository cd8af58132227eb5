package classify

// Category is the analytics classification of a stoppage.
type Category string

const (
	Strategic Category = "strategic"
	Big       Category = "big"
	Small     Category = "small"
)

// DefaultBigThresholdMinutes is the reference policy value separating Big
// from Small stoppages.
const DefaultBigThresholdMinutes = 10.0

// strategicClasses are the folded classe values that mark a stoppage as
// Strategic.
var strategicClasses = map[string]bool{
	"parada estrategica": true,
	"estrategica":        true,
}

// StoppageFields are the resolved text fields of a stoppage.
type StoppageFields struct {
	Classe     string
	Natureza   string
	Parada     string
	Observacao string
	Codigo     string
}

// Stoppage classifies one stoppage.
//
// Strategic wins regardless of duration; otherwise a duration strictly above
// bigThreshold is Big and everything else (including zero and negative
// durations) is Small.
func Stoppage(f StoppageFields, durationMinutes, bigThreshold float64) Category {
	if IsStrategicClasse(f.Classe) {
		return Strategic
	}
	if durationMinutes > bigThreshold {
		return Big
	}
	return Small
}

// IsStrategicClasse reports whether classe names a strategic stoppage.
func IsStrategicClasse(classe string) bool {
	return strategicClasses[Fold(classe)]
}
