package classify

// ShiftStoppageType is the tag applied to a stoppage on the shift entry form.
type ShiftStoppageType string

const (
	ShiftStrategic ShiftStoppageType = "strategic"
	ShiftPlanned   ShiftStoppageType = "planned"
	ShiftUnplanned ShiftStoppageType = "unplanned"
)

// ShiftStoppageFields are the free-text fields inspected by ShiftStoppage.
type ShiftStoppageFields struct {
	Observacoes     string
	TipoParada      string
	CodigoParada    string
	DescricaoParada string
}

// ShiftRules is evaluated top to bottom; the first match wins.
var ShiftRules = []Rule[ShiftStoppageType]{
	{
		Result:   ShiftStrategic,
		Keywords: []string{"estratégica", "estrategico", "feriado", "inventário", "sem programação", "sem demanda"},
	},
	{
		Result:   ShiftPlanned,
		Keywords: []string{"planejada", "planejado", "programada", "programado", "preventiva", "setup", "troca de formato", "limpeza", "refeição"},
		Except:   []string{"não planejada", "não planejado", "não programada", "não programado", "nao planejada", "nao programada"},
	},
	{
		Result:   ShiftUnplanned,
		Keywords: []string{"não planejada", "não planejado", "corretiva", "quebra", "falha", "emergência"},
	},
}

// ShiftStoppage tags a shift-level stoppage, defaulting to Unplanned when no
// rule matches.
func ShiftStoppage(f ShiftStoppageFields) ShiftStoppageType {
	if t, ok := Match(ShiftRules, f.Observacoes, f.TipoParada, f.CodigoParada, f.DescricaoParada); ok {
		return t
	}
	return ShiftUnplanned
}
