package classify

import "testing"

func TestFold(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Parada Estratégica", "parada estrategica"},
		{"  MANUTENÇÃO   corretiva ", "manutencao corretiva"},
		{"", ""},
		{"Não informado", "nao informado"},
	}
	for _, tc := range tests {
		if got := Fold(tc.in); got != tc.want {
			t.Errorf("Fold(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStoppage(t *testing.T) {
	tests := []struct {
		name     string
		classe   string
		duration float64
		want     Category
	}{
		{"strategic short", "Parada Estratégica", 5, Strategic},
		{"strategic long", "PARADA ESTRATEGICA", 600, Strategic},
		{"bare word", "estratégica", 30, Strategic},
		{"strategic zero duration", "Estrategica", 0, Strategic},
		{"big", "Manutenção", 10.5, Big},
		{"at threshold is small", "Manutenção", 10, Small},
		{"small", "", 3, Small},
		{"zero is small", "Operacional", 0, Small},
		{"substring is not strategic", "estrategica parcial", 30, Big},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Stoppage(StoppageFields{Classe: tc.classe}, tc.duration, DefaultBigThresholdMinutes)
			if got != tc.want {
				t.Errorf("Stoppage(%q, %v) = %q, want %q", tc.classe, tc.duration, got, tc.want)
			}
		})
	}
}

func TestStoppage_Idempotent(t *testing.T) {
	f := StoppageFields{Classe: "Mecânica", Parada: "Quebra de correia"}
	first := Stoppage(f, 42, DefaultBigThresholdMinutes)
	for i := 0; i < 10; i++ {
		if got := Stoppage(f, 42, DefaultBigThresholdMinutes); got != first {
			t.Fatalf("call %d: got %q, want %q", i, got, first)
		}
	}
}

func TestStoppage_CustomThreshold(t *testing.T) {
	if got := Stoppage(StoppageFields{}, 12, 15); got != Small {
		t.Errorf("12 min with threshold 15 = %q, want small", got)
	}
	if got := Stoppage(StoppageFields{}, 16, 15); got != Big {
		t.Errorf("16 min with threshold 15 = %q, want big", got)
	}
}

func TestShiftStoppage(t *testing.T) {
	tests := []struct {
		name string
		in   ShiftStoppageFields
		want ShiftStoppageType
	}{
		{"strategic holiday", ShiftStoppageFields{Observacoes: "Feriado municipal"}, ShiftStrategic},
		{"strategic wins over planned", ShiftStoppageFields{TipoParada: "Planejada", DescricaoParada: "Parada estratégica"}, ShiftStrategic},
		{"planned setup", ShiftStoppageFields{DescricaoParada: "Setup de máquina"}, ShiftPlanned},
		{"planned type", ShiftStoppageFields{TipoParada: "PROGRAMADA"}, ShiftPlanned},
		{"negated planned is unplanned", ShiftStoppageFields{TipoParada: "Não planejada"}, ShiftUnplanned},
		{"negated planned without accent", ShiftStoppageFields{TipoParada: "nao planejada"}, ShiftUnplanned},
		{"negation does not hide real planned", ShiftStoppageFields{TipoParada: "não planejada", Observacoes: "limpeza"}, ShiftPlanned},
		{"corrective", ShiftStoppageFields{CodigoParada: "MEC-01", DescricaoParada: "Quebra do redutor"}, ShiftUnplanned},
		{"nothing matches", ShiftStoppageFields{DescricaoParada: "xyz"}, ShiftUnplanned},
		{"all empty", ShiftStoppageFields{}, ShiftUnplanned},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ShiftStoppage(tc.in); got != tc.want {
				t.Errorf("ShiftStoppage(%+v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestMatch_FirstRuleWins(t *testing.T) {
	rules := []Rule[int]{
		{Result: 1, Keywords: []string{"alpha"}},
		{Result: 2, Keywords: []string{"alpha", "beta"}},
	}
	if got, ok := Match(rules, "ALPHA beta"); !ok || got != 1 {
		t.Errorf("Match = (%d, %v), want (1, true)", got, ok)
	}
	if got, ok := Match(rules, "Béta"); !ok || got != 2 {
		t.Errorf("Match = (%d, %v), want (2, true)", got, ok)
	}
	if _, ok := Match(rules, "gamma"); ok {
		t.Error("Match(gamma) should not match")
	}
}
