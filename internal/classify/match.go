package classify

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lower-cases s, strips diacritics and collapses runs of whitespace so
// "  Parada  Estratégica" and "parada estrategica" compare equal.
func Fold(s string) string {
	// transform.Chain is stateful; build one per call so Fold stays safe for
	// concurrent use.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}

// Rule is one entry of an ordered keyword rule table. A rule matches when any
// keyword occurs in the folded text after every Except phrase has been blanked
// out of it.
type Rule[T any] struct {
	Result   T
	Keywords []string
	Except   []string
}

// Match returns the Result of the first rule matching any of texts.
func Match[T any](rules []Rule[T], texts ...string) (T, bool) {
	hay := make([]string, 0, len(texts))
	for _, t := range texts {
		if f := Fold(t); f != "" {
			hay = append(hay, f)
		}
	}
	for _, r := range rules {
		if r.matches(hay) {
			return r.Result, true
		}
	}
	var zero T
	return zero, false
}

func (r Rule[T]) matches(hay []string) bool {
	for _, h := range hay {
		for _, ex := range r.Except {
			h = strings.ReplaceAll(h, Fold(ex), " ")
		}
		for _, kw := range r.Keywords {
			if k := Fold(kw); k != "" && strings.Contains(h, k) {
				return true
			}
		}
	}
	return false
}
