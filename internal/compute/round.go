package compute

import "github.com/shopspring/decimal"

// Round2 rounds v half away from zero at 2 decimal places, working on the
// shortest decimal representation of v so 1.005 rounds to 1.01.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// clamp restricts v to the range [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
