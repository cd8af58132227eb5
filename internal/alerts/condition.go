package alerts

import (
	"strconv"
	"strings"

	"github.com/shiftlens/shiftlens/internal/classify"
	"github.com/shiftlens/shiftlens/internal/compute"
)

// evalCondition evaluates a rule condition string against one shift result.
//
// Supported expressions (field operator value):
//
//	oee < 60
//	availability < 85
//	performance < 70
//	quality < 98
//	big_minutes > 120
//	strategic_minutes >= 240
//	line == Linha 3
//
// Returns (fires bool, triggering value float64).
// Returns (false, 0) if the expression cannot be parsed or the field is unknown.
func evalCondition(cond string, r compute.ShiftResult) (bool, float64) {
	parts := strings.Fields(cond)
	if len(parts) < 3 {
		return false, 0
	}
	field, op := parts[0], parts[1]
	rhs := strings.Join(parts[2:], " ")

	if field == "line" {
		if op == "==" {
			return classify.Fold(r.LineName) == classify.Fold(rhs), 0
		}
		return false, 0
	}

	v, ok := numericField(field, r)
	if !ok {
		return false, 0
	}
	threshold, err := strconv.ParseFloat(rhs, 64)
	if err != nil {
		return false, 0
	}
	return compareFloat(v, op, threshold), v
}

// numericField maps a field name to its value in the result.
func numericField(field string, r compute.ShiftResult) (float64, bool) {
	switch field {
	case "oee":
		return r.OEE, true
	case "availability":
		return r.Availability, true
	case "performance":
		return r.Performance, true
	case "quality":
		return r.Quality, true
	case "big_minutes":
		return r.BigMinutes, true
	case "strategic_minutes":
		return r.StrategicMinutes, true
	case "produced":
		return r.TotalProduced, true
	default:
		return 0, false
	}
}

// compareFloat applies a comparison operator to two float64 values.
func compareFloat(v float64, op string, threshold float64) bool {
	switch op {
	case ">":
		return v > threshold
	case ">=":
		return v >= threshold
	case "<":
		return v < threshold
	case "<=":
		return v <= threshold
	case "==":
		return v == threshold
	default:
		return false
	}
}
