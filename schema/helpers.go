package schema

import "math"

// SanitizeFloat maps NaN and infinities to 0 so that no non-finite value
// leaks into serialized output.
func SanitizeFloat(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Round2 rounds to two decimal places, matching the precision of the
// serialized percentage-change field.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
