// Package maths provides small numeric helpers.
package maths

import "math"

// RoundFloat64ToInt rounds v to the nearest int. NaN and infinities map to 0.
func RoundFloat64ToInt(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}

	return int(math.Round(v))
}
