package payoff

import "math"

// max returns the maximum of two float64 values.
func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// abs returns the absolute value of a float64.
func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// round2 rounds a value to two decimal places.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
