package payoff

import "sort"

// DefaultTolerance is the minimum local slope magnitude for a
// zero-crossing to be recorded as a breakeven.
const DefaultTolerance = 0.01

// FindBreakevens scans adjacent grid points for zero-crossings of the
// payoff vector and linearly interpolates each crossing spot price,
// rounded to two decimal places. Duplicates collapse; the result is
// sorted ascending. A crossing on a segment whose slope magnitude is
// at most tolerance is skipped, which can under-report a breakeven on
// a genuinely flat-at-zero region. Empty when the payoff never crosses
// zero.
func FindBreakevens(payoff, spots []float64, tolerance float64) []float64 {
	n := len(payoff)
	if len(spots) < n {
		n = len(spots)
	}

	seen := make(map[float64]struct{})
	var breakevens []float64
	for i := 0; i+1 < n; i++ {
		p0, p1 := payoff[i], payoff[i+1]
		crosses := (p0 <= 0 && p1 >= 0) || (p0 >= 0 && p1 <= 0)
		if !crosses {
			continue
		}
		slope := abs(p1 - p0)
		if slope <= tolerance {
			continue
		}
		ratio := abs(p0) / slope
		be := round2(spots[i] + ratio*(spots[i+1]-spots[i]))
		if _, ok := seen[be]; ok {
			continue
		}
		seen[be] = struct{}{}
		breakevens = append(breakevens, be)
	}

	sort.Float64s(breakevens)
	return breakevens
}
