package payoff

// Canonical spot-price grid used when no override is configured. The
// grid bounds and point count must stay fixed for reproducible results
// across runs.
const (
	DefaultGridPoints = 1000
	DefaultGridMin    = 0.0
	DefaultGridMax    = 5000.0
)

// Grid returns points evenly spaced spot prices from lo to hi, both
// inclusive, in ascending order. A fresh slice is allocated on every
// call; callers own the result. Returns nil when points < 2 or lo is
// not below hi.
func Grid(points int, lo, hi float64) []float64 {
	if points < 2 || lo >= hi {
		return nil
	}
	spots := make([]float64, points)
	step := (hi - lo) / float64(points-1)
	for i := range spots {
		spots[i] = lo + float64(i)*step
	}
	// Pin the last point to hi exactly; accumulated float error would
	// otherwise leave it slightly off.
	spots[points-1] = hi
	return spots
}

// DefaultGrid returns the canonical 1000-point grid from 0 to 5000.
func DefaultGrid() []float64 {
	return Grid(DefaultGridPoints, DefaultGridMin, DefaultGridMax)
}
