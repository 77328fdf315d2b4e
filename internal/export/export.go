// Package export writes payoff curves to CSV files.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// CurveRow is one spot/payoff pair in an exported curve.
type CurveRow struct {
	Spot   float64 `csv:"spot_price"`
	Payoff float64 `csv:"payoff"`
}

// WriteCurveCSV writes a payoff curve to path and returns the number of
// rows written. The parent directory is created if it does not exist.
func WriteCurveCSV(path string, spots, payoff []float64) (int, error) {
	if len(spots) != len(payoff) {
		return 0, fmt.Errorf("spot and payoff series length mismatch: %d vs %d", len(spots), len(payoff))
	}
	if len(spots) == 0 {
		return 0, fmt.Errorf("no curve points to export")
	}

	rows := make([]CurveRow, len(spots))
	for i := range spots {
		rows[i] = CurveRow{Spot: spots[i], Payoff: payoff[i]}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return 0, fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return 0, fmt.Errorf("failed to write CSV: %w", err)
	}

	return len(rows), nil
}
