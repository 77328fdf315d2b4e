// Package cli provides the command-line interface for the payoff simulator.
package cli

import (
	"strings"
	"testing"
)

// chartGridColumn returns the grid column of marker in line, or -1.
// Each chart row carries a 10-rune label plus " │" before the grid.
func chartGridColumn(line string, marker rune) int {
	runes := []rune(line)
	for i, r := range runes {
		if r == marker {
			return i - 12
		}
	}
	return -1
}

func TestBuildPayoffChart(t *testing.T) {
	// Linear payoff crossing zero at spot 100
	n := 101
	spots := make([]float64, n)
	curve := make([]float64, n)
	for i := 0; i < n; i++ {
		spots[i] = float64(i) * 2 // 0..200
		curve[i] = spots[i] - 100
	}

	width, height := 40, 10
	lines := buildPayoffChart(spots, curve, []float64{100}, width, height)

	if len(lines) != height+2 {
		t.Fatalf("Expected %d chart lines, got %d", height+2, len(lines))
	}

	for i := 0; i < height; i++ {
		if !strings.ContainsRune(lines[i], '│') {
			t.Errorf("Expected y axis on line %d: %q", i, lines[i])
		}
	}
	if !strings.ContainsRune(lines[height], '└') {
		t.Errorf("Expected x axis line, got %q", lines[height])
	}

	zeroLine := -1
	for i, line := range lines {
		if strings.ContainsRune(line, '┄') {
			zeroLine = i
			break
		}
	}
	if zeroLine == -1 {
		t.Fatal("Expected a dashed zero axis line")
	}

	// Breakeven at spot 100 lands at column (100-0)/(200-0) * (width-1)
	wantCol := (width - 1) / 2
	if got := chartGridColumn(lines[zeroLine], '╳'); got != wantCol {
		t.Errorf("Expected breakeven marker at column %d, got %d", wantCol, got)
	}
}

func TestBuildPayoffChartKeepsZeroAxisInFrame(t *testing.T) {
	// All-profit payoff: the zero axis must still be drawn
	spots := []float64{0, 50, 100, 150, 200}
	curve := []float64{5, 5, 5, 5, 5}

	lines := buildPayoffChart(spots, curve, nil, 40, 10)
	if lines == nil {
		t.Fatal("Expected a chart for a flat payoff")
	}

	found := false
	for _, line := range lines {
		if strings.ContainsRune(line, '┄') {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected the zero axis to stay in frame for an all-profit payoff")
	}
}

func TestBuildPayoffChartInsufficientData(t *testing.T) {
	testCases := []struct {
		name   string
		spots  []float64
		payoff []float64
		width  int
		height int
	}{
		{"no points", nil, nil, 40, 10},
		{"single point", []float64{100}, []float64{5}, 40, 10},
		{"degenerate width", []float64{0, 100}, []float64{-5, 5}, 1, 10},
		{"degenerate height", []float64{0, 100}, []float64{-5, 5}, 40, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if lines := buildPayoffChart(tc.spots, tc.payoff, nil, tc.width, tc.height); lines != nil {
				t.Errorf("Expected nil chart, got %d lines", len(lines))
			}
		})
	}
}
