// Package cli provides the command-line interface for the payoff simulator.
package cli

import (
	"fmt"
	"strings"
)

// buildPayoffChart renders a payoff curve into text rows. The zero axis is
// drawn as a dashed line and breakevens are marked on it with ╳.
func buildPayoffChart(spots, payoff, breakevens []float64, width, height int) []string {
	if len(payoff) < 2 || len(spots) < 2 || width < 2 || height < 2 {
		return nil
	}

	n := len(payoff)
	if len(spots) < n {
		n = len(spots)
	}

	// Find min/max for scaling, always keeping the zero axis in frame
	minP := payoff[0]
	maxP := payoff[0]
	for _, p := range payoff[:n] {
		if p < minP {
			minP = p
		}
		if p > maxP {
			maxP = p
		}
	}
	if minP > 0 {
		minP = 0
	}
	if maxP < 0 {
		maxP = 0
	}

	// Add some padding
	padding := (maxP - minP) * 0.1
	if padding == 0 {
		padding = 1
	}
	minP -= padding
	maxP += padding

	scaleY := func(v float64) int {
		return int((v - minP) / (maxP - minP) * float64(height-1))
	}

	// Create chart grid
	chart := make([][]rune, height)
	for i := range chart {
		chart[i] = make([]rune, width)
		for j := range chart[i] {
			chart[i][j] = ' '
		}
	}

	// Plot payoff curve, one sample per column
	for x := 0; x < width; x++ {
		idx := x * (n - 1) / (width - 1)
		y := scaleY(payoff[idx])
		chart[height-1-y][x] = '█'
	}

	// Zero axis
	zeroRow := height - 1 - scaleY(0)
	for x := 0; x < width; x++ {
		if chart[zeroRow][x] == ' ' {
			chart[zeroRow][x] = '┄'
		}
	}

	// Breakeven markers on the zero axis
	s0 := spots[0]
	sEnd := spots[n-1]
	for _, be := range breakevens {
		if be < s0 || be > sEnd || sEnd == s0 {
			continue
		}
		x := int((be - s0) / (sEnd - s0) * float64(width-1))
		chart[zeroRow][x] = '╳'
	}

	lines := make([]string, 0, height+2)
	for i := 0; i < height; i++ {
		label := strings.Repeat(" ", 10)
		switch i {
		case 0:
			label = PadLeft(fmt.Sprintf("%.0f", maxP), 10)
		case zeroRow:
			label = PadLeft("0", 10)
		case height - 1:
			label = PadLeft(fmt.Sprintf("%.0f", minP), 10)
		}
		lines = append(lines, fmt.Sprintf("%s │%s", label, string(chart[i])))
	}
	lines = append(lines, fmt.Sprintf("%s └%s", strings.Repeat(" ", 10), strings.Repeat("─", width)))

	// X axis labels
	left := FormatPrice(s0)
	right := FormatPrice(sEnd)
	gap := width - len(left) - len(right)
	if gap < 1 {
		gap = 1
	}
	lines = append(lines, fmt.Sprintf("%s  %s%s%s", strings.Repeat(" ", 10), left, strings.Repeat(" ", gap), right))

	return lines
}

// RenderPayoffChart prints an ASCII payoff chart.
func RenderPayoffChart(output *Output, spots, payoff, breakevens []float64, width, height int) {
	lines := buildPayoffChart(spots, payoff, breakevens, width, height)
	if lines == nil {
		output.Println("  Insufficient data for payoff chart")
		return
	}
	for _, line := range lines {
		output.Printf("%s\n", line)
	}
}
