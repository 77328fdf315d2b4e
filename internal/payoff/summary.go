package payoff

import (
	"github.com/montanaflynn/stats"

	apperrors "optionsim/internal/errors"
)

// Summary holds the reduced view of a payoff vector.
type Summary struct {
	MaxProfit  float64
	MaxLoss    float64
	Breakevens []float64
}

// Summarize reduces a payoff vector to its maximum profit, maximum
// loss, and the supplied breakevens. The extremes are taken over the
// sampled grid, so accuracy is limited by grid resolution.
func Summarize(payoff []float64, breakevens []float64) (Summary, error) {
	maxProfit, err := stats.Max(payoff)
	if err != nil {
		return Summary{}, apperrors.Wrap(apperrors.ErrEmptyPayoff, "summarize max profit")
	}
	maxLoss, err := stats.Min(payoff)
	if err != nil {
		return Summary{}, apperrors.Wrap(apperrors.ErrEmptyPayoff, "summarize max loss")
	}
	return Summary{
		MaxProfit:  maxProfit,
		MaxLoss:    maxLoss,
		Breakevens: breakevens,
	}, nil
}
