package payoff

import (
	apperrors "optionsim/internal/errors"
	"optionsim/internal/models"
)

// Curve computes the raw payoff vector for a strategy over the given
// spots, index-aligned with spots. Inputs are not validated here.
func Curve(s models.Strategy, spots []float64) ([]float64, error) {
	switch p := s.(type) {
	case models.BullCallSpread:
		return BullCallSpread(spots, p.BuyCallStrike, p.BuyCallPremium, p.SellCallStrike, p.SellCallPremium, p.LotSize), nil
	case models.IronCondor:
		return IronCondor(spots, p.BuyPutStrike, p.BuyPutPremium, p.SellPutStrike, p.SellPutPremium, p.SellCallStrike, p.SellCallPremium, p.BuyCallStrike, p.BuyCallPremium, p.LotSize), nil
	default:
		return nil, apperrors.Wrapf(apperrors.ErrUnknownStrategy, "%s", s.Kind())
	}
}

// Evaluate validates a strategy, computes its payoff vector over the
// given grid, and reduces it to a result. The returned curve is the
// raw payoff vector, index-aligned with spots. Validation failures
// abort the computation; no payoff is computed for invalid input.
func Evaluate(s models.Strategy, spots []float64, tolerance float64) (models.StrategyResult, []float64, error) {
	if s.Lots() < 1 {
		return models.StrategyResult{}, nil, apperrors.NewValidationError(
			"lotSize", s.Lots(), "lot size must be at least 1", apperrors.ErrInvalidLotSize)
	}
	if err := Validate(s.Premiums(), s.Strikes()); err != nil {
		return models.StrategyResult{}, nil, err
	}

	curve, err := Curve(s, spots)
	if err != nil {
		return models.StrategyResult{}, nil, err
	}

	breakevens := FindBreakevens(curve, spots, tolerance)
	summary, err := Summarize(curve, breakevens)
	if err != nil {
		return models.StrategyResult{}, nil, err
	}

	return models.StrategyResult{
		Kind:       s.Kind(),
		Legs:       s.Legs(),
		LotSize:    s.Lots(),
		NetPremium: s.NetPremium(),
		MaxProfit:  summary.MaxProfit,
		MaxLoss:    summary.MaxLoss,
		Breakevens: breakevens,
	}, curve, nil
}
