package payoff

import (
	"fmt"

	apperrors "optionsim/internal/errors"
)

// Validate checks strategy inputs: every premium must be positive and,
// when more than one strike is supplied, the strike sequence must be
// non-decreasing. Sequences are checked exactly as given; no
// reordering or per-strategy canonicalization happens here. Returns
// nil for valid input, otherwise a *ValidationError naming the
// offending value and wrapping the violated rule.
func Validate(premiums, strikes []float64) error {
	for i, premium := range premiums {
		if premium <= 0 {
			return apperrors.NewValidationError(
				fmt.Sprintf("premium[%d]", i+1),
				premium,
				"all premiums must be positive values",
				apperrors.ErrInvalidPremium,
			)
		}
	}
	if len(strikes) > 1 {
		for i := 0; i+1 < len(strikes); i++ {
			if strikes[i] > strikes[i+1] {
				return apperrors.NewValidationError(
					fmt.Sprintf("strike[%d]", i+2),
					strikes[i+1],
					"strike prices must be in ascending order",
					apperrors.ErrUnorderedStrikes,
				)
			}
		}
	}
	return nil
}
