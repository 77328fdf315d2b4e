package payoff

import (
	"testing"

	apperrors "optionsim/internal/errors"
)

func TestValidate(t *testing.T) {
	testCases := []struct {
		name     string
		premiums []float64
		strikes  []float64
		wantErr  error
	}{
		{"valid two leg", []float64{5, 2}, []float64{100, 110}, nil},
		{"valid four leg", []float64{2, 5, 5, 2}, []float64{90, 100, 110, 120}, nil},
		{"equal strikes allowed", []float64{5, 2}, []float64{100, 100}, nil},
		{"single strike", []float64{5}, []float64{100}, nil},
		{"empty input", nil, nil, nil},
		{"zero premium", []float64{0, 2}, []float64{100, 110}, apperrors.ErrInvalidPremium},
		{"negative premium", []float64{5, -1}, []float64{100, 110}, apperrors.ErrInvalidPremium},
		{"descending strikes", []float64{5, 2, 1}, []float64{100, 90, 120}, apperrors.ErrUnorderedStrikes},
		{"late unordered pair", []float64{2, 5, 5, 2}, []float64{90, 100, 120, 110}, apperrors.ErrUnorderedStrikes},
		{"premium checked before strikes", []float64{-2}, []float64{100, 90}, apperrors.ErrInvalidPremium},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.premiums, tc.strikes)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate(%v, %v) = %v, want nil", tc.premiums, tc.strikes, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate(%v, %v) = nil, want %v", tc.premiums, tc.strikes, tc.wantErr)
			}
			if !apperrors.Is(err, tc.wantErr) {
				t.Errorf("Validate(%v, %v) = %v, want %v", tc.premiums, tc.strikes, err, tc.wantErr)
			}
		})
	}
}

func TestValidateReportsOffendingPremium(t *testing.T) {
	err := Validate([]float64{5, -2}, []float64{100, 110})

	var verr *apperrors.ValidationError
	if !apperrors.As(err, &verr) {
		t.Fatalf("error %v is not a ValidationError", err)
	}
	if verr.Field != "premium[2]" {
		t.Errorf("field = %q, want %q", verr.Field, "premium[2]")
	}
	if verr.Value != -2.0 {
		t.Errorf("value = %v, want -2", verr.Value)
	}
}

func TestValidateReportsUnorderedStrikePair(t *testing.T) {
	err := Validate([]float64{5, 2, 1}, []float64{100, 90, 120})

	var verr *apperrors.ValidationError
	if !apperrors.As(err, &verr) {
		t.Fatalf("error %v is not a ValidationError", err)
	}
	if verr.Field != "strike[2]" {
		t.Errorf("field = %q, want %q", verr.Field, "strike[2]")
	}
	if verr.Value != 90.0 {
		t.Errorf("value = %v, want 90", verr.Value)
	}
}

func TestValidateDoesNotMutateInputs(t *testing.T) {
	premiums := []float64{5, 2}
	strikes := []float64{110, 100}

	_ = Validate(premiums, strikes)

	if premiums[0] != 5 || premiums[1] != 2 {
		t.Errorf("premiums mutated: %v", premiums)
	}
	if strikes[0] != 110 || strikes[1] != 100 {
		t.Errorf("strikes mutated: %v", strikes)
	}
}
