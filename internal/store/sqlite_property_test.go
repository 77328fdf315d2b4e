package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"optionsim/internal/models"
)

// Property: for any valid contract spec, saving it and reading it back
// produces an equivalent spec (round-trip consistency), and re-saving
// under the same symbol replaces rather than duplicates.
func TestProperty_ContractSpecRoundTrip(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	underlyings := []string{"NIFTY", "BANKNIFTY", "FINNIFTY", "RELIANCE", "TCS", "INFY", "HDFCBANK", "SBIN"}
	exchanges := []models.Exchange{models.NSE, models.BSE, models.NFO}

	properties.Property("save then get produces equivalent spec", prop.ForAll(
		func(symbolIdx, exchangeIdx, lotSize int, tickSize, strikeStep float64) bool {
			ctx := context.Background()

			// Salt the symbol to avoid conflicts between iterations
			symbol := fmt.Sprintf("%s_%d", underlyings[symbolIdx%len(underlyings)], time.Now().UnixNano()%100000)

			spec := &models.ContractSpec{
				Symbol:     symbol,
				Name:       fmt.Sprintf("%s Futures & Options", symbol),
				Exchange:   exchanges[exchangeIdx%len(exchanges)],
				LotSize:    lotSize,
				TickSize:   tickSize,
				StrikeStep: strikeStep,
			}

			if err := store.SaveContractSpec(ctx, spec); err != nil {
				t.Logf("Failed to save spec: %v", err)
				return false
			}

			retrieved, err := store.GetContractSpec(ctx, symbol)
			if err != nil {
				t.Logf("Failed to get spec: %v", err)
				return false
			}
			if retrieved == nil {
				t.Logf("Spec %s not found after save", symbol)
				return false
			}

			if retrieved.Symbol != spec.Symbol ||
				retrieved.Name != spec.Name ||
				retrieved.Exchange != spec.Exchange ||
				retrieved.LotSize != spec.LotSize {
				t.Logf("Spec mismatch: saved=%+v, retrieved=%+v", spec, retrieved)
				return false
			}
			if !floatEqual(retrieved.TickSize, spec.TickSize, 1e-9) ||
				!floatEqual(retrieved.StrikeStep, spec.StrikeStep, 1e-9) {
				t.Logf("Spec float mismatch: saved=%+v, retrieved=%+v", spec, retrieved)
				return false
			}
			if retrieved.UpdatedAt.IsZero() {
				t.Logf("UpdatedAt not populated for %s", symbol)
				return false
			}

			return true
		},
		gen.IntRange(0, 7),
		gen.IntRange(0, 2),
		gen.IntRange(1, 2000),
		gen.Float64Range(0.01, 1.0),
		gen.Float64Range(1.0, 500.0),
	))

	seq := 0
	properties.Property("re-saving a symbol replaces the row", prop.ForAll(
		func(lotA, lotB int) bool {
			ctx := context.Background()
			seq++
			symbol := fmt.Sprintf("REPLACE_%d", seq)

			before, err := store.ListContractSpecs(ctx)
			if err != nil {
				return false
			}

			specA := &models.ContractSpec{Symbol: symbol, Name: "A", Exchange: models.NFO, LotSize: lotA, TickSize: 0.05, StrikeStep: 50}
			specB := &models.ContractSpec{Symbol: symbol, Name: "B", Exchange: models.NFO, LotSize: lotB, TickSize: 0.05, StrikeStep: 50}

			if err := store.SaveContractSpec(ctx, specA); err != nil {
				return false
			}
			if err := store.SaveContractSpec(ctx, specB); err != nil {
				return false
			}

			after, err := store.ListContractSpecs(ctx)
			if err != nil {
				return false
			}
			if len(after) != len(before)+1 {
				t.Logf("Expected %d specs after replace, got %d", len(before)+1, len(after))
				return false
			}

			retrieved, err := store.GetContractSpec(ctx, symbol)
			if err != nil || retrieved == nil {
				return false
			}
			return retrieved.LotSize == lotB && retrieved.Name == "B"
		},
		gen.IntRange(1, 1000),
		gen.IntRange(1, 1000),
	))

	properties.TestingRun(t)
}

// floatEqual compares two floats with a tolerance.
func floatEqual(a, b, tolerance float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}
