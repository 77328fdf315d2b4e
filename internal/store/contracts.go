package store

import (
	"context"
	"fmt"
	"time"

	"optionsim/internal/models"
)

// defaultContractSpecs holds the bundled NSE/BSE F&O contract specs.
// Lot sizes follow the exchange circulars and change a few times a year;
// `optsim contracts seed` refreshes a database back to this set.
var defaultContractSpecs = []models.ContractSpec{
	{Symbol: "NIFTY", Name: "Nifty 50 Index", Exchange: models.NFO, LotSize: 75, TickSize: 0.05, StrikeStep: 50},
	{Symbol: "BANKNIFTY", Name: "Nifty Bank Index", Exchange: models.NFO, LotSize: 35, TickSize: 0.05, StrikeStep: 100},
	{Symbol: "FINNIFTY", Name: "Nifty Financial Services Index", Exchange: models.NFO, LotSize: 65, TickSize: 0.05, StrikeStep: 50},
	{Symbol: "MIDCPNIFTY", Name: "Nifty Midcap Select Index", Exchange: models.NFO, LotSize: 140, TickSize: 0.05, StrikeStep: 25},
	{Symbol: "SENSEX", Name: "BSE Sensex Index", Exchange: models.BSE, LotSize: 20, TickSize: 0.05, StrikeStep: 100},
	{Symbol: "RELIANCE", Name: "Reliance Industries", Exchange: models.NFO, LotSize: 500, TickSize: 0.05, StrikeStep: 20},
	{Symbol: "TCS", Name: "Tata Consultancy Services", Exchange: models.NFO, LotSize: 175, TickSize: 0.05, StrikeStep: 20},
	{Symbol: "INFY", Name: "Infosys", Exchange: models.NFO, LotSize: 400, TickSize: 0.05, StrikeStep: 20},
	{Symbol: "HDFCBANK", Name: "HDFC Bank", Exchange: models.NFO, LotSize: 550, TickSize: 0.05, StrikeStep: 10},
	{Symbol: "SBIN", Name: "State Bank of India", Exchange: models.NFO, LotSize: 750, TickSize: 0.05, StrikeStep: 10},
}

// SeedContractSpecs loads the bundled contract specs, replacing any
// existing rows for the same symbols. Returns the number of specs written.
func (s *SQLiteStore) SeedContractSpecs(ctx context.Context) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO contract_specs
		(symbol, name, exchange, lot_size, tick_size, strike_step, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for _, spec := range defaultContractSpecs {
		if _, err := stmt.ExecContext(ctx,
			spec.Symbol,
			spec.Name,
			spec.Exchange,
			spec.LotSize,
			spec.TickSize,
			spec.StrikeStep,
			now,
		); err != nil {
			return 0, fmt.Errorf("failed to seed %s: %w", spec.Symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit seed: %w", err)
	}

	return len(defaultContractSpecs), nil
}
