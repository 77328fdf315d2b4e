// Package store provides data persistence implementations.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"optionsim/internal/models"
)

// SQLiteStore implements ContractStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based contract store. A fresh
// database is seeded with the bundled index contract specs so lot-size
// lookups work out of the box.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool for concurrent access
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	count, err := store.countContractSpecs(context.Background())
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to inspect contract specs: %w", err)
	}
	if count == 0 {
		if _, err := store.SeedContractSpecs(context.Background()); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to seed contract specs: %w", err)
		}
	}

	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Contract specifications for F&O underlyings
	CREATE TABLE IF NOT EXISTS contract_specs (
		symbol TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		exchange TEXT NOT NULL,
		lot_size INTEGER NOT NULL,
		tick_size REAL NOT NULL,
		strike_step REAL NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_contract_specs_exchange ON contract_specs(exchange);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) countContractSpecs(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contract_specs`).Scan(&count)
	return count, err
}

// GetContractSpec retrieves a contract spec by symbol.
// Returns nil without error when the symbol is unknown.
func (s *SQLiteStore) GetContractSpec(ctx context.Context, symbol string) (*models.ContractSpec, error) {
	query := `
		SELECT symbol, name, exchange, lot_size, tick_size, strike_step, updated_at
		FROM contract_specs
		WHERE symbol = ?
	`

	var spec models.ContractSpec
	err := s.db.QueryRowContext(ctx, query, symbol).Scan(
		&spec.Symbol,
		&spec.Name,
		&spec.Exchange,
		&spec.LotSize,
		&spec.TickSize,
		&spec.StrikeStep,
		&spec.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contract spec: %w", err)
	}

	return &spec, nil
}

// ListContractSpecs retrieves all contract specs ordered by symbol.
func (s *SQLiteStore) ListContractSpecs(ctx context.Context) ([]models.ContractSpec, error) {
	query := `
		SELECT symbol, name, exchange, lot_size, tick_size, strike_step, updated_at
		FROM contract_specs
		ORDER BY symbol
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list contract specs: %w", err)
	}
	defer rows.Close()

	var specs []models.ContractSpec
	for rows.Next() {
		var spec models.ContractSpec
		if err := rows.Scan(
			&spec.Symbol,
			&spec.Name,
			&spec.Exchange,
			&spec.LotSize,
			&spec.TickSize,
			&spec.StrikeStep,
			&spec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan contract spec: %w", err)
		}
		specs = append(specs, spec)
	}

	return specs, rows.Err()
}

// SaveContractSpec inserts or updates a contract spec.
func (s *SQLiteStore) SaveContractSpec(ctx context.Context, spec *models.ContractSpec) error {
	if spec.LotSize < 1 {
		return fmt.Errorf("lot size must be at least 1, got %d", spec.LotSize)
	}

	query := `
		INSERT OR REPLACE INTO contract_specs
		(symbol, name, exchange, lot_size, tick_size, strike_step, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	updatedAt := spec.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, query,
		spec.Symbol,
		spec.Name,
		spec.Exchange,
		spec.LotSize,
		spec.TickSize,
		spec.StrikeStep,
		updatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save contract spec: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
