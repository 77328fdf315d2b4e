package store

import (
	"context"
	"path/filepath"
	"testing"

	"optionsim/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "contracts_test.db")
	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return store
}

func TestFreshStoreIsSeeded(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	ctx := context.Background()

	specs, err := store.ListContractSpecs(ctx)
	if err != nil {
		t.Fatalf("ListContractSpecs failed: %v", err)
	}
	if len(specs) != len(defaultContractSpecs) {
		t.Errorf("Expected %d seeded specs, got %d", len(defaultContractSpecs), len(specs))
	}

	// Listing is ordered by symbol
	for i := 1; i < len(specs); i++ {
		if specs[i-1].Symbol >= specs[i].Symbol {
			t.Errorf("Specs not ordered by symbol: %s before %s", specs[i-1].Symbol, specs[i].Symbol)
		}
	}

	nifty, err := store.GetContractSpec(ctx, "NIFTY")
	if err != nil {
		t.Fatalf("GetContractSpec(NIFTY) failed: %v", err)
	}
	if nifty == nil {
		t.Fatal("NIFTY spec missing from seeded store")
	}
	if nifty.LotSize != 75 {
		t.Errorf("NIFTY lot size = %d, want 75", nifty.LotSize)
	}
	if nifty.Exchange != models.NFO {
		t.Errorf("NIFTY exchange = %s, want NFO", nifty.Exchange)
	}
}

func TestGetContractSpecUnknownSymbol(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	spec, err := store.GetContractSpec(context.Background(), "NOSUCH")
	if err != nil {
		t.Fatalf("GetContractSpec failed: %v", err)
	}
	if spec != nil {
		t.Errorf("Expected nil for unknown symbol, got %+v", spec)
	}
}

func TestSaveContractSpecRejectsBadLotSize(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	spec := &models.ContractSpec{Symbol: "BAD", Name: "Bad", Exchange: models.NFO, LotSize: 0, TickSize: 0.05, StrikeStep: 50}
	if err := store.SaveContractSpec(context.Background(), spec); err == nil {
		t.Error("Expected error for lot size 0, got nil")
	}
}

func TestSeedContractSpecsRestoresDefaults(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	ctx := context.Background()

	// Tamper with a seeded row, then reseed
	tampered := &models.ContractSpec{Symbol: "NIFTY", Name: "Tampered", Exchange: models.NFO, LotSize: 999, TickSize: 0.05, StrikeStep: 50}
	if err := store.SaveContractSpec(ctx, tampered); err != nil {
		t.Fatalf("SaveContractSpec failed: %v", err)
	}

	count, err := store.SeedContractSpecs(ctx)
	if err != nil {
		t.Fatalf("SeedContractSpecs failed: %v", err)
	}
	if count != len(defaultContractSpecs) {
		t.Errorf("SeedContractSpecs wrote %d specs, want %d", count, len(defaultContractSpecs))
	}

	nifty, err := store.GetContractSpec(ctx, "NIFTY")
	if err != nil || nifty == nil {
		t.Fatalf("GetContractSpec(NIFTY) failed: %v", err)
	}
	if nifty.LotSize != 75 || nifty.Name == "Tampered" {
		t.Errorf("Seed did not restore NIFTY: %+v", nifty)
	}
}
