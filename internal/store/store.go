// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"

	"optionsim/internal/models"
)

// ContractStore defines the interface for contract specification persistence.
type ContractStore interface {
	// Contract specs
	GetContractSpec(ctx context.Context, symbol string) (*models.ContractSpec, error)
	ListContractSpecs(ctx context.Context) ([]models.ContractSpec, error)
	SaveContractSpec(ctx context.Context, spec *models.ContractSpec) error
	SeedContractSpecs(ctx context.Context) (int, error)

	// Lifecycle
	Close() error
}
