package domain

import (
	"context"

	"github.com/google/uuid"
)

// AssetRepository defines the interface for asset persistence operations
type AssetRepository interface {
	// GetByID retrieves an asset, with its full valuation history and
	// contributions, by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Asset, error)

	// Create creates a new asset together with its seed valuation point
	Create(ctx context.Context, asset *Asset) error

	// List retrieves all assets with their histories, in creation order
	List(ctx context.Context) ([]*Asset, error)

	// AppendValuation appends a valuation point to an asset's history.
	// The history is append-only: prior points are never touched.
	AppendValuation(ctx context.Context, assetID uuid.UUID, point ValuationPoint) error

	// AddContribution records a contribution and its derived valuation
	// point atomically
	AddContribution(ctx context.Context, assetID uuid.UUID, contribution Contribution, point ValuationPoint) error

	// Delete removes the asset and its entire history
	Delete(ctx context.Context, id uuid.UUID) error
}

// TransactionRepository defines the interface for transaction persistence operations
type TransactionRepository interface {
	// GetByID retrieves a transaction, with its full snapshot history, by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error)

	// Create creates a new transaction together with its Initial Entry snapshot
	Create(ctx context.Context, tx *Transaction) error

	// ListByKind retrieves all transactions of the given kind, in creation order
	ListByKind(ctx context.Context, kind TransactionKind) ([]*Transaction, error)

	// List retrieves all transactions regardless of kind, in creation order
	List(ctx context.Context) ([]*Transaction, error)

	// Update persists the transaction's current fields and appends an
	// Update snapshot to its history
	Update(ctx context.Context, tx *Transaction) error

	// Delete removes the transaction and its history. History is not
	// preserved past deletion.
	Delete(ctx context.Context, id uuid.UUID) error
}
