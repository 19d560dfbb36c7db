package account

import "context"

// Repository defines the interface for account data access
// This interface is defined in the domain layer, but implemented in the infrastructure layer
type Repository interface {
	// Create creates a new account with balance 0
	Create(ctx context.Context, params CreateParams) (*Account, error)

	// GetByID retrieves an account by its ID
	GetByID(ctx context.Context, id int64) (*Account, error)

	// ListByUserID retrieves all accounts for a specific user
	ListByUserID(ctx context.Context, userID int64) ([]*Account, error)

	// Update mutates account metadata only; balance is untouched
	Update(ctx context.Context, id int64, params UpdateParams) (*Account, error)

	// Delete removes an account. Returns ErrAccountHasEntries when ledger
	// rows still reference it.
	Delete(ctx context.Context, id int64) error
}
