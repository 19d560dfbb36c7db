package ledger

import "context"

// Repository defines the interface for ledger data access. Every mutation
// maintains the owning account's balance in the same database transaction
// as the row change, so the sum-of-ledger invariant holds at all times.
type Repository interface {
	// Create inserts an entry and credits its amount to the owning
	// account's balance atomically.
	Create(ctx context.Context, params CreateParams) (*Entry, error)

	// GetByID retrieves an entry by its ID
	GetByID(ctx context.Context, id int64) (*Entry, error)

	// List retrieves entries owned by the user matching the filter,
	// ordered by transaction_date descending, then id descending.
	List(ctx context.Context, userID int64, filter Filter) ([]*Entry, error)

	// Update edits an entry. When amount or account changes, the old
	// contribution is reversed and the new one applied in one
	// transaction; the two effects are never separately observable.
	Update(ctx context.Context, id int64, params UpdateParams) (*Entry, error)

	// Delete reverses the entry's balance contribution and removes the row
	Delete(ctx context.Context, id int64) error

	// CreateTransfer inserts the debit and credit legs and adjusts both
	// account balances in a single transaction. Both legs carry
	// transferID. Either both legs commit or neither does.
	CreateTransfer(ctx context.Context, debit, credit CreateParams, transferID string) ([]*Entry, error)
}
