package user

import "context"

// Repository defines the interface for user data access.
// Defined in the domain layer, implemented in the infrastructure layer.
type Repository interface {
	// Create persists a new user
	Create(ctx context.Context, params CreateParams) (*User, error)

	// GetByID retrieves a user by its ID
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)
}
