package category

import "context"

type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Category, error)
	GetByID(ctx context.Context, id int64) (*Category, error)
	ListByUserID(ctx context.Context, userID int64) ([]*Category, error)
	Update(ctx context.Context, id int64, params UpdateParams) (*Category, error)

	// Delete removes a category. Returns ErrCategoryInUse when ledger
	// entries still reference it.
	Delete(ctx context.Context, id int64) error
}
