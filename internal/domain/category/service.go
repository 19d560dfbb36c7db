package category

import (
	"context"
	"errors"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateCategory(ctx context.Context, params CreateParams) (*Category, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, params)
}

// GetCategory retrieves a category by ID and verifies user ownership
func (s *Service) GetCategory(ctx context.Context, categoryID, userID int64) (*Category, error) {
	cat, err := s.repo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if cat.UserID != userID {
		return nil, ErrForbidden
	}

	return cat, nil
}

func (s *Service) ListCategoriesByUserID(ctx context.Context, userID int64) ([]*Category, error) {
	if userID <= 0 {
		return nil, errors.New("valid user ID is required")
	}

	return s.repo.ListByUserID(ctx, userID)
}

func (s *Service) UpdateCategory(ctx context.Context, categoryID, userID int64, params UpdateParams) (*Category, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.GetCategory(ctx, categoryID, userID); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, categoryID, params)
}

// DeleteCategory deletes a category after verifying ownership. Categories
// referenced by ledger entries cannot be deleted.
func (s *Service) DeleteCategory(ctx context.Context, categoryID, userID int64) error {
	if _, err := s.GetCategory(ctx, categoryID, userID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, categoryID)
}
