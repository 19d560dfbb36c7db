package account

import (
	"context"
	"errors"
)

// Service contains the business logic for account operations
type Service struct {
	repo Repository
}

// NewService creates a new account service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateAccount creates a new account with business validation
func (s *Service) CreateAccount(ctx context.Context, params CreateParams) (*Account, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, params)
}

// GetAccount retrieves an account by ID and verifies user ownership
func (s *Service) GetAccount(ctx context.Context, accountID, userID int64) (*Account, error) {
	acc, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	// Business rule: verify ownership
	if acc.UserID != userID {
		return nil, ErrForbidden
	}

	return acc, nil
}

// ListAccountsByUserID retrieves all accounts for a specific user
func (s *Service) ListAccountsByUserID(ctx context.Context, userID int64) ([]*Account, error) {
	if userID <= 0 {
		return nil, errors.New("valid user ID is required")
	}

	return s.repo.ListByUserID(ctx, userID)
}

// UpdateAccount updates account metadata after verifying ownership
func (s *Service) UpdateAccount(ctx context.Context, accountID, userID int64, params UpdateParams) (*Account, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.GetAccount(ctx, accountID, userID); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, accountID, params)
}

// DeleteAccount deletes an account after verifying ownership.
// Accounts with posted ledger entries cannot be deleted.
func (s *Service) DeleteAccount(ctx context.Context, accountID, userID int64) error {
	if _, err := s.GetAccount(ctx, accountID, userID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, accountID)
}
