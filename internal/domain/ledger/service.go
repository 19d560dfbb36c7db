package ledger

import (
	"context"
	"fmt"
	"math"

	"elephantbook/internal/domain/account"
	"elephantbook/internal/domain/category"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Service contains the business logic for ledger postings and transfers.
type Service struct {
	repo       Repository
	accounts   account.Repository
	categories category.Repository
	log        *logrus.Logger
}

func NewService(repo Repository, accounts account.Repository, categories category.Repository, log *logrus.Logger) *Service {
	return &Service{
		repo:       repo,
		accounts:   accounts,
		categories: categories,
		log:        log,
	}
}

// CreateEntry posts a new ledger entry. The amount sign is coerced by the
// category type: expense categories always debit, income categories always
// credit. Uncategorized entries keep the caller's sign.
func (s *Service) CreateEntry(ctx context.Context, userID int64, params CreateParams) (*Entry, error) {
	params.CreatedBy = userID
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkAccountOwnership(ctx, params.AccountID, userID); err != nil {
		return nil, err
	}

	if params.CategoryID != nil {
		cat, err := s.checkCategoryOwnership(ctx, *params.CategoryID, userID)
		if err != nil {
			return nil, err
		}
		params.Amount = coerceSign(params.Amount, cat.CategoryType)
	}

	entry, err := s.repo.Create(ctx, params)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"entry_id":   entry.ID,
		"account_id": entry.AccountID,
		"amount":     entry.Amount,
	}).Debug("ledger entry posted")

	return entry, nil
}

// GetEntry retrieves an entry and verifies the caller owns its account.
func (s *Service) GetEntry(ctx context.Context, id, userID int64) (*Entry, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkAccountOwnership(ctx, entry.AccountID, userID); err != nil {
		return nil, err
	}

	return entry, nil
}

// ListEntries returns the user's entries matching the filter. When the
// filter names an account, ownership is verified up front.
func (s *Service) ListEntries(ctx context.Context, userID int64, filter Filter) ([]*Entry, error) {
	if filter.AccountID != nil {
		if err := s.checkAccountOwnership(ctx, *filter.AccountID, userID); err != nil {
			return nil, err
		}
	}

	return s.repo.List(ctx, userID, filter)
}

// UpdateEntry edits an entry. Ownership of the entry's current account,
// and of the target account when it changes, is verified first; the
// balance adjustments themselves happen atomically in the repository.
func (s *Service) UpdateEntry(ctx context.Context, id, userID int64, params UpdateParams) (*Entry, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	entry, err := s.GetEntry(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if params.AccountID != nil && *params.AccountID != entry.AccountID {
		if err := s.checkAccountOwnership(ctx, *params.AccountID, userID); err != nil {
			return nil, err
		}
	}

	if params.CategoryID != nil {
		cat, err := s.checkCategoryOwnership(ctx, *params.CategoryID, userID)
		if err != nil {
			return nil, err
		}
		// Re-coerce the sign only when the amount is being changed too;
		// a bare category change keeps the stored amount.
		if params.Amount != nil {
			coerced := coerceSign(*params.Amount, cat.CategoryType)
			params.Amount = &coerced
		}
	}

	return s.repo.Update(ctx, id, params)
}

// DeleteEntry removes an entry, reversing exactly its own contribution
// from the owning account's balance.
func (s *Service) DeleteEntry(ctx context.Context, id, userID int64) error {
	if _, err := s.GetEntry(ctx, id, userID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

// Transfer atomically moves amount from one account to another as a
// debit leg and a credit leg sharing a pairing ID. Either both legs are
// posted or neither is; the total balance across accounts is conserved.
func (s *Service) Transfer(ctx context.Context, userID int64, params TransferParams) ([]*Entry, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	from, err := s.accounts.GetByID(ctx, params.FromAccountID)
	if err != nil {
		return nil, err
	}
	to, err := s.accounts.GetByID(ctx, params.ToAccountID)
	if err != nil {
		return nil, err
	}
	if from.UserID != userID || to.UserID != userID {
		return nil, ErrForbidden
	}

	amount := math.Abs(params.Amount)

	debitNarration := params.Narration
	creditNarration := params.Narration
	if params.Narration == nil || *params.Narration == "" {
		d := fmt.Sprintf("Transfer to %s", to.AccountName)
		c := fmt.Sprintf("Transfer from %s", from.AccountName)
		debitNarration, creditNarration = &d, &c
	}

	debit := CreateParams{
		AccountID:       params.FromAccountID,
		CreatedBy:       userID,
		Amount:          -amount,
		Narration:       debitNarration,
		TransactionDate: params.TransactionDate,
	}
	credit := CreateParams{
		AccountID:       params.ToAccountID,
		CreatedBy:       userID,
		Amount:          amount,
		Narration:       creditNarration,
		TransactionDate: params.TransactionDate,
	}

	transferID := uuid.New().String()
	legs, err := s.repo.CreateTransfer(ctx, debit, credit, transferID)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"transfer_id": transferID,
		"from":        params.FromAccountID,
		"to":          params.ToAccountID,
		"amount":      amount,
	}).Info("transfer completed")

	return legs, nil
}

func (s *Service) checkAccountOwnership(ctx context.Context, accountID, userID int64) error {
	acc, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if acc.UserID != userID {
		return ErrForbidden
	}
	return nil
}

func (s *Service) checkCategoryOwnership(ctx context.Context, categoryID, userID int64) (*category.Category, error) {
	cat, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if cat.UserID != userID {
		return nil, ErrForbidden
	}
	return cat, nil
}

// coerceSign forces the amount sign to match the category type:
// expenses debit the account, income credits it.
func coerceSign(amount float64, categoryType string) float64 {
	switch categoryType {
	case category.TypeExpense:
		return -math.Abs(amount)
	case category.TypeIncome:
		return math.Abs(amount)
	default:
		return amount
	}
}
