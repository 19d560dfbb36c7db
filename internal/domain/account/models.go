package account

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrForbidden         = errors.New("access forbidden")
	ErrAccountHasEntries = errors.New("account has ledger entries")
)

// Account represents a financial account. Balance is a server-maintained
// aggregate: it always equals the sum of the account's ledger entries and
// is only ever mutated inside the same database transaction as a posting.
type Account struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	AccountName string    `json:"account_name"`
	AccountType string    `json:"account_type"`
	Balance     float64   `json:"balance"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateParams contains parameters for creating a new account
type CreateParams struct {
	UserID      int64
	AccountName string
	AccountType string
}

// Validate validates the create parameters
func (p CreateParams) Validate() error {
	if p.UserID <= 0 {
		return errors.New("valid user ID is required")
	}
	if p.AccountName == "" {
		return errors.New("account name is required")
	}
	if p.AccountType == "" {
		return errors.New("account type is required")
	}
	return nil
}

// UpdateParams contains parameters for updating account metadata.
// Balance is deliberately absent: it is never written directly.
type UpdateParams struct {
	AccountName *string
	AccountType *string
}

func (p UpdateParams) Validate() error {
	if p.AccountName != nil && *p.AccountName == "" {
		return errors.New("account name must not be empty")
	}
	if p.AccountType != nil && *p.AccountType == "" {
		return errors.New("account type must not be empty")
	}
	return nil
}
