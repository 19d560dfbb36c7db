package ledger

import (
	"errors"
	"math"
	"time"
)

// Domain errors
var (
	ErrEntryNotFound  = errors.New("ledger entry not found")
	ErrForbidden      = errors.New("access forbidden")
	ErrInvalidAmount  = errors.New("amount must be a non-zero value with at most 2 decimal places")
	ErrSelfTransfer   = errors.New("cannot transfer to self")
	ErrNonPositive    = errors.New("transfer amount must be positive")
	ErrMissingDate    = errors.New("transaction_date is required")
	ErrMissingAccount = errors.New("account_id is required")
)

// Entry is one row of the account ledger: a signed amount posted to an
// account. Positive amounts credit the account, negative amounts debit it.
// The two legs of a transfer share a TransferID.
type Entry struct {
	ID              int64     `json:"id"`
	AccountID       int64     `json:"account_id"`
	CreatedBy       int64     `json:"created_by"`
	Amount          float64   `json:"amount"`
	CategoryID      *int64    `json:"category_id"`
	Narration       *string   `json:"narration"`
	TransactionDate time.Time `json:"transaction_date"`
	TransferID      *string   `json:"transfer_id,omitempty"`
	CreatedOn       time.Time `json:"created_on"`
}

// CreateParams contains parameters for posting a new ledger entry.
type CreateParams struct {
	AccountID       int64
	CreatedBy       int64
	Amount          float64
	CategoryID      *int64
	Narration       *string
	TransactionDate time.Time
}

func (p CreateParams) Validate() error {
	if p.AccountID <= 0 {
		return ErrMissingAccount
	}
	if p.CreatedBy <= 0 {
		return errors.New("valid user ID is required")
	}
	if !ValidAmount(p.Amount) {
		return ErrInvalidAmount
	}
	if p.TransactionDate.IsZero() {
		return ErrMissingDate
	}
	return nil
}

// UpdateParams contains parameters for editing an existing entry. Nil
// fields are left unchanged. Changing Amount or AccountID reverses the
// old balance contribution and applies the new one atomically.
type UpdateParams struct {
	AccountID       *int64
	Amount          *float64
	CategoryID      *int64
	Narration       *string
	TransactionDate *time.Time
}

func (p UpdateParams) Validate() error {
	if p.AccountID != nil && *p.AccountID <= 0 {
		return ErrMissingAccount
	}
	if p.Amount != nil && !ValidAmount(*p.Amount) {
		return ErrInvalidAmount
	}
	if p.TransactionDate != nil && p.TransactionDate.IsZero() {
		return ErrMissingDate
	}
	return nil
}

// Filter is the query predicate for listing ledger entries. All set
// fields are combined with logical AND; a nil field means no constraint
// on that dimension. Date bounds are inclusive and apply to
// transaction_date, not creation time.
type Filter struct {
	AccountID  *int64
	CategoryID *int64
	StartDate  *time.Time
	EndDate    *time.Time
}

// TransferParams describes an account-to-account transfer. Amount is a
// positive magnitude; the debit leg is posted as -Amount.
type TransferParams struct {
	FromAccountID   int64
	ToAccountID     int64
	Amount          float64
	Narration       *string
	TransactionDate time.Time
}

func (p TransferParams) Validate() error {
	if p.FromAccountID <= 0 || p.ToAccountID <= 0 {
		return ErrMissingAccount
	}
	if p.FromAccountID == p.ToAccountID {
		return ErrSelfTransfer
	}
	if p.Amount <= 0 || math.IsNaN(p.Amount) || math.IsInf(p.Amount, 0) {
		return ErrNonPositive
	}
	if !ValidAmount(p.Amount) {
		return ErrInvalidAmount
	}
	if p.TransactionDate.IsZero() {
		return ErrMissingDate
	}
	return nil
}

// ValidAmount reports whether a is a finite, non-zero currency amount
// with at most 2 fractional digits.
func ValidAmount(a float64) bool {
	if a == 0 || math.IsNaN(a) || math.IsInf(a, 0) {
		return false
	}
	cents := a * 100
	return math.Abs(cents-math.Round(cents)) < 1e-6
}
