package category

import (
	"errors"
	"time"
)

// Category types
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrForbidden        = errors.New("access forbidden")
	ErrCategoryInUse    = errors.New("category is referenced by ledger entries")
	ErrInvalidType      = errors.New("category_type must be 'income' or 'expense'")
)

// Category tags a ledger entry as income or expense.
type Category struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	CategoryType string    `json:"category_type"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
}

type CreateParams struct {
	UserID       int64
	CategoryType string
	Name         string
}

func (p CreateParams) Validate() error {
	if p.UserID <= 0 {
		return errors.New("valid user ID is required")
	}
	if p.Name == "" {
		return errors.New("name is required")
	}
	if !IsValidType(p.CategoryType) {
		return ErrInvalidType
	}
	return nil
}

type UpdateParams struct {
	CategoryType *string
	Name         *string
}

func (p UpdateParams) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return errors.New("name must not be empty")
	}
	if p.CategoryType != nil && !IsValidType(*p.CategoryType) {
		return ErrInvalidType
	}
	return nil
}

// IsValidType checks if the provided category type is valid.
func IsValidType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}
