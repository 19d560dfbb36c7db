package http

import (
	"context"
	"io"

	"elephantbook/internal/domain/account"
	"elephantbook/internal/domain/category"
	"elephantbook/internal/domain/ledger"
	"elephantbook/internal/domain/user"

	"github.com/sirupsen/logrus"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// MockUserRepo implements user.Repository for testing
type MockUserRepo struct {
	CreateFunc     func(ctx context.Context, params user.CreateParams) (*user.User, error)
	GetByIDFunc    func(ctx context.Context, id int64) (*user.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*user.User, error)
}

func (m *MockUserRepo) Create(ctx context.Context, params user.CreateParams) (*user.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, user.ErrUserNotFound
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, user.ErrUserNotFound
}

// MockAccountRepo implements account.Repository for testing
type MockAccountRepo struct {
	CreateFunc       func(ctx context.Context, params account.CreateParams) (*account.Account, error)
	GetByIDFunc      func(ctx context.Context, id int64) (*account.Account, error)
	ListByUserIDFunc func(ctx context.Context, userID int64) ([]*account.Account, error)
	UpdateFunc       func(ctx context.Context, id int64, params account.UpdateParams) (*account.Account, error)
	DeleteFunc       func(ctx context.Context, id int64) error
}

func (m *MockAccountRepo) Create(ctx context.Context, params account.CreateParams) (*account.Account, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockAccountRepo) GetByID(ctx context.Context, id int64) (*account.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, account.ErrAccountNotFound
}

func (m *MockAccountRepo) ListByUserID(ctx context.Context, userID int64) ([]*account.Account, error) {
	if m.ListByUserIDFunc != nil {
		return m.ListByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockAccountRepo) Update(ctx context.Context, id int64, params account.UpdateParams) (*account.Account, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, params)
	}
	return nil, nil
}

func (m *MockAccountRepo) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockCategoryRepo implements category.Repository for testing
type MockCategoryRepo struct {
	CreateFunc       func(ctx context.Context, params category.CreateParams) (*category.Category, error)
	GetByIDFunc      func(ctx context.Context, id int64) (*category.Category, error)
	ListByUserIDFunc func(ctx context.Context, userID int64) ([]*category.Category, error)
	UpdateFunc       func(ctx context.Context, id int64, params category.UpdateParams) (*category.Category, error)
	DeleteFunc       func(ctx context.Context, id int64) error
}

func (m *MockCategoryRepo) Create(ctx context.Context, params category.CreateParams) (*category.Category, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockCategoryRepo) GetByID(ctx context.Context, id int64) (*category.Category, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, category.ErrCategoryNotFound
}

func (m *MockCategoryRepo) ListByUserID(ctx context.Context, userID int64) ([]*category.Category, error) {
	if m.ListByUserIDFunc != nil {
		return m.ListByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockCategoryRepo) Update(ctx context.Context, id int64, params category.UpdateParams) (*category.Category, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, params)
	}
	return nil, nil
}

func (m *MockCategoryRepo) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockLedgerRepo implements ledger.Repository for testing
type MockLedgerRepo struct {
	CreateFunc         func(ctx context.Context, params ledger.CreateParams) (*ledger.Entry, error)
	GetByIDFunc        func(ctx context.Context, id int64) (*ledger.Entry, error)
	ListFunc           func(ctx context.Context, userID int64, filter ledger.Filter) ([]*ledger.Entry, error)
	UpdateFunc         func(ctx context.Context, id int64, params ledger.UpdateParams) (*ledger.Entry, error)
	DeleteFunc         func(ctx context.Context, id int64) error
	CreateTransferFunc func(ctx context.Context, debit, credit ledger.CreateParams, transferID string) ([]*ledger.Entry, error)
}

func (m *MockLedgerRepo) Create(ctx context.Context, params ledger.CreateParams) (*ledger.Entry, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockLedgerRepo) GetByID(ctx context.Context, id int64) (*ledger.Entry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, ledger.ErrEntryNotFound
}

func (m *MockLedgerRepo) List(ctx context.Context, userID int64, filter ledger.Filter) ([]*ledger.Entry, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID, filter)
	}
	return nil, nil
}

func (m *MockLedgerRepo) Update(ctx context.Context, id int64, params ledger.UpdateParams) (*ledger.Entry, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, params)
	}
	return nil, nil
}

func (m *MockLedgerRepo) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockLedgerRepo) CreateTransfer(ctx context.Context, debit, credit ledger.CreateParams, transferID string) ([]*ledger.Entry, error) {
	if m.CreateTransferFunc != nil {
		return m.CreateTransferFunc(ctx, debit, credit, transferID)
	}
	return nil, nil
}
