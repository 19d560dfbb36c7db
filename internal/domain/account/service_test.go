package account

import (
	"context"
	"errors"
	"testing"
)

// MockRepo implements Repository for testing
type MockRepo struct {
	CreateFunc       func(ctx context.Context, params CreateParams) (*Account, error)
	GetByIDFunc      func(ctx context.Context, id int64) (*Account, error)
	ListByUserIDFunc func(ctx context.Context, userID int64) ([]*Account, error)
	UpdateFunc       func(ctx context.Context, id int64, params UpdateParams) (*Account, error)
	DeleteFunc       func(ctx context.Context, id int64) error
}

func (m *MockRepo) Create(ctx context.Context, params CreateParams) (*Account, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockRepo) GetByID(ctx context.Context, id int64) (*Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, ErrAccountNotFound
}

func (m *MockRepo) ListByUserID(ctx context.Context, userID int64) ([]*Account, error) {
	if m.ListByUserIDFunc != nil {
		return m.ListByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockRepo) Update(ctx context.Context, id int64, params UpdateParams) (*Account, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, params)
	}
	return nil, nil
}

func (m *MockRepo) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func TestCreateAccount_StartsWithZeroBalance(t *testing.T) {
	repo := &MockRepo{
		CreateFunc: func(ctx context.Context, params CreateParams) (*Account, error) {
			return &Account{ID: 1, UserID: params.UserID, AccountName: params.AccountName, Balance: 0}, nil
		},
	}
	svc := NewService(repo)

	acc, err := svc.CreateAccount(context.Background(), CreateParams{
		UserID:      1,
		AccountName: "Checking",
		AccountType: "checking",
	})
	if err != nil {
		t.Fatalf("CreateAccount() error = %v", err)
	}
	if acc.Balance != 0 {
		t.Errorf("new account balance = %v, want 0", acc.Balance)
	}
}

func TestCreateAccount_Validation(t *testing.T) {
	svc := NewService(&MockRepo{})

	tests := []struct {
		name   string
		params CreateParams
	}{
		{"missing user", CreateParams{AccountName: "Checking", AccountType: "checking"}},
		{"missing name", CreateParams{UserID: 1, AccountType: "checking"}},
		{"missing type", CreateParams{UserID: 1, AccountName: "Checking"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateAccount(context.Background(), tt.params); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestGetAccount_Ownership(t *testing.T) {
	repo := &MockRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*Account, error) {
			return &Account{ID: id, UserID: 2}, nil
		},
	}
	svc := NewService(repo)

	if _, err := svc.GetAccount(context.Background(), 10, 1); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.GetAccount(context.Background(), 10, 2); err != nil {
		t.Errorf("owner should see the account, got %v", err)
	}
}

func TestUpdateAccount_ForbiddenForOtherUser(t *testing.T) {
	repo := &MockRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*Account, error) {
			return &Account{ID: id, UserID: 2}, nil
		},
		UpdateFunc: func(ctx context.Context, id int64, params UpdateParams) (*Account, error) {
			t.Error("update should not be called")
			return nil, nil
		},
	}
	svc := NewService(repo)

	name := "Renamed"
	_, err := svc.UpdateAccount(context.Background(), 10, 1, UpdateParams{AccountName: &name})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestDeleteAccount_WithEntries(t *testing.T) {
	repo := &MockRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*Account, error) {
			return &Account{ID: id, UserID: 1}, nil
		},
		DeleteFunc: func(ctx context.Context, id int64) error {
			return ErrAccountHasEntries
		},
	}
	svc := NewService(repo)

	if err := svc.DeleteAccount(context.Background(), 10, 1); !errors.Is(err, ErrAccountHasEntries) {
		t.Errorf("expected ErrAccountHasEntries, got %v", err)
	}
}

func TestDeleteAccount_NotFound(t *testing.T) {
	svc := NewService(&MockRepo{})

	if err := svc.DeleteAccount(context.Background(), 10, 1); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}
