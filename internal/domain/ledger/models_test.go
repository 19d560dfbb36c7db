package ledger

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestValidAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   bool
	}{
		{"positive", 10.50, true},
		{"negative", -10.50, true},
		{"integer", 100, true},
		{"one decimal", 3.5, true},
		{"zero", 0, false},
		{"three decimals", 1.234, false},
		{"tiny fraction", 0.001, false},
		{"NaN", math.NaN(), false},
		{"positive infinity", math.Inf(1), false},
		{"negative infinity", math.Inf(-1), false},
		{"large valid", 999999999999.99, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidAmount(tt.amount); got != tt.want {
				t.Errorf("ValidAmount(%v) = %v, want %v", tt.amount, got, tt.want)
			}
		})
	}
}

func TestCreateParamsValidate(t *testing.T) {
	valid := CreateParams{
		AccountID:       1,
		CreatedBy:       1,
		Amount:          10.00,
		TransactionDate: time.Now(),
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("valid params returned error: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(p *CreateParams)
		wantErr error
	}{
		{"missing account", func(p *CreateParams) { p.AccountID = 0 }, ErrMissingAccount},
		{"zero amount", func(p *CreateParams) { p.Amount = 0 }, ErrInvalidAmount},
		{"too many decimals", func(p *CreateParams) { p.Amount = 1.999 }, ErrInvalidAmount},
		{"missing date", func(p *CreateParams) { p.TransactionDate = time.Time{} }, ErrMissingDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			if err := p.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdateParamsValidate(t *testing.T) {
	badAmount := 1.999
	goodAmount := 25.00
	zeroTime := time.Time{}

	if err := (UpdateParams{}).Validate(); err != nil {
		t.Errorf("empty update params should be valid, got %v", err)
	}
	if err := (UpdateParams{Amount: &goodAmount}).Validate(); err != nil {
		t.Errorf("valid amount rejected: %v", err)
	}
	if err := (UpdateParams{Amount: &badAmount}).Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
	if err := (UpdateParams{TransactionDate: &zeroTime}).Validate(); !errors.Is(err, ErrMissingDate) {
		t.Errorf("expected ErrMissingDate, got %v", err)
	}
}

func TestTransferParamsValidate(t *testing.T) {
	valid := TransferParams{
		FromAccountID:   1,
		ToAccountID:     2,
		Amount:          50.00,
		TransactionDate: time.Now(),
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("valid params returned error: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(p *TransferParams)
		wantErr error
	}{
		{"same account", func(p *TransferParams) { p.ToAccountID = p.FromAccountID }, ErrSelfTransfer},
		{"zero amount", func(p *TransferParams) { p.Amount = 0 }, ErrNonPositive},
		{"negative amount", func(p *TransferParams) { p.Amount = -10 }, ErrNonPositive},
		{"NaN amount", func(p *TransferParams) { p.Amount = math.NaN() }, ErrNonPositive},
		{"too many decimals", func(p *TransferParams) { p.Amount = 0.005 }, ErrInvalidAmount},
		{"missing from account", func(p *TransferParams) { p.FromAccountID = 0 }, ErrMissingAccount},
		{"missing date", func(p *TransferParams) { p.TransactionDate = time.Time{} }, ErrMissingDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			if err := p.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
