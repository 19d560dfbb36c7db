package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"elephantbook/internal/domain/account"
	"elephantbook/internal/domain/ledger"
	"elephantbook/internal/domain/user"

	"github.com/google/uuid"
)

// setupTestDB connects to the database named by the DB_* environment
// variables and applies migrations. Tests are skipped when DB_HOST is
// unset so the suite stays runnable without a database.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	host := os.Getenv("DB_HOST")
	if host == "" {
		t.Skip("DB_HOST not set; skipping database integration tests")
	}

	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port,
		envOr("DB_USER", "elephantbook"),
		os.Getenv("DB_PASSWORD"),
		envOr("DB_NAME", "elephantbook_test"),
	)

	db, err := New(connStr)
	if err != nil {
		t.Fatalf("connect to test database: %v", err)
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		t.Fatalf("run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// newTestUser creates a user plus cleanup that removes everything the
// user posted, in FK order.
func newTestUser(t *testing.T, db *DB) *user.User {
	t.Helper()

	ctx := context.Background()
	u, err := NewUserRepository(db).Create(ctx, user.CreateParams{
		FirstName:    "Test",
		LastName:     "User",
		Email:        fmt.Sprintf("test-%s@example.com", uuid.New().String()),
		PasswordHash: "x",
	})
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}

	t.Cleanup(func() {
		db.ExecContext(ctx, `DELETE FROM account_ledger WHERE created_by = $1`, u.ID)
		db.ExecContext(ctx, `DELETE FROM accounts WHERE user_id = $1`, u.ID)
		db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, u.ID)
	})
	return u
}

func newTestAccount(t *testing.T, db *DB, userID int64, name string) *account.Account {
	t.Helper()

	acc, err := NewAccountRepository(db).Create(context.Background(), account.CreateParams{
		UserID:      userID,
		AccountName: name,
		AccountType: "checking",
	})
	if err != nil {
		t.Fatalf("create test account: %v", err)
	}
	return acc
}

func accountBalance(t *testing.T, db *DB, accountID int64) float64 {
	t.Helper()

	acc, err := NewAccountRepository(db).GetByID(context.Background(), accountID)
	if err != nil {
		t.Fatalf("get account %d: %v", accountID, err)
	}
	return acc.Balance
}

func ledgerSum(t *testing.T, db *DB, accountID int64) float64 {
	t.Helper()

	var sum float64
	err := db.QueryRowContext(context.Background(),
		`SELECT COALESCE(SUM(amount), 0) FROM account_ledger WHERE account_id = $1`, accountID,
	).Scan(&sum)
	if err != nil {
		t.Fatalf("sum ledger for account %d: %v", accountID, err)
	}
	return sum
}

// checkInvariant asserts the stored balance equals the sum of the
// account's ledger rows and matches the expected value.
func checkInvariant(t *testing.T, db *DB, accountID int64, want float64) {
	t.Helper()

	balance := accountBalance(t, db, accountID)
	if balance != want {
		t.Errorf("account %d balance = %v, want %v", accountID, balance, want)
	}
	if sum := ledgerSum(t, db, accountID); sum != balance {
		t.Errorf("account %d balance %v != ledger sum %v", accountID, balance, sum)
	}
}

func TestLedgerRepository_BalanceLifecycle(t *testing.T) {
	db := setupTestDB(t)
	u := newTestUser(t, db)
	acc := newTestAccount(t, db, u.ID, "Checking")
	other := newTestAccount(t, db, u.ID, "Savings")

	ctx := context.Background()
	repo := NewLedgerRepository(db)
	txDate := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	// Post a credit and a debit
	if _, err := repo.Create(ctx, ledger.CreateParams{
		AccountID: acc.ID, CreatedBy: u.ID, Amount: 100.00, TransactionDate: txDate,
	}); err != nil {
		t.Fatalf("create credit: %v", err)
	}
	debit, err := repo.Create(ctx, ledger.CreateParams{
		AccountID: acc.ID, CreatedBy: u.ID, Amount: -40.00, TransactionDate: txDate,
	})
	if err != nil {
		t.Fatalf("create debit: %v", err)
	}
	checkInvariant(t, db, acc.ID, 60.00)

	// Changing the amount reverses the old contribution and applies the new
	newAmount := -10.00
	if _, err := repo.Update(ctx, debit.ID, ledger.UpdateParams{Amount: &newAmount}); err != nil {
		t.Fatalf("update amount: %v", err)
	}
	checkInvariant(t, db, acc.ID, 90.00)

	// Moving the entry shifts its contribution to the target account
	if _, err := repo.Update(ctx, debit.ID, ledger.UpdateParams{AccountID: &other.ID}); err != nil {
		t.Fatalf("move entry: %v", err)
	}
	checkInvariant(t, db, acc.ID, 100.00)
	checkInvariant(t, db, other.ID, -10.00)

	// Deleting reverses exactly the entry's own contribution
	if err := repo.Delete(ctx, debit.ID); err != nil {
		t.Fatalf("delete entry: %v", err)
	}
	checkInvariant(t, db, acc.ID, 100.00)
	checkInvariant(t, db, other.ID, 0)
}

func TestLedgerRepository_CreateTransfer(t *testing.T) {
	db := setupTestDB(t)
	u := newTestUser(t, db)
	from := newTestAccount(t, db, u.ID, "Checking")
	to := newTestAccount(t, db, u.ID, "Savings")

	ctx := context.Background()
	repo := NewLedgerRepository(db)
	txDate := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	transferID := uuid.New().String()

	legs, err := repo.CreateTransfer(ctx,
		ledger.CreateParams{AccountID: from.ID, CreatedBy: u.ID, Amount: -25.00, TransactionDate: txDate},
		ledger.CreateParams{AccountID: to.ID, CreatedBy: u.ID, Amount: 25.00, TransactionDate: txDate},
		transferID,
	)
	if err != nil {
		t.Fatalf("create transfer: %v", err)
	}

	if len(legs) != 2 {
		t.Fatalf("expected 2 legs, got %d", len(legs))
	}
	for i, leg := range legs {
		if leg.TransferID == nil || *leg.TransferID != transferID {
			t.Errorf("leg %d transfer_id = %v, want %s", i, leg.TransferID, transferID)
		}
	}
	if legs[0].Amount+legs[1].Amount != 0 {
		t.Errorf("legs do not sum to zero: %v, %v", legs[0].Amount, legs[1].Amount)
	}

	checkInvariant(t, db, from.ID, -25.00)
	checkInvariant(t, db, to.ID, 25.00)
}

func TestLedgerRepository_DeleteAccountWithEntries(t *testing.T) {
	db := setupTestDB(t)
	u := newTestUser(t, db)
	acc := newTestAccount(t, db, u.ID, "Checking")

	ctx := context.Background()
	if _, err := NewLedgerRepository(db).Create(ctx, ledger.CreateParams{
		AccountID: acc.ID, CreatedBy: u.ID, Amount: 5.00,
		TransactionDate: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("create entry: %v", err)
	}

	err := NewAccountRepository(db).Delete(ctx, acc.ID)
	if !errors.Is(err, account.ErrAccountHasEntries) {
		t.Errorf("Delete() = %v, want ErrAccountHasEntries", err)
	}
}
