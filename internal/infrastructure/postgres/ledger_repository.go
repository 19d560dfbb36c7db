package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"elephantbook/internal/domain/account"
	"elephantbook/internal/domain/ledger"
)

// LedgerRepository implements ledger.Repository using PostgreSQL. Every
// mutation runs in one database transaction that locks the affected
// account rows with SELECT ... FOR UPDATE before touching balances, so
// the stored balance always equals the sum of the account's entries.
type LedgerRepository struct {
	db *DB
}

func NewLedgerRepository(db *DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

const entryColumns = `id, account_id, created_by, amount, category_id, narration, transaction_date, transfer_id, created_on`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(s rowScanner) (*ledger.Entry, error) {
	e := &ledger.Entry{}
	var categoryID sql.NullInt64
	var narration, transferID sql.NullString

	err := s.Scan(
		&e.ID, &e.AccountID, &e.CreatedBy, &e.Amount,
		&categoryID, &narration, &e.TransactionDate, &transferID, &e.CreatedOn,
	)
	if err != nil {
		return nil, err
	}

	if categoryID.Valid {
		e.CategoryID = &categoryID.Int64
	}
	if narration.Valid {
		e.Narration = &narration.String
	}
	if transferID.Valid {
		e.TransferID = &transferID.String
	}
	return e, nil
}

// lockAccount takes a row lock on the account inside tx and verifies it exists.
func lockAccount(ctx context.Context, tx *sql.Tx, accountID int64) error {
	var id int64
	err := tx.QueryRowContext(ctx,
		`SELECT id FROM accounts WHERE id = $1 FOR UPDATE`, accountID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return account.ErrAccountNotFound
		}
		return fmt.Errorf("failed to lock account: %w", err)
	}
	return nil
}

// lockAccounts locks account rows in ascending id order so that
// concurrent transfers touching the same pair never deadlock.
func lockAccounts(ctx context.Context, tx *sql.Tx, a, b int64) error {
	first, second := a, b
	if second < first {
		first, second = second, first
	}
	if err := lockAccount(ctx, tx, first); err != nil {
		return err
	}
	if first == second {
		return nil
	}
	return lockAccount(ctx, tx, second)
}

func adjustBalance(ctx context.Context, tx *sql.Tx, accountID int64, delta float64) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE accounts SET balance = balance + $1 WHERE id = $2`, delta, accountID,
	)
	if err != nil {
		return fmt.Errorf("failed to adjust balance: %w", err)
	}
	return nil
}

func insertEntry(ctx context.Context, tx *sql.Tx, params ledger.CreateParams, transferID *string) (*ledger.Entry, error) {
	query := `
		INSERT INTO account_ledger (account_id, created_by, amount, category_id, narration, transaction_date, transfer_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + entryColumns

	row := tx.QueryRowContext(ctx, query,
		params.AccountID, params.CreatedBy, params.Amount,
		params.CategoryID, params.Narration, params.TransactionDate, transferID,
	)
	e, err := scanEntry(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert ledger entry: %w", err)
	}
	return e, nil
}

func (r *LedgerRepository) Create(ctx context.Context, params ledger.CreateParams) (*ledger.Entry, error) {
	var entry *ledger.Entry
	err := r.db.withTx(ctx, "db.CreateEntry", func(tx *sql.Tx) error {
		if err := lockAccount(ctx, tx, params.AccountID); err != nil {
			return err
		}

		e, err := insertEntry(ctx, tx, params, nil)
		if err != nil {
			return err
		}

		if err := adjustBalance(ctx, tx, params.AccountID, params.Amount); err != nil {
			return err
		}

		entry = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *LedgerRepository) GetByID(ctx context.Context, id int64) (*ledger.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM account_ledger WHERE id = $1`

	e, err := scanEntry(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledger.ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get ledger entry: %w", err)
	}
	return e, nil
}

func (r *LedgerRepository) List(ctx context.Context, userID int64, filter ledger.Filter) ([]*ledger.Entry, error) {
	conds := []string{"a.user_id = $1"}
	args := []any{userID}
	argPos := 2

	if filter.AccountID != nil {
		conds = append(conds, fmt.Sprintf("l.account_id = $%d", argPos))
		args = append(args, *filter.AccountID)
		argPos++
	}
	if filter.CategoryID != nil {
		conds = append(conds, fmt.Sprintf("l.category_id = $%d", argPos))
		args = append(args, *filter.CategoryID)
		argPos++
	}
	if filter.StartDate != nil {
		conds = append(conds, fmt.Sprintf("l.transaction_date >= $%d", argPos))
		args = append(args, *filter.StartDate)
		argPos++
	}
	if filter.EndDate != nil {
		conds = append(conds, fmt.Sprintf("l.transaction_date <= $%d", argPos))
		args = append(args, *filter.EndDate)
		argPos++
	}

	query := fmt.Sprintf(`
		SELECT l.id, l.account_id, l.created_by, l.amount, l.category_id, l.narration, l.transaction_date, l.transfer_id, l.created_on
		FROM account_ledger l
		JOIN accounts a ON a.id = l.account_id
		WHERE %s
		ORDER BY l.transaction_date DESC, l.id DESC`,
		strings.Join(conds, " AND "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	defer rows.Close()

	entries := []*ledger.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ledger entries: %w", err)
	}

	return entries, nil
}

func (r *LedgerRepository) Update(ctx context.Context, id int64, params ledger.UpdateParams) (*ledger.Entry, error) {
	var entry *ledger.Entry
	err := r.db.withTx(ctx, "db.UpdateEntry", func(tx *sql.Tx) error {
		old, err := scanEntry(tx.QueryRowContext(ctx,
			`SELECT `+entryColumns+` FROM account_ledger WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ledger.ErrEntryNotFound
			}
			return fmt.Errorf("failed to load ledger entry: %w", err)
		}

		newAccountID := old.AccountID
		if params.AccountID != nil {
			newAccountID = *params.AccountID
		}

		if err := lockAccounts(ctx, tx, old.AccountID, newAccountID); err != nil {
			return err
		}

		sets := []string{}
		args := []any{}
		argPos := 1

		if params.AccountID != nil {
			sets = append(sets, fmt.Sprintf("account_id = $%d", argPos))
			args = append(args, *params.AccountID)
			argPos++
		}
		if params.Amount != nil {
			sets = append(sets, fmt.Sprintf("amount = $%d", argPos))
			args = append(args, *params.Amount)
			argPos++
		}
		if params.CategoryID != nil {
			sets = append(sets, fmt.Sprintf("category_id = $%d", argPos))
			args = append(args, *params.CategoryID)
			argPos++
		}
		if params.Narration != nil {
			sets = append(sets, fmt.Sprintf("narration = $%d", argPos))
			args = append(args, *params.Narration)
			argPos++
		}
		if params.TransactionDate != nil {
			sets = append(sets, fmt.Sprintf("transaction_date = $%d", argPos))
			args = append(args, *params.TransactionDate)
			argPos++
		}

		if len(sets) == 0 {
			entry = old
			return nil
		}

		query := fmt.Sprintf(`
			UPDATE account_ledger
			SET %s
			WHERE id = $%d
			RETURNING `+entryColumns,
			strings.Join(sets, ", "), argPos)
		args = append(args, id)

		updated, err := scanEntry(tx.QueryRowContext(ctx, query, args...))
		if err != nil {
			return fmt.Errorf("failed to update ledger entry: %w", err)
		}

		// Reverse the old contribution, then apply the new one. When
		// neither account nor amount changed these cancel out exactly.
		if old.AccountID != updated.AccountID || old.Amount != updated.Amount {
			if err := adjustBalance(ctx, tx, old.AccountID, -old.Amount); err != nil {
				return err
			}
			if err := adjustBalance(ctx, tx, updated.AccountID, updated.Amount); err != nil {
				return err
			}
		}

		entry = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *LedgerRepository) Delete(ctx context.Context, id int64) error {
	return r.db.withTx(ctx, "db.DeleteEntry", func(tx *sql.Tx) error {
		old, err := scanEntry(tx.QueryRowContext(ctx,
			`SELECT `+entryColumns+` FROM account_ledger WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ledger.ErrEntryNotFound
			}
			return fmt.Errorf("failed to load ledger entry: %w", err)
		}

		if err := lockAccount(ctx, tx, old.AccountID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM account_ledger WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete ledger entry: %w", err)
		}

		return adjustBalance(ctx, tx, old.AccountID, -old.Amount)
	})
}

func (r *LedgerRepository) CreateTransfer(ctx context.Context, debit, credit ledger.CreateParams, transferID string) ([]*ledger.Entry, error) {
	var legs []*ledger.Entry
	err := r.db.withTx(ctx, "db.CreateTransfer", func(tx *sql.Tx) error {
		if err := lockAccounts(ctx, tx, debit.AccountID, credit.AccountID); err != nil {
			return err
		}

		debitLeg, err := insertEntry(ctx, tx, debit, &transferID)
		if err != nil {
			return err
		}
		creditLeg, err := insertEntry(ctx, tx, credit, &transferID)
		if err != nil {
			return err
		}

		if err := adjustBalance(ctx, tx, debit.AccountID, debit.Amount); err != nil {
			return err
		}
		if err := adjustBalance(ctx, tx, credit.AccountID, credit.Amount); err != nil {
			return err
		}

		legs = []*ledger.Entry{debitLeg, creditLeg}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return legs, nil
}
