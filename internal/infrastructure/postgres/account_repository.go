package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"elephantbook/internal/domain/account"
)

// AccountRepository implements account.Repository using PostgreSQL
type AccountRepository struct {
	db *DB
}

func NewAccountRepository(db *DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, params account.CreateParams) (*account.Account, error) {
	query := `
		INSERT INTO accounts (user_id, account_name, account_type)
		VALUES ($1, $2, $3)
		RETURNING id, balance, created_at`

	acc := &account.Account{
		UserID:      params.UserID,
		AccountName: params.AccountName,
		AccountType: params.AccountType,
	}

	err := r.db.QueryRowContext(ctx, query,
		params.UserID, params.AccountName, params.AccountType,
	).Scan(&acc.ID, &acc.Balance, &acc.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return acc, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*account.Account, error) {
	query := `
		SELECT id, user_id, account_name, account_type, balance, created_at
		FROM accounts
		WHERE id = $1`

	acc := &account.Account{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&acc.ID, &acc.UserID, &acc.AccountName, &acc.AccountType, &acc.Balance, &acc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, account.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return acc, nil
}

func (r *AccountRepository) ListByUserID(ctx context.Context, userID int64) ([]*account.Account, error) {
	query := `
		SELECT id, user_id, account_name, account_type, balance, created_at
		FROM accounts
		WHERE user_id = $1
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []*account.Account{}
	for rows.Next() {
		acc := &account.Account{}
		if err := rows.Scan(
			&acc.ID, &acc.UserID, &acc.AccountName, &acc.AccountType, &acc.Balance, &acc.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	return accounts, nil
}

func (r *AccountRepository) Update(ctx context.Context, id int64, params account.UpdateParams) (*account.Account, error) {
	sets := []string{}
	args := []any{}
	argPos := 1

	if params.AccountName != nil {
		sets = append(sets, fmt.Sprintf("account_name = $%d", argPos))
		args = append(args, *params.AccountName)
		argPos++
	}
	if params.AccountType != nil {
		sets = append(sets, fmt.Sprintf("account_type = $%d", argPos))
		args = append(args, *params.AccountType)
		argPos++
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	query := fmt.Sprintf(`
		UPDATE accounts
		SET %s
		WHERE id = $%d
		RETURNING id, user_id, account_name, account_type, balance, created_at`,
		strings.Join(sets, ", "), argPos)
	args = append(args, id)

	acc := &account.Account{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&acc.ID, &acc.UserID, &acc.AccountName, &acc.AccountType, &acc.Balance, &acc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, account.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	return acc, nil
}

func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	return r.db.withTx(ctx, "db.DeleteAccount", func(tx *sql.Tx) error {
		var refs int64
		err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM account_ledger WHERE account_id = $1`, id,
		).Scan(&refs)
		if err != nil {
			return fmt.Errorf("failed to count ledger references: %w", err)
		}
		if refs > 0 {
			return account.ErrAccountHasEntries
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete account: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if affected == 0 {
			return account.ErrAccountNotFound
		}
		return nil
	})
}
