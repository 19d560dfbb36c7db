package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"elephantbook/internal/domain/category"
)

// CategoryRepository implements category.Repository using PostgreSQL
type CategoryRepository struct {
	db *DB
}

func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, params category.CreateParams) (*category.Category, error) {
	query := `
		INSERT INTO categories (user_id, category_type, name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	cat := &category.Category{
		UserID:       params.UserID,
		CategoryType: params.CategoryType,
		Name:         params.Name,
	}

	err := r.db.QueryRowContext(ctx, query,
		params.UserID, params.CategoryType, params.Name,
	).Scan(&cat.ID, &cat.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return cat, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*category.Category, error) {
	query := `
		SELECT id, user_id, category_type, name, created_at
		FROM categories
		WHERE id = $1`

	cat := &category.Category{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&cat.ID, &cat.UserID, &cat.CategoryType, &cat.Name, &cat.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return cat, nil
}

func (r *CategoryRepository) ListByUserID(ctx context.Context, userID int64) ([]*category.Category, error) {
	query := `
		SELECT id, user_id, category_type, name, created_at
		FROM categories
		WHERE user_id = $1
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []*category.Category{}
	for rows.Next() {
		cat := &category.Category{}
		if err := rows.Scan(
			&cat.ID, &cat.UserID, &cat.CategoryType, &cat.Name, &cat.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}

	return categories, nil
}

func (r *CategoryRepository) Update(ctx context.Context, id int64, params category.UpdateParams) (*category.Category, error) {
	sets := []string{}
	args := []any{}
	argPos := 1

	if params.CategoryType != nil {
		sets = append(sets, fmt.Sprintf("category_type = $%d", argPos))
		args = append(args, *params.CategoryType)
		argPos++
	}
	if params.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", argPos))
		args = append(args, *params.Name)
		argPos++
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	query := fmt.Sprintf(`
		UPDATE categories
		SET %s
		WHERE id = $%d
		RETURNING id, user_id, category_type, name, created_at`,
		strings.Join(sets, ", "), argPos)
	args = append(args, id)

	cat := &category.Category{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&cat.ID, &cat.UserID, &cat.CategoryType, &cat.Name, &cat.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return cat, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	return r.db.withTx(ctx, "db.DeleteCategory", func(tx *sql.Tx) error {
		var refs int64
		err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM account_ledger WHERE category_id = $1`, id,
		).Scan(&refs)
		if err != nil {
			return fmt.Errorf("failed to count ledger references: %w", err)
		}
		if refs > 0 {
			return category.ErrCategoryInUse
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if affected == 0 {
			return category.ErrCategoryNotFound
		}
		return nil
	})
}
