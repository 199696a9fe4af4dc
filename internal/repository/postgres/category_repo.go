package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/moneta-app/moneta-backend/internal/domain"
)

// CategoryRepository implements domain.CategoryRepository using PostgreSQL
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// Create inserts a new category. A duplicate (user, name, type) triple
// maps to domain.ErrCategoryAlreadyExists.
func (r *CategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	ctx := context.Background()

	err := r.pool.QueryRow(ctx, `
		INSERT INTO categories (user_id, name, type)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, category.UserID, category.Name, string(category.Type)).Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrCategoryAlreadyExists
		}
		return nil, fmt.Errorf("insert category: %w", err)
	}
	return category, nil
}

// GetByID retrieves a category by its ID, scoped to the owning user
func (r *CategoryRepository) GetByID(userID int32, id int32) (*domain.Category, error) {
	ctx := context.Background()

	var category domain.Category
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, name, type, created_at
		FROM categories
		WHERE user_id = $1 AND id = $2
	`, userID, id).Scan(&category.ID, &category.UserID, &category.Name, &category.Type, &category.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &category, nil
}

// GetAllByUser retrieves the user's categories, optionally filtered by
// type, ordered by (type, name) ascending.
func (r *CategoryRepository) GetAllByUser(userID int32, typeFilter *domain.CategoryType) ([]*domain.Category, error) {
	ctx := context.Background()

	query := `
		SELECT id, user_id, name, type, created_at
		FROM categories
		WHERE user_id = $1
	`
	args := []any{userID}
	if typeFilter != nil {
		query += ` AND type = $2`
		args = append(args, string(*typeFilter))
	}
	query += ` ORDER BY type, name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	categories := make([]*domain.Category, 0)
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.UserID, &category.Name, &category.Type, &category.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, &category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return categories, nil
}

// Delete removes a category owned by the user. The FK on transactions is
// ON DELETE SET NULL, so referencing transactions are detached in the
// same statement's transaction scope, never deleted.
func (r *CategoryRepository) Delete(userID int32, id int32) error {
	ctx := context.Background()

	result, err := r.pool.Exec(ctx, `
		DELETE FROM categories
		WHERE user_id = $1 AND id = $2
	`, userID, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}
