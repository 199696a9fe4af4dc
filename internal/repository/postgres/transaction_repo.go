package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/moneta-app/moneta-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// TransactionRepository implements domain.TransactionRepository using
// PostgreSQL
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create inserts a new transaction
func (r *TransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(transaction.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	var date pgtype.Date
	date.Time = transaction.Date
	date.Valid = true

	err = r.pool.QueryRow(ctx, `
		INSERT INTO transactions (user_id, amount, category_id, description, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, transaction.UserID, amount, transaction.CategoryID, transaction.Description, date).
		Scan(&transaction.ID, &transaction.CreatedAt, &transaction.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}
	return transaction, nil
}

// GetByID retrieves a transaction by its ID, scoped to the owning user
func (r *TransactionRepository) GetByID(userID int32, id int32) (*domain.Transaction, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, amount, category_id, description, date, created_at, updated_at
		FROM transactions
		WHERE user_id = $1 AND id = $2
	`, userID, id)

	transaction, err := scanTransaction(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return transaction, nil
}

// ListByUser returns up to limit transactions ordered by business date
// descending, then creation timestamp descending. The category is
// resolved via a left join; detached rows fall back to the sentinels.
func (r *TransactionRepository) ListByUser(userID int32, limit int32) ([]*domain.TransactionRow, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT t.id, t.amount, c.name, c.type, t.description, t.date
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1
		ORDER BY t.date DESC, t.created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	result := make([]*domain.TransactionRow, 0)
	for rows.Next() {
		var (
			row          domain.TransactionRow
			amount       pgtype.Numeric
			categoryName pgtype.Text
			categoryType pgtype.Text
			date         pgtype.Date
		)
		if err := rows.Scan(&row.ID, &amount, &categoryName, &categoryType, &row.Description, &date); err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		row.Amount = pgNumericToDecimal(amount)
		row.Date = date.Time
		row.CategoryName = domain.UncategorizedName
		if categoryName.Valid {
			row.CategoryName = categoryName.String
		}
		row.CategoryType = domain.UnknownType
		if categoryType.Valid {
			row.CategoryType = categoryType.String
		}
		result = append(result, &row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return result, nil
}

// Update applies the new amount, category, description, and date
func (r *TransactionRepository) Update(userID int32, id int32, data *domain.UpdateTransactionData) (*domain.Transaction, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(data.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	var date pgtype.Date
	date.Time = data.Date
	date.Valid = true

	row := r.pool.QueryRow(ctx, `
		UPDATE transactions
		SET amount = $3, category_id = $4, description = $5, date = $6, updated_at = now()
		WHERE user_id = $1 AND id = $2
		RETURNING id, user_id, amount, category_id, description, date, created_at, updated_at
	`, userID, id, amount, data.CategoryID, data.Description, date)

	transaction, err := scanTransaction(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("update transaction: %w", err)
	}
	return transaction, nil
}

// Delete removes a transaction owned by the user
func (r *TransactionRepository) Delete(userID int32, id int32) error {
	ctx := context.Background()

	result, err := r.pool.Exec(ctx, `
		DELETE FROM transactions
		WHERE user_id = $1 AND id = $2
	`, userID, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// SumsByType computes the income and expense totals over the user's
// transactions. The inner join excludes uncategorized transactions from
// both sums.
func (r *TransactionRepository) SumsByType(userID int32) (decimal.Decimal, decimal.Decimal, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT c.type, SUM(t.amount)
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1
		GROUP BY c.type
	`, userID)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("query sums: %w", err)
	}
	defer rows.Close()

	income, expense := decimal.Zero, decimal.Zero
	for rows.Next() {
		var (
			categoryType string
			sum          pgtype.Numeric
		)
		if err := rows.Scan(&categoryType, &sum); err != nil {
			return decimal.Zero, decimal.Zero, fmt.Errorf("scan sum: %w", err)
		}
		switch domain.CategoryType(categoryType) {
		case domain.CategoryTypeIncome:
			income = pgNumericToDecimal(sum)
		case domain.CategoryTypeExpense:
			expense = pgNumericToDecimal(sum)
		}
	}
	if err := rows.Err(); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("rows error: %w", err)
	}
	return income, expense, nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		transaction domain.Transaction
		amount      pgtype.Numeric
		date        pgtype.Date
	)
	err := row.Scan(&transaction.ID, &transaction.UserID, &amount, &transaction.CategoryID,
		&transaction.Description, &date, &transaction.CreatedAt, &transaction.UpdatedAt)
	if err != nil {
		return nil, err
	}
	transaction.Amount = pgNumericToDecimal(amount)
	transaction.Date = date.Time
	return &transaction, nil
}
