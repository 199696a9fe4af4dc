package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sentinel values reported for transactions whose category reference is
// null (never set, or detached by category deletion).
const (
	UncategorizedName = "uncategorized"
	UnknownType       = "unknown"
)

// Transaction is a single ledger entry. Amount is stored non-negative;
// its sign in balance computation is implied by the linked category's
// type. Date is the user-supplied business date, distinct from CreatedAt.
type Transaction struct {
	ID          int32           `json:"id"`
	UserID      int32           `json:"userId"`
	Amount      decimal.Decimal `json:"amount"`
	CategoryID  *int32          `json:"categoryId,omitempty"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// TransactionRow is a listing row with the category resolved to its name
// and type, falling back to the uncategorized/unknown sentinels.
type TransactionRow struct {
	ID           int32           `json:"id"`
	Amount       decimal.Decimal `json:"amount"`
	CategoryName string          `json:"categoryName"`
	CategoryType string          `json:"categoryType"`
	Description  string          `json:"description"`
	Date         time.Time       `json:"date"`
}

// UpdateTransactionData holds the fields applied by a transaction update.
type UpdateTransactionData struct {
	Amount      decimal.Decimal
	CategoryID  *int32
	Description string
	Date        time.Time
}

const (
	DefaultListLimit = 10
	MaxListLimit     = 100
)

// TransactionRepository defines the interface for transaction persistence
// operations. All methods are scoped to the owning user.
type TransactionRepository interface {
	Create(transaction *Transaction) (*Transaction, error)
	GetByID(userID int32, id int32) (*Transaction, error)
	// ListByUser returns up to limit rows ordered by business date
	// descending, ties broken by creation timestamp descending.
	ListByUser(userID int32, limit int32) ([]*TransactionRow, error)
	Update(userID int32, id int32, data *UpdateTransactionData) (*Transaction, error)
	Delete(userID int32, id int32) error
	// SumsByType returns the income and expense totals over transactions
	// whose category still resolves to a type.
	SumsByType(userID int32) (income, expense decimal.Decimal, err error)
}
