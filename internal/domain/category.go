package domain

import "time"

// CategoryType tags a category as income or expense. It is a closed set;
// anything else is rejected at the service boundary and by a DB check
// constraint.
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// IsValid reports whether the type is one of the two recognized values.
func (t CategoryType) IsValid() bool {
	return t == CategoryTypeIncome || t == CategoryTypeExpense
}

// Category represents a user-defined income or expense bucket.
// (user_id, name, type) is unique.
type Category struct {
	ID        int32        `json:"id"`
	UserID    int32        `json:"userId"`
	Name      string       `json:"name"`
	Type      CategoryType `json:"type"`
	CreatedAt time.Time    `json:"createdAt"`
}

// CategorySeed is a category to be created alongside a new user.
type CategorySeed struct {
	Name string
	Type CategoryType
}

// DefaultCategories returns the fixed set every new user is seeded with
// (3 income, 7 expense) so the UI is never empty.
func DefaultCategories() []CategorySeed {
	return []CategorySeed{
		{Name: "Salary", Type: CategoryTypeIncome},
		{Name: "Investment Income", Type: CategoryTypeIncome},
		{Name: "Other Income", Type: CategoryTypeIncome},
		{Name: "Food", Type: CategoryTypeExpense},
		{Name: "Transport", Type: CategoryTypeExpense},
		{Name: "Entertainment", Type: CategoryTypeExpense},
		{Name: "Shopping", Type: CategoryTypeExpense},
		{Name: "Household", Type: CategoryTypeExpense},
		{Name: "Medical", Type: CategoryTypeExpense},
		{Name: "Other Expenses", Type: CategoryTypeExpense},
	}
}

// CategoryRepository defines the interface for category persistence
// operations. All methods are scoped to the owning user.
type CategoryRepository interface {
	Create(category *Category) (*Category, error)
	GetByID(userID int32, id int32) (*Category, error)
	GetAllByUser(userID int32, typeFilter *CategoryType) ([]*Category, error)
	// Delete removes the category; the schema detaches (nulls) the
	// category reference on transactions that pointed to it.
	Delete(userID int32, id int32) error
}
