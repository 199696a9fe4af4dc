package testutil

import (
	"sort"
	"time"

	"github.com/moneta-app/moneta-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	Users  map[string]*domain.User
	ByID   map[int32]*domain.User
	NextID int32

	// Categories, when set, receives the seed categories created during
	// registration so tests can observe the seeded set.
	Categories *MockCategoryRepository
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:  make(map[string]*domain.User),
		ByID:   make(map[int32]*domain.User),
		NextID: 1,
	}
}

// CreateWithCategories creates a user and its seed categories
func (m *MockUserRepository) CreateWithCategories(user *domain.User, seed []domain.CategorySeed) (*domain.User, error) {
	if _, ok := m.Users[user.Username]; ok {
		return nil, domain.ErrUsernameTaken
	}

	user.ID = m.NextID
	m.NextID++
	user.CreatedAt = time.Now().UTC()
	m.Users[user.Username] = user
	m.ByID[user.ID] = user

	if m.Categories != nil {
		for _, s := range seed {
			if _, err := m.Categories.Create(&domain.Category{
				UserID: user.ID,
				Name:   s.Name,
				Type:   s.Type,
			}); err != nil {
				return nil, err
			}
		}
	}
	return user, nil
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(id int32) (*domain.User, error) {
	if user, ok := m.ByID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByUsername retrieves a user by username
func (m *MockUserRepository) GetByUsername(username string) (*domain.User, error) {
	if user, ok := m.Users[username]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.Users[user.Username] = user
	m.ByID[user.ID] = user
	if user.ID >= m.NextID {
		m.NextID = user.ID + 1
	}
}

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	Categories map[int32]*domain.Category
	NextID     int32

	// Transactions, when set, has its rows detached when a category is
	// deleted, mirroring the FK ON DELETE SET NULL behavior.
	Transactions *MockTransactionRepository
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories: make(map[int32]*domain.Category),
		NextID:     1,
	}
}

// Create creates a new category
func (m *MockCategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	for _, existing := range m.Categories {
		if existing.UserID == category.UserID && existing.Name == category.Name && existing.Type == category.Type {
			return nil, domain.ErrCategoryAlreadyExists
		}
	}

	category.ID = m.NextID
	m.NextID++
	category.CreatedAt = time.Now().UTC()
	m.Categories[category.ID] = category
	return category, nil
}

// GetByID retrieves a category scoped to the owning user
func (m *MockCategoryRepository) GetByID(userID int32, id int32) (*domain.Category, error) {
	if category, ok := m.Categories[id]; ok && category.UserID == userID {
		return category, nil
	}
	return nil, domain.ErrCategoryNotFound
}

// GetAllByUser retrieves the user's categories ordered by (type, name)
func (m *MockCategoryRepository) GetAllByUser(userID int32, typeFilter *domain.CategoryType) ([]*domain.Category, error) {
	result := make([]*domain.Category, 0)
	for _, category := range m.Categories {
		if category.UserID != userID {
			continue
		}
		if typeFilter != nil && category.Type != *typeFilter {
			continue
		}
		result = append(result, category)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Type != result[j].Type {
			return result[i].Type < result[j].Type
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

// Delete removes a category and detaches referencing transactions
func (m *MockCategoryRepository) Delete(userID int32, id int32) error {
	category, ok := m.Categories[id]
	if !ok || category.UserID != userID {
		return domain.ErrCategoryNotFound
	}
	delete(m.Categories, id)

	if m.Transactions != nil {
		for _, transaction := range m.Transactions.Transactions {
			if transaction.CategoryID != nil && *transaction.CategoryID == id {
				transaction.CategoryID = nil
			}
		}
	}
	return nil
}

// AddCategory adds a category to the mock repository (helper for tests)
func (m *MockCategoryRepository) AddCategory(category *domain.Category) {
	m.Categories[category.ID] = category
	if category.ID >= m.NextID {
		m.NextID = category.ID + 1
	}
}

// MockTransactionRepository is a mock implementation of
// domain.TransactionRepository
type MockTransactionRepository struct {
	Transactions map[int32]*domain.Transaction
	NextID       int32

	// Categories resolves category names/types for listing and sums
	Categories *MockCategoryRepository

	clock time.Time
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository(categories *MockCategoryRepository) *MockTransactionRepository {
	return &MockTransactionRepository{
		Transactions: make(map[int32]*domain.Transaction),
		NextID:       1,
		Categories:   categories,
		clock:        time.Now().UTC(),
	}
}

// Create creates a new transaction
func (m *MockTransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	transaction.ID = m.NextID
	m.NextID++

	// Monotonic creation timestamps keep list ordering deterministic
	m.clock = m.clock.Add(time.Second)
	transaction.CreatedAt = m.clock
	transaction.UpdatedAt = m.clock

	m.Transactions[transaction.ID] = transaction
	return transaction, nil
}

// GetByID retrieves a transaction scoped to the owning user
func (m *MockTransactionRepository) GetByID(userID int32, id int32) (*domain.Transaction, error) {
	if transaction, ok := m.Transactions[id]; ok && transaction.UserID == userID {
		return transaction, nil
	}
	return nil, domain.ErrTransactionNotFound
}

// ListByUser returns rows ordered by date desc, then created_at desc
func (m *MockTransactionRepository) ListByUser(userID int32, limit int32) ([]*domain.TransactionRow, error) {
	owned := make([]*domain.Transaction, 0)
	for _, transaction := range m.Transactions {
		if transaction.UserID == userID {
			owned = append(owned, transaction)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		if !owned[i].Date.Equal(owned[j].Date) {
			return owned[i].Date.After(owned[j].Date)
		}
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})
	if int32(len(owned)) > limit {
		owned = owned[:limit]
	}

	result := make([]*domain.TransactionRow, len(owned))
	for i, transaction := range owned {
		row := &domain.TransactionRow{
			ID:           transaction.ID,
			Amount:       transaction.Amount,
			CategoryName: domain.UncategorizedName,
			CategoryType: domain.UnknownType,
			Description:  transaction.Description,
			Date:         transaction.Date,
		}
		if category := m.resolveCategory(transaction); category != nil {
			row.CategoryName = category.Name
			row.CategoryType = string(category.Type)
		}
		result[i] = row
	}
	return result, nil
}

// Update applies the update data to a transaction owned by the user
func (m *MockTransactionRepository) Update(userID int32, id int32, data *domain.UpdateTransactionData) (*domain.Transaction, error) {
	transaction, ok := m.Transactions[id]
	if !ok || transaction.UserID != userID {
		return nil, domain.ErrTransactionNotFound
	}
	transaction.Amount = data.Amount
	transaction.CategoryID = data.CategoryID
	transaction.Description = data.Description
	transaction.Date = data.Date
	transaction.UpdatedAt = time.Now().UTC()
	return transaction, nil
}

// Delete removes a transaction owned by the user
func (m *MockTransactionRepository) Delete(userID int32, id int32) error {
	transaction, ok := m.Transactions[id]
	if !ok || transaction.UserID != userID {
		return domain.ErrTransactionNotFound
	}
	delete(m.Transactions, id)
	return nil
}

// SumsByType computes income and expense totals; transactions without a
// resolvable category are excluded from both sums.
func (m *MockTransactionRepository) SumsByType(userID int32) (decimal.Decimal, decimal.Decimal, error) {
	income, expense := decimal.Zero, decimal.Zero
	for _, transaction := range m.Transactions {
		if transaction.UserID != userID {
			continue
		}
		category := m.resolveCategory(transaction)
		if category == nil {
			continue
		}
		switch category.Type {
		case domain.CategoryTypeIncome:
			income = income.Add(transaction.Amount)
		case domain.CategoryTypeExpense:
			expense = expense.Add(transaction.Amount)
		}
	}
	return income, expense, nil
}

func (m *MockTransactionRepository) resolveCategory(transaction *domain.Transaction) *domain.Category {
	if transaction.CategoryID == nil || m.Categories == nil {
		return nil
	}
	if category, ok := m.Categories.Categories[*transaction.CategoryID]; ok {
		return category
	}
	return nil
}
