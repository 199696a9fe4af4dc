package service

import (
	"errors"
	"time"

	"github.com/moneta-app/moneta-backend/internal/domain"
	"github.com/moneta-app/moneta-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// dateLayout is the wire format for business dates
const dateLayout = "2006-01-02"

// TransactionService handles transaction business logic
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	categoryRepo    domain.CategoryRepository
	eventPublisher  websocket.EventPublisher
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo domain.TransactionRepository, categoryRepo domain.CategoryRepository) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
	}
}

// SetEventPublisher sets the WebSocket event publisher
func (s *TransactionService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *TransactionService) publishEvent(userID int32, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, event)
	}
}

// CreateTransactionInput holds the input for creating a transaction
type CreateTransactionInput struct {
	Amount      decimal.Decimal
	CategoryID  *int32
	Description string
	Date        string // YYYY-MM-DD, empty means today
}

// CreateTransaction creates a new transaction with validation. If a
// category is supplied its ownership is re-validated; a category that
// does not resolve for this user fails the call and nothing is written.
func (s *TransactionService) CreateTransaction(userID int32, input CreateTransactionInput) (*domain.Transaction, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	date, err := parseBusinessDate(input.Date)
	if err != nil {
		return nil, err
	}

	if input.CategoryID != nil {
		if err := s.checkCategoryOwnership(userID, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	transaction := &domain.Transaction{
		UserID:      userID,
		Amount:      input.Amount,
		CategoryID:  input.CategoryID,
		Description: input.Description,
		Date:        date,
	}

	created, err := s.transactionRepo.Create(transaction)
	if err != nil {
		return nil, err
	}

	s.publishEvent(userID, websocket.TransactionCreated(created))
	return created, nil
}

// GetTransactions returns up to limit transactions, most recent business
// date first. A non-positive limit falls back to the default.
func (s *TransactionService) GetTransactions(userID int32, limit int32) ([]*domain.TransactionRow, error) {
	if limit <= 0 {
		limit = domain.DefaultListLimit
	}
	if limit > domain.MaxListLimit {
		limit = domain.MaxListLimit
	}
	return s.transactionRepo.ListByUser(userID, limit)
}

// GetTransactionByID retrieves a transaction by ID for the user
func (s *TransactionService) GetTransactionByID(userID int32, id int32) (*domain.Transaction, error) {
	return s.transactionRepo.GetByID(userID, id)
}

// UpdateTransactionInput holds the input for updating a transaction
type UpdateTransactionInput struct {
	Amount      decimal.Decimal
	CategoryID  *int32
	Description string
	Date        string
}

// UpdateTransaction updates an existing transaction with the same
// validation rules as creation.
func (s *TransactionService) UpdateTransaction(userID int32, id int32, input UpdateTransactionInput) (*domain.Transaction, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	date, err := parseBusinessDate(input.Date)
	if err != nil {
		return nil, err
	}

	if input.CategoryID != nil {
		if err := s.checkCategoryOwnership(userID, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	updated, err := s.transactionRepo.Update(userID, id, &domain.UpdateTransactionData{
		Amount:      input.Amount,
		CategoryID:  input.CategoryID,
		Description: input.Description,
		Date:        date,
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(userID, websocket.TransactionUpdated(updated))
	return updated, nil
}

// DeleteTransaction deletes a transaction owned by the user
func (s *TransactionService) DeleteTransaction(userID int32, id int32) error {
	if err := s.transactionRepo.Delete(userID, id); err != nil {
		return err
	}

	s.publishEvent(userID, websocket.TransactionDeleted(map[string]int32{"id": id}))
	return nil
}

// checkCategoryOwnership verifies the category resolves for this user.
// An unknown or foreign category is reported as an ownership failure.
func (s *TransactionService) checkCategoryOwnership(userID int32, categoryID int32) error {
	_, err := s.categoryRepo.GetByID(userID, categoryID)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return domain.ErrCategoryNotOwned
		}
		return err
	}
	return nil
}

func parseBusinessDate(value string) (time.Time, error) {
	if value == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	date, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, domain.ErrInvalidDate
	}
	return date, nil
}
