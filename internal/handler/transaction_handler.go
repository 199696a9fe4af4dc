package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/moneta-app/moneta-backend/internal/domain"
	"github.com/moneta-app/moneta-backend/internal/middleware"
	"github.com/moneta-app/moneta-backend/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// TransactionHandler handles transaction HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// TransactionRequest represents the create/update transaction request body
type TransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	CategoryID  *int32          `json:"categoryId"`
	Description string          `json:"description"`
	Date        string          `json:"date"` // YYYY-MM-DD, empty means today
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID          int32           `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	CategoryID  *int32          `json:"categoryId,omitempty"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
}

// TransactionRowResponse represents a listing row with the category
// resolved to its name and type.
type TransactionRowResponse struct {
	ID           int32           `json:"id"`
	Amount       decimal.Decimal `json:"amount"`
	CategoryName string          `json:"categoryName"`
	CategoryType string          `json:"categoryType"`
	Description  string          `json:"description"`
	Date         string          `json:"date"`
}

// CreateTransaction handles POST /api/v1/transactions
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	transaction, err := h.transactionService.CreateTransaction(userID, service.CreateTransactionInput{
		Amount:      req.Amount,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		if resp := transactionValidationResponse(c, err); resp != nil {
			return resp
		}
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to create transaction")
		return NewInternalError(c, "Failed to create transaction")
	}

	log.Info().Int32("user_id", userID).Int32("transaction_id", transaction.ID).Msg("Transaction created")
	return c.JSON(http.StatusCreated, toTransactionResponse(transaction))
}

// GetTransactions handles GET /api/v1/transactions
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var limit int32
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return NewValidationError(c, "Invalid limit", nil)
		}
		limit = int32(parsed)
	}

	rows, err := h.transactionService.GetTransactions(userID, limit)
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to get transactions")
		return NewInternalError(c, "Failed to get transactions")
	}

	response := make([]TransactionRowResponse, len(rows))
	for i, row := range rows {
		response[i] = TransactionRowResponse{
			ID:           row.ID,
			Amount:       row.Amount,
			CategoryName: row.CategoryName,
			CategoryType: row.CategoryType,
			Description:  row.Description,
			Date:         row.Date.Format("2006-01-02"),
		}
	}
	return c.JSON(http.StatusOK, response)
}

// UpdateTransaction handles PUT /api/v1/transactions/:id
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	transaction, err := h.transactionService.UpdateTransaction(userID, int32(id), service.UpdateTransactionInput{
		Amount:      req.Amount,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		if resp := transactionValidationResponse(c, err); resp != nil {
			return resp
		}
		log.Error().Err(err).Int32("user_id", userID).Int("transaction_id", id).Msg("Failed to update transaction")
		return NewInternalError(c, "Failed to update transaction")
	}

	log.Info().Int32("user_id", userID).Int("transaction_id", id).Msg("Transaction updated")
	return c.JSON(http.StatusOK, toTransactionResponse(transaction))
}

// DeleteTransaction handles DELETE /api/v1/transactions/:id
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	if err := h.transactionService.DeleteTransaction(userID, int32(id)); err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		log.Error().Err(err).Int32("user_id", userID).Int("transaction_id", id).Msg("Failed to delete transaction")
		return NewInternalError(c, "Failed to delete transaction")
	}

	log.Info().Int32("user_id", userID).Int("transaction_id", id).Msg("Transaction deleted")
	return c.NoContent(http.StatusNoContent)
}

// transactionValidationResponse maps the shared create/update validation
// errors; returns nil for errors it does not handle.
func transactionValidationResponse(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrInvalidAmount) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must be positive"},
		})
	}
	if errors.Is(err, domain.ErrInvalidDate) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "date", Message: "Date must be in YYYY-MM-DD format"},
		})
	}
	if errors.Is(err, domain.ErrCategoryNotOwned) {
		return NewForbiddenError(c, "Category does not exist or belongs to another user")
	}
	return nil
}

func toTransactionResponse(transaction *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          transaction.ID,
		Amount:      transaction.Amount,
		CategoryID:  transaction.CategoryID,
		Description: transaction.Description,
		Date:        transaction.Date.Format("2006-01-02"),
		CreatedAt:   transaction.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   transaction.UpdatedAt.Format(time.RFC3339),
	}
}
