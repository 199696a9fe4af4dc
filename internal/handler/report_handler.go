package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/moneta-app/moneta-backend/internal/middleware"
	"github.com/moneta-app/moneta-backend/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ReportHandler handles accounting report HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// BalanceResponse represents the balance report
type BalanceResponse struct {
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Balance      decimal.Decimal `json:"balance"`
}

// GetBalance handles GET /api/v1/reports/balance
func (h *ReportHandler) GetBalance(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	balance, err := h.reportService.GetBalance(userID)
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to compute balance")
		return NewInternalError(c, "Failed to compute balance")
	}

	return c.JSON(http.StatusOK, BalanceResponse{
		TotalIncome:  balance.TotalIncome,
		TotalExpense: balance.TotalExpense,
		Balance:      balance.Balance,
	})
}
