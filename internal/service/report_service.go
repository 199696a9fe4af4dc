package service

import (
	"github.com/moneta-app/moneta-backend/internal/domain"
)

// ReportService computes accounting summaries
type ReportService struct {
	transactionRepo domain.TransactionRepository
}

// NewReportService creates a new ReportService
func NewReportService(transactionRepo domain.TransactionRepository) *ReportService {
	return &ReportService{transactionRepo: transactionRepo}
}

// GetBalance returns the user's income total, expense total, and net
// balance. Transactions whose category no longer resolves are excluded
// from both sums. A user with no qualifying transactions gets all zeros.
func (s *ReportService) GetBalance(userID int32) (*domain.Balance, error) {
	income, expense, err := s.transactionRepo.SumsByType(userID)
	if err != nil {
		return nil, err
	}

	return &domain.Balance{
		TotalIncome:  income,
		TotalExpense: expense,
		Balance:      income.Sub(expense),
	}, nil
}
