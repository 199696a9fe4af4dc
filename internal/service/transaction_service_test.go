package service

import (
	"errors"
	"testing"
	"time"

	"github.com/moneta-app/moneta-backend/internal/domain"
	"github.com/moneta-app/moneta-backend/internal/testutil"
	"github.com/shopspring/decimal"
)

func newTransactionService() (*TransactionService, *testutil.MockTransactionRepository, *testutil.MockCategoryRepository) {
	categoryRepo := testutil.NewMockCategoryRepository()
	transactionRepo := testutil.NewMockTransactionRepository(categoryRepo)
	categoryRepo.Transactions = transactionRepo
	return NewTransactionService(transactionRepo, categoryRepo), transactionRepo, categoryRepo
}

func TestCreateTransaction(t *testing.T) {
	svc, _, categoryRepo := newTransactionService()

	category, err := categoryRepo.Create(&domain.Category{UserID: 1, Name: "Salary", Type: domain.CategoryTypeIncome})
	if err != nil {
		t.Fatalf("Create category failed: %v", err)
	}

	transaction, err := svc.CreateTransaction(1, CreateTransactionInput{
		Amount:      decimal.NewFromFloat(1250.50),
		CategoryID:  &category.ID,
		Description: "July salary",
		Date:        "2024-07-01",
	})
	if err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}
	if transaction.ID == 0 {
		t.Error("Expected transaction ID to be assigned")
	}
	if !transaction.Amount.Equal(decimal.NewFromFloat(1250.50)) {
		t.Errorf("Expected amount 1250.50, got %s", transaction.Amount)
	}
	if transaction.Date.Format("2006-01-02") != "2024-07-01" {
		t.Errorf("Expected date 2024-07-01, got %s", transaction.Date.Format("2006-01-02"))
	}
}

func TestCreateTransactionDefaultsDateToToday(t *testing.T) {
	svc, _, _ := newTransactionService()

	transaction, err := svc.CreateTransaction(1, CreateTransactionInput{
		Amount: decimal.NewFromInt(5),
	})
	if err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}

	today := time.Now().UTC().Format("2006-01-02")
	if transaction.Date.Format("2006-01-02") != today {
		t.Errorf("Expected date %s, got %s", today, transaction.Date.Format("2006-01-02"))
	}
}

func TestCreateTransactionInvalidAmount(t *testing.T) {
	svc, repo, _ := newTransactionService()

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10)} {
		_, err := svc.CreateTransaction(1, CreateTransactionInput{Amount: amount})
		if !errors.Is(err, domain.ErrInvalidAmount) {
			t.Errorf("Amount %s: expected ErrInvalidAmount, got %v", amount, err)
		}
	}
	if len(repo.Transactions) != 0 {
		t.Errorf("Expected no transactions written, got %d", len(repo.Transactions))
	}
}

func TestCreateTransactionInvalidDate(t *testing.T) {
	svc, _, _ := newTransactionService()

	for _, date := range []string{"07/01/2024", "2024-13-01", "yesterday"} {
		_, err := svc.CreateTransaction(1, CreateTransactionInput{
			Amount: decimal.NewFromInt(5),
			Date:   date,
		})
		if !errors.Is(err, domain.ErrInvalidDate) {
			t.Errorf("Date %q: expected ErrInvalidDate, got %v", date, err)
		}
	}
}

func TestCreateTransactionForeignCategory(t *testing.T) {
	svc, repo, categoryRepo := newTransactionService()

	// Category belongs to user 2
	category, err := categoryRepo.Create(&domain.Category{UserID: 2, Name: "Food", Type: domain.CategoryTypeExpense})
	if err != nil {
		t.Fatalf("Create category failed: %v", err)
	}

	_, err = svc.CreateTransaction(1, CreateTransactionInput{
		Amount:     decimal.NewFromInt(20),
		CategoryID: &category.ID,
		Date:       "2024-07-01",
	})
	if !errors.Is(err, domain.ErrCategoryNotOwned) {
		t.Errorf("Expected ErrCategoryNotOwned, got %v", err)
	}
	if len(repo.Transactions) != 0 {
		t.Errorf("Expected no transactions written, got %d", len(repo.Transactions))
	}
}

func TestCreateTransactionUnknownCategory(t *testing.T) {
	svc, _, _ := newTransactionService()

	missing := int32(99)
	_, err := svc.CreateTransaction(1, CreateTransactionInput{
		Amount:     decimal.NewFromInt(20),
		CategoryID: &missing,
	})
	if !errors.Is(err, domain.ErrCategoryNotOwned) {
		t.Errorf("Expected ErrCategoryNotOwned, got %v", err)
	}
}

func TestGetTransactionsOrderAndLimit(t *testing.T) {
	svc, _, categoryRepo := newTransactionService()

	category, err := categoryRepo.Create(&domain.Category{UserID: 1, Name: "Other", Type: domain.CategoryTypeExpense})
	if err != nil {
		t.Fatalf("Create category failed: %v", err)
	}

	for _, date := range []string{"2024-01-01", "2024-01-02"} {
		if _, err := svc.CreateTransaction(1, CreateTransactionInput{
			Amount:     decimal.NewFromInt(10),
			CategoryID: &category.ID,
			Date:       date,
		}); err != nil {
			t.Fatalf("CreateTransaction failed: %v", err)
		}
	}

	rows, err := svc.GetTransactions(1, 0)
	if err != nil {
		t.Fatalf("GetTransactions failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if rows[0].Date.Format("2006-01-02") != "2024-01-02" {
		t.Errorf("Expected newest date first, got %s", rows[0].Date.Format("2006-01-02"))
	}

	// Limit 1 keeps only the most recent business date
	limited, err := svc.GetTransactions(1, 1)
	if err != nil {
		t.Fatalf("GetTransactions failed: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(limited))
	}
	if limited[0].Date.Format("2006-01-02") != "2024-01-02" {
		t.Errorf("Expected the 2024-01-02 row, got %s", limited[0].Date.Format("2006-01-02"))
	}
}

func TestGetTransactionsSameDateOrderedByCreation(t *testing.T) {
	svc, _, _ := newTransactionService()

	for _, description := range []string{"first", "second"} {
		if _, err := svc.CreateTransaction(1, CreateTransactionInput{
			Amount:      decimal.NewFromInt(10),
			Description: description,
			Date:        "2024-03-15",
		}); err != nil {
			t.Fatalf("CreateTransaction failed: %v", err)
		}
	}

	rows, err := svc.GetTransactions(1, 10)
	if err != nil {
		t.Fatalf("GetTransactions failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if rows[0].Description != "second" {
		t.Errorf("Expected most recently created first, got %q", rows[0].Description)
	}
}

func TestGetTransactionsLimitClamped(t *testing.T) {
	svc, repo, _ := newTransactionService()

	// More rows than the cap allows
	for i := 0; i < domain.MaxListLimit+5; i++ {
		repo.Transactions[int32(i+1)] = &domain.Transaction{
			ID:     int32(i + 1),
			UserID: 1,
			Amount: decimal.NewFromInt(1),
			Date:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		}
	}

	rows, err := svc.GetTransactions(1, 10000)
	if err != nil {
		t.Fatalf("GetTransactions failed: %v", err)
	}
	if len(rows) != domain.MaxListLimit {
		t.Errorf("Expected limit clamped to %d, got %d rows", domain.MaxListLimit, len(rows))
	}
}

func TestGetTransactionsUncategorizedSentinels(t *testing.T) {
	svc, _, _ := newTransactionService()

	if _, err := svc.CreateTransaction(1, CreateTransactionInput{
		Amount: decimal.NewFromInt(10),
		Date:   "2024-02-01",
	}); err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}

	rows, err := svc.GetTransactions(1, 10)
	if err != nil {
		t.Fatalf("GetTransactions failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	if rows[0].CategoryName != domain.UncategorizedName {
		t.Errorf("Expected category name %q, got %q", domain.UncategorizedName, rows[0].CategoryName)
	}
	if rows[0].CategoryType != domain.UnknownType {
		t.Errorf("Expected category type %q, got %q", domain.UnknownType, rows[0].CategoryType)
	}
}

func TestUpdateTransaction(t *testing.T) {
	svc, _, _ := newTransactionService()

	created, err := svc.CreateTransaction(1, CreateTransactionInput{
		Amount: decimal.NewFromInt(10),
		Date:   "2024-02-01",
	})
	if err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}

	updated, err := svc.UpdateTransaction(1, created.ID, UpdateTransactionInput{
		Amount:      decimal.NewFromInt(25),
		Description: "corrected",
		Date:        "2024-02-02",
	})
	if err != nil {
		t.Fatalf("UpdateTransaction failed: %v", err)
	}
	if !updated.Amount.Equal(decimal.NewFromInt(25)) {
		t.Errorf("Expected amount 25, got %s", updated.Amount)
	}
	if updated.Description != "corrected" {
		t.Errorf("Expected description corrected, got %q", updated.Description)
	}
}

func TestUpdateTransactionNotFound(t *testing.T) {
	svc, _, _ := newTransactionService()

	_, err := svc.UpdateTransaction(1, 99, UpdateTransactionInput{
		Amount: decimal.NewFromInt(10),
		Date:   "2024-02-01",
	})
	if !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Errorf("Expected ErrTransactionNotFound, got %v", err)
	}
}

func TestUpdateTransactionForeignCategory(t *testing.T) {
	svc, _, categoryRepo := newTransactionService()

	created, err := svc.CreateTransaction(1, CreateTransactionInput{
		Amount: decimal.NewFromInt(10),
		Date:   "2024-02-01",
	})
	if err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}

	category, err := categoryRepo.Create(&domain.Category{UserID: 2, Name: "Food", Type: domain.CategoryTypeExpense})
	if err != nil {
		t.Fatalf("Create category failed: %v", err)
	}

	_, err = svc.UpdateTransaction(1, created.ID, UpdateTransactionInput{
		Amount:     decimal.NewFromInt(10),
		CategoryID: &category.ID,
		Date:       "2024-02-01",
	})
	if !errors.Is(err, domain.ErrCategoryNotOwned) {
		t.Errorf("Expected ErrCategoryNotOwned, got %v", err)
	}
}

func TestDeleteTransaction(t *testing.T) {
	svc, repo, _ := newTransactionService()

	created, err := svc.CreateTransaction(1, CreateTransactionInput{
		Amount: decimal.NewFromInt(10),
		Date:   "2024-02-01",
	})
	if err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}

	if err := svc.DeleteTransaction(1, created.ID); err != nil {
		t.Fatalf("DeleteTransaction failed: %v", err)
	}
	if len(repo.Transactions) != 0 {
		t.Errorf("Expected transaction removed, %d remain", len(repo.Transactions))
	}
}

func TestDeleteTransactionNotFound(t *testing.T) {
	svc, _, _ := newTransactionService()

	if err := svc.DeleteTransaction(1, 99); !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Errorf("Expected ErrTransactionNotFound, got %v", err)
	}
}

func TestDeleteTransactionOtherUser(t *testing.T) {
	svc, repo, _ := newTransactionService()

	created, err := svc.CreateTransaction(1, CreateTransactionInput{
		Amount: decimal.NewFromInt(10),
		Date:   "2024-02-01",
	})
	if err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}

	if err := svc.DeleteTransaction(2, created.ID); !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Errorf("Expected ErrTransactionNotFound for foreign user, got %v", err)
	}
	if len(repo.Transactions) != 1 {
		t.Errorf("Expected transaction to survive, %d remain", len(repo.Transactions))
	}
}
