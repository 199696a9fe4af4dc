package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/moneta-app/moneta-backend/internal/domain"
	"github.com/moneta-app/moneta-backend/internal/service"
	"github.com/moneta-app/moneta-backend/internal/testutil"
)

func newCategoryHandler() (*CategoryHandler, *testutil.MockCategoryRepository) {
	repo := testutil.NewMockCategoryRepository()
	return NewCategoryHandler(service.NewCategoryService(repo)), repo
}

func TestCreateCategoryHandler(t *testing.T) {
	e := echo.New()
	h, _ := newCategoryHandler()

	c, rec := newTestContext(e, http.MethodPost, "/api/v1/categories", `{"name":"Groceries","type":"expense"}`, 1)
	if err := h.CreateCategory(c); err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	var resp CategoryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if resp.Name != "Groceries" {
		t.Errorf("Expected name Groceries, got %s", resp.Name)
	}
	if resp.Type != "expense" {
		t.Errorf("Expected type expense, got %s", resp.Type)
	}
}

func TestCreateCategoryHandlerValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty name", `{"name":"","type":"expense"}`},
		{"invalid type", `{"name":"Misc","type":"savings"}`},
		{"missing type", `{"name":"Misc"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			h, _ := newCategoryHandler()
			c, rec := newTestContext(e, http.MethodPost, "/api/v1/categories", tt.body, 1)
			if err := h.CreateCategory(c); err != nil {
				t.Fatalf("CreateCategory failed: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", rec.Code)
			}
		})
	}
}

func TestCreateCategoryHandlerConflict(t *testing.T) {
	e := echo.New()
	h, _ := newCategoryHandler()

	body := `{"name":"Food","type":"expense"}`
	c, _ := newTestContext(e, http.MethodPost, "/api/v1/categories", body, 1)
	if err := h.CreateCategory(c); err != nil {
		t.Fatalf("First create failed: %v", err)
	}

	c, rec := newTestContext(e, http.MethodPost, "/api/v1/categories", body, 1)
	if err := h.CreateCategory(c); err != nil {
		t.Fatalf("Second create failed: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", rec.Code)
	}
}

func TestCreateCategoryHandlerUnauthenticated(t *testing.T) {
	e := echo.New()
	h, _ := newCategoryHandler()

	c, rec := newTestContext(e, http.MethodPost, "/api/v1/categories", `{"name":"Food","type":"expense"}`, 0)
	if err := h.CreateCategory(c); err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestGetCategoriesHandler(t *testing.T) {
	e := echo.New()
	h, repo := newCategoryHandler()

	repo.AddCategory(&domain.Category{ID: 1, UserID: 1, Name: "Salary", Type: domain.CategoryTypeIncome})
	repo.AddCategory(&domain.Category{ID: 2, UserID: 1, Name: "Food", Type: domain.CategoryTypeExpense})
	repo.AddCategory(&domain.Category{ID: 3, UserID: 2, Name: "Other", Type: domain.CategoryTypeExpense})

	c, rec := newTestContext(e, http.MethodGet, "/api/v1/categories", "", 1)
	if err := h.GetCategories(c); err != nil {
		t.Fatalf("GetCategories failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var resp []CategoryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(resp) != 2 {
		t.Errorf("Expected 2 categories, got %d", len(resp))
	}
}

func TestGetCategoriesHandlerFilter(t *testing.T) {
	e := echo.New()
	h, repo := newCategoryHandler()

	repo.AddCategory(&domain.Category{ID: 1, UserID: 1, Name: "Salary", Type: domain.CategoryTypeIncome})
	repo.AddCategory(&domain.Category{ID: 2, UserID: 1, Name: "Food", Type: domain.CategoryTypeExpense})

	c, rec := newTestContext(e, http.MethodGet, "/api/v1/categories?type=income", "", 1)
	if err := h.GetCategories(c); err != nil {
		t.Fatalf("GetCategories failed: %v", err)
	}

	var resp []CategoryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(resp) != 1 || resp[0].Name != "Salary" {
		t.Errorf("Expected only Salary, got %+v", resp)
	}

	// An unknown filter value is rejected
	c, rec = newTestContext(e, http.MethodGet, "/api/v1/categories?type=bogus", "", 1)
	if err := h.GetCategories(c); err != nil {
		t.Fatalf("GetCategories failed: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestDeleteCategoryHandler(t *testing.T) {
	e := echo.New()
	h, repo := newCategoryHandler()

	repo.AddCategory(&domain.Category{ID: 7, UserID: 1, Name: "Food", Type: domain.CategoryTypeExpense})

	c, rec := newTestContext(e, http.MethodDelete, "/api/v1/categories/7", "", 1)
	c.SetParamNames("id")
	c.SetParamValues("7")
	if err := h.DeleteCategory(c); err != nil {
		t.Fatalf("DeleteCategory failed: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rec.Code)
	}
	if len(repo.Categories) != 0 {
		t.Errorf("Expected category removed, %d remain", len(repo.Categories))
	}
}

func TestDeleteCategoryHandlerNotFound(t *testing.T) {
	e := echo.New()
	h, repo := newCategoryHandler()

	// A category owned by someone else reads as not found
	repo.AddCategory(&domain.Category{ID: 7, UserID: 2, Name: "Food", Type: domain.CategoryTypeExpense})

	for _, id := range []int32{7, 99} {
		c, rec := newTestContext(e, http.MethodDelete, fmt.Sprintf("/api/v1/categories/%d", id), "", 1)
		c.SetParamNames("id")
		c.SetParamValues(fmt.Sprint(id))
		if err := h.DeleteCategory(c); err != nil {
			t.Fatalf("DeleteCategory failed: %v", err)
		}
		if rec.Code != http.StatusNotFound {
			t.Errorf("ID %d: expected status 404, got %d", id, rec.Code)
		}
	}
}

func TestDeleteCategoryHandlerInvalidID(t *testing.T) {
	e := echo.New()
	h, _ := newCategoryHandler()

	c, rec := newTestContext(e, http.MethodDelete, "/api/v1/categories/abc", "", 1)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	if err := h.DeleteCategory(c); err != nil {
		t.Fatalf("DeleteCategory failed: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}
