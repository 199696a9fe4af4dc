package service

import (
	"strings"

	"github.com/moneta-app/moneta-backend/internal/domain"
	"github.com/moneta-app/moneta-backend/internal/websocket"
)

// CategoryService handles category business logic
type CategoryService struct {
	categoryRepo   domain.CategoryRepository
	eventPublisher websocket.EventPublisher
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// SetEventPublisher sets the WebSocket event publisher
func (s *CategoryService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *CategoryService) publishEvent(userID int32, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, event)
	}
}

// CreateCategory creates a new category for the user
func (s *CategoryService) CreateCategory(userID int32, name string, categoryType domain.CategoryType) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxCategoryNameLength {
		return nil, domain.ErrNameTooLong
	}
	if !categoryType.IsValid() {
		return nil, domain.ErrInvalidCategoryType
	}

	category := &domain.Category{
		UserID: userID,
		Name:   name,
		Type:   categoryType,
	}

	created, err := s.categoryRepo.Create(category)
	if err != nil {
		return nil, err
	}

	s.publishEvent(userID, websocket.CategoryCreated(created))
	return created, nil
}

// GetCategories retrieves the user's categories, optionally filtered by
// type, ordered by (type, name). An empty result is a valid empty slice.
func (s *CategoryService) GetCategories(userID int32, typeFilter string) ([]*domain.Category, error) {
	var filter *domain.CategoryType
	if typeFilter != "" {
		t := domain.CategoryType(typeFilter)
		if !t.IsValid() {
			return nil, domain.ErrInvalidCategoryType
		}
		filter = &t
	}
	return s.categoryRepo.GetAllByUser(userID, filter)
}

// DeleteCategory deletes a category owned by the user. Transactions that
// pointed to it are detached, never deleted.
func (s *CategoryService) DeleteCategory(userID int32, id int32) error {
	if err := s.categoryRepo.Delete(userID, id); err != nil {
		return err
	}

	s.publishEvent(userID, websocket.CategoryDeleted(map[string]int32{"id": id}))
	return nil
}
