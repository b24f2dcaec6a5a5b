package services

import (
	"errors"
	"fmt"
	"log/slog"

	"financetracker/internal/models"
	"financetracker/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrInvalidCategoryType = errors.New("invalid category type")
	ErrCategoryInUse       = errors.New("category is referenced by transactions, budgets or subcategories")
	ErrSystemCategory      = errors.New("system categories cannot be deleted")
	ErrNestedSubcategory   = errors.New("subcategories cannot have their own children")
	ErrParentTypeMismatch  = errors.New("subcategory type must match its parent")
)

// categoryService implements CategoryServiceInterface
type categoryService struct {
	categoryRepo repositories.CategoryRepositoryInterface
	logger       *slog.Logger
}

// NewCategoryService creates a category service
func NewCategoryService(categoryRepo repositories.CategoryRepositoryInterface, logger *slog.Logger) CategoryServiceInterface {
	return &categoryService{
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// CreateCategory creates a category, optionally nested one level under a
// parent of the same type
func (s *categoryService) CreateCategory(input CreateCategoryInput) (*models.Category, error) {
	if !models.IsValidCategoryType(input.CategoryType) {
		return nil, ErrInvalidCategoryType
	}

	if input.ParentCategoryID != nil {
		parent, err := s.categoryRepo.GetByIDForUser(*input.ParentCategoryID, input.UserID)
		if err != nil {
			if errors.Is(err, repositories.ErrCategoryNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("failed to verify parent category: %w", err)
		}
		if parent.ParentCategoryID != nil {
			return nil, ErrNestedSubcategory
		}
		if parent.CategoryType != input.CategoryType {
			return nil, ErrParentTypeMismatch
		}
	}

	category := &models.Category{
		UserID:           input.UserID,
		Name:             input.Name,
		CategoryType:     input.CategoryType,
		ParentCategoryID: input.ParentCategoryID,
		Icon:             input.Icon,
		Color:            input.Color,
	}

	if err := s.categoryRepo.Create(category); err != nil {
		s.logger.Error("failed to create category", "user_id", input.UserID, "error", err)
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info("category created",
		"category_id", category.ID,
		"user_id", input.UserID,
		"category_type", input.CategoryType)

	return category, nil
}

// GetCategory retrieves a category owned by the caller
func (s *categoryService) GetCategory(userID, categoryID uuid.UUID) (*models.Category, error) {
	category, err := s.categoryRepo.GetByIDForUser(categoryID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

// ListCategories retrieves the caller's categories, optionally filtered by type
func (s *categoryService) ListCategories(userID uuid.UUID, categoryType string) ([]models.Category, error) {
	if categoryType != "" {
		if !models.IsValidCategoryType(categoryType) {
			return nil, ErrInvalidCategoryType
		}
		return s.categoryRepo.GetByUserIDAndType(userID, categoryType)
	}
	return s.categoryRepo.GetByUserID(userID)
}

// DeleteCategory removes a category unless it is a system category, has
// subcategories, or is referenced by transactions or budgets
func (s *categoryService) DeleteCategory(userID, categoryID uuid.UUID) error {
	category, err := s.categoryRepo.GetByIDForUser(categoryID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to get category: %w", err)
	}

	if category.IsSystem {
		return ErrSystemCategory
	}

	hasChildren, err := s.categoryRepo.HasChildren(categoryID)
	if err != nil {
		return fmt.Errorf("failed to check subcategories: %w", err)
	}
	if hasChildren {
		return ErrCategoryInUse
	}

	inUse, err := s.categoryRepo.IsInUse(categoryID)
	if err != nil {
		return fmt.Errorf("failed to check category usage: %w", err)
	}
	if inUse {
		return ErrCategoryInUse
	}

	if err := s.categoryRepo.Delete(categoryID); err != nil {
		s.logger.Error("failed to delete category", "category_id", categoryID, "error", err)
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.logger.Info("category deleted", "category_id", categoryID, "user_id", userID)

	return nil
}
