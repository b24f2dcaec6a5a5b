package repositories

import (
	"errors"
	"fmt"

	"financetracker/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInUse    = errors.New("category is referenced by transactions or budgets")
)

// categoryRepository implements CategoryRepositoryInterface
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepositoryInterface {
	return &categoryRepository{
		db: db,
	}
}

// Create creates a new category
func (r *categoryRepository) Create(category *models.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// GetByID retrieves a category by ID
func (r *categoryRepository) GetByID(id uuid.UUID) (*models.Category, error) {
	category := &models.Category{ID: id}
	if err := r.db.First(category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

// GetByIDForUser retrieves a category by ID scoped to its owner
func (r *categoryRepository) GetByIDForUser(id, userID uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

// GetByUserID retrieves all categories for a user
func (r *categoryRepository) GetByUserID(userID uuid.UUID) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Where("user_id = ?", userID).
		Order("sort_order ASC, name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get categories for user: %w", err)
	}
	return categories, nil
}

// GetByUserIDAndType retrieves categories for a user by type
func (r *categoryRepository) GetByUserIDAndType(userID uuid.UUID, categoryType string) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Where("user_id = ? AND category_type = ?", userID, categoryType).
		Order("sort_order ASC, name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get categories by type: %w", err)
	}
	return categories, nil
}

// Update updates a category
func (r *categoryRepository) Update(category *models.Category) error {
	if err := r.db.Save(category).Error; err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

// Delete deletes a category
func (r *categoryRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Category{ID: id})
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// IsInUse reports whether any transaction or budget references the category
func (r *categoryRepository) IsInUse(categoryID uuid.UUID) (bool, error) {
	var txCount int64
	if err := r.db.Model(&models.Transaction{}).
		Where("category_id = ?", categoryID).
		Count(&txCount).Error; err != nil {
		return false, fmt.Errorf("failed to check category transactions: %w", err)
	}
	if txCount > 0 {
		return true, nil
	}

	var budgetCount int64
	if err := r.db.Model(&models.Budget{}).
		Where("category_id = ?", categoryID).
		Count(&budgetCount).Error; err != nil {
		return false, fmt.Errorf("failed to check category budgets: %w", err)
	}
	return budgetCount > 0, nil
}

// HasChildren reports whether the category has subcategories
func (r *categoryRepository) HasChildren(categoryID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Category{}).
		Where("parent_category_id = ?", categoryID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check subcategories: %w", err)
	}
	return count > 0, nil
}
