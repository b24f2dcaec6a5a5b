package repositories

import (
	"errors"
	"fmt"

	"financetracker/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrGoalNotFound = errors.New("goal not found")

// goalRepository implements GoalRepositoryInterface
type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new goal repository
func NewGoalRepository(db *gorm.DB) GoalRepositoryInterface {
	return &goalRepository{
		db: db,
	}
}

// Create creates a new goal
func (r *goalRepository) Create(goal *models.Goal) error {
	if err := r.db.Create(goal).Error; err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}
	return nil
}

// GetByID retrieves a goal by ID
func (r *goalRepository) GetByID(id uuid.UUID) (*models.Goal, error) {
	goal := &models.Goal{ID: id}
	if err := r.db.First(goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	return goal, nil
}

// GetByIDForUser retrieves a goal by ID scoped to its owner
func (r *goalRepository) GetByIDForUser(id, userID uuid.UUID) (*models.Goal, error) {
	var goal models.Goal
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	return &goal, nil
}

// GetByUserID retrieves all goals for a user
func (r *goalRepository) GetByUserID(userID uuid.UUID) ([]models.Goal, error) {
	var goals []models.Goal
	if err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&goals).Error; err != nil {
		return nil, fmt.Errorf("failed to get goals: %w", err)
	}
	return goals, nil
}

// Update updates a goal
func (r *goalRepository) Update(goal *models.Goal) error {
	if err := r.db.Save(goal).Error; err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	return nil
}

// Delete deletes a goal
func (r *goalRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Goal{ID: id})
	if result.Error != nil {
		return fmt.Errorf("failed to delete goal: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrGoalNotFound
	}
	return nil
}
