package repositories

import (
	"errors"
	"fmt"

	"financetracker/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrRecurringTransactionNotFound = errors.New("recurring transaction not found")

// recurringTransactionRepository implements RecurringTransactionRepositoryInterface
type recurringTransactionRepository struct {
	db *gorm.DB
}

// NewRecurringTransactionRepository creates a new recurring transaction repository
func NewRecurringTransactionRepository(db *gorm.DB) RecurringTransactionRepositoryInterface {
	return &recurringTransactionRepository{
		db: db,
	}
}

// Create creates a new recurring transaction
func (r *recurringTransactionRepository) Create(recurring *models.RecurringTransaction) error {
	if err := r.db.Create(recurring).Error; err != nil {
		return fmt.Errorf("failed to create recurring transaction: %w", err)
	}
	return nil
}

// GetByID retrieves a recurring transaction by ID
func (r *recurringTransactionRepository) GetByID(id uuid.UUID) (*models.RecurringTransaction, error) {
	recurring := &models.RecurringTransaction{ID: id}
	if err := r.db.First(recurring).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecurringTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get recurring transaction: %w", err)
	}
	return recurring, nil
}

// GetByIDForUser retrieves a recurring transaction by ID scoped to its owner
func (r *recurringTransactionRepository) GetByIDForUser(id, userID uuid.UUID) (*models.RecurringTransaction, error) {
	var recurring models.RecurringTransaction
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&recurring).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecurringTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get recurring transaction: %w", err)
	}
	return &recurring, nil
}

// GetByUserID retrieves all recurring transactions for a user
func (r *recurringTransactionRepository) GetByUserID(userID uuid.UUID) ([]models.RecurringTransaction, error) {
	var recurrings []models.RecurringTransaction
	if err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&recurrings).Error; err != nil {
		return nil, fmt.Errorf("failed to get recurring transactions: %w", err)
	}
	return recurrings, nil
}

// GetActiveByUserID retrieves active recurring transactions for a user
func (r *recurringTransactionRepository) GetActiveByUserID(userID uuid.UUID) ([]models.RecurringTransaction, error) {
	var recurrings []models.RecurringTransaction
	if err := r.db.Where("user_id = ? AND is_active = ?", userID, true).
		Order("start_date ASC").Find(&recurrings).Error; err != nil {
		return nil, fmt.Errorf("failed to get active recurring transactions: %w", err)
	}
	return recurrings, nil
}

// Update updates a recurring transaction
func (r *recurringTransactionRepository) Update(recurring *models.RecurringTransaction) error {
	if err := r.db.Save(recurring).Error; err != nil {
		return fmt.Errorf("failed to update recurring transaction: %w", err)
	}
	return nil
}

// Delete deletes a recurring transaction
func (r *recurringTransactionRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.RecurringTransaction{ID: id})
	if result.Error != nil {
		return fmt.Errorf("failed to delete recurring transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecurringTransactionNotFound
	}
	return nil
}
