package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"financetracker/internal/models"
	"financetracker/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// timeNow is a hook for tests that pin the clock
var timeNow = time.Now

var (
	ErrRecurringNotFound     = errors.New("recurring transaction not found")
	ErrInvalidFrequency      = errors.New("invalid recurrence frequency")
	ErrRecurringTransfer     = errors.New("recurring transfers are not supported")
	ErrInvalidScheduleWindow = errors.New("end date must not precede start date")
)

// recurringTransactionService implements RecurringTransactionServiceInterface
type recurringTransactionService struct {
	recurringRepo repositories.RecurringTransactionRepositoryInterface
	accountRepo   repositories.AccountRepositoryInterface
	categoryRepo  repositories.CategoryRepositoryInterface
	logger        *slog.Logger
}

// NewRecurringTransactionService creates a recurring transaction service
func NewRecurringTransactionService(
	recurringRepo repositories.RecurringTransactionRepositoryInterface,
	accountRepo repositories.AccountRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	logger *slog.Logger,
) RecurringTransactionServiceInterface {
	return &recurringTransactionService{
		recurringRepo: recurringRepo,
		accountRepo:   accountRepo,
		categoryRepo:  categoryRepo,
		logger:        logger,
	}
}

// CreateRecurringTransaction creates a schedule template and computes its
// first next-occurrence
func (s *recurringTransactionService) CreateRecurringTransaction(input CreateRecurringTransactionInput) (*models.RecurringTransaction, error) {
	if input.TransactionType == models.TransactionTypeTransfer {
		return nil, ErrRecurringTransfer
	}
	if !models.IsValidTransactionType(input.TransactionType) {
		return nil, ErrInvalidType
	}
	if !models.IsValidFrequency(input.Frequency) {
		return nil, ErrInvalidFrequency
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	if input.EndDate != nil && input.EndDate.Before(input.StartDate) {
		return nil, ErrInvalidScheduleWindow
	}

	if _, err := s.accountRepo.GetByIDForUser(input.AccountID, input.UserID); err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to verify account: %w", err)
	}

	if input.CategoryID != nil {
		if _, err := s.categoryRepo.GetByIDForUser(*input.CategoryID, input.UserID); err != nil {
			if errors.Is(err, repositories.ErrCategoryNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("failed to verify category: %w", err)
		}
	}

	interval := input.FrequencyInterval
	if interval == 0 {
		interval = 1
	}

	recurring := &models.RecurringTransaction{
		UserID:            input.UserID,
		AccountID:         input.AccountID,
		CategoryID:        input.CategoryID,
		TransactionType:   input.TransactionType,
		Amount:            input.Amount,
		Description:       input.Description,
		Frequency:         input.Frequency,
		FrequencyInterval: interval,
		StartDate:         input.StartDate,
		EndDate:           input.EndDate,
		IsActive:          true,
	}
	recurring.NextOccurrence = recurring.FirstOccurrence(timeNow())

	if err := s.recurringRepo.Create(recurring); err != nil {
		s.logger.Error("failed to create recurring transaction", "user_id", input.UserID, "error", err)
		return nil, fmt.Errorf("failed to create recurring transaction: %w", err)
	}

	s.logger.Info("recurring transaction created",
		"recurring_id", recurring.ID,
		"user_id", input.UserID,
		"frequency", input.Frequency)

	return recurring, nil
}

// GetRecurringTransaction retrieves a template owned by the caller
func (s *recurringTransactionService) GetRecurringTransaction(userID, recurringID uuid.UUID) (*models.RecurringTransaction, error) {
	recurring, err := s.recurringRepo.GetByIDForUser(recurringID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecurringTransactionNotFound) {
			return nil, ErrRecurringNotFound
		}
		return nil, fmt.Errorf("failed to get recurring transaction: %w", err)
	}
	return recurring, nil
}

// ListRecurringTransactions retrieves all templates owned by the caller
func (s *recurringTransactionService) ListRecurringTransactions(userID uuid.UUID) ([]models.RecurringTransaction, error) {
	return s.recurringRepo.GetByUserID(userID)
}

// UpdateRecurringTransaction changes schedule fields and recomputes the
// next occurrence when the schedule itself changed
func (s *recurringTransactionService) UpdateRecurringTransaction(userID, recurringID uuid.UUID, input UpdateRecurringTransactionInput) (*models.RecurringTransaction, error) {
	recurring, err := s.recurringRepo.GetByIDForUser(recurringID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecurringTransactionNotFound) {
			return nil, ErrRecurringNotFound
		}
		return nil, fmt.Errorf("failed to get recurring transaction: %w", err)
	}

	scheduleChanged := false

	if input.Amount != nil {
		if input.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, ErrInvalidAmount
		}
		recurring.Amount = *input.Amount
	}
	if input.CategoryID != nil {
		if _, err := s.categoryRepo.GetByIDForUser(*input.CategoryID, userID); err != nil {
			if errors.Is(err, repositories.ErrCategoryNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("failed to verify category: %w", err)
		}
		recurring.CategoryID = input.CategoryID
	}
	if input.Description != nil {
		recurring.Description = *input.Description
	}
	if input.Frequency != nil {
		if !models.IsValidFrequency(*input.Frequency) {
			return nil, ErrInvalidFrequency
		}
		recurring.Frequency = *input.Frequency
		scheduleChanged = true
	}
	if input.FrequencyInterval != nil {
		if *input.FrequencyInterval < 1 {
			return nil, errors.New("frequency interval must be at least 1")
		}
		recurring.FrequencyInterval = *input.FrequencyInterval
		scheduleChanged = true
	}
	if input.StartDate != nil {
		recurring.StartDate = *input.StartDate
		scheduleChanged = true
	}
	if input.EndDate != nil {
		recurring.EndDate = input.EndDate
		scheduleChanged = true
	}
	if input.IsActive != nil {
		recurring.IsActive = *input.IsActive
	}

	if recurring.EndDate != nil && recurring.EndDate.Before(recurring.StartDate) {
		return nil, ErrInvalidScheduleWindow
	}

	if scheduleChanged {
		recurring.NextOccurrence = recurring.FirstOccurrence(timeNow())
	}

	if err := s.recurringRepo.Update(recurring); err != nil {
		s.logger.Error("failed to update recurring transaction", "recurring_id", recurringID, "error", err)
		return nil, fmt.Errorf("failed to update recurring transaction: %w", err)
	}

	s.logger.Info("recurring transaction updated", "recurring_id", recurringID, "user_id", userID)

	return recurring, nil
}

// DeleteRecurringTransaction removes a template
func (s *recurringTransactionService) DeleteRecurringTransaction(userID, recurringID uuid.UUID) error {
	if _, err := s.recurringRepo.GetByIDForUser(recurringID, userID); err != nil {
		if errors.Is(err, repositories.ErrRecurringTransactionNotFound) {
			return ErrRecurringNotFound
		}
		return fmt.Errorf("failed to get recurring transaction: %w", err)
	}

	if err := s.recurringRepo.Delete(recurringID); err != nil {
		s.logger.Error("failed to delete recurring transaction", "recurring_id", recurringID, "error", err)
		return fmt.Errorf("failed to delete recurring transaction: %w", err)
	}

	s.logger.Info("recurring transaction deleted", "recurring_id", recurringID, "user_id", userID)

	return nil
}
