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

var (
	ErrBudgetNotFound  = errors.New("budget not found")
	ErrBudgetDuplicate = errors.New("an active monthly budget already exists for this category and month")
)

// budgetService implements BudgetServiceInterface
type budgetService struct {
	budgetRepo      repositories.BudgetRepositoryInterface
	categoryRepo    repositories.CategoryRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	logger          *slog.Logger
}

// NewBudgetService creates a budget service
func NewBudgetService(
	budgetRepo repositories.BudgetRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	logger *slog.Logger,
) BudgetServiceInterface {
	return &budgetService{
		budgetRepo:      budgetRepo,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		logger:          logger,
	}
}

// CreateBudget creates a monthly budget. At most one active monthly budget
// may exist per category and calendar month.
func (s *budgetService) CreateBudget(input CreateBudgetInput) (*models.Budget, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	if input.CategoryID != nil {
		if _, err := s.categoryRepo.GetByIDForUser(*input.CategoryID, input.UserID); err != nil {
			if errors.Is(err, repositories.ErrCategoryNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("failed to verify category: %w", err)
		}
	}

	exists, err := s.budgetRepo.ExistsActiveMonthly(input.UserID, input.CategoryID, input.StartDate, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check budget uniqueness: %w", err)
	}
	if exists {
		return nil, ErrBudgetDuplicate
	}

	threshold := input.AlertThreshold
	if threshold == 0 {
		threshold = models.DefaultAlertThreshold
	}

	budget := &models.Budget{
		UserID:         input.UserID,
		CategoryID:     input.CategoryID,
		Name:           input.Name,
		Amount:         input.Amount,
		Period:         models.BudgetPeriodMonthly,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		AlertThreshold: threshold,
		SendAlerts:     input.SendAlerts,
		IsActive:       true,
	}

	if err := s.budgetRepo.Create(budget); err != nil {
		s.logger.Error("failed to create budget", "user_id", input.UserID, "error", err)
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	s.logger.Info("budget created",
		"budget_id", budget.ID,
		"user_id", input.UserID,
		"amount", input.Amount.String())

	return budget, nil
}

// GetBudget retrieves a budget owned by the caller
func (s *budgetService) GetBudget(userID, budgetID uuid.UUID) (*models.Budget, error) {
	budget, err := s.budgetRepo.GetByIDForUser(budgetID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrBudgetNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	return budget, nil
}

// ListBudgets retrieves the caller's budgets with filters
func (s *budgetService) ListBudgets(filters models.BudgetFilters) ([]models.Budget, error) {
	return s.budgetRepo.GetWithFilters(filters)
}

// UpdateBudget changes the mutable budget fields. Re-activating a budget
// re-checks the monthly uniqueness rule.
func (s *budgetService) UpdateBudget(userID, budgetID uuid.UUID, input UpdateBudgetInput) (*models.Budget, error) {
	budget, err := s.budgetRepo.GetByIDForUser(budgetID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrBudgetNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}

	if input.Name != nil {
		budget.Name = *input.Name
	}
	if input.Amount != nil {
		if input.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, ErrInvalidAmount
		}
		budget.Amount = *input.Amount
	}
	if input.AlertThreshold != nil {
		if *input.AlertThreshold < 1 || *input.AlertThreshold > 100 {
			return nil, errors.New("alert threshold must be between 1 and 100")
		}
		budget.AlertThreshold = *input.AlertThreshold
	}
	if input.SendAlerts != nil {
		budget.SendAlerts = *input.SendAlerts
	}
	if input.IsActive != nil {
		if *input.IsActive && !budget.IsActive {
			exists, err := s.budgetRepo.ExistsActiveMonthly(userID, budget.CategoryID, budget.StartDate, &budget.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to check budget uniqueness: %w", err)
			}
			if exists {
				return nil, ErrBudgetDuplicate
			}
		}
		budget.IsActive = *input.IsActive
	}

	if err := s.budgetRepo.Update(budget); err != nil {
		s.logger.Error("failed to update budget", "budget_id", budgetID, "error", err)
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	s.logger.Info("budget updated", "budget_id", budgetID, "user_id", userID)

	return budget, nil
}

// DeleteBudget removes a budget
func (s *budgetService) DeleteBudget(userID, budgetID uuid.UUID) error {
	if _, err := s.budgetRepo.GetByIDForUser(budgetID, userID); err != nil {
		if errors.Is(err, repositories.ErrBudgetNotFound) {
			return ErrBudgetNotFound
		}
		return fmt.Errorf("failed to get budget: %w", err)
	}

	if err := s.budgetRepo.Delete(budgetID); err != nil {
		s.logger.Error("failed to delete budget", "budget_id", budgetID, "error", err)
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	s.logger.Info("budget deleted", "budget_id", budgetID, "user_id", userID)

	return nil
}

// GetBudgetUtilization reports spending against the budget's cap for its
// calendar month
func (s *budgetService) GetBudgetUtilization(userID, budgetID uuid.UUID) (*models.BudgetUtilization, error) {
	budget, err := s.GetBudget(userID, budgetID)
	if err != nil {
		return nil, err
	}

	year, month := budget.Month()
	windowStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := windowStart.AddDate(0, 1, 0)

	spent, err := s.transactionRepo.SumExpensesByCategoryInPeriod(userID, budget.CategoryID, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to sum budget spending: %w", err)
	}

	percentUsed := 0.0
	if budget.Amount.GreaterThan(decimal.Zero) {
		percentUsed, _ = spent.Div(budget.Amount).Mul(decimal.NewFromInt(100)).Float64()
	}

	return &models.BudgetUtilization{
		Budget:      *budget,
		Spent:       spent,
		Remaining:   budget.Amount.Sub(spent),
		PercentUsed: percentUsed,
		OverBudget:  spent.GreaterThan(budget.Amount),
	}, nil
}
