package services

import (
	"errors"
	"fmt"
	"log/slog"

	"financetracker/internal/models"
	"financetracker/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrGoalNotFound      = errors.New("goal not found")
	ErrInvalidGoalStatus = errors.New("invalid goal status")
)

// goalService implements GoalServiceInterface
type goalService struct {
	goalRepo repositories.GoalRepositoryInterface
	logger   *slog.Logger
}

// NewGoalService creates a goal service
func NewGoalService(goalRepo repositories.GoalRepositoryInterface, logger *slog.Logger) GoalServiceInterface {
	return &goalService{
		goalRepo: goalRepo,
		logger:   logger,
	}
}

// CreateGoal creates a savings goal
func (s *goalService) CreateGoal(input CreateGoalInput) (*models.Goal, error) {
	if input.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	goal := &models.Goal{
		UserID:       input.UserID,
		Name:         input.Name,
		Description:  input.Description,
		TargetAmount: input.TargetAmount,
		TargetDate:   input.TargetDate,
		Status:       models.GoalStatusInProgress,
		Color:        input.Color,
		Icon:         input.Icon,
	}

	if err := s.goalRepo.Create(goal); err != nil {
		s.logger.Error("failed to create goal", "user_id", input.UserID, "error", err)
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	s.logger.Info("goal created",
		"goal_id", goal.ID,
		"user_id", input.UserID,
		"target_amount", input.TargetAmount.String())

	return goal, nil
}

// GetGoal retrieves a goal owned by the caller
func (s *goalService) GetGoal(userID, goalID uuid.UUID) (*models.Goal, error) {
	goal, err := s.goalRepo.GetByIDForUser(goalID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrGoalNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	return goal, nil
}

// ListGoals retrieves all goals owned by the caller
func (s *goalService) ListGoals(userID uuid.UUID) ([]models.Goal, error) {
	return s.goalRepo.GetByUserID(userID)
}

// UpdateGoal changes goal fields. Reaching the target amount moves the goal
// to completed automatically.
func (s *goalService) UpdateGoal(userID, goalID uuid.UUID, input UpdateGoalInput) (*models.Goal, error) {
	goal, err := s.goalRepo.GetByIDForUser(goalID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrGoalNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}

	if input.Name != nil {
		goal.Name = *input.Name
	}
	if input.Description != nil {
		goal.Description = *input.Description
	}
	if input.TargetAmount != nil {
		if input.TargetAmount.LessThanOrEqual(decimal.Zero) {
			return nil, ErrInvalidAmount
		}
		goal.TargetAmount = *input.TargetAmount
	}
	if input.CurrentAmount != nil {
		if input.CurrentAmount.IsNegative() {
			return nil, ErrInvalidAmount
		}
		goal.CurrentAmount = *input.CurrentAmount
	}
	if input.TargetDate != nil {
		goal.TargetDate = input.TargetDate
	}
	if input.Status != nil {
		if !models.IsValidGoalStatus(*input.Status) {
			return nil, ErrInvalidGoalStatus
		}
		goal.Status = *input.Status
	}
	if input.Color != nil {
		goal.Color = *input.Color
	}
	if input.Icon != nil {
		goal.Icon = *input.Icon
	}

	if goal.Status == models.GoalStatusInProgress && goal.CurrentAmount.GreaterThanOrEqual(goal.TargetAmount) {
		goal.Status = models.GoalStatusCompleted
	}

	if err := s.goalRepo.Update(goal); err != nil {
		s.logger.Error("failed to update goal", "goal_id", goalID, "error", err)
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	s.logger.Info("goal updated", "goal_id", goalID, "user_id", userID, "status", goal.Status)

	return goal, nil
}

// DeleteGoal removes a goal
func (s *goalService) DeleteGoal(userID, goalID uuid.UUID) error {
	if _, err := s.goalRepo.GetByIDForUser(goalID, userID); err != nil {
		if errors.Is(err, repositories.ErrGoalNotFound) {
			return ErrGoalNotFound
		}
		return fmt.Errorf("failed to get goal: %w", err)
	}

	if err := s.goalRepo.Delete(goalID); err != nil {
		s.logger.Error("failed to delete goal", "goal_id", goalID, "error", err)
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	s.logger.Info("goal deleted", "goal_id", goalID, "user_id", userID)

	return nil
}
