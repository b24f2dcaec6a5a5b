package dto

import (
	"financetracker/internal/models"
)

// CreateGoalRequest represents the request payload for creating a savings goal
type CreateGoalRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=100"`
	Description  string `json:"description"`
	TargetAmount string `json:"target_amount" validate:"required"`
	TargetDate   string `json:"target_date"`
	Color        string `json:"color" validate:"omitempty,max=20"`
	Icon         string `json:"icon" validate:"omitempty,max=50"`
}

// UpdateGoalRequest represents the mutable goal fields
type UpdateGoalRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description   *string `json:"description"`
	TargetAmount  *string `json:"target_amount"`
	CurrentAmount *string `json:"current_amount"`
	TargetDate    *string `json:"target_date"`
	Status        *string `json:"status" validate:"omitempty,goal_status"`
	Color         *string `json:"color" validate:"omitempty,max=20"`
	Icon          *string `json:"icon" validate:"omitempty,max=50"`
}

// GoalListResponse represents the list of goals for a user
type GoalListResponse struct {
	Goals []models.Goal `json:"goals"`
	Total int           `json:"total"`
}
