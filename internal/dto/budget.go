package dto

import (
	"financetracker/internal/models"
)

// CreateBudgetRequest represents the request payload for creating a monthly budget
type CreateBudgetRequest struct {
	CategoryID     string `json:"category_id" validate:"omitempty,uuid"`
	Name           string `json:"name" validate:"required,min=1,max=100"`
	Amount         string `json:"amount" validate:"required"`
	StartDate      string `json:"start_date" validate:"required"`
	EndDate        string `json:"end_date"`
	AlertThreshold int    `json:"alert_threshold" validate:"omitempty,min=1,max=100"`
	SendAlerts     *bool  `json:"send_alerts"`
}

// UpdateBudgetRequest represents the mutable budget fields
type UpdateBudgetRequest struct {
	Name           *string `json:"name" validate:"omitempty,min=1,max=100"`
	Amount         *string `json:"amount"`
	AlertThreshold *int    `json:"alert_threshold" validate:"omitempty,min=1,max=100"`
	SendAlerts     *bool   `json:"send_alerts"`
	IsActive       *bool   `json:"is_active"`
}

// BudgetFilters contains query parameters for budget listings
type BudgetFilters struct {
	CategoryID string `query:"category_id"`
	ActiveOnly bool   `query:"active_only"`
}

// BudgetListResponse represents the list of budgets for a user
type BudgetListResponse struct {
	Budgets []models.Budget `json:"budgets"`
	Total   int             `json:"total"`
}
