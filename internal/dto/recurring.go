package dto

import (
	"financetracker/internal/models"
)

// CreateRecurringTransactionRequest represents the request payload for a recurring template
type CreateRecurringTransactionRequest struct {
	AccountID         string `json:"account_id" validate:"required,uuid"`
	CategoryID        string `json:"category_id" validate:"omitempty,uuid"`
	TransactionType   string `json:"transaction_type" validate:"required,oneof=income expense"`
	Amount            string `json:"amount" validate:"required"`
	Description       string `json:"description" validate:"omitempty,max=255"`
	Frequency         string `json:"frequency" validate:"required,frequency"`
	FrequencyInterval int    `json:"frequency_interval" validate:"omitempty,min=1,max=365"`
	StartDate         string `json:"start_date" validate:"required"`
	EndDate           string `json:"end_date"`
}

// UpdateRecurringTransactionRequest represents the mutable schedule fields
type UpdateRecurringTransactionRequest struct {
	Amount            *string `json:"amount"`
	CategoryID        *string `json:"category_id" validate:"omitempty,uuid"`
	Description       *string `json:"description" validate:"omitempty,max=255"`
	Frequency         *string `json:"frequency" validate:"omitempty,frequency"`
	FrequencyInterval *int    `json:"frequency_interval" validate:"omitempty,min=1,max=365"`
	StartDate         *string `json:"start_date"`
	EndDate           *string `json:"end_date"`
	IsActive          *bool   `json:"is_active"`
}

// RecurringTransactionListResponse represents the list of recurring templates
type RecurringTransactionListResponse struct {
	RecurringTransactions []models.RecurringTransaction `json:"recurring_transactions"`
	Total                 int                           `json:"total"`
}
