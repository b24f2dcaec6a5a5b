package dto

import (
	"time"

	"financetracker/internal/models"
)

// Transaction Request DTOs

// CreateTransactionRequest represents the request payload for recording a ledger entry
type CreateTransactionRequest struct {
	AccountID           string `json:"account_id" validate:"required,uuid"`
	CategoryID          string `json:"category_id" validate:"omitempty,uuid"`
	TransferToAccountID string `json:"transfer_to_account_id" validate:"omitempty,uuid"`
	TransactionType     string `json:"transaction_type" validate:"required,transaction_type"`
	Amount              string `json:"amount" validate:"required"`
	Date                string `json:"date" validate:"required"`
	Description         string `json:"description" validate:"omitempty,max=255"`
	Notes               string `json:"notes"`
	Reference           string `json:"reference" validate:"omitempty,max=100"`
	Tags                string `json:"tags" validate:"omitempty,max=255"`
}

// UpdateTransactionRequest represents the request payload for amending a ledger
// entry. Type, source account and transfer target are immutable after creation.
type UpdateTransactionRequest struct {
	Amount      *string `json:"amount"`
	CategoryID  *string `json:"category_id" validate:"omitempty,uuid"`
	Date        *string `json:"date"`
	Description *string `json:"description" validate:"omitempty,max=255"`
	Notes       *string `json:"notes"`
	Reference   *string `json:"reference" validate:"omitempty,max=100"`
	Tags        *string `json:"tags" validate:"omitempty,max=255"`
}

// TransactionFilters contains query parameters for transaction listings
type TransactionFilters struct {
	AccountID       string     `query:"account_id"`
	CategoryID      string     `query:"category_id"`
	TransactionType string     `query:"type"`
	StartDate       *time.Time `query:"start_date"`
	EndDate         *time.Time `query:"end_date"`
	Offset          int        `query:"offset"`
	Limit           int        `query:"limit"`
}

// Transaction Response DTOs

// CreateTransactionResponse represents the response after recording a transaction
type CreateTransactionResponse struct {
	Transaction *models.Transaction `json:"transaction"`
	Message     string              `json:"message"`
}

// TransactionListResponse represents a paginated list of transactions
type TransactionListResponse struct {
	Transactions []models.Transaction `json:"transactions"`
	Pagination   PaginationMeta       `json:"pagination"`
}
