package dto

import (
	"financetracker/internal/models"
)

// Account Request DTOs

// CreateAccountRequest represents the request payload for creating a new account
type CreateAccountRequest struct {
	Name              string `json:"name" validate:"required,min=1,max=100"`
	AccountType       string `json:"account_type" validate:"required,account_type"`
	InitialBalance    string `json:"initial_balance"`
	Currency          string `json:"currency" validate:"omitempty,len=3"`
	Institution       string `json:"institution" validate:"omitempty,max=100"`
	CreditLimit       string `json:"credit_limit"`
	Description       string `json:"description"`
	Color             string `json:"color" validate:"omitempty,max=20"`
	Icon              string `json:"icon" validate:"omitempty,max=50"`
	IncludeInNetWorth *bool  `json:"include_in_net_worth"`
}

// UpdateAccountRequest represents the request payload for updating an account.
// Balance is intentionally absent; only ledger entries move balances.
type UpdateAccountRequest struct {
	Name              *string `json:"name" validate:"omitempty,min=1,max=100"`
	Institution       *string `json:"institution" validate:"omitempty,max=100"`
	Description       *string `json:"description"`
	Color             *string `json:"color" validate:"omitempty,max=20"`
	Icon              *string `json:"icon" validate:"omitempty,max=50"`
	IsActive          *bool   `json:"is_active"`
	IncludeInNetWorth *bool   `json:"include_in_net_worth"`
	CreditLimit       *string `json:"credit_limit"`
}

// Account Response DTOs

// CreateAccountResponse represents the response after creating an account
type CreateAccountResponse struct {
	Account *models.Account `json:"account"`
	Message string          `json:"message"`
}

// AccountListResponse represents the list of accounts for a user
type AccountListResponse struct {
	Accounts []models.Account `json:"accounts"`
	Total    int              `json:"total"`
}
