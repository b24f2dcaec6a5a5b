package models

import (
	"time"

	"github.com/google/uuid"
)

// TransactionFilters contains filtering options for transaction listings.
// All filters are scoped to the owning user by the repository.
type TransactionFilters struct {
	UserID          uuid.UUID
	AccountID       *uuid.UUID
	CategoryID      *uuid.UUID
	TransactionType string
	StartDate       *time.Time
	EndDate         *time.Time
	Offset          int
	Limit           int
}

// BudgetFilters contains filtering options for budget listings
type BudgetFilters struct {
	UserID     uuid.UUID
	CategoryID *uuid.UUID
	ActiveOnly bool
}
