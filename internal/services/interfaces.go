package services

import (
	"time"

	"financetracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateTransactionInput carries the fields accepted when recording a ledger entry
type CreateTransactionInput struct {
	UserID              uuid.UUID
	AccountID           uuid.UUID
	CategoryID          *uuid.UUID
	TransferToAccountID *uuid.UUID
	TransactionType     string
	Amount              decimal.Decimal
	Date                time.Time
	Description         string
	Notes               string
	Reference           string
	Tags                string
}

// UpdateTransactionInput carries the mutable fields of a ledger entry.
// Nil pointers leave the stored value unchanged. Type, source account and
// transfer target cannot be changed after creation.
type UpdateTransactionInput struct {
	Amount      *decimal.Decimal
	CategoryID  *uuid.UUID
	Date        *time.Time
	Description *string
	Notes       *string
	Reference   *string
	Tags        *string
}

// LedgerServiceInterface defines the contract for balance-mutating
// transaction operations. All writes to account balances go through here.
type LedgerServiceInterface interface {
	CreateTransaction(input CreateTransactionInput) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID uuid.UUID, input UpdateTransactionInput) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID uuid.UUID) error
	GetTransaction(userID, transactionID uuid.UUID) (*models.Transaction, error)
	ListTransactions(filters models.TransactionFilters) ([]models.Transaction, int64, error)
}

// InsightServiceInterface defines the contract for derived dashboard metrics
type InsightServiceInterface interface {
	GetDashboardSummary(userID uuid.UUID) (*models.DashboardSummary, error)
	GetAccountsSummary(userID uuid.UUID) (*models.AccountsSummary, error)
	GetAccountMix(userID uuid.UUID) ([]models.Metric, error)
}

// AlertServiceInterface defines the contract for computed alerts
type AlertServiceInterface interface {
	GetAlerts(userID uuid.UUID) ([]models.Alert, error)
}

// CreateAccountInput carries the fields accepted when opening an account
type CreateAccountInput struct {
	UserID            uuid.UUID
	Name              string
	AccountType       string
	InitialBalance    decimal.Decimal
	Currency          string
	Institution       string
	CreditLimit       *decimal.Decimal
	Description       string
	Color             string
	Icon              string
	IncludeInNetWorth bool
}

// UpdateAccountInput carries the mutable account fields. Balance is never
// writable here; only ledger operations move it.
type UpdateAccountInput struct {
	Name              *string
	Institution       *string
	Description       *string
	Color             *string
	Icon              *string
	IsActive          *bool
	IncludeInNetWorth *bool
	CreditLimit       *decimal.Decimal
}

// AccountServiceInterface defines the contract for account operations
type AccountServiceInterface interface {
	CreateAccount(input CreateAccountInput) (*models.Account, error)
	GetAccount(userID, accountID uuid.UUID) (*models.Account, error)
	ListAccounts(userID uuid.UUID) ([]models.Account, error)
	UpdateAccount(userID, accountID uuid.UUID, input UpdateAccountInput) (*models.Account, error)
	DeleteAccount(userID, accountID uuid.UUID) error
}

// CreateCategoryInput carries the fields accepted when creating a category
type CreateCategoryInput struct {
	UserID           uuid.UUID
	Name             string
	CategoryType     string
	ParentCategoryID *uuid.UUID
	Icon             string
	Color            string
}

// CategoryServiceInterface defines the contract for category operations
type CategoryServiceInterface interface {
	CreateCategory(input CreateCategoryInput) (*models.Category, error)
	GetCategory(userID, categoryID uuid.UUID) (*models.Category, error)
	ListCategories(userID uuid.UUID, categoryType string) ([]models.Category, error)
	DeleteCategory(userID, categoryID uuid.UUID) error
}

// CreateRecurringTransactionInput carries the fields for a recurring template
type CreateRecurringTransactionInput struct {
	UserID            uuid.UUID
	AccountID         uuid.UUID
	CategoryID        *uuid.UUID
	TransactionType   string
	Amount            decimal.Decimal
	Description       string
	Frequency         string
	FrequencyInterval int
	StartDate         time.Time
	EndDate           *time.Time
}

// UpdateRecurringTransactionInput carries the mutable schedule fields
type UpdateRecurringTransactionInput struct {
	Amount            *decimal.Decimal
	CategoryID        *uuid.UUID
	Description       *string
	Frequency         *string
	FrequencyInterval *int
	StartDate         *time.Time
	EndDate           *time.Time
	IsActive          *bool
}

// RecurringTransactionServiceInterface defines the contract for recurring transaction operations
type RecurringTransactionServiceInterface interface {
	CreateRecurringTransaction(input CreateRecurringTransactionInput) (*models.RecurringTransaction, error)
	GetRecurringTransaction(userID, recurringID uuid.UUID) (*models.RecurringTransaction, error)
	ListRecurringTransactions(userID uuid.UUID) ([]models.RecurringTransaction, error)
	UpdateRecurringTransaction(userID, recurringID uuid.UUID, input UpdateRecurringTransactionInput) (*models.RecurringTransaction, error)
	DeleteRecurringTransaction(userID, recurringID uuid.UUID) error
}

// CreateBudgetInput carries the fields accepted when creating a budget
type CreateBudgetInput struct {
	UserID         uuid.UUID
	CategoryID     *uuid.UUID
	Name           string
	Amount         decimal.Decimal
	StartDate      time.Time
	EndDate        *time.Time
	AlertThreshold int
	SendAlerts     bool
}

// UpdateBudgetInput carries the mutable budget fields
type UpdateBudgetInput struct {
	Name           *string
	Amount         *decimal.Decimal
	AlertThreshold *int
	SendAlerts     *bool
	IsActive       *bool
}

// BudgetServiceInterface defines the contract for budget operations
type BudgetServiceInterface interface {
	CreateBudget(input CreateBudgetInput) (*models.Budget, error)
	GetBudget(userID, budgetID uuid.UUID) (*models.Budget, error)
	ListBudgets(filters models.BudgetFilters) ([]models.Budget, error)
	UpdateBudget(userID, budgetID uuid.UUID, input UpdateBudgetInput) (*models.Budget, error)
	DeleteBudget(userID, budgetID uuid.UUID) error
	GetBudgetUtilization(userID, budgetID uuid.UUID) (*models.BudgetUtilization, error)
}

// CreateGoalInput carries the fields accepted when creating a goal
type CreateGoalInput struct {
	UserID       uuid.UUID
	Name         string
	Description  string
	TargetAmount decimal.Decimal
	TargetDate   *time.Time
	Color        string
	Icon         string
}

// UpdateGoalInput carries the mutable goal fields
type UpdateGoalInput struct {
	Name          *string
	Description   *string
	TargetAmount  *decimal.Decimal
	CurrentAmount *decimal.Decimal
	TargetDate    *time.Time
	Status        *string
	Color         *string
	Icon          *string
}

// GoalServiceInterface defines the contract for goal operations
type GoalServiceInterface interface {
	CreateGoal(input CreateGoalInput) (*models.Goal, error)
	GetGoal(userID, goalID uuid.UUID) (*models.Goal, error)
	ListGoals(userID uuid.UUID) ([]models.Goal, error)
	UpdateGoal(userID, goalID uuid.UUID, input UpdateGoalInput) (*models.Goal, error)
	DeleteGoal(userID, goalID uuid.UUID) error
}

// TokenServiceInterface defines the contract for access token operations
type TokenServiceInterface interface {
	ValidateAccessToken(tokenString string) (*models.CustomClaims, error)
	GenerateAccessToken(userID uuid.UUID, email string) (string, error)
}
