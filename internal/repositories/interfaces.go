package repositories

import (
	"time"

	"financetracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountRepositoryInterface defines the contract for account repository operations
type AccountRepositoryInterface interface {
	Create(account *models.Account) error
	GetByID(id uuid.UUID) (*models.Account, error)
	GetByIDForUser(id, userID uuid.UUID) (*models.Account, error)
	GetByUserID(userID uuid.UUID) ([]models.Account, error)
	GetActiveByUserID(userID uuid.UUID) ([]models.Account, error)
	GetByUserIDAndType(userID uuid.UUID, accountType string) ([]models.Account, error)
	Update(account *models.Account) error
	Delete(id uuid.UUID) error
	HasTransactions(accountID uuid.UUID) (bool, error)
	GetNetWorthByUserID(userID uuid.UUID) (decimal.Decimal, error)
}

// CategoryRepositoryInterface defines the contract for category repository operations
type CategoryRepositoryInterface interface {
	Create(category *models.Category) error
	GetByID(id uuid.UUID) (*models.Category, error)
	GetByIDForUser(id, userID uuid.UUID) (*models.Category, error)
	GetByUserID(userID uuid.UUID) ([]models.Category, error)
	GetByUserIDAndType(userID uuid.UUID, categoryType string) ([]models.Category, error)
	Update(category *models.Category) error
	Delete(id uuid.UUID) error
	IsInUse(categoryID uuid.UUID) (bool, error)
	HasChildren(categoryID uuid.UUID) (bool, error)
}

// CategorySpend aggregates expense totals per category for a period.
type CategorySpend struct {
	CategoryID   *uuid.UUID
	CategoryName string
	Total        decimal.Decimal
}

// TransactionRepositoryInterface defines the contract for transaction repository
// operations, including the atomic ledger mutations that keep account balances
// consistent with transaction history.
type TransactionRepositoryInterface interface {
	GetByID(id uuid.UUID) (*models.Transaction, error)
	GetByIDForUser(id, userID uuid.UUID) (*models.Transaction, error)
	GetWithFilters(filters models.TransactionFilters) ([]models.Transaction, int64, error)
	GetRecentByUserID(userID uuid.UUID, limit int) ([]models.Transaction, error)

	// Atomic ledger mutations. Each runs as a single database transaction
	// that locks the affected account rows, applies the balance effect and
	// persists the transaction record together.
	CreateWithBalanceEffect(transaction *models.Transaction) error
	UpdateWithBalanceReversal(existing *models.Transaction, updated *models.Transaction) error
	DeleteWithBalanceReversal(transaction *models.Transaction) error

	// Aggregations for insights and alerts
	SumByTypeInPeriod(userID uuid.UUID, transactionType string, start, end time.Time) (decimal.Decimal, error)
	SpendingByCategoryInPeriod(userID uuid.UUID, start, end time.Time) ([]CategorySpend, error)
	SumExpensesByCategoryInPeriod(userID uuid.UUID, categoryID *uuid.UUID, start, end time.Time) (decimal.Decimal, error)
	CountByAccountID(accountID uuid.UUID) (int64, error)
}

// RecurringTransactionRepositoryInterface defines the contract for recurring transaction repository operations
type RecurringTransactionRepositoryInterface interface {
	Create(recurring *models.RecurringTransaction) error
	GetByID(id uuid.UUID) (*models.RecurringTransaction, error)
	GetByIDForUser(id, userID uuid.UUID) (*models.RecurringTransaction, error)
	GetByUserID(userID uuid.UUID) ([]models.RecurringTransaction, error)
	GetActiveByUserID(userID uuid.UUID) ([]models.RecurringTransaction, error)
	Update(recurring *models.RecurringTransaction) error
	Delete(id uuid.UUID) error
}

// BudgetRepositoryInterface defines the contract for budget repository operations
type BudgetRepositoryInterface interface {
	Create(budget *models.Budget) error
	GetByID(id uuid.UUID) (*models.Budget, error)
	GetByIDForUser(id, userID uuid.UUID) (*models.Budget, error)
	GetWithFilters(filters models.BudgetFilters) ([]models.Budget, error)
	Update(budget *models.Budget) error
	Delete(id uuid.UUID) error
	ExistsActiveMonthly(userID uuid.UUID, categoryID *uuid.UUID, month time.Time, excludeID *uuid.UUID) (bool, error)
}

// GoalRepositoryInterface defines the contract for goal repository operations
type GoalRepositoryInterface interface {
	Create(goal *models.Goal) error
	GetByID(id uuid.UUID) (*models.Goal, error)
	GetByIDForUser(id, userID uuid.UUID) (*models.Goal, error)
	GetByUserID(userID uuid.UUID) ([]models.Goal, error)
	Update(goal *models.Goal) error
	Delete(id uuid.UUID) error
}
