package repositories

import (
	"errors"
	"fmt"
	"time"

	"financetracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
)

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{
		db: db,
	}
}

// GetByID retrieves a transaction by ID
func (r *transactionRepository) GetByID(id uuid.UUID) (*models.Transaction, error) {
	transaction := &models.Transaction{ID: id}
	if err := r.db.First(transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return transaction, nil
}

// GetByIDForUser retrieves a transaction by ID scoped to its owner
func (r *transactionRepository) GetByIDForUser(id, userID uuid.UUID) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &transaction, nil
}

// GetWithFilters retrieves transactions matching the filters with pagination
func (r *transactionRepository) GetWithFilters(filters models.TransactionFilters) ([]models.Transaction, int64, error) {
	var transactions []models.Transaction
	var total int64

	query := r.db.Model(&models.Transaction{}).Where("user_id = ?", filters.UserID)

	if filters.AccountID != nil {
		query = query.Where("account_id = ? OR transfer_to_account_id = ?", *filters.AccountID, *filters.AccountID)
	}
	if filters.CategoryID != nil {
		query = query.Where("category_id = ?", *filters.CategoryID)
	}
	if filters.TransactionType != "" {
		query = query.Where("transaction_type = ?", filters.TransactionType)
	}
	if filters.StartDate != nil {
		query = query.Where("date >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("date <= ?", *filters.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	if filters.Limit <= 0 {
		filters.Limit = 50
	}

	if err := query.Offset(filters.Offset).Limit(filters.Limit).
		Order("date DESC, created_at DESC").Find(&transactions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get transactions: %w", err)
	}

	return transactions, total, nil
}

// GetRecentByUserID retrieves the most recent transactions for a user
func (r *transactionRepository) GetRecentByUserID(userID uuid.UUID, limit int) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		Limit(limit).Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get recent transactions: %w", err)
	}
	return transactions, nil
}

// lockAccount loads an account with a row-level lock inside tx
func lockAccount(tx *gorm.DB, accountID uuid.UUID) (*models.Account, error) {
	account := &models.Account{ID: accountID}
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to lock account: %w", err)
	}
	return account, nil
}

// adjustBalance applies a signed delta to an account balance under lock
func adjustBalance(tx *gorm.DB, accountID uuid.UUID, delta decimal.Decimal) error {
	account, err := lockAccount(tx, accountID)
	if err != nil {
		return err
	}

	newBalance := account.Balance.Add(delta)
	if err := tx.Model(account).Update("balance", newBalance).Error; err != nil {
		return fmt.Errorf("failed to update account balance: %w", err)
	}
	return nil
}

// applyBalanceEffects applies a transaction's balance effects within tx.
// sign is 1 to apply and -1 to reverse.
func applyBalanceEffects(tx *gorm.DB, transaction *models.Transaction, sign int64) error {
	amount := transaction.Amount.Mul(decimal.NewFromInt(sign))

	switch transaction.TransactionType {
	case models.TransactionTypeIncome:
		return adjustBalance(tx, transaction.AccountID, amount)
	case models.TransactionTypeExpense:
		return adjustBalance(tx, transaction.AccountID, amount.Neg())
	case models.TransactionTypeTransfer:
		if transaction.TransferToAccountID == nil {
			return models.ErrMissingTransferTarget
		}
		if err := adjustBalance(tx, transaction.AccountID, amount.Neg()); err != nil {
			return err
		}
		return adjustBalance(tx, *transaction.TransferToAccountID, amount)
	default:
		return models.ErrInvalidTransactionType
	}
}

// CreateWithBalanceEffect persists a transaction and applies its balance
// effect in a single database transaction with row locking
func (r *transactionRepository) CreateWithBalanceEffect(transaction *models.Transaction) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}
		return applyBalanceEffects(tx, transaction, 1)
	})
}

// UpdateWithBalanceReversal reverses the effect of the stored transaction,
// applies the effect of the updated version and saves the record, all
// atomically. The updated transaction must carry the same ID, type and
// account references as the existing one.
func (r *transactionRepository) UpdateWithBalanceReversal(existing *models.Transaction, updated *models.Transaction) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := applyBalanceEffects(tx, existing, -1); err != nil {
			return err
		}
		if err := applyBalanceEffects(tx, updated, 1); err != nil {
			return err
		}
		if err := tx.Save(updated).Error; err != nil {
			return fmt.Errorf("failed to update transaction: %w", err)
		}
		return nil
	})
}

// DeleteWithBalanceReversal reverses the transaction's balance effect and
// removes the record atomically
func (r *transactionRepository) DeleteWithBalanceReversal(transaction *models.Transaction) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := applyBalanceEffects(tx, transaction, -1); err != nil {
			return err
		}

		result := tx.Delete(&models.Transaction{ID: transaction.ID})
		if result.Error != nil {
			return fmt.Errorf("failed to delete transaction: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrTransactionNotFound
		}
		return nil
	})
}

// SumByTypeInPeriod sums transaction amounts of a type for a user in [start, end)
func (r *transactionRepository) SumByTypeInPeriod(userID uuid.UUID, transactionType string, start, end time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}

	if err := r.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("user_id = ? AND transaction_type = ? AND date >= ? AND date < ?",
			userID, transactionType, start, end).
		Scan(&result).Error; err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum transactions: %w", err)
	}

	return result.Total, nil
}

// SpendingByCategoryInPeriod aggregates expense totals per category for a user in [start, end)
func (r *transactionRepository) SpendingByCategoryInPeriod(userID uuid.UUID, start, end time.Time) ([]CategorySpend, error) {
	var results []CategorySpend

	if err := r.db.Model(&models.Transaction{}).
		Select("transactions.category_id, COALESCE(categories.name, '') as category_name, COALESCE(SUM(transactions.amount), 0) as total").
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ? AND transactions.transaction_type = ? AND transactions.date >= ? AND transactions.date < ?",
			userID, models.TransactionTypeExpense, start, end).
		Group("transactions.category_id, categories.name").
		Scan(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate spending by category: %w", err)
	}

	return results, nil
}

// SumExpensesByCategoryInPeriod sums expenses for a user in [start, end),
// optionally restricted to a category. A nil categoryID sums all expenses.
func (r *transactionRepository) SumExpensesByCategoryInPeriod(userID uuid.UUID, categoryID *uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}

	query := r.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("user_id = ? AND transaction_type = ? AND date >= ? AND date < ?",
			userID, models.TransactionTypeExpense, start, end)

	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}

	if err := query.Scan(&result).Error; err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum category expenses: %w", err)
	}

	return result.Total, nil
}

// CountByAccountID counts transactions referencing an account
func (r *transactionRepository) CountByAccountID(accountID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Transaction{}).
		Where("account_id = ? OR transfer_to_account_id = ?", accountID, accountID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count account transactions: %w", err)
	}
	return count, nil
}
