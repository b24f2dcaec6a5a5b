package database

import (
	"fmt"
	"testing"
	"time"

	"financetracker/internal/config"
	"financetracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	testDB := &DB{
		DB: db,
		config: &config.DatabaseConfig{
			MaxConnections: 1,
			MaxIdleConns:   1,
		},
	}

	if err := testDB.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return testDB
}

func CreateTestAccount(t *testing.T, db *DB, userID uuid.UUID, name string, balance decimal.Decimal) *models.Account {
	t.Helper()

	account := &models.Account{
		UserID:            userID,
		Name:              name,
		AccountType:       models.AccountTypeChecking,
		Balance:           balance,
		InitialBalance:    balance,
		Currency:          "USD",
		IsActive:          true,
		IncludeInNetWorth: true,
	}

	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}

	return account
}

func CreateTestCreditCard(t *testing.T, db *DB, userID uuid.UUID, name string, balance, limit decimal.Decimal) *models.Account {
	t.Helper()

	account := &models.Account{
		UserID:            userID,
		Name:              name,
		AccountType:       models.AccountTypeCreditCard,
		Balance:           balance,
		Currency:          "USD",
		CreditLimit:       &limit,
		IsActive:          true,
		IncludeInNetWorth: true,
	}

	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test credit card: %v", err)
	}

	return account
}

func CreateTestCategory(t *testing.T, db *DB, userID uuid.UUID, name, categoryType string) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID:       userID,
		Name:         name,
		CategoryType: categoryType,
	}

	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}

	return category
}

func CreateTestTransaction(t *testing.T, db *DB, userID, accountID uuid.UUID, txType string, amount decimal.Decimal, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:          userID,
		AccountID:       accountID,
		TransactionType: txType,
		Amount:          amount,
		Date:            date,
		Description:     "test transaction",
	}

	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}

	return tx
}

func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	tables := []string{
		"transactions",
		"recurring_transactions",
		"budgets",
		"goals",
		"categories",
		"accounts",
	}

	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			t.Logf("failed to cleanup table %s: %v", table, err)
		}
	}
}
