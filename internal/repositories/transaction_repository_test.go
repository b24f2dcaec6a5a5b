package repositories

import (
	"context"
	"testing"
	"time"

	"financetracker/internal/database"
	"financetracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TransactionRepositorySuite defines the test suite for TransactionRepository
type TransactionRepositorySuite struct {
	suite.Suite
	db          *database.DB
	repo        TransactionRepositoryInterface
	accountRepo AccountRepositoryInterface
	userID      uuid.UUID
	checking    *models.Account
	savings     *models.Account
	groceries   *models.Category
}

// SetupTest runs before each test in the suite
func (s *TransactionRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewTransactionRepository(s.db.DB)
	s.accountRepo = NewAccountRepository(s.db.DB)

	s.userID = uuid.New()
	s.checking = database.CreateTestAccount(s.T(), s.db, s.userID, "Checking", decimal.NewFromFloat(1000))
	s.savings = database.CreateTestAccount(s.T(), s.db, s.userID, "Savings", decimal.NewFromFloat(5000))
	s.groceries = database.CreateTestCategory(s.T(), s.db, s.userID, "Groceries", models.CategoryTypeExpense)
}

// TearDownTest runs after each test in the suite
func (s *TransactionRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// TestTransactionRepositorySuite runs the test suite
func TestTransactionRepositorySuite(t *testing.T) {
	suite.Run(t, new(TransactionRepositorySuite))
}

func (s *TransactionRepositorySuite) balanceOf(accountID uuid.UUID) decimal.Decimal {
	account, err := s.accountRepo.GetByID(accountID)
	s.Require().NoError(err)
	return account.Balance
}

func (s *TransactionRepositorySuite) newTransaction(txType string, amount float64) *models.Transaction {
	return &models.Transaction{
		UserID:          s.userID,
		AccountID:       s.checking.ID,
		TransactionType: txType,
		Amount:          decimal.NewFromFloat(amount),
		Date:            time.Now().UTC(),
		Description:     "test entry",
	}
}

// Create applies the signed balance effect atomically with the insert

func (s *TransactionRepositorySuite) TestCreateWithBalanceEffect_Income() {
	tx := s.newTransaction(models.TransactionTypeIncome, 250)

	err := s.repo.CreateWithBalanceEffect(tx)
	s.NoError(err)
	s.NotEqual(uuid.Nil, tx.ID)
	s.True(s.balanceOf(s.checking.ID).Equal(decimal.NewFromFloat(1250)))
}

func (s *TransactionRepositorySuite) TestCreateWithBalanceEffect_Expense() {
	tx := s.newTransaction(models.TransactionTypeExpense, 400)
	tx.CategoryID = &s.groceries.ID

	err := s.repo.CreateWithBalanceEffect(tx)
	s.NoError(err)
	s.True(s.balanceOf(s.checking.ID).Equal(decimal.NewFromFloat(600)))
}

func (s *TransactionRepositorySuite) TestCreateWithBalanceEffect_ExpenseCanOverdraw() {
	tx := s.newTransaction(models.TransactionTypeExpense, 1500)

	err := s.repo.CreateWithBalanceEffect(tx)
	s.NoError(err)
	s.True(s.balanceOf(s.checking.ID).Equal(decimal.NewFromFloat(-500)))
}

func (s *TransactionRepositorySuite) TestCreateWithBalanceEffect_TransferMovesBothSides() {
	tx := s.newTransaction(models.TransactionTypeTransfer, 300)
	tx.TransferToAccountID = &s.savings.ID

	err := s.repo.CreateWithBalanceEffect(tx)
	s.NoError(err)
	s.True(s.balanceOf(s.checking.ID).Equal(decimal.NewFromFloat(700)))
	s.True(s.balanceOf(s.savings.ID).Equal(decimal.NewFromFloat(5300)))
}

func (s *TransactionRepositorySuite) TestCreateWithBalanceEffect_MissingAccountRollsBack() {
	tx := s.newTransaction(models.TransactionTypeTransfer, 300)
	missing := uuid.New()
	tx.TransferToAccountID = &missing

	err := s.repo.CreateWithBalanceEffect(tx)
	s.ErrorIs(err, ErrAccountNotFound)

	// Source balance must be untouched and no record persisted
	s.True(s.balanceOf(s.checking.ID).Equal(decimal.NewFromFloat(1000)))
	count, err := s.repo.CountByAccountID(s.checking.ID)
	s.NoError(err)
	s.Equal(int64(0), count)
}

// Update reverses the stored effect before applying the new one

func (s *TransactionRepositorySuite) TestUpdateWithBalanceReversal_AmountChange() {
	tx := s.newTransaction(models.TransactionTypeExpense, 200)
	s.Require().NoError(s.repo.CreateWithBalanceEffect(tx))
	s.Require().True(s.balanceOf(s.checking.ID).Equal(decimal.NewFromFloat(800)))

	updated := *tx
	updated.Amount = decimal.NewFromFloat(50)

	err := s.repo.UpdateWithBalanceReversal(tx, &updated)
	s.NoError(err)
	s.True(s.balanceOf(s.checking.ID).Equal(decimal.NewFromFloat(950)))
}

func (s *TransactionRepositorySuite) TestUpdateWithBalanceReversal_AmountNeutralFields() {
	tx := s.newTransaction(models.TransactionTypeIncome, 100)
	s.Require().NoError(s.repo.CreateWithBalanceEffect(tx))

	updated := *tx
	updated.Description = "renamed"

	err := s.repo.UpdateWithBalanceReversal(tx, &updated)
	s.NoError(err)
	s.True(s.balanceOf(s.checking.ID).Equal(decimal.NewFromFloat(1100)))

	stored, err := s.repo.GetByID(tx.ID)
	s.NoError(err)
	s.Equal("renamed", stored.Description)
}

func (s *TransactionRepositorySuite) TestUpdateWithBalanceReversal_Transfer() {
	tx := s.newTransaction(models.TransactionTypeTransfer, 500)
	tx.TransferToAccountID = &s.savings.ID
	s.Require().NoError(s.repo.CreateWithBalanceEffect(tx))

	updated := *tx
	updated.Amount = decimal.NewFromFloat(100)

	err := s.repo.UpdateWithBalanceReversal(tx, &updated)
	s.NoError(err)
	s.True(s.balanceOf(s.checking.ID).Equal(decimal.NewFromFloat(900)))
	s.True(s.balanceOf(s.savings.ID).Equal(decimal.NewFromFloat(5100)))
}

// Delete restores the pre-transaction balances

func (s *TransactionRepositorySuite) TestDeleteWithBalanceReversal_IsInverseOfCreate() {
	tx := s.newTransaction(models.TransactionTypeExpense, 333)
	s.Require().NoError(s.repo.CreateWithBalanceEffect(tx))

	err := s.repo.DeleteWithBalanceReversal(tx)
	s.NoError(err)
	s.True(s.balanceOf(s.checking.ID).Equal(decimal.NewFromFloat(1000)))

	_, err = s.repo.GetByID(tx.ID)
	s.ErrorIs(err, ErrTransactionNotFound)
}

func (s *TransactionRepositorySuite) TestDeleteWithBalanceReversal_Transfer() {
	tx := s.newTransaction(models.TransactionTypeTransfer, 250)
	tx.TransferToAccountID = &s.savings.ID
	s.Require().NoError(s.repo.CreateWithBalanceEffect(tx))

	err := s.repo.DeleteWithBalanceReversal(tx)
	s.NoError(err)
	s.True(s.balanceOf(s.checking.ID).Equal(decimal.NewFromFloat(1000)))
	s.True(s.balanceOf(s.savings.ID).Equal(decimal.NewFromFloat(5000)))
}

// Filtering and aggregation

func (s *TransactionRepositorySuite) TestGetWithFilters_ScopedToUser() {
	mine := s.newTransaction(models.TransactionTypeIncome, 10)
	s.Require().NoError(s.repo.CreateWithBalanceEffect(mine))

	otherUser := uuid.New()
	otherAccount := database.CreateTestAccount(s.T(), s.db, otherUser, "Other", decimal.Zero)
	theirs := &models.Transaction{
		UserID:          otherUser,
		AccountID:       otherAccount.ID,
		TransactionType: models.TransactionTypeIncome,
		Amount:          decimal.NewFromFloat(99),
		Date:            time.Now().UTC(),
	}
	s.Require().NoError(s.repo.CreateWithBalanceEffect(theirs))

	transactions, total, err := s.repo.GetWithFilters(models.TransactionFilters{UserID: s.userID})
	s.NoError(err)
	s.Equal(int64(1), total)
	s.Len(transactions, 1)
	s.Equal(mine.ID, transactions[0].ID)
}

func (s *TransactionRepositorySuite) TestGetWithFilters_AccountIncludesTransferTarget() {
	tx := s.newTransaction(models.TransactionTypeTransfer, 100)
	tx.TransferToAccountID = &s.savings.ID
	s.Require().NoError(s.repo.CreateWithBalanceEffect(tx))

	transactions, total, err := s.repo.GetWithFilters(models.TransactionFilters{
		UserID:    s.userID,
		AccountID: &s.savings.ID,
	})
	s.NoError(err)
	s.Equal(int64(1), total)
	s.Len(transactions, 1)
}

func (s *TransactionRepositorySuite) TestSumByTypeInPeriod() {
	now := time.Now().UTC()

	first := s.newTransaction(models.TransactionTypeExpense, 100)
	first.Date = now.AddDate(0, 0, -5)
	s.Require().NoError(s.repo.CreateWithBalanceEffect(first))

	second := s.newTransaction(models.TransactionTypeExpense, 50)
	second.Date = now.AddDate(0, 0, -3)
	s.Require().NoError(s.repo.CreateWithBalanceEffect(second))

	outside := s.newTransaction(models.TransactionTypeExpense, 999)
	outside.Date = now.AddDate(0, -2, 0)
	s.Require().NoError(s.repo.CreateWithBalanceEffect(outside))

	total, err := s.repo.SumByTypeInPeriod(s.userID, models.TransactionTypeExpense, now.AddDate(0, 0, -7), now)
	s.NoError(err)
	s.True(total.Equal(decimal.NewFromFloat(150)))
}

func (s *TransactionRepositorySuite) TestSumByTypeInPeriod_EmptyIsZero() {
	total, err := s.repo.SumByTypeInPeriod(s.userID, models.TransactionTypeIncome, time.Now().AddDate(0, -1, 0), time.Now())
	s.NoError(err)
	s.True(total.IsZero())
}

func (s *TransactionRepositorySuite) TestSpendingByCategoryInPeriod() {
	now := time.Now().UTC()

	categorized := s.newTransaction(models.TransactionTypeExpense, 120)
	categorized.CategoryID = &s.groceries.ID
	categorized.Date = now.AddDate(0, 0, -1)
	s.Require().NoError(s.repo.CreateWithBalanceEffect(categorized))

	uncategorized := s.newTransaction(models.TransactionTypeExpense, 30)
	uncategorized.Date = now.AddDate(0, 0, -1)
	s.Require().NoError(s.repo.CreateWithBalanceEffect(uncategorized))

	// Income must not show up in spending
	income := s.newTransaction(models.TransactionTypeIncome, 500)
	income.Date = now.AddDate(0, 0, -1)
	s.Require().NoError(s.repo.CreateWithBalanceEffect(income))

	spends, err := s.repo.SpendingByCategoryInPeriod(s.userID, now.AddDate(0, 0, -7), now)
	s.NoError(err)
	s.Len(spends, 2)

	byName := make(map[string]decimal.Decimal)
	for _, spend := range spends {
		byName[spend.CategoryName] = spend.Total
	}
	s.True(byName["Groceries"].Equal(decimal.NewFromFloat(120)))
	s.True(byName[""].Equal(decimal.NewFromFloat(30)))
}

func (s *TransactionRepositorySuite) TestSumExpensesByCategoryInPeriod() {
	now := time.Now().UTC()

	tx := s.newTransaction(models.TransactionTypeExpense, 75)
	tx.CategoryID = &s.groceries.ID
	tx.Date = now.AddDate(0, 0, -2)
	s.Require().NoError(s.repo.CreateWithBalanceEffect(tx))

	total, err := s.repo.SumExpensesByCategoryInPeriod(s.userID, &s.groceries.ID, now.AddDate(0, 0, -7), now)
	s.NoError(err)
	s.True(total.Equal(decimal.NewFromFloat(75)))
}

// sqlRecorder captures generated SQL so dialect-specific clauses can be
// asserted without a live postgres connection
type sqlRecorder struct {
	logger.Interface
	statements []string
}

func (r *sqlRecorder) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	sql, _ := fc()
	r.statements = append(r.statements, sql)
}

func TestLockAccountEmitsRowLock(t *testing.T) {
	recorder := &sqlRecorder{Interface: logger.Default.LogMode(logger.Silent)}
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=finance dbname=finance",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               recorder,
	})
	require.NoError(t, err)

	_, err = lockAccount(db, uuid.New())
	require.NoError(t, err)

	require.NotEmpty(t, recorder.statements)
	require.Contains(t, recorder.statements[len(recorder.statements)-1], "FOR UPDATE")
}
