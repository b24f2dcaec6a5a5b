package services

import (
	"log/slog"
	"testing"
	"time"

	"financetracker/internal/database"
	"financetracker/internal/models"
	"financetracker/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// BudgetServiceSuite defines the test suite for the budget service
type BudgetServiceSuite struct {
	suite.Suite
	db        *database.DB
	service   BudgetServiceInterface
	userID    uuid.UUID
	account   *models.Account
	groceries *models.Category
}

// SetupTest runs before each test in the suite
func (s *BudgetServiceSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())

	budgetRepo := repositories.NewBudgetRepository(s.db.DB)
	categoryRepo := repositories.NewCategoryRepository(s.db.DB)
	transactionRepo := repositories.NewTransactionRepository(s.db.DB)
	s.service = NewBudgetService(budgetRepo, categoryRepo, transactionRepo, slog.Default())

	s.userID = uuid.New()
	s.account = database.CreateTestAccount(s.T(), s.db, s.userID, "Checking", decimal.NewFromFloat(2000))
	s.groceries = database.CreateTestCategory(s.T(), s.db, s.userID, "Groceries", models.CategoryTypeExpense)
}

// TearDownTest runs after each test in the suite
func (s *BudgetServiceSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// TestBudgetServiceSuite runs the test suite
func TestBudgetServiceSuite(t *testing.T) {
	suite.Run(t, new(BudgetServiceSuite))
}

func (s *BudgetServiceSuite) monthStart() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func (s *BudgetServiceSuite) createInput(amount float64) CreateBudgetInput {
	return CreateBudgetInput{
		UserID:     s.userID,
		CategoryID: &s.groceries.ID,
		Name:       "Groceries budget",
		Amount:     decimal.NewFromFloat(amount),
		StartDate:  s.monthStart(),
		SendAlerts: true,
	}
}

func (s *BudgetServiceSuite) TestCreateBudget() {
	budget, err := s.service.CreateBudget(s.createInput(500))

	s.NoError(err)
	s.NotEqual(uuid.Nil, budget.ID)
	s.Equal(models.BudgetPeriodMonthly, budget.Period)
	s.Equal(models.DefaultAlertThreshold, budget.AlertThreshold)
	s.True(budget.IsActive)
}

func (s *BudgetServiceSuite) TestCreateBudget_NonPositiveAmount() {
	_, err := s.service.CreateBudget(s.createInput(0))

	s.ErrorIs(err, ErrInvalidAmount)
}

func (s *BudgetServiceSuite) TestCreateBudget_UnknownCategory() {
	input := s.createInput(500)
	foreign := uuid.New()
	input.CategoryID = &foreign

	_, err := s.service.CreateBudget(input)

	s.ErrorIs(err, ErrCategoryNotFound)
}

func (s *BudgetServiceSuite) TestCreateBudget_DuplicateMonth() {
	_, err := s.service.CreateBudget(s.createInput(500))
	s.Require().NoError(err)

	_, err = s.service.CreateBudget(s.createInput(300))

	s.ErrorIs(err, ErrBudgetDuplicate)
}

func (s *BudgetServiceSuite) TestCreateBudget_SameCategoryNextMonth() {
	_, err := s.service.CreateBudget(s.createInput(500))
	s.Require().NoError(err)

	input := s.createInput(500)
	input.StartDate = s.monthStart().AddDate(0, 1, 0)

	_, err = s.service.CreateBudget(input)

	s.NoError(err)
}

func (s *BudgetServiceSuite) TestCreateBudget_OverallBucketSeparate() {
	_, err := s.service.CreateBudget(s.createInput(500))
	s.Require().NoError(err)

	overall := s.createInput(2000)
	overall.CategoryID = nil
	overall.Name = "Overall budget"

	_, err = s.service.CreateBudget(overall)

	s.NoError(err)
}

func (s *BudgetServiceSuite) TestUpdateBudget_Amount() {
	budget, err := s.service.CreateBudget(s.createInput(500))
	s.Require().NoError(err)

	newAmount := decimal.NewFromFloat(650)
	updated, err := s.service.UpdateBudget(s.userID, budget.ID, UpdateBudgetInput{Amount: &newAmount})

	s.NoError(err)
	s.True(updated.Amount.Equal(newAmount))
}

func (s *BudgetServiceSuite) TestUpdateBudget_ReactivationChecksUniqueness() {
	first, err := s.service.CreateBudget(s.createInput(500))
	s.Require().NoError(err)

	inactive := false
	_, err = s.service.UpdateBudget(s.userID, first.ID, UpdateBudgetInput{IsActive: &inactive})
	s.Require().NoError(err)

	_, err = s.service.CreateBudget(s.createInput(300))
	s.Require().NoError(err)

	active := true
	_, err = s.service.UpdateBudget(s.userID, first.ID, UpdateBudgetInput{IsActive: &active})

	s.ErrorIs(err, ErrBudgetDuplicate)
}

func (s *BudgetServiceSuite) TestUpdateBudget_InvalidThreshold() {
	budget, err := s.service.CreateBudget(s.createInput(500))
	s.Require().NoError(err)

	threshold := 150
	_, err = s.service.UpdateBudget(s.userID, budget.ID, UpdateBudgetInput{AlertThreshold: &threshold})

	s.Error(err)
}

func (s *BudgetServiceSuite) TestUpdateBudget_NotFound() {
	_, err := s.service.UpdateBudget(s.userID, uuid.New(), UpdateBudgetInput{})

	s.ErrorIs(err, ErrBudgetNotFound)
}

func (s *BudgetServiceSuite) TestDeleteBudget() {
	budget, err := s.service.CreateBudget(s.createInput(500))
	s.Require().NoError(err)

	s.NoError(s.service.DeleteBudget(s.userID, budget.ID))

	_, err = s.service.GetBudget(s.userID, budget.ID)
	s.ErrorIs(err, ErrBudgetNotFound)
}

func (s *BudgetServiceSuite) TestGetBudgetUtilization() {
	budget, err := s.service.CreateBudget(s.createInput(500))
	s.Require().NoError(err)

	inWindow := database.CreateTestTransaction(s.T(), s.db, s.userID, s.account.ID, models.TransactionTypeExpense, decimal.NewFromFloat(200), s.monthStart().AddDate(0, 0, 4))
	inWindow.CategoryID = &s.groceries.ID
	s.Require().NoError(s.db.DB.Save(inWindow).Error)

	outOfWindow := database.CreateTestTransaction(s.T(), s.db, s.userID, s.account.ID, models.TransactionTypeExpense, decimal.NewFromFloat(999), s.monthStart().AddDate(0, -1, 4))
	outOfWindow.CategoryID = &s.groceries.ID
	s.Require().NoError(s.db.DB.Save(outOfWindow).Error)

	utilization, err := s.service.GetBudgetUtilization(s.userID, budget.ID)

	s.NoError(err)
	s.True(utilization.Spent.Equal(decimal.NewFromFloat(200)))
	s.True(utilization.Remaining.Equal(decimal.NewFromFloat(300)))
	s.InDelta(40.0, utilization.PercentUsed, 0.001)
	s.False(utilization.OverBudget)
}

func (s *BudgetServiceSuite) TestGetBudgetUtilization_OverBudget() {
	budget, err := s.service.CreateBudget(s.createInput(100))
	s.Require().NoError(err)

	tx := database.CreateTestTransaction(s.T(), s.db, s.userID, s.account.ID, models.TransactionTypeExpense, decimal.NewFromFloat(250), s.monthStart().AddDate(0, 0, 2))
	tx.CategoryID = &s.groceries.ID
	s.Require().NoError(s.db.DB.Save(tx).Error)

	utilization, err := s.service.GetBudgetUtilization(s.userID, budget.ID)

	s.NoError(err)
	s.True(utilization.OverBudget)
	s.True(utilization.Remaining.IsNegative())
}
