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

// RecurringTransactionServiceSuite defines the test suite for the recurring
// transaction service
type RecurringTransactionServiceSuite struct {
	suite.Suite
	db      *database.DB
	service RecurringTransactionServiceInterface
	userID  uuid.UUID
	account *models.Account
	now     time.Time
}

// SetupTest runs before each test in the suite
func (s *RecurringTransactionServiceSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())

	recurringRepo := repositories.NewRecurringTransactionRepository(s.db.DB)
	accountRepo := repositories.NewAccountRepository(s.db.DB)
	categoryRepo := repositories.NewCategoryRepository(s.db.DB)
	s.service = NewRecurringTransactionService(recurringRepo, accountRepo, categoryRepo, slog.Default())

	s.userID = uuid.New()
	s.account = database.CreateTestAccount(s.T(), s.db, s.userID, "Checking", decimal.NewFromFloat(2000))

	s.now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return s.now }
}

// TearDownTest runs after each test in the suite
func (s *RecurringTransactionServiceSuite) TearDownTest() {
	timeNow = time.Now
	database.CleanupTestDB(s.T(), s.db)
}

// TestRecurringTransactionServiceSuite runs the test suite
func TestRecurringTransactionServiceSuite(t *testing.T) {
	suite.Run(t, new(RecurringTransactionServiceSuite))
}

func (s *RecurringTransactionServiceSuite) createInput() CreateRecurringTransactionInput {
	return CreateRecurringTransactionInput{
		UserID:          s.userID,
		AccountID:       s.account.ID,
		TransactionType: models.TransactionTypeExpense,
		Amount:          decimal.NewFromFloat(1200),
		Description:     "Rent",
		Frequency:       models.FrequencyMonthly,
		StartDate:       time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *RecurringTransactionServiceSuite) TestCreate_FutureStartIsFirstOccurrence() {
	recurring, err := s.service.CreateRecurringTransaction(s.createInput())

	s.NoError(err)
	s.Require().NotNil(recurring.NextOccurrence)
	s.True(recurring.NextOccurrence.Equal(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)))
	s.Equal(1, recurring.FrequencyInterval)
	s.True(recurring.IsActive)
}

func (s *RecurringTransactionServiceSuite) TestCreate_PastStartRollsForward() {
	input := s.createInput()
	input.StartDate = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	recurring, err := s.service.CreateRecurringTransaction(input)

	s.NoError(err)
	s.Require().NotNil(recurring.NextOccurrence)
	s.True(recurring.NextOccurrence.Equal(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)))
}

func (s *RecurringTransactionServiceSuite) TestCreate_EndedScheduleHasNoOccurrence() {
	input := s.createInput()
	input.StartDate = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	input.EndDate = &end

	recurring, err := s.service.CreateRecurringTransaction(input)

	s.NoError(err)
	s.Nil(recurring.NextOccurrence)
}

func (s *RecurringTransactionServiceSuite) TestCreate_TransferRejected() {
	input := s.createInput()
	input.TransactionType = models.TransactionTypeTransfer

	_, err := s.service.CreateRecurringTransaction(input)

	s.ErrorIs(err, ErrRecurringTransfer)
}

func (s *RecurringTransactionServiceSuite) TestCreate_InvalidFrequency() {
	input := s.createInput()
	input.Frequency = "fortnightly"

	_, err := s.service.CreateRecurringTransaction(input)

	s.ErrorIs(err, ErrInvalidFrequency)
}

func (s *RecurringTransactionServiceSuite) TestCreate_EndBeforeStart() {
	input := s.createInput()
	end := input.StartDate.AddDate(0, 0, -1)
	input.EndDate = &end

	_, err := s.service.CreateRecurringTransaction(input)

	s.ErrorIs(err, ErrInvalidScheduleWindow)
}

func (s *RecurringTransactionServiceSuite) TestCreate_UnownedAccount() {
	foreign := database.CreateTestAccount(s.T(), s.db, uuid.New(), "Foreign", decimal.Zero)

	input := s.createInput()
	input.AccountID = foreign.ID

	_, err := s.service.CreateRecurringTransaction(input)

	s.ErrorIs(err, ErrAccountNotFound)
}

func (s *RecurringTransactionServiceSuite) TestUpdate_ScheduleChangeRecomputesOccurrence() {
	recurring, err := s.service.CreateRecurringTransaction(s.createInput())
	s.Require().NoError(err)

	weekly := models.FrequencyWeekly
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	updated, err := s.service.UpdateRecurringTransaction(s.userID, recurring.ID, UpdateRecurringTransactionInput{
		Frequency: &weekly,
		StartDate: &start,
	})

	s.NoError(err)
	s.Require().NotNil(updated.NextOccurrence)
	// Weekly from Mar 1: first slot after Mar 15 noon is Mar 22
	s.True(updated.NextOccurrence.Equal(time.Date(2026, 3, 22, 0, 0, 0, 0, time.UTC)))
}

func (s *RecurringTransactionServiceSuite) TestUpdate_AmountOnlyKeepsOccurrence() {
	recurring, err := s.service.CreateRecurringTransaction(s.createInput())
	s.Require().NoError(err)
	original := *recurring.NextOccurrence

	amount := decimal.NewFromFloat(1300)
	updated, err := s.service.UpdateRecurringTransaction(s.userID, recurring.ID, UpdateRecurringTransactionInput{Amount: &amount})

	s.NoError(err)
	s.Require().NotNil(updated.NextOccurrence)
	s.True(updated.NextOccurrence.Equal(original))
}

func (s *RecurringTransactionServiceSuite) TestUpdate_InvalidInterval() {
	recurring, err := s.service.CreateRecurringTransaction(s.createInput())
	s.Require().NoError(err)

	interval := 0
	_, err = s.service.UpdateRecurringTransaction(s.userID, recurring.ID, UpdateRecurringTransactionInput{FrequencyInterval: &interval})

	s.Error(err)
}

func (s *RecurringTransactionServiceSuite) TestUpdate_NotFound() {
	_, err := s.service.UpdateRecurringTransaction(s.userID, uuid.New(), UpdateRecurringTransactionInput{})

	s.ErrorIs(err, ErrRecurringNotFound)
}

func (s *RecurringTransactionServiceSuite) TestDelete() {
	recurring, err := s.service.CreateRecurringTransaction(s.createInput())
	s.Require().NoError(err)

	s.NoError(s.service.DeleteRecurringTransaction(s.userID, recurring.ID))

	_, err = s.service.GetRecurringTransaction(s.userID, recurring.ID)
	s.ErrorIs(err, ErrRecurringNotFound)
}

func (s *RecurringTransactionServiceSuite) TestList_ScopedToUser() {
	_, err := s.service.CreateRecurringTransaction(s.createInput())
	s.Require().NoError(err)

	recurrings, err := s.service.ListRecurringTransactions(s.userID)
	s.NoError(err)
	s.Len(recurrings, 1)

	recurrings, err = s.service.ListRecurringTransactions(uuid.New())
	s.NoError(err)
	s.Empty(recurrings)
}
