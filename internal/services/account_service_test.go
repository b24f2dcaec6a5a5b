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

// AccountServiceSuite defines the test suite for the account service
type AccountServiceSuite struct {
	suite.Suite
	db      *database.DB
	service AccountServiceInterface
	userID  uuid.UUID
}

// SetupTest runs before each test in the suite
func (s *AccountServiceSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.service = NewAccountService(repositories.NewAccountRepository(s.db.DB), slog.Default())
	s.userID = uuid.New()
}

// TearDownTest runs after each test in the suite
func (s *AccountServiceSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// TestAccountServiceSuite runs the test suite
func TestAccountServiceSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceSuite))
}

func (s *AccountServiceSuite) createInput() CreateAccountInput {
	return CreateAccountInput{
		UserID:            s.userID,
		Name:              "Main Checking",
		AccountType:       models.AccountTypeChecking,
		InitialBalance:    decimal.NewFromFloat(1500),
		IncludeInNetWorth: true,
	}
}

func (s *AccountServiceSuite) TestCreateAccount() {
	account, err := s.service.CreateAccount(s.createInput())

	s.NoError(err)
	s.NotEqual(uuid.Nil, account.ID)
	s.True(account.Balance.Equal(decimal.NewFromFloat(1500)))
	s.True(account.InitialBalance.Equal(decimal.NewFromFloat(1500)))
	s.Equal("USD", account.Currency)
	s.True(account.IsActive)
}

func (s *AccountServiceSuite) TestCreateAccount_InvalidType() {
	input := s.createInput()
	input.AccountType = "brokerage"

	_, err := s.service.CreateAccount(input)

	s.ErrorIs(err, ErrInvalidAccountType)
}

func (s *AccountServiceSuite) TestCreateAccount_CreditLimitOnChecking() {
	input := s.createInput()
	limit := decimal.NewFromFloat(5000)
	input.CreditLimit = &limit

	_, err := s.service.CreateAccount(input)

	s.ErrorIs(err, ErrCreditLimitNotValid)
}

func (s *AccountServiceSuite) TestCreateAccount_CreditCardWithLimit() {
	input := s.createInput()
	input.AccountType = models.AccountTypeCreditCard
	limit := decimal.NewFromFloat(5000)
	input.CreditLimit = &limit

	account, err := s.service.CreateAccount(input)

	s.NoError(err)
	s.Require().NotNil(account.CreditLimit)
	s.True(account.CreditLimit.Equal(limit))
}

func (s *AccountServiceSuite) TestUpdateAccount() {
	account, err := s.service.CreateAccount(s.createInput())
	s.Require().NoError(err)

	name := "Renamed"
	inactive := false
	updated, err := s.service.UpdateAccount(s.userID, account.ID, UpdateAccountInput{
		Name:     &name,
		IsActive: &inactive,
	})

	s.NoError(err)
	s.Equal("Renamed", updated.Name)
	s.False(updated.IsActive)
	s.True(updated.Balance.Equal(account.Balance))
}

func (s *AccountServiceSuite) TestUpdateAccount_CreditLimitOnNonCreditCard() {
	account, err := s.service.CreateAccount(s.createInput())
	s.Require().NoError(err)

	limit := decimal.NewFromFloat(5000)
	_, err = s.service.UpdateAccount(s.userID, account.ID, UpdateAccountInput{CreditLimit: &limit})

	s.ErrorIs(err, ErrCreditLimitNotValid)
}

func (s *AccountServiceSuite) TestUpdateAccount_NotFound() {
	_, err := s.service.UpdateAccount(s.userID, uuid.New(), UpdateAccountInput{})

	s.ErrorIs(err, ErrAccountNotFound)
}

func (s *AccountServiceSuite) TestDeleteAccount() {
	account, err := s.service.CreateAccount(s.createInput())
	s.Require().NoError(err)

	s.NoError(s.service.DeleteAccount(s.userID, account.ID))

	_, err = s.service.GetAccount(s.userID, account.ID)
	s.ErrorIs(err, ErrAccountNotFound)
}

func (s *AccountServiceSuite) TestDeleteAccount_WithLedgerEntries() {
	account, err := s.service.CreateAccount(s.createInput())
	s.Require().NoError(err)

	database.CreateTestTransaction(s.T(), s.db, s.userID, account.ID, models.TransactionTypeExpense, decimal.NewFromFloat(25), time.Now())

	s.ErrorIs(s.service.DeleteAccount(s.userID, account.ID), ErrAccountHasEntries)
}

func (s *AccountServiceSuite) TestDeleteAccount_OwnedByAnotherUser() {
	account, err := s.service.CreateAccount(s.createInput())
	s.Require().NoError(err)

	s.ErrorIs(s.service.DeleteAccount(uuid.New(), account.ID), ErrAccountNotFound)
}

func (s *AccountServiceSuite) TestListAccounts_ScopedToUser() {
	_, err := s.service.CreateAccount(s.createInput())
	s.Require().NoError(err)

	accounts, err := s.service.ListAccounts(s.userID)
	s.NoError(err)
	s.Len(accounts, 1)

	accounts, err = s.service.ListAccounts(uuid.New())
	s.NoError(err)
	s.Empty(accounts)
}
