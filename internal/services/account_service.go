package services

import (
	"errors"
	"fmt"
	"log/slog"

	"financetracker/internal/models"
	"financetracker/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrInvalidAccountType  = errors.New("invalid account type")
	ErrAccountHasEntries   = errors.New("account still has ledger entries")
	ErrCreditLimitNotValid = errors.New("credit limit is only valid for credit card accounts")
)

// accountService implements AccountServiceInterface
type accountService struct {
	accountRepo repositories.AccountRepositoryInterface
	logger      *slog.Logger
}

// NewAccountService creates an account service
func NewAccountService(accountRepo repositories.AccountRepositoryInterface, logger *slog.Logger) AccountServiceInterface {
	return &accountService{
		accountRepo: accountRepo,
		logger:      logger,
	}
}

// CreateAccount opens a new account. The initial balance seeds both the
// balance and the initial-balance baseline; later balance changes only
// happen through ledger operations.
func (s *accountService) CreateAccount(input CreateAccountInput) (*models.Account, error) {
	if !models.IsValidAccountType(input.AccountType) {
		return nil, ErrInvalidAccountType
	}

	if input.CreditLimit != nil && input.AccountType != models.AccountTypeCreditCard {
		return nil, ErrCreditLimitNotValid
	}

	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}

	account := &models.Account{
		UserID:            input.UserID,
		Name:              input.Name,
		AccountType:       input.AccountType,
		Balance:           input.InitialBalance,
		InitialBalance:    input.InitialBalance,
		Currency:          currency,
		Institution:       input.Institution,
		CreditLimit:       input.CreditLimit,
		Description:       input.Description,
		Color:             input.Color,
		Icon:              input.Icon,
		IsActive:          true,
		IncludeInNetWorth: input.IncludeInNetWorth,
	}

	if err := s.accountRepo.Create(account); err != nil {
		s.logger.Error("failed to create account", "user_id", input.UserID, "error", err)
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.logger.Info("account created",
		"account_id", account.ID,
		"user_id", input.UserID,
		"account_type", input.AccountType)

	return account, nil
}

// GetAccount retrieves an account owned by the caller
func (s *accountService) GetAccount(userID, accountID uuid.UUID) (*models.Account, error) {
	account, err := s.accountRepo.GetByIDForUser(accountID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// ListAccounts retrieves all accounts owned by the caller
func (s *accountService) ListAccounts(userID uuid.UUID) ([]models.Account, error) {
	return s.accountRepo.GetByUserID(userID)
}

// UpdateAccount changes display and lifecycle fields. Balance is not
// writable here.
func (s *accountService) UpdateAccount(userID, accountID uuid.UUID, input UpdateAccountInput) (*models.Account, error) {
	account, err := s.accountRepo.GetByIDForUser(accountID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if input.Name != nil {
		account.Name = *input.Name
	}
	if input.Institution != nil {
		account.Institution = *input.Institution
	}
	if input.Description != nil {
		account.Description = *input.Description
	}
	if input.Color != nil {
		account.Color = *input.Color
	}
	if input.Icon != nil {
		account.Icon = *input.Icon
	}
	if input.IsActive != nil {
		account.IsActive = *input.IsActive
	}
	if input.IncludeInNetWorth != nil {
		account.IncludeInNetWorth = *input.IncludeInNetWorth
	}
	if input.CreditLimit != nil {
		if !account.IsCreditCard() {
			return nil, ErrCreditLimitNotValid
		}
		account.CreditLimit = input.CreditLimit
	}

	if err := s.accountRepo.Update(account); err != nil {
		s.logger.Error("failed to update account", "account_id", accountID, "error", err)
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	s.logger.Info("account updated", "account_id", accountID, "user_id", userID)

	return account, nil
}

// DeleteAccount soft deletes an account. Accounts that still have ledger
// entries cannot be removed, which keeps transaction history resolvable.
func (s *accountService) DeleteAccount(userID, accountID uuid.UUID) error {
	if _, err := s.accountRepo.GetByIDForUser(accountID, userID); err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("failed to get account: %w", err)
	}

	hasEntries, err := s.accountRepo.HasTransactions(accountID)
	if err != nil {
		return fmt.Errorf("failed to check account usage: %w", err)
	}
	if hasEntries {
		return ErrAccountHasEntries
	}

	if err := s.accountRepo.Delete(accountID); err != nil {
		s.logger.Error("failed to delete account", "account_id", accountID, "error", err)
		return fmt.Errorf("failed to delete account: %w", err)
	}

	s.logger.Info("account deleted", "account_id", accountID, "user_id", userID)

	return nil
}
