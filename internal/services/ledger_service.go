package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"financetracker/internal/models"
	"financetracker/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrAccountNotFound       = errors.New("account not found")
	ErrCategoryNotFound      = errors.New("category not found")
	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrInvalidAmount         = errors.New("amount must be positive")
	ErrInvalidType           = errors.New("invalid transaction type")
	ErrSameAccountTransfer   = errors.New("cannot transfer to the same account")
	ErrMissingTransferTarget = errors.New("transfer requires a target account")
	ErrTargetNotAllowed      = errors.New("target account is only valid for transfers")
	ErrCategoryNotAllowed    = errors.New("transfers cannot carry a category")
)

// ledgerService implements LedgerServiceInterface. It is the only writer of
// account balances: every mutation validates first, then delegates to a
// repository operation that applies the balance effect and persists the
// record in one database transaction.
type ledgerService struct {
	accountRepo     repositories.AccountRepositoryInterface
	categoryRepo    repositories.CategoryRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
}

// NewLedgerService creates a ledger service
func NewLedgerService(
	accountRepo repositories.AccountRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) LedgerServiceInterface {
	return &ledgerService{
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		metrics:         metrics,
		logger:          logger,
	}
}

// CreateTransaction records a ledger entry and applies its balance effect:
// income credits the source account, expense debits it, transfer debits the
// source and credits the target.
func (s *ledgerService) CreateTransaction(input CreateTransactionInput) (*models.Transaction, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	if !models.IsValidTransactionType(input.TransactionType) {
		return nil, ErrInvalidType
	}

	if input.TransactionType == models.TransactionTypeTransfer {
		if input.TransferToAccountID == nil || *input.TransferToAccountID == uuid.Nil {
			return nil, ErrMissingTransferTarget
		}
		if *input.TransferToAccountID == input.AccountID {
			return nil, ErrSameAccountTransfer
		}
		if input.CategoryID != nil {
			return nil, ErrCategoryNotAllowed
		}
	} else if input.TransferToAccountID != nil {
		return nil, ErrTargetNotAllowed
	}

	// Source account must exist and belong to the caller
	if _, err := s.accountRepo.GetByIDForUser(input.AccountID, input.UserID); err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to verify account: %w", err)
	}

	// Transfer targets must exist but may belong to another user, which
	// covers payments to external accounts
	if input.TransferToAccountID != nil {
		if _, err := s.accountRepo.GetByID(*input.TransferToAccountID); err != nil {
			if errors.Is(err, repositories.ErrAccountNotFound) {
				return nil, ErrAccountNotFound
			}
			return nil, fmt.Errorf("failed to verify target account: %w", err)
		}
	}

	if input.CategoryID != nil {
		if _, err := s.categoryRepo.GetByIDForUser(*input.CategoryID, input.UserID); err != nil {
			if errors.Is(err, repositories.ErrCategoryNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("failed to verify category: %w", err)
		}
	}

	transaction := &models.Transaction{
		UserID:              input.UserID,
		AccountID:           input.AccountID,
		CategoryID:          input.CategoryID,
		TransferToAccountID: input.TransferToAccountID,
		TransactionType:     input.TransactionType,
		Amount:              input.Amount,
		Date:                input.Date,
		Description:         input.Description,
		Notes:               input.Notes,
		Reference:           input.Reference,
		Tags:                input.Tags,
	}

	start := time.Now()
	if err := s.transactionRepo.CreateWithBalanceEffect(transaction); err != nil {
		s.metrics.RecordLedgerOperation("create", "failed")
		s.logger.Error("failed to create transaction",
			"user_id", input.UserID,
			"account_id", input.AccountID,
			"transaction_type", input.TransactionType,
			"error", err)
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	s.metrics.RecordLedgerOperation("create", "success")
	s.metrics.RecordLedgerDuration(time.Since(start))

	s.logger.Info("transaction created",
		"transaction_id", transaction.ID,
		"user_id", input.UserID,
		"account_id", input.AccountID,
		"transaction_type", input.TransactionType,
		"amount", input.Amount.String())

	return transaction, nil
}

// UpdateTransaction changes the mutable fields of a ledger entry. The stored
// effect is reversed with the original amount and the new effect applied with
// the same type and accounts, so balances stay consistent with history.
func (s *ledgerService) UpdateTransaction(userID, transactionID uuid.UUID, input UpdateTransactionInput) (*models.Transaction, error) {
	existing, err := s.transactionRepo.GetByIDForUser(transactionID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	updated := *existing

	if input.Amount != nil {
		if input.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, ErrInvalidAmount
		}
		updated.Amount = *input.Amount
	}
	if input.CategoryID != nil {
		if existing.IsTransfer() {
			return nil, ErrCategoryNotAllowed
		}
		if _, err := s.categoryRepo.GetByIDForUser(*input.CategoryID, userID); err != nil {
			if errors.Is(err, repositories.ErrCategoryNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("failed to verify category: %w", err)
		}
		updated.CategoryID = input.CategoryID
	}
	if input.Date != nil {
		updated.Date = *input.Date
	}
	if input.Description != nil {
		updated.Description = *input.Description
	}
	if input.Notes != nil {
		updated.Notes = *input.Notes
	}
	if input.Reference != nil {
		updated.Reference = *input.Reference
	}
	if input.Tags != nil {
		updated.Tags = *input.Tags
	}

	start := time.Now()
	if err := s.transactionRepo.UpdateWithBalanceReversal(existing, &updated); err != nil {
		s.metrics.RecordLedgerOperation("update", "failed")
		s.logger.Error("failed to update transaction",
			"transaction_id", transactionID,
			"user_id", userID,
			"error", err)
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	s.metrics.RecordLedgerOperation("update", "success")
	s.metrics.RecordLedgerDuration(time.Since(start))

	s.logger.Info("transaction updated",
		"transaction_id", transactionID,
		"user_id", userID,
		"old_amount", existing.Amount.String(),
		"new_amount", updated.Amount.String())

	return &updated, nil
}

// DeleteTransaction reverses the entry's balance effect, both legs for a
// transfer, and removes the record atomically.
func (s *ledgerService) DeleteTransaction(userID, transactionID uuid.UUID) error {
	existing, err := s.transactionRepo.GetByIDForUser(transactionID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return ErrTransactionNotFound
		}
		return fmt.Errorf("failed to get transaction: %w", err)
	}

	start := time.Now()
	if err := s.transactionRepo.DeleteWithBalanceReversal(existing); err != nil {
		s.metrics.RecordLedgerOperation("delete", "failed")
		s.logger.Error("failed to delete transaction",
			"transaction_id", transactionID,
			"user_id", userID,
			"error", err)
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	s.metrics.RecordLedgerOperation("delete", "success")
	s.metrics.RecordLedgerDuration(time.Since(start))

	s.logger.Info("transaction deleted",
		"transaction_id", transactionID,
		"user_id", userID,
		"transaction_type", existing.TransactionType,
		"amount", existing.Amount.String())

	return nil
}

// GetTransaction retrieves a single ledger entry owned by the caller
func (s *ledgerService) GetTransaction(userID, transactionID uuid.UUID) (*models.Transaction, error) {
	transaction, err := s.transactionRepo.GetByIDForUser(transactionID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return transaction, nil
}

// ListTransactions retrieves the caller's ledger entries with filters
func (s *ledgerService) ListTransactions(filters models.TransactionFilters) ([]models.Transaction, int64, error) {
	return s.transactionRepo.GetWithFilters(filters)
}
