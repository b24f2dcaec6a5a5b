package handlers

import (
	"net/http"

	"financetracker/internal/dto"
	"financetracker/internal/errors"
	"financetracker/internal/models"
	"financetracker/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TransactionHandler handles ledger entry HTTP requests. Every write here
// goes through the ledger service so account balances stay consistent.
type TransactionHandler struct {
	ledgerService services.LedgerServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(ledgerService services.LedgerServiceInterface) *TransactionHandler {
	return &TransactionHandler{ledgerService: ledgerService}
}

// CreateTransaction records a new ledger entry and applies its balance effect
//
// Method: POST /api/v1/transactions
// Authentication: Required (JWT)
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid account ID"))
	}

	categoryID, err := parseOptionalUUID(req.CategoryID)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid category ID"))
	}

	transferToAccountID, err := parseOptionalUUID(req.TransferToAccountID)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid transfer target ID"))
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		return SendError(c, errors.TransactionInvalidAmount, errors.WithDetails("Invalid amount"))
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return SendError(c, errors.ValidationInvalidDate, errors.WithDetails("Invalid date"))
	}

	transaction, err := h.ledgerService.CreateTransaction(services.CreateTransactionInput{
		UserID:              userID,
		AccountID:           accountID,
		CategoryID:          categoryID,
		TransferToAccountID: transferToAccountID,
		TransactionType:     req.TransactionType,
		Amount:              amount,
		Date:                date,
		Description:         req.Description,
		Notes:               req.Notes,
		Reference:           req.Reference,
		Tags:                req.Tags,
	})
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.CreateTransactionResponse{
		Transaction: transaction,
		Message:     "Transaction recorded successfully",
	})
}

// GetTransaction retrieves a specific ledger entry by ID
//
// Method: GET /api/v1/transactions/:transactionId
// Authentication: Required (JWT)
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	transactionID, err := uuid.Parse(c.Param("transactionId"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid transaction ID"))
	}

	transaction, err := h.ledgerService.GetTransaction(userID, transactionID)
	if err != nil {
		if err == services.ErrTransactionNotFound {
			return SendError(c, errors.TransactionNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, transaction)
}

// ListTransactions retrieves the authenticated user's ledger entries with
// optional filtering and pagination
//
// Method: GET /api/v1/transactions
// Authentication: Required (JWT)
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var queryFilters dto.TransactionFilters
	if err := c.Bind(&queryFilters); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid query parameters"))
	}

	filters := models.TransactionFilters{
		UserID:          userID,
		TransactionType: queryFilters.TransactionType,
		StartDate:       queryFilters.StartDate,
		EndDate:         queryFilters.EndDate,
		Offset:          queryFilters.Offset,
		Limit:           queryFilters.Limit,
	}

	filters.AccountID, err = parseOptionalUUID(queryFilters.AccountID)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid account ID"))
	}

	filters.CategoryID, err = parseOptionalUUID(queryFilters.CategoryID)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid category ID"))
	}

	transactions, total, err := h.ledgerService.ListTransactions(filters)
	if err != nil {
		return SendSystemError(c, err)
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 50
	}

	return c.JSON(http.StatusOK, dto.TransactionListResponse{
		Transactions: transactions,
		Pagination: dto.PaginationMeta{
			Offset: filters.Offset,
			Limit:  limit,
			Total:  total,
		},
	})
}

// UpdateTransaction amends a ledger entry. The stored balance effect is
// reversed and the new one applied in a single database transaction.
//
// Method: PUT /api/v1/transactions/:transactionId
// Authentication: Required (JWT)
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	transactionID, err := uuid.Parse(c.Param("transactionId"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid transaction ID"))
	}

	var req dto.UpdateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	input := services.UpdateTransactionInput{
		Description: req.Description,
		Notes:       req.Notes,
		Reference:   req.Reference,
		Tags:        req.Tags,
	}

	if req.Amount != nil {
		amount, err := parseAmount(*req.Amount)
		if err != nil {
			return SendError(c, errors.TransactionInvalidAmount, errors.WithDetails("Invalid amount"))
		}
		input.Amount = &amount
	}

	if req.CategoryID != nil {
		categoryID, err := parseOptionalUUID(*req.CategoryID)
		if err != nil {
			return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid category ID"))
		}
		input.CategoryID = categoryID
	}

	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return SendError(c, errors.ValidationInvalidDate, errors.WithDetails("Invalid date"))
		}
		input.Date = &date
	}

	transaction, err := h.ledgerService.UpdateTransaction(userID, transactionID, input)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, transaction)
}

// DeleteTransaction removes a ledger entry after reversing its balance effect
//
// Method: DELETE /api/v1/transactions/:transactionId
// Authentication: Required (JWT)
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	transactionID, err := uuid.Parse(c.Param("transactionId"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid transaction ID"))
	}

	if err := h.ledgerService.DeleteTransaction(userID, transactionID); err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Transaction deleted successfully"})
}

// handleServiceError maps ledger service errors to standardized responses
func (h *TransactionHandler) handleServiceError(c echo.Context, err error) error {
	switch err {
	case services.ErrTransactionNotFound:
		return SendError(c, errors.TransactionNotFound)
	case services.ErrAccountNotFound:
		return SendError(c, errors.AccountNotFound)
	case services.ErrCategoryNotFound:
		return SendError(c, errors.CategoryNotFound)
	case services.ErrInvalidAmount:
		return SendError(c, errors.TransactionInvalidAmount)
	case services.ErrInvalidType:
		return SendError(c, errors.TransactionInvalidType)
	case services.ErrSameAccountTransfer:
		return SendError(c, errors.TransactionSameAccount)
	case services.ErrMissingTransferTarget:
		return SendError(c, errors.AccountTargetMissing)
	case services.ErrTargetNotAllowed:
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	case services.ErrCategoryNotAllowed:
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}
	return SendSystemError(c, err)
}
