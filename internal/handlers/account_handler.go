package handlers

import (
	"net/http"

	"financetracker/internal/dto"
	"financetracker/internal/errors"
	"financetracker/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// AccountHandler handles account-related HTTP requests
type AccountHandler struct {
	accountService services.AccountServiceInterface
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService services.AccountServiceInterface) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// CreateAccount creates a new financial account for the authenticated user
//
// Method: POST /api/v1/accounts
// Authentication: Required (JWT)
func (h *AccountHandler) CreateAccount(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateAccountRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	initialBalance := decimal.Zero
	if req.InitialBalance != "" {
		initialBalance, err = parseAmount(req.InitialBalance)
		if err != nil {
			return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid initial balance"))
		}
	}

	input := services.CreateAccountInput{
		UserID:            userID,
		Name:              req.Name,
		AccountType:       req.AccountType,
		InitialBalance:    initialBalance,
		Currency:          req.Currency,
		Institution:       req.Institution,
		Description:       req.Description,
		Color:             req.Color,
		Icon:              req.Icon,
		IncludeInNetWorth: true,
	}
	if req.IncludeInNetWorth != nil {
		input.IncludeInNetWorth = *req.IncludeInNetWorth
	}
	if req.CreditLimit != "" {
		limit, err := parseAmount(req.CreditLimit)
		if err != nil {
			return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid credit limit"))
		}
		input.CreditLimit = &limit
	}

	account, err := h.accountService.CreateAccount(input)
	if err != nil {
		switch err {
		case services.ErrInvalidAccountType:
			return SendError(c, errors.AccountInvalidType, errors.WithDetails(err.Error()))
		case services.ErrCreditLimitNotValid:
			return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.CreateAccountResponse{
		Account: account,
		Message: "Account created successfully",
	})
}

// GetAccount retrieves a specific account by ID
//
// Method: GET /api/v1/accounts/:accountId
// Authentication: Required (JWT)
func (h *AccountHandler) GetAccount(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	accountID, err := uuid.Parse(c.Param("accountId"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid account ID"))
	}

	account, err := h.accountService.GetAccount(userID, accountID)
	if err != nil {
		if err == services.ErrAccountNotFound {
			return SendError(c, errors.AccountNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, account)
}

// ListAccounts retrieves all accounts for the authenticated user
//
// Method: GET /api/v1/accounts
// Authentication: Required (JWT)
func (h *AccountHandler) ListAccounts(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	accounts, err := h.accountService.ListAccounts(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.AccountListResponse{
		Accounts: accounts,
		Total:    len(accounts),
	})
}

// UpdateAccount updates mutable fields of an account. The balance is not
// writable through this endpoint; only ledger entries move balances.
//
// Method: PUT /api/v1/accounts/:accountId
// Authentication: Required (JWT)
func (h *AccountHandler) UpdateAccount(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	accountID, err := uuid.Parse(c.Param("accountId"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid account ID"))
	}

	var req dto.UpdateAccountRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	input := services.UpdateAccountInput{
		Name:              req.Name,
		Institution:       req.Institution,
		Description:       req.Description,
		Color:             req.Color,
		Icon:              req.Icon,
		IsActive:          req.IsActive,
		IncludeInNetWorth: req.IncludeInNetWorth,
	}
	if req.CreditLimit != nil {
		limit, err := parseAmount(*req.CreditLimit)
		if err != nil {
			return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid credit limit"))
		}
		input.CreditLimit = &limit
	}

	account, err := h.accountService.UpdateAccount(userID, accountID, input)
	if err != nil {
		switch err {
		case services.ErrAccountNotFound:
			return SendError(c, errors.AccountNotFound)
		case services.ErrCreditLimitNotValid:
			return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, account)
}

// DeleteAccount closes an account. Accounts that still carry ledger entries
// cannot be removed; the history must stay resolvable.
//
// Method: DELETE /api/v1/accounts/:accountId
// Authentication: Required (JWT)
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	accountID, err := uuid.Parse(c.Param("accountId"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid account ID"))
	}

	if err := h.accountService.DeleteAccount(userID, accountID); err != nil {
		switch err {
		case services.ErrAccountNotFound:
			return SendError(c, errors.AccountNotFound)
		case services.ErrAccountHasEntries:
			return SendError(c, errors.AccountInUse)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Account deleted successfully"})
}
