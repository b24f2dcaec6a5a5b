package handlers

import (
	"net/http"

	"financetracker/internal/dto"
	"financetracker/internal/errors"
	"financetracker/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RecurringTransactionHandler handles recurring transaction template requests
type RecurringTransactionHandler struct {
	recurringService services.RecurringTransactionServiceInterface
}

// NewRecurringTransactionHandler creates a new recurring transaction handler
func NewRecurringTransactionHandler(recurringService services.RecurringTransactionServiceInterface) *RecurringTransactionHandler {
	return &RecurringTransactionHandler{recurringService: recurringService}
}

// CreateRecurringTransaction creates a new recurring transaction template
//
// Method: POST /api/v1/recurring-transactions
// Authentication: Required (JWT)
func (h *RecurringTransactionHandler) CreateRecurringTransaction(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateRecurringTransactionRequest
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

	amount, err := parseAmount(req.Amount)
	if err != nil {
		return SendError(c, errors.TransactionInvalidAmount, errors.WithDetails("Invalid amount"))
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return SendError(c, errors.ValidationInvalidDate, errors.WithDetails("Invalid start date"))
	}

	input := services.CreateRecurringTransactionInput{
		UserID:            userID,
		AccountID:         accountID,
		CategoryID:        categoryID,
		TransactionType:   req.TransactionType,
		Amount:            amount,
		Description:       req.Description,
		Frequency:         req.Frequency,
		FrequencyInterval: req.FrequencyInterval,
		StartDate:         startDate,
	}
	if req.EndDate != "" {
		endDate, err := parseDate(req.EndDate)
		if err != nil {
			return SendError(c, errors.ValidationInvalidDate, errors.WithDetails("Invalid end date"))
		}
		input.EndDate = &endDate
	}

	recurring, err := h.recurringService.CreateRecurringTransaction(input)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, recurring)
}

// GetRecurringTransaction retrieves a recurring template by ID
//
// Method: GET /api/v1/recurring-transactions/:recurringId
// Authentication: Required (JWT)
func (h *RecurringTransactionHandler) GetRecurringTransaction(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	recurringID, err := uuid.Parse(c.Param("recurringId"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid recurring transaction ID"))
	}

	recurring, err := h.recurringService.GetRecurringTransaction(userID, recurringID)
	if err != nil {
		if err == services.ErrRecurringNotFound {
			return SendError(c, errors.RecurringNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, recurring)
}

// ListRecurringTransactions retrieves all recurring templates for the user
//
// Method: GET /api/v1/recurring-transactions
// Authentication: Required (JWT)
func (h *RecurringTransactionHandler) ListRecurringTransactions(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	recurring, err := h.recurringService.ListRecurringTransactions(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.RecurringTransactionListResponse{
		RecurringTransactions: recurring,
		Total:                 len(recurring),
	})
}

// UpdateRecurringTransaction amends a recurring template. Schedule changes
// recompute the next occurrence.
//
// Method: PUT /api/v1/recurring-transactions/:recurringId
// Authentication: Required (JWT)
func (h *RecurringTransactionHandler) UpdateRecurringTransaction(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	recurringID, err := uuid.Parse(c.Param("recurringId"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid recurring transaction ID"))
	}

	var req dto.UpdateRecurringTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	input := services.UpdateRecurringTransactionInput{
		Description:       req.Description,
		Frequency:         req.Frequency,
		FrequencyInterval: req.FrequencyInterval,
		IsActive:          req.IsActive,
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

	if req.StartDate != nil {
		startDate, err := parseDate(*req.StartDate)
		if err != nil {
			return SendError(c, errors.ValidationInvalidDate, errors.WithDetails("Invalid start date"))
		}
		input.StartDate = &startDate
	}

	if req.EndDate != nil {
		endDate, err := parseDate(*req.EndDate)
		if err != nil {
			return SendError(c, errors.ValidationInvalidDate, errors.WithDetails("Invalid end date"))
		}
		input.EndDate = &endDate
	}

	recurring, err := h.recurringService.UpdateRecurringTransaction(userID, recurringID, input)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, recurring)
}

// DeleteRecurringTransaction removes a recurring template. Ledger entries
// already generated from it are untouched.
//
// Method: DELETE /api/v1/recurring-transactions/:recurringId
// Authentication: Required (JWT)
func (h *RecurringTransactionHandler) DeleteRecurringTransaction(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	recurringID, err := uuid.Parse(c.Param("recurringId"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid recurring transaction ID"))
	}

	if err := h.recurringService.DeleteRecurringTransaction(userID, recurringID); err != nil {
		if err == services.ErrRecurringNotFound {
			return SendError(c, errors.RecurringNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Recurring transaction deleted successfully"})
}

// handleServiceError maps recurring service errors to standardized responses
func (h *RecurringTransactionHandler) handleServiceError(c echo.Context, err error) error {
	switch err {
	case services.ErrRecurringNotFound:
		return SendError(c, errors.RecurringNotFound)
	case services.ErrAccountNotFound:
		return SendError(c, errors.AccountNotFound)
	case services.ErrCategoryNotFound:
		return SendError(c, errors.CategoryNotFound)
	case services.ErrInvalidAmount:
		return SendError(c, errors.TransactionInvalidAmount)
	case services.ErrInvalidFrequency:
		return SendError(c, errors.RecurringInvalidFrequency)
	case services.ErrRecurringTransfer, services.ErrInvalidType:
		return SendError(c, errors.TransactionInvalidType, errors.WithDetails(err.Error()))
	case services.ErrInvalidScheduleWindow:
		return SendError(c, errors.ValidationInvalidDate, errors.WithDetails(err.Error()))
	}
	return SendSystemError(c, err)
}
