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

// BudgetHandler handles budget-related HTTP requests
type BudgetHandler struct {
	budgetService services.BudgetServiceInterface
}

// NewBudgetHandler creates a new budget handler
func NewBudgetHandler(budgetService services.BudgetServiceInterface) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// CreateBudget creates a new monthly budget. Only one active budget per
// category per month is allowed.
//
// Method: POST /api/v1/budgets
// Authentication: Required (JWT)
func (h *BudgetHandler) CreateBudget(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	categoryID, err := parseOptionalUUID(req.CategoryID)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid category ID"))
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		return SendError(c, errors.BudgetInvalid, errors.WithDetails("Invalid amount"))
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return SendError(c, errors.ValidationInvalidDate, errors.WithDetails("Invalid start date"))
	}

	input := services.CreateBudgetInput{
		UserID:         userID,
		CategoryID:     categoryID,
		Name:           req.Name,
		Amount:         amount,
		StartDate:      startDate,
		AlertThreshold: req.AlertThreshold,
		SendAlerts:     true,
	}
	if req.SendAlerts != nil {
		input.SendAlerts = *req.SendAlerts
	}
	if req.EndDate != "" {
		endDate, err := parseDate(req.EndDate)
		if err != nil {
			return SendError(c, errors.ValidationInvalidDate, errors.WithDetails("Invalid end date"))
		}
		input.EndDate = &endDate
	}

	budget, err := h.budgetService.CreateBudget(input)
	if err != nil {
		switch err {
		case services.ErrBudgetDuplicate:
			return SendError(c, errors.BudgetDuplicate)
		case services.ErrCategoryNotFound:
			return SendError(c, errors.CategoryNotFound)
		case services.ErrInvalidAmount:
			return SendError(c, errors.BudgetInvalid, errors.WithDetails(err.Error()))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, budget)
}

// GetBudget retrieves a specific budget by ID
//
// Method: GET /api/v1/budgets/:budgetId
// Authentication: Required (JWT)
func (h *BudgetHandler) GetBudget(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	budgetID, err := uuid.Parse(c.Param("budgetId"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid budget ID"))
	}

	budget, err := h.budgetService.GetBudget(userID, budgetID)
	if err != nil {
		if err == services.ErrBudgetNotFound {
			return SendError(c, errors.BudgetNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, budget)
}

// ListBudgets retrieves the user's budgets with optional filtering
//
// Method: GET /api/v1/budgets?category_id=&active_only=
// Authentication: Required (JWT)
func (h *BudgetHandler) ListBudgets(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var queryFilters dto.BudgetFilters
	if err := c.Bind(&queryFilters); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid query parameters"))
	}

	filters := models.BudgetFilters{
		UserID:     userID,
		ActiveOnly: queryFilters.ActiveOnly,
	}
	filters.CategoryID, err = parseOptionalUUID(queryFilters.CategoryID)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid category ID"))
	}

	budgets, err := h.budgetService.ListBudgets(filters)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.BudgetListResponse{
		Budgets: budgets,
		Total:   len(budgets),
	})
}

// UpdateBudget amends a budget. Re-activating an inactive budget re-checks
// the one-active-budget-per-category-per-month rule.
//
// Method: PUT /api/v1/budgets/:budgetId
// Authentication: Required (JWT)
func (h *BudgetHandler) UpdateBudget(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	budgetID, err := uuid.Parse(c.Param("budgetId"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid budget ID"))
	}

	var req dto.UpdateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	input := services.UpdateBudgetInput{
		Name:           req.Name,
		AlertThreshold: req.AlertThreshold,
		SendAlerts:     req.SendAlerts,
		IsActive:       req.IsActive,
	}
	if req.Amount != nil {
		amount, err := parseAmount(*req.Amount)
		if err != nil {
			return SendError(c, errors.BudgetInvalid, errors.WithDetails("Invalid amount"))
		}
		input.Amount = &amount
	}

	budget, err := h.budgetService.UpdateBudget(userID, budgetID, input)
	if err != nil {
		switch err {
		case services.ErrBudgetNotFound:
			return SendError(c, errors.BudgetNotFound)
		case services.ErrBudgetDuplicate:
			return SendError(c, errors.BudgetDuplicate)
		case services.ErrInvalidAmount:
			return SendError(c, errors.BudgetInvalid, errors.WithDetails(err.Error()))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, budget)
}

// DeleteBudget removes a budget
//
// Method: DELETE /api/v1/budgets/:budgetId
// Authentication: Required (JWT)
func (h *BudgetHandler) DeleteBudget(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	budgetID, err := uuid.Parse(c.Param("budgetId"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid budget ID"))
	}

	if err := h.budgetService.DeleteBudget(userID, budgetID); err != nil {
		if err == services.ErrBudgetNotFound {
			return SendError(c, errors.BudgetNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Budget deleted successfully"})
}

// GetBudgetUtilization reports spending against a budget for its month
//
// Method: GET /api/v1/budgets/:budgetId/utilization
// Authentication: Required (JWT)
func (h *BudgetHandler) GetBudgetUtilization(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	budgetID, err := uuid.Parse(c.Param("budgetId"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid budget ID"))
	}

	utilization, err := h.budgetService.GetBudgetUtilization(userID, budgetID)
	if err != nil {
		if err == services.ErrBudgetNotFound {
			return SendError(c, errors.BudgetNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, utilization)
}
