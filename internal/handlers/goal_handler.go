package handlers

import (
	"net/http"

	"financetracker/internal/dto"
	"financetracker/internal/errors"
	"financetracker/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// GoalHandler handles savings goal HTTP requests
type GoalHandler struct {
	goalService services.GoalServiceInterface
}

// NewGoalHandler creates a new goal handler
func NewGoalHandler(goalService services.GoalServiceInterface) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// CreateGoal creates a new savings goal
//
// Method: POST /api/v1/goals
// Authentication: Required (JWT)
func (h *GoalHandler) CreateGoal(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateGoalRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	targetAmount, err := parseAmount(req.TargetAmount)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid target amount"))
	}

	input := services.CreateGoalInput{
		UserID:       userID,
		Name:         req.Name,
		Description:  req.Description,
		TargetAmount: targetAmount,
		Color:        req.Color,
		Icon:         req.Icon,
	}
	if req.TargetDate != "" {
		targetDate, err := parseDate(req.TargetDate)
		if err != nil {
			return SendError(c, errors.ValidationInvalidDate, errors.WithDetails("Invalid target date"))
		}
		input.TargetDate = &targetDate
	}

	goal, err := h.goalService.CreateGoal(input)
	if err != nil {
		if err == services.ErrInvalidAmount {
			return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, goal)
}

// GetGoal retrieves a specific goal by ID
//
// Method: GET /api/v1/goals/:goalId
// Authentication: Required (JWT)
func (h *GoalHandler) GetGoal(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	goalID, err := uuid.Parse(c.Param("goalId"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid goal ID"))
	}

	goal, err := h.goalService.GetGoal(userID, goalID)
	if err != nil {
		if err == services.ErrGoalNotFound {
			return SendError(c, errors.GoalNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, goal)
}

// ListGoals retrieves all goals for the authenticated user
//
// Method: GET /api/v1/goals
// Authentication: Required (JWT)
func (h *GoalHandler) ListGoals(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	goals, err := h.goalService.ListGoals(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.GoalListResponse{
		Goals: goals,
		Total: len(goals),
	})
}

// UpdateGoal amends a goal. Reaching the target amount while in progress
// marks the goal completed.
//
// Method: PUT /api/v1/goals/:goalId
// Authentication: Required (JWT)
func (h *GoalHandler) UpdateGoal(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	goalID, err := uuid.Parse(c.Param("goalId"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid goal ID"))
	}

	var req dto.UpdateGoalRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	input := services.UpdateGoalInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		Color:       req.Color,
		Icon:        req.Icon,
	}
	if req.TargetAmount != nil {
		targetAmount, err := parseAmount(*req.TargetAmount)
		if err != nil {
			return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid target amount"))
		}
		input.TargetAmount = &targetAmount
	}
	if req.CurrentAmount != nil {
		currentAmount, err := parseAmount(*req.CurrentAmount)
		if err != nil {
			return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid current amount"))
		}
		input.CurrentAmount = &currentAmount
	}
	if req.TargetDate != nil {
		targetDate, err := parseDate(*req.TargetDate)
		if err != nil {
			return SendError(c, errors.ValidationInvalidDate, errors.WithDetails("Invalid target date"))
		}
		input.TargetDate = &targetDate
	}

	goal, err := h.goalService.UpdateGoal(userID, goalID, input)
	if err != nil {
		switch err {
		case services.ErrGoalNotFound:
			return SendError(c, errors.GoalNotFound)
		case services.ErrInvalidGoalStatus:
			return SendError(c, errors.GoalInvalidStatus, errors.WithDetails(err.Error()))
		case services.ErrInvalidAmount:
			return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, goal)
}

// DeleteGoal removes a goal
//
// Method: DELETE /api/v1/goals/:goalId
// Authentication: Required (JWT)
func (h *GoalHandler) DeleteGoal(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	goalID, err := uuid.Parse(c.Param("goalId"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid goal ID"))
	}

	if err := h.goalService.DeleteGoal(userID, goalID); err != nil {
		if err == services.ErrGoalNotFound {
			return SendError(c, errors.GoalNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Goal deleted successfully"})
}
