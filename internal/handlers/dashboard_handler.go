package handlers

import (
	"net/http"

	"financetracker/internal/errors"
	"financetracker/internal/services"

	"github.com/labstack/echo/v4"
)

// DashboardHandler handles derived metric endpoints
type DashboardHandler struct {
	insightService services.InsightServiceInterface
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(insightService services.InsightServiceInterface) *DashboardHandler {
	return &DashboardHandler{insightService: insightService}
}

// GetDashboardSummary returns the headline metric cards for the dashboard
//
// Method: GET /api/v1/dashboard/summary
// Authentication: Required (JWT)
func (h *DashboardHandler) GetDashboardSummary(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	summary, err := h.insightService.GetDashboardSummary(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, summary)
}

// GetAccountsSummary returns aggregated account information including the
// monthly cash flow comparison and credit utilization
//
// Method: GET /api/v1/accounts/summary
// Authentication: Required (JWT)
func (h *DashboardHandler) GetAccountsSummary(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	summary, err := h.insightService.GetAccountsSummary(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, summary)
}

// GetAccountMix returns per-type balance shares with trend bands
//
// Method: GET /api/v1/accounts/account-mix
// Authentication: Required (JWT)
func (h *DashboardHandler) GetAccountMix(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	mix, err := h.insightService.GetAccountMix(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, mix)
}
