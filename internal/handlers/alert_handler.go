package handlers

import (
	"net/http"

	"financetracker/internal/errors"
	"financetracker/internal/services"

	"github.com/labstack/echo/v4"
)

// AlertHandler handles computed alert HTTP requests
type AlertHandler struct {
	alertService services.AlertServiceInterface
}

// NewAlertHandler creates a new alert handler
func NewAlertHandler(alertService services.AlertServiceInterface) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

// GetAlerts computes and returns the user's current alerts. Alerts are
// derived on demand from account and transaction state, never stored.
//
// Method: GET /api/v1/alerts
// Authentication: Required (JWT)
func (h *AlertHandler) GetAlerts(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	alerts, err := h.alertService.GetAlerts(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, alerts)
}
