package models

import "time"

const (
	AlertTypeLowBalance      = "low_balance"
	AlertTypeUnusualSpending = "unusual_spending"
	AlertTypeDuePayment      = "due_payment"

	AlertSeverityCritical = "critical"
	AlertSeverityWarning  = "warning"
	AlertSeverityInfo     = "info"
)

// Alert is a derived notification computed fresh on every request; alerts are
// never persisted.
type Alert struct {
	ID        string    `json:"id"`
	AlertType string    `json:"type"`
	Severity  string    `json:"severity"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// SeverityRank maps a severity to its sort weight (higher is more urgent)
func SeverityRank(severity string) int {
	switch severity {
	case AlertSeverityCritical:
		return 3
	case AlertSeverityWarning:
		return 2
	default:
		return 1
	}
}
