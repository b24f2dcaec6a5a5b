package services

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"financetracker/internal/config"
	"financetracker/internal/models"
	"financetracker/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// alertService implements AlertServiceInterface. Alerts are computed fresh
// on every request and never persisted, so there is no read/dismiss state.
type alertService struct {
	accountRepo     repositories.AccountRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	recurringRepo   repositories.RecurringTransactionRepositoryInterface
	cfg             *config.AlertConfig
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
}

// NewAlertService creates an alert service
func NewAlertService(
	accountRepo repositories.AccountRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	recurringRepo repositories.RecurringTransactionRepositoryInterface,
	cfg *config.AlertConfig,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) AlertServiceInterface {
	return &alertService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		recurringRepo:   recurringRepo,
		cfg:             cfg,
		metrics:         metrics,
		logger:          logger,
	}
}

// GetAlerts computes low balance, unusual spending and due payment alerts
// for the user, ordered by severity then recency.
func (s *alertService) GetAlerts(userID uuid.UUID) ([]models.Alert, error) {
	now := time.Now().UTC()
	alerts := make([]models.Alert, 0)

	lowBalance, err := s.lowBalanceAlerts(userID, now)
	if err != nil {
		return nil, err
	}
	alerts = append(alerts, lowBalance...)
	s.metrics.RecordAlertsComputed(models.AlertTypeLowBalance, len(lowBalance))

	unusual, err := s.unusualSpendingAlerts(userID, now)
	if err != nil {
		return nil, err
	}
	alerts = append(alerts, unusual...)
	s.metrics.RecordAlertsComputed(models.AlertTypeUnusualSpending, len(unusual))

	duePayments, err := s.duePaymentAlerts(userID, now)
	if err != nil {
		return nil, err
	}
	alerts = append(alerts, duePayments...)
	s.metrics.RecordAlertsComputed(models.AlertTypeDuePayment, len(duePayments))

	sort.SliceStable(alerts, func(i, j int) bool {
		ri, rj := models.SeverityRank(alerts[i].Severity), models.SeverityRank(alerts[j].Severity)
		if ri != rj {
			return ri > rj
		}
		return alerts[i].CreatedAt.After(alerts[j].CreatedAt)
	})

	s.logger.Debug("alerts computed", "user_id", userID, "count", len(alerts))

	return alerts, nil
}

// lowBalanceAlerts flags active accounts at or below the balance threshold.
// Negative balances are critical, the rest warnings.
func (s *alertService) lowBalanceAlerts(userID uuid.UUID, now time.Time) ([]models.Alert, error) {
	accounts, err := s.accountRepo.GetActiveByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get accounts for alerts: %w", err)
	}

	threshold := decimal.NewFromFloat(s.cfg.LowBalanceThreshold)

	var alerts []models.Alert
	for i := range accounts {
		account := &accounts[i]
		if account.Balance.GreaterThan(threshold) {
			continue
		}

		severity := models.AlertSeverityWarning
		if account.Balance.IsNegative() {
			severity = models.AlertSeverityCritical
		}

		alerts = append(alerts, models.Alert{
			ID:        fmt.Sprintf("low-balance-%s", account.ID),
			AlertType: models.AlertTypeLowBalance,
			Severity:  severity,
			Title:     fmt.Sprintf("Low balance on %s", account.Name),
			Message:   fmt.Sprintf("%s has a balance of %s", account.Name, formatMoney(account.Balance)),
			CreatedAt: now,
		})
	}

	return alerts, nil
}

// unusualSpendingAlerts compares the trailing 30-day spend per category with
// the prior 30-day window. A category fires when recent spend clears the
// floor and exceeds the ratio of the prior spend; zero prior spend makes the
// ratio trivially satisfied.
func (s *alertService) unusualSpendingAlerts(userID uuid.UUID, now time.Time) ([]models.Alert, error) {
	windowDays := s.cfg.SpendingWindowDays
	recentStart := now.AddDate(0, 0, -windowDays)
	priorStart := now.AddDate(0, 0, -2*windowDays)

	recent, err := s.transactionRepo.SpendingByCategoryInPeriod(userID, recentStart, now)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent spending: %w", err)
	}

	prior, err := s.transactionRepo.SpendingByCategoryInPeriod(userID, priorStart, recentStart)
	if err != nil {
		return nil, fmt.Errorf("failed to get prior spending: %w", err)
	}

	priorByCategory := make(map[uuid.UUID]decimal.Decimal, len(prior))
	for _, spend := range prior {
		priorByCategory[categoryKey(spend.CategoryID)] = spend.Total
	}

	floor := decimal.NewFromFloat(s.cfg.UnusualSpendingFloor)
	ratio := decimal.NewFromFloat(s.cfg.UnusualSpendingRatio)

	var alerts []models.Alert
	for _, spend := range recent {
		if spend.Total.LessThan(floor) {
			continue
		}

		priorTotal := priorByCategory[categoryKey(spend.CategoryID)]
		if !spend.Total.GreaterThan(priorTotal.Mul(ratio)) {
			continue
		}

		name := spend.CategoryName
		if name == "" {
			name = "Uncategorized"
		}

		id := "unusual-spending-uncategorized"
		if spend.CategoryID != nil {
			id = fmt.Sprintf("unusual-spending-%s", *spend.CategoryID)
		}

		alerts = append(alerts, models.Alert{
			ID:        id,
			AlertType: models.AlertTypeUnusualSpending,
			Severity:  models.AlertSeverityWarning,
			Title:     fmt.Sprintf("Unusual spending in %s", name),
			Message: fmt.Sprintf("You spent %s on %s in the last %d days, compared to %s in the prior period",
				formatMoney(spend.Total), name, windowDays, formatMoney(priorTotal)),
			CreatedAt: now,
		})
	}

	return alerts, nil
}

// duePaymentAlerts surfaces active recurring expenses due within the window.
// The alert timestamp is the due date; the newest-first ordering of the final
// sort puts later due dates ahead of sooner ones.
func (s *alertService) duePaymentAlerts(userID uuid.UUID, now time.Time) ([]models.Alert, error) {
	recurrings, err := s.recurringRepo.GetActiveByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get recurring transactions for alerts: %w", err)
	}

	windowEnd := now.AddDate(0, 0, s.cfg.DuePaymentWindowDays)

	var alerts []models.Alert
	for i := range recurrings {
		recurring := &recurrings[i]
		if recurring.TransactionType != models.TransactionTypeExpense {
			continue
		}
		if recurring.NextOccurrence == nil {
			continue
		}

		due := *recurring.NextOccurrence
		if due.Before(now) || due.After(windowEnd) {
			continue
		}

		alerts = append(alerts, models.Alert{
			ID:        fmt.Sprintf("due-payment-%s", recurring.ID),
			AlertType: models.AlertTypeDuePayment,
			Severity:  models.AlertSeverityInfo,
			Title:     fmt.Sprintf("Upcoming payment: %s", recurring.Description),
			Message:   fmt.Sprintf("%s due on %s", formatMoney(recurring.Amount), due.Format("Jan 2, 2006")),
			CreatedAt: due,
		})
	}

	return alerts, nil
}

func categoryKey(categoryID *uuid.UUID) uuid.UUID {
	if categoryID == nil {
		return uuid.Nil
	}
	return *categoryID
}
