package services

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"time"

	"financetracker/internal/models"
	"financetracker/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// insightService implements InsightServiceInterface. All metrics are derived
// on demand from the ledger; nothing is cached or persisted.
type insightService struct {
	accountRepo     repositories.AccountRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	logger          *slog.Logger
}

// NewInsightService creates an insight service
func NewInsightService(
	accountRepo repositories.AccountRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	logger *slog.Logger,
) InsightServiceInterface {
	return &insightService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		logger:          logger,
	}
}

// GetDashboardSummary returns the headline metrics: total balance, all-time
// income and expenses, and net savings.
func (s *insightService) GetDashboardSummary(userID uuid.UUID) (*models.DashboardSummary, error) {
	accounts, err := s.accountRepo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get accounts: %w", err)
	}

	totalBalance := decimal.Zero
	for i := range accounts {
		totalBalance = totalBalance.Add(accounts[i].Balance)
	}

	allTimeStart := time.Time{}
	allTimeEnd := time.Now().AddDate(0, 0, 1)

	totalIncome, err := s.transactionRepo.SumByTypeInPeriod(userID, models.TransactionTypeIncome, allTimeStart, allTimeEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to sum income: %w", err)
	}

	totalExpenses, err := s.transactionRepo.SumByTypeInPeriod(userID, models.TransactionTypeExpense, allTimeStart, allTimeEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to sum expenses: %w", err)
	}

	netSavings := totalIncome.Sub(totalExpenses)

	summary := &models.DashboardSummary{
		Metrics: []models.Metric{
			{Label: "Total Balance", Value: formatMoney(totalBalance), Helper: fmt.Sprintf("Across %d accounts", len(accounts))},
			{Label: "Total Income", Value: formatMoney(totalIncome)},
			{Label: "Total Expenses", Value: formatMoney(totalExpenses)},
			{Label: "Net Savings", Value: formatMoney(netSavings)},
		},
	}

	s.logger.Debug("dashboard summary generated", "user_id", userID, "account_count", len(accounts))

	return summary, nil
}

// GetAccountsSummary returns account totals with the month-over-month cash
// flow comparison, credit utilization and net worth.
func (s *insightService) GetAccountsSummary(userID uuid.UUID) (*models.AccountsSummary, error) {
	accounts, err := s.accountRepo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get accounts: %w", err)
	}

	totalBalance := decimal.Zero
	institutions := make(map[string]struct{})
	for i := range accounts {
		totalBalance = totalBalance.Add(accounts[i].Balance)
		if accounts[i].Institution != "" {
			institutions[accounts[i].Institution] = struct{}{}
		}
	}

	now := time.Now().UTC()
	currentStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	nextStart := currentStart.AddDate(0, 1, 0)
	previousStart := currentStart.AddDate(0, -1, 0)

	currentFlow, err := s.cashFlowForPeriod(userID, currentStart, nextStart)
	if err != nil {
		return nil, err
	}

	previousFlow, err := s.cashFlowForPeriod(userID, previousStart, currentStart)
	if err != nil {
		return nil, err
	}

	netWorth, err := s.accountRepo.GetNetWorthByUserID(userID)
	if err != nil {
		return nil, err
	}

	utilization, utilizationNote := creditUtilization(accounts)

	return &models.AccountsSummary{
		TotalBalance:          totalBalance,
		AccountCount:          len(accounts),
		MonthlyCashFlow:       currentFlow,
		CashFlowNote:          cashFlowNote(currentFlow, previousFlow),
		CreditUtilization:     utilization,
		CreditUtilizationNote: utilizationNote,
		ConnectedInstitutions: len(institutions),
		NetWorth:              netWorth,
	}, nil
}

// GetAccountMix groups the caller's accounts by type with balance share and
// trend buckets, ordered by descending value.
func (s *insightService) GetAccountMix(userID uuid.UUID) ([]models.Metric, error) {
	accounts, err := s.accountRepo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get accounts: %w", err)
	}

	byType := make(map[string]decimal.Decimal)
	total := decimal.Zero
	for i := range accounts {
		byType[accounts[i].AccountType] = byType[accounts[i].AccountType].Add(accounts[i].Balance)
		total = total.Add(accounts[i].Balance)
	}

	type typeBalance struct {
		accountType string
		balance     decimal.Decimal
	}

	entries := make([]typeBalance, 0, len(byType))
	for accountType, balance := range byType {
		entries = append(entries, typeBalance{accountType: accountType, balance: balance})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].balance.GreaterThan(entries[j].balance)
	})

	metrics := make([]models.Metric, 0, len(entries))
	for _, entry := range entries {
		share := 0.0
		if total.GreaterThan(decimal.Zero) {
			share, _ = entry.balance.Div(total).Mul(decimal.NewFromInt(100)).Float64()
		}

		metrics = append(metrics, models.Metric{
			Label:  accountTypeLabel(entry.accountType),
			Value:  formatMoney(entry.balance),
			Helper: formatPercent(share) + "% of total",
			Trend:  models.TrendForShare(share),
		})
	}

	return metrics, nil
}

// cashFlowForPeriod computes income minus expenses for [start, end).
// Transfers move money between accounts and are excluded.
func (s *insightService) cashFlowForPeriod(userID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	income, err := s.transactionRepo.SumByTypeInPeriod(userID, models.TransactionTypeIncome, start, end)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum income: %w", err)
	}

	expenses, err := s.transactionRepo.SumByTypeInPeriod(userID, models.TransactionTypeExpense, start, end)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum expenses: %w", err)
	}

	return income.Sub(expenses), nil
}

// cashFlowNote compares this month's cash flow against last month's
func cashFlowNote(current, previous decimal.Decimal) string {
	if previous.IsZero() {
		if current.IsZero() {
			return "No change from last month"
		}
		return "New activity this month"
	}

	change, _ := current.Sub(previous).Div(previous.Abs()).Mul(decimal.NewFromInt(100)).Float64()

	direction := "Up"
	if change < 0 {
		direction = "Down"
		change = -change
	}

	return fmt.Sprintf("%s %s%% from last month", direction, formatPercent(change))
}

// creditUtilization computes aggregate utilization across credit card
// accounts with a positive limit
func creditUtilization(accounts []models.Account) (value, note string) {
	totalUsed := decimal.Zero
	totalLimit := decimal.Zero
	count := 0

	for i := range accounts {
		account := &accounts[i]
		if !account.IsCreditCard() || account.CreditLimit == nil || !account.CreditLimit.GreaterThan(decimal.Zero) {
			continue
		}
		totalUsed = totalUsed.Add(account.Balance.Abs())
		totalLimit = totalLimit.Add(*account.CreditLimit)
		count++
	}

	if count == 0 || !totalLimit.GreaterThan(decimal.Zero) {
		return "0%", "No credit accounts"
	}

	utilization, _ := totalUsed.Div(totalLimit).Mul(decimal.NewFromInt(100)).Float64()
	return formatPercent(utilization) + "%", fmt.Sprintf("Of %s total limit", formatMoney(totalLimit))
}

// accountTypeLabel renders an account type constant as a display name
func accountTypeLabel(accountType string) string {
	switch accountType {
	case models.AccountTypeChecking:
		return "Checking"
	case models.AccountTypeSavings:
		return "Savings"
	case models.AccountTypeCreditCard:
		return "Credit Card"
	case models.AccountTypeCash:
		return "Cash"
	case models.AccountTypeInvestment:
		return "Investment"
	case models.AccountTypeLoan:
		return "Loan"
	default:
		return "Other"
	}
}

// formatMoney renders a decimal as a dollar amount with two decimal places
func formatMoney(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-$" + amount.Abs().StringFixed(2)
	}
	return "$" + amount.StringFixed(2)
}

// formatPercent renders a percentage rounded to one decimal place with
// trailing zeros trimmed, so 100.0 becomes "100" and 33.33 becomes "33.3"
func formatPercent(value float64) string {
	rounded := math.Round(value*10) / 10
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}
