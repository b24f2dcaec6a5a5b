package models

import (
	"github.com/shopspring/decimal"
)

// DashboardSummary is the set of headline metrics for the dashboard view.
type DashboardSummary struct {
	Metrics []Metric `json:"metrics"`
}

// AccountsSummary aggregates account-level figures with the monthly cash
// flow comparison and credit utilization.
type AccountsSummary struct {
	TotalBalance          decimal.Decimal `json:"total_balance"`
	AccountCount          int             `json:"account_count"`
	MonthlyCashFlow       decimal.Decimal `json:"monthly_cash_flow"`
	CashFlowNote          string          `json:"cash_flow_note"`
	CreditUtilization     string          `json:"credit_utilization"`
	CreditUtilizationNote string          `json:"credit_utilization_note"`
	ConnectedInstitutions int             `json:"connected_institutions"`
	NetWorth              decimal.Decimal `json:"net_worth"`
}

// BudgetUtilization reports spending against a budget's cap for its window.
type BudgetUtilization struct {
	Budget      Budget          `json:"budget"`
	Spent       decimal.Decimal `json:"spent"`
	Remaining   decimal.Decimal `json:"remaining"`
	PercentUsed float64         `json:"percent_used"`
	OverBudget  bool            `json:"over_budget"`
}
