package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBudget_Validate(t *testing.T) {
	valid := func() Budget {
		return Budget{
			UserID:         uuid.New(),
			Name:           "Groceries budget",
			Amount:         decimal.NewFromFloat(500),
			Period:         BudgetPeriodMonthly,
			StartDate:      time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			AlertThreshold: DefaultAlertThreshold,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Budget)
		wantErr bool
	}{
		{"valid", func(b *Budget) {}, false},
		{"missing user", func(b *Budget) { b.UserID = uuid.Nil }, true},
		{"missing name", func(b *Budget) { b.Name = "" }, true},
		{"zero amount", func(b *Budget) { b.Amount = decimal.Zero }, true},
		{"unsupported period", func(b *Budget) { b.Period = "weekly" }, true},
		{"zero start date", func(b *Budget) { b.StartDate = time.Time{} }, true},
		{"threshold too high", func(b *Budget) { b.AlertThreshold = 101 }, true},
		{"threshold too low", func(b *Budget) { b.AlertThreshold = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			budget := valid()
			tt.mutate(&budget)

			err := budget.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBudget_Month(t *testing.T) {
	budget := Budget{StartDate: time.Date(2026, 8, 15, 10, 30, 0, 0, time.UTC)}

	year, month := budget.Month()

	assert.Equal(t, 2026, year)
	assert.Equal(t, time.August, month)
}
