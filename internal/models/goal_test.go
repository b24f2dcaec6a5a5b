package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestGoal_Progress(t *testing.T) {
	goal := Goal{
		TargetAmount:  decimal.NewFromFloat(1000),
		CurrentAmount: decimal.NewFromFloat(250),
	}
	assert.True(t, goal.Progress().Equal(decimal.NewFromFloat(25)))

	goal.CurrentAmount = decimal.NewFromFloat(1500)
	assert.True(t, goal.Progress().Equal(decimal.NewFromInt(100)), "progress is capped at 100")

	goal.TargetAmount = decimal.Zero
	assert.True(t, goal.Progress().IsZero())
}

func TestIsValidGoalStatus(t *testing.T) {
	for _, status := range []string{GoalStatusInProgress, GoalStatusCompleted, GoalStatusCancelled, GoalStatusOnHold} {
		assert.True(t, IsValidGoalStatus(status), status)
	}
	assert.False(t, IsValidGoalStatus("abandoned"))
	assert.False(t, IsValidGoalStatus(""))
}
