package services

import (
	"log/slog"
	"testing"

	"financetracker/internal/database"
	"financetracker/internal/models"
	"financetracker/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// GoalServiceSuite defines the test suite for the goal service
type GoalServiceSuite struct {
	suite.Suite
	db      *database.DB
	service GoalServiceInterface
	userID  uuid.UUID
}

// SetupTest runs before each test in the suite
func (s *GoalServiceSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.service = NewGoalService(repositories.NewGoalRepository(s.db.DB), slog.Default())
	s.userID = uuid.New()
}

// TearDownTest runs after each test in the suite
func (s *GoalServiceSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// TestGoalServiceSuite runs the test suite
func TestGoalServiceSuite(t *testing.T) {
	suite.Run(t, new(GoalServiceSuite))
}

func (s *GoalServiceSuite) createGoal(target float64) *models.Goal {
	goal, err := s.service.CreateGoal(CreateGoalInput{
		UserID:       s.userID,
		Name:         "Emergency fund",
		TargetAmount: decimal.NewFromFloat(target),
	})
	s.Require().NoError(err)
	return goal
}

func (s *GoalServiceSuite) TestCreateGoal() {
	goal := s.createGoal(10000)

	s.NotEqual(uuid.Nil, goal.ID)
	s.Equal(models.GoalStatusInProgress, goal.Status)
	s.True(goal.CurrentAmount.IsZero())
}

func (s *GoalServiceSuite) TestCreateGoal_NonPositiveTarget() {
	_, err := s.service.CreateGoal(CreateGoalInput{
		UserID:       s.userID,
		Name:         "Broken",
		TargetAmount: decimal.Zero,
	})

	s.ErrorIs(err, ErrInvalidAmount)
}

func (s *GoalServiceSuite) TestUpdateGoal_Progress() {
	goal := s.createGoal(10000)

	amount := decimal.NewFromFloat(2500)
	updated, err := s.service.UpdateGoal(s.userID, goal.ID, UpdateGoalInput{CurrentAmount: &amount})

	s.NoError(err)
	s.True(updated.CurrentAmount.Equal(amount))
	s.Equal(models.GoalStatusInProgress, updated.Status)
}

func (s *GoalServiceSuite) TestUpdateGoal_AutoCompletesAtTarget() {
	goal := s.createGoal(10000)

	amount := decimal.NewFromFloat(10000)
	updated, err := s.service.UpdateGoal(s.userID, goal.ID, UpdateGoalInput{CurrentAmount: &amount})

	s.NoError(err)
	s.Equal(models.GoalStatusCompleted, updated.Status)
}

func (s *GoalServiceSuite) TestUpdateGoal_LoweredTargetAutoCompletes() {
	goal := s.createGoal(10000)

	amount := decimal.NewFromFloat(6000)
	_, err := s.service.UpdateGoal(s.userID, goal.ID, UpdateGoalInput{CurrentAmount: &amount})
	s.Require().NoError(err)

	target := decimal.NewFromFloat(5000)
	updated, err := s.service.UpdateGoal(s.userID, goal.ID, UpdateGoalInput{TargetAmount: &target})

	s.NoError(err)
	s.Equal(models.GoalStatusCompleted, updated.Status)
}

func (s *GoalServiceSuite) TestUpdateGoal_OnHoldNotAutoCompleted() {
	goal := s.createGoal(10000)

	onHold := models.GoalStatusOnHold
	amount := decimal.NewFromFloat(10000)
	updated, err := s.service.UpdateGoal(s.userID, goal.ID, UpdateGoalInput{
		CurrentAmount: &amount,
		Status:        &onHold,
	})

	s.NoError(err)
	s.Equal(models.GoalStatusOnHold, updated.Status)
}

func (s *GoalServiceSuite) TestUpdateGoal_InvalidStatus() {
	goal := s.createGoal(10000)

	status := "abandoned"
	_, err := s.service.UpdateGoal(s.userID, goal.ID, UpdateGoalInput{Status: &status})

	s.ErrorIs(err, ErrInvalidGoalStatus)
}

func (s *GoalServiceSuite) TestUpdateGoal_NegativeCurrentAmount() {
	goal := s.createGoal(10000)

	amount := decimal.NewFromFloat(-1)
	_, err := s.service.UpdateGoal(s.userID, goal.ID, UpdateGoalInput{CurrentAmount: &amount})

	s.ErrorIs(err, ErrInvalidAmount)
}

func (s *GoalServiceSuite) TestUpdateGoal_OwnedByAnotherUser() {
	goal := s.createGoal(10000)

	_, err := s.service.UpdateGoal(uuid.New(), goal.ID, UpdateGoalInput{})

	s.ErrorIs(err, ErrGoalNotFound)
}

func (s *GoalServiceSuite) TestDeleteGoal() {
	goal := s.createGoal(10000)

	s.NoError(s.service.DeleteGoal(s.userID, goal.ID))

	_, err := s.service.GetGoal(s.userID, goal.ID)
	s.ErrorIs(err, ErrGoalNotFound)
}

func (s *GoalServiceSuite) TestListGoals_ScopedToUser() {
	s.createGoal(10000)
	s.createGoal(500)

	goals, err := s.service.ListGoals(s.userID)
	s.NoError(err)
	s.Len(goals, 2)

	goals, err = s.service.ListGoals(uuid.New())
	s.NoError(err)
	s.Empty(goals)
}
