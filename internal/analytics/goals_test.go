package analytics

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"petiscaria/internal/domain"
	apperrors "petiscaria/internal/errors"
)

func date(t *testing.T, s string) *domain.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return &d
}

func TestValidateGoal(t *testing.T) {
	hundred := decimal.NewFromInt(100)

	tests := []struct {
		name   string
		goal   domain.Goal
		fields []string
	}{
		{"monthly ok", domain.Goal{Period: domain.GoalPeriodMonthly, TargetValue: hundred}, nil},
		{"custom ok", domain.Goal{Period: domain.GoalPeriodCustom, TargetValue: hundred, StartDate: date(t, "2026-01-01"), EndDate: date(t, "2026-01-31")}, nil},
		{"custom same day", domain.Goal{Period: domain.GoalPeriodCustom, TargetValue: hundred, StartDate: date(t, "2026-01-01"), EndDate: date(t, "2026-01-01")}, nil},
		{"unknown period", domain.Goal{Period: "weekly", TargetValue: hundred}, []string{"period"}},
		{"zero target", domain.Goal{Period: domain.GoalPeriodDaily, TargetValue: decimal.Zero}, []string{"targetValue"}},
		{"custom without dates", domain.Goal{Period: domain.GoalPeriodCustom, TargetValue: hundred}, []string{"startDate", "endDate"}},
		{"custom reversed", domain.Goal{Period: domain.GoalPeriodCustom, TargetValue: hundred, StartDate: date(t, "2026-02-01"), EndDate: date(t, "2026-01-01")}, []string{"endDate"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGoal(tt.goal)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			ve, ok := apperrors.IsValidationError(err)
			require.True(t, ok)
			var fields []string
			for _, d := range ve.Details {
				fields = append(fields, d.Field)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestGoals_Save_CreatesWithoutID(t *testing.T) {
	var created domain.Goal
	api := &mockAPI{CreateGoalFunc: func(_ context.Context, goal domain.Goal) (*domain.Goal, error) {
		created = goal
		goal.ID = 11
		return &goal, nil
	}}

	saved, err := NewGoals(api, zap.NewNop()).Save(context.Background(), domain.Goal{
		Period:      domain.GoalPeriodDaily,
		TargetValue: decimal.NewFromInt(300),
		StartDate:   date(t, "2026-01-01"),
	})

	require.NoError(t, err)
	assert.Equal(t, 11, saved.ID)
	assert.Nil(t, created.StartDate, "dates only travel with custom periods")
}

func TestGoals_Save_UpdatesWithID(t *testing.T) {
	var gotID int
	api := &mockAPI{UpdateGoalFunc: func(_ context.Context, id int, goal domain.Goal) (*domain.Goal, error) {
		gotID = id
		return &goal, nil
	}}

	_, err := NewGoals(api, zap.NewNop()).Save(context.Background(), domain.Goal{
		ID:          4,
		Period:      domain.GoalPeriodMonthly,
		TargetValue: decimal.NewFromInt(9000),
	})

	require.NoError(t, err)
	assert.Equal(t, 4, gotID)
}

func TestGoals_Save_InvalidNeverCallsAPI(t *testing.T) {
	_, err := NewGoals(&mockAPI{}, zap.NewNop()).Save(context.Background(), domain.Goal{Period: domain.GoalPeriodCustom})

	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestGoals_Delete_NotFound(t *testing.T) {
	api := &mockAPI{DeleteGoalFunc: func(context.Context, int) error {
		return &apperrors.APIError{StatusCode: http.StatusNotFound, Method: http.MethodDelete, Path: "/goals/3"}
	}}

	err := NewGoals(api, zap.NewNop()).Delete(context.Background(), 3)

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestGoals_List_NeverNil(t *testing.T) {
	api := &mockAPI{ListGoalsFunc: func(context.Context) ([]domain.Goal, error) { return nil, nil }}

	goals, err := NewGoals(api, zap.NewNop()).List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, goals)
	assert.Empty(t, goals)
}
