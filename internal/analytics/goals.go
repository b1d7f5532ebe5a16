package analytics

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"petiscaria/internal/domain"
	apperrors "petiscaria/internal/errors"
)

type GoalAPI interface {
	ListGoals(ctx context.Context) ([]domain.Goal, error)
	CreateGoal(ctx context.Context, goal domain.Goal) (*domain.Goal, error)
	UpdateGoal(ctx context.Context, id int, goal domain.Goal) (*domain.Goal, error)
	DeleteGoal(ctx context.Context, id int) error
}

type Goals struct {
	api    GoalAPI
	logger *zap.Logger
}

func NewGoals(api GoalAPI, logger *zap.Logger) *Goals {
	return &Goals{api: api, logger: logger}
}

func (g *Goals) List(ctx context.Context) ([]domain.Goal, error) {
	goals, err := g.api.ListGoals(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	if goals == nil {
		goals = []domain.Goal{}
	}
	return goals, nil
}

// Save updates the goal when it has an id and creates it otherwise.
func (g *Goals) Save(ctx context.Context, goal domain.Goal) (*domain.Goal, error) {
	if err := ValidateGoal(goal); err != nil {
		return nil, err
	}
	if goal.Period != domain.GoalPeriodCustom {
		goal.StartDate, goal.EndDate = nil, nil
	}

	var (
		saved *domain.Goal
		err   error
	)
	if goal.ID > 0 {
		saved, err = g.api.UpdateGoal(ctx, goal.ID, goal)
	} else {
		saved, err = g.api.CreateGoal(ctx, goal)
	}
	if err != nil {
		if ae, ok := apperrors.IsAPIError(err); ok && ae.NotFound() {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("goal %d not found", goal.ID))
		}
		g.logger.Error("saving goal", zap.Int("goalId", goal.ID), zap.Error(err))
		return nil, fmt.Errorf("saving goal: %w", err)
	}

	g.logger.Info("goal saved", zap.Int("goalId", saved.ID), zap.String("period", string(saved.Period)))
	return saved, nil
}

func (g *Goals) Delete(ctx context.Context, id int) error {
	if err := g.api.DeleteGoal(ctx, id); err != nil {
		if ae, ok := apperrors.IsAPIError(err); ok && ae.NotFound() {
			return apperrors.NewNotFoundError(fmt.Sprintf("goal %d not found", id))
		}
		g.logger.Error("deleting goal", zap.Int("goalId", id), zap.Error(err))
		return fmt.Errorf("deleting goal %d: %w", id, err)
	}
	g.logger.Info("goal deleted", zap.Int("goalId", id))
	return nil
}

// ValidateGoal requires a known period and a positive target; custom
// periods also need both dates in order.
func ValidateGoal(goal domain.Goal) error {
	var details []apperrors.ValidationDetail

	if !goal.Period.Valid() {
		details = append(details, apperrors.ValidationDetail{
			Field:   "period",
			Message: "period must be daily, monthly or custom",
		})
	}
	if !goal.TargetValue.IsPositive() {
		details = append(details, apperrors.ValidationDetail{
			Field:   "targetValue",
			Message: "targetValue must be greater than zero",
		})
	}
	if goal.Period == domain.GoalPeriodCustom {
		if goal.StartDate == nil {
			details = append(details, apperrors.ValidationDetail{Field: "startDate", Message: "startDate is required for a custom period"})
		}
		if goal.EndDate == nil {
			details = append(details, apperrors.ValidationDetail{Field: "endDate", Message: "endDate is required for a custom period"})
		}
		if goal.StartDate != nil && goal.EndDate != nil && goal.EndDate.Before(goal.StartDate.Time) {
			details = append(details, apperrors.ValidationDetail{Field: "endDate", Message: "endDate must not be before startDate"})
		}
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}
