// Package analytics serves the admin dashboard: sales metrics, chart
// series, the sales goal and the table floor monitor.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"petiscaria/internal/domain"
	apperrors "petiscaria/internal/errors"
)

type DashboardAPI interface {
	Metrics(ctx context.Context) (*domain.Metrics, error)
	MonthlySales(ctx context.Context) (*domain.MonthlySales, error)
	Statistics(ctx context.Context, timeframe domain.Timeframe) (*domain.Statistics, error)
	ListGoals(ctx context.Context) ([]domain.Goal, error)
}

// Target is the current goal next to what has been sold so far.
type Target struct {
	Goal        *domain.Goal
	TargetValue decimal.Decimal
	Revenue     decimal.Decimal
	Percent     float64
	Variation   float64
}

type Dashboard struct {
	api    DashboardAPI
	logger *zap.Logger
}

func NewDashboard(api DashboardAPI, logger *zap.Logger) *Dashboard {
	return &Dashboard{api: api, logger: logger}
}

func (d *Dashboard) Metrics(ctx context.Context) (*domain.Metrics, error) {
	m, err := d.api.Metrics(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching metrics: %w", err)
	}
	return m, nil
}

// MonthlySales always returns one value per month; a failed fetch charts
// as zeros.
func (d *Dashboard) MonthlySales(ctx context.Context) []float64 {
	s, err := d.api.MonthlySales(ctx)
	if err != nil {
		d.logger.Error("fetching monthly sales", zap.Error(err))
		return domain.ZeroSeries()
	}
	return fitSeries(s.Sales)
}

func (d *Dashboard) Statistics(ctx context.Context, timeframe domain.Timeframe) (*domain.Statistics, error) {
	if !timeframe.Valid() {
		return nil, apperrors.NewValidationError("invalid timeframe", apperrors.ValidationDetail{
			Field:   "timeframe",
			Message: "timeframe must be monthly, quarterly or annually",
		})
	}

	s, err := d.api.Statistics(ctx, timeframe)
	if err != nil {
		d.logger.Error("fetching statistics", zap.String("timeframe", string(timeframe)), zap.Error(err))
		return &domain.Statistics{Sales: domain.ZeroSeries(), Revenue: domain.ZeroSeries()}, nil
	}
	return &domain.Statistics{Sales: fitSeries(s.Sales), Revenue: fitSeries(s.Revenue)}, nil
}

// Target reads the first goal and measures total sales against it. Missing
// metrics count as no revenue.
func (d *Dashboard) Target(ctx context.Context) (*Target, error) {
	goals, err := d.api.ListGoals(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching goals: %w", err)
	}

	t := &Target{TargetValue: decimal.Zero, Revenue: decimal.Zero}
	if len(goals) > 0 {
		goal := goals[0]
		t.Goal = &goal
		t.TargetValue = goal.TargetValue
	}

	m, err := d.api.Metrics(ctx)
	if err != nil {
		d.logger.Error("fetching metrics for target", zap.Error(err))
	} else {
		t.Revenue = m.TotalSales
		t.Variation = m.Variation
	}

	t.Percent = Progress(t.Revenue, t.TargetValue)
	return t, nil
}

// Progress is revenue as a percentage of target, capped at 100. A target of
// zero or less yields 0.
func Progress(revenue, target decimal.Decimal) float64 {
	if !target.IsPositive() {
		return 0
	}
	pct := revenue.Div(target).Mul(decimal.NewFromInt(100))
	if pct.GreaterThan(decimal.NewFromInt(100)) {
		return 100
	}
	f, _ := pct.Round(2).Float64()
	return f
}

func fitSeries(values []float64) []float64 {
	out := domain.ZeroSeries()
	copy(out, values)
	return out
}
