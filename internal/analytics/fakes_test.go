package analytics

import (
	"context"
	"sync/atomic"

	"petiscaria/internal/domain"
)

type mockAPI struct {
	MetricsFunc      func(ctx context.Context) (*domain.Metrics, error)
	MonthlySalesFunc func(ctx context.Context) (*domain.MonthlySales, error)
	StatisticsFunc   func(ctx context.Context, tf domain.Timeframe) (*domain.Statistics, error)
	ListGoalsFunc    func(ctx context.Context) ([]domain.Goal, error)
	CreateGoalFunc   func(ctx context.Context, goal domain.Goal) (*domain.Goal, error)
	UpdateGoalFunc   func(ctx context.Context, id int, goal domain.Goal) (*domain.Goal, error)
	DeleteGoalFunc   func(ctx context.Context, id int) error
}

func (m *mockAPI) Metrics(ctx context.Context) (*domain.Metrics, error) {
	return m.MetricsFunc(ctx)
}

func (m *mockAPI) MonthlySales(ctx context.Context) (*domain.MonthlySales, error) {
	return m.MonthlySalesFunc(ctx)
}

func (m *mockAPI) Statistics(ctx context.Context, tf domain.Timeframe) (*domain.Statistics, error) {
	return m.StatisticsFunc(ctx, tf)
}

func (m *mockAPI) ListGoals(ctx context.Context) ([]domain.Goal, error) {
	return m.ListGoalsFunc(ctx)
}

func (m *mockAPI) CreateGoal(ctx context.Context, goal domain.Goal) (*domain.Goal, error) {
	return m.CreateGoalFunc(ctx, goal)
}

func (m *mockAPI) UpdateGoal(ctx context.Context, id int, goal domain.Goal) (*domain.Goal, error) {
	return m.UpdateGoalFunc(ctx, id, goal)
}

func (m *mockAPI) DeleteGoal(ctx context.Context, id int) error {
	return m.DeleteGoalFunc(ctx, id)
}

type mockLister struct {
	ListOrdersFunc func(ctx context.Context, statuses domain.StatusSet) ([]domain.Order, error)
	calls          atomic.Int32
}

func (m *mockLister) ListOrders(ctx context.Context, statuses domain.StatusSet) ([]domain.Order, error) {
	m.calls.Add(1)
	return m.ListOrdersFunc(ctx, statuses)
}
