package analytics

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"petiscaria/internal/domain"
	"petiscaria/internal/dto"
	apperrors "petiscaria/internal/errors"
	"petiscaria/internal/httpx"
)

type DashboardUseCase interface {
	Metrics(ctx context.Context) (*domain.Metrics, error)
	MonthlySales(ctx context.Context) []float64
	Statistics(ctx context.Context, timeframe domain.Timeframe) (*domain.Statistics, error)
	Target(ctx context.Context) (*Target, error)
}

type GoalUseCase interface {
	List(ctx context.Context) ([]domain.Goal, error)
	Save(ctx context.Context, goal domain.Goal) (*domain.Goal, error)
	Delete(ctx context.Context, id int) error
}

type FloorView interface {
	Slots() []domain.TableSlot
}

type Controller struct {
	dashboard DashboardUseCase
	goals     GoalUseCase
	floor     FloorView
	logger    *zap.Logger
}

func NewController(dashboard DashboardUseCase, goals GoalUseCase, floor FloorView, logger *zap.Logger) *Controller {
	return &Controller{dashboard: dashboard, goals: goals, floor: floor, logger: logger}
}

func (c *Controller) Metrics(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)

	m, err := c.dashboard.Metrics(r.Context())
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}
	httpx.WriteJSON(w, logger, http.StatusOK, dto.MetricsResponse{
		TotalSales:  m.TotalSales,
		TotalOrders: m.TotalOrders,
		Variation:   m.Variation,
	})
}

func (c *Controller) MonthlySales(w http.ResponseWriter, r *http.Request) {
	_, logger := httpx.Trace(c.logger)
	httpx.WriteJSON(w, logger, http.StatusOK, dto.SeriesResponse{Sales: c.dashboard.MonthlySales(r.Context())})
}

func (c *Controller) Statistics(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)

	timeframe := domain.Timeframe(strings.ToLower(r.URL.Query().Get("timeframe")))
	if timeframe == "" {
		timeframe = domain.TimeframeMonthly
	}

	stats, err := c.dashboard.Statistics(r.Context(), timeframe)
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}
	httpx.WriteJSON(w, logger, http.StatusOK, dto.SeriesResponse{
		Timeframe: string(timeframe),
		Sales:     stats.Sales,
		Revenue:   stats.Revenue,
	})
}

func (c *Controller) Target(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)

	t, err := c.dashboard.Target(r.Context())
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}
	httpx.WriteJSON(w, logger, http.StatusOK, dto.TargetResponse{
		Goal:        t.Goal,
		TargetValue: t.TargetValue,
		Revenue:     t.Revenue,
		Percent:     t.Percent,
		Variation:   t.Variation,
	})
}

func (c *Controller) ListGoals(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)

	goals, err := c.goals.List(r.Context())
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}
	httpx.WriteJSON(w, logger, http.StatusOK, dto.GoalListResponse{Count: len(goals), Goals: goals})
}

func (c *Controller) CreateGoal(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)

	goal, ok := c.decodeGoal(w, r, logger, traceID)
	if !ok {
		return
	}
	c.saveGoal(w, r, logger, traceID, goal, http.StatusCreated)
}

func (c *Controller) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)

	id, ok := httpx.IDParam(w, r, logger, traceID, "goalId")
	if !ok {
		return
	}
	goal, ok := c.decodeGoal(w, r, logger, traceID)
	if !ok {
		return
	}
	goal.ID = id
	c.saveGoal(w, r, logger, traceID, goal, http.StatusOK)
}

func (c *Controller) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)

	id, ok := httpx.IDParam(w, r, logger, traceID, "goalId")
	if !ok {
		return
	}
	if err := c.goals.Delete(r.Context(), id); err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *Controller) Tables(w http.ResponseWriter, r *http.Request) {
	_, logger := httpx.Trace(c.logger)
	httpx.WriteJSON(w, logger, http.StatusOK, dto.NewTablesResponse(c.floor.Slots()))
}

func (c *Controller) saveGoal(w http.ResponseWriter, r *http.Request, logger *zap.Logger, traceID string, goal domain.Goal, status int) {
	saved, err := c.goals.Save(r.Context(), goal)
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}
	httpx.WriteJSON(w, logger, status, saved)
}

func (c *Controller) decodeGoal(w http.ResponseWriter, r *http.Request, logger *zap.Logger, traceID string) (domain.Goal, bool) {
	var req dto.GoalRequest
	if !httpx.DecodeJSON(w, r, logger, traceID, &req) {
		return domain.Goal{}, false
	}

	goal := domain.Goal{
		Period:      domain.GoalPeriod(strings.ToLower(strings.TrimSpace(req.Period))),
		TargetValue: req.TargetValue,
	}

	var details []apperrors.ValidationDetail
	for _, field := range []struct {
		name  string
		value string
		dst   **domain.Date
	}{
		{"startDate", req.StartDate, &goal.StartDate},
		{"endDate", req.EndDate, &goal.EndDate},
	} {
		if field.value == "" {
			continue
		}
		d, err := domain.ParseDate(field.value)
		if err != nil {
			details = append(details, apperrors.ValidationDetail{Field: field.name, Message: field.name + " must be YYYY-MM-DD"})
			continue
		}
		*field.dst = &d
	}
	if len(details) > 0 {
		httpx.WriteValidationError(w, logger, traceID, "validation failed", details...)
		return domain.Goal{}, false
	}
	return goal, true
}
