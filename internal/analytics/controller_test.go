package analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"petiscaria/internal/domain"
	"petiscaria/internal/dto"
)

type staticFloor []domain.TableSlot

func (f staticFloor) Slots() []domain.TableSlot { return f }

func newTestRouter(api *mockAPI, floor FloorView) http.Handler {
	c := NewController(NewDashboard(api, zap.NewNop()), NewGoals(api, zap.NewNop()), floor, zap.NewNop())
	r := chi.NewRouter()
	r.Get("/dashboard/metrics", c.Metrics)
	r.Get("/dashboard/monthly-sales", c.MonthlySales)
	r.Get("/dashboard/statistics", c.Statistics)
	r.Get("/dashboard/target", c.Target)
	r.Get("/dashboard/goals", c.ListGoals)
	r.Post("/dashboard/goals", c.CreateGoal)
	r.Patch("/dashboard/goals/{goalId}", c.UpdateGoal)
	r.Delete("/dashboard/goals/{goalId}", c.DeleteGoal)
	r.Get("/tables", c.Tables)
	return r
}

func TestController_Statistics(t *testing.T) {
	api := &mockAPI{StatisticsFunc: func(_ context.Context, tf domain.Timeframe) (*domain.Statistics, error) {
		return &domain.Statistics{Sales: []float64{3}, Revenue: []float64{4}}, nil
	}}

	t.Run("ok", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newTestRouter(api, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/statistics?timeframe=quarterly", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var body dto.SeriesResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "quarterly", body.Timeframe)
		assert.Len(t, body.Sales, 12)
	})

	t.Run("bad timeframe", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newTestRouter(api, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard/statistics?timeframe=hourly", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestController_CreateGoal(t *testing.T) {
	api := &mockAPI{CreateGoalFunc: func(_ context.Context, goal domain.Goal) (*domain.Goal, error) {
		goal.ID = 1
		return &goal, nil
	}}

	body := `{"period":"custom","targetValue":"1500.00","startDate":"2026-03-01","endDate":"2026-03-31"}`
	rec := httptest.NewRecorder()
	newTestRouter(api, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/dashboard/goals", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	var saved domain.Goal
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	assert.Equal(t, 1, saved.ID)
	assert.True(t, saved.TargetValue.Equal(decimal.NewFromInt(1500)))
	require.NotNil(t, saved.EndDate)
	assert.Equal(t, "2026-03-31", saved.EndDate.String())
}

func TestController_CreateGoal_BadDate(t *testing.T) {
	body := `{"period":"custom","targetValue":"10","startDate":"01/03/2026","endDate":"2026-03-31"}`
	rec := httptest.NewRecorder()
	newTestRouter(&mockAPI{}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/dashboard/goals", strings.NewReader(body)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var errBody dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errBody))
	require.Len(t, errBody.Details, 1)
	assert.Equal(t, "startDate", errBody.Details[0].Field)
}

func TestController_UpdateGoal(t *testing.T) {
	api := &mockAPI{UpdateGoalFunc: func(_ context.Context, id int, goal domain.Goal) (*domain.Goal, error) {
		goal.ID = id
		return &goal, nil
	}}

	rec := httptest.NewRecorder()
	newTestRouter(api, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/dashboard/goals/5", strings.NewReader(`{"period":"daily","targetValue":"200"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":5`)
}

func TestController_DeleteGoal(t *testing.T) {
	deleted := 0
	api := &mockAPI{DeleteGoalFunc: func(_ context.Context, id int) error {
		deleted = id
		return nil
	}}

	rec := httptest.NewRecorder()
	newTestRouter(api, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/dashboard/goals/8", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 8, deleted)
}

func TestController_Tables(t *testing.T) {
	id := 12
	floor := staticFloor{
		{Number: "1", State: domain.TableFree},
		{Number: "2", State: domain.TableOccupied, OrderID: &id},
	}

	rec := httptest.NewRecorder()
	newTestRouter(&mockAPI{}, floor).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tables", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body dto.TablesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Total)
	assert.Equal(t, 1, body.Occupied)
	assert.Equal(t, 12, *body.Tables[1].OrderID)
}

var _ FloorView = (*Monitor)(nil)

func TestController_TablesFromMonitor(t *testing.T) {
	lister := &mockLister{ListOrdersFunc: func(context.Context, domain.StatusSet) ([]domain.Order, error) {
		return []domain.Order{{ID: 30, Table: "3", Status: domain.StatusPreparing}}, nil
	}}
	monitor := NewMonitor(lister, 4, 0, zap.NewNop())
	require.NoError(t, monitor.Refresh(context.Background()))

	rec := httptest.NewRecorder()
	newTestRouter(&mockAPI{}, monitor).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tables", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body dto.TablesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 4, body.Total)
	assert.Equal(t, 1, body.Occupied)
	require.NotNil(t, body.Tables[2].OrderID)
	assert.Equal(t, 30, *body.Tables[2].OrderID)
}
