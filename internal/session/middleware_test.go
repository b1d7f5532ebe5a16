package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"petiscaria/internal/dto"
)

type mockChecker struct {
	CheckFunc func(ctx context.Context) (Decision, error)
}

func (m *mockChecker) Check(ctx context.Context) (Decision, error) {
	return m.CheckFunc(ctx)
}

func guardedRouter(checker Checker) http.Handler {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(RequireSession(checker, zap.NewNop()))
		r.Get("/kitchen/orders", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
	})
	return r
}

func TestRequireSession(t *testing.T) {
	tests := []struct {
		name       string
		decision   Decision
		err        error
		wantStatus int
	}{
		{name: "allowed", decision: Decision{Allowed: true}, wantStatus: http.StatusNoContent},
		{name: "denied", decision: Decision{Reason: ReasonExpired}, wantStatus: http.StatusUnauthorized},
		{name: "storage failure", err: errors.New("db down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := &mockChecker{CheckFunc: func(context.Context) (Decision, error) {
				return tt.decision, tt.err
			}}

			rec := httptest.NewRecorder()
			guardedRouter(checker).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/kitchen/orders", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusUnauthorized {
				var body dto.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, "/signin", body.Redirect)
				assert.Equal(t, ReasonExpired, body.Message)
			}
		})
	}
}
