package session

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"petiscaria/internal/httpx"
)

type Checker interface {
	Check(ctx context.Context) (Decision, error)
}

// RequireSession answers 401 with a sign-in redirect unless the guard
// allows the request.
func RequireSession(checker Checker, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID, log := httpx.Trace(logger)

			decision, err := checker.Check(r.Context())
			if err != nil {
				httpx.WriteError(w, log, traceID, err)
				return
			}
			if !decision.Allowed {
				log.Info("session denied", zap.String("path", r.URL.Path), zap.String("reason", decision.Reason))
				httpx.WriteUnauthorized(w, log, traceID, decision.Reason)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
