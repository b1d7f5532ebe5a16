package session

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"petiscaria/internal/dto"
	"petiscaria/internal/httpx"
)

type Authenticator interface {
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
	Username(ctx context.Context) (string, error)
}

type Controller struct {
	auth    Authenticator
	checker Checker
	logger  *zap.Logger
}

func NewController(auth Authenticator, checker Checker, logger *zap.Logger) *Controller {
	return &Controller{auth: auth, checker: checker, logger: logger}
}

func (c *Controller) Login(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)

	var req dto.LoginRequest
	if !httpx.DecodeJSON(w, r, logger, traceID, &req) {
		return
	}

	if err := c.auth.Login(r.Context(), req.Username, req.Password); err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	c.writeSession(w, r, logger, traceID)
}

func (c *Controller) Logout(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)

	if err := c.auth.Logout(r.Context()); err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteJSON(w, logger, http.StatusOK, dto.SessionResponse{Redirect: httpx.SignInPath})
}

// Session reports the guard's decision without enforcing it.
func (c *Controller) Session(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)
	c.writeSession(w, r, logger, traceID)
}

func (c *Controller) writeSession(w http.ResponseWriter, r *http.Request, logger *zap.Logger, traceID string) {
	decision, err := c.checker.Check(r.Context())
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	resp := dto.SessionResponse{Allowed: decision.Allowed, Reason: decision.Reason}
	if !decision.Allowed {
		resp.Redirect = httpx.SignInPath
		httpx.WriteJSON(w, logger, http.StatusOK, resp)
		return
	}

	expires := decision.ExpiresAt
	resp.ExpiresAt = &expires
	if resp.Username, err = c.auth.Username(r.Context()); err != nil {
		logger.Warn("reading username", zap.Error(err))
	}
	httpx.WriteJSON(w, logger, http.StatusOK, resp)
}
