package session

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"petiscaria/internal/apiclient"
	apperrors "petiscaria/internal/errors"
	"petiscaria/internal/storage"
)

type TokenIssuer interface {
	ObtainToken(ctx context.Context, username, password string) (*apiclient.TokenPair, error)
}

type Manager struct {
	store  storage.Store
	issuer TokenIssuer
	logger *zap.Logger
}

func NewManager(store storage.Store, issuer TokenIssuer, logger *zap.Logger) *Manager {
	return &Manager{store: store, issuer: issuer, logger: logger}
}

// Login exchanges credentials for a token pair and stores it together with
// the username.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)

	var details []apperrors.ValidationDetail
	if username == "" {
		details = append(details, apperrors.ValidationDetail{Field: "username", Message: "username is required"})
	}
	if password == "" {
		details = append(details, apperrors.ValidationDetail{Field: "password", Message: "password is required"})
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	pair, err := m.issuer.ObtainToken(ctx, username, password)
	if err != nil {
		if ae, ok := apperrors.IsAPIError(err); ok && (ae.Unauthorized() || ae.StatusCode == http.StatusBadRequest) {
			m.logger.Info("login rejected", zap.String("username", username), zap.Int("status", ae.StatusCode))
			return apperrors.NewUnauthorizedError("invalid username or password")
		}
		return fmt.Errorf("obtaining token: %w", err)
	}

	values := [][2]string{
		{storage.KeyAccessToken, pair.Access},
		{storage.KeyRefreshToken, pair.Refresh},
		{storage.KeyUsername, username},
	}
	for _, kv := range values {
		if err := m.store.Set(ctx, kv[0], kv[1]); err != nil {
			return apperrors.NewInternalError("saving session", err)
		}
	}

	m.logger.Info("signed in", zap.String("username", username))
	return nil
}

func (m *Manager) Logout(ctx context.Context) error {
	if err := m.store.Delete(ctx, storage.KeyAccessToken, storage.KeyRefreshToken, storage.KeyUsername); err != nil {
		return apperrors.NewInternalError("clearing session", err)
	}
	m.logger.Info("signed out")
	return nil
}

func (m *Manager) Username(ctx context.Context) (string, error) {
	name, _, err := m.store.Get(ctx, storage.KeyUsername)
	return name, err
}
