// Package session signs staff in against the remote API and decides, from
// the stored access token alone, whether a protected route may be shown.
//
// The guard never verifies the token's signature. It only reads the expiry
// so an expired session is sent to sign-in without a round trip; the remote
// API still validates the token on every real request.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"petiscaria/internal/storage"
)

const (
	ReasonMissingToken = "missing token"
	ReasonMalformed    = "malformed token"
	ReasonNoExpiry     = "token has no numeric expiry"
	ReasonExpired      = "token expired"
)

type Decision struct {
	Allowed   bool
	Reason    string
	ExpiresAt time.Time
}

type Guard struct {
	store  storage.Store
	parser *jwt.Parser
	now    func() time.Time
	logger *zap.Logger
}

func NewGuard(store storage.Store, logger *zap.Logger) *Guard {
	return &Guard{
		store:  store,
		parser: jwt.NewParser(),
		now:    time.Now,
		logger: logger,
	}
}

// Check allows access only when the stored token's exp lies in the future.
// Every denial clears the stored access and refresh tokens.
func (g *Guard) Check(ctx context.Context) (Decision, error) {
	token, ok, err := g.store.Get(ctx, storage.KeyAccessToken)
	if err != nil {
		return Decision{}, fmt.Errorf("reading access token: %w", err)
	}
	if !ok || token == "" {
		return g.deny(ctx, ReasonMissingToken)
	}

	claims := jwt.MapClaims{}
	if _, _, err := g.parser.ParseUnverified(token, claims); err != nil {
		g.logger.Debug("undecodable access token", zap.Error(err))
		return g.deny(ctx, ReasonMalformed)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return g.deny(ctx, ReasonNoExpiry)
	}

	if exp.UnixMilli() <= g.now().UnixMilli() {
		return g.deny(ctx, ReasonExpired)
	}
	return Decision{Allowed: true, ExpiresAt: exp.Time}, nil
}

func (g *Guard) deny(ctx context.Context, reason string) (Decision, error) {
	if err := g.store.Delete(ctx, storage.KeyAccessToken, storage.KeyRefreshToken); err != nil {
		g.logger.Error("clearing tokens after denied session", zap.Error(err))
	}
	return Decision{Allowed: false, Reason: reason}, nil
}
