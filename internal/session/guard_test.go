package session

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"petiscaria/internal/storage"
)

var fixedNow = time.Date(2024, 5, 10, 20, 0, 0, 0, time.UTC)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-secret"))
	require.NoError(t, err)
	return token
}

func newTestGuard(t *testing.T, access *string) (*Guard, storage.Store) {
	t.Helper()
	ctx := context.Background()
	st := storage.NewMemoryStore()
	if access != nil {
		require.NoError(t, st.Set(ctx, storage.KeyAccessToken, *access))
	}
	require.NoError(t, st.Set(ctx, storage.KeyRefreshToken, "refresh-token"))
	require.NoError(t, st.Set(ctx, storage.KeyUsername, "ana"))

	g := NewGuard(st, zap.NewNop())
	g.now = func() time.Time { return fixedNow }
	return g, st
}

func strPtr(s string) *string {
	return &s
}

func TestGuard_Check(t *testing.T) {
	unsignedPayload := "eyJhbGciOiJub25lIn0." + base64.RawURLEncoding.EncodeToString([]byte(`{"exp":9999999999}`)) + "."

	tests := []struct {
		name       string
		access     *string
		wantAllow  bool
		wantReason string
	}{
		{name: "no token", access: nil, wantReason: ReasonMissingToken},
		{name: "empty token", access: strPtr(""), wantReason: ReasonMissingToken},
		{name: "not a jwt", access: strPtr("garbage"), wantReason: ReasonMalformed},
		{name: "payload not json", access: strPtr("eyJhbGciOiJIUzI1NiJ9.bm90IGpzb24.sig"), wantReason: ReasonMalformed},
		{name: "expired", access: strPtr(signed(t, jwt.MapClaims{"exp": fixedNow.Add(-time.Minute).Unix()})), wantReason: ReasonExpired},
		{name: "expires now", access: strPtr(signed(t, jwt.MapClaims{"exp": fixedNow.Unix()})), wantReason: ReasonExpired},
		{name: "exp is a string", access: strPtr(signed(t, jwt.MapClaims{"exp": "2099-01-01"})), wantReason: ReasonNoExpiry},
		{name: "exp is a bool", access: strPtr(signed(t, jwt.MapClaims{"exp": true})), wantReason: ReasonNoExpiry},
		{name: "no exp", access: strPtr(signed(t, jwt.MapClaims{"sub": "ana"})), wantReason: ReasonNoExpiry},
		{name: "valid", access: strPtr(signed(t, jwt.MapClaims{"exp": fixedNow.Add(time.Hour).Unix()})), wantAllow: true},
		{name: "signature is not checked", access: strPtr(unsignedPayload), wantAllow: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			g, st := newTestGuard(t, tt.access)

			decision, err := g.Check(ctx)

			require.NoError(t, err)
			assert.Equal(t, tt.wantAllow, decision.Allowed)
			assert.Equal(t, tt.wantReason, decision.Reason)

			_, hasAccess, _ := st.Get(ctx, storage.KeyAccessToken)
			_, hasRefresh, _ := st.Get(ctx, storage.KeyRefreshToken)
			_, hasUser, _ := st.Get(ctx, storage.KeyUsername)
			if tt.wantAllow {
				assert.True(t, hasAccess)
				assert.True(t, hasRefresh)
			} else {
				assert.False(t, hasAccess, "access token kept after denial")
				assert.False(t, hasRefresh, "refresh token kept after denial")
			}
			assert.True(t, hasUser, "username is not a token")
		})
	}
}

func TestGuard_AllowedReportsExpiry(t *testing.T) {
	exp := fixedNow.Add(90 * time.Minute)
	g, _ := newTestGuard(t, strPtr(signed(t, jwt.MapClaims{"exp": exp.Unix()})))

	decision, err := g.Check(context.Background())

	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.True(t, exp.Equal(decision.ExpiresAt))
}
