// Package storage keeps the small amount of state a staff device must
// survive restarts with: auth tokens, the signed-in username and the cart.
package storage

import (
	"context"
	"fmt"
)

// Fixed keys shared by every backend.
const (
	KeyAccessToken  = "access"
	KeyRefreshToken = "refresh"
	KeyUsername     = "loggedInUsername"
	KeyCart         = "cartItems"
)

type Store interface {
	// Get reports ok=false when the key has never been set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

func validateKey(key string) error {
	if key == "" {
		return fmt.Errorf("storage key must not be empty")
	}
	return nil
}
