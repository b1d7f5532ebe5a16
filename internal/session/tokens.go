package session

import (
	"context"

	"petiscaria/internal/storage"
)

// Tokens reads the stored access token for outgoing API requests.
type Tokens struct {
	store storage.Store
}

func NewTokens(store storage.Store) *Tokens {
	return &Tokens{store: store}
}

// AccessToken returns "" when nobody is signed in.
func (t *Tokens) AccessToken(ctx context.Context) (string, error) {
	token, _, err := t.store.Get(ctx, storage.KeyAccessToken)
	return token, err
}
