package apiclient

import (
	"context"
	"errors"
	"net/http"
)

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ObtainToken exchanges credentials for an access/refresh pair. It never
// sends the stored bearer token.
func (c *Client) ObtainToken(ctx context.Context, username, password string) (*TokenPair, error) {
	var pair TokenPair
	req := request{
		method:    http.MethodPost,
		path:      "auth/token",
		body:      credentials{Username: username, Password: password},
		anonymous: true,
	}
	if err := c.do(ctx, req, &pair); err != nil {
		return nil, err
	}
	if pair.Access == "" {
		return nil, errors.New("token response carried no access token")
	}
	return &pair, nil
}
