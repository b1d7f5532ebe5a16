// Package apiclient talks to the remote restaurant API. Every request carries
// the stored access token as a bearer credential; list endpoints are
// normalized through DecodeList whatever envelope the server chooses.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"petiscaria/internal/config"
	"petiscaria/internal/domain"
	apperrors "petiscaria/internal/errors"
)

const (
	maxResponseBytes = 4 << 20
	maxErrorBody     = 512
)

// TokenSource yields the current access token, or "" when signed out.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

type Client struct {
	baseURL       *url.URL
	httpClient    *http.Client
	tokens        TokenSource
	vocabulary    domain.Vocabulary
	trailingSlash bool
	logger        *zap.Logger
}

func New(cfg config.APIConfig, tokens TokenSource, logger *zap.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing api base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("api base url must be http or https, got %q", cfg.BaseURL)
	}

	vocabulary := domain.Vocabulary(cfg.StatusVocabulary)
	if vocabulary == "" {
		vocabulary = domain.VocabularyEnglish
	}

	return &Client{
		baseURL:       base,
		httpClient:    &http.Client{Timeout: cfg.Timeout},
		tokens:        tokens,
		vocabulary:    vocabulary,
		trailingSlash: cfg.TrailingSlash,
		logger:        logger,
	}, nil
}

type request struct {
	method    string
	path      string
	query     url.Values
	body      interface{}
	anonymous bool
}

// send performs the request and returns the raw body of a 2xx response.
func (c *Client) send(ctx context.Context, r request) ([]byte, error) {
	endpoint := c.baseURL.JoinPath(strings.Trim(r.path, "/"))
	if c.trailingSlash {
		endpoint.Path += "/"
	}
	if len(r.query) > 0 {
		endpoint.RawQuery = r.query.Encode()
	}

	var reader io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("encoding %s %s body: %w", r.method, r.path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("building %s %s: %w", r.method, r.path, err)
	}
	req.Header.Set("Accept", "application/json")
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	if !r.anonymous && c.tokens != nil {
		token, err := c.tokens.AccessToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("reading access token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", r.method, r.path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %s %s response: %w", r.method, r.path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debug("api request failed",
			zap.String("requestId", requestID),
			zap.String("method", r.method),
			zap.String("path", r.path),
			zap.Int("status", resp.StatusCode),
		)
		return nil, &apperrors.APIError{
			StatusCode: resp.StatusCode,
			Method:     r.method,
			Path:       "/" + strings.Trim(r.path, "/"),
			Body:       truncate(strings.TrimSpace(string(data)), maxErrorBody),
		}
	}

	return data, nil
}

// do sends the request and decodes a JSON body into out when both exist.
func (c *Client) do(ctx context.Context, r request, out interface{}) error {
	data, err := c.send(ctx, r)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", r.method, r.path, err)
	}
	return nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
