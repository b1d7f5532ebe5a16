package apiclient

import (
	"context"
	"net/http"

	"petiscaria/internal/domain"
)

func (c *Client) Metrics(ctx context.Context) (*domain.Metrics, error) {
	var m domain.Metrics
	if err := c.do(ctx, request{method: http.MethodGet, path: "orders/metrics"}, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *Client) MonthlySales(ctx context.Context) (*domain.MonthlySales, error) {
	var s domain.MonthlySales
	if err := c.do(ctx, request{method: http.MethodGet, path: "orders/monthly-sales"}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Statistics reads orders/<timeframe>-statistics.
func (c *Client) Statistics(ctx context.Context, timeframe domain.Timeframe) (*domain.Statistics, error) {
	var s domain.Statistics
	path := "orders/" + string(timeframe) + "-statistics"
	if err := c.do(ctx, request{method: http.MethodGet, path: path}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
