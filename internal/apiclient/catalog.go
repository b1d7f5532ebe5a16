package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"petiscaria/internal/domain"
)

func (c *Client) ListProducts(ctx context.Context, pageSize int) ([]domain.Product, error) {
	query := url.Values{}
	if pageSize > 0 {
		query.Set("page_size", strconv.Itoa(pageSize))
	}

	data, err := c.send(ctx, request{method: http.MethodGet, path: "products", query: query})
	if err != nil {
		return nil, err
	}

	page, err := DecodeList[domain.Product](data)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return page.Results, nil
}
