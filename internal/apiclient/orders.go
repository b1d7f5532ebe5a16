package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"petiscaria/internal/domain"
)

// maxListPages bounds how many pages ListOrders follows.
const maxListPages = 50

// ListOrders fetches every order whose status is in statuses; an empty set
// fetches all orders. Paginated answers are followed page by page until the
// server reports no next page.
func (c *Client) ListOrders(ctx context.Context, statuses domain.StatusSet) ([]domain.Order, error) {
	query := url.Values{}
	if len(statuses) > 0 {
		query.Set("status__in", statuses.CSV(c.vocabulary))
	}

	var orders []domain.Order
	for page := 1; ; page++ {
		if page > 1 {
			query.Set("page", strconv.Itoa(page))
		}

		data, err := c.send(ctx, request{method: http.MethodGet, path: "orders", query: query})
		if err != nil {
			return nil, err
		}

		result, err := DecodeList[domain.Order](data)
		if err != nil {
			return nil, fmt.Errorf("listing orders page %d: %w", page, err)
		}
		orders = append(orders, result.Results...)

		if result.Next == "" || len(result.Results) == 0 {
			break
		}
		if page == maxListPages {
			c.logger.Warn("order list truncated", zap.Int("pages", page), zap.Int("orders", len(orders)))
			break
		}
	}

	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

func (c *Client) RecentOrders(ctx context.Context, page, pageSize int) (Page[domain.Order], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))

	data, err := c.send(ctx, request{method: http.MethodGet, path: "orders", query: query})
	if err != nil {
		return Page[domain.Order]{}, err
	}

	result, err := DecodeList[domain.Order](data)
	if err != nil {
		return Page[domain.Order]{}, fmt.Errorf("listing recent orders: %w", err)
	}
	return result, nil
}

func (c *Client) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, request{method: http.MethodGet, path: orderPath(id)}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

type statusUpdateBody struct {
	Status string `json:"status"`
}

func (c *Client) UpdateStatus(ctx context.Context, id int, status domain.Status) (*domain.Order, error) {
	var order domain.Order
	body := statusUpdateBody{Status: status.Wire(c.vocabulary)}
	if err := c.do(ctx, request{method: http.MethodPatch, path: orderPath(id), body: body}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) AddItems(ctx context.Context, id int, item domain.NewOrderItem) (*domain.Order, error) {
	var order domain.Order
	req := request{method: http.MethodPatch, path: orderPath(id) + "/add-items", body: item}
	if err := c.do(ctx, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) CreateOrder(ctx context.Context, order domain.NewOrder) (*domain.Order, error) {
	var created domain.Order
	if err := c.do(ctx, request{method: http.MethodPost, path: "orders", body: order}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Reopen moves a closed order back into service.
func (c *Client) Reopen(ctx context.Context, id int) error {
	return c.action(ctx, id, "reopen")
}

func (c *Client) CancelReopen(ctx context.Context, id int) error {
	return c.action(ctx, id, "cancel-reopen")
}

func (c *Client) MarkPaid(ctx context.Context, id int) error {
	return c.action(ctx, id, "mark-paid")
}

func (c *Client) action(ctx context.Context, id int, name string) error {
	_, err := c.send(ctx, request{method: http.MethodPatch, path: orderPath(id) + "/" + name})
	return err
}

func orderPath(id int) string {
	return "orders/" + strconv.Itoa(id)
}
