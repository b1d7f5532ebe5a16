package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"petiscaria/internal/domain"
)

type OrderResponse struct {
	ID           int                `json:"id"`
	CustomerName string             `json:"customerName"`
	Table        string             `json:"table,omitempty"`
	Status       domain.Status      `json:"status"`
	LineItems    []LineItemResponse `json:"lineItems"`
	Total        decimal.Decimal    `json:"total"`
	CreatedAt    *time.Time         `json:"createdAt,omitempty"`
}

type LineItemResponse struct {
	ID          int        `json:"id,omitempty"`
	ProductID   int        `json:"productId"`
	ProductName string     `json:"productName"`
	Quantity    int        `json:"quantity"`
	Notes       string     `json:"notes,omitempty"`
	AddedAt     *time.Time `json:"addedAt,omitempty"`
	Recent      bool       `json:"recent"`
}

type OrderListResponse struct {
	Feed   string          `json:"feed"`
	Count  int             `json:"count"`
	Orders []OrderResponse `json:"orders"`
}

type RecentOrdersResponse struct {
	Page       int             `json:"page"`
	TotalPages int             `json:"totalPages"`
	Count      int             `json:"count"`
	Orders     []OrderResponse `json:"orders"`
}

// AcknowledgeResponse answers an acknowledge before the server has
// confirmed it.
type AcknowledgeResponse struct {
	TraceID   string    `json:"traceId"`
	OrderID   int       `json:"orderId"`
	Removed   bool      `json:"removed"`
	Timestamp time.Time `json:"timestamp"`
}

type AddItemRequest struct {
	ProductID int    `json:"productId"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes"`
}

// NewOrderResponse flags line items added within the recent window
// relative to now.
func NewOrderResponse(o domain.Order, now time.Time) OrderResponse {
	items := make([]LineItemResponse, len(o.LineItems))
	for i, li := range o.LineItems {
		items[i] = LineItemResponse{
			ID:          li.ID,
			ProductID:   li.Product.ID,
			ProductName: li.Product.Name,
			Quantity:    li.Quantity,
			Notes:       li.Notes,
			AddedAt:     timePtr(li.AddedAt),
			Recent:      li.IsRecent(now),
		}
	}
	return OrderResponse{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		Table:        string(o.Table),
		Status:       o.Status,
		LineItems:    items,
		Total:        o.Total,
		CreatedAt:    timePtr(o.CreatedAt),
	}
}

func NewOrderListResponse(feed string, orders []domain.Order, now time.Time) OrderListResponse {
	out := make([]OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = NewOrderResponse(o, now)
	}
	return OrderListResponse{Feed: feed, Count: len(out), Orders: out}
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
