package controller

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"petiscaria/internal/domain"
	"petiscaria/internal/dto"
	apperrors "petiscaria/internal/errors"
	"petiscaria/internal/httpx"
	"petiscaria/internal/order/usecase"
)

type OrderActionsUseCase interface {
	Recent(ctx context.Context, page int) *usecase.RecentOrders
	AddItems(ctx context.Context, orderID int, item domain.NewOrderItem) (*domain.Order, error)
	Reopen(ctx context.Context, orderID int) error
	CancelReopen(ctx context.Context, orderID int) error
	MarkPaid(ctx context.Context, orderID int) error
}

type OrderController struct {
	useCase OrderActionsUseCase
	logger  *zap.Logger
}

func NewOrderController(useCase OrderActionsUseCase, logger *zap.Logger) *OrderController {
	return &OrderController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *OrderController) Recent(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 1 {
			httpx.WriteValidationError(w, logger, traceID, "invalid page", apperrors.ValidationDetail{
				Field:   "page",
				Message: "page must be a positive integer",
			})
			return
		}
		page = p
	}

	result := c.useCase.Recent(r.Context(), page)

	now := time.Now()
	orders := make([]dto.OrderResponse, len(result.Orders))
	for i, o := range result.Orders {
		orders[i] = dto.NewOrderResponse(o, now)
	}
	httpx.WriteJSON(w, logger, http.StatusOK, dto.RecentOrdersResponse{
		Page:       result.Page,
		TotalPages: result.TotalPages,
		Count:      result.Count,
		Orders:     orders,
	})
}

func (c *OrderController) AddItems(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)

	orderID, ok := httpx.IDParam(w, r, logger, traceID, "orderId")
	if !ok {
		return
	}

	var req dto.AddItemRequest
	if !httpx.DecodeJSON(w, r, logger, traceID, &req) {
		return
	}

	var details []apperrors.ValidationDetail
	if req.ProductID <= 0 {
		details = append(details, apperrors.ValidationDetail{Field: "productId", Message: "productId must be a positive integer"})
	}
	if req.Quantity < 1 {
		details = append(details, apperrors.ValidationDetail{Field: "quantity", Message: "quantity must be at least 1"})
	}
	if len(details) > 0 {
		httpx.WriteValidationError(w, logger, traceID, "validation failed", details...)
		return
	}

	updated, err := c.useCase.AddItems(r.Context(), orderID, domain.NewOrderItem{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Notes:     req.Notes,
	})
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteJSON(w, logger, http.StatusOK, dto.NewOrderResponse(*updated, time.Now()))
}

func (c *OrderController) Reopen(w http.ResponseWriter, r *http.Request) {
	c.action(w, r, c.useCase.Reopen)
}

func (c *OrderController) CancelReopen(w http.ResponseWriter, r *http.Request) {
	c.action(w, r, c.useCase.CancelReopen)
}

func (c *OrderController) MarkPaid(w http.ResponseWriter, r *http.Request) {
	c.action(w, r, c.useCase.MarkPaid)
}

func (c *OrderController) action(w http.ResponseWriter, r *http.Request, run func(context.Context, int) error) {
	traceID, logger := httpx.Trace(c.logger)

	orderID, ok := httpx.IDParam(w, r, logger, traceID, "orderId")
	if !ok {
		return
	}

	if err := run(r.Context(), orderID); err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
