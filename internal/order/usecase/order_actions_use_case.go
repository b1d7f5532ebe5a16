package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"petiscaria/internal/apiclient"
	"petiscaria/internal/domain"
	apperrors "petiscaria/internal/errors"
)

// RecentPageSize is how many orders the recent-orders table shows per page.
const RecentPageSize = 8

type OrderAPI interface {
	RecentOrders(ctx context.Context, page, pageSize int) (apiclient.Page[domain.Order], error)
	GetOrder(ctx context.Context, id int) (*domain.Order, error)
	AddItems(ctx context.Context, id int, item domain.NewOrderItem) (*domain.Order, error)
	Reopen(ctx context.Context, id int) error
	CancelReopen(ctx context.Context, id int) error
	MarkPaid(ctx context.Context, id int) error
}

type RecentOrders struct {
	Page       int
	TotalPages int
	Count      int
	Orders     []domain.Order
}

type OrderActionsUseCase struct {
	api    OrderAPI
	logger *zap.Logger
}

func NewOrderActionsUseCase(api OrderAPI, logger *zap.Logger) *OrderActionsUseCase {
	return &OrderActionsUseCase{
		api:    api,
		logger: logger,
	}
}

// Recent lists one page of orders. A failed fetch yields an empty single
// page so the table renders its empty state.
func (uc *OrderActionsUseCase) Recent(ctx context.Context, page int) *RecentOrders {
	if page < 1 {
		page = 1
	}

	result, err := uc.api.RecentOrders(ctx, page, RecentPageSize)
	if err != nil {
		uc.logger.Error("fetching recent orders", zap.Int("page", page), zap.Error(err))
		return &RecentOrders{Page: page, TotalPages: 1, Orders: []domain.Order{}}
	}

	orders := result.Results
	if orders == nil {
		orders = []domain.Order{}
	}
	return &RecentOrders{
		Page:       page,
		TotalPages: result.TotalPages(RecentPageSize),
		Count:      result.Count,
		Orders:     orders,
	}
}

// AddItems appends a line to an order that has not left the pending state.
func (uc *OrderActionsUseCase) AddItems(ctx context.Context, orderID int, item domain.NewOrderItem) (*domain.Order, error) {
	uc.logger.Info("add-items started", zap.Int("orderId", orderID), zap.Int("productId", item.ProductID), zap.Int("quantity", item.Quantity))

	order, err := uc.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.StatusPending {
		return nil, apperrors.NewConflictError(fmt.Sprintf("order %d is %s; only pending orders take new items", orderID, order.Status))
	}

	updated, err := uc.api.AddItems(ctx, orderID, item)
	if err != nil {
		return nil, fmt.Errorf("adding items to order %d: %w", orderID, err)
	}
	return updated, nil
}

// Reopen sends a served but unpaid order back to the kitchen.
func (uc *OrderActionsUseCase) Reopen(ctx context.Context, orderID int) error {
	return uc.transition(ctx, orderID, "reopen", func(s domain.Status) bool {
		return s != domain.StatusPending && s != domain.StatusPaid
	}, uc.api.Reopen)
}

// CancelReopen undoes a reopen while the order is still pending.
func (uc *OrderActionsUseCase) CancelReopen(ctx context.Context, orderID int) error {
	return uc.transition(ctx, orderID, "cancel-reopen", func(s domain.Status) bool {
		return s == domain.StatusPending
	}, uc.api.CancelReopen)
}

func (uc *OrderActionsUseCase) MarkPaid(ctx context.Context, orderID int) error {
	return uc.transition(ctx, orderID, "mark-paid", func(s domain.Status) bool {
		return s != domain.StatusPaid
	}, uc.api.MarkPaid)
}

func (uc *OrderActionsUseCase) transition(ctx context.Context, orderID int, action string, allowed func(domain.Status) bool, call func(context.Context, int) error) error {
	order, err := uc.load(ctx, orderID)
	if err != nil {
		return err
	}
	if !allowed(order.Status) {
		return apperrors.NewConflictError(fmt.Sprintf("cannot %s order %d while it is %s", action, orderID, order.Status))
	}

	if err := call(ctx, orderID); err != nil {
		uc.logger.Error("order action failed", zap.String("action", action), zap.Int("orderId", orderID), zap.Error(err))
		return fmt.Errorf("%s order %d: %w", action, orderID, err)
	}

	uc.logger.Info("order action applied", zap.String("action", action), zap.Int("orderId", orderID), zap.String("from", string(order.Status)))
	return nil
}

func (uc *OrderActionsUseCase) load(ctx context.Context, orderID int) (*domain.Order, error) {
	order, err := uc.api.GetOrder(ctx, orderID)
	if err != nil {
		if ae, ok := apperrors.IsAPIError(err); ok && ae.NotFound() {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("order %d not found", orderID))
		}
		return nil, err
	}
	return order, nil
}
