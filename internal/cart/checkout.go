package cart

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"petiscaria/internal/domain"
	apperrors "petiscaria/internal/errors"
)

type OrderCreator interface {
	CreateOrder(ctx context.Context, order domain.NewOrder) (*domain.Order, error)
}

type Checkout struct {
	cart    *Store
	creator OrderCreator
	logger  *zap.Logger
}

func NewCheckout(cart *Store, creator OrderCreator, logger *zap.Logger) *Checkout {
	return &Checkout{cart: cart, creator: creator, logger: logger}
}

// PlaceOrder submits the cart as a new order and takes the submitted lines
// out of it. Lines added while the order is in flight stay in the cart. The
// cart is left untouched when the order is rejected.
func (c *Checkout) PlaceOrder(ctx context.Context, customerName string, table domain.TableRef) (*domain.Order, error) {
	customerName = strings.TrimSpace(customerName)
	lines := c.cart.Lines()

	var details []apperrors.ValidationDetail
	if customerName == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "customerName",
			Message: "customerName is required",
		})
	}
	if len(lines) == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: "cart is empty",
		})
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("checkout rejected", details...)
	}

	order := domain.NewOrder{
		CustomerName: customerName,
		Table:        table,
		Items:        make([]domain.NewOrderItem, len(lines)),
	}
	for i, l := range lines {
		order.Items[i] = domain.NewOrderItem{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Notes:     l.Notes,
		}
	}

	created, err := c.creator.CreateOrder(ctx, order)
	if err != nil {
		c.logger.Error("placing order", zap.Int("lines", len(lines)), zap.Error(err))
		return nil, fmt.Errorf("placing order: %w", err)
	}

	if _, err := c.cart.Release(ctx, lines); err != nil {
		// the order exists; a stale saved cart is the lesser problem
		c.logger.Warn("clearing cart after checkout", zap.Int("orderId", created.ID), zap.Error(err))
	}

	c.logger.Info("order placed", zap.Int("orderId", created.ID), zap.Int("lines", len(lines)))
	return created, nil
}
