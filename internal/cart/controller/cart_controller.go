package controller

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"petiscaria/internal/domain"
	"petiscaria/internal/dto"
	apperrors "petiscaria/internal/errors"
	"petiscaria/internal/httpx"
)

type CartStore interface {
	Lines() []domain.CartLine
	Add(ctx context.Context, line domain.CartLine) ([]domain.CartLine, error)
	Remove(ctx context.Context, productID int, notes string) ([]domain.CartLine, error)
	SetQuantity(ctx context.Context, productID int, notes string, quantity int) ([]domain.CartLine, error)
	Clear(ctx context.Context) error
}

type CheckoutUseCase interface {
	PlaceOrder(ctx context.Context, customerName string, table domain.TableRef) (*domain.Order, error)
}

type Controller struct {
	cart     CartStore
	checkout CheckoutUseCase
	logger   *zap.Logger
}

func NewController(cart CartStore, checkout CheckoutUseCase, logger *zap.Logger) *Controller {
	return &Controller{cart: cart, checkout: checkout, logger: logger}
}

func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, c.logger, http.StatusOK, dto.NewCartResponse(c.cart.Lines()))
}

func (c *Controller) AddLine(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)

	var req dto.AddCartLineRequest
	if !httpx.DecodeJSON(w, r, logger, traceID, &req) {
		return
	}

	var details []apperrors.ValidationDetail
	if req.ProductID <= 0 {
		details = append(details, apperrors.ValidationDetail{Field: "productId", Message: "productId must be a positive integer"})
	}
	if req.UnitPrice.IsNegative() {
		details = append(details, apperrors.ValidationDetail{Field: "unitPrice", Message: "unitPrice must be non-negative"})
	}
	if req.Quantity < 1 {
		details = append(details, apperrors.ValidationDetail{Field: "quantity", Message: "quantity must be at least 1"})
	}
	if len(details) > 0 {
		httpx.WriteValidationError(w, logger, traceID, "validation failed", details...)
		return
	}

	lines, err := c.cart.Add(r.Context(), domain.CartLine{
		ProductID: req.ProductID,
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
		Quantity:  req.Quantity,
		Notes:     req.Notes,
	})
	c.writeCart(w, logger, traceID, lines, err)
}

func (c *Controller) SetQuantity(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)

	var req dto.CartLineKeyRequest
	if !httpx.DecodeJSON(w, r, logger, traceID, &req) {
		return
	}

	lines, err := c.cart.SetQuantity(r.Context(), req.ProductID, req.Notes, req.Quantity)
	c.writeCart(w, logger, traceID, lines, err)
}

func (c *Controller) RemoveLine(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)

	var req dto.CartLineKeyRequest
	if !httpx.DecodeJSON(w, r, logger, traceID, &req) {
		return
	}

	lines, err := c.cart.Remove(r.Context(), req.ProductID, req.Notes)
	c.writeCart(w, logger, traceID, lines, err)
}

func (c *Controller) Clear(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)

	err := c.cart.Clear(r.Context())
	c.writeCart(w, logger, traceID, []domain.CartLine{}, err)
}

func (c *Controller) Checkout(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)

	var req dto.CheckoutRequest
	if !httpx.DecodeJSON(w, r, logger, traceID, &req) {
		return
	}

	created, err := c.checkout.PlaceOrder(r.Context(), req.CustomerName, domain.TableRef(req.Table))
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteJSON(w, logger, http.StatusCreated, dto.NewOrderResponse(*created, time.Now()))
}

// writeCart answers with the cart even when saving it failed: the change
// holds in memory for this process.
func (c *Controller) writeCart(w http.ResponseWriter, logger *zap.Logger, traceID string, lines []domain.CartLine, err error) {
	if _, ok := apperrors.IsValidationError(err); ok {
		httpx.WriteError(w, logger, traceID, err)
		return
	}
	if err != nil {
		logger.Warn("cart changed but not saved", zap.Error(err))
	}
	httpx.WriteJSON(w, logger, http.StatusOK, dto.NewCartResponse(lines))
}
