package controller

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"petiscaria/internal/domain"
	"petiscaria/internal/dto"
	"petiscaria/internal/httpx"
)

type Feed interface {
	Orders() []domain.Order
	Subscribe() (<-chan []domain.Order, func())
}

type KitchenFeed interface {
	Feed
	Advance(ctx context.Context, id int) (*domain.Order, error)
}

type WaiterFeed interface {
	Feed
	Acknowledge(ctx context.Context, id int) <-chan error
}

type Controller struct {
	kitchen  KitchenFeed
	waiter   WaiterFeed
	upgrader websocket.Upgrader
	now      func() time.Time
	logger   *zap.Logger

	shutdown  chan struct{}
	closeOnce sync.Once
}

func NewController(kitchen KitchenFeed, waiter WaiterFeed, logger *zap.Logger) *Controller {
	return &Controller{
		kitchen: kitchen,
		waiter:  waiter,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		now:      time.Now,
		logger:   logger,
		shutdown: make(chan struct{}),
	}
}

// Close ends every open stream. Hijacked connections are not covered by
// http.Server.Shutdown.
func (c *Controller) Close() {
	c.closeOnce.Do(func() { close(c.shutdown) })
}

func (c *Controller) KitchenOrders(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, c.logger, http.StatusOK, dto.NewOrderListResponse("kitchen", c.kitchen.Orders(), c.now()))
}

func (c *Controller) Advance(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)

	id, ok := httpx.IDParam(w, r, logger, traceID, "orderId")
	if !ok {
		return
	}

	updated, err := c.kitchen.Advance(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteJSON(w, logger, http.StatusOK, dto.NewOrderResponse(*updated, c.now()))
}

func (c *Controller) ReadyOrders(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, c.logger, http.StatusOK, dto.NewOrderListResponse("waiter", c.waiter.Orders(), c.now()))
}

// Acknowledge answers 202 as soon as the order is off the ready list; the
// delivery request outlives the HTTP request and its failure is only logged.
func (c *Controller) Acknowledge(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)

	id, ok := httpx.IDParam(w, r, logger, traceID, "orderId")
	if !ok {
		return
	}

	held := false
	for _, o := range c.waiter.Orders() {
		if o.ID == id {
			held = true
			break
		}
	}

	c.waiter.Acknowledge(context.WithoutCancel(r.Context()), id)
	logger.Info("order acknowledged", zap.Int("orderId", id), zap.Bool("held", held))

	httpx.WriteJSON(w, logger, http.StatusAccepted, dto.AcknowledgeResponse{
		TraceID:   traceID,
		OrderID:   id,
		Removed:   held,
		Timestamp: c.now().UTC(),
	})
}

func (c *Controller) KitchenStream(w http.ResponseWriter, r *http.Request) {
	c.stream(w, r, "kitchen", c.kitchen)
}

func (c *Controller) WaiterStream(w http.ResponseWriter, r *http.Request) {
	c.stream(w, r, "waiter", c.waiter)
}
