package cart

import (
	"context"

	"go.uber.org/zap"

	"petiscaria/internal/cart/controller"
	"petiscaria/internal/storage"
)

type Module struct {
	Store      *Store
	Checkout   *Checkout
	Controller *controller.Controller
}

func NewModule(ctx context.Context, st storage.Store, creator OrderCreator, logger *zap.Logger) *Module {
	store := NewStore(ctx, st, logger)
	checkout := NewCheckout(store, creator, logger)
	return &Module{
		Store:      store,
		Checkout:   checkout,
		Controller: controller.NewController(store, checkout, logger),
	}
}
