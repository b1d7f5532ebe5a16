package feed

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"petiscaria/internal/apiclient"
	"petiscaria/internal/config"
	"petiscaria/internal/feed/controller"
	"petiscaria/internal/push"
)

type Module struct {
	Kitchen    *Kitchen
	Waiter     *Waiter
	Controller *controller.Controller
}

// NewModule builds both feeds over the same API client and push source.
func NewModule(api *apiclient.Client, source push.Source, cfg config.FeedConfig, logger *zap.Logger) *Module {
	opts := Options{
		Strategy:       Strategy(cfg.Strategy),
		PollInterval:   cfg.PollInterval,
		ClearOnError:   cfg.ClearOnError,
		ReconnectDelay: cfg.ReconnectDelay,
	}

	kitchen := NewKitchen(api, api, source, opts, logger)
	waiter := NewWaiter(api, api, source, opts, cfg.RollbackOnAckFailure, logger)

	return &Module{
		Kitchen:    kitchen,
		Waiter:     waiter,
		Controller: controller.NewController(kitchen, waiter, logger),
	}
}

func (m *Module) Start(ctx context.Context) error {
	if err := m.Kitchen.Start(ctx); err != nil {
		return fmt.Errorf("starting kitchen feed: %w", err)
	}
	if err := m.Waiter.Start(ctx); err != nil {
		m.Kitchen.Stop()
		return fmt.Errorf("starting waiter feed: %w", err)
	}
	return nil
}

// Stop ends open streams before the feeds so clients see a clean close.
func (m *Module) Stop() {
	m.Controller.Close()
	m.Kitchen.Stop()
	m.Waiter.Stop()
}
