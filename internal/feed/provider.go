package feed

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"petiscaria/internal/domain"
	"petiscaria/internal/push"
)

type Strategy string

const (
	// StrategyRefetch re-reads the snapshot on every push message.
	StrategyRefetch Strategy = "refetch"
	// StrategyMerge merges order payloads in place and re-fetches on signals.
	StrategyMerge Strategy = "merge"
)

var ErrAlreadyStarted = errors.New("feed already started")

type OrderLister interface {
	ListOrders(ctx context.Context, statuses domain.StatusSet) ([]domain.Order, error)
}

type Options struct {
	Strategy Strategy
	// PollInterval of zero disables the fallback poll.
	PollInterval time.Duration
	// ClearOnError empties the list when a fetch fails; otherwise the
	// last-known list is kept.
	ClearOnError bool
	// ReconnectDelay of zero leaves the push channel closed once it drops.
	ReconnectDelay time.Duration
}

// Provider holds one role's list of active orders. All three update paths
// (fetch, push, poll) go through the same lock, so the list is replaced
// whole and in arrival order.
type Provider struct {
	policy Policy
	lister OrderLister
	source push.Source
	opts   Options
	logger *zap.Logger

	mu     sync.RWMutex
	orders []domain.Order

	listenersMu sync.Mutex
	listeners   map[int]chan []domain.Order
	nextID      int

	runMu   sync.Mutex
	cancel  context.CancelFunc
	running sync.WaitGroup
}

// NewProvider builds a feed. source may be nil, in which case the feed
// relies on the poll alone.
func NewProvider(policy Policy, lister OrderLister, source push.Source, opts Options, logger *zap.Logger) *Provider {
	if opts.Strategy == "" {
		opts.Strategy = StrategyRefetch
	}
	return &Provider{
		policy:    policy,
		lister:    lister,
		source:    source,
		opts:      opts,
		logger:    logger.With(zap.String("feed", policy.Name)),
		orders:    []domain.Order{},
		listeners: make(map[int]chan []domain.Order),
	}
}

func (p *Provider) Policy() Policy {
	return p.policy
}

// Start fetches the first snapshot, then opens the push channel and the
// fallback poll. A failed first fetch or push connection is logged and does
// not stop the feed.
func (p *Provider) Start(ctx context.Context) error {
	p.runMu.Lock()
	defer p.runMu.Unlock()
	if p.cancel != nil {
		return ErrAlreadyStarted
	}

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	_ = p.Refresh(runCtx)

	if p.source != nil {
		p.running.Add(1)
		go p.pushLoop(runCtx)
	}
	if p.opts.PollInterval > 0 {
		p.running.Add(1)
		go p.pollLoop(runCtx)
	}

	p.logger.Info("feed started",
		zap.String("strategy", string(p.opts.Strategy)),
		zap.Duration("pollInterval", p.opts.PollInterval),
		zap.Bool("push", p.source != nil),
	)
	return nil
}

// Stop closes the push subscription and the poll ticker and waits for both
// to finish. The feed can be started again afterwards.
func (p *Provider) Stop() {
	p.runMu.Lock()
	defer p.runMu.Unlock()
	if p.cancel == nil {
		return
	}
	p.cancel()
	p.running.Wait()
	p.cancel = nil
	p.logger.Info("feed stopped")
}

// Orders returns a copy of the current list.
func (p *Provider) Orders() []domain.Order {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.orders)
}

func (p *Provider) Find(id int) (domain.Order, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if idx := indexOf(p.orders, id); idx >= 0 {
		return p.orders[idx], true
	}
	return domain.Order{}, false
}

// Subscribe registers a listener that receives the list after every change.
// Only the latest list is buffered; a slow listener skips intermediate
// states. Received lists must not be modified.
func (p *Provider) Subscribe() (<-chan []domain.Order, func()) {
	p.listenersMu.Lock()
	defer p.listenersMu.Unlock()

	id := p.nextID
	p.nextID++
	ch := make(chan []domain.Order, 1)
	p.listeners[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			p.listenersMu.Lock()
			defer p.listenersMu.Unlock()
			delete(p.listeners, id)
			close(ch)
		})
	}
}

// Refresh replaces the list with a fresh snapshot of the tracked statuses.
func (p *Provider) Refresh(ctx context.Context) error {
	orders, err := p.lister.ListOrders(ctx, p.policy.Tracked)
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		p.logger.Error("fetching orders", zap.Error(err), zap.Bool("cleared", p.opts.ClearOnError))
		if p.opts.ClearOnError {
			p.replace(func([]domain.Order) ([]domain.Order, error) { return []domain.Order{}, nil })
		}
		return fmt.Errorf("refreshing %s feed: %w", p.policy.Name, err)
	}

	snapshot := normalizeSnapshot(orders, p.policy.Tracked)
	p.replace(func([]domain.Order) ([]domain.Order, error) { return snapshot, nil })
	return nil
}

// Apply merges a single order update into the list.
func (p *Provider) Apply(update domain.OrderUpdate) error {
	return p.replace(func(current []domain.Order) ([]domain.Order, error) {
		return Merge(current, update, p.policy.Tracked)
	})
}

// Remove drops an order locally without asking the server.
func (p *Provider) Remove(id int) (domain.Order, bool) {
	var removed domain.Order
	var found bool
	p.replace(func(current []domain.Order) ([]domain.Order, error) {
		idx := indexOf(current, id)
		if idx < 0 {
			return current, nil
		}
		removed, found = current[idx], true
		return removeOrder(current, id), nil
	})
	return removed, found
}

// restore puts a locally removed order back at the head of the list unless
// a newer copy has arrived in the meantime.
func (p *Provider) restore(o domain.Order) {
	p.replace(func(current []domain.Order) ([]domain.Order, error) {
		if indexOf(current, o.ID) >= 0 || !p.policy.Tracks(o.Status) {
			return current, nil
		}
		return append([]domain.Order{o}, current...), nil
	})
}

func (p *Provider) replace(fn func(current []domain.Order) ([]domain.Order, error)) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	next, err := fn(p.orders)
	if err != nil {
		return err
	}
	p.orders = next
	p.publish(slices.Clone(next))
	return nil
}

func (p *Provider) publish(snapshot []domain.Order) {
	p.listenersMu.Lock()
	defer p.listenersMu.Unlock()
	for _, ch := range p.listeners {
		select {
		case <-ch:
		default:
		}
		ch <- snapshot
	}
}

func (p *Provider) pollLoop(ctx context.Context) {
	defer p.running.Done()

	ticker := time.NewTicker(p.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = p.Refresh(ctx)
		}
	}
}

func (p *Provider) pushLoop(ctx context.Context) {
	defer p.running.Done()

	for {
		sub, err := p.source.Subscribe(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			p.logger.Error("opening push channel", zap.Error(err))
		} else {
			p.consume(ctx, sub)
			if err := sub.Close(); err != nil {
				p.logger.Debug("closing push channel", zap.Error(err))
			}
		}

		if p.opts.ReconnectDelay <= 0 {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(p.opts.ReconnectDelay):
			p.logger.Info("reconnecting push channel")
		}
	}
}

func (p *Provider) consume(ctx context.Context, sub push.Subscription) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub.Events():
			if !ok {
				if ctx.Err() == nil {
					p.logger.Warn("push channel closed")
				}
				return
			}
			p.handle(ctx, ev)
		}
	}
}

func (p *Provider) handle(ctx context.Context, ev push.Event) {
	if p.opts.Strategy == StrategyMerge && ev.Kind == push.EventOrder {
		if err := p.Apply(ev.Update); err != nil {
			p.logger.Warn("ignoring unmergeable order update", zap.Int("orderId", ev.Update.ID), zap.Error(err))
		}
		return
	}
	_ = p.Refresh(ctx)
}
