package analytics

import (
	"context"
	"slices"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"petiscaria/internal/domain"
)

// openStatuses are the statuses that keep a table occupied.
var openStatuses = domain.StatusSet{domain.StatusPending, domain.StatusPreparing, domain.StatusReady, domain.StatusDelivered}

type OrderLister interface {
	ListOrders(ctx context.Context, statuses domain.StatusSet) ([]domain.Order, error)
}

// Monitor tracks which of the numbered tables hold an unpaid order. It
// refreshes on a fixed interval and keeps the last floor on fetch failure.
type Monitor struct {
	lister   OrderLister
	count    int
	interval time.Duration
	logger   *zap.Logger

	mu    sync.RWMutex
	slots []domain.TableSlot

	runMu   sync.Mutex
	cancel  context.CancelFunc
	running sync.WaitGroup
}

func NewMonitor(lister OrderLister, count int, interval time.Duration, logger *zap.Logger) *Monitor {
	return &Monitor{
		lister:   lister,
		count:    count,
		interval: interval,
		logger:   logger.With(zap.String("component", "tables")),
		slots:    Floor(count, nil),
	}
}

func (m *Monitor) Slots() []domain.TableSlot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.slots)
}

func (m *Monitor) Refresh(ctx context.Context) error {
	orders, err := m.lister.ListOrders(ctx, openStatuses)
	if err != nil {
		if ctx.Err() == nil {
			m.logger.Error("fetching orders for table monitor", zap.Error(err))
		}
		return err
	}

	floor := Floor(m.count, orders)
	m.mu.Lock()
	m.slots = floor
	m.mu.Unlock()
	return nil
}

func (m *Monitor) Start(ctx context.Context) {
	m.runMu.Lock()
	defer m.runMu.Unlock()
	if m.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	_ = m.Refresh(runCtx)

	if m.interval <= 0 {
		return
	}
	m.running.Add(1)
	go func() {
		defer m.running.Done()
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
				_ = m.Refresh(runCtx)
			}
		}
	}()
}

func (m *Monitor) Stop() {
	m.runMu.Lock()
	defer m.runMu.Unlock()
	if m.cancel == nil {
		return
	}
	m.cancel()
	m.running.Wait()
	m.cancel = nil
}

// Floor lays out tables 1..count. A table is occupied by the first order in
// orders that sits at it and is not paid.
func Floor(count int, orders []domain.Order) []domain.TableSlot {
	slots := make([]domain.TableSlot, count)
	for i := range slots {
		number := strconv.Itoa(i + 1)
		slots[i] = domain.TableSlot{Number: number, State: domain.TableFree}
		for _, o := range orders {
			if string(o.Table) == number && o.Status != domain.StatusPaid {
				id := o.ID
				slots[i].State = domain.TableOccupied
				slots[i].OrderID = &id
				break
			}
		}
	}
	return slots
}
