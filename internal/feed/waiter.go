package feed

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"petiscaria/internal/domain"
	"petiscaria/internal/push"
)

// ErrStopped is reported by acknowledgements that arrive after Stop.
var ErrStopped = errors.New("waiter feed is stopped")

// Waiter is the feed of orders ready to be served.
type Waiter struct {
	*Provider
	updater StatusUpdater
	// rollback puts an order back when the delivery PATCH fails. Off by
	// default: a failed acknowledge is only logged.
	rollback bool

	ackMu    sync.RWMutex
	stopped  bool
	inflight sync.WaitGroup
}

func NewWaiter(lister OrderLister, updater StatusUpdater, source push.Source, opts Options, rollback bool, logger *zap.Logger) *Waiter {
	return &Waiter{
		Provider: NewProvider(WaiterPolicy, lister, source, opts, logger),
		updater:  updater,
		rollback: rollback,
	}
}

// Acknowledge removes the order from the list before returning, then marks
// it delivered on the server in the background. The returned channel
// yields the outcome of that request and is then closed.
func (w *Waiter) Acknowledge(ctx context.Context, id int) <-chan error {
	done := make(chan error, 1)

	w.ackMu.RLock()
	if w.stopped {
		w.ackMu.RUnlock()
		done <- ErrStopped
		close(done)
		return done
	}
	w.inflight.Add(1)
	w.ackMu.RUnlock()

	removed, held := w.Remove(id)
	go func() {
		defer w.inflight.Done()
		defer close(done)

		_, err := w.updater.UpdateStatus(ctx, id, domain.StatusDelivered)
		if err != nil {
			w.logger.Error("acknowledging order", zap.Int("orderId", id), zap.Bool("rolledBack", w.rollback && held), zap.Error(err))
			if w.rollback && held {
				w.restore(removed)
			}
			done <- err
			return
		}
		w.logger.Info("order delivered", zap.Int("orderId", id))
	}()
	return done
}

func (w *Waiter) Start(ctx context.Context) error {
	w.ackMu.Lock()
	w.stopped = false
	w.ackMu.Unlock()
	return w.Provider.Start(ctx)
}

// Stop stops the feed, refuses new acknowledgements and waits for those
// still in flight.
func (w *Waiter) Stop() {
	w.ackMu.Lock()
	w.stopped = true
	w.ackMu.Unlock()

	w.Provider.Stop()
	w.inflight.Wait()
}
