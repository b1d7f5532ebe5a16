package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"petiscaria/internal/domain"
)

func newTestWaiter(t *testing.T, updater *mockUpdater, rollback bool, orders ...domain.Order) *Waiter {
	t.Helper()
	w := NewWaiter(staticLister(orders...), updater, nil, Options{}, rollback, zap.NewNop())
	require.NoError(t, w.Refresh(context.Background()))
	return w
}

func TestWaiter_AcknowledgeRemovesBeforeServerAnswers(t *testing.T) {
	release := make(chan struct{})
	var sent domain.Status
	updater := &mockUpdater{UpdateStatusFunc: func(_ context.Context, id int, status domain.Status) (*domain.Order, error) {
		<-release
		sent = status
		o := order(id, status)
		return &o, nil
	}}
	w := newTestWaiter(t, updater, false, order(7, domain.StatusReady), order(8, domain.StatusReady))

	done := w.Acknowledge(context.Background(), 7)

	assert.Equal(t, []int{8}, ids(w.Orders()))
	close(release)
	assert.NoError(t, <-done)
	assert.Equal(t, domain.StatusDelivered, sent)
	assert.Equal(t, []int{8}, ids(w.Orders()))
}

func TestWaiter_AcknowledgeFailureIsNotRolledBack(t *testing.T) {
	updater := &mockUpdater{UpdateStatusFunc: func(context.Context, int, domain.Status) (*domain.Order, error) {
		return nil, errors.New("503 service unavailable")
	}}
	w := newTestWaiter(t, updater, false, order(7, domain.StatusReady))

	done := w.Acknowledge(context.Background(), 7)
	assert.Empty(t, w.Orders())

	assert.ErrorContains(t, <-done, "503")
	assert.Empty(t, w.Orders())
}

func TestWaiter_AcknowledgeFailureRollsBackWhenEnabled(t *testing.T) {
	updater := &mockUpdater{UpdateStatusFunc: func(context.Context, int, domain.Status) (*domain.Order, error) {
		return nil, errors.New("503 service unavailable")
	}}
	w := newTestWaiter(t, updater, true, order(7, domain.StatusReady), order(8, domain.StatusReady))

	done := w.Acknowledge(context.Background(), 7)
	assert.Equal(t, []int{8}, ids(w.Orders()))

	assert.Error(t, <-done)
	assert.Equal(t, []int{7, 8}, ids(w.Orders()))
}

func TestWaiter_AcknowledgeUnheldOrderStillPatches(t *testing.T) {
	called := make(chan int, 1)
	updater := &mockUpdater{UpdateStatusFunc: func(_ context.Context, id int, status domain.Status) (*domain.Order, error) {
		called <- id
		return &domain.Order{}, nil
	}}
	w := newTestWaiter(t, updater, true)

	assert.NoError(t, <-w.Acknowledge(context.Background(), 3))
	assert.Equal(t, 3, <-called)
	assert.Empty(t, w.Orders())
}

func TestWaiter_StopWaitsForInflightAcknowledge(t *testing.T) {
	finished := make(chan struct{})
	updater := &mockUpdater{UpdateStatusFunc: func(_ context.Context, id int, _ domain.Status) (*domain.Order, error) {
		time.Sleep(20 * time.Millisecond)
		close(finished)
		return &domain.Order{}, nil
	}}
	w := newTestWaiter(t, updater, false, order(7, domain.StatusReady))
	require.NoError(t, w.Start(context.Background()))

	w.Acknowledge(context.Background(), 7)
	w.Stop()

	select {
	case <-finished:
	default:
		t.Fatal("Stop returned before the acknowledge request finished")
	}
}

func TestWaiter_AcknowledgeAfterStopIsRefused(t *testing.T) {
	updater := &mockUpdater{UpdateStatusFunc: func(context.Context, int, domain.Status) (*domain.Order, error) {
		t.Fatal("no request after stop")
		return nil, nil
	}}
	w := newTestWaiter(t, updater, false, order(3, domain.StatusReady))
	w.Stop()

	err := <-w.Acknowledge(context.Background(), 3)

	assert.ErrorIs(t, err, ErrStopped)
	assert.Equal(t, []int{3}, ids(w.Orders()))
}

func TestWaiter_AcknowledgeDuringStop(t *testing.T) {
	updater := &mockUpdater{UpdateStatusFunc: func(_ context.Context, id int, status domain.Status) (*domain.Order, error) {
		time.Sleep(time.Millisecond)
		o := order(id, status)
		return &o, nil
	}}
	orders := make([]domain.Order, 50)
	for i := range orders {
		orders[i] = order(i+1, domain.StatusReady)
	}
	w := newTestWaiter(t, updater, false, orders...)

	results := make(chan (<-chan error), len(orders))
	go func() {
		defer close(results)
		for _, o := range orders {
			results <- w.Acknowledge(context.Background(), o.ID)
		}
	}()
	w.Stop()

	for done := range results {
		if err := <-done; err != nil {
			assert.ErrorIs(t, err, ErrStopped)
		}
	}
}
