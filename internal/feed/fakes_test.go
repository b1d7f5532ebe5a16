package feed

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"petiscaria/internal/domain"
	"petiscaria/internal/push"
)

type mockLister struct {
	mu             sync.Mutex
	calls          int
	ListOrdersFunc func(call int, statuses domain.StatusSet) ([]domain.Order, error)
}

func (m *mockLister) ListOrders(_ context.Context, statuses domain.StatusSet) ([]domain.Order, error) {
	m.mu.Lock()
	m.calls++
	call := m.calls
	m.mu.Unlock()
	return m.ListOrdersFunc(call, statuses)
}

func (m *mockLister) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func staticLister(orders ...domain.Order) *mockLister {
	return &mockLister{ListOrdersFunc: func(int, domain.StatusSet) ([]domain.Order, error) {
		return orders, nil
	}}
}

type mockUpdater struct {
	UpdateStatusFunc func(ctx context.Context, id int, status domain.Status) (*domain.Order, error)
}

func (m *mockUpdater) UpdateStatus(ctx context.Context, id int, status domain.Status) (*domain.Order, error) {
	return m.UpdateStatusFunc(ctx, id, status)
}

type fakeSubscription struct {
	events chan push.Event
	closed atomic.Bool
}

func (s *fakeSubscription) Events() <-chan push.Event {
	return s.events
}

func (s *fakeSubscription) Close() error {
	s.closed.Store(true)
	return nil
}

type fakeSource struct {
	mu    sync.Mutex
	subs  []*fakeSubscription
	err   error
	calls atomic.Int32
}

func (s *fakeSource) Subscribe(context.Context) (push.Subscription, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	sub := &fakeSubscription{events: make(chan push.Event, 8)}
	s.mu.Lock()
	s.subs = append(s.subs, sub)
	s.mu.Unlock()
	return sub, nil
}

func (s *fakeSource) latest() *fakeSubscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.subs) == 0 {
		return nil
	}
	return s.subs[len(s.subs)-1]
}

func order(id int, status domain.Status) domain.Order {
	return domain.Order{ID: id, CustomerName: fmt.Sprintf("cliente %d", id), Status: status}
}

func mustUpdate(t *testing.T, payload string) domain.OrderUpdate {
	t.Helper()
	update, err := domain.ParseOrderUpdate([]byte(payload))
	require.NoError(t, err)
	return update
}

func statusUpdate(t *testing.T, id int, status domain.Status) domain.OrderUpdate {
	t.Helper()
	return mustUpdate(t, fmt.Sprintf(`{"id": %d, "status": %q}`, id, status))
}

func ids(orders []domain.Order) []int {
	out := make([]int, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}
