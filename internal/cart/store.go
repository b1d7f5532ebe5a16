// Package cart holds the order being assembled on a staff device and turns
// it into a remote order at checkout.
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"petiscaria/internal/domain"
	apperrors "petiscaria/internal/errors"
	"petiscaria/internal/storage"
)

// Store is the cart. Every mutation writes the full list back to storage
// before returning.
type Store struct {
	mu      sync.Mutex
	lines   []domain.CartLine
	storage storage.Store
	logger  *zap.Logger
}

// NewStore hydrates the cart from storage. A missing or unreadable entry
// yields an empty cart.
func NewStore(ctx context.Context, st storage.Store, logger *zap.Logger) *Store {
	s := &Store{
		lines:   []domain.CartLine{},
		storage: st,
		logger:  logger.With(zap.String("component", "cart")),
	}

	raw, ok, err := st.Get(ctx, storage.KeyCart)
	switch {
	case err != nil:
		s.logger.Warn("reading saved cart", zap.Error(err))
	case !ok || raw == "":
	default:
		var saved []domain.CartLine
		if err := json.Unmarshal([]byte(raw), &saved); err != nil {
			s.logger.Warn("discarding unreadable saved cart", zap.Error(err))
			break
		}
		if saved != nil {
			s.lines = saved
		}
	}
	return s
}

func (s *Store) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.lines)
}

// Add increments the quantity of the line with the same product and notes,
// or appends a new line. A quantity below one is rejected and leaves the
// cart as it was.
func (s *Store) Add(ctx context.Context, line domain.CartLine) ([]domain.CartLine, error) {
	if line.Quantity < 1 {
		return s.Lines(), apperrors.NewValidationError("invalid quantity", apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be at least 1",
		})
	}
	return s.mutate(ctx, func(lines []domain.CartLine) []domain.CartLine {
		if idx := s.index(lines, line.ProductID, line.Notes); idx >= 0 {
			lines[idx].Quantity += line.Quantity
			return lines
		}
		return append(lines, line)
	})
}

func (s *Store) Remove(ctx context.Context, productID int, notes string) ([]domain.CartLine, error) {
	return s.mutate(ctx, func(lines []domain.CartLine) []domain.CartLine {
		return slices.DeleteFunc(lines, func(l domain.CartLine) bool { return l.SameKey(productID, notes) })
	})
}

// SetQuantity never lets a line drop below one; use Remove to delete it.
func (s *Store) SetQuantity(ctx context.Context, productID int, notes string, quantity int) ([]domain.CartLine, error) {
	if quantity < 1 {
		quantity = 1
	}
	return s.mutate(ctx, func(lines []domain.CartLine) []domain.CartLine {
		if idx := s.index(lines, productID, notes); idx >= 0 {
			lines[idx].Quantity = quantity
		}
		return lines
	})
}

// Release takes submitted lines out of the cart, subtracting their
// quantities. Lines added or raised after the submission keep the difference.
func (s *Store) Release(ctx context.Context, submitted []domain.CartLine) ([]domain.CartLine, error) {
	return s.mutate(ctx, func(lines []domain.CartLine) []domain.CartLine {
		for _, sub := range submitted {
			if idx := s.index(lines, sub.ProductID, sub.Notes); idx >= 0 {
				lines[idx].Quantity -= sub.Quantity
			}
		}
		return slices.DeleteFunc(lines, func(l domain.CartLine) bool { return l.Quantity < 1 })
	})
}

func (s *Store) Clear(ctx context.Context) error {
	_, err := s.mutate(ctx, func([]domain.CartLine) []domain.CartLine {
		return []domain.CartLine{}
	})
	return err
}

func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Count is the number of units in the cart, not the number of lines.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

// mutate applies fn to a copy of the lines, keeps the result and persists
// it. A failed write is returned but the in-memory cart keeps the change.
func (s *Store) mutate(ctx context.Context, fn func([]domain.CartLine) []domain.CartLine) ([]domain.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = fn(slices.Clone(s.lines))
	out := slices.Clone(s.lines)

	if err := s.persist(ctx); err != nil {
		s.logger.Error("saving cart", zap.Error(err))
		return out, err
	}
	return out, nil
}

func (s *Store) persist(ctx context.Context) error {
	data, err := json.Marshal(s.lines)
	if err != nil {
		return fmt.Errorf("encoding cart: %w", err)
	}
	if err := s.storage.Set(ctx, storage.KeyCart, string(data)); err != nil {
		return fmt.Errorf("saving cart: %w", err)
	}
	return nil
}

func (s *Store) index(lines []domain.CartLine, productID int, notes string) int {
	return slices.IndexFunc(lines, func(l domain.CartLine) bool { return l.SameKey(productID, notes) })
}
