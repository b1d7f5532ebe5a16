package feed

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"petiscaria/internal/domain"
	apperrors "petiscaria/internal/errors"
	"petiscaria/internal/push"
)

type StatusUpdater interface {
	UpdateStatus(ctx context.Context, id int, status domain.Status) (*domain.Order, error)
}

// Kitchen is the feed of orders waiting to be cooked.
type Kitchen struct {
	*Provider
	updater StatusUpdater
}

func NewKitchen(lister OrderLister, updater StatusUpdater, source push.Source, opts Options, logger *zap.Logger) *Kitchen {
	return &Kitchen{
		Provider: NewProvider(KitchenPolicy, lister, source, opts, logger),
		updater:  updater,
	}
}

// Advance moves a held order one step forward. Only the status is merged
// into the feed, whatever the PATCH answers; other fields arrive with the
// next fetch or push. An order that becomes ready leaves the kitchen list
// at once.
func (k *Kitchen) Advance(ctx context.Context, id int) (*domain.Order, error) {
	current, ok := k.Find(id)
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("order %d is not on the kitchen feed", id))
	}

	next := current.Status.Next()
	if _, err := k.updater.UpdateStatus(ctx, id, next); err != nil {
		k.logger.Error("advancing order", zap.Int("orderId", id), zap.String("to", string(next)), zap.Error(err))
		return nil, fmt.Errorf("advancing order %d: %w", id, err)
	}

	if err := k.Apply(domain.StatusChange(id, next)); err != nil {
		k.logger.Warn("merging advanced order", zap.Int("orderId", id), zap.Error(err))
	}

	advanced, held := k.Find(id)
	if !held {
		advanced = current.Clone()
		advanced.Status = next
	}

	k.logger.Info("order advanced", zap.Int("orderId", id), zap.String("from", string(current.Status)), zap.String("to", string(next)))
	return &advanced, nil
}
