package feed

import (
	"slices"

	"petiscaria/internal/domain"
)

// Merge applies one order update to list and returns the resulting list;
// list itself is left untouched.
//
//   - status not tracked: any entry with the update's id is removed
//   - id already held: fields present in the update overwrite the entry in place
//   - otherwise: the order is prepended
//
// The result never holds two entries with the same id.
func Merge(list []domain.Order, update domain.OrderUpdate, tracked domain.StatusSet) ([]domain.Order, error) {
	if !tracked.Contains(update.Status) {
		return removeOrder(list, update.ID), nil
	}

	idx := indexOf(list, update.ID)
	if idx >= 0 {
		merged, err := update.ApplyTo(list[idx])
		if err != nil {
			return list, err
		}
		out := slices.Clone(list)
		out[idx] = merged
		return out, nil
	}

	incoming, err := update.Order()
	if err != nil {
		return list, err
	}
	out := make([]domain.Order, 0, len(list)+1)
	out = append(out, incoming)
	return append(out, list...), nil
}

// normalizeSnapshot keeps the tracked orders of a fetched list, first
// occurrence wins on duplicate ids.
func normalizeSnapshot(orders []domain.Order, tracked domain.StatusSet) []domain.Order {
	seen := make(map[int]struct{}, len(orders))
	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if !tracked.Contains(o.Status) {
			continue
		}
		if _, dup := seen[o.ID]; dup {
			continue
		}
		seen[o.ID] = struct{}{}
		out = append(out, o)
	}
	return out
}

func indexOf(list []domain.Order, id int) int {
	return slices.IndexFunc(list, func(o domain.Order) bool { return o.ID == id })
}

func removeOrder(list []domain.Order, id int) []domain.Order {
	if indexOf(list, id) < 0 {
		return list
	}
	return slices.DeleteFunc(slices.Clone(list), func(o domain.Order) bool { return o.ID == id })
}
