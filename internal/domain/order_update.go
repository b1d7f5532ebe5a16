package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrNotAnOrder = errors.New("payload does not describe an order")

// OrderUpdate is a possibly partial order as received from the push channel.
// Only the fields present in the payload are applied to an existing order.
type OrderUpdate struct {
	ID     int
	Status Status
	raw    json.RawMessage
}

type updateHeader struct {
	ID     *int    `json:"id"`
	Status *Status `json:"status"`
}

// ParseOrderUpdate requires a positive id and a known status; everything
// else in the object is optional.
func ParseOrderUpdate(data []byte) (OrderUpdate, error) {
	var header updateHeader
	if err := json.Unmarshal(data, &header); err != nil {
		return OrderUpdate{}, fmt.Errorf("decoding order update: %w", err)
	}
	if header.ID == nil || *header.ID <= 0 || header.Status == nil {
		return OrderUpdate{}, ErrNotAnOrder
	}
	return OrderUpdate{ID: *header.ID, Status: *header.Status, raw: append(json.RawMessage(nil), data...)}, nil
}

// UpdateFromOrder wraps a complete order, e.g. one returned by a PATCH.
func UpdateFromOrder(o Order) (OrderUpdate, error) {
	raw, err := json.Marshal(o)
	if err != nil {
		return OrderUpdate{}, fmt.Errorf("encoding order %d: %w", o.ID, err)
	}
	return OrderUpdate{ID: o.ID, Status: o.Status, raw: raw}, nil
}

// StatusChange is an update that carries only the id and the new status, so
// applying it leaves every other field of the held order alone.
func StatusChange(id int, status Status) OrderUpdate {
	raw, _ := json.Marshal(updateHeader{ID: &id, Status: &status})
	return OrderUpdate{ID: id, Status: status, raw: raw}
}

// ApplyTo overlays the update on existing; incoming fields win.
func (u OrderUpdate) ApplyTo(existing Order) (Order, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(u.raw, &fields); err != nil {
		return existing, fmt.Errorf("applying update to order %d: %w", u.ID, err)
	}

	merged := existing.Clone()
	if _, ok := fields["lineItems"]; ok {
		// decoding into a populated slice would blend old and new items
		merged.LineItems = nil
	}
	if err := json.Unmarshal(u.raw, &merged); err != nil {
		return existing, fmt.Errorf("applying update to order %d: %w", u.ID, err)
	}
	return merged, nil
}

func (u OrderUpdate) Order() (Order, error) {
	var o Order
	if err := json.Unmarshal(u.raw, &o); err != nil {
		return Order{}, fmt.Errorf("decoding order %d: %w", u.ID, err)
	}
	return o, nil
}
