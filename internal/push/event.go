// Package push delivers order-change events from the restaurant's single
// shared order stream. A payload is either an order object, to be merged
// into a feed, or a bare signal telling the feed to re-fetch.
package push

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"petiscaria/internal/domain"
)

type EventKind int

const (
	EventSignal EventKind = iota
	EventOrder
)

func (k EventKind) String() string {
	if k == EventOrder {
		return "order"
	}
	return "signal"
}

type Event struct {
	Kind   EventKind
	Update domain.OrderUpdate
}

// Decode classifies a raw push payload. Empty payloads and JSON that does not
// describe an order are signals; invalid JSON, or an order object with
// unusable fields, is an error and the caller should drop the message.
func Decode(data []byte) (Event, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Event{Kind: EventSignal}, nil
	}
	if !json.Valid(trimmed) {
		return Event{}, fmt.Errorf("push payload is not valid JSON")
	}
	if trimmed[0] != '{' {
		return Event{Kind: EventSignal}, nil
	}

	var wrapper struct {
		Order json.RawMessage `json:"order"`
	}
	if err := json.Unmarshal(trimmed, &wrapper); err == nil && len(wrapper.Order) > 0 && wrapper.Order[0] == '{' {
		trimmed = wrapper.Order
	}

	update, err := domain.ParseOrderUpdate(trimmed)
	if errors.Is(err, domain.ErrNotAnOrder) {
		return Event{Kind: EventSignal}, nil
	}
	if err != nil {
		return Event{}, err
	}
	return Event{Kind: EventOrder, Update: update}, nil
}
