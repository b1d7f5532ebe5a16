package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// RecentItemWindow is how long a freshly added line item stays highlighted
// on the kitchen board.
const RecentItemWindow = 30 * time.Second

type Order struct {
	ID           int             `json:"id"`
	CustomerName string          `json:"customerName"`
	Table        TableRef        `json:"table,omitempty"`
	Status       Status          `json:"status"`
	LineItems    []LineItem      `json:"lineItems"`
	Total        decimal.Decimal `json:"total"`
	CreatedAt    time.Time       `json:"createdAt,omitzero"`
}

type LineItem struct {
	ID       int        `json:"id,omitempty"`
	Product  ProductRef `json:"product"`
	Quantity int        `json:"quantity"`
	Notes    string     `json:"notes,omitempty"`
	AddedAt  time.Time  `json:"addedAt,omitzero"`
}

type ProductRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (li LineItem) IsRecent(now time.Time) bool {
	if li.AddedAt.IsZero() {
		return false
	}
	return now.Sub(li.AddedAt) < RecentItemWindow
}

// Clone copies the order deeply enough that decoding into the copy never
// touches the original's line items.
func (o Order) Clone() Order {
	o.LineItems = slices.Clone(o.LineItems)
	return o
}

// TableRef identifies a physical table. The API sends it as a string or a
// number, or omits it for takeout orders.
type TableRef string

func (t *TableRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = TableRef(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("table must be a string or a number: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		*t = TableRef(strconv.FormatInt(i, 10))
		return nil
	}
	*t = TableRef(n.String())
	return nil
}

// NewOrder is what checkout submits to create an order.
type NewOrder struct {
	CustomerName string         `json:"customerName"`
	Table        TableRef       `json:"table,omitempty"`
	Items        []NewOrderItem `json:"items"`
}

type NewOrderItem struct {
	ProductID int    `json:"productId"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes,omitempty"`
}
