package domain

import "github.com/shopspring/decimal"

// CartLine is an order line being assembled on the device. Two lines for the
// same product with different notes are distinct entries.
type CartLine struct {
	ProductID int             `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	Notes     string          `json:"notes"`
}

func (l CartLine) SameKey(productID int, notes string) bool {
	return l.ProductID == productID && l.Notes == notes
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
