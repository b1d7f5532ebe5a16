package dto

import (
	"github.com/shopspring/decimal"

	"petiscaria/internal/domain"
)

type CartResponse struct {
	Lines []CartLineResponse `json:"lines"`
	Count int                `json:"count"`
	Total decimal.Decimal    `json:"total"`
}

type CartLineResponse struct {
	ProductID int             `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	Notes     string          `json:"notes"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type AddCartLineRequest struct {
	ProductID int             `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	Notes     string          `json:"notes"`
}

// CartLineKeyRequest addresses a line by product and notes. Quantity is only
// read by the set-quantity route.
type CartLineKeyRequest struct {
	ProductID int    `json:"productId"`
	Notes     string `json:"notes"`
	Quantity  int    `json:"quantity"`
}

type CheckoutRequest struct {
	CustomerName string `json:"customerName"`
	Table        string `json:"table"`
}

func NewCartResponse(lines []domain.CartLine) CartResponse {
	resp := CartResponse{Lines: make([]CartLineResponse, len(lines)), Total: decimal.Zero}
	for i, l := range lines {
		sub := l.Subtotal()
		resp.Lines[i] = CartLineResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			Notes:     l.Notes,
			Subtotal:  sub,
		}
		resp.Count += l.Quantity
		resp.Total = resp.Total.Add(sub)
	}
	return resp
}
