package domain

import "github.com/shopspring/decimal"

const UncategorizedName = "Sem Categoria"

type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    *Category       `json:"category,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty"`
}

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (p Product) CategoryName() string {
	if p.Category == nil || p.Category.Name == "" {
		return UncategorizedName
	}
	return p.Category.Name
}
