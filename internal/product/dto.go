package product

import "github.com/shopspring/decimal"

type CatalogResponse struct {
	Categories []CategoryDTO `json:"categories"`
	Count      int           `json:"count"`
}

type CategoryDTO struct {
	Name     string       `json:"name"`
	Products []ProductDTO `json:"products"`
}

type ProductDTO struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl,omitempty"`
}
