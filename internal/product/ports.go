package product

import (
	"context"

	"petiscaria/internal/domain"
)

type CatalogUseCase interface {
	ListCatalog(ctx context.Context) (*CatalogResponse, error)
}

type Service interface {
	GroupedProducts(ctx context.Context) ([]CategoryGroup, error)
}

// Catalog is the remote product listing.
type Catalog interface {
	ListProducts(ctx context.Context, pageSize int) ([]domain.Product, error)
}
