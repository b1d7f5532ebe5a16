package product

import (
	"context"
	"fmt"

	"petiscaria/internal/domain"
)

// catalogPageSize asks for the whole menu in one page.
const catalogPageSize = 9999

type CategoryGroup struct {
	Name     string
	Products []domain.Product
}

type productService struct {
	catalog Catalog
}

func NewService(catalog Catalog) Service {
	return &productService{catalog: catalog}
}

func (s *productService) GroupedProducts(ctx context.Context) ([]CategoryGroup, error) {
	products, err := s.catalog.ListProducts(ctx, catalogPageSize)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return GroupByCategory(products), nil
}

// GroupByCategory keeps categories in order of first appearance. Products
// without a category land in "Sem Categoria".
func GroupByCategory(products []domain.Product) []CategoryGroup {
	groups := []CategoryGroup{}
	index := make(map[string]int)
	for _, p := range products {
		name := p.CategoryName()
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, CategoryGroup{Name: name})
		}
		groups[i].Products = append(groups[i].Products, p)
	}
	return groups
}
