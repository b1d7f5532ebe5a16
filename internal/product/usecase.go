package product

import (
	"context"
)

type catalogUseCase struct {
	service Service
}

func NewCatalogUseCase(service Service) CatalogUseCase {
	return &catalogUseCase{service: service}
}

func (uc *catalogUseCase) ListCatalog(ctx context.Context) (*CatalogResponse, error) {
	groups, err := uc.service.GroupedProducts(ctx)
	if err != nil {
		return nil, err
	}

	resp := &CatalogResponse{Categories: make([]CategoryDTO, 0, len(groups))}
	for _, g := range groups {
		products := make([]ProductDTO, 0, len(g.Products))
		for _, p := range g.Products {
			products = append(products, ProductDTO{
				ID:          p.ID,
				Name:        p.Name,
				Description: p.Description,
				Price:       p.Price,
				ImageURL:    p.ImageURL,
			})
		}
		resp.Categories = append(resp.Categories, CategoryDTO{Name: g.Name, Products: products})
		resp.Count += len(products)
	}

	return resp, nil
}
