package product

import (
	"go.uber.org/zap"
)

func NewModule(catalog Catalog, logger *zap.Logger) *Controller {
	svc := NewService(catalog)
	uc := NewCatalogUseCase(svc)
	return NewController(uc, logger)
}
