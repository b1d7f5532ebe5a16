package product

import (
	"net/http"

	"go.uber.org/zap"

	"petiscaria/internal/httpx"
)

type Controller struct {
	useCase CatalogUseCase
	logger  *zap.Logger
}

func NewController(useCase CatalogUseCase, logger *zap.Logger) *Controller {
	return &Controller{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *Controller) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	traceID, logger := httpx.Trace(c.logger)

	resp, err := c.useCase.ListCatalog(r.Context())
	if err != nil {
		logger.Error("list products failed", zap.Error(err))
		httpx.WriteError(w, logger, traceID, err)
		return
	}

	httpx.WriteJSON(w, logger, http.StatusOK, resp)
}
