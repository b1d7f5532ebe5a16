package order

import (
	"go.uber.org/zap"

	"petiscaria/internal/order/controller"
	"petiscaria/internal/order/usecase"
)

func NewModule(api usecase.OrderAPI, logger *zap.Logger) *controller.OrderController {
	uc := usecase.NewOrderActionsUseCase(api, logger)
	return controller.NewOrderController(uc, logger)
}
