package handler

import (
	"github.com/KevinSaG/my-ecommerce-sub000/internal/service"
	"github.com/KevinSaG/my-ecommerce-sub000/internal/transport/http/middleware"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type OrderHandler struct {
	orderService service.OrderService
	logger       *zap.Logger
}

func NewOrderHandler(orderService service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

func (h *OrderHandler) FindByID(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "not authenticated")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return fail(c, fiber.StatusBadRequest, "invalid order id")
	}

	order, err := h.orderService.GetOrder(c.UserContext(), identity.CustomerID, int64(id))
	if err != nil {
		return failFromError(c, err)
	}

	return success(c, fiber.StatusOK, order, "")
}

func (h *OrderHandler) List(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "not authenticated")
	}

	limit := int64(c.QueryInt("limit", 20))
	offset := int64(c.QueryInt("offset", 0))

	orders, total, err := h.orderService.ListOrders(c.UserContext(), identity.CustomerID, limit, offset)
	if err != nil {
		h.logger.Warn(
			"list orders failed",
			zap.Int64("customer_id", identity.CustomerID),
			zap.Error(err),
		)

		return failFromError(c, err)
	}

	return success(c, fiber.StatusOK, fiber.Map{
		"orders": orders,
		"total":  total,
	}, "")
}
