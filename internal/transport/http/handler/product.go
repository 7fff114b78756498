package handler

import (
	"github.com/KevinSaG/my-ecommerce-sub000/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

func NewProductHandler(productService service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

func (h *ProductHandler) FindByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return fail(c, fiber.StatusBadRequest, "invalid product id")
	}

	product, err := h.productService.GetProduct(c.UserContext(), int64(id))
	if err != nil {
		return failFromError(c, err)
	}

	return success(c, fiber.StatusOK, product, "")
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	limit := int64(c.QueryInt("limit", 20))
	offset := int64(c.QueryInt("offset", 0))
	search := c.Query("search")
	category := c.Query("category")

	products, total, err := h.productService.ListProducts(c.UserContext(), limit, offset, search, category)
	if err != nil {
		h.logger.Warn(
			"list products failed",
			zap.Error(err),
		)

		return failFromError(c, err)
	}

	return success(c, fiber.StatusOK, fiber.Map{
		"products": products,
		"total":    total,
	}, "")
}
