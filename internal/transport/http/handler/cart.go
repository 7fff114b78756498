package handler

import (
	"github.com/KevinSaG/my-ecommerce-sub000/internal/service"
	"github.com/KevinSaG/my-ecommerce-sub000/internal/transport/http/middleware"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CartHandler struct {
	cartService service.CartService
	logger      *zap.Logger
}

func NewCartHandler(cartService service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		logger:      logger,
	}
}

type addCartItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int32 `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity int32 `json:"quantity"`
}

func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "not authenticated")
	}

	cart, items, err := h.cartService.GetCart(c.UserContext(), identity.CustomerID)
	if err != nil {
		return failFromError(c, err)
	}

	return success(c, fiber.StatusOK, fiber.Map{
		"cart":  cart,
		"items": items,
	}, "")
}

func (h *CartHandler) Summary(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "not authenticated")
	}

	summary, err := h.cartService.Summary(c.UserContext(), identity.CustomerID)
	if err != nil {
		return failFromError(c, err)
	}

	return success(c, fiber.StatusOK, summary, "")
}

func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "not authenticated")
	}

	input := new(addCartItemRequest)
	if err := c.BodyParser(input); err != nil {
		return fail(c, fiber.StatusBadRequest, "error parsing body")
	}

	if input.ProductID < 1 {
		return fail(c, fiber.StatusBadRequest, "product_id is required")
	}
	if input.Quantity < 1 {
		return fail(c, fiber.StatusBadRequest, "quantity must be at least 1")
	}

	if err := h.cartService.AddItem(c.UserContext(), identity.CustomerID, input.ProductID, input.Quantity); err != nil {
		h.logger.Warn(
			"add cart item failed",
			zap.Int64("customer_id", identity.CustomerID),
			zap.Int64("product_id", input.ProductID),
			zap.Error(err),
		)

		return failFromError(c, err)
	}

	return success(c, fiber.StatusCreated, nil, "item added to cart")
}

func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "not authenticated")
	}

	itemID, err := c.ParamsInt("id")
	if err != nil || itemID < 1 {
		return fail(c, fiber.StatusBadRequest, "invalid item id")
	}

	input := new(updateCartItemRequest)
	if err := c.BodyParser(input); err != nil {
		return fail(c, fiber.StatusBadRequest, "error parsing body")
	}

	if input.Quantity < 1 {
		return fail(c, fiber.StatusBadRequest, "quantity must be at least 1")
	}

	if err := h.cartService.UpdateItemQuantity(c.UserContext(), identity.CustomerID, int64(itemID), input.Quantity); err != nil {
		return failFromError(c, err)
	}

	return success(c, fiber.StatusOK, nil, "item updated")
}

func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "not authenticated")
	}

	itemID, err := c.ParamsInt("id")
	if err != nil || itemID < 1 {
		return fail(c, fiber.StatusBadRequest, "invalid item id")
	}

	if err := h.cartService.RemoveItem(c.UserContext(), identity.CustomerID, int64(itemID)); err != nil {
		return failFromError(c, err)
	}

	return success(c, fiber.StatusOK, nil, "item removed")
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "not authenticated")
	}

	if err := h.cartService.Clear(c.UserContext(), identity.CustomerID); err != nil {
		return failFromError(c, err)
	}

	return success(c, fiber.StatusOK, nil, "cart cleared")
}
