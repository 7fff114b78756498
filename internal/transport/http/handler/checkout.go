package handler

import (
	"github.com/KevinSaG/my-ecommerce-sub000/internal/domain"
	"github.com/KevinSaG/my-ecommerce-sub000/internal/service"
	"github.com/KevinSaG/my-ecommerce-sub000/internal/transport/http/middleware"
	"github.com/KevinSaG/my-ecommerce-sub000/pkg/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	logger          *zap.Logger
	validate        *validator.Validate
}

func NewCheckoutHandler(checkoutService service.CheckoutService, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		logger:          logger,
		validate:        validator.New(),
	}
}

func (h *CheckoutHandler) Checkout(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "not authenticated")
	}

	input := new(domain.CheckoutInput)
	if err := c.BodyParser(input); err != nil {
		h.logger.Warn(
			"failed to parse checkout body",
			zap.Error(err),
		)

		return fail(c, fiber.StatusBadRequest, "error parsing body")
	}

	if err := h.validate.Struct(input); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			return failValidation(c, utils.FormatValidationError(fieldErrs))
		}

		return fail(c, fiber.StatusBadRequest, "invalid request")
	}

	if input.ShippingAddress != nil {
		if err := h.validate.Struct(input.ShippingAddress); err != nil {
			if fieldErrs, ok := err.(validator.ValidationErrors); ok {
				return failValidation(c, utils.FormatValidationError(fieldErrs))
			}

			return fail(c, fiber.StatusBadRequest, "invalid shipping address")
		}
	}

	order, err := h.checkoutService.Checkout(c.UserContext(), identity, input)
	if err != nil {
		h.logger.Warn(
			"checkout failed",
			zap.Int64("customer_id", identity.CustomerID),
			zap.Error(err),
		)

		return failFromError(c, err)
	}

	return success(c, fiber.StatusCreated, order, "order created")
}
