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

type AddressHandler struct {
	addressService service.AddressService
	logger         *zap.Logger
	validate       *validator.Validate
}

func NewAddressHandler(addressService service.AddressService, logger *zap.Logger) *AddressHandler {
	return &AddressHandler{
		addressService: addressService,
		logger:         logger,
		validate:       validator.New(),
	}
}

func (h *AddressHandler) Create(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "not authenticated")
	}

	input := new(domain.AddressInput)
	if err := c.BodyParser(input); err != nil {
		return fail(c, fiber.StatusBadRequest, "error parsing body")
	}

	if err := h.validate.Struct(input); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			return failValidation(c, utils.FormatValidationError(fieldErrs))
		}

		return fail(c, fiber.StatusBadRequest, "invalid request")
	}

	address, err := h.addressService.CreateAddress(c.UserContext(), identity.CustomerID, input)
	if err != nil {
		h.logger.Warn(
			"create address failed",
			zap.Int64("customer_id", identity.CustomerID),
			zap.Error(err),
		)

		return failFromError(c, err)
	}

	return success(c, fiber.StatusCreated, address, "address created")
}

func (h *AddressHandler) List(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "not authenticated")
	}

	addresses, err := h.addressService.ListAddresses(c.UserContext(), identity.CustomerID)
	if err != nil {
		return failFromError(c, err)
	}

	return success(c, fiber.StatusOK, addresses, "")
}

func (h *AddressHandler) GetDefault(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFromCtx(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "not authenticated")
	}

	address, err := h.addressService.GetDefaultAddress(c.UserContext(), identity.CustomerID)
	if err != nil {
		return failFromError(c, err)
	}

	return success(c, fiber.StatusOK, address, "")
}
