package handler

import (
	"errors"

	"github.com/KevinSaG/my-ecommerce-sub000/internal/repository"
	"github.com/KevinSaG/my-ecommerce-sub000/internal/service"
	"github.com/gofiber/fiber/v2"
)

func success(c *fiber.Ctx, status int, data any, message string) error {
	body := fiber.Map{
		"success": true,
		"data":    data,
	}
	if message != "" {
		body["message"] = message
	}

	return c.Status(status).JSON(body)
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func failValidation(c *fiber.Ctx, fields map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   "validation failed",
		"fields":  fields,
	})
}

// statusForError maps domain and persistence errors to HTTP codes. Unknown
// errors stay 500 and keep their message out of the response body.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrEmptyCart):
		return fiber.StatusUnprocessableEntity, "cart is empty"
	case errors.Is(err, service.ErrMissingShippingMethod):
		return fiber.StatusBadRequest, "shipping method is required"
	case errors.Is(err, service.ErrMissingPaymentMethod):
		return fiber.StatusBadRequest, "payment method is required"
	case errors.Is(err, service.ErrNoShippingAddress):
		return fiber.StatusBadRequest, "no shipping address available for delivery order"
	case errors.Is(err, repository.ErrAddressNotFound):
		return fiber.StatusNotFound, "address not found"
	case errors.Is(err, repository.ErrProductNotFound):
		return fiber.StatusNotFound, "product not found"
	case errors.Is(err, repository.ErrOrderNotFound):
		return fiber.StatusNotFound, "order not found"
	case errors.Is(err, repository.ErrCartItemNotFound):
		return fiber.StatusNotFound, "cart item not found"
	case errors.Is(err, repository.ErrDuplicateOrder):
		return fiber.StatusConflict, "order number collision, retry checkout"
	default:
		return fiber.StatusInternalServerError, "internal error"
	}
}

func failFromError(c *fiber.Ctx, err error) error {
	status, message := statusForError(err)
	return fail(c, status, message)
}
