package handler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/KevinSaG/my-ecommerce-sub000/internal/repository"
	"github.com/KevinSaG/my-ecommerce-sub000/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{service.ErrEmptyCart, fiber.StatusUnprocessableEntity},
		{service.ErrMissingShippingMethod, fiber.StatusBadRequest},
		{service.ErrMissingPaymentMethod, fiber.StatusBadRequest},
		{service.ErrNoShippingAddress, fiber.StatusBadRequest},
		{repository.ErrAddressNotFound, fiber.StatusNotFound},
		{repository.ErrProductNotFound, fiber.StatusNotFound},
		{repository.ErrOrderNotFound, fiber.StatusNotFound},
		{repository.ErrCartItemNotFound, fiber.StatusNotFound},
		{repository.ErrDuplicateOrder, fiber.StatusConflict},
		{errors.New("database on fire"), fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		status, _ := statusForError(tc.err)
		assert.Equal(t, tc.status, status, "error: %v", tc.err)
	}
}

func TestStatusForError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("shipping address 7: %w", repository.ErrAddressNotFound)

	status, _ := statusForError(wrapped)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestStatusForError_HidesInternalDetail(t *testing.T) {
	_, message := statusForError(errors.New("pq: connection refused"))
	assert.Equal(t, "internal error", message)
}
