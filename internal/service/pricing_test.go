package service

import (
	"testing"

	"github.com/KevinSaG/my-ecommerce-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCalculateTotals_Delivery(t *testing.T) {
	items := []domain.CartItem{
		{ProductID: 1, Quantity: 2, UnitPrice: 4000},
		{ProductID: 2, Quantity: 1, UnitPrice: 5000},
	}

	totals := CalculateTotals(items, domain.ShippingMethodDelivery, 1500, 1000)

	assert.Equal(t, int64(13000), totals.Subtotal)
	assert.Equal(t, int64(1950), totals.TaxAmount)
	assert.Equal(t, int64(1000), totals.ShippingCost)
	assert.Equal(t, int64(0), totals.DiscountAmount)
	assert.Equal(t, int64(15950), totals.Total)
}

func TestCalculateTotals_PickupShipsFree(t *testing.T) {
	items := []domain.CartItem{
		{ProductID: 1, Quantity: 2, UnitPrice: 4000},
		{ProductID: 2, Quantity: 1, UnitPrice: 5000},
	}

	for _, method := range []string{domain.ShippingMethodPickupPlantNorth, domain.ShippingMethodPickupPlantSouth} {
		totals := CalculateTotals(items, method, 1500, 1000)

		assert.Equal(t, int64(13000), totals.Subtotal)
		assert.Equal(t, int64(0), totals.ShippingCost)
		assert.Equal(t, int64(14950), totals.Total)
	}
}

func TestCalculateTotals_EmptyItems(t *testing.T) {
	totals := CalculateTotals(nil, domain.ShippingMethodDelivery, 1500, 1000)

	assert.Equal(t, int64(0), totals.Subtotal)
	assert.Equal(t, int64(0), totals.TaxAmount)
	assert.Equal(t, int64(1000), totals.ShippingCost)
	assert.Equal(t, int64(1000), totals.Total)
}

func TestTaxFromBps_TruncatesFractionalCents(t *testing.T) {
	// 99 * 1500 / 10000 = 14.85, truncated to 14
	assert.Equal(t, int64(14), taxFromBps(99, 1500))
	assert.Equal(t, int64(0), taxFromBps(0, 1500))
	assert.Equal(t, int64(11), taxFromBps(99, 1200))
}
