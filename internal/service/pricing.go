package service

import "github.com/KevinSaG/my-ecommerce-sub000/internal/domain"

// Totals of one checkout, in cents.
type Totals struct {
	Subtotal       int64
	TaxAmount      int64
	ShippingCost   int64
	DiscountAmount int64
	Total          int64
}

// taxFromBps computes a basis-point tax on a cent amount with integer math,
// truncating fractions of a cent.
func taxFromBps(amount, rateBps int64) int64 {
	return amount * rateBps / 10000
}

// CalculateTotals derives the checkout totals from the cart line items and
// the shipping method. Pickup at either plant ships free; delivery costs the
// flat fee. Line discounts are carried at zero, reserved for future use.
func CalculateTotals(items []domain.CartItem, shippingMethod string, taxRateBps, deliveryFeeCents int64) Totals {
	var subtotal int64
	for _, item := range items {
		subtotal += int64(item.Quantity) * item.UnitPrice
	}

	var shippingCost int64
	if !domain.IsPickupMethod(shippingMethod) {
		shippingCost = deliveryFeeCents
	}

	taxAmount := taxFromBps(subtotal, taxRateBps)

	var discountAmount int64

	return Totals{
		Subtotal:       subtotal,
		TaxAmount:      taxAmount,
		ShippingCost:   shippingCost,
		DiscountAmount: discountAmount,
		Total:          subtotal + taxAmount + shippingCost - discountAmount,
	}
}
