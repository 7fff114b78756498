package service

import "errors"

var (
	ErrEmptyCart             = errors.New("cart is empty")
	ErrMissingShippingMethod = errors.New("shipping method is required")
	ErrMissingPaymentMethod  = errors.New("payment method is required")
	ErrNoShippingAddress     = errors.New("no shipping address available for delivery order")
)
