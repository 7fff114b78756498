package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// Shipping methods. Pickup variants collect at one of the two plants and
// carry no shipping cost.
const (
	ShippingMethodDelivery         = "delivery"
	ShippingMethodPickupPlantNorth = "pickup_plant_north"
	ShippingMethodPickupPlantSouth = "pickup_plant_south"
)

// Plant locations a line item can be fulfilled from.
const (
	PlantNorth = "plant_north"
	PlantSouth = "plant_south"
)

func IsPickupMethod(method string) bool {
	return method == ShippingMethodPickupPlantNorth || method == ShippingMethodPickupPlantSouth
}

// PickupLocationFor maps a pickup shipping method to its plant tag.
func PickupLocationFor(method string) string {
	switch method {
	case ShippingMethodPickupPlantNorth:
		return PlantNorth
	case ShippingMethodPickupPlantSouth:
		return PlantSouth
	default:
		return ""
	}
}

// Order is created exactly once per successful checkout and is immutable from
// the storefront's side afterwards. All amounts are cents.
type Order struct {
	ID                int64         `db:"id" json:"id"`
	OrderNumber       string        `db:"order_number" json:"order_number"`
	CustomerID        int64         `db:"customer_id" json:"customer_id"`
	Status            OrderStatus   `db:"status" json:"status"`
	PaymentStatus     PaymentStatus `db:"payment_status" json:"payment_status"`
	Subtotal          int64         `db:"subtotal" json:"subtotal"`
	TaxAmount         int64         `db:"tax_amount" json:"tax_amount"`
	ShippingCost      int64         `db:"shipping_cost" json:"shipping_cost"`
	DiscountAmount    int64         `db:"discount_amount" json:"discount_amount"`
	Total             int64         `db:"total" json:"total"`
	PaymentMethod     string        `db:"payment_method" json:"payment_method"`
	ShippingMethod    string        `db:"shipping_method" json:"shipping_method"`
	ShippingAddressID *int64        `db:"shipping_address_id" json:"shipping_address_id,omitempty"`
	PickupLocation    *string       `db:"pickup_location" json:"pickup_location,omitempty"`
	CustomerNotes     *string       `db:"customer_notes" json:"customer_notes,omitempty"`
	Items             []OrderItem   `db:"-" json:"items"`
	CreatedAt         time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time     `db:"updated_at" json:"updated_at"`
}

// OrderItem snapshots the product at checkout time: name and unit price are
// copied so later catalog edits do not rewrite history.
type OrderItem struct {
	ID                 int64  `db:"id" json:"id"`
	OrderID            int64  `db:"order_id" json:"order_id"`
	ProductID          int64  `db:"product_id" json:"product_id"`
	Name               string `db:"name" json:"name"`
	Quantity           int32  `db:"quantity" json:"quantity"`
	UnitPrice          int64  `db:"unit_price" json:"unit_price"`
	DiscountPercentage int32  `db:"discount_percentage" json:"discount_percentage"`
	Subtotal           int64  `db:"subtotal" json:"subtotal"`
	PlantLocation      string `db:"plant_location" json:"plant_location"`
}

// CheckoutInput is the single synchronous checkout request.
type CheckoutInput struct {
	ShippingMethod    string        `json:"shipping_method" validate:"required,oneof=delivery pickup_plant_north pickup_plant_south"`
	ShippingAddressID *int64        `json:"shipping_address_id"`
	ShippingAddress   *AddressInput `json:"shipping_address"`
	PickupLocation    string        `json:"pickup_location"`
	PaymentMethod     string        `json:"payment_method" validate:"required"`
	CustomerNotes     string        `json:"customer_notes"`
}
