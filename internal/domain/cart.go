package domain

import "time"

// Cart is a customer's in-progress selection. One active cart per customer,
// created lazily on first read and emptied, never deleted, by checkout.
type Cart struct {
	ID         int64     `db:"id" json:"id"`
	CustomerID int64     `db:"customer_id" json:"customer_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// CartItem as returned by the cart reader: joined with the product so
// UnitPrice always reflects the current catalog price, not the price at
// add-to-cart time.
type CartItem struct {
	ID          int64     `db:"id" json:"id"`
	CartID      int64     `db:"cart_id" json:"cart_id"`
	ProductID   int64     `db:"product_id" json:"product_id"`
	ProductName string    `db:"product_name" json:"product_name"`
	UnitPrice   int64     `db:"unit_price" json:"unit_price"`
	Quantity    int32     `db:"quantity" json:"quantity"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// CartSummary is the display estimate shown before checkout. Its tax rate is
// configured separately from the one charged at checkout (legacy discrepancy,
// see config.Checkout).
type CartSummary struct {
	ItemCount     int   `json:"item_count"`
	TotalQuantity int64 `json:"total_quantity"`
	Subtotal      int64 `json:"subtotal"`
	TaxAmount     int64 `json:"tax_amount"`
	Total         int64 `json:"total"`
}
