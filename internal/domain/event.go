package domain

type CustomerRegisteredEvent struct {
	CustomerID int64  `json:"customer_id"`
	Email      string `json:"email"`
}

type OrderCreatedEventItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int32 `json:"quantity"`
}

type OrderCreatedEvent struct {
	OrderID     int64                   `json:"order_id"`
	OrderNumber string                  `json:"order_number"`
	CustomerID  int64                   `json:"customer_id"`
	Email       string                  `json:"email"`
	Total       int64                   `json:"total"`
	Items       []OrderCreatedEventItem `json:"items"`
}
