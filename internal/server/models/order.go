package models

import "time"

// Order statuses. An order starts as processing and only ever changes status;
// items and total are frozen at creation.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// OrderLine is a frozen copy of a cart line taken at checkout time.
type OrderLine struct {
	ProductID int64   `json:"productId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

// ShippingDetails is the delivery address captured at checkout.
type ShippingDetails struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// PaymentDetails keeps only what is safe to store: the last four digits and
// the expiry. The full card number must never reach the repositories.
type PaymentDetails struct {
	CardLast4  string `json:"cardLast4"`
	CardExpiry string `json:"cardExpiry"`
}

// Order is an immutable snapshot of a cart plus shipping/payment metadata.
type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Items           []OrderLine     `json:"items"`
	ShippingDetails ShippingDetails `json:"shippingDetails"`
	TotalAmount     float64         `json:"totalAmount"`
	PaymentDetails  PaymentDetails  `json:"paymentDetails"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
}
