package domain

import "time"

type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// String representation (for logging)
func (s OrderStatus) String() string {
	return string(s)
}

type PaymentMethod string

const (
	PaymentUPI  PaymentMethod = "upi"
	PaymentCard PaymentMethod = "card"
	PaymentGPay PaymentMethod = "gpay"
	PaymentCOD  PaymentMethod = "cod"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentUPI, PaymentCard, PaymentGPay, PaymentCOD:
		return true
	}
	return false
}

// OrderItem is a frozen copy of a cart line taken when the order was placed.
type OrderItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

type Order struct {
	ID            string        `json:"id"`
	CreatedAt     time.Time     `json:"date"`
	Items         []OrderItem   `json:"items"`
	Subtotal      int64         `json:"subtotal"`
	DeliveryFee   int64         `json:"delivery_fee"`
	PlatformFee   int64         `json:"platform_fee"`
	Total         int64         `json:"total"`
	Status        OrderStatus   `json:"status"`
	MartName      string        `json:"mart_name"`
	PaymentMethod PaymentMethod `json:"payment_method,omitempty"`
}
