package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatusPlaced is the status every new order starts in.
const OrderStatusPlaced = "Order Placed"

// Supported payment methods.
const (
	PaymentUPI = "upi"
	PaymentCOD = "cod"
)

// ValidPaymentMethod reports whether method is one of the accepted payment methods.
func ValidPaymentMethod(method string) bool {
	switch method {
	case PaymentUPI, PaymentCOD:
		return true
	}
	return false
}

// Order represents a placed order. Product and UserInfo are snapshots taken at
// order time, not live references.
type Order struct {
	ID            uuid.UUID       `json:"-" db:"id"`
	OrderID       string          `json:"orderId" db:"order_id"`
	Product       ProductSnapshot `json:"product" db:"product"`
	UserInfo      CustomerInfo    `json:"userInfo" db:"user_info"`
	PaymentMethod string          `json:"paymentMethod" db:"payment_method"`
	Status        string          `json:"status" db:"status"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
}

// ProductSnapshot captures the ordered product as it was at checkout.
type ProductSnapshot struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Image         string  `json:"image"`
	BrandName     string  `json:"brandName"`
	SelectedColor string  `json:"selectedColor"`
	SelectedSize  string  `json:"selectedSize"`
	Category      string  `json:"category"`
}

// CustomerInfo captures the customer and delivery details at checkout.
type CustomerInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// OrderRequest represents the request payload for creating an order.
// Pointers distinguish an omitted snapshot from an empty one.
type OrderRequest struct {
	Product       *ProductSnapshot `json:"product"`
	UserInfo      *CustomerInfo    `json:"userInfo"`
	PaymentMethod string           `json:"paymentMethod"`
}

// OrderFilter narrows an order listing.
type OrderFilter struct {
	// UserEmail matches UserInfo.Email case-insensitively when non-empty.
	UserEmail string
}

// StatusUpdateRequest represents the request payload for changing an order status.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}
