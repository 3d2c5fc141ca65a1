package entity

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMode is the payment method chosen at checkout.
type PaymentMode string

const (
	PaymentOnDelivery PaymentMode = "onDelivery"
	PaymentWithCard   PaymentMode = "withCard"
	PaymentWithCoins  PaymentMode = "withCoins"
)

// IsValid checks if the PaymentMode is a valid value.
func (m PaymentMode) IsValid() bool {
	switch m {
	case PaymentOnDelivery, PaymentWithCard, PaymentWithCoins:
		return true
	default:
		return false
	}
}

// OrderStatus is the fulfilment state of an order. Transitions are one-way:
// pending -> done or pending -> cancelled, never back.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderDone      OrderStatus = "done"
	OrderCancelled OrderStatus = "cancelled"
)

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderPending, OrderDone, OrderCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the status may move to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return s == OrderPending && (next == OrderDone || next == OrderCancelled)
}

// OrderLine is one ordered product. Unit names the selected size variant for
// fashion/footwear products and is empty otherwise. TotalPrice is captured at
// order time and never recomputed, even if the product price changes later.
type OrderLine struct {
	ProductID  uuid.UUID `json:"product_id"`
	Quantity   int       `json:"quantity"`
	Unit       string    `json:"unit,omitempty"`
	UnitPrice  float64   `json:"unit_price"`
	TotalPrice float64   `json:"total_price"`
}

// Order is a placed order with its priced line items.
// DiscountApplied records the cumulative percentage points applied by the
// pricing pipeline, not a currency amount.
type Order struct {
	ID              uuid.UUID   `json:"id"`
	UserID          uuid.UUID   `json:"user_id"`
	OrderedProducts []OrderLine `json:"ordered_products"`
	Address         string      `json:"address"`
	PaymentMode     PaymentMode `json:"payment_mode"`
	PaymentTotal    float64     `json:"payment_total"`
	DiscountApplied float64     `json:"discount_applied"`
	Status          OrderStatus `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}
