// Package service defines domain-facing service ports implemented by the
// infrastructure layer.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event types carried on the order stream.
const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderPlacedEvent is emitted after an order and all of its side effects
// (stock decrements, coin credit) have been committed.
type OrderPlacedEvent struct {
	OrderID         uuid.UUID       `json:"order_id"`
	UserID          uuid.UUID       `json:"user_id"`
	PaymentMode     string          `json:"payment_mode"`
	PaymentTotal    decimal.Decimal `json:"payment_total"`
	DiscountApplied decimal.Decimal `json:"discount_applied"`
	CoinsEarned     decimal.Decimal `json:"coins_earned"`
	LineCount       int             `json:"line_count"`
	PlacedAt        time.Time       `json:"placed_at"`
}

// OrderStatusChangedEvent is emitted when an order moves between lifecycle
// states, e.g. pending to done.
type OrderStatusChangedEvent struct {
	OrderID   uuid.UUID `json:"order_id"`
	UserID    uuid.UUID `json:"user_id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	ChangedAt time.Time `json:"changed_at"`
}

// EventPublisher publishes domain events to the message stream. Publishing is
// fire-and-forget from the caller's point of view: a slow or unavailable
// broker must never fail the business operation that produced the event.
type EventPublisher interface {
	// Publish enqueues an event for asynchronous delivery. The key is used
	// for partitioning so events for one order stay ordered.
	Publish(ctx context.Context, eventType string, key uuid.UUID, payload any) error
}
