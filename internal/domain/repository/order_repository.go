package repository

import (
	"context"
	"errors"
	"time"

	"smarket/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// UserOrderTotals aggregates one user's orders for leaderboard queries.
type UserOrderTotals struct {
	UserID       uuid.UUID `json:"user_id"`
	OrderCount   int       `json:"order_count"`
	PaymentTotal float64   `json:"payment_total"`
}

// OrderRepository defines the standard operations for order persistence.
type OrderRepository interface {
	// Create persists a new order with its line items.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves a single order by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// FindByUser retrieves all orders placed by the user, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// FindAll retrieves every order, newest first.
	FindAll(ctx context.Context) ([]*entity.Order, error)

	// FindByStatus retrieves all orders in the given status.
	FindByStatus(ctx context.Context, status entity.OrderStatus) ([]*entity.Order, error)

	// FindDoneBetween retrieves done orders created in [from, to).
	FindDoneBetween(ctx context.Context, from, to time.Time) ([]*entity.Order, error)

	// CountByUser returns how many orders the user has placed.
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// SumPaymentsByUserAndStatus sums PaymentTotal over the user's orders
	// in the given status.
	SumPaymentsByUserAndStatus(ctx context.Context, userID uuid.UUID, status entity.OrderStatus) (float64, error)

	// SumPaymentsByUsersBetween sums PaymentTotal over orders of any of the
	// given users created in [from, to).
	SumPaymentsByUsersBetween(ctx context.Context, userIDs []uuid.UUID, from, to time.Time) (float64, error)

	// UpdateStatus sets the order status.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error

	// Delete removes an order from the storage.
	Delete(ctx context.Context, id uuid.UUID) error

	// TopUsersByOrderCount ranks users by number of orders, descending.
	TopUsersByOrderCount(ctx context.Context) ([]UserOrderTotals, error)

	// TopUsersByPaymentTotal ranks users by summed payment total, descending.
	TopUsersByPaymentTotal(ctx context.Context) ([]UserOrderTotals, error)
}
