// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"time"

	"smarket/internal/domain/entity"
	"smarket/internal/domain/repository"

	"github.com/google/uuid"
)

// OrderUsecase defines the interface for order-related business operations.
type OrderUsecase interface {
	// PlaceOrder validates, prices and persists a new order, decrementing
	// stock and crediting coins in the same transaction.
	PlaceOrder(ctx context.Context, userID uuid.UUID, input *PlaceOrderInput) (*entity.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	ListUserOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)
	ListAllOrders(ctx context.Context) ([]*entity.Order, error)
	ListOrdersByStatus(ctx context.Context, status entity.OrderStatus) ([]*entity.Order, error)
	// UpdateStatus moves a pending order to done or cancelled. Completion
	// bumps each line product's sale counter.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) (*entity.Order, error)
	// DeleteOrder removes an order. Non-admin callers may only delete their
	// own pending orders.
	DeleteOrder(ctx context.Context, callerID uuid.UUID, isAdmin bool, id uuid.UUID) error
	// MonthlyDoneOrders reports the done orders of one calendar month.
	MonthlyDoneOrders(ctx context.Context, year int, month time.Month) ([]*entity.Order, error)
	TopUsersByOrderCount(ctx context.Context) ([]repository.UserOrderTotals, error)
	TopUsersByPaymentTotal(ctx context.Context) ([]repository.UserOrderTotals, error)
}

// --- Input DTOs ---

// OrderLineInput is one requested product at checkout. Unit selects the size
// variant for fashion and footwear products.
type OrderLineInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
	Unit      string    `json:"unit"`
}

// PlaceOrderInput defines the data required to place an order.
type PlaceOrderInput struct {
	Lines       []OrderLineInput   `json:"ordered_products" validate:"required,min=1,dive"`
	Address     string             `json:"address" validate:"required"`
	PaymentMode entity.PaymentMode `json:"payment_mode" validate:"required"`
}
