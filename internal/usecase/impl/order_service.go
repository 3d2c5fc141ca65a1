// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"smarket/config"
	"smarket/internal/domain/entity"
	domainerrors "smarket/internal/domain/errors"
	"smarket/internal/domain/pricing"
	"smarket/internal/domain/repository"
	"smarket/internal/domain/service"
	"smarket/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const lowStockMessageFormat = "Product %s is running out of stock."

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager        repository.TransactionManager
	notificationRepo repository.NotificationRepository
	publisher        service.EventPublisher
	cfg              *config.Config
	logger           *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(
	txManager repository.TransactionManager,
	notificationRepo repository.NotificationRepository,
	publisher service.EventPublisher,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.OrderUsecase {
	return &orderService{
		txManager:        txManager,
		notificationRepo: notificationRepo,
		publisher:        publisher,
		cfg:              cfg,
		logger:           logger,
	}
}

// PlaceOrder validates, prices and persists a new order. Every mutation runs
// in one transaction: stock decrements, the order row, the coin credit and the
// group discount consumption commit together or not at all. Notifications and
// the stream event fire only after the commit and never fail the order.
func (srv *orderService) PlaceOrder(ctx context.Context, userID uuid.UUID, input *usecase.PlaceOrderInput) (*entity.Order, error) {
	srv.logger.Info("Placing order", "userID", userID, "lines", len(input.Lines))

	if len(input.Lines) == 0 || input.Address == "" || !input.PaymentMode.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "ordered products, address and payment mode are required")
	}

	var (
		order           *entity.Order
		quote           pricing.Quote
		lowStockAlerts  []string
		notifyUserCoins decimal.Decimal
	)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.NewProductRepository()
		userRepo := repoFactory.NewUserRepository()
		orderRepo := repoFactory.NewOrderRepository()

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "user not found")
			}

			return errors.Wrap(err, "failed to find user")
		}

		// 1. Validate every line before touching any stock.
		products := make(map[uuid.UUID]*entity.Product, len(input.Lines))
		for _, line := range input.Lines {
			product, err := productRepo.FindByID(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, repository.ErrProductNotFound) {
					return domainerrors.ErrProductNotFound.WithMessagef("product with ID %s not found", line.ProductID)
				}

				return errors.Wrap(err, "failed to find product")
			}
			if product.VariantQuantity(line.Unit) < line.Quantity {
				return domainerrors.ErrInsufficientStock.WithMessagef("insufficient stock for product: %s", product.Title)
			}
			products[line.ProductID] = product
		}

		// 2. Decrement stock and accumulate the subtotal.
		subtotal := decimal.Zero
		lines := make([]entity.OrderLine, 0, len(input.Lines))
		for _, line := range input.Lines {
			product := products[line.ProductID]

			updated, err := productRepo.DecrementStock(ctx, line.ProductID, line.Unit, line.Quantity)
			if err != nil {
				if errors.Is(err, repository.ErrInsufficientStock) {
					return domainerrors.ErrInsufficientStock.WithMessagef("insufficient stock for product: %s", product.Title)
				}

				return errors.Wrap(err, "failed to decrement stock")
			}

			unitPrice := decimal.NewFromFloat(product.Price)
			lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
			subtotal = subtotal.Add(lineTotal)

			lines = append(lines, entity.OrderLine{
				ProductID:  line.ProductID,
				Quantity:   line.Quantity,
				Unit:       line.Unit,
				UnitPrice:  product.Price,
				TotalPrice: lineTotal.InexactFloat64(),
			})

			if updated.CountInStock < pricing.LowStockThreshold {
				lowStockAlerts = append(lowStockAlerts, fmt.Sprintf(lowStockMessageFormat, product.Title))
			}
		}

		// 3. Run the pricing pipeline.
		orderCount, err := orderRepo.CountByUser(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to count user orders")
		}

		quote = pricing.Price(subtotal, pricing.Context{
			GroupDiscountPercent: decimal.NewFromFloat(user.GroupDiscountPercent),
			Birthday:             user.BirthdayThisMonth(time.Now()),
			RoleDiscount:         user.Role.EligibleForRoleDiscount(),
			FirstOrder:           orderCount == 0,
		})

		// 4. Persist the order.
		order = &entity.Order{
			UserID:          userID,
			OrderedProducts: lines,
			Address:         input.Address,
			PaymentMode:     input.PaymentMode,
			PaymentTotal:    quote.Total.Round(2).InexactFloat64(),
			DiscountApplied: quote.DiscountApplied.InexactFloat64(),
			Status:          entity.OrderPending,
		}
		if err := orderRepo.Create(ctx, order); err != nil {
			return errors.Wrap(err, "failed to create order")
		}

		// 5. Credit the loyalty coins and consume the group balance.
		notifyUserCoins = quote.CoinsEarned.Round(2)
		if err := userRepo.AddCoins(ctx, userID, notifyUserCoins.InexactFloat64()); err != nil {
			return errors.Wrap(err, "failed to credit coins")
		}
		if quote.GroupDiscountConsumed {
			if err := userRepo.CreditGroupDiscount(ctx, []uuid.UUID{userID}, 0); err != nil {
				return errors.Wrap(err, "failed to consume group discount")
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.notifyAfterOrder(ctx, order, lowStockAlerts, notifyUserCoins)

	return order, nil
}

// notifyAfterOrder fans out the post-commit side effects: low-stock alerts to
// the configured admin recipients, the buyer's summary notification and the
// order.placed stream event. Failures are logged and swallowed.
func (srv *orderService) notifyAfterOrder(ctx context.Context, order *entity.Order, lowStockAlerts []string, coins decimal.Decimal) {
	for _, message := range lowStockAlerts {
		srv.notifyAdmins(ctx, message)
	}

	summary := fmt.Sprintf("Your order was placed successfully. You earned %s coins with a %s%% discount applied.",
		coins.String(), decimal.NewFromFloat(order.DiscountApplied).String())
	if err := srv.notificationRepo.Create(ctx, &entity.Notification{
		UserID:    order.UserID,
		Message:   summary,
		CreatedAt: time.Now(),
	}); err != nil {
		srv.logger.Warn("Failed to create order summary notification", "userID", order.UserID, "error", err)
	}

	event := service.OrderPlacedEvent{
		OrderID:         order.ID,
		UserID:          order.UserID,
		PaymentMode:     string(order.PaymentMode),
		PaymentTotal:    decimal.NewFromFloat(order.PaymentTotal),
		DiscountApplied: decimal.NewFromFloat(order.DiscountApplied),
		CoinsEarned:     coins,
		LineCount:       len(order.OrderedProducts),
		PlacedAt:        order.CreatedAt,
	}
	if err := srv.publisher.Publish(ctx, service.EventOrderPlaced, order.ID, event); err != nil {
		srv.logger.Warn("Failed to publish order placed event", "orderID", order.ID, "error", err)
	}
}

// notifyAdmins sends the message to every configured admin recipient, skipping
// any recipient that already holds a live notification with the exact same
// message string.
func (srv *orderService) notifyAdmins(ctx context.Context, message string) {
	if srv.cfg.Alerts == nil {
		return
	}

	for _, adminID := range srv.cfg.Alerts.AdminRecipients {
		exists, err := srv.notificationRepo.ExistsByMessage(ctx, adminID, message)
		if err != nil {
			srv.logger.Warn("Failed to check notification dedup", "adminID", adminID, "error", err)

			continue
		}
		if exists {
			continue
		}

		if err := srv.notificationRepo.Create(ctx, &entity.Notification{
			UserID:    adminID,
			Message:   message,
			CreatedAt: time.Now(),
		}); err != nil {
			srv.logger.Warn("Failed to create admin alert", "adminID", adminID, "error", err)
		}
	}
}

// GetOrder retrieves a single order.
func (srv *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewOrderRepository().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return errors.Wrap(domainerrors.ErrOrderNotFound, "order not found")
			}

			return errors.Wrap(err, "failed to find order")
		}
		order = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// ListUserOrders retrieves the user's orders, newest first.
func (srv *orderService) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	var orders []*entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewOrderRepository().FindByUser(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to list user orders")
		}
		orders = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return orders, nil
}

// ListAllOrders retrieves every order, newest first.
func (srv *orderService) ListAllOrders(ctx context.Context) ([]*entity.Order, error) {
	var orders []*entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewOrderRepository().FindAll(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list orders")
		}
		orders = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return orders, nil
}

// ListOrdersByStatus retrieves all orders in the given status.
func (srv *orderService) ListOrdersByStatus(ctx context.Context, status entity.OrderStatus) ([]*entity.Order, error) {
	if !status.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "invalid order status")
	}

	var orders []*entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewOrderRepository().FindByStatus(ctx, status)
		if err != nil {
			return errors.Wrap(err, "failed to list orders by status")
		}
		orders = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return orders, nil
}

// UpdateStatus moves a pending order to done or cancelled. Completing the
// order bumps each line product's sale counter inside the same transaction.
func (srv *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) (*entity.Order, error) {
	srv.logger.Info("Updating order status", "orderID", id, "status", status)

	if !status.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "invalid order status")
	}

	var (
		order     *entity.Order
		oldStatus entity.OrderStatus
	)
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.NewOrderRepository()
		productRepo := repoFactory.NewProductRepository()

		found, err := orderRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return errors.Wrap(domainerrors.ErrOrderNotFound, "order not found")
			}

			return errors.Wrap(err, "failed to find order")
		}
		if !found.Status.CanTransitionTo(status) {
			return domainerrors.ErrInvalidStatusTransition.WithMessagef("cannot move order from %s to %s", found.Status, status)
		}

		if err := orderRepo.UpdateStatus(ctx, id, status); err != nil {
			return errors.Wrap(err, "failed to update order status")
		}

		if status == entity.OrderDone {
			for _, line := range found.OrderedProducts {
				if err := productRepo.IncrementSaleCount(ctx, line.ProductID, line.Quantity); err != nil {
					return errors.Wrap(err, "failed to increment sale count")
				}
			}
		}

		oldStatus = found.Status
		found.Status = status
		order = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	// The stream event fires only once the transaction committed; a rolled
	// back status change must not leak downstream.
	event := service.OrderStatusChangedEvent{
		OrderID:   order.ID,
		UserID:    order.UserID,
		OldStatus: string(oldStatus),
		NewStatus: string(status),
		ChangedAt: time.Now().UTC(),
	}
	if err := srv.publisher.Publish(ctx, service.EventOrderStatusChanged, order.ID, event); err != nil {
		srv.logger.Warn("Failed to publish order status event", "orderID", order.ID, "error", err)
	}

	return order, nil
}

// DeleteOrder removes an order. Non-admin callers may only delete their own
// pending orders; admins may delete any order regardless of status.
func (srv *orderService) DeleteOrder(ctx context.Context, callerID uuid.UUID, isAdmin bool, id uuid.UUID) error {
	srv.logger.Info("Deleting order", "orderID", id, "callerID", callerID, "isAdmin", isAdmin)

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.NewOrderRepository()

		order, err := orderRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return errors.Wrap(domainerrors.ErrOrderNotFound, "order not found")
			}

			return errors.Wrap(err, "failed to find order")
		}

		if !isAdmin {
			if order.UserID != callerID {
				return errors.Wrap(domainerrors.ErrForbidden, "order belongs to another user")
			}
			if order.Status != entity.OrderPending {
				return errors.Wrap(domainerrors.ErrOrderNotPending, "only pending orders can be deleted")
			}
		}

		if err := orderRepo.Delete(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete order")
		}

		return nil
	})
}

// MonthlyDoneOrders reports the done orders of one calendar month.
func (srv *orderService) MonthlyDoneOrders(ctx context.Context, year int, month time.Month) ([]*entity.Order, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	var orders []*entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewOrderRepository().FindDoneBetween(ctx, from, to)
		if err != nil {
			return errors.Wrap(err, "failed to find monthly done orders")
		}
		orders = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return orders, nil
}

// TopUsersByOrderCount ranks users by number of orders.
func (srv *orderService) TopUsersByOrderCount(ctx context.Context) ([]repository.UserOrderTotals, error) {
	var totals []repository.UserOrderTotals

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewOrderRepository().TopUsersByOrderCount(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to rank users by order count")
		}
		totals = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return totals, nil
}

// TopUsersByPaymentTotal ranks users by summed payment total.
func (srv *orderService) TopUsersByPaymentTotal(ctx context.Context) ([]repository.UserOrderTotals, error) {
	var totals []repository.UserOrderTotals

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewOrderRepository().TopUsersByPaymentTotal(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to rank users by payment total")
		}
		totals = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return totals, nil
}
