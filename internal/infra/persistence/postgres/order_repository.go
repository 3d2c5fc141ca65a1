package postgres

import (
	"context"
	"time"

	"smarket/internal/domain/entity"
	domainerrors "smarket/internal/domain/errors"
	"smarket/internal/domain/repository"
	"smarket/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// orderRepository implements the repository.OrderRepository interface using GORM.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// Create persists a new order with its line items.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid user or product reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required order information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	// Update the entity with generated values
	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

// FindByID retrieves a single order by its unique ID.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Lines").
		Where("id = ?", id).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM), nil
}

// FindByUser retrieves all orders placed by the user, newest first.
func (repo *orderRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Lines").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find orders by user")
	}

	return toOrderDomainSlice(orderModels), nil
}

// FindAll retrieves every order, newest first.
func (repo *orderRepository) FindAll(ctx context.Context) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Lines").
		Order("created_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find all orders")
	}

	return toOrderDomainSlice(orderModels), nil
}

// FindByStatus retrieves all orders in the given status.
func (repo *orderRepository) FindByStatus(ctx context.Context, status entity.OrderStatus) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Lines").
		Where("status = ?", string(status)).
		Order("created_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find orders by status")
	}

	return toOrderDomainSlice(orderModels), nil
}

// FindDoneBetween retrieves done orders created in [from, to).
func (repo *orderRepository) FindDoneBetween(ctx context.Context, from, to time.Time) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Lines").
		Where("status = ? AND created_at >= ? AND created_at < ?", string(entity.OrderDone), from, to).
		Order("created_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find done orders in range")
	}

	return toOrderDomainSlice(orderModels), nil
}

// CountByUser returns how many orders the user has placed.
func (repo *orderRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count orders by user")
	}

	return count, nil
}

// SumPaymentsByUserAndStatus sums PaymentTotal over the user's orders in the given status.
func (repo *orderRepository) SumPaymentsByUserAndStatus(ctx context.Context, userID uuid.UUID, status entity.OrderStatus) (float64, error) {
	var total float64

	if err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("user_id = ? AND status = ?", userID, string(status)).
		Select("COALESCE(SUM(payment_total), 0)").
		Scan(&total).Error; err != nil {
		return 0, errors.Wrap(err, "failed to sum payments by user and status")
	}

	return total, nil
}

// SumPaymentsByUsersBetween sums PaymentTotal over orders of any of the users created in [from, to).
func (repo *orderRepository) SumPaymentsByUsersBetween(ctx context.Context, userIDs []uuid.UUID, from, to time.Time) (float64, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}

	var total float64
	if err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("user_id IN ? AND created_at >= ? AND created_at < ?", userIDs, from, to).
		Select("COALESCE(SUM(payment_total), 0)").
		Scan(&total).Error; err != nil {
		return 0, errors.Wrap(err, "failed to sum payments by users in range")
	}

	return total, nil
}

// UpdateStatus sets the order status.
func (repo *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// Delete removes an order and its line items from the database.
func (repo *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Select("Lines").
		Delete(&model.OrderModel{ID: id})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete order")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// TopUsersByOrderCount ranks users by number of orders, descending.
func (repo *orderRepository) TopUsersByOrderCount(ctx context.Context) ([]repository.UserOrderTotals, error) {
	var totals []repository.UserOrderTotals

	if err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Select("user_id, COUNT(*) AS order_count, COALESCE(SUM(payment_total), 0) AS payment_total").
		Group("user_id").
		Order("order_count DESC").
		Scan(&totals).Error; err != nil {
		return nil, errors.Wrap(err, "failed to rank users by order count")
	}

	return totals, nil
}

// TopUsersByPaymentTotal ranks users by summed payment total, descending.
func (repo *orderRepository) TopUsersByPaymentTotal(ctx context.Context) ([]repository.UserOrderTotals, error) {
	var totals []repository.UserOrderTotals

	if err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Select("user_id, COUNT(*) AS order_count, COALESCE(SUM(payment_total), 0) AS payment_total").
		Group("user_id").
		Order("payment_total DESC").
		Scan(&totals).Error; err != nil {
		return nil, errors.Wrap(err, "failed to rank users by payment total")
	}

	return totals, nil
}

// toOrderDomain maps a persistence model to a pure domain entity.
func toOrderDomain(data *model.OrderModel) *entity.Order {
	lines := make([]entity.OrderLine, 0, len(data.Lines))
	for _, lineM := range data.Lines {
		lines = append(lines, entity.OrderLine{
			ProductID:  lineM.ProductID,
			Quantity:   lineM.Quantity,
			Unit:       lineM.Unit,
			UnitPrice:  lineM.UnitPrice,
			TotalPrice: lineM.TotalPrice,
		})
	}

	return &entity.Order{
		ID:              data.ID,
		UserID:          data.UserID,
		OrderedProducts: lines,
		Address:         data.Address,
		PaymentMode:     entity.PaymentMode(data.PaymentMode),
		PaymentTotal:    data.PaymentTotal,
		DiscountApplied: data.DiscountApplied,
		Status:          entity.OrderStatus(data.Status),
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func toOrderDomainSlice(models []*model.OrderModel) []*entity.Order {
	orders := make([]*entity.Order, 0, len(models))
	for _, orderM := range models {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders
}

// fromOrderDomain maps a pure domain entity to a GORM persistence model.
func fromOrderDomain(data *entity.Order) *model.OrderModel {
	lines := make([]model.OrderLineModel, 0, len(data.OrderedProducts))
	for _, line := range data.OrderedProducts {
		lines = append(lines, model.OrderLineModel{
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
			Unit:       line.Unit,
			UnitPrice:  line.UnitPrice,
			TotalPrice: line.TotalPrice,
		})
	}

	return &model.OrderModel{
		ID:              data.ID,
		UserID:          data.UserID,
		Address:         data.Address,
		PaymentMode:     string(data.PaymentMode),
		PaymentTotal:    data.PaymentTotal,
		DiscountApplied: data.DiscountApplied,
		Status:          string(data.Status),
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
		Lines:           lines,
	}
}
