package impl

import (
	"context"
	"errors"
	"testing"
	"time"

	"smarket/config"
	"smarket/internal/domain/entity"
	domainerrors "smarket/internal/domain/errors"
	"smarket/internal/domain/service"
	"smarket/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestOrderService(adminRecipients ...uuid.UUID) (
	usecase.OrderUsecase,
	*stubRepositoryFactory,
	*mockNotificationRepository,
	*mockEventPublisher,
) {
	factory := newStubFactory()
	notificationRepo := &mockNotificationRepository{}
	publisher := &mockEventPublisher{}
	cfg := &config.Config{Alerts: &config.AlertsConfig{AdminRecipients: adminRecipients}}

	svc := NewOrderService(&stubTxManager{factory: factory}, notificationRepo, publisher, cfg, newDiscardLogger())

	return svc, factory, notificationRepo, publisher
}

func TestOrderService_PlaceOrder_DiscountsCompound(t *testing.T) {
	svc, factory, notificationRepo, publisher := createTestOrderService()

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	// Birthday and role discounts both apply: 600 * 0.95 * 0.80 = 456,
	// which is under the shipping threshold, so the flat fee lands on top.
	user := &entity.User{
		ID:          userID,
		Role:        entity.RoleAmbassador,
		DateOfBirth: time.Now().AddDate(-30, 0, 0),
	}
	product := &entity.Product{
		ID:           productID,
		Title:        "Espresso Machine",
		Category:     entity.CategoryElectronics,
		Price:        300,
		CountInStock: 10,
		InStock:      true,
	}
	updated := *product
	updated.CountInStock = 8

	factory.users.On("FindByID", ctx, userID).Return(user, nil)
	factory.products.On("FindByID", ctx, productID).Return(product, nil)
	factory.products.On("DecrementStock", ctx, productID, "", 2).Return(&updated, nil)
	factory.orders.On("CountByUser", ctx, userID).Return(int64(3), nil)
	factory.orders.On("Create", ctx, mock.Anything).Return(nil)
	factory.users.On("AddCoins", ctx, userID, 46.1).Return(nil)
	notificationRepo.On("Create", ctx, mock.Anything).Return(nil)
	publisher.On("Publish", ctx, service.EventOrderPlaced, mock.Anything, mock.Anything).Return(nil)

	order, err := svc.PlaceOrder(ctx, userID, &usecase.PlaceOrderInput{
		Lines:       []usecase.OrderLineInput{{ProductID: productID, Quantity: 2}},
		Address:     "12 Rose St",
		PaymentMode: entity.PaymentWithCard,
	})

	require.NoError(t, err)
	assert.InDelta(t, 461.0, order.PaymentTotal, 1e-9)
	assert.InDelta(t, 25.0, order.DiscountApplied, 1e-9)
	assert.Equal(t, entity.OrderPending, order.Status)
	require.Len(t, order.OrderedProducts, 1)
	assert.InDelta(t, 600.0, order.OrderedProducts[0].TotalPrice, 1e-9)

	factory.users.AssertCalled(t, "AddCoins", ctx, userID, 46.1)
	factory.users.AssertNotCalled(t, "CreditGroupDiscount", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_PlaceOrder_SummaryReportsCoinsAndDiscount(t *testing.T) {
	svc, factory, notificationRepo, publisher := createTestOrderService()

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	user := &entity.User{
		ID:          userID,
		Role:        entity.RoleAmbassador,
		DateOfBirth: time.Now().AddDate(-30, 0, 0),
	}
	product := &entity.Product{
		ID:           productID,
		Title:        "Espresso Machine",
		Category:     entity.CategoryElectronics,
		Price:        300,
		CountInStock: 10,
		InStock:      true,
	}
	updated := *product
	updated.CountInStock = 8

	factory.users.On("FindByID", ctx, userID).Return(user, nil)
	factory.products.On("FindByID", ctx, productID).Return(product, nil)
	factory.products.On("DecrementStock", ctx, productID, "", 2).Return(&updated, nil)
	factory.orders.On("CountByUser", ctx, userID).Return(int64(3), nil)
	factory.orders.On("Create", ctx, mock.Anything).Return(nil)
	factory.users.On("AddCoins", ctx, userID, 46.1).Return(nil)
	publisher.On("Publish", ctx, service.EventOrderPlaced, mock.Anything, mock.Anything).Return(nil)

	// The buyer's summary names both the coins earned and the discount
	// percentage that priced the order.
	notificationRepo.On("Create", ctx, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.UserID == userID &&
			n.Message == "Your order was placed successfully. You earned 46.1 coins with a 25% discount applied."
	})).Return(nil)

	_, err := svc.PlaceOrder(ctx, userID, &usecase.PlaceOrderInput{
		Lines:       []usecase.OrderLineInput{{ProductID: productID, Quantity: 2}},
		Address:     "12 Rose St",
		PaymentMode: entity.PaymentWithCard,
	})

	require.NoError(t, err)
	notificationRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestOrderService_PlaceOrder_GroupDiscountConsumedOnce(t *testing.T) {
	svc, factory, notificationRepo, publisher := createTestOrderService()

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	// Birth month pinned away from the order month so only the group
	// balance discounts this order.
	user := &entity.User{
		ID:                   userID,
		Role:                 entity.RoleUser,
		DateOfBirth:          time.Date(2000, time.Now().AddDate(0, 2, 0).Month(), 15, 0, 0, 0, 0, time.UTC),
		GroupDiscountPercent: 10,
	}

	product := &entity.Product{
		ID:           productID,
		Title:        "Garden Chair",
		Category:     entity.CategoryGroceries,
		Price:        1000,
		CountInStock: 20,
		InStock:      true,
	}
	updated := *product
	updated.CountInStock = 19

	factory.users.On("FindByID", ctx, userID).Return(user, nil)
	factory.products.On("FindByID", ctx, productID).Return(product, nil)
	factory.products.On("DecrementStock", ctx, productID, "", 1).Return(&updated, nil)
	factory.orders.On("CountByUser", ctx, userID).Return(int64(5), nil)
	factory.orders.On("Create", ctx, mock.Anything).Return(nil)
	factory.users.On("AddCoins", ctx, userID, 90.0).Return(nil)
	factory.users.On("CreditGroupDiscount", ctx, []uuid.UUID{userID}, 0.0).Return(nil)
	notificationRepo.On("Create", ctx, mock.Anything).Return(nil)
	publisher.On("Publish", ctx, service.EventOrderPlaced, mock.Anything, mock.Anything).Return(nil)

	order, err := svc.PlaceOrder(ctx, userID, &usecase.PlaceOrderInput{
		Lines:       []usecase.OrderLineInput{{ProductID: productID, Quantity: 1}},
		Address:     "12 Rose St",
		PaymentMode: entity.PaymentOnDelivery,
	})

	require.NoError(t, err)
	assert.InDelta(t, 900.0, order.PaymentTotal, 1e-9)
	assert.InDelta(t, 10.0, order.DiscountApplied, 1e-9)
	factory.users.AssertCalled(t, "CreditGroupDiscount", ctx, []uuid.UUID{userID}, 0.0)
}

func TestOrderService_PlaceOrder_ExactStockSucceeds(t *testing.T) {
	svc, factory, notificationRepo, publisher := createTestOrderService()

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	user := &entity.User{
		ID:          userID,
		Role:        entity.RoleUser,
		DateOfBirth: time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	if time.Now().Month() == time.January {
		user.DateOfBirth = time.Date(2000, time.June, 1, 0, 0, 0, 0, time.UTC)
	}

	product := &entity.Product{
		ID:           productID,
		Title:        "Linen Shirt",
		Category:     entity.CategoryFashion,
		Price:        700,
		Sizes:        []entity.SizeStock{{Size: "M", Quantity: 3}},
		CountInStock: 3,
		InStock:      true,
	}
	updated := *product
	updated.Sizes = []entity.SizeStock{{Size: "M", Quantity: 0}}
	updated.CountInStock = 0
	updated.InStock = false

	factory.users.On("FindByID", ctx, userID).Return(user, nil)
	factory.products.On("FindByID", ctx, productID).Return(product, nil)
	factory.products.On("DecrementStock", ctx, productID, "M", 3).Return(&updated, nil)
	factory.orders.On("CountByUser", ctx, userID).Return(int64(1), nil)
	factory.orders.On("Create", ctx, mock.Anything).Return(nil)
	factory.users.On("AddCoins", ctx, userID, mock.Anything).Return(nil)
	notificationRepo.On("Create", ctx, mock.Anything).Return(nil)
	publisher.On("Publish", ctx, service.EventOrderPlaced, mock.Anything, mock.Anything).Return(nil)

	order, err := svc.PlaceOrder(ctx, userID, &usecase.PlaceOrderInput{
		Lines:       []usecase.OrderLineInput{{ProductID: productID, Quantity: 3, Unit: "M"}},
		Address:     "12 Rose St",
		PaymentMode: entity.PaymentWithCard,
	})

	require.NoError(t, err)
	assert.InDelta(t, 2100.0, order.PaymentTotal, 1e-9)
}

func TestOrderService_PlaceOrder_InsufficientStockMutatesNothing(t *testing.T) {
	svc, factory, notificationRepo, publisher := createTestOrderService()

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	user := &entity.User{ID: userID, Role: entity.RoleUser}
	product := &entity.Product{
		ID:           productID,
		Title:        "Linen Shirt",
		Category:     entity.CategoryFashion,
		Price:        700,
		Sizes:        []entity.SizeStock{{Size: "M", Quantity: 3}},
		CountInStock: 3,
		InStock:      true,
	}

	factory.users.On("FindByID", ctx, userID).Return(user, nil)
	factory.products.On("FindByID", ctx, productID).Return(product, nil)

	order, err := svc.PlaceOrder(ctx, userID, &usecase.PlaceOrderInput{
		Lines:       []usecase.OrderLineInput{{ProductID: productID, Quantity: 4, Unit: "M"}},
		Address:     "12 Rose St",
		PaymentMode: entity.PaymentWithCard,
	})

	assert.ErrorIs(t, err, domainerrors.ErrInsufficientStock)
	assert.Nil(t, order)
	factory.products.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	factory.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	factory.users.AssertNotCalled(t, "AddCoins", mock.Anything, mock.Anything, mock.Anything)
	notificationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_PlaceOrder_LowStockAlertDeduplicated(t *testing.T) {
	adminID := uuid.New()
	svc, factory, notificationRepo, publisher := createTestOrderService(adminID)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	user := &entity.User{ID: userID, Role: entity.RoleUser}
	product := &entity.Product{
		ID:           productID,
		Title:        "Sketchbook",
		Category:     entity.CategoryGroceries,
		Price:        100,
		CountInStock: 6,
		InStock:      true,
	}
	updated := *product
	updated.CountInStock = 4

	factory.users.On("FindByID", ctx, userID).Return(user, nil)
	factory.products.On("FindByID", ctx, productID).Return(product, nil)
	factory.products.On("DecrementStock", ctx, productID, "", 2).Return(&updated, nil)
	factory.orders.On("CountByUser", ctx, userID).Return(int64(2), nil)
	factory.orders.On("Create", ctx, mock.Anything).Return(nil)
	factory.users.On("AddCoins", ctx, userID, mock.Anything).Return(nil)
	publisher.On("Publish", ctx, service.EventOrderPlaced, mock.Anything, mock.Anything).Return(nil)

	// The admin already holds the identical alert, so only the buyer's
	// summary notification goes out.
	notificationRepo.On("ExistsByMessage", ctx, adminID, "Product Sketchbook is running out of stock.").Return(true, nil)
	notificationRepo.On("Create", ctx, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.UserID == userID
	})).Return(nil)

	_, err := svc.PlaceOrder(ctx, userID, &usecase.PlaceOrderInput{
		Lines:       []usecase.OrderLineInput{{ProductID: productID, Quantity: 2}},
		Address:     "12 Rose St",
		PaymentMode: entity.PaymentWithCard,
	})

	require.NoError(t, err)
	notificationRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestOrderService_PlaceOrder_LowStockAlertSentToAdmins(t *testing.T) {
	adminID := uuid.New()
	svc, factory, notificationRepo, publisher := createTestOrderService(adminID)

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	user := &entity.User{ID: userID, Role: entity.RoleUser}
	product := &entity.Product{
		ID:           productID,
		Title:        "Sketchbook",
		Category:     entity.CategoryGroceries,
		Price:        100,
		CountInStock: 6,
		InStock:      true,
	}
	updated := *product
	updated.CountInStock = 4

	factory.users.On("FindByID", ctx, userID).Return(user, nil)
	factory.products.On("FindByID", ctx, productID).Return(product, nil)
	factory.products.On("DecrementStock", ctx, productID, "", 2).Return(&updated, nil)
	factory.orders.On("CountByUser", ctx, userID).Return(int64(2), nil)
	factory.orders.On("Create", ctx, mock.Anything).Return(nil)
	factory.users.On("AddCoins", ctx, userID, mock.Anything).Return(nil)
	publisher.On("Publish", ctx, service.EventOrderPlaced, mock.Anything, mock.Anything).Return(nil)

	notificationRepo.On("ExistsByMessage", ctx, adminID, "Product Sketchbook is running out of stock.").Return(false, nil)
	notificationRepo.On("Create", ctx, mock.Anything).Return(nil)

	_, err := svc.PlaceOrder(ctx, userID, &usecase.PlaceOrderInput{
		Lines:       []usecase.OrderLineInput{{ProductID: productID, Quantity: 2}},
		Address:     "12 Rose St",
		PaymentMode: entity.PaymentWithCard,
	})

	require.NoError(t, err)
	// One alert for the admin plus the buyer's order summary.
	notificationRepo.AssertNumberOfCalls(t, "Create", 2)
}

func TestOrderService_PlaceOrder_InvalidInput(t *testing.T) {
	svc, _, _, _ := createTestOrderService()

	ctx := context.Background()

	_, err := svc.PlaceOrder(ctx, uuid.New(), &usecase.PlaceOrderInput{
		Lines:       nil,
		Address:     "12 Rose St",
		PaymentMode: entity.PaymentWithCard,
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = svc.PlaceOrder(ctx, uuid.New(), &usecase.PlaceOrderInput{
		Lines:       []usecase.OrderLineInput{{ProductID: uuid.New(), Quantity: 1}},
		Address:     "12 Rose St",
		PaymentMode: "cheque",
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestOrderService_UpdateStatus_DoneBumpsSaleCounts(t *testing.T) {
	svc, factory, _, publisher := createTestOrderService()

	ctx := context.Background()
	orderID := uuid.New()
	productID := uuid.New()

	order := &entity.Order{
		ID:     orderID,
		UserID: uuid.New(),
		Status: entity.OrderPending,
		OrderedProducts: []entity.OrderLine{
			{ProductID: productID, Quantity: 2},
		},
	}

	factory.orders.On("FindByID", ctx, orderID).Return(order, nil)
	factory.orders.On("UpdateStatus", ctx, orderID, entity.OrderDone).Return(nil)
	factory.products.On("IncrementSaleCount", ctx, productID, 2).Return(nil)
	publisher.On("Publish", ctx, service.EventOrderStatusChanged, orderID, mock.Anything).Return(nil)

	got, err := svc.UpdateStatus(ctx, orderID, entity.OrderDone)

	require.NoError(t, err)
	assert.Equal(t, entity.OrderDone, got.Status)
	factory.products.AssertCalled(t, "IncrementSaleCount", ctx, productID, 2)
}

func TestOrderService_UpdateStatus_RejectsBackwardTransition(t *testing.T) {
	svc, factory, _, publisher := createTestOrderService()

	ctx := context.Background()
	orderID := uuid.New()

	order := &entity.Order{ID: orderID, Status: entity.OrderDone}
	factory.orders.On("FindByID", ctx, orderID).Return(order, nil)

	_, err := svc.UpdateStatus(ctx, orderID, entity.OrderPending)

	assert.ErrorIs(t, err, domainerrors.ErrInvalidStatusTransition)
	factory.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_UpdateStatus_NoEventWhenCommitFails(t *testing.T) {
	factory := newStubFactory()
	publisher := &mockEventPublisher{}
	cfg := &config.Config{Alerts: &config.AlertsConfig{}}
	commitErr := errors.New("commit failed")

	svc := NewOrderService(
		&stubTxManager{factory: factory, commitErr: commitErr},
		&mockNotificationRepository{},
		publisher,
		cfg,
		newDiscardLogger(),
	)

	ctx := context.Background()
	orderID := uuid.New()

	order := &entity.Order{ID: orderID, UserID: uuid.New(), Status: entity.OrderPending}
	factory.orders.On("FindByID", ctx, orderID).Return(order, nil)
	factory.orders.On("UpdateStatus", ctx, orderID, entity.OrderCancelled).Return(nil)

	_, err := svc.UpdateStatus(ctx, orderID, entity.OrderCancelled)

	require.ErrorIs(t, err, commitErr)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_DeleteOrder_OwnerPendingOnly(t *testing.T) {
	svc, factory, _, _ := createTestOrderService()

	ctx := context.Background()
	ownerID := uuid.New()
	orderID := uuid.New()

	order := &entity.Order{ID: orderID, UserID: ownerID, Status: entity.OrderPending}
	factory.orders.On("FindByID", ctx, orderID).Return(order, nil)
	factory.orders.On("Delete", ctx, orderID).Return(nil)

	require.NoError(t, svc.DeleteOrder(ctx, ownerID, false, orderID))
	factory.orders.AssertCalled(t, "Delete", ctx, orderID)
}

func TestOrderService_DeleteOrder_ForbiddenForOtherUsers(t *testing.T) {
	svc, factory, _, _ := createTestOrderService()

	ctx := context.Background()
	orderID := uuid.New()

	order := &entity.Order{ID: orderID, UserID: uuid.New(), Status: entity.OrderPending}
	factory.orders.On("FindByID", ctx, orderID).Return(order, nil)

	err := svc.DeleteOrder(ctx, uuid.New(), false, orderID)

	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	factory.orders.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestOrderService_DeleteOrder_NonPendingRejected(t *testing.T) {
	svc, factory, _, _ := createTestOrderService()

	ctx := context.Background()
	ownerID := uuid.New()
	orderID := uuid.New()

	order := &entity.Order{ID: orderID, UserID: ownerID, Status: entity.OrderDone}
	factory.orders.On("FindByID", ctx, orderID).Return(order, nil)

	err := svc.DeleteOrder(ctx, ownerID, false, orderID)

	assert.ErrorIs(t, err, domainerrors.ErrOrderNotPending)
}

func TestOrderService_DeleteOrder_AdminMayDeleteAnything(t *testing.T) {
	svc, factory, _, _ := createTestOrderService()

	ctx := context.Background()
	orderID := uuid.New()

	order := &entity.Order{ID: orderID, UserID: uuid.New(), Status: entity.OrderDone}
	factory.orders.On("FindByID", ctx, orderID).Return(order, nil)
	factory.orders.On("Delete", ctx, orderID).Return(nil)

	require.NoError(t, svc.DeleteOrder(ctx, uuid.New(), true, orderID))
}
