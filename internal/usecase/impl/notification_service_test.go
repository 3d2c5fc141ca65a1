package impl

import (
	"context"
	"testing"

	"smarket/internal/domain/entity"
	domainerrors "smarket/internal/domain/errors"
	"smarket/internal/domain/repository"
	"smarket/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestNotificationService() (
	usecase.NotificationUsecase,
	*stubRepositoryFactory,
	*mockNotificationRepository,
) {
	factory := newStubFactory()
	notificationRepo := &mockNotificationRepository{}

	svc := NewNotificationService(&stubTxManager{factory: factory}, notificationRepo, newDiscardLogger())

	return svc, factory, notificationRepo
}

func TestNotificationService_NotifyAmbassadorEligibility_SkipsExisting(t *testing.T) {
	svc, factory, notificationRepo := createTestNotificationService()

	ctx := context.Background()
	freshID := uuid.New()
	alreadyNotifiedID := uuid.New()

	factory.users.On("FindByRole", ctx, entity.RoleUser).Return([]*entity.User{
		{ID: freshID, Role: entity.RoleUser},
		{ID: alreadyNotifiedID, Role: entity.RoleUser},
	}, nil)

	notificationRepo.On("ExistsByMessage", ctx, freshID, ambassadorEligibilityMessage).Return(false, nil)
	notificationRepo.On("ExistsByMessage", ctx, alreadyNotifiedID, ambassadorEligibilityMessage).Return(true, nil)
	notificationRepo.On("Create", ctx, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.UserID == freshID && n.Message == ambassadorEligibilityMessage
	})).Return(nil)

	sent, err := svc.NotifyAmbassadorEligibility(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	notificationRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestNotificationService_NotifyCoordinatorEligibility_ThresholdGate(t *testing.T) {
	svc, factory, notificationRepo := createTestNotificationService()

	ctx := context.Background()
	eligibleID := uuid.New()
	shortID := uuid.New()

	factory.users.On("FindByRole", ctx, entity.RoleAmbassador).Return([]*entity.User{
		{ID: eligibleID, Role: entity.RoleAmbassador},
		{ID: shortID, Role: entity.RoleAmbassador},
	}, nil)
	factory.orders.On("SumPaymentsByUserAndStatus", ctx, eligibleID, entity.OrderDone).Return(5000.0, nil)
	factory.orders.On("SumPaymentsByUserAndStatus", ctx, shortID, entity.OrderDone).Return(4999.0, nil)

	notificationRepo.On("ExistsByMessage", ctx, eligibleID, coordinatorEligibilityMessage).Return(false, nil)
	notificationRepo.On("Create", ctx, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.UserID == eligibleID
	})).Return(nil)

	sent, err := svc.NotifyCoordinatorEligibility(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, sent)
}

func TestNotificationService_NotifyFirstOrderDiscount_ZeroOrdersOnly(t *testing.T) {
	svc, factory, notificationRepo := createTestNotificationService()

	ctx := context.Background()
	newcomerID := uuid.New()
	returningID := uuid.New()

	factory.users.On("FindByRole", ctx, entity.RoleUser).Return([]*entity.User{
		{ID: newcomerID, Role: entity.RoleUser},
		{ID: returningID, Role: entity.RoleUser},
	}, nil)
	factory.orders.On("CountByUser", ctx, newcomerID).Return(int64(0), nil)
	factory.orders.On("CountByUser", ctx, returningID).Return(int64(4), nil)

	notificationRepo.On("ExistsByMessage", ctx, newcomerID, firstOrderDiscountMessage).Return(false, nil)
	notificationRepo.On("Create", ctx, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.UserID == newcomerID && n.Message == firstOrderDiscountMessage
	})).Return(nil)

	sent, err := svc.NotifyFirstOrderDiscount(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	notificationRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestNotificationService_MarkRead_NotFound(t *testing.T) {
	svc, _, notificationRepo := createTestNotificationService()

	ctx := context.Background()
	userID := uuid.New()
	notificationID := uuid.New()

	notificationRepo.On("MarkRead", ctx, userID, notificationID).
		Return(repository.ErrNotificationNotFound)

	err := svc.MarkRead(ctx, userID, notificationID)

	assert.ErrorIs(t, err, domainerrors.ErrNotificationNotFound)
}

func TestNotificationService_ListUserNotifications(t *testing.T) {
	svc, _, notificationRepo := createTestNotificationService()

	ctx := context.Background()
	userID := uuid.New()
	expected := []*entity.Notification{{ID: uuid.New(), UserID: userID, Message: "hello"}}

	notificationRepo.On("FindByUser", ctx, userID).Return(expected, nil)

	got, err := svc.ListUserNotifications(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, expected, got)
}
