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

func createTestDonationService() (
	usecase.DonationUsecase,
	*stubRepositoryFactory,
	*mockNotificationRepository,
) {
	factory := newStubFactory()
	notificationRepo := &mockNotificationRepository{}

	svc := NewDonationService(&stubTxManager{factory: factory}, notificationRepo, newDiscardLogger())

	return svc, factory, notificationRepo
}

func TestDonationService_Donate_DebitsExactBalance(t *testing.T) {
	svc, factory, notificationRepo := createTestDonationService()

	ctx := context.Background()
	userID := uuid.New()
	itemID := uuid.New()

	user := &entity.User{ID: userID, CoinsEarned: 100}
	item := &entity.HelpAndHopeItem{ID: itemID, Title: "School Kit", Coins: 50, Theme: entity.ThemeSchool}

	factory.users.On("FindByID", ctx, userID).Return(user, nil)
	factory.items.On("FindByID", ctx, itemID).Return(item, nil)
	factory.users.On("DebitCoins", ctx, userID, 100.0).Return(nil)
	factory.donations.On("Create", ctx, mock.Anything).Return(nil)
	notificationRepo.On("Create", ctx, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.UserID == userID && n.Message == "Your donation was successful."
	})).Return(nil)

	history, err := svc.Donate(ctx, userID, &usecase.DonateInput{
		Lines: []usecase.DonationLineInput{{ItemID: itemID, Quantity: 2}},
	})

	require.NoError(t, err)
	assert.InDelta(t, 100.0, history.CoinsDonated, 1e-9)
	require.Len(t, history.Lines, 1)
	assert.InDelta(t, 100.0, history.Lines[0].TotalCoins, 1e-9)
	factory.users.AssertCalled(t, "DebitCoins", ctx, userID, 100.0)
	notificationRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestDonationService_Donate_InsufficientCoinsMutatesNothing(t *testing.T) {
	svc, factory, notificationRepo := createTestDonationService()

	ctx := context.Background()
	userID := uuid.New()
	itemID := uuid.New()

	// The balance read looks sufficient, but the guarded write fails the
	// way it does when a concurrent donation drained the coins first.
	user := &entity.User{ID: userID, CoinsEarned: 500}
	item := &entity.HelpAndHopeItem{ID: itemID, Title: "Winter Coat", Coins: 101, Theme: entity.ThemeWinter}

	factory.users.On("FindByID", ctx, userID).Return(user, nil)
	factory.items.On("FindByID", ctx, itemID).Return(item, nil)
	factory.users.On("DebitCoins", ctx, userID, 101.0).Return(repository.ErrInsufficientCoins)

	history, err := svc.Donate(ctx, userID, &usecase.DonateInput{
		Lines: []usecase.DonationLineInput{{ItemID: itemID, Quantity: 1}},
	})

	assert.ErrorIs(t, err, domainerrors.ErrInsufficientCoins)
	assert.Nil(t, history)
	factory.donations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	notificationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDonationService_Donate_UnknownItem(t *testing.T) {
	svc, factory, _ := createTestDonationService()

	ctx := context.Background()
	userID := uuid.New()
	itemID := uuid.New()

	factory.users.On("FindByID", ctx, userID).Return(&entity.User{ID: userID, CoinsEarned: 500}, nil)
	factory.items.On("FindByID", ctx, itemID).Return(nil, repository.ErrHelpAndHopeNotFound)

	_, err := svc.Donate(ctx, userID, &usecase.DonateInput{
		Lines: []usecase.DonationLineInput{{ItemID: itemID, Quantity: 1}},
	})

	assert.ErrorIs(t, err, domainerrors.ErrHelpAndHopeNotFound)
	factory.users.AssertNotCalled(t, "DebitCoins", mock.Anything, mock.Anything, mock.Anything)
}

func TestDonationService_Donate_EmptyLines(t *testing.T) {
	svc, _, _ := createTestDonationService()

	_, err := svc.Donate(context.Background(), uuid.New(), &usecase.DonateInput{})

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestHelpAndHopeService_CreateItem_DerivesThemeImage(t *testing.T) {
	factory := newStubFactory()
	svc := NewHelpAndHopeService(&stubTxManager{factory: factory}, newDiscardLogger())

	ctx := context.Background()
	factory.items.On("Create", ctx, mock.Anything).Return(nil)

	item, err := svc.CreateItem(ctx, &usecase.HelpAndHopeInput{
		Title: "Medicine Pack",
		Coins: 40,
		Theme: entity.ThemeMedicine,
	})

	require.NoError(t, err)
	assert.Equal(t, "medicine.gif", item.Image)
}

func TestHelpAndHopeService_CreateItem_KeepsExplicitImage(t *testing.T) {
	factory := newStubFactory()
	svc := NewHelpAndHopeService(&stubTxManager{factory: factory}, newDiscardLogger())

	ctx := context.Background()
	factory.items.On("Create", ctx, mock.Anything).Return(nil)

	item, err := svc.CreateItem(ctx, &usecase.HelpAndHopeInput{
		Title: "Eid Basket",
		Coins: 25,
		Theme: entity.ThemeEid,
		Image: "custom.png",
	})

	require.NoError(t, err)
	assert.Equal(t, "custom.png", item.Image)
}

func TestHelpAndHopeService_CreateItem_UnknownTheme(t *testing.T) {
	factory := newStubFactory()
	svc := NewHelpAndHopeService(&stubTxManager{factory: factory}, newDiscardLogger())

	_, err := svc.CreateItem(context.Background(), &usecase.HelpAndHopeInput{
		Title: "Mystery Box",
		Coins: 10,
		Theme: "mystery",
	})

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	factory.items.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
