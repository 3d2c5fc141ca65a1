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

func createTestUserService() (usecase.UserUsecase, *stubRepositoryFactory) {
	factory := newStubFactory()
	svc := NewUserService(&stubTxManager{factory: factory}, newDiscardLogger())

	return svc, factory
}

func TestUserService_AdjustCoins_CreditsBalance(t *testing.T) {
	svc, factory := createTestUserService()

	ctx := context.Background()
	userID := uuid.New()

	factory.users.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, CoinsEarned: 40}, nil)
	factory.users.On("AddCoins", ctx, userID, 25.0).Return(nil)

	user, err := svc.AdjustCoins(ctx, userID, 25)

	require.NoError(t, err)
	assert.InDelta(t, 65.0, user.CoinsEarned, 1e-9)
}

func TestUserService_AdjustCoins_BalanceCannotGoNegative(t *testing.T) {
	svc, factory := createTestUserService()

	ctx := context.Background()
	userID := uuid.New()

	factory.users.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, CoinsEarned: 40}, nil)
	factory.users.On("DebitCoins", ctx, userID, 41.0).
		Return(repository.ErrInsufficientCoins)

	_, err := svc.AdjustCoins(ctx, userID, -41)

	assert.ErrorIs(t, err, domainerrors.ErrInsufficientCoins)
	factory.users.AssertNotCalled(t, "AddCoins", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_AdjustCoins_DebitsBalance(t *testing.T) {
	svc, factory := createTestUserService()

	ctx := context.Background()
	userID := uuid.New()

	factory.users.On("FindByID", ctx, userID).
		Return(&entity.User{ID: userID, CoinsEarned: 40}, nil)
	factory.users.On("DebitCoins", ctx, userID, 15.0).Return(nil)

	user, err := svc.AdjustCoins(ctx, userID, -15)

	require.NoError(t, err)
	assert.InDelta(t, 25.0, user.CoinsEarned, 1e-9)
	factory.users.AssertNotCalled(t, "AddCoins", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_UpdateProfile_PartialChanges(t *testing.T) {
	svc, factory := createTestUserService()

	ctx := context.Background()
	userID := uuid.New()
	name := "Amina"

	existing := &entity.User{ID: userID, Name: "Old Name", Phone: "123456", Role: entity.RoleUser}
	factory.users.On("FindByID", ctx, userID).Return(existing, nil)
	factory.users.On("Update", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.Name == "Amina" && u.Phone == "123456"
	})).Return(nil)

	user, err := svc.UpdateProfile(ctx, userID, &usecase.UpdateProfileInput{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, "Amina", user.Name)
	assert.Equal(t, "123456", user.Phone)
}

func TestUserService_ListByRole_UnknownRole(t *testing.T) {
	svc, _ := createTestUserService()

	_, err := svc.ListByRole(context.Background(), "superuser")

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestUserService_ListByBirthMonth_MonthRange(t *testing.T) {
	svc, _ := createTestUserService()

	_, err := svc.ListByBirthMonth(context.Background(), 13)

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}
