package impl

import (
	"context"
	"testing"

	"smarket/internal/domain/entity"
	domainerrors "smarket/internal/domain/errors"
	"smarket/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestProductService() (usecase.ProductUsecase, *stubRepositoryFactory) {
	factory := newStubFactory()
	svc := NewProductService(&stubTxManager{factory: factory}, newDiscardLogger())

	return svc, factory
}

func TestProductService_CreateProduct_DerivesPriceAndCoins(t *testing.T) {
	svc, factory := createTestProductService()

	ctx := context.Background()
	factory.products.On("Create", ctx, mock.Anything).Return(nil)

	product, err := svc.CreateProduct(ctx, &usecase.ProductInput{
		Title:           "Denim Jacket",
		Category:        entity.CategoryFashion,
		OldPrice:        200,
		DiscountPercent: 25,
		Sizes: []entity.SizeStock{
			{Size: "M", Quantity: 4},
			{Size: "L", Quantity: 6},
		},
	})

	require.NoError(t, err)
	assert.InDelta(t, 150.0, product.Price, 1e-9)
	assert.Equal(t, 225, product.Coins)
	assert.Equal(t, 10, product.CountInStock)
	assert.True(t, product.InStock)
}

func TestProductService_CreateProduct_InvalidCategory(t *testing.T) {
	svc, factory := createTestProductService()

	_, err := svc.CreateProduct(context.Background(), &usecase.ProductInput{
		Title:    "Mystery Item",
		Category: "toys",
		Price:    10,
	})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCategory)
	factory.products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductService_RateProduct_FoldsIntoRunningMean(t *testing.T) {
	svc, factory := createTestProductService()

	ctx := context.Background()
	productID := uuid.New()

	product := &entity.Product{
		ID:       productID,
		Title:    "Face Cream",
		Category: entity.CategoryBeauty,
		Price:    30,
		Rate:     entity.Rating{Rating: 4, RatingCount: 3},
	}

	factory.products.On("FindByID", ctx, productID).Return(product, nil)
	factory.products.On("Update", ctx, mock.Anything).Return(nil)

	rated, err := svc.RateProduct(ctx, productID, 2)

	require.NoError(t, err)
	assert.Equal(t, 4, rated.Rate.RatingCount)
	assert.InDelta(t, 3.5, rated.Rate.Rating, 1e-9)
}

func TestProductService_RateProduct_OutOfRange(t *testing.T) {
	svc, factory := createTestProductService()

	_, err := svc.RateProduct(context.Background(), uuid.New(), 6)

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	factory.products.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProductService_SearchProducts_EmptyQuery(t *testing.T) {
	svc, _ := createTestProductService()

	_, err := svc.SearchProducts(context.Background(), "")

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}
