package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarket/internal/domain/entity"
	domainerrors "smarket/internal/domain/errors"
	"smarket/internal/usecase"
)

// stubProductUsecase overrides only the methods a test exercises. Calling an
// unstubbed method panics through the embedded nil interface.
type stubProductUsecase struct {
	usecase.ProductUsecase

	getProduct func(ctx context.Context, id uuid.UUID) (*entity.Product, error)
}

func (s *stubProductUsecase) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return s.getProduct(ctx, id)
}

func TestProductHandler_GetProduct(t *testing.T) {
	productID := uuid.New()
	uc := &stubProductUsecase{
		getProduct: func(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
			require.Equal(t, productID, id)

			return &entity.Product{ID: id, Title: "Noise cancelling headphones"}, nil
		},
	}
	h := NewProductHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/products/"+productID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(productID.String())

	require.NoError(t, h.GetProduct(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"SUCCESS"`)
	assert.Contains(t, rec.Body.String(), "Noise cancelling headphones")
}

func TestProductHandler_GetProduct_InvalidID(t *testing.T) {
	h := NewProductHandler(&stubProductUsecase{}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/products/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	require.NoError(t, h.GetProduct(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_INPUT")
}

func TestProductHandler_GetProduct_PropagatesUsecaseError(t *testing.T) {
	uc := &stubProductUsecase{
		getProduct: func(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
			return nil, domainerrors.ErrProductNotFound
		},
	}
	h := NewProductHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))

	e := echo.New()
	productID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/api/products/"+productID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(productID.String())

	err := h.GetProduct(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}
