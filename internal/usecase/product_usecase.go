package usecase

import (
	"context"
	"time"

	"smarket/internal/domain/entity"

	"github.com/google/uuid"
)

// ProductUsecase defines the interface for catalog-related business operations.
type ProductUsecase interface {
	CreateProduct(ctx context.Context, input *ProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input *ProductInput) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	ListProducts(ctx context.Context) ([]*entity.Product, error)
	ListByCategory(ctx context.Context, category entity.Category) ([]*entity.Product, error)
	SearchProducts(ctx context.Context, query string) ([]*entity.Product, error)
	// RateProduct folds one 1..5 rating into the product's running mean.
	RateProduct(ctx context.Context, id uuid.UUID, rating int) (*entity.Product, error)
	TopSellers(ctx context.Context, limit int) ([]*entity.Product, error)
}

// --- Input DTOs ---

// ProductInput defines the data required to create or update a catalog
// listing. Price, coins and the aggregate stock count are derived and never
// accepted from the caller.
type ProductInput struct {
	Title           string                 `json:"title" validate:"required"`
	Description     string                 `json:"description"`
	Category        entity.Category        `json:"category" validate:"required"`
	Price           float64                `json:"price" validate:"gte=0"`
	OldPrice        float64                `json:"old_price" validate:"gte=0"`
	DiscountPercent float64                `json:"discount" validate:"gte=0,lte=100"`
	CountInStock    int                    `json:"count_in_stock" validate:"gte=0"`
	Image           string                 `json:"image"`
	Sizes           []entity.SizeStock     `json:"size"`
	ShoeSizes       []entity.ShoeSizeStock `json:"shoe_size"`
	Specifications  map[string]string      `json:"specifications"`
	Ingredients     []string               `json:"ingredients"`
	ExpiryDate      *time.Time             `json:"expiry_date"`
}
