// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"smarket/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for product persistence.
var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientStock is returned when a conditional stock decrement
	// finds less stock than requested. The decrement is atomic: it either
	// applies in full or leaves the product untouched.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ProductRepository defines the standard operations for product persistence.
type ProductRepository interface {
	// FindByID retrieves a single product by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindMany retrieves the products with the given IDs.
	FindMany(ctx context.Context, ids []uuid.UUID) ([]*entity.Product, error)

	// FindAll retrieves every catalog listing.
	FindAll(ctx context.Context) ([]*entity.Product, error)

	// FindByCategory retrieves all listings of one category.
	FindByCategory(ctx context.Context, category entity.Category) ([]*entity.Product, error)

	// SearchByTitle retrieves listings whose title contains the query,
	// case-insensitively.
	SearchByTitle(ctx context.Context, query string) ([]*entity.Product, error)

	// Create persists a new product entity to the storage.
	Create(ctx context.Context, product *entity.Product) error

	// Update modifies an existing product entity in the storage.
	Update(ctx context.Context, product *entity.Product) error

	// Delete removes a product from the storage.
	Delete(ctx context.Context, id uuid.UUID) error

	// DecrementStock atomically reduces the stock of the selected variant
	// (and the aggregate count) by qty, guarded by the current level: the
	// write applies only while remaining stock covers the request, so the
	// count can never go negative under concurrent demand. Returns the
	// product after the decrement.
	DecrementStock(ctx context.Context, id uuid.UUID, unit string, qty int) (*entity.Product, error)

	// IncrementSaleCount adds qty to the product's sale counter.
	IncrementSaleCount(ctx context.Context, id uuid.UUID, qty int) error

	// TopSellers retrieves up to limit products ordered by sale count descending.
	TopSellers(ctx context.Context, limit int) ([]*entity.Product, error)
}
