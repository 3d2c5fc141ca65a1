package impl

import (
	"context"
	"log/slog"

	"smarket/internal/domain/entity"
	domainerrors "smarket/internal/domain/errors"
	"smarket/internal/domain/repository"
	"smarket/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// productService implements the ProductUsecase interface.
type productService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.ProductUsecase {
	return &productService{
		txManager: txManager,
		logger:    logger,
	}
}

// CreateProduct persists a new catalog listing with its derived fields
// recomputed from the input.
func (srv *productService) CreateProduct(ctx context.Context, input *usecase.ProductInput) (*entity.Product, error) {
	srv.logger.Info("Creating product", "title", input.Title, "category", input.Category)

	if !input.Category.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrInvalidCategory, "unknown product category")
	}

	product := productFromInput(input)
	product.Normalize()

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.NewProductRepository().Create(ctx, product)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}

	return product, nil
}

// UpdateProduct replaces a listing's editable fields, recomputing the derived
// ones. Sale count and rating survive the update.
func (srv *productService) UpdateProduct(ctx context.Context, id uuid.UUID, input *usecase.ProductInput) (*entity.Product, error) {
	srv.logger.Info("Updating product", "productID", id)

	if !input.Category.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrInvalidCategory, "unknown product category")
	}

	var product *entity.Product
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.NewProductRepository()

		existing, err := productRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
			}

			return errors.Wrap(err, "failed to find product")
		}

		product = productFromInput(input)
		product.ID = existing.ID
		product.SaleCount = existing.SaleCount
		product.Rate = existing.Rate
		product.CreatedAt = existing.CreatedAt
		product.Normalize()

		if err := productRepo.Update(ctx, product); err != nil {
			return errors.Wrap(err, "failed to update product")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct removes a listing.
func (srv *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	srv.logger.Info("Deleting product", "productID", id)

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewProductRepository().Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
			}

			return errors.Wrap(err, "failed to delete product")
		}

		return nil
	})
}

// GetProduct retrieves a single listing.
func (srv *productService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product *entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewProductRepository().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
			}

			return errors.Wrap(err, "failed to find product")
		}
		product = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

// ListProducts retrieves the whole catalog.
func (srv *productService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	var products []*entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewProductRepository().FindAll(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list products")
		}
		products = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return products, nil
}

// ListByCategory retrieves all listings of one category.
func (srv *productService) ListByCategory(ctx context.Context, category entity.Category) ([]*entity.Product, error) {
	if !category.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrInvalidCategory, "unknown product category")
	}

	var products []*entity.Product
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewProductRepository().FindByCategory(ctx, category)
		if err != nil {
			return errors.Wrap(err, "failed to list products by category")
		}
		products = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return products, nil
}

// SearchProducts retrieves listings whose title contains the query.
func (srv *productService) SearchProducts(ctx context.Context, query string) ([]*entity.Product, error) {
	if query == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "search query is required")
	}

	var products []*entity.Product
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewProductRepository().SearchByTitle(ctx, query)
		if err != nil {
			return errors.Wrap(err, "failed to search products")
		}
		products = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return products, nil
}

// RateProduct folds one rating value into the product's running mean.
func (srv *productService) RateProduct(ctx context.Context, id uuid.UUID, rating int) (*entity.Product, error) {
	if rating < 1 || rating > 5 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "rating must be between 1 and 5")
	}

	var product *entity.Product
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.NewProductRepository()

		found, err := productRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
			}

			return errors.Wrap(err, "failed to find product")
		}

		found.Rate.Add(rating)
		if err := productRepo.Update(ctx, found); err != nil {
			return errors.Wrap(err, "failed to save product rating")
		}
		product = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

// TopSellers retrieves up to limit products ordered by sale count.
func (srv *productService) TopSellers(ctx context.Context, limit int) ([]*entity.Product, error) {
	var products []*entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewProductRepository().TopSellers(ctx, limit)
		if err != nil {
			return errors.Wrap(err, "failed to list top sellers")
		}
		products = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return products, nil
}

// productFromInput builds an entity from the editable listing fields.
func productFromInput(input *usecase.ProductInput) *entity.Product {
	return &entity.Product{
		Title:           input.Title,
		Description:     input.Description,
		Category:        input.Category,
		Price:           input.Price,
		OldPrice:        input.OldPrice,
		DiscountPercent: input.DiscountPercent,
		CountInStock:    input.CountInStock,
		InStock:         input.CountInStock > 0,
		Image:           input.Image,
		Sizes:           input.Sizes,
		ShoeSizes:       input.ShoeSizes,
		Specifications:  input.Specifications,
		Ingredients:     input.Ingredients,
		ExpiryDate:      input.ExpiryDate,
	}
}
