package postgres

import (
	"context"

	"smarket/internal/domain/entity"
	domainerrors "smarket/internal/domain/errors"
	"smarket/internal/domain/repository"
	"smarket/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// productRepository implements the repository.ProductRepository interface using GORM.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{
		db: db,
	}
}

// FindByID retrieves a single product by its unique ID.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

// FindMany retrieves the products with the given IDs.
func (repo *productRepository) FindMany(ctx context.Context, ids []uuid.UUID) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var productModels []*model.ProductModel
	if err := repo.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&productModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find products by ids")
	}

	return toProductDomainSlice(productModels), nil
}

// FindAll retrieves every catalog listing.
func (repo *productRepository) FindAll(ctx context.Context) ([]*entity.Product, error) {
	var productModels []*model.ProductModel

	if err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&productModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find all products")
	}

	return toProductDomainSlice(productModels), nil
}

// FindByCategory retrieves all listings of one category.
func (repo *productRepository) FindByCategory(ctx context.Context, category entity.Category) ([]*entity.Product, error) {
	var productModels []*model.ProductModel

	if err := repo.db.WithContext(ctx).
		Where("category = ?", string(category)).
		Order("created_at DESC").
		Find(&productModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find products by category")
	}

	return toProductDomainSlice(productModels), nil
}

// SearchByTitle retrieves listings whose title contains the query, case-insensitively.
func (repo *productRepository) SearchByTitle(ctx context.Context, query string) ([]*entity.Product, error) {
	var productModels []*model.ProductModel

	if err := repo.db.WithContext(ctx).
		Where("title ILIKE ?", "%"+query+"%").
		Order("created_at DESC").
		Find(&productModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to search products by title")
	}

	return toProductDomainSlice(productModels), nil
}

// Create persists a new product entity to the database.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required product information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	// Update the entity with generated values
	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// Update modifies an existing product entity in the database.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", product.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(productM)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// Delete removes a product from the database.
func (repo *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ProductModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// DecrementStock atomically reduces the stock of the selected variant.
// The product row is locked with SELECT ... FOR UPDATE so two concurrent
// orders cannot both read the same stock level; the guarded check then
// rejects any request the remaining stock no longer covers.
func (repo *productRepository) DecrementStock(ctx context.Context, id uuid.UUID, unit string, qty int) (*entity.Product, error) {
	var productM model.ProductModel

	if err := repo.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to lock product for stock decrement")
	}

	product := toProductDomain(&productM)
	if product.VariantQuantity(unit) < qty {
		return nil, repository.ErrInsufficientStock
	}
	product.DecrementVariant(unit, qty)

	updated := fromProductDomain(product)
	if err := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"count_in_stock": updated.CountInStock,
			"in_stock":       updated.InStock,
			"sizes":          updated.Sizes,
			"shoe_sizes":     updated.ShoeSizes,
		}).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to decrement product stock")
	}

	return product, nil
}

// IncrementSaleCount adds qty to the product's sale counter.
func (repo *productRepository) IncrementSaleCount(ctx context.Context, id uuid.UUID, qty int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", id).
		UpdateColumn("sale_count", gorm.Expr("sale_count + ?", qty))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to increment sale count")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// TopSellers retrieves up to limit products ordered by sale count descending.
func (repo *productRepository) TopSellers(ctx context.Context, limit int) ([]*entity.Product, error) {
	var productModels []*model.ProductModel

	query := repo.db.WithContext(ctx).
		Order("sale_count DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&productModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find top selling products")
	}

	return toProductDomainSlice(productModels), nil
}

// toProductDomain maps a persistence model to a pure domain entity.
func toProductDomain(data *model.ProductModel) *entity.Product {
	sizes := make([]entity.SizeStock, 0, len(data.Sizes))
	for _, s := range data.Sizes {
		sizes = append(sizes, entity.SizeStock{Size: s.Size, Quantity: s.Quantity})
	}

	shoeSizes := make([]entity.ShoeSizeStock, 0, len(data.ShoeSizes))
	for _, s := range data.ShoeSizes {
		shoeSizes = append(shoeSizes, entity.ShoeSizeStock{ShoeSize: s.ShoeSize, Quantity: s.Quantity})
	}

	return &entity.Product{
		ID:              data.ID,
		Title:           data.Title,
		Description:     data.Description,
		Category:        entity.Category(data.Category),
		Price:           data.Price,
		OldPrice:        data.OldPrice,
		DiscountPercent: data.DiscountPercent,
		Coins:           data.Coins,
		CountInStock:    data.CountInStock,
		InStock:         data.InStock,
		SaleCount:       data.SaleCount,
		Rate: entity.Rating{
			Rating:      data.RatingRate,
			RatingCount: data.RatingCount,
		},
		Image:          data.Image,
		Sizes:          sizes,
		ShoeSizes:      shoeSizes,
		Specifications: data.Specifications,
		Ingredients:    data.Ingredients,
		ExpiryDate:     data.ExpiryDate,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

func toProductDomainSlice(models []*model.ProductModel) []*entity.Product {
	products := make([]*entity.Product, 0, len(models))
	for _, productM := range models {
		products = append(products, toProductDomain(productM))
	}

	return products
}

// fromProductDomain maps a pure domain entity to a GORM persistence model.
func fromProductDomain(data *entity.Product) *model.ProductModel {
	sizes := make([]model.SizeStockJSON, 0, len(data.Sizes))
	for _, s := range data.Sizes {
		sizes = append(sizes, model.SizeStockJSON{Size: s.Size, Quantity: s.Quantity})
	}

	shoeSizes := make([]model.ShoeSizeStockJSON, 0, len(data.ShoeSizes))
	for _, s := range data.ShoeSizes {
		shoeSizes = append(shoeSizes, model.ShoeSizeStockJSON{ShoeSize: s.ShoeSize, Quantity: s.Quantity})
	}

	return &model.ProductModel{
		ID:              data.ID,
		Title:           data.Title,
		Description:     data.Description,
		Category:        string(data.Category),
		Price:           data.Price,
		OldPrice:        data.OldPrice,
		DiscountPercent: data.DiscountPercent,
		Coins:           data.Coins,
		CountInStock:    data.CountInStock,
		InStock:         data.InStock,
		SaleCount:       data.SaleCount,
		RatingRate:      data.Rate.Rating,
		RatingCount:     data.Rate.RatingCount,
		Image:           data.Image,
		Sizes:           sizes,
		ShoeSizes:       shoeSizes,
		Specifications:  data.Specifications,
		Ingredients:     data.Ingredients,
		ExpiryDate:      data.ExpiryDate,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}
