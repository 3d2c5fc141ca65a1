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
)

// commentRepository implements the repository.CommentRepository interface using GORM.
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository is the constructor for commentRepository.
func NewCommentRepository(db *gorm.DB) repository.CommentRepository {
	return &commentRepository{
		db: db,
	}
}

// Create persists a new comment.
func (repo *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	commentM := fromCommentDomain(comment)

	if err := repo.db.WithContext(ctx).Create(commentM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid product or user reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create comment")
	}

	comment.ID = commentM.ID
	comment.CreatedAt = commentM.CreatedAt
	comment.UpdatedAt = commentM.UpdatedAt

	return nil
}

// FindByID retrieves a single comment by its unique ID.
func (repo *commentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error) {
	var commentM model.CommentModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&commentM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCommentNotFound
		}

		return nil, errors.Wrap(err, "failed to find comment by id")
	}

	return toCommentDomain(&commentM), nil
}

// FindByProduct retrieves all comments on the product, newest first.
func (repo *commentRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.Comment, error) {
	var commentModels []*model.CommentModel

	if err := repo.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&commentModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find comments by product")
	}

	return toCommentDomainSlice(commentModels), nil
}

// Delete removes a comment.
func (repo *commentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.CommentModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete comment")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCommentNotFound
	}

	return nil
}

// toCommentDomain maps a persistence model to a pure domain entity.
func toCommentDomain(data *model.CommentModel) *entity.Comment {
	return &entity.Comment{
		ID:        data.ID,
		ProductID: data.ProductID,
		UserID:    data.UserID,
		Text:      data.Text,
		Rating:    data.Rating,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func toCommentDomainSlice(models []*model.CommentModel) []*entity.Comment {
	comments := make([]*entity.Comment, 0, len(models))
	for _, commentM := range models {
		comments = append(comments, toCommentDomain(commentM))
	}

	return comments
}

// fromCommentDomain maps a pure domain entity to a GORM persistence model.
func fromCommentDomain(data *entity.Comment) *model.CommentModel {
	return &model.CommentModel{
		ID:        data.ID,
		ProductID: data.ProductID,
		UserID:    data.UserID,
		Text:      data.Text,
		Rating:    data.Rating,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
