package impl

import (
	"context"
	"log/slog"
	"strings"

	"smarket/internal/domain/entity"
	domainerrors "smarket/internal/domain/errors"
	"smarket/internal/domain/repository"
	"smarket/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// commentService implements the CommentUsecase interface.
type commentService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewCommentService is the constructor for commentService.
func NewCommentService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.CommentUsecase {
	return &commentService{
		txManager: txManager,
		logger:    logger,
	}
}

// AddComment posts a review on the product. The review's rating is folded
// into the product's running mean inside the same transaction, so the comment
// and the aggregate never drift apart.
func (srv *commentService) AddComment(ctx context.Context, userID uuid.UUID, productID uuid.UUID, input *usecase.CommentInput) (*entity.Comment, error) {
	srv.logger.Info("Adding comment", "userID", userID, "productID", productID)

	if strings.TrimSpace(input.Text) == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "comment text is required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "rating must be between 1 and 5")
	}

	comment := &entity.Comment{
		ProductID: productID,
		UserID:    userID,
		Text:      input.Text,
		Rating:    input.Rating,
	}
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.NewProductRepository()

		product, err := productRepo.FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
			}

			return errors.Wrap(err, "failed to find product")
		}

		if err := repoFactory.NewCommentRepository().Create(ctx, comment); err != nil {
			return errors.Wrap(err, "failed to create comment")
		}

		product.Rate.Add(input.Rating)
		if err := productRepo.Update(ctx, product); err != nil {
			return errors.Wrap(err, "failed to save product rating")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return comment, nil
}

// ListProductComments retrieves the product's comments, newest first.
func (srv *commentService) ListProductComments(ctx context.Context, productID uuid.UUID) ([]*entity.Comment, error) {
	var comments []*entity.Comment

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.NewProductRepository().FindByID(ctx, productID); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
			}

			return errors.Wrap(err, "failed to find product")
		}

		found, err := repoFactory.NewCommentRepository().FindByProduct(ctx, productID)
		if err != nil {
			return errors.Wrap(err, "failed to list comments")
		}
		comments = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return comments, nil
}

// DeleteComment removes a comment. Non-admin callers may only delete their
// own comments; admins may delete any comment.
func (srv *commentService) DeleteComment(ctx context.Context, callerID uuid.UUID, isAdmin bool, id uuid.UUID) error {
	srv.logger.Info("Deleting comment", "commentID", id, "callerID", callerID, "admin", isAdmin)

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		commentRepo := repoFactory.NewCommentRepository()

		comment, err := commentRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrCommentNotFound) {
				return errors.Wrap(domainerrors.ErrCommentNotFound, "comment not found")
			}

			return errors.Wrap(err, "failed to find comment")
		}

		if !isAdmin && comment.UserID != callerID {
			return errors.Wrap(domainerrors.ErrForbidden, "you may only delete your own comments")
		}

		if err := commentRepo.Delete(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete comment")
		}

		return nil
	})
}
