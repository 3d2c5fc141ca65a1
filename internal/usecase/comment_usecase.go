package usecase

import (
	"context"

	"smarket/internal/domain/entity"

	"github.com/google/uuid"
)

// CommentUsecase defines the interface for product review operations.
type CommentUsecase interface {
	// AddComment posts a review on the product and folds its rating into the
	// product's running mean.
	AddComment(ctx context.Context, userID uuid.UUID, productID uuid.UUID, input *CommentInput) (*entity.Comment, error)
	ListProductComments(ctx context.Context, productID uuid.UUID) ([]*entity.Comment, error)
	// DeleteComment removes a comment. Non-admin callers may only delete
	// their own comments.
	DeleteComment(ctx context.Context, callerID uuid.UUID, isAdmin bool, id uuid.UUID) error
}

// CommentInput defines the data required to post a product review.
type CommentInput struct {
	Text   string `json:"comment" validate:"required"`
	Rating int    `json:"rating" validate:"required,gte=1,lte=5"`
}
