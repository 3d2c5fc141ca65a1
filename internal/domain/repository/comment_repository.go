package repository

import (
	"context"
	"errors"

	"smarket/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCommentNotFound is returned when a comment is not found.
var ErrCommentNotFound = errors.New("comment not found")

// CommentRepository defines operations for product comment persistence.
type CommentRepository interface {
	// Create persists a new comment.
	Create(ctx context.Context, comment *entity.Comment) error

	// FindByID retrieves a single comment by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error)

	// FindByProduct retrieves all comments on the product, newest first.
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.Comment, error)

	// Delete removes a comment.
	Delete(ctx context.Context, id uuid.UUID) error
}
