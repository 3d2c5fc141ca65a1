package impl

import (
	"context"
	"testing"

	"smarket/internal/domain/entity"
	domainerrors "smarket/internal/domain/errors"
	"smarket/internal/domain/repository"
	"smarket/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestCommentService() (usecase.CommentUsecase, *stubRepositoryFactory) {
	factory := newStubFactory()
	svc := NewCommentService(&stubTxManager{factory: factory}, newDiscardLogger())

	return svc, factory
}

func TestCommentService_AddComment_FoldsRatingIntoMean(t *testing.T) {
	svc, factory := createTestCommentService()

	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	product := &entity.Product{
		ID:    productID,
		Title: "Espresso Machine",
		Rate:  entity.Rating{Rating: 4, RatingCount: 1},
	}

	factory.products.On("FindByID", ctx, productID).Return(product, nil)
	factory.comments.On("Create", ctx, mock.Anything).Return(nil)
	factory.products.On("Update", ctx, mock.MatchedBy(func(p *entity.Product) bool {
		// (4 + 2) / 2
		return p.Rate.RatingCount == 2 && p.Rate.Rating == 3
	})).Return(nil)

	comment, err := svc.AddComment(ctx, userID, productID, &usecase.CommentInput{
		Text:   "Broke after a week.",
		Rating: 2,
	})

	require.NoError(t, err)
	assert.Equal(t, productID, comment.ProductID)
	assert.Equal(t, userID, comment.UserID)
	assert.Equal(t, 2, comment.Rating)
	factory.products.AssertCalled(t, "Update", ctx, mock.Anything)
}

func TestCommentService_AddComment_UnknownProduct(t *testing.T) {
	svc, factory := createTestCommentService()

	ctx := context.Background()
	productID := uuid.New()

	factory.products.On("FindByID", ctx, productID).Return(nil, repository.ErrProductNotFound)

	_, err := svc.AddComment(ctx, uuid.New(), productID, &usecase.CommentInput{
		Text:   "Where is it?",
		Rating: 3,
	})

	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
	factory.comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCommentService_AddComment_InvalidInput(t *testing.T) {
	svc, factory := createTestCommentService()

	ctx := context.Background()

	_, err := svc.AddComment(ctx, uuid.New(), uuid.New(), &usecase.CommentInput{Text: "  ", Rating: 3})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = svc.AddComment(ctx, uuid.New(), uuid.New(), &usecase.CommentInput{Text: "Fine", Rating: 6})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	factory.comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCommentService_ListProductComments_UnknownProduct(t *testing.T) {
	svc, factory := createTestCommentService()

	ctx := context.Background()
	productID := uuid.New()

	factory.products.On("FindByID", ctx, productID).Return(nil, repository.ErrProductNotFound)

	_, err := svc.ListProductComments(ctx, productID)

	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
	factory.comments.AssertNotCalled(t, "FindByProduct", mock.Anything, mock.Anything)
}

func TestCommentService_DeleteComment_OwnerOnly(t *testing.T) {
	svc, factory := createTestCommentService()

	ctx := context.Background()
	ownerID := uuid.New()
	commentID := uuid.New()

	comment := &entity.Comment{ID: commentID, UserID: ownerID}
	factory.comments.On("FindByID", ctx, commentID).Return(comment, nil)
	factory.comments.On("Delete", ctx, commentID).Return(nil)

	require.NoError(t, svc.DeleteComment(ctx, ownerID, false, commentID))
	factory.comments.AssertCalled(t, "Delete", ctx, commentID)
}

func TestCommentService_DeleteComment_ForbiddenForOtherUsers(t *testing.T) {
	svc, factory := createTestCommentService()

	ctx := context.Background()
	commentID := uuid.New()

	comment := &entity.Comment{ID: commentID, UserID: uuid.New()}
	factory.comments.On("FindByID", ctx, commentID).Return(comment, nil)

	err := svc.DeleteComment(ctx, uuid.New(), false, commentID)

	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	factory.comments.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCommentService_DeleteComment_AdminMayDeleteAnything(t *testing.T) {
	svc, factory := createTestCommentService()

	ctx := context.Background()
	commentID := uuid.New()

	comment := &entity.Comment{ID: commentID, UserID: uuid.New()}
	factory.comments.On("FindByID", ctx, commentID).Return(comment, nil)
	factory.comments.On("Delete", ctx, commentID).Return(nil)

	require.NoError(t, svc.DeleteComment(ctx, uuid.New(), true, commentID))
}
