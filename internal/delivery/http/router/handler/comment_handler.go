package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"smarket/internal/delivery/http/middleware"
	"smarket/internal/delivery/http/response"
	"smarket/internal/domain/entity"
	"smarket/internal/usecase"
)

// CommentHandler holds dependencies for product review handlers.
type CommentHandler struct {
	uc     usecase.CommentUsecase
	logger *slog.Logger
}

// NewCommentHandler is the constructor for CommentHandler, injected by Fx.
func NewCommentHandler(uc usecase.CommentUsecase, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{
		uc:     uc,
		logger: logger,
	}
}

// AddComment handles the authenticated user's request to review a product.
func (h *CommentHandler) AddComment(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product ID")
	}

	var input *usecase.CommentInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid comment input")
	}

	comment, err := h.uc.AddComment(c.Request().Context(), userID, productID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, comment, "Comment added successfully")
}

// ListProductComments handles the request to browse a product's reviews.
func (h *CommentHandler) ListProductComments(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product ID")
	}

	comments, err := h.uc.ListProductComments(c.Request().Context(), productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, comments, "Comments retrieved successfully")
}

// DeleteComment handles the request to remove a review. Non-admin callers may
// only remove their own comments.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid comment ID")
	}

	isAdmin := middleware.CurrentRole(c).AtLeast(entity.RoleAdmin)
	if err := h.uc.DeleteComment(c.Request().Context(), userID, isAdmin, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Comment deleted successfully")
}
