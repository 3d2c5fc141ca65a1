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

// RoleRequestHandler holds dependencies for role escalation handlers.
type RoleRequestHandler struct {
	uc     usecase.RoleRequestUsecase
	logger *slog.Logger
}

// NewRoleRequestHandler is the constructor for RoleRequestHandler, injected by Fx.
func NewRoleRequestHandler(uc usecase.RoleRequestUsecase, logger *slog.Logger) *RoleRequestHandler {
	return &RoleRequestHandler{
		uc:     uc,
		logger: logger,
	}
}

// Submit handles the authenticated user's role escalation request.
func (h *RoleRequestHandler) Submit(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var input struct {
		Message string `json:"message" validate:"required"`
	}
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid request input")
	}

	request, err := h.uc.Submit(c.Request().Context(), userID, input.Message)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, request, "Request submitted successfully")
}

// GetRequest handles the admin request to fetch one escalation request.
func (h *RoleRequestHandler) GetRequest(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid request ID")
	}

	request, err := h.uc.GetRequest(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, request, "Request retrieved successfully")
}

// ListRequests handles the admin listing of escalation requests. An optional
// status query parameter narrows the listing.
func (h *RoleRequestHandler) ListRequests(c echo.Context) error {
	if status := c.QueryParam("status"); status != "" {
		requests, err := h.uc.ListByStatus(c.Request().Context(), entity.RoleRequestStatus(status))
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, requests, "Requests retrieved successfully")
	}

	requests, err := h.uc.ListRequests(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, requests, "Requests retrieved successfully")
}

// Resolve handles the admin approval or rejection of a pending request.
func (h *RoleRequestHandler) Resolve(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid request ID")
	}

	var input struct {
		Status entity.RoleRequestStatus `json:"status" validate:"required"`
	}
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}

	request, err := h.uc.Resolve(c.Request().Context(), id, input.Status)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, request, "Request resolved successfully")
}

// DeleteRequest handles the admin request to remove a resolved request.
func (h *RoleRequestHandler) DeleteRequest(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid request ID")
	}

	if err := h.uc.DeleteRequest(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Request deleted successfully")
}
