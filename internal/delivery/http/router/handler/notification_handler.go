package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"smarket/internal/delivery/http/middleware"
	"smarket/internal/delivery/http/response"
	"smarket/internal/usecase"
)

// NotificationHandler holds dependencies for notification feed handlers.
type NotificationHandler struct {
	uc     usecase.NotificationUsecase
	logger *slog.Logger
}

// NewNotificationHandler is the constructor for NotificationHandler, injected by Fx.
func NewNotificationHandler(uc usecase.NotificationUsecase, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListMyNotifications handles the request for the authenticated user's feed.
func (h *NotificationHandler) ListMyNotifications(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	notifications, err := h.uc.ListUserNotifications(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, notifications, "Notifications retrieved successfully")
}

// MarkRead handles the request to mark one notification as read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid notification ID")
	}

	if err := h.uc.MarkRead(c.Request().Context(), userID, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Notification marked as read")
}

// NotifyAmbassadorEligibility handles the admin campaign inviting users to
// the ambassador role.
func (h *NotificationHandler) NotifyAmbassadorEligibility(c echo.Context) error {
	sent, err := h.uc.NotifyAmbassadorEligibility(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]int{"sent": sent}, "Campaign sent successfully")
}

// NotifyCoordinatorEligibility handles the admin campaign congratulating
// ambassadors eligible for the coordinator role.
func (h *NotificationHandler) NotifyCoordinatorEligibility(c echo.Context) error {
	sent, err := h.uc.NotifyCoordinatorEligibility(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]int{"sent": sent}, "Campaign sent successfully")
}

// NotifyFirstOrderDiscount handles the admin campaign reminding new users of
// the first order discount.
func (h *NotificationHandler) NotifyFirstOrderDiscount(c echo.Context) error {
	sent, err := h.uc.NotifyFirstOrderDiscount(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]int{"sent": sent}, "Campaign sent successfully")
}
