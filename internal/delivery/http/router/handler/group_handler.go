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

// GroupHandler holds dependencies for referral group handlers.
type GroupHandler struct {
	uc     usecase.GroupUsecase
	logger *slog.Logger
}

// NewGroupHandler is the constructor for GroupHandler, injected by Fx.
func NewGroupHandler(uc usecase.GroupUsecase, logger *slog.Logger) *GroupHandler {
	return &GroupHandler{
		uc:     uc,
		logger: logger,
	}
}

// CreateGroup handles the admin request to assemble a new group.
func (h *GroupHandler) CreateGroup(c echo.Context) error {
	adminID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var input *usecase.CreateGroupInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid group input")
	}

	group, err := h.uc.CreateGroup(c.Request().Context(), adminID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, group, "Group created successfully")
}

// GetGroup handles the admin request to fetch one group.
func (h *GroupHandler) GetGroup(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid group ID")
	}

	group, err := h.uc.GetGroup(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, group, "Group retrieved successfully")
}

// ListGroups handles the admin listing of all groups.
func (h *GroupHandler) ListGroups(c echo.Context) error {
	groups, err := h.uc.ListGroups(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, groups, "Groups retrieved successfully")
}

// DeleteGroup handles the admin request to disband a group.
func (h *GroupHandler) DeleteGroup(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid group ID")
	}

	if err := h.uc.DeleteGroup(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Group deleted successfully")
}

// ListMembers handles the request for a group's member accounts. Only
// members of the group may see the listing.
func (h *GroupHandler) ListMembers(c echo.Context) error {
	callerID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid group ID")
	}

	members, err := h.uc.ListMembers(c.Request().Context(), callerID, groupID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, members, "Group members retrieved successfully")
}

// MoveAmbassador handles the admin request to transfer an ambassador between
// groups.
func (h *GroupHandler) MoveAmbassador(c echo.Context) error {
	var input struct {
		AmbassadorID uuid.UUID `json:"ambassador_id" validate:"required"`
		FromGroupID  uuid.UUID `json:"from_group_id" validate:"required"`
		ToGroupID    uuid.UUID `json:"to_group_id" validate:"required"`
	}
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid transfer input")
	}

	if err := h.uc.MoveAmbassador(c.Request().Context(), input.AmbassadorID, input.FromGroupID, input.ToGroupID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Ambassador transferred successfully")
}

// ReplaceCoordinator handles the admin request to swap a group's coordinator.
func (h *GroupHandler) ReplaceCoordinator(c echo.Context) error {
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid group ID")
	}

	var input struct {
		CoordinatorID uuid.UUID `json:"coordinator_id" validate:"required"`
	}
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid coordinator input")
	}

	group, err := h.uc.ReplaceCoordinator(c.Request().Context(), groupID, input.CoordinatorID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, group, "Coordinator replaced successfully")
}

// RemoveAmbassador handles the admin request to drop an ambassador from a
// group.
func (h *GroupHandler) RemoveAmbassador(c echo.Context) error {
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid group ID")
	}

	ambassadorID, err := uuid.Parse(c.Param("ambassadorId"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid ambassador ID")
	}

	group, err := h.uc.RemoveAmbassador(c.Request().Context(), groupID, ambassadorID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, group, "Ambassador removed successfully")
}

// MonthlyTopSales handles the admin request to rank groups by one month's
// sales and reward the winner.
func (h *GroupHandler) MonthlyTopSales(c echo.Context) error {
	year, month, err := parseYearMonth(c)
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid year or month")
	}

	ranking, err := h.uc.ComputeMonthlyTopSales(c.Request().Context(), year, month)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, ranking, "Group ranking computed successfully")
}
