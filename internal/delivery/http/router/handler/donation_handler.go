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

// DonationHandler holds dependencies for the Help and Hope catalog and the
// donation handlers.
type DonationHandler struct {
	itemUC usecase.HelpAndHopeUsecase
	uc     usecase.DonationUsecase
	logger *slog.Logger
}

// NewDonationHandler is the constructor for DonationHandler, injected by Fx.
func NewDonationHandler(itemUC usecase.HelpAndHopeUsecase, uc usecase.DonationUsecase, logger *slog.Logger) *DonationHandler {
	return &DonationHandler{
		itemUC: itemUC,
		uc:     uc,
		logger: logger,
	}
}

// CreateItem handles the admin request to add a charitable catalog item.
func (h *DonationHandler) CreateItem(c echo.Context) error {
	var input *usecase.HelpAndHopeInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid item input")
	}

	item, err := h.itemUC.CreateItem(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, item, "Item created successfully")
}

// UpdateItem handles the admin request to edit a charitable catalog item.
func (h *DonationHandler) UpdateItem(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid item ID")
	}

	var input *usecase.HelpAndHopeInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid item input")
	}

	item, err := h.itemUC.UpdateItem(c.Request().Context(), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, item, "Item updated successfully")
}

// DeleteItem handles the admin request to remove a charitable catalog item.
func (h *DonationHandler) DeleteItem(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid item ID")
	}

	if err := h.itemUC.DeleteItem(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Item deleted successfully")
}

// GetItem handles the request to fetch one charitable catalog item.
func (h *DonationHandler) GetItem(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid item ID")
	}

	item, err := h.itemUC.GetItem(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, item, "Item retrieved successfully")
}

// ListItems handles the request to browse the charitable catalog.
func (h *DonationHandler) ListItems(c echo.Context) error {
	items, err := h.itemUC.ListItems(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, items, "Items retrieved successfully")
}

// Donate handles the coin-funded donation request for the authenticated user.
func (h *DonationHandler) Donate(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var input *usecase.DonateInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid donation input")
	}

	history, err := h.uc.Donate(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, history, "Donation recorded successfully")
}

// ListMyDonations handles the request for the authenticated user's donation
// history.
func (h *DonationHandler) ListMyDonations(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	donations, err := h.uc.ListUserDonations(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, donations, "Donations retrieved successfully")
}

// GetDonation handles the admin request to fetch one donation record.
func (h *DonationHandler) GetDonation(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid donation ID")
	}

	donation, err := h.uc.GetDonation(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, donation, "Donation retrieved successfully")
}

// ListDonations handles the admin listing of all donation records.
func (h *DonationHandler) ListDonations(c echo.Context) error {
	donations, err := h.uc.ListAllDonations(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, donations, "Donations retrieved successfully")
}

// MonthlyDonations handles the admin report of one month's donations.
func (h *DonationHandler) MonthlyDonations(c echo.Context) error {
	year, month, err := parseYearMonth(c)
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid year or month")
	}

	donations, err := h.uc.MonthlyDonations(c.Request().Context(), year, month)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, donations, "Monthly donations retrieved successfully")
}

// DeleteDonation handles the admin request to remove a donation record.
func (h *DonationHandler) DeleteDonation(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid donation ID")
	}

	if err := h.uc.DeleteDonation(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Donation deleted successfully")
}

// TopDonorsByCount handles the admin leaderboard of most frequent donors.
func (h *DonationHandler) TopDonorsByCount(c echo.Context) error {
	totals, err := h.uc.TopDonorsByCount(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, totals, "Top donors retrieved successfully")
}

// TopDonorsByCoins handles the admin leaderboard of highest coin donors.
func (h *DonationHandler) TopDonorsByCoins(c echo.Context) error {
	totals, err := h.uc.TopDonorsByCoins(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, totals, "Top donors retrieved successfully")
}
