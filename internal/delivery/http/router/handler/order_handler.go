package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"smarket/internal/delivery/http/middleware"
	"smarket/internal/delivery/http/response"
	"smarket/internal/domain/entity"
	"smarket/internal/usecase"
)

// OrderHandler holds dependencies for order-related handlers.
type OrderHandler struct {
	uc     usecase.OrderUsecase
	logger *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: logger,
	}
}

// PlaceOrder handles the checkout request for the authenticated user.
func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var input *usecase.PlaceOrderInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}

	order, err := h.uc.PlaceOrder(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, order, "Order placed successfully")
}

// GetOrder handles the request to fetch one order.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order ID")
	}

	order, err := h.uc.GetOrder(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order retrieved successfully")
}

// ListMyOrders handles the request for the authenticated user's order history.
func (h *OrderHandler) ListMyOrders(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	orders, err := h.uc.ListUserOrders(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "Orders retrieved successfully")
}

// ListOrders handles the admin listing of all orders. An optional status
// query parameter narrows the listing.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	if status := c.QueryParam("status"); status != "" {
		orders, err := h.uc.ListOrdersByStatus(c.Request().Context(), entity.OrderStatus(status))
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, orders, "Orders retrieved successfully")
	}

	orders, err := h.uc.ListAllOrders(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "Orders retrieved successfully")
}

// UpdateStatus handles the admin request to complete or cancel an order.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order ID")
	}

	var input struct {
		Status entity.OrderStatus `json:"status"`
	}
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}

	order, err := h.uc.UpdateStatus(c.Request().Context(), id, input.Status)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order status updated successfully")
}

// DeleteOrder handles the request to remove an order. Non-admin callers may
// only remove their own pending orders.
func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order ID")
	}

	isAdmin := middleware.CurrentRole(c).AtLeast(entity.RoleAdmin)
	if err := h.uc.DeleteOrder(c.Request().Context(), userID, isAdmin, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Order deleted successfully")
}

// MonthlyDoneOrders handles the admin report of completed orders for one
// calendar month.
func (h *OrderHandler) MonthlyDoneOrders(c echo.Context) error {
	year, month, err := parseYearMonth(c)
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid year or month")
	}

	orders, err := h.uc.MonthlyDoneOrders(c.Request().Context(), year, month)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "Monthly orders retrieved successfully")
}

// TopUsersByOrderCount handles the admin leaderboard of most frequent buyers.
func (h *OrderHandler) TopUsersByOrderCount(c echo.Context) error {
	totals, err := h.uc.TopUsersByOrderCount(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, totals, "Top users retrieved successfully")
}

// TopUsersByPaymentTotal handles the admin leaderboard of highest spenders.
func (h *OrderHandler) TopUsersByPaymentTotal(c echo.Context) error {
	totals, err := h.uc.TopUsersByPaymentTotal(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, totals, "Top users retrieved successfully")
}

// parseYearMonth reads the year and month query parameters, defaulting to the
// current calendar month.
func parseYearMonth(c echo.Context) (int, time.Month, error) {
	now := time.Now().UTC()
	year, month := now.Year(), now.Month()

	if raw := c.QueryParam("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, errors.WithStack(err)
		}
		year = parsed
	}
	if raw := c.QueryParam("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, errors.WithStack(err)
		}
		if parsed < 1 || parsed > 12 {
			return 0, 0, errors.Errorf("month out of range: %d", parsed)
		}
		month = time.Month(parsed)
	}

	return year, month, nil
}
