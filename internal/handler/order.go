package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"lampstore/internal/dto"
	"lampstore/internal/middleware"
	"lampstore/internal/service"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func (h *OrderHandler) MyOrders(c echo.Context) error {
	ctx := c.Request().Context()

	userID, _ := c.Get(middleware.ContextUserID).(string)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization")
	}

	orders, err := h.orderService.ListForUser(ctx, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) AdminListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.orderService.ListAll(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) UpdateShipping(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ShippingUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	order, err := h.orderService.SetShipped(ctx, c.Param("id"), &req, req.UserEmail, req.UserName)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, order)
}
