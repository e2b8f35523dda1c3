package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"lampstore/internal/dto"
	"lampstore/internal/middleware"
	"lampstore/internal/service"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

func (h *CheckoutHandler) CreateSession(c echo.Context) error {
	ctx := c.Request().Context()

	userID, _ := c.Get(middleware.ContextUserID).(string)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization")
	}

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	url, err := h.checkoutService.CreateSession(ctx, userID, req.CartItems)
	switch {
	case errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrProductNotFound):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case err != nil:
		return err
	}

	return c.JSON(http.StatusOK, &dto.CheckoutResponse{URL: url})
}
