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

type AddressHandler struct {
	addressService service.AddressService
}

func NewAddressHandler(addressService service.AddressService) *AddressHandler {
	return &AddressHandler{
		addressService: addressService,
	}
}

func (h *AddressHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	userID, _ := c.Get(middleware.ContextUserID).(string)
	addresses, err := h.addressService.List(ctx, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, addresses)
}

func (h *AddressHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	userID, _ := c.Get(middleware.ContextUserID).(string)

	var req dto.AddressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.FullName == "" || req.AddressLine1 == "" || req.City == "" || req.PostalCode == "" || req.Country == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing required address fields")
	}

	address, err := h.addressService.Create(ctx, userID, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, address)
}

func (h *AddressHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	userID, _ := c.Get(middleware.ContextUserID).(string)

	var req dto.AddressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	address, err := h.addressService.Update(ctx, userID, c.Param("id"), &req)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "address not found")
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, address)
}

func (h *AddressHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	userID, _ := c.Get(middleware.ContextUserID).(string)

	err := h.addressService.Delete(ctx, userID, c.Param("id"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "address not found")
	}
	if err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *AddressHandler) SetDefault(c echo.Context) error {
	ctx := c.Request().Context()

	userID, _ := c.Get(middleware.ContextUserID).(string)

	err := h.addressService.SetDefault(ctx, userID, c.Param("id"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "address not found")
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "default updated"})
}
