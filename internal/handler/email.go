package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"lampstore/internal/dto"
	"lampstore/internal/service"
)

// EmailHandler exposes the internal email-dispatch endpoints. They
// are service-key protected; the webhook finalizer and admin screens
// are the only callers.
type EmailHandler struct {
	emailService service.EmailService
}

func NewEmailHandler(emailService service.EmailService) *EmailHandler {
	return &EmailHandler{
		emailService: emailService,
	}
}

func (h *EmailHandler) OrderConfirmation(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.OrderEmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.OrderID == "" || req.UserEmail == "" || req.UserName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing required fields")
	}

	emailID, err := h.emailService.SendOrderConfirmation(ctx, &req)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"emailId": emailID,
	})
}

func (h *EmailHandler) ShippingNotification(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.OrderEmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.OrderID == "" || req.UserEmail == "" || req.UserName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing required fields")
	}

	emailID, err := h.emailService.SendShippingNotification(ctx, &req)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"emailId": emailID,
	})
}

func (h *EmailHandler) ContactEmail(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ContactEmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing required fields")
	}

	emailID, err := h.emailService.SendContactEmail(ctx, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"emailId": emailID,
	})
}
