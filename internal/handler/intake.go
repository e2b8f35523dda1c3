package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"lampstore/internal/dto"
	"lampstore/internal/service"
)

type IntakeHandler struct {
	intakeService service.IntakeService
}

func NewIntakeHandler(intakeService service.IntakeService) *IntakeHandler {
	return &IntakeHandler{
		intakeService: intakeService,
	}
}

func (h *IntakeHandler) SubscribeNewsletter(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.NewsletterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return echo.NewHTTPError(http.StatusBadRequest, "a valid email is required")
	}

	err := h.intakeService.SubscribeNewsletter(ctx, email)
	if errors.Is(err, service.ErrAlreadySubscribed) {
		return echo.NewHTTPError(http.StatusConflict, "this email is already subscribed to our newsletter")
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]string{"status": "subscribed"})
}

func (h *IntakeHandler) ListSubscriptions(c echo.Context) error {
	ctx := c.Request().Context()

	subs, err := h.intakeService.ListSubscriptions(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, subs)
}

func (h *IntakeHandler) SubmitContactForm(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ContactEmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name, email and message are required")
	}

	if err := h.intakeService.SubmitContactForm(ctx, &req); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
