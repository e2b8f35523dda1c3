package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"lampstore/internal/service"
)

type WebhookHandler struct {
	webhookService service.WebhookService
}

func NewWebhookHandler(webhookService service.WebhookService) *WebhookHandler {
	return &WebhookHandler{
		webhookService: webhookService,
	}
}

// StripeWebhook receives signed event deliveries. Signature
// verification needs the unparsed body bytes, so the payload is read
// raw. Anything but a clean 2xx makes Stripe redeliver.
func (h *WebhookHandler) StripeWebhook(c echo.Context) error {
	ctx := c.Request().Context()

	sigHeader := c.Request().Header.Get("Stripe-Signature")
	if sigHeader == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "no signature provided")
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable body")
	}

	err = h.webhookService.HandleEvent(ctx, body, sigHeader)
	switch {
	case errors.Is(err, service.ErrInvalidSignature),
		errors.Is(err, service.ErrMissingUserID):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case err != nil:
		// 5xx signals Stripe to retry delivery
		return err
	}

	return c.JSON(http.StatusOK, map[string]bool{"received": true})
}
