package service

import (
	"context"
	"fmt"
	"strings"

	"lampstore/internal/client"
	"lampstore/internal/dto"
	"lampstore/internal/repository"
)

// EmailService renders and dispatches transactional email through
// Resend.
type EmailService interface {
	SendOrderConfirmation(ctx context.Context, req *dto.OrderEmailRequest) (string, error)
	SendShippingNotification(ctx context.Context, req *dto.OrderEmailRequest) (string, error)
	SendContactEmail(ctx context.Context, req *dto.ContactEmailRequest) (string, error)
}

type emailServiceImpl struct {
	resendClient client.ResendClient
	contactInbox string
	orderRepo    repository.OrderRepository
}

func NewEmailService(
	resendClient client.ResendClient,
	contactInbox string,
	orderRepo repository.OrderRepository,
) EmailService {
	return &emailServiceImpl{
		resendClient: resendClient,
		contactInbox: contactInbox,
		orderRepo:    orderRepo,
	}
}

func (s *emailServiceImpl) SendOrderConfirmation(ctx context.Context, req *dto.OrderEmailRequest) (string, error) {
	order, err := s.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return "", fmt.Errorf("order not found: %w", err)
	}

	items, err := s.orderRepo.GetOrderItems(ctx, req.OrderID)
	if err != nil {
		return "", fmt.Errorf("get order items: %w", err)
	}

	var rows strings.Builder
	for _, item := range items {
		rows.WriteString(fmt.Sprintf(
			`<tr><td style="padding:12px;border-bottom:1px solid #4a3728;">%s</td>`+
				`<td style="padding:12px;text-align:center;">%d</td>`+
				`<td style="padding:12px;text-align:right;">$%.2f</td>`+
				`<td style="padding:12px;text-align:right;">$%.2f</td></tr>`,
			htmlEscape(item.ProductName), item.Quantity, item.ProductPrice, item.Subtotal,
		))
	}

	html := fmt.Sprintf(`<!DOCTYPE html>
<html><body style="font-family:Arial,sans-serif;background-color:#1a1410;color:#e7dcc8;">
<h1 style="color:#fbbf24;">Lord Smith Lamps</h1>
<h2>Thank you, %s!</h2>
<p>Your order has been successfully placed and payment confirmed.</p>
<p>Order #%s</p>
<table width="100%%" cellpadding="0" cellspacing="0">
<thead><tr style="color:#fbbf24;"><th align="left">Item</th><th>Qty</th><th align="right">Price</th><th align="right">Subtotal</th></tr></thead>
<tbody>%s</tbody>
</table>
<p>Subtotal: $%.2f<br>Shipping: $%.2f<br>Tax (9.5%%): $%.2f<br><strong>Total: $%.2f</strong></p>
<p>We're carefully preparing your handcrafted lamp(s) for shipment. You'll receive a
separate email with tracking information once your order has shipped.</p>
<p style="color:#8b7355;">Thank you for supporting handcrafted, sustainable lighting.</p>
</body></html>`,
		htmlEscape(req.UserName), shortOrderRef(order.ID), rows.String(),
		order.SubtotalAmount, order.ShippingAmount, order.TaxAmount, order.TotalAmount,
	)

	return s.resendClient.Send(ctx, req.UserEmail,
		"Order Confirmation - Thank you for your purchase!", html)
}

func (s *emailServiceImpl) SendShippingNotification(ctx context.Context, req *dto.OrderEmailRequest) (string, error) {
	order, err := s.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return "", fmt.Errorf("order not found: %w", err)
	}

	tracking := req.TrackingNumber
	if tracking == "" {
		tracking = order.TrackingNumber
	}

	trackingLine := "<p>Tracking details will follow shortly.</p>"
	if tracking != "" {
		trackingLine = fmt.Sprintf(`<p><strong>Tracking number:</strong> %s</p>`, htmlEscape(tracking))
	}

	html := fmt.Sprintf(`<!DOCTYPE html>
<html><body style="font-family:Arial,sans-serif;background-color:#1a1410;color:#e7dcc8;">
<h1 style="color:#fbbf24;">Lord Smith Lamps</h1>
<h2>Good news, %s! Your order is on its way.</h2>
<p>Order #%s has shipped.</p>
%s
<p style="color:#8b7355;">Thank you for supporting handcrafted, sustainable lighting.</p>
</body></html>`,
		htmlEscape(req.UserName), shortOrderRef(order.ID), trackingLine,
	)

	return s.resendClient.Send(ctx, req.UserEmail, "Your order has shipped!", html)
}

func (s *emailServiceImpl) SendContactEmail(ctx context.Context, req *dto.ContactEmailRequest) (string, error) {
	html := fmt.Sprintf(`<!DOCTYPE html>
<html><body style="font-family:Arial,sans-serif;">
<h2>New contact form submission</h2>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Message:</strong></p>
<p>%s</p>
</body></html>`,
		htmlEscape(req.Name), htmlEscape(req.Email), htmlEscape(req.Message),
	)

	return s.resendClient.Send(ctx, s.contactInbox,
		"Contact form: "+req.Name, html)
}

// shortOrderRef matches the storefront's short order reference: first
// eight characters of the id, upper-cased.
func shortOrderRef(orderID string) string {
	ref := orderID
	if len(ref) > 8 {
		ref = ref[:8]
	}
	return strings.ToUpper(ref)
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func htmlEscape(s string) string {
	return htmlEscaper.Replace(s)
}
