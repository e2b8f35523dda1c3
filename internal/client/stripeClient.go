package client

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"

	"lampstore/internal/config"
)

// StripeClient wraps the pieces of the Stripe API the store uses:
// hosted checkout sessions, their line items, and webhook signature
// verification.
type StripeClient interface {
	CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	ListLineItems(ctx context.Context, sessionID string) ([]*stripe.LineItem, error)
	VerifyWebhook(payload []byte, sigHeader string) (stripe.Event, error)
}

type stripeClientImpl struct {
	webhookSecret string
}

func NewStripeClient(stripeCfg *config.Stripe) StripeClient {
	stripe.Key = stripeCfg.SecretKey
	return &stripeClientImpl{
		webhookSecret: stripeCfg.WebhookSecret,
	}
}

func (c *stripeClientImpl) CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	params.Context = ctx

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe create checkout session: %w", err)
	}

	return sess, nil
}

func (c *stripeClientImpl) ListLineItems(ctx context.Context, sessionID string) ([]*stripe.LineItem, error) {
	params := &stripe.CheckoutSessionListLineItemsParams{
		Session: stripe.String(sessionID),
	}
	params.Context = ctx
	// product_id lives on the price's product metadata
	params.AddExpand("data.price.product")

	var items []*stripe.LineItem
	iter := session.ListLineItems(params)
	for iter.Next() {
		items = append(items, iter.LineItem())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("stripe list line items: %w", err)
	}

	return items, nil
}

func (c *stripeClientImpl) VerifyWebhook(payload []byte, sigHeader string) (stripe.Event, error) {
	event, err := webhook.ConstructEventWithOptions(payload, sigHeader, c.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return stripe.Event{}, fmt.Errorf("verify webhook signature: %w", err)
	}

	return event, nil
}
