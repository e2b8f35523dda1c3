package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"

	"lampstore/internal/cart"
	"lampstore/internal/client"
	"lampstore/internal/dto"
	"lampstore/internal/repository"
)

// CheckoutService builds hosted Stripe checkout sessions. Prices come
// from the product store, never from the request; all persistence is
// deferred to the webhook finalizer.
type CheckoutService interface {
	CreateSession(ctx context.Context, userID string, items []*dto.CartItem) (string, error)
}

type checkoutServiceImpl struct {
	stripeClient client.StripeClient
	appURL       string
	productRepo  repository.ProductRepository
}

func NewCheckoutService(
	stripeClient client.StripeClient,
	appURL string,
	productRepo repository.ProductRepository,
) CheckoutService {
	return &checkoutServiceImpl{
		stripeClient: stripeClient,
		appURL:       appURL,
		productRepo:  productRepo,
	}
}

func (s *checkoutServiceImpl) CreateSession(ctx context.Context, userID string, items []*dto.CartItem) (string, error) {
	if len(items) == 0 {
		return "", ErrEmptyCart
	}

	productIDs := make([]string, len(items))
	for i, item := range items {
		if item.Quantity <= 0 {
			return "", ErrInvalidQuantity
		}
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.FindMany(ctx, productIDs)
	if err != nil {
		return "", fmt.Errorf("fetch products: %w", err)
	}

	productMap := make(map[string]int, len(products))
	for i, p := range products {
		productMap[p.ID] = i
	}

	hundred := decimal.NewFromInt(100)
	subtotal := decimal.Zero
	shipping := decimal.Zero

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, len(items))
	for i, item := range items {
		idx, ok := productMap[item.ProductID]
		if !ok {
			// no partial sessions
			return "", fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductID)
		}
		product := products[idx]

		price := decimal.NewFromFloat(product.Price)
		unitAmount := price.Mul(hundred).Round(0).IntPart()

		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		shipping = shipping.Add(decimal.NewFromFloat(product.ShippingPrice))

		lineItems[i] = &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String("usd"),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(product.Name),
					Metadata: map[string]string{
						"product_id": product.ID,
					},
				},
				UnitAmount: stripe.Int64(unitAmount),
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		}
	}

	tax := subtotal.Mul(cart.TaxRate).Round(2)

	cartJSON, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("marshal cart items: %w", err)
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripe.String(s.appURL + "?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(s.appURL + "?canceled=true"),
	}
	params.AddMetadata("user_id", userID)
	params.AddMetadata("cart_items", string(cartJSON))
	params.AddMetadata("subtotal", subtotal.StringFixed(2))
	params.AddMetadata("shipping", shipping.StringFixed(2))
	params.AddMetadata("tax", tax.StringFixed(2))

	sess, err := s.stripeClient.CreateCheckoutSession(ctx, params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}

	return sess.URL, nil
}
