package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v82"
	"gorm.io/gorm"

	"lampstore/internal/client"
	"lampstore/internal/dto"
	"lampstore/internal/model"
	"lampstore/internal/repository"
)

// WebhookService finalizes paid checkouts: it verifies the event
// signature, materializes the order with its line items, decrements
// inventory and kicks off the confirmation email.
type WebhookService interface {
	HandleEvent(ctx context.Context, payload []byte, sigHeader string) error
}

type webhookServiceImpl struct {
	db               *gorm.DB
	stripeClient     client.StripeClient
	emailService     EmailService
	orderRepo        repository.OrderRepository
	productRepo      repository.ProductRepository
	webhookEventRepo repository.WebhookEventRepository
}

func NewWebhookService(
	db *gorm.DB,
	stripeClient client.StripeClient,
	emailService EmailService,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	webhookEventRepo repository.WebhookEventRepository,
) WebhookService {
	return &webhookServiceImpl{
		db:               db,
		stripeClient:     stripeClient,
		emailService:     emailService,
		orderRepo:        orderRepo,
		productRepo:      productRepo,
		webhookEventRepo: webhookEventRepo,
	}
}

func (s *webhookServiceImpl) HandleEvent(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := s.stripeClient.VerifyWebhook(payload, sigHeader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	switch event.Type {
	case "checkout.session.completed":
		return s.finalizeCheckout(ctx, &event)
	default:
		// acknowledged, ignored
		log.Printf("unhandled event type: %s", event.Type)
		return nil
	}
}

func (s *webhookServiceImpl) finalizeCheckout(ctx context.Context, event *stripe.Event) error {
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return fmt.Errorf("decode checkout session: %w", err)
	}

	userID := sess.Metadata["user_id"]
	if userID == "" {
		return ErrMissingUserID
	}

	processed, err := s.webhookEventRepo.Exists(ctx, event.ID)
	if err != nil {
		return fmt.Errorf("check webhook event: %w", err)
	}
	if processed {
		log.Printf("event %s already processed, skipping", event.ID)
		return nil
	}

	var paymentIntentID string
	if sess.PaymentIntent != nil {
		paymentIntentID = sess.PaymentIntent.ID
	}
	if paymentIntentID != "" {
		exists, err := s.orderRepo.ExistsByPaymentIntent(ctx, paymentIntentID)
		if err != nil {
			return fmt.Errorf("check payment intent: %w", err)
		}
		if exists {
			log.Printf("order for payment intent %s already exists, skipping", paymentIntentID)
			return nil
		}
	}

	// Stripe's record of what was actually paid for, not the original
	// checkout request.
	lineItems, err := s.stripeClient.ListLineItems(ctx, sess.ID)
	if err != nil {
		return fmt.Errorf("list line items: %w", err)
	}

	order := &model.Order{
		ID:             uuid.NewString(),
		UserID:         userID,
		OrderDate:      time.Now(),
		SubtotalAmount: metadataAmount(sess.Metadata, "subtotal"),
		TaxAmount:      metadataAmount(sess.Metadata, "tax"),
		ShippingAmount: metadataAmount(sess.Metadata, "shipping"),
		TotalAmount:    float64(sess.AmountTotal) / 100,
		Status:         "completed",
	}
	if paymentIntentID != "" {
		order.StripePaymentIntentID = &paymentIntentID
	}

	type resolvedItem struct {
		item      *model.OrderItem
		productID string
		quantity  int
	}

	var resolved []resolvedItem
	for _, li := range lineItems {
		productID, productName := lineItemProduct(li)
		if productID == "" {
			log.Printf("no product_id in line item metadata, skipping item on order %s", order.ID)
			continue
		}

		unitPrice := float64(0)
		if li.Price != nil {
			unitPrice = float64(li.Price.UnitAmount) / 100
		}
		quantity := int(li.Quantity)
		if quantity < 1 {
			quantity = 1
		}

		resolved = append(resolved, resolvedItem{
			item: &model.OrderItem{
				OrderID:      order.ID,
				ProductID:    productID,
				ProductName:  productName,
				ProductPrice: unitPrice,
				Quantity:     quantity,
				Subtotal:     unitPrice * float64(quantity),
			},
			productID: productID,
			quantity:  quantity,
		})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("store order in db: %w", err)
		}

		for _, ri := range resolved {
			if err := s.orderRepo.CreateOrderItems(ctx, tx, []*model.OrderItem{ri.item}); err != nil {
				return fmt.Errorf("store order item in db: %w", err)
			}

			decremented, err := s.productRepo.DecrementStock(ctx, tx, ri.productID, ri.quantity)
			if err != nil {
				return fmt.Errorf("decrement stock: %w", err)
			}
			if !decremented {
				log.Printf("insufficient inventory for product %s (wanted %d), stock left untouched", ri.productID, ri.quantity)
			}
		}

		if err := s.webhookEventRepo.MarkProcessed(ctx, tx, event.ID, string(event.Type)); err != nil {
			return fmt.Errorf("mark webhook event processed: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("order %s created for user %s", order.ID, userID)

	if email := buyerEmail(&sess); email != "" {
		// fire and forget; a lost email never fails the webhook
		go s.sendConfirmation(order.ID, email, buyerName(&sess, email))
	}

	return nil
}

func (s *webhookServiceImpl) sendConfirmation(orderID, email, name string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := s.emailService.SendOrderConfirmation(ctx, &dto.OrderEmailRequest{
		OrderID:   orderID,
		UserEmail: email,
		UserName:  name,
	})
	if err != nil {
		log.Printf("send order confirmation for %s: %v", orderID, err)
	}
}

func metadataAmount(metadata map[string]string, key string) float64 {
	v, err := strconv.ParseFloat(metadata[key], 64)
	if err != nil {
		return 0
	}
	return v
}

func lineItemProduct(li *stripe.LineItem) (productID, productName string) {
	productName = li.Description
	if li.Price == nil || li.Price.Product == nil {
		return "", productName
	}

	product := li.Price.Product
	if product.Name != "" {
		productName = product.Name
	}

	return product.Metadata["product_id"], productName
}

func buyerEmail(sess *stripe.CheckoutSession) string {
	if sess.CustomerDetails != nil && sess.CustomerDetails.Email != "" {
		return sess.CustomerDetails.Email
	}
	return sess.CustomerEmail
}

func buyerName(sess *stripe.CheckoutSession, email string) string {
	if sess.CustomerDetails != nil && sess.CustomerDetails.Name != "" {
		return sess.CustomerDetails.Name
	}
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
