package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"
	"gorm.io/gorm"

	"lampstore/internal/model"
	"lampstore/internal/repository"
)

type webhookFixture struct {
	svc          WebhookService
	db           *gorm.DB
	stripeClient *fakeStripeClient
	emails       *stubEmailService
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
}

func newWebhookFixture(t *testing.T) *webhookFixture {
	t.Helper()

	db := newTestDB(t)
	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	webhookEventRepo := repository.NewWebhookEventRepository(db)
	stripeClient := &fakeStripeClient{}
	emails := newStubEmailService()

	return &webhookFixture{
		svc:          NewWebhookService(db, stripeClient, emails, orderRepo, productRepo, webhookEventRepo),
		db:           db,
		stripeClient: stripeClient,
		emails:       emails,
		orderRepo:    orderRepo,
		productRepo:  productRepo,
	}
}

func (f *webhookFixture) orderCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.db.Model(&model.Order{}).Count(&count).Error)
	return count
}

func (f *webhookFixture) itemCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.db.Model(&model.OrderItem{}).Count(&count).Error)
	return count
}

func sessionEvent(eventID, paymentIntent string, amountTotal int64, metadata map[string]string) []byte {
	object := map[string]interface{}{
		"id":           "cs_test_123",
		"amount_total": amountTotal,
		"metadata":     metadata,
		"customer_details": map[string]string{
			"email": "buyer@example.com",
			"name":  "Buyer Smith",
		},
	}
	if paymentIntent != "" {
		object["payment_intent"] = paymentIntent
	}

	payload, _ := json.Marshal(map[string]interface{}{
		"id":   eventID,
		"type": "checkout.session.completed",
		"data": map[string]interface{}{"object": object},
	})
	return payload
}

func paidLineItem(productID, name string, unitAmount, quantity int64) *stripe.LineItem {
	product := &stripe.Product{ID: "prod_" + productID, Name: name}
	if productID != "" {
		product.Metadata = map[string]string{"product_id": productID}
	}

	return &stripe.LineItem{
		Description: name,
		Quantity:    quantity,
		Price: &stripe.Price{
			UnitAmount: unitAmount,
			Product:    product,
		},
	}
}

func TestHandleEvent_InvalidSignatureNoWrites(t *testing.T) {
	f := newWebhookFixture(t)
	f.stripeClient.verifyErr = errors.New("bad signature")

	err := f.svc.HandleEvent(context.Background(), []byte(`{}`), "t=1,v1=bogus")
	assert.ErrorIs(t, err, ErrInvalidSignature)

	assert.Zero(t, f.orderCount(t))
	assert.Zero(t, f.itemCount(t))
}

func TestHandleEvent_MissingUserIDNoWrites(t *testing.T) {
	f := newWebhookFixture(t)

	payload := sessionEvent("evt_1", "pi_1", 5000, map[string]string{})

	err := f.svc.HandleEvent(context.Background(), payload, "sig")
	assert.ErrorIs(t, err, ErrMissingUserID)

	assert.Zero(t, f.orderCount(t))
	assert.Zero(t, f.itemCount(t))
}

func TestHandleEvent_UnhandledEventTypeIgnored(t *testing.T) {
	f := newWebhookFixture(t)

	payload, _ := json.Marshal(map[string]interface{}{
		"id":   "evt_1",
		"type": "payment_intent.succeeded",
		"data": map[string]interface{}{"object": map[string]interface{}{}},
	})

	require.NoError(t, f.svc.HandleEvent(context.Background(), payload, "sig"))
	assert.Zero(t, f.orderCount(t))
}

func TestHandleEvent_FinalizesOrder(t *testing.T) {
	f := newWebhookFixture(t)
	ctx := context.Background()

	require.NoError(t, f.productRepo.Create(ctx, &model.Product{
		ID: "lamp-a", Name: "Desert Glow", Price: 50, Quantity: 3,
	}))
	f.stripeClient.lineItems = []*stripe.LineItem{
		paidLineItem("lamp-a", "Desert Glow", 5000, 2),
	}

	payload := sessionEvent("evt_1", "pi_1", 11750, map[string]string{
		"user_id":  "user-1",
		"subtotal": "100.00",
		"shipping": "8.00",
		"tax":      "9.50",
	})

	require.NoError(t, f.svc.HandleEvent(ctx, payload, "sig"))

	var order model.Order
	require.NoError(t, f.db.First(&order).Error)
	assert.Equal(t, "user-1", order.UserID)
	require.NotNil(t, order.StripePaymentIntentID)
	assert.Equal(t, "pi_1", *order.StripePaymentIntentID)
	assert.Equal(t, "completed", order.Status)
	assert.InDelta(t, 117.50, order.TotalAmount, 0.001)
	assert.InDelta(t, 100.00, order.SubtotalAmount, 0.001)
	assert.InDelta(t, 8.00, order.ShippingAmount, 0.001)
	assert.InDelta(t, 9.50, order.TaxAmount, 0.001)

	items, err := f.orderRepo.GetOrderItems(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "lamp-a", items[0].ProductID)
	assert.Equal(t, "Desert Glow", items[0].ProductName)
	assert.Equal(t, 2, items[0].Quantity)
	assert.InDelta(t, 50.00, items[0].ProductPrice, 0.001)
	assert.InDelta(t, 100.00, items[0].Subtotal, 0.001)

	product, err := f.productRepo.FindByID(ctx, "lamp-a")
	require.NoError(t, err)
	assert.Equal(t, 1, product.Quantity)

	select {
	case req := <-f.emails.confirmations:
		assert.Equal(t, order.ID, req.OrderID)
		assert.Equal(t, "buyer@example.com", req.UserEmail)
		assert.Equal(t, "Buyer Smith", req.UserName)
	case <-time.After(2 * time.Second):
		t.Fatal("confirmation email was never dispatched")
	}
}

func TestHandleEvent_OversoldKeepsItemSkipsDecrement(t *testing.T) {
	f := newWebhookFixture(t)
	ctx := context.Background()

	require.NoError(t, f.productRepo.Create(ctx, &model.Product{
		ID: "lamp-a", Name: "Desert Glow", Price: 50, Quantity: 1,
	}))
	f.stripeClient.lineItems = []*stripe.LineItem{
		paidLineItem("lamp-a", "Desert Glow", 5000, 2),
	}

	payload := sessionEvent("evt_1", "pi_1", 10950, map[string]string{"user_id": "user-1"})
	require.NoError(t, f.svc.HandleEvent(ctx, payload, "sig"))

	// item recorded as paid
	assert.Equal(t, int64(1), f.itemCount(t))

	// decrement skipped, stock untouched
	product, err := f.productRepo.FindByID(ctx, "lamp-a")
	require.NoError(t, err)
	assert.Equal(t, 1, product.Quantity)
}

func TestHandleEvent_UnresolvableLineItemSkipped(t *testing.T) {
	f := newWebhookFixture(t)
	ctx := context.Background()

	require.NoError(t, f.productRepo.Create(ctx, &model.Product{
		ID: "lamp-a", Name: "Desert Glow", Price: 50, Quantity: 3,
	}))
	f.stripeClient.lineItems = []*stripe.LineItem{
		paidLineItem("lamp-a", "Desert Glow", 5000, 1),
		paidLineItem("", "Mystery Item", 1000, 1), // no product_id metadata
	}

	payload := sessionEvent("evt_1", "pi_1", 6000, map[string]string{"user_id": "user-1"})
	require.NoError(t, f.svc.HandleEvent(ctx, payload, "sig"))

	// order still created; only the resolvable line becomes a row
	assert.Equal(t, int64(1), f.orderCount(t))
	assert.Equal(t, int64(1), f.itemCount(t))
}

func TestHandleEvent_DuplicateEventCreatesOneOrder(t *testing.T) {
	f := newWebhookFixture(t)
	ctx := context.Background()

	require.NoError(t, f.productRepo.Create(ctx, &model.Product{
		ID: "lamp-a", Name: "Desert Glow", Price: 50, Quantity: 3,
	}))
	f.stripeClient.lineItems = []*stripe.LineItem{
		paidLineItem("lamp-a", "Desert Glow", 5000, 1),
	}

	payload := sessionEvent("evt_1", "pi_1", 5475, map[string]string{"user_id": "user-1"})

	require.NoError(t, f.svc.HandleEvent(ctx, payload, "sig"))
	require.NoError(t, f.svc.HandleEvent(ctx, payload, "sig"))

	assert.Equal(t, int64(1), f.orderCount(t))

	// stock decremented exactly once
	product, err := f.productRepo.FindByID(ctx, "lamp-a")
	require.NoError(t, err)
	assert.Equal(t, 2, product.Quantity)
}

func TestHandleEvent_ZeroAmountSessionsWithoutPaymentIntent(t *testing.T) {
	f := newWebhookFixture(t)
	ctx := context.Background()

	require.NoError(t, f.productRepo.Create(ctx, &model.Product{
		ID: "lamp-a", Name: "Desert Glow", Price: 50, Quantity: 4,
	}))
	f.stripeClient.lineItems = []*stripe.LineItem{
		paidLineItem("lamp-a", "Desert Glow", 0, 1),
	}

	// Fully discounted checkouts complete without a payment intent;
	// two of them must both finalize.
	for i := 0; i < 2; i++ {
		payload := sessionEvent(fmt.Sprintf("evt_%d", i), "", 0, map[string]string{"user_id": "user-1"})
		require.NoError(t, f.svc.HandleEvent(ctx, payload, "sig"))
	}

	assert.Equal(t, int64(2), f.orderCount(t))

	var orders []*model.Order
	require.NoError(t, f.db.Find(&orders).Error)
	for _, order := range orders {
		assert.Nil(t, order.StripePaymentIntentID)
	}
}

func TestHandleEvent_SamePaymentIntentDifferentEventID(t *testing.T) {
	f := newWebhookFixture(t)
	ctx := context.Background()

	require.NoError(t, f.productRepo.Create(ctx, &model.Product{
		ID: "lamp-a", Name: "Desert Glow", Price: 50, Quantity: 3,
	}))
	f.stripeClient.lineItems = []*stripe.LineItem{
		paidLineItem("lamp-a", "Desert Glow", 5000, 1),
	}

	for i := 0; i < 2; i++ {
		payload := sessionEvent(fmt.Sprintf("evt_%d", i), "pi_1", 5475, map[string]string{"user_id": "user-1"})
		require.NoError(t, f.svc.HandleEvent(ctx, payload, "sig"))
	}

	assert.Equal(t, int64(1), f.orderCount(t))
}
