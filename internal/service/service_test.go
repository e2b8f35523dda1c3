package service

import (
	"context"
	"encoding/json"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lampstore/internal/dto"
	"lampstore/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.ProductImage{},
		&model.Order{},
		&model.OrderItem{},
		&model.ShippingAddress{},
		&model.NewsletterSubscription{},
		&model.ContactSubmission{},
		&model.UserRole{},
		&model.WebhookEvent{},
	))

	return db
}

// fakeStripeClient stands in for the Stripe API. VerifyWebhook
// decodes the payload without checking the signature; signature
// failures are exercised against the real client in the handler
// tests.
type fakeStripeClient struct {
	session       *stripe.CheckoutSession
	createErr     error
	lineItems     []*stripe.LineItem
	verifyErr     error
	createdParams *stripe.CheckoutSessionParams
	listedSession string
}

func (f *fakeStripeClient) CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	f.createdParams = params
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.session, nil
}

func (f *fakeStripeClient) ListLineItems(ctx context.Context, sessionID string) ([]*stripe.LineItem, error) {
	f.listedSession = sessionID
	return f.lineItems, nil
}

func (f *fakeStripeClient) VerifyWebhook(payload []byte, sigHeader string) (stripe.Event, error) {
	if f.verifyErr != nil {
		return stripe.Event{}, f.verifyErr
	}
	var event stripe.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return stripe.Event{}, err
	}
	return event, nil
}

// stubEmailService records sends; Sent waits for the async dispatch.
type stubEmailService struct {
	mu            sync.Mutex
	confirmations chan *dto.OrderEmailRequest
	shipped       []*dto.OrderEmailRequest
	contact       []*dto.ContactEmailRequest
}

func newStubEmailService() *stubEmailService {
	return &stubEmailService{
		confirmations: make(chan *dto.OrderEmailRequest, 8),
	}
}

func (s *stubEmailService) SendOrderConfirmation(ctx context.Context, req *dto.OrderEmailRequest) (string, error) {
	s.confirmations <- req
	return "email-1", nil
}

func (s *stubEmailService) SendShippingNotification(ctx context.Context, req *dto.OrderEmailRequest) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shipped = append(s.shipped, req)
	return "email-2", nil
}

func (s *stubEmailService) SendContactEmail(ctx context.Context, req *dto.ContactEmailRequest) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contact = append(s.contact, req)
	return "email-3", nil
}
