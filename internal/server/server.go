package server

import (
	"context"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"lampstore/internal/handler"
	"lampstore/internal/middleware"
	"lampstore/internal/repository"
)

type Server struct {
	echo *echo.Echo

	checkoutHandler *handler.CheckoutHandler
	webhookHandler  *handler.WebhookHandler
	catalogHandler  *handler.CatalogHandler
	orderHandler    *handler.OrderHandler
	addressHandler  *handler.AddressHandler
	intakeHandler   *handler.IntakeHandler
	emailHandler    *handler.EmailHandler

	jwtSecret    string
	serviceKey   string
	userRoleRepo repository.UserRoleRepository
}

func NewServer(
	checkoutHandler *handler.CheckoutHandler,
	webhookHandler *handler.WebhookHandler,
	catalogHandler *handler.CatalogHandler,
	orderHandler *handler.OrderHandler,
	addressHandler *handler.AddressHandler,
	intakeHandler *handler.IntakeHandler,
	emailHandler *handler.EmailHandler,
	jwtSecret string,
	serviceKey string,
	userRoleRepo repository.UserRoleRepository,
) *Server {
	e := echo.New()

	e.Use(echomw.RequestLogger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	s := &Server{
		echo:            e,
		checkoutHandler: checkoutHandler,
		webhookHandler:  webhookHandler,
		catalogHandler:  catalogHandler,
		orderHandler:    orderHandler,
		addressHandler:  addressHandler,
		intakeHandler:   intakeHandler,
		emailHandler:    emailHandler,
		jwtSecret:       jwtSecret,
		serviceKey:      serviceKey,
		userRoleRepo:    userRoleRepo,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- public catalog --------
	api.GET("/products", s.catalogHandler.ListProducts)
	api.GET("/products/:id", s.catalogHandler.GetProduct)
	api.GET("/categories", s.catalogHandler.ListCategories)

	// -------- public intake --------
	api.POST("/newsletter/subscribe", s.intakeHandler.SubscribeNewsletter)
	api.POST("/contact", s.intakeHandler.SubmitContactForm)

	// -------- stripe --------
	api.POST("/checkout/session", s.checkoutHandler.CreateSession, middleware.Auth(s.jwtSecret))
	api.POST("/webhooks/stripe", s.webhookHandler.StripeWebhook)

	// -------- authenticated user --------
	me := api.Group("/me", middleware.Auth(s.jwtSecret))
	me.GET("/orders", s.orderHandler.MyOrders)
	me.GET("/addresses", s.addressHandler.List)
	me.POST("/addresses", s.addressHandler.Create)
	me.PUT("/addresses/:id", s.addressHandler.Update)
	me.DELETE("/addresses/:id", s.addressHandler.Delete)
	me.PUT("/addresses/:id/default", s.addressHandler.SetDefault)

	// -------- admin --------
	admin := api.Group("/admin", middleware.Auth(s.jwtSecret), middleware.AdminOnly(s.userRoleRepo))
	admin.POST("/products", s.catalogHandler.CreateProduct)
	admin.PUT("/products/:id", s.catalogHandler.UpdateProduct)
	admin.DELETE("/products/:id", s.catalogHandler.DeleteProduct)
	admin.POST("/categories", s.catalogHandler.CreateCategory)
	admin.PUT("/categories/:id", s.catalogHandler.UpdateCategory)
	admin.DELETE("/categories/:id", s.catalogHandler.DeleteCategory)
	admin.GET("/orders", s.orderHandler.AdminListOrders)
	admin.PUT("/orders/:id/shipping", s.orderHandler.UpdateShipping)
	admin.GET("/newsletter", s.intakeHandler.ListSubscriptions)

	// -------- internal email dispatch --------
	emails := api.Group("/emails", middleware.ServiceKey(s.serviceKey))
	emails.POST("/order-confirmation", s.emailHandler.OrderConfirmation)
	emails.POST("/shipping-notification", s.emailHandler.ShippingNotification)
	emails.POST("/contact", s.emailHandler.ContactEmail)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
