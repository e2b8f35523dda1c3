package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"lampstore/internal/client"
	"lampstore/internal/config"
	"lampstore/internal/handler"
	"lampstore/internal/repository"
	"lampstore/internal/server"
	"lampstore/internal/service"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	db := client.InitMysqlClient(cfg.DatabaseURL)
	stripeClient := client.NewStripeClient(&cfg.Stripe)
	resendClient := client.NewResendClient(&cfg.Resend)

	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	addressRepo := repository.NewAddressRepository(db)
	newsletterRepo := repository.NewNewsletterRepository(db)
	contactRepo := repository.NewContactRepository(db)
	userRoleRepo := repository.NewUserRoleRepository(db)
	webhookEventRepo := repository.NewWebhookEventRepository(db)

	emailService := service.NewEmailService(resendClient, cfg.Resend.ContactInbox, orderRepo)
	checkoutService := service.NewCheckoutService(stripeClient, cfg.AppURL, productRepo)
	webhookService := service.NewWebhookService(db, stripeClient, emailService, orderRepo, productRepo, webhookEventRepo)
	catalogService := service.NewCatalogService(productRepo, categoryRepo)
	orderService := service.NewOrderService(orderRepo, addressRepo, emailService)
	addressService := service.NewAddressService(addressRepo)
	intakeService := service.NewIntakeService(newsletterRepo, contactRepo, emailService)

	srv := server.NewServer(
		handler.NewCheckoutHandler(checkoutService),
		handler.NewWebhookHandler(webhookService),
		handler.NewCatalogHandler(catalogService),
		handler.NewOrderHandler(orderService),
		handler.NewAddressHandler(addressService),
		handler.NewIntakeHandler(intakeService),
		handler.NewEmailHandler(emailService),
		cfg.JWTSecret,
		cfg.ServiceKey,
		userRoleRepo,
	)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	log.Println("Starting HTTP server on", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Println("Signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("HTTP server shutdown error")
	}
}
