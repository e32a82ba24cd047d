package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/accreation/storefront/internal/catalog"
	"github.com/accreation/storefront/internal/config"
	"github.com/accreation/storefront/internal/handlers"
	"github.com/accreation/storefront/internal/middleware"
	"github.com/accreation/storefront/internal/payments"
	"github.com/accreation/storefront/internal/service"
	"github.com/accreation/storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting storefront api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
	)
	if cfg.Sanity.ProjectID == "" {
		log.Warn("SANITY_PROJECT_ID not set, catalog endpoints will fail")
	}
	if cfg.Stripe.SecretKey == "" {
		log.Warn("STRIPE_SECRET_KEY not set, checkout endpoints will fail")
	}

	// Initialize gateways
	catalogClient := catalog.NewClient(cfg.Sanity)
	paymentGateway := payments.NewStripeGateway(cfg.Stripe)

	// Initialize services
	checkoutService := service.NewCheckoutService(catalogClient, paymentGateway)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log)
	productHandler := handlers.NewProductHandler(catalogClient, log)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, cfg.Frontend.URL, log)
	receiptHandler := handlers.NewReceiptHandler(paymentGateway, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)

	// CORS configuration: the static storefront calls this API cross-origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// API routes; each endpoint accepts exactly one method and answers 405
	// with an Allow header otherwise.
	r.Route("/api", func(r chi.Router) {
		r.Handle("/health", handlers.Allow(http.MethodGet, healthHandler.ServeHTTP))
		r.Handle("/products", handlers.Allow(http.MethodGet, productHandler.ListProducts))
		r.Handle("/products/featured", handlers.Allow(http.MethodGet, productHandler.FeaturedProducts))
		r.Handle("/checkout", handlers.Allow(http.MethodPost, checkoutHandler.Create))
		r.Handle("/receipt", handlers.Allow(http.MethodGet, receiptHandler.Get))
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
