package main

import (
	"fmt"
	"log"
	"os"

	"github.com/tableorder/backend/config"
	httpDelivery "github.com/tableorder/backend/internal/delivery/http"
	"github.com/tableorder/backend/internal/infrastructure/cache"
	"github.com/tableorder/backend/internal/infrastructure/memstore"
	"github.com/tableorder/backend/internal/infrastructure/toast"
	"github.com/tableorder/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting TableOrder Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Menu cache TTL: %s", cfg.Cache.TTL)

	// Initialize infrastructure dependencies
	menuCache := cache.NewMemoryCache()
	orderStore := memstore.New()

	toastClient := toast.NewClient(toast.Config{
		BaseURL:           cfg.Toast.BaseURL,
		ClientID:          cfg.Toast.ClientID,
		ClientSecret:      cfg.Toast.ClientSecret,
		RestaurantGUID:    cfg.Toast.RestaurantGUID,
		Environment:       cfg.Toast.Environment,
		Timeout:           cfg.Toast.Timeout,
		TokenMargin:       cfg.Toast.TokenMargin,
		RequestsPerSecond: cfg.RateLimit.Toast,
	})

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		toastClient.SetDebug(true)
		log.Printf("Toast client debug mode enabled")
	}

	log.Printf("Toast API configured: %s (restaurant: %s, env: %s)",
		cfg.Toast.BaseURL, cfg.Toast.RestaurantGUID, cfg.Toast.Environment)

	// Initialize usecase layer
	menuService := usecase.NewMenuService(
		menuCache,
		toastClient,
		orderStore,
		usecase.MenuServiceConfig{
			RestaurantGUID: cfg.Toast.RestaurantGUID,
			MenuGUID:       cfg.Toast.MenuGUID,
			CacheTTL:       cfg.Cache.TTL,
		},
	)

	orderService := usecase.NewOrderService(toastClient, orderStore, cfg.Toast.RestaurantGUID)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(menuService, orderService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
