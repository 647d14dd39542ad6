package main

import (
	"context"
	"net/http"
	"os"

	"statuspulse-integration-layer/internal/application"
	"statuspulse-integration-layer/internal/config"
	"statuspulse-integration-layer/internal/infrastructure/automation"
	"statuspulse-integration-layer/internal/infrastructure/commerce"
	securitymiddleware "statuspulse-integration-layer/internal/infrastructure/middleware"
	"statuspulse-integration-layer/internal/infrastructure/payments"
	"statuspulse-integration-layer/internal/infrastructure/pubsub"
	"statuspulse-integration-layer/internal/infrastructure/repository"
	"statuspulse-integration-layer/internal/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	// Initialize logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("⚠️  Warning: .env file not found")
	}

	cfg := config.LoadAPI()

	if cfg.PaymentsWebhookSecret == "" {
		logger.Fatal().Msg("PAYMENTS_WEBHOOK_SECRET environment variable is required")
	}
	if cfg.APIToken == "" {
		logger.Fatal().Msg("API_TOKEN environment variable is required")
	}

	// Connect to MongoDB
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.MongoDatabase)

	// Connect to Redis for the shop token store
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer rdb.Close()

	// Initialize repositories
	cartRepo := repository.NewMongoCartRepository(db)
	orderRepo := repository.NewMongoOrderRepository(db)
	tokenStore := repository.NewRedisShopTokenStore(rdb)

	// Initialize outbound collaborators
	paymentsClient := payments.NewClient(cfg.PaymentsAPIURL, cfg.PaymentsSecretKey, logger)
	webhookVerifier := payments.NewWebhookVerifier(cfg.PaymentsWebhookSecret)

	var commerceClient ports.CommerceClient
	if cfg.ShopifyConfigured() {
		commerceClient = commerce.NewClient(
			cfg.ShopifyAPIKey,
			cfg.ShopifyAPISecret,
			cfg.ShopifyShopDomain,
			cfg.ShopifyAccessToken,
			logger,
		)
	} else {
		logger.Warn().Msg("Commerce platform credentials not configured, tag updates and order verification disabled")
	}

	// Initialize order pub/sub and the automation forwarder
	orderPubSub := pubsub.NewOrderPubSub(logger)
	if cfg.AutomationWebhookURL != "" {
		forwarder := application.NewOrderForwarder(
			orderPubSub,
			automation.NewClient(cfg.AutomationWebhookURL, logger),
			logger,
		)
		go forwarder.Run(context.Background())
	} else {
		logger.Warn().Msg("AUTOMATION_WEBHOOK_URL not configured, orders will not be forwarded")
	}

	// Initialize application services
	checkoutService := application.NewCheckoutService(
		cartRepo,
		orderRepo,
		tokenStore,
		paymentsClient,
		commerceClient,
		orderPubSub,
		logger,
		cfg.SuccessURL,
		cfg.CancelURL,
	)

	var productTagService *application.ProductTagService
	if commerceClient != nil {
		productTagService = application.NewProductTagService(commerceClient, logger)
	}

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	// Public routes
	r.Get("/health", healthHandler())
	r.Handle("/metrics", promhttp.Handler())

	// Swagger documentation - public
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"), // The URL pointing to API definition
	))
	r.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, r, "./docs/swagger.json")
	})

	// Checkout routes
	r.Post("/register-shop", registerShopHandler(checkoutService, logger))
	r.Post("/create-checkout-session", createCheckoutSessionHandler(checkoutService, logger))
	r.Post("/webhook", paymentsWebhookHandler(checkoutService, webhookVerifier, logger))
	r.Get("/order-details", orderDetailsHandler(checkoutService, logger))
	r.Post("/update-order", updateOrderHandler(checkoutService, logger))

	// Status push from the bot, bearer-token authenticated
	r.With(securitymiddleware.BearerAuth(cfg.APIToken, logger)).
		Post("/update-product-tag", updateProductTagHandler(productTagService, logger))

	logger.Info().Str("port", cfg.Port).Msg("Starting API server")
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
}
