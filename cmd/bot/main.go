package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"statuspulse-integration-layer/internal/application"
	"statuspulse-integration-layer/internal/config"
	"statuspulse-integration-layer/internal/infrastructure/chat"
	"statuspulse-integration-layer/internal/infrastructure/repository"
	"statuspulse-integration-layer/internal/infrastructure/statuspush"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	// Initialize logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("⚠️  Warning: .env file not found")
	}

	cfg := config.LoadBot()

	if cfg.ChatBotToken == "" {
		logger.Fatal().Msg("CHAT_BOT_TOKEN environment variable is required")
	}
	if len(cfg.GuildIDs) == 0 {
		logger.Fatal().Msg("CHAT_GUILD_IDS environment variable is required")
	}
	if cfg.StatusEndpoint == "" {
		logger.Fatal().Msg("PRODUCT_STATUS_URL environment variable is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to MongoDB
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.MongoDatabase)

	// Initialize infrastructure (implementations)
	mappingRepo := repository.NewMongoMappingRepository(db)
	chatClient := chat.NewClient(cfg.ChatAPIURL, cfg.ChatBotToken, logger)
	statusSink := statuspush.NewClient(cfg.StatusEndpoint, cfg.StatusToken, logger)

	// One-time mapping import
	if cfg.MappingFile != "" {
		importer := application.NewMappingImporter(mappingRepo, logger)
		count, err := importer.ImportFile(ctx, cfg.MappingFile)
		if err != nil {
			logger.Fatal().Err(err).Str("file", cfg.MappingFile).Msg("Mapping import failed")
		}
		logger.Info().Int("imported", count).Str("file", cfg.MappingFile).Msg("Imported mappings")
	}

	// Metrics endpoint
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		logger.Info().Str("addr", cfg.MetricsAddr).Msg("Starting metrics server")
		if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
			logger.Error().Err(err).Msg("Metrics server stopped")
		}
	}()

	reconciler := application.NewReconciler(
		chatClient,
		mappingRepo,
		statusSink,
		logger,
		cfg.GuildIDs,
		cfg.Interval,
	)
	reconciler.Run(ctx)
}
