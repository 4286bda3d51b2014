package main

import (
	"context"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/krznanoziyal/storyassist-api/internal/api"
	"github.com/krznanoziyal/storyassist-api/internal/config"
	"github.com/krznanoziyal/storyassist-api/internal/database"
	"github.com/krznanoziyal/storyassist-api/internal/llm"
	"github.com/krznanoziyal/storyassist-api/internal/metrics"
	"github.com/krznanoziyal/storyassist-api/internal/observability"
	"github.com/krznanoziyal/storyassist-api/internal/services"
	"github.com/krznanoziyal/storyassist-api/internal/store"
)

const (
	sentryFlushTimeout    = 2 * time.Second
	environmentProduction = "production"
)

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

// GetVersion returns the current release version
func GetVersion() string {
	return releaseVersion
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize Sentry
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			Release:          "storyassist-api@" + releaseVersion,
			EnableTracing:    true,
			TracesSampleRate: 1.0, // 100% sampling for now, adjust based on volume
			Debug:            cfg.Environment != environmentProduction,
		}); err != nil {
			log.Printf("Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s, release: %s)", cfg.Environment, releaseVersion)
			defer sentry.Flush(sentryFlushTimeout)
		}
	} else {
		log.Println("⚠️  Sentry not configured (SENTRY_DSN not set)")
	}

	ctx := context.Background()

	// Initialize Langfuse LLM tracing
	observability.InitializeLangfuse(ctx, cfg)

	// Initialize CloudWatch metrics (disabled outside production)
	cloudwatch, err := metrics.NewClient(ctx, cfg.Environment)
	if err != nil {
		log.Printf("⚠️  CloudWatch metrics unavailable: %v", err)
	}

	// Resolve the generation provider
	factory := llm.NewProviderFactory(cfg.OpenAIAPIKey, cfg.GeminiAPIKey)
	provider, err := factory.GetProvider(ctx, cfg.Model, cfg.Provider)
	if err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to initialize generation provider: ", err)
	}
	log.Printf("✅ Generation provider: %s (model: %s)", provider.Name(), cfg.Model)

	// Wire the stores: in-memory by default, Postgres when configured
	stores := api.Stores{
		Documents:  store.NewMemoryDocumentStore(),
		StoryBible: store.NewMemoryStoryBibleStore(),
	}
	if cfg.UsesDatabase() {
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			sentry.CaptureException(err)
			log.Fatal("Failed to connect to database: ", err)
		}
		if err := database.Migrate(db); err != nil {
			sentry.CaptureException(err)
			log.Fatal("Failed to run migrations: ", err)
		}
		stores.Documents = store.NewPostgresDocumentStore(db)
		stores.StoryBible = store.NewPostgresStoryBibleStore(db)
	} else {
		log.Println("📝 Using in-memory stores (DATABASE_URL not set)")
	}

	genService := services.NewGenerationService(
		provider,
		cloudwatch,
		cfg.Model,
		time.Duration(cfg.GenerationTimeoutSeconds)*time.Second,
	)

	// Set Gin mode
	if cfg.Environment == environmentProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := api.SetupRouter(genService, stores, cfg, GetVersion())

	// Start server
	log.Printf("🚀 Starting server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to start server: ", err)
	}
}
