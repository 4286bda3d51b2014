package api

import (
	"github.com/gin-gonic/gin"
	"github.com/krznanoziyal/storyassist-api/internal/api/handlers"
	apimiddleware "github.com/krznanoziyal/storyassist-api/internal/api/middleware"
	"github.com/krznanoziyal/storyassist-api/internal/config"
	"github.com/krznanoziyal/storyassist-api/internal/services"
	"github.com/krznanoziyal/storyassist-api/internal/store"
)

// Stores bundles the injected storage backends
type Stores struct {
	Documents  store.DocumentStore
	StoryBible store.StoryBibleStore
}

func SetupRouter(genService *services.GenerationService, stores Stores, cfg *config.Config, version string) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking())

	// CORS middleware
	router.Use(apimiddleware.CORS(cfg.AllowedOrigins))

	// Health check
	healthHandler := handlers.NewHealthHandler(version)
	router.GET("/", healthHandler.Root)
	router.GET("/health", healthHandler.HealthCheck)

	// Generation endpoints
	generate := router.Group("/generate")
	{
		generationHandler := handlers.NewGenerationHandler(genService)
		generate.POST("/write", generationHandler.Write)
		generate.POST("/rewrite", generationHandler.Rewrite)
		generate.POST("/describe", generationHandler.Describe)
		generate.POST("/brainstorm", generationHandler.Brainstorm)
		generate.POST("/context-element", generationHandler.ContextElement)
		generate.POST("/story-branches", generationHandler.StoryBranches)
	}

	// Document CRUD
	documentHandler := handlers.NewDocumentHandler(stores.Documents)
	router.POST("/documents", documentHandler.Create)
	router.GET("/documents", documentHandler.List)
	router.GET("/documents/:id", documentHandler.Get)
	router.PUT("/documents/:id", documentHandler.Update)
	router.DELETE("/documents/:id", documentHandler.Delete)

	// Story bible
	storyBibleHandler := handlers.NewStoryBibleHandler(genService, stores.Documents, stores.StoryBible)
	router.POST("/story-bible", storyBibleHandler.Generate)
	router.GET("/story-bible/:docID", storyBibleHandler.List)
	router.GET("/story-bible/:docID/:category", storyBibleHandler.GetItem)

	return router
}
