package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds the application configuration. The service is stateless by
// default; Postgres persistence turns on only when DATABASE_URL is set.
type Config struct {
	// Environment
	Environment string
	Port        string

	// LLM provider selection
	Provider     string // "gemini" (default) or "openai"
	Model        string // model name sent to the provider
	OpenAIAPIKey string // OpenAI API key for GPT models
	GeminiAPIKey string // Google Gemini API key

	// Generation hardening
	GenerationTimeoutSeconds int // upper bound on one gateway call

	// Persistence (optional)
	DatabaseURL string // empty = in-memory stores only

	// CORS
	AllowedOrigins []string // empty = allow all (editor runs anywhere)

	// Observability
	SentryDSN         string // Sentry DSN for error tracking
	LangfusePublicKey string // Langfuse public key
	LangfuseSecretKey string // Langfuse secret key
	LangfuseHost      string // Langfuse host URL (cloud or self-hosted)
	LangfuseEnabled   bool   // Feature flag for Langfuse
}

func Load() *Config {
	return &Config{
		Environment:              getEnv("ENVIRONMENT", "development"),
		Port:                     getEnv("PORT", "8080"),
		Provider:                 getEnv("LLM_PROVIDER", ""),
		Model:                    getEnv("LLM_MODEL", "gemini-2.0-flash"),
		OpenAIAPIKey:             getEnv("OPENAI_API_KEY", ""),
		GeminiAPIKey:             getEnv("GEMINI_API_KEY", ""),
		GenerationTimeoutSeconds: getEnvInt("GENERATION_TIMEOUT_SECONDS", 60),
		DatabaseURL:              getEnv("DATABASE_URL", ""),
		AllowedOrigins:           splitOrigins(getEnv("ALLOWED_ORIGINS", "")),
		SentryDSN:                getEnv("SENTRY_DSN", ""),
		LangfusePublicKey:        getEnv("LANGFUSE_PUBLIC_KEY", ""),
		LangfuseSecretKey:        getEnv("LANGFUSE_SECRET_KEY", ""),
		LangfuseHost:             getEnv("LANGFUSE_HOST", "https://cloud.langfuse.com"),
		LangfuseEnabled:          getEnv("LANGFUSE_ENABLED", "false") == "true",
	}
}

// UsesDatabase returns true when a Postgres connection should be opened
func (c *Config) UsesDatabase() bool {
	return c.DatabaseURL != ""
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

func splitOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
