package llm

import (
	"context"
)

// Provider defines the interface for text-generation providers. A provider
// receives a fully assembled prompt and returns the model's raw text; it
// never interprets the output.
type Provider interface {
	// GenerateContent produces text for the given prompt and temperature
	GenerateContent(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error)

	// Name returns the provider name (e.g., "openai", "gemini")
	Name() string
}

// GenerationRequest contains all parameters needed for one generation call
type GenerationRequest struct {
	Model       string
	Prompt      string
	Temperature float64
}

// Usage reports token consumption for one generation call. Counts are zero
// when the upstream API did not include them.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// GenerationResponse contains the raw text result from the provider
type GenerationResponse struct {
	Text  string
	Usage Usage
}
