package llm

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"google.golang.org/genai"
)

const (
	providerNameGemini = "gemini"
	geminiUserRole     = "user"
)

// GeminiProvider implements the Provider interface using Google's Gemini API
type GeminiProvider struct {
	client *genai.Client
}

// NewGeminiProvider creates a new Gemini provider
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
	}, nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return providerNameGemini
}

// GenerateContent implements text generation using Gemini's API
func (p *GeminiProvider) GenerateContent(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error) {
	startTime := time.Now()
	log.Printf("📨 GEMINI GENERATION REQUEST STARTED (Model: %s)", request.Model)

	// Start Sentry transaction
	transaction := sentry.StartTransaction(ctx, "gemini.generate")
	defer transaction.Finish()

	transaction.SetTag("model", request.Model)
	transaction.SetTag("provider", providerNameGemini)

	contents := []*genai.Content{
		{
			Role:  geminiUserRole,
			Parts: []*genai.Part{{Text: request.Prompt}},
		},
	}

	temperature := float32(request.Temperature)
	config := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}

	// Call Gemini API
	span := transaction.StartChild("gemini.api_call")
	apiStartTime := time.Now()
	result, err := p.client.Models.GenerateContent(ctx, request.Model, contents, config)
	apiDuration := time.Since(apiStartTime)
	span.Finish()

	if err != nil {
		log.Printf("❌ GEMINI REQUEST FAILED after %v: %v", apiDuration, err)
		transaction.SetTag("success", "false")
		sentry.CaptureException(err)
		return nil, &ServiceError{
			Provider: providerNameGemini,
			Message:  fmt.Sprintf("gemini request failed: %v", err),
			Err:      err,
		}
	}

	log.Printf("⏱️  GEMINI API CALL COMPLETED in %v", apiDuration)

	response, err := p.processGeminiResponse(result, startTime, transaction)
	if err != nil {
		transaction.SetTag("success", "false")
		return nil, err
	}

	transaction.SetTag("success", "true")
	return response, nil
}

// processGeminiResponse converts a Gemini response to our GenerationResponse
func (p *GeminiProvider) processGeminiResponse(
	result *genai.GenerateContentResponse,
	startTime time.Time,
	transaction *sentry.Span,
) (*GenerationResponse, error) {
	span := transaction.StartChild("process_response")
	defer span.Finish()

	if len(result.Candidates) == 0 {
		return nil, &ServiceError{Provider: providerNameGemini, Message: "no candidates in gemini response"}
	}

	candidate := result.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, &ServiceError{Provider: providerNameGemini, Message: "no parts in gemini response"}
	}

	textOutput := candidate.Content.Parts[0].Text
	log.Printf("📥 GEMINI RESPONSE: output_length=%d", len(textOutput))

	if textOutput == "" {
		return nil, &ServiceError{Provider: providerNameGemini, Message: "gemini response did not include any output text"}
	}

	var usage Usage
	if result.UsageMetadata != nil {
		usage = Usage{
			PromptTokens:     int(result.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(result.UsageMetadata.TotalTokenCount),
		}
		log.Printf("📊 GEMINI USAGE: input=%d, output=%d, total=%d",
			usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens)
	}

	log.Printf("✅ GEMINI GENERATION COMPLETED in %v (output: %d chars)", time.Since(startTime), len(textOutput))

	return &GenerationResponse{
		Text:  textOutput,
		Usage: usage,
	}, nil
}
