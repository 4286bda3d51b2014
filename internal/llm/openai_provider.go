package llm

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

const (
	providerNameOpenAI = "openai"
)

// OpenAIProvider implements the Provider interface using OpenAI's Chat Completions API
type OpenAIProvider struct {
	client *openai.Client
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIProvider{
		client: &client,
	}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return providerNameOpenAI
}

// GenerateContent implements text generation using OpenAI's API
func (p *OpenAIProvider) GenerateContent(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error) {
	startTime := time.Now()
	log.Printf("📨 OPENAI GENERATION REQUEST STARTED (Model: %s)", request.Model)

	// Start Sentry transaction
	transaction := sentry.StartTransaction(ctx, "openai.generate")
	defer transaction.Finish()

	transaction.SetTag("model", request.Model)
	transaction.SetTag("provider", providerNameOpenAI)

	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(request.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(request.Prompt),
		},
		Temperature: openai.Float(request.Temperature),
	}

	// Call OpenAI API
	span := transaction.StartChild("openai.api_call")
	apiStartTime := time.Now()
	completion, err := p.client.Chat.Completions.New(ctx, params)
	apiDuration := time.Since(apiStartTime)
	span.Finish()

	if err != nil {
		log.Printf("❌ OPENAI REQUEST FAILED after %v: %v", apiDuration, err)
		transaction.SetTag("success", "false")
		sentry.CaptureException(err)
		return nil, &ServiceError{
			Provider: providerNameOpenAI,
			Message:  fmt.Sprintf("openai request failed: %v", err),
			Err:      err,
		}
	}

	log.Printf("⏱️  OPENAI API CALL COMPLETED in %v", apiDuration)

	if len(completion.Choices) == 0 {
		transaction.SetTag("success", "false")
		return nil, &ServiceError{Provider: providerNameOpenAI, Message: "no choices in openai response"}
	}

	textOutput := completion.Choices[0].Message.Content
	log.Printf("📥 OPENAI RESPONSE: output_length=%d", len(textOutput))

	if textOutput == "" {
		transaction.SetTag("success", "false")
		return nil, &ServiceError{Provider: providerNameOpenAI, Message: "openai response did not include any output text"}
	}

	log.Printf("📊 OPENAI USAGE: input=%d, output=%d, total=%d",
		completion.Usage.PromptTokens, completion.Usage.CompletionTokens, completion.Usage.TotalTokens)
	log.Printf("✅ OPENAI GENERATION COMPLETED in %v (output: %d chars)", time.Since(startTime), len(textOutput))

	transaction.SetTag("success", "true")
	return &GenerationResponse{
		Text: textOutput,
		Usage: Usage{
			PromptTokens:     int(completion.Usage.PromptTokens),
			CompletionTokens: int(completion.Usage.CompletionTokens),
			TotalTokens:      int(completion.Usage.TotalTokens),
		},
	}, nil
}
