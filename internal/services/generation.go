package services

import (
	"context"
	"strings"
	"time"

	"github.com/krznanoziyal/storyassist-api/internal/llm"
	"github.com/krznanoziyal/storyassist-api/internal/logger"
	"github.com/krznanoziyal/storyassist-api/internal/metrics"
	"github.com/krznanoziyal/storyassist-api/internal/models"
	"github.com/krznanoziyal/storyassist-api/internal/observability"
	"github.com/krznanoziyal/storyassist-api/internal/prompt"
	"github.com/krznanoziyal/storyassist-api/internal/story"
)

// Action identifies one generation endpoint's behavior
type Action string

const (
	ActionWrite          Action = "write"
	ActionRewrite        Action = "rewrite"
	ActionDescribe       Action = "describe"
	ActionBrainstorm     Action = "brainstorm"
	ActionContextElement Action = "context_element"
	ActionStoryBranches  Action = "story_branches"
)

// Sampling temperatures per action. Brainstorming and branching want variety;
// the drafting actions want coherence with the existing text.
const (
	temperatureDrafting    = 0.7
	temperatureExploration = 0.9
)

// actionParams pairs an action's task description with its temperature
type actionParams struct {
	description string
	temperature float64
}

var actionTable = map[Action]actionParams{
	ActionWrite:      {prompt.TaskWrite, temperatureDrafting},
	ActionRewrite:    {prompt.TaskRewrite, temperatureDrafting},
	ActionDescribe:   {prompt.TaskDescribe, temperatureDrafting},
	ActionBrainstorm: {prompt.TaskBrainstorm, temperatureExploration},
}

// GenerationService orchestrates one generation call: prompt assembly, the
// bounded gateway call, observability, and (for branching) extraction.
// Handlers validate input before calling; the service assumes valid requests.
type GenerationService struct {
	provider      llm.Provider
	builder       *prompt.Builder
	cloudwatch    *metrics.Client
	sentryMetrics *metrics.SentryMetrics
	model         string
	timeout       time.Duration
}

// NewGenerationService creates a generation service bound to one provider and
// model. cloudwatch may be a disabled client.
func NewGenerationService(provider llm.Provider, cloudwatch *metrics.Client, model string, timeout time.Duration) *GenerationService {
	return &GenerationService{
		provider:      provider,
		builder:       prompt.NewBuilder(),
		cloudwatch:    cloudwatch,
		sentryMetrics: metrics.NewSentryMetrics(),
		model:         model,
		timeout:       timeout,
	}
}

// GenerateText handles the plain-text actions (write, rewrite, describe,
// brainstorm): build the generic prompt and return the trimmed model output.
func (s *GenerationService) GenerateText(ctx context.Context, req *models.GenerationRequest, action Action) (string, error) {
	params := actionTable[action]
	built := s.builder.BuildGenerationPrompt(req, params.description)
	text, err := s.generate(ctx, string(action), built, params.temperature)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// GenerateContextElement generates one story element (characters, outline,
// ...) with the element's format hint appended to the prompt.
func (s *GenerationService) GenerateContextElement(ctx context.Context, req *models.GenerationRequest) (string, error) {
	built := s.builder.BuildContextElementPrompt(req, req.ElementType)
	text, err := s.generate(ctx, string(ActionContextElement), built, temperatureDrafting)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// GenerateBranches runs the branching action: the branch prompt template,
// then the extraction pipeline over the raw output. Extraction never fails;
// only the gateway call can.
func (s *GenerationService) GenerateBranches(ctx context.Context, req *models.GenerationRequest) ([]models.Branch, error) {
	built := s.builder.BuildBranchPrompt(req)
	text, err := s.generate(ctx, string(ActionStoryBranches), built, temperatureExploration)
	if err != nil {
		return nil, err
	}

	branches, tier := story.ExtractBranchesTier(text)
	s.cloudwatch.RecordBranchExtraction(string(tier), len(branches))
	s.sentryMetrics.RecordBranchExtraction(ctx, string(tier), len(branches))
	logger.Info("Branch extraction completed", logger.Fields{
		"tier":         string(tier),
		"branch_count": len(branches),
	})
	return branches, nil
}

// GenerateStoryBibleContent generates the stored content for one story-bible
// category from the author's raw notes.
func (s *GenerationService) GenerateStoryBibleContent(ctx context.Context, category, content string) (string, error) {
	built := s.builder.BuildStoryBiblePrompt(category, content)
	text, err := s.generate(ctx, "story_bible_"+category, built, temperatureDrafting)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// generate performs the bounded gateway call with tracing and metrics
func (s *GenerationService) generate(ctx context.Context, name, builtPrompt string, temperature float64) (string, error) {
	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	trace := observability.GetClient().StartTrace(ctx, name, map[string]interface{}{
		"model": s.model,
	})
	defer trace.Finish()
	generation := trace.Generation(name, nil)
	defer generation.Finish()

	startTime := time.Now()
	response, err := s.provider.GenerateContent(genCtx, &llm.GenerationRequest{
		Model:       s.model,
		Prompt:      builtPrompt,
		Temperature: temperature,
	})
	duration := time.Since(startTime)

	s.cloudwatch.RecordGenerationDuration(duration, err == nil)
	s.sentryMetrics.RecordGenerationDuration(ctx, duration, err == nil)

	if err != nil {
		generation.SetLevel("ERROR")
		logger.Error("Generation request failed", err, logger.Fields{
			"action":   name,
			"model":    s.model,
			"provider": s.provider.Name(),
		})
		return "", err
	}

	generation.LogGeneration(s.model, builtPrompt, response.Text, response.Usage)
	s.cloudwatch.RecordTokenUsage(s.model, response.Usage.TotalTokens, response.Usage.PromptTokens, response.Usage.CompletionTokens)
	s.sentryMetrics.RecordTokenUsage(ctx, s.model, response.Usage.TotalTokens, response.Usage.PromptTokens, response.Usage.CompletionTokens)
	logger.LogGenerationRequest(ctx, s.model, duration, response.Usage.TotalTokens, logger.Fields{
		"action": name,
	})

	return response.Text, nil
}
