package observability

import (
	"context"
	"log"
	"time"

	langfuse "github.com/henomis/langfuse-go"
	"github.com/henomis/langfuse-go/model"
	"github.com/krznanoziyal/storyassist-api/internal/config"
	"github.com/krznanoziyal/storyassist-api/internal/llm"
)

// LangfuseClient wraps the Langfuse client with our configuration
type LangfuseClient struct {
	client  *langfuse.Langfuse
	enabled bool
	ctx     context.Context
}

var globalClient *LangfuseClient

// InitializeLangfuse initializes the global Langfuse client. The henomis SDK
// reads LANGFUSE_PUBLIC_KEY / LANGFUSE_SECRET_KEY / LANGFUSE_HOST from the
// environment.
func InitializeLangfuse(ctx context.Context, cfg *config.Config) *LangfuseClient {
	if !cfg.LangfuseEnabled || cfg.LangfuseSecretKey == "" {
		log.Println("⚠️  Langfuse not configured (LANGFUSE_ENABLED=false or LANGFUSE_SECRET_KEY not set)")
		globalClient = &LangfuseClient{enabled: false, ctx: ctx}
		return globalClient
	}

	lf := langfuse.New(ctx)
	globalClient = &LangfuseClient{
		client:  lf,
		enabled: true,
		ctx:     ctx,
	}

	log.Printf("✅ Langfuse initialized (host: %s)", cfg.LangfuseHost)
	return globalClient
}

// GetClient returns the global Langfuse client
func GetClient() *LangfuseClient {
	if globalClient == nil {
		return &LangfuseClient{enabled: false, ctx: context.Background()}
	}
	return globalClient
}

// IsEnabled returns whether Langfuse is enabled
func (c *LangfuseClient) IsEnabled() bool {
	return c.enabled && c.client != nil
}

// StartTrace starts a new trace in Langfuse
func (c *LangfuseClient) StartTrace(ctx context.Context, name string, metadata map[string]interface{}) *Trace {
	if !c.IsEnabled() {
		return &Trace{enabled: false, ctx: ctx}
	}

	trace, err := c.client.Trace(&model.Trace{
		Name:     name,
		Metadata: metadata,
	})
	if err != nil {
		log.Printf("⚠️  Failed to create Langfuse trace: %v", err)
		return &Trace{enabled: false, ctx: ctx}
	}

	return &Trace{
		trace:   trace,
		enabled: true,
		ctx:     ctx,
		client:  c.client,
	}
}

// Trace represents a Langfuse trace
type Trace struct {
	trace   *model.Trace
	enabled bool
	ctx     context.Context
	client  *langfuse.Langfuse
}

// Generation creates a new generation span within the trace
func (t *Trace) Generation(name string, metadata map[string]interface{}) *Generation {
	if !t.enabled {
		return &Generation{enabled: false, ctx: t.ctx}
	}

	now := time.Now()
	gen, err := t.client.Generation(&model.Generation{
		TraceID:   t.trace.ID,
		Name:      name,
		StartTime: &now,
		Metadata:  metadata,
	}, nil)
	if err != nil {
		log.Printf("⚠️  Failed to create Langfuse generation: %v", err)
		return &Generation{enabled: false, ctx: t.ctx}
	}

	return &Generation{
		generation: gen,
		enabled:    true,
		ctx:        t.ctx,
		client:     t.client,
	}
}

// Finish completes the trace and flushes batched events to Langfuse
func (t *Trace) Finish() {
	if t.enabled && t.client != nil {
		t.client.Flush(t.ctx)
	}
}

// Generation represents a Langfuse generation span
type Generation struct {
	generation *model.Generation
	enabled    bool
	ctx        context.Context
	client     *langfuse.Langfuse
}

// LogGeneration records one gateway call: the assembled prompt, the raw model
// output, and token usage. Providers that report no usage get a tiktoken
// estimate so the dashboard still shows volume.
func (g *Generation) LogGeneration(modelName, prompt, output string, usage llm.Usage) {
	if !g.enabled || g.generation == nil {
		return
	}

	if usage.TotalTokens == 0 {
		usage = EstimateUsage(prompt, output)
	}

	g.generation.Model = modelName
	g.generation.Input = prompt
	g.generation.Output = output
	g.generation.Usage = model.Usage{
		Input:  usage.PromptTokens,
		Output: usage.CompletionTokens,
		Total:  usage.TotalTokens,
		Unit:   model.ModelUsageUnitTokens,
	}
}

// SetLevel sets the observation level of the generation
func (g *Generation) SetLevel(level string) {
	if g.enabled && g.generation != nil {
		g.generation.Level = model.ObservationLevel(level)
	}
}

// Metadata merges metadata into the generation
func (g *Generation) Metadata(metadata map[string]interface{}) {
	if !g.enabled || g.generation == nil {
		return
	}
	if md, ok := g.generation.Metadata.(map[string]interface{}); ok {
		for k, v := range metadata {
			md[k] = v
		}
		return
	}
	g.generation.Metadata = metadata
}

// Finish completes the generation and queues it for sending
func (g *Generation) Finish() {
	if g.enabled && g.generation != nil && g.client != nil {
		now := time.Now()
		g.generation.EndTime = &now
		if _, err := g.client.GenerationEnd(g.generation); err != nil {
			log.Printf("⚠️  Failed to end Langfuse generation: %v", err)
		}
	}
}
