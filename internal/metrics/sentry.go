package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
)

const (
	// HTTP status code threshold for considering a request successful
	successStatusCodeThreshold = http.StatusBadRequest
)

// SentryMetrics handles custom metrics for Sentry
type SentryMetrics struct {
	enabled bool
}

// NewSentryMetrics creates a new Sentry metrics client
func NewSentryMetrics() *SentryMetrics {
	return &SentryMetrics{
		enabled: true, // Always enabled if Sentry is configured
	}
}

// RecordAPIRequest records API request metrics
func (m *SentryMetrics) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "api.request")
	defer span.Finish()

	span.SetTag("endpoint", endpoint)
	span.SetTag("status_code", fmt.Sprintf("%d", statusCode))
	span.SetTag("success", fmt.Sprintf("%t", statusCode < successStatusCodeThreshold))

	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("endpoint", endpoint)
	span.SetData("status_code", statusCode)

	if statusCode < successStatusCodeThreshold {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}

	span.Description = fmt.Sprintf("API Request: %s", endpoint)
}

// RecordTokenUsage records model token usage metrics
func (m *SentryMetrics) RecordTokenUsage(ctx context.Context, model string, totalTokens, inputTokens, outputTokens int) {
	if !m.enabled {
		return
	}

	// Tag the enclosing transaction so token volume is filterable per request
	if transaction := sentry.TransactionFromContext(ctx); transaction != nil {
		transaction.SetTag("llm.model", model)
		transaction.SetData("llm.total_tokens", totalTokens)
		transaction.SetData("llm.input_tokens", inputTokens)
		transaction.SetData("llm.output_tokens", outputTokens)
	}

	span := sentry.StartSpan(ctx, "llm.token_usage")
	defer span.Finish()

	span.SetTag("model", model)
	span.SetData("total_tokens", totalTokens)
	span.SetData("input_tokens", inputTokens)
	span.SetData("output_tokens", outputTokens)

	span.Status = sentry.SpanStatusOK
	span.Description = fmt.Sprintf("Token Usage: %s", model)
}

// RecordBranchExtraction records the strategy the branch parser used and the
// number of branches it produced
func (m *SentryMetrics) RecordBranchExtraction(ctx context.Context, tier string, branchCount int) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "story.branch_extraction")
	defer span.Finish()

	span.SetTag("tier", tier)
	span.SetData("branch_count", branchCount)

	span.Status = sentry.SpanStatusOK
	span.Description = fmt.Sprintf("Branch Extraction: %s", tier)
}

// RecordGenerationDuration records generation request duration
func (m *SentryMetrics) RecordGenerationDuration(ctx context.Context, duration time.Duration, success bool) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "generation.request")
	defer span.Finish()

	span.SetTag("success", fmt.Sprintf("%t", success))

	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("success", success)

	if success {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}

	span.Description = fmt.Sprintf("Generation Request: %t", success)
}
