package observability

import (
	"sync"

	"github.com/krznanoziyal/storyassist-api/internal/llm"
	"github.com/pkoukk/tiktoken-go"
)

// estimationEncoding is a general-purpose BPE encoding. Gemini and OpenAI
// tokenize differently, but for usage dashboards an estimate within a few
// percent is enough.
const estimationEncoding = "cl100k_base"

var (
	encodingOnce sync.Once
	encoding     *tiktoken.Tiktoken
)

// CountTokens estimates the token count of text. Returns 0 when the encoding
// cannot be loaded (offline BPE fetch failure); estimation is best-effort.
func CountTokens(text string) int {
	encodingOnce.Do(func() {
		enc, err := tiktoken.GetEncoding(estimationEncoding)
		if err == nil {
			encoding = enc
		}
	})
	if encoding == nil {
		return 0
	}
	return len(encoding.Encode(text, nil, nil))
}

// EstimateUsage fills in token usage for providers that did not report it
func EstimateUsage(prompt, output string) llm.Usage {
	promptTokens := CountTokens(prompt)
	completionTokens := CountTokens(output)
	return llm.Usage{
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		TotalTokens:      promptTokens + completionTokens,
	}
}
