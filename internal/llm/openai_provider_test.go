package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIProvider_Name(t *testing.T) {
	provider := NewOpenAIProvider("test-key")
	assert.Equal(t, "openai", provider.Name())
}

func TestNewOpenAIProvider(t *testing.T) {
	provider := NewOpenAIProvider("test-key")
	require.NotNil(t, provider)
	require.NotNil(t, provider.client)
}
