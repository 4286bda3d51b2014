package prompt

import (
	"strings"
	"testing"
)

func TestNewPromptLoader(t *testing.T) {
	loader := NewPromptLoader()
	if loader == nil {
		t.Fatal("NewPromptLoader() returned nil")
	}
}

func TestGetPersonaPreamble(t *testing.T) {
	loader := NewPromptLoader()
	content := loader.GetPersonaPreamble()

	if content == "" {
		t.Error("GetPersonaPreamble() returned empty string")
	}

	// Check for expected content
	if !strings.Contains(content, "creative writing assistant") {
		t.Error("GetPersonaPreamble() does not contain expected content")
	}

	// Ensure no excessive whitespace
	if strings.HasPrefix(content, "\n") || strings.HasSuffix(content, "\n") {
		t.Error("GetPersonaPreamble() is not trimmed")
	}
}

func TestGetBranchFormatInstructions(t *testing.T) {
	loader := NewPromptLoader()
	content := loader.GetBranchFormatInstructions()

	if content == "" {
		t.Error("GetBranchFormatInstructions() returned empty string")
	}

	// The directive defines the Tier-1 parse contract; the keys it names must
	// match what the branch parser reads
	for _, key := range []string{"branch_id", "title", "summary", "continuation"} {
		if !strings.Contains(content, key) {
			t.Errorf("GetBranchFormatInstructions() missing key %q", key)
		}
	}

	if !strings.Contains(content, "JSON array") {
		t.Error("GetBranchFormatInstructions() does not request a JSON array")
	}
}

func TestGetStoryBibleInstructions(t *testing.T) {
	loader := NewPromptLoader()
	content := loader.GetStoryBibleInstructions()

	if content == "" {
		t.Error("GetStoryBibleInstructions() returned empty string")
	}

	if !strings.Contains(content, "story development consultant") {
		t.Error("GetStoryBibleInstructions() does not contain expected content")
	}
}

func TestAllLoadersReturnNonEmptyContent(t *testing.T) {
	loader := NewPromptLoader()

	tests := []struct {
		name string
		fn   func() string
	}{
		{"PersonaPreamble", loader.GetPersonaPreamble},
		{"BranchFormatInstructions", loader.GetBranchFormatInstructions},
		{"StoryBibleInstructions", loader.GetStoryBibleInstructions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := tt.fn()
			if content == "" {
				t.Errorf("%s returned empty string", tt.name)
			}
			if len(content) < 10 {
				t.Errorf("%s returned suspiciously short content: %d characters", tt.name, len(content))
			}
		})
	}
}
