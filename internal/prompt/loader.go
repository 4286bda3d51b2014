package prompt

import (
	"strings"

	"github.com/krznanoziyal/storyassist-api/pkg/embedded"
)

type Loader struct{}

func NewPromptLoader() *Loader {
	return &Loader{}
}

// GetPersonaPreamble loads the assistant persona that opens every generation prompt
func (l *Loader) GetPersonaPreamble() string {
	return strings.TrimSpace(string(embedded.PersonaPreambleTxt))
}

// GetBranchFormatInstructions loads the output directive for story branching
func (l *Loader) GetBranchFormatInstructions() string {
	return strings.TrimSpace(string(embedded.BranchFormatInstructionsTxt))
}

// GetStoryBibleInstructions loads the story development consultant persona
func (l *Loader) GetStoryBibleInstructions() string {
	return strings.TrimSpace(string(embedded.StoryBibleInstructionsTxt))
}
