package prompt

import (
	"strings"

	"github.com/krznanoziyal/storyassist-api/internal/models"
)

// NoContextSentinel is the block emitted when a request carries no usable
// story-bible fields.
const NoContextSentinel = "No additional context provided."

// FormatStoryContext renders the story-bible fields as labeled lines in a
// fixed order: genre, style, synopsis, characters, worldbuilding, outline.
// The target audience is rendered by the prompt builder, not here. Absent
// fields are skipped; if nothing remains the sentinel is returned.
func FormatStoryContext(sc *models.StoryContext) string {
	if sc == nil {
		return NoContextSentinel
	}

	fields := []struct {
		label string
		value string
	}{
		{"Genre", sc.Genre},
		{"Writing Style", sc.Style},
		{"Synopsis", sc.Synopsis},
		{"Characters", sc.Characters},
		{"Worldbuilding", sc.Worldbuilding},
		{"Outline", sc.Outline},
	}

	var lines []string
	for _, f := range fields {
		value := strings.TrimSpace(f.value)
		if value == "" {
			continue
		}
		lines = append(lines, f.label+": "+value)
	}

	if len(lines) == 0 {
		return NoContextSentinel
	}
	return strings.Join(lines, "\n\n")
}
