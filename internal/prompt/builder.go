package prompt

import (
	"fmt"
	"strings"

	"github.com/krznanoziyal/storyassist-api/internal/models"
)

const (
	// maxCurrentTextChars bounds how much trailing document text a prompt
	// embeds. The window keeps the most recent narrative context.
	maxCurrentTextChars = 1500

	truncationMarker = "... "

	closingCue = "Generate the response:"

	antiPreambleDirective = "Respond with the story content only. Do not include explanations, preambles, apologies, or a restatement of these instructions."
)

// Task descriptions for the generation actions.
const (
	TaskWrite      = "Continue the story or create new content as the author requests. Generate high-quality, coherent story content that flows naturally from the existing text."
	TaskRewrite    = "Rewrite the selected text according to the author's instructions. Maintain the essence of the original while improving it as requested."
	TaskDescribe   = "Create a rich, detailed description that engages the reader's senses and imagination. Focus on showing rather than telling, and use vivid, specific language."
	TaskBrainstorm = "Brainstorm creative ideas for the story. Provide a variety of fresh ideas, plot possibilities, character concepts, settings, or narrative twists that could enhance it."

	taskStoryBranches = "Propose three distinct directions the story could take from this point. Each branch must offer a meaningfully different narrative path."
)

// elementTasks maps a context element type to its task description.
var elementTasks = map[string]string{
	"braindump":     "Organize and expand the author's initial thoughts into a coherent collection of story ideas.",
	"genre":         "Describe the conventions, tropes, and reader expectations of this story's genre.",
	"style":         "Analyze the writing style the author is aiming for and describe how to achieve it.",
	"synopsis":      "Create a comprehensive synopsis for this story.",
	"characters":    "Develop detailed character profiles for this story.",
	"worldbuilding": "Create detailed world-building elements for this story.",
	"outline":       "Develop a structured outline for this story.",
}

// elementFormatHints are appended after the generic build for element types
// whose output needs a particular shape.
var elementFormatHints = map[string]string{
	"braindump":     "Group related ideas under short headings.",
	"characters":    "Use a markdown heading for each character's name.",
	"worldbuilding": "Group related elements under markdown headings.",
	"outline":       "Format the outline as a numbered list.",
}

// storyBibleTasks maps a story-bible category to the instruction that opens
// its generation prompt.
var storyBibleTasks = map[string]string{
	"braindump":     "Organize and expand on these initial thoughts for a story:",
	"genre":         "Describe the conventions, tropes, and expectations of this genre:",
	"style":         "Analyze and suggest improvements for this writing style:",
	"synopsis":      "Create a comprehensive synopsis based on this information:",
	"characters":    "Develop character profiles based on these descriptions:",
	"worldbuilding": "Create detailed world-building elements based on this information:",
	"outline":       "Develop a structured outline based on these story elements:",
}

// IsSupportedElementType reports whether t is a known context element type.
func IsSupportedElementType(t string) bool {
	_, ok := elementTasks[t]
	return ok
}

// IsStoryBibleCategory reports whether c is a known story-bible category.
func IsStoryBibleCategory(c string) bool {
	_, ok := storyBibleTasks[c]
	return ok
}

// Builder assembles the prompts sent to the generation providers. Output is
// deterministic for identical inputs.
type Builder struct {
	loader *Loader
}

// NewBuilder creates a new prompt builder
func NewBuilder() *Builder {
	return &Builder{loader: NewPromptLoader()}
}

// BuildGenerationPrompt composes the generic generation prompt: persona,
// story context, trailing window of current text, selection, task,
// instruction, output directive, closing cue. Sections for absent inputs are
// omitted. Validation of required fields happens at the call site; the
// builder never rejects.
func (b *Builder) BuildGenerationPrompt(req *models.GenerationRequest, actionDescription string) string {
	sections := b.commonSections(req, actionDescription)
	sections = append(sections, antiPreambleDirective, closingCue)
	return strings.Join(sections, "\n\n")
}

// BuildContextElementPrompt builds the prompt for generating one story
// element (characters, outline, ...). Unknown types get a generic task; the
// call site validates before building.
func (b *Builder) BuildContextElementPrompt(req *models.GenerationRequest, elementType string) string {
	task, ok := elementTasks[elementType]
	if !ok {
		task = "Develop this story element in structured, detailed form."
	}
	built := b.BuildGenerationPrompt(req, task)
	if hint, ok := elementFormatHints[elementType]; ok {
		built += "\n\n" + hint
	}
	return built
}

// BuildBranchPrompt builds the story-branching prompt. The branch format
// directive replaces the generic output directive so the response can be
// parsed into structured branches.
func (b *Builder) BuildBranchPrompt(req *models.GenerationRequest) string {
	sections := b.commonSections(req, taskStoryBranches)
	sections = append(sections, b.loader.GetBranchFormatInstructions(), closingCue)
	return strings.Join(sections, "\n\n")
}

// BuildStoryBiblePrompt builds the prompt for generating a stored
// story-bible item from the author's raw notes for that category.
func (b *Builder) BuildStoryBiblePrompt(category, content string) string {
	sections := []string{
		b.loader.GetStoryBibleInstructions(),
		storyBibleTasks[category],
		content,
		"Provide structured, detailed information that will help develop this story element.",
	}
	return strings.Join(sections, "\n\n")
}

func (b *Builder) commonSections(req *models.GenerationRequest, actionDescription string) []string {
	sections := []string{b.loader.GetPersonaPreamble()}

	if req.StoryContext != nil {
		sections = append(sections, section("Story Context", b.contextBlock(req.StoryContext)))
	}
	if req.CurrentText != "" {
		sections = append(sections, section("Current Story Text", trailingWindow(req.CurrentText)))
	}
	if req.Selection != "" {
		sections = append(sections, section("Selected Text", req.Selection))
	}

	sections = append(sections, section("Task", actionDescription), req.Instruction)
	return sections
}

// contextBlock renders the Story Context section body: the target-audience
// directive first when present, then the formatted story-bible fields.
func (b *Builder) contextBlock(sc *models.StoryContext) string {
	var parts []string
	if age := strings.TrimSpace(sc.TargetAudienceAge); age != "" {
		parts = append(parts, fmt.Sprintf("Target audience: readers aged %s. Use vocabulary and themes appropriate for this audience.", age))
	}
	parts = append(parts, FormatStoryContext(sc))
	return strings.Join(parts, "\n\n")
}

func section(title, body string) string {
	return "=== " + title + " ===\n" + body
}

// trailingWindow returns at most the last maxCurrentTextChars characters of
// text, prefixed with the truncation marker when anything was cut.
func trailingWindow(text string) string {
	runes := []rune(text)
	if len(runes) <= maxCurrentTextChars {
		return text
	}
	return truncationMarker + string(runes[len(runes)-maxCurrentTextChars:])
}
