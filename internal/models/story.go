package models

// StoryContext carries the story-bible fields an author can attach to a
// generation request. All fields are optional free text.
type StoryContext struct {
	Genre             string `json:"genre,omitempty"`
	Style             string `json:"style,omitempty"`
	Synopsis          string `json:"synopsis,omitempty"`
	Characters        string `json:"characters,omitempty"`
	Worldbuilding     string `json:"worldbuilding,omitempty"`
	Outline           string `json:"outline,omitempty"`
	TargetAudienceAge string `json:"target_audience_age,omitempty"`
}

// GenerationRequest wraps the user's generation parameters
type GenerationRequest struct {
	Instruction  string        `json:"instruction" binding:"required"`
	CurrentText  string        `json:"current_text"`
	Selection    string        `json:"selection"`
	ElementType  string        `json:"element_type"` // context-element generation only
	StoryContext *StoryContext `json:"story_context"`
}

// Branch represents one candidate narrative continuation offered for a
// single branching decision point. Branches are assembled once per response
// and never mutated.
type Branch struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Content string `json:"content"`
}
