package embedded

import (
	_ "embed"
)

// Embed all prompt data files
//
//go:embed data/prompts/persona_preamble.txt
var PersonaPreambleTxt []byte

//go:embed data/prompts/branch_format_instructions.txt
var BranchFormatInstructionsTxt []byte

//go:embed data/prompts/story_bible_instructions.txt
var StoryBibleInstructionsTxt []byte
