package story

import (
	"encoding/json"
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/krznanoziyal/storyassist-api/internal/models"
)

const (
	// fallbackBranchCount is how many generic branches the last strategy synthesizes
	fallbackBranchCount = 3
	// fallbackSummaryMaxChars caps the synthesized summary length
	fallbackSummaryMaxChars = 100
)

// Tier identifies which extraction strategy produced the branches.
type Tier string

const (
	TierJSON     Tier = "json"
	TierHeadings Tier = "headings"
	TierFallback Tier = "fallback"
	TierNone     Tier = "none"
)

// branchHeaderPattern matches lines that open a new branch, e.g.
// "Branch 1: The Dark Path" or "OPTION 2 - Retreat".
var branchHeaderPattern = regexp.MustCompile(`(?i)^(?:branch|option|path|choice|alternative)\s*(\d+)\s*[-:.)]?\s*(.*)$`)

// ExtractBranches turns raw model output into an ordered list of story
// branches. Strategies are tried in order: a JSON array, heading-delimited
// text, then a synthesized fallback. A strategy that cannot produce branches
// returns nothing rather than an error, so malformed output degrades through
// the chain instead of failing the request.
func ExtractBranches(rawText string) []models.Branch {
	branches, _ := ExtractBranchesTier(rawText)
	return branches
}

// ExtractBranchesTier is ExtractBranches plus which strategy succeeded, so
// callers can record extraction quality.
func ExtractBranchesTier(rawText string) ([]models.Branch, Tier) {
	if strings.TrimSpace(rawText) == "" {
		return nil, TierNone
	}

	if branches := parseJSONBranches(rawText); len(branches) > 0 {
		log.Printf("✅ Branch parser: decoded %d branches from JSON", len(branches))
		return branches, TierJSON
	}

	if branches := parseHeadingBranches(rawText); len(branches) > 0 {
		log.Printf("✅ Branch parser: parsed %d branches from headings", len(branches))
		return branches, TierHeadings
	}

	log.Printf("⚠️  Branch parser: unstructured response, synthesizing %d generic branches", fallbackBranchCount)
	return fallbackBranches(rawText), TierFallback
}

// parseJSONBranches handles responses that followed the format directive: a
// JSON array of branch objects. Returns nil unless the text looks like an
// array and decodes cleanly.
func parseJSONBranches(rawText string) []models.Branch {
	trimmed := strings.TrimSpace(rawText)
	if !strings.HasPrefix(trimmed, "[") || !strings.HasSuffix(trimmed, "]") {
		return nil
	}

	var elements []map[string]interface{}
	if err := json.Unmarshal([]byte(trimmed), &elements); err != nil {
		log.Printf("⚠️  Branch parser: response looked like a JSON array but did not decode: %v", err)
		return nil
	}

	branches := make([]models.Branch, 0, len(elements))
	for i, element := range elements {
		ordinal := strconv.Itoa(i + 1)

		id := "branch-" + ordinal
		if v, ok := stringField(element, "branch_id"); ok && v != "" {
			id = "branch-" + v
		}

		title := "Branch " + ordinal
		if v, ok := stringField(element, "title"); ok && v != "" {
			title = v
		}

		summary, _ := stringField(element, "summary")

		// The format directive asks for "continuation"; some responses use
		// "content" instead. An element carrying neither still yields a
		// branch with empty content.
		content := ""
		if v, ok := stringField(element, "continuation"); ok && v != "" {
			content = v
		} else if v, ok := stringField(element, "content"); ok {
			content = v
		}

		branches = append(branches, models.Branch{
			ID:      id,
			Title:   title,
			Summary: summary,
			Content: content,
		})
	}
	return branches
}

// stringField reads element[key] as a string, coercing JSON numbers and
// booleans. Objects, arrays, and null count as absent.
func stringField(element map[string]interface{}, key string) (string, bool) {
	v, ok := element[key]
	if !ok || v == nil {
		return "", false
	}
	switch value := v.(type) {
	case string:
		return value, true
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(value), true
	default:
		return "", false
	}
}

// parseSection identifies which branch field unlabelled lines accumulate
// into during the heading scan.
type parseSection int

const (
	sectionNone parseSection = iota // before any header or label line
	sectionTitle
	sectionSummary
	sectionContent
)

// branchAccumulator collects one branch's fields while scanning lines.
type branchAccumulator struct {
	title   string
	summary string
	content string
}

// complete reports whether the accumulator has earned a place in the output.
// Branches missing a title or content are dropped, never emitted.
func (a *branchAccumulator) complete() bool {
	return strings.TrimSpace(a.title) != "" && strings.TrimSpace(a.content) != ""
}

func (a *branchAccumulator) appendTo(section parseSection, text string) {
	target := a.fieldFor(section)
	if target == nil {
		return
	}
	if *target == "" {
		*target = text
		return
	}
	*target += " " + text
}

func (a *branchAccumulator) fieldFor(section parseSection) *string {
	switch section {
	case sectionTitle:
		return &a.title
	case sectionSummary:
		return &a.summary
	case sectionContent:
		return &a.content
	default:
		return nil
	}
}

// parseHeadingBranches handles responses written as labelled text blocks:
//
//	Branch 1: The Dark Path
//	Summary: A risky choice
//	Content: The hero descends into shadow.
//
// A line classifier drives a small state machine: header and label lines
// switch the active section, anything else extends it. Branch ids number the
// finalized branches in order of appearance.
func parseHeadingBranches(rawText string) []models.Branch {
	var (
		branches []models.Branch
		current  branchAccumulator
		section  = sectionNone
	)

	finalize := func() {
		if current.complete() {
			branches = append(branches, models.Branch{
				ID:      "branch-" + strconv.Itoa(len(branches)+1),
				Title:   strings.TrimSpace(current.title),
				Summary: strings.TrimSpace(current.summary),
				Content: strings.TrimSpace(current.content),
			})
		}
		current = branchAccumulator{}
	}

	for _, rawLine := range strings.Split(rawText, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}

		if m := branchHeaderPattern.FindStringSubmatch(line); m != nil {
			finalize()
			title := strings.TrimSpace(m[2])
			if title == "" {
				title = line
			}
			current.title = title
			section = sectionTitle
			continue
		}

		switch {
		case hasLabel(line, "title:"):
			current.title = textAfterColon(line)
			section = sectionTitle
		case hasLabel(line, "summary:"):
			current.summary = textAfterColon(line)
			section = sectionSummary
		case hasLabel(line, "content:"), hasLabel(line, "description:"), hasLabel(line, "continuation:"):
			current.content = textAfterColon(line)
			section = sectionContent
		default:
			current.appendTo(section, line)
		}
	}
	finalize()

	return branches
}

func hasLabel(line, label string) bool {
	return strings.HasPrefix(strings.ToLower(line), label)
}

func textAfterColon(line string) string {
	idx := strings.Index(line, ":")
	return strings.TrimSpace(line[idx+1:])
}

// fallbackBranches guarantees the branching endpoint always has something to
// render: three identical story paths carrying the full raw text, with a
// short leading excerpt as the summary.
func fallbackBranches(rawText string) []models.Branch {
	runes := []rune(rawText)
	summaryLen := len(runes) / 3
	if summaryLen > fallbackSummaryMaxChars {
		summaryLen = fallbackSummaryMaxChars
	}
	summary := string(runes[:summaryLen]) + "..."

	branches := make([]models.Branch, 0, fallbackBranchCount)
	for i := 1; i <= fallbackBranchCount; i++ {
		branches = append(branches, models.Branch{
			ID:      "branch-" + strconv.Itoa(i),
			Title:   "Story Path " + strconv.Itoa(i),
			Summary: summary,
			Content: rawText,
		})
	}
	return branches
}
