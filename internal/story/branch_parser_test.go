package story

import (
	"reflect"
	"strings"
	"testing"

	"github.com/krznanoziyal/storyassist-api/internal/models"
)

func TestExtractBranchesJSONRoundTrip(t *testing.T) {
	input := `[{"title":"A","summary":"s","continuation":"c"}]`

	got := ExtractBranches(input)
	want := []models.Branch{
		{ID: "branch-1", Title: "A", Summary: "s", Content: "c"},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractBranches(%q) = %+v, want %+v", input, got, want)
	}
}

func TestExtractBranchesJSONFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []models.Branch
	}{
		{
			name:  "numeric branch_id",
			input: `[{"branch_id": 2, "title": "T", "continuation": "c"}]`,
			want:  []models.Branch{{ID: "branch-2", Title: "T", Content: "c"}},
		},
		{
			name:  "string branch_id",
			input: `[{"branch_id": "7", "title": "T", "continuation": "c"}]`,
			want:  []models.Branch{{ID: "branch-7", Title: "T", Content: "c"}},
		},
		{
			name:  "missing branch_id falls back to ordinal",
			input: `[{"title": "First", "continuation": "a"}, {"title": "Second", "continuation": "b"}]`,
			want: []models.Branch{
				{ID: "branch-1", Title: "First", Content: "a"},
				{ID: "branch-2", Title: "Second", Content: "b"},
			},
		},
		{
			name:  "missing title falls back to Branch n",
			input: `[{"continuation": "a"}, {"continuation": "b"}]`,
			want: []models.Branch{
				{ID: "branch-1", Title: "Branch 1", Content: "a"},
				{ID: "branch-2", Title: "Branch 2", Content: "b"},
			},
		},
		{
			name:  "continuation preferred over content",
			input: `[{"title": "T", "continuation": "keep this", "content": "not this"}]`,
			want:  []models.Branch{{ID: "branch-1", Title: "T", Content: "keep this"}},
		},
		{
			name:  "empty continuation defers to content",
			input: `[{"title": "T", "continuation": "", "content": "the body"}]`,
			want:  []models.Branch{{ID: "branch-1", Title: "T", Content: "the body"}},
		},
		{
			name:  "summary defaults to empty",
			input: `[{"title": "T", "continuation": "c"}]`,
			want:  []models.Branch{{ID: "branch-1", Title: "T", Summary: "", Content: "c"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractBranches(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractBranches() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestExtractBranchesJSONEmptyContentStillReturned(t *testing.T) {
	// A structurally valid array wins even when no element carries text; the
	// fallback only runs when the earlier strategies yield nothing.
	input := `[{"title": "A"}, {"title": "B"}]`

	got, tier := ExtractBranchesTier(input)

	if tier != TierJSON {
		t.Fatalf("tier = %q, want %q", tier, TierJSON)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for _, b := range got {
		if b.Content != "" {
			t.Errorf("branch %s content = %q, want empty", b.ID, b.Content)
		}
	}
}

func TestExtractBranchesJSONEmptyArrayFallsThrough(t *testing.T) {
	got, tier := ExtractBranchesTier(`[]`)

	if tier != TierFallback {
		t.Fatalf("tier = %q, want %q", tier, TierFallback)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Content != "[]" {
		t.Errorf("fallback content = %q, want the raw text", got[0].Content)
	}
}

func TestExtractBranchesMalformedJSONFallsThrough(t *testing.T) {
	input := `[{"title": "A",]`

	got, tier := ExtractBranchesTier(input)

	if tier != TierFallback {
		t.Fatalf("tier = %q, want %q (no headings in input)", tier, TierFallback)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Content != input {
		t.Errorf("fallback content = %q, want the raw text", got[0].Content)
	}
}

func TestExtractBranchesHeadings(t *testing.T) {
	input := strings.Join([]string{
		"Branch 1: The Dark Path",
		"Summary: A risky choice",
		"Content: The hero descends into shadow.",
		"Branch 2: The Light Path",
		"Summary: A safe choice",
		"Content: The hero seeks allies.",
	}, "\n")

	got, tier := ExtractBranchesTier(input)
	want := []models.Branch{
		{ID: "branch-1", Title: "The Dark Path", Summary: "A risky choice", Content: "The hero descends into shadow."},
		{ID: "branch-2", Title: "The Light Path", Summary: "A safe choice", Content: "The hero seeks allies."},
	}

	if tier != TierHeadings {
		t.Fatalf("tier = %q, want %q", tier, TierHeadings)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractBranches() = %+v, want %+v", got, want)
	}
}

func TestExtractBranchesHeaderKeywords(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantTitle string
	}{
		{"branch", "Branch 1: Onward", "Onward"},
		{"option", "Option 1: Retreat", "Retreat"},
		{"path", "Path 1: Through the marsh", "Through the marsh"},
		{"choice", "Choice 1: Stand and fight", "Stand and fight"},
		{"alternative", "Alternative 1: Surrender", "Surrender"},
		{"uppercase", "BRANCH 1: Onward", "Onward"},
		{"dash separator", "Option 2 - Flee the city", "Flee the city"},
		{"no remainder keeps whole line", "Branch 1", "Branch 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tt.header + "\nContent: something happens."

			got := ExtractBranches(input)
			if len(got) != 1 {
				t.Fatalf("len = %d, want 1", len(got))
			}
			if got[0].Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", got[0].Title, tt.wantTitle)
			}
		})
	}
}

func TestExtractBranchesUnlabelledLinesExtendSection(t *testing.T) {
	input := strings.Join([]string{
		"Branch 1: Start",
		"Summary: first line",
		"second line",
		"",
		"Content: body starts",
		"and continues here.",
	}, "\n")

	got := ExtractBranches(input)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Summary != "first line second line" {
		t.Errorf("summary = %q, want space-joined lines", got[0].Summary)
	}
	if got[0].Content != "body starts and continues here." {
		t.Errorf("content = %q, want space-joined lines", got[0].Content)
	}
}

func TestExtractBranchesDropsIncompleteAccumulator(t *testing.T) {
	input := strings.Join([]string{
		"Branch 1: Complete",
		"Content: has content",
		"Branch 2: Title but nothing else",
		"Branch 3: Also complete",
		"Content: more content",
	}, "\n")

	got := ExtractBranches(input)
	want := []models.Branch{
		{ID: "branch-1", Title: "Complete", Content: "has content"},
		{ID: "branch-2", Title: "Also complete", Content: "more content"},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("incomplete branch should be dropped and ids resequenced:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestExtractBranchesIncompleteTrailingAccumulatorDropped(t *testing.T) {
	input := strings.Join([]string{
		"Branch 1: Done",
		"Content: full body",
		"Branch 2: Never finished",
		"Summary: only a summary",
	}, "\n")

	got := ExtractBranches(input)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Title != "Done" {
		t.Errorf("title = %q, want %q", got[0].Title, "Done")
	}
}

func TestExtractBranchesIgnoresPreHeaderProse(t *testing.T) {
	input := strings.Join([]string{
		"Here are some options for you!",
		"Branch 1: The Only One",
		"Content: the body",
	}, "\n")

	got := ExtractBranches(input)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Title != "The Only One" {
		t.Errorf("title = %q", got[0].Title)
	}
}

func TestExtractBranchesLabelsWithoutHeader(t *testing.T) {
	input := "Title: Lone Branch\nContent: its body"

	got := ExtractBranches(input)
	want := []models.Branch{
		{ID: "branch-1", Title: "Lone Branch", Content: "its body"},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractBranches() = %+v, want %+v", got, want)
	}
}

func TestExtractBranchesFallbackProse(t *testing.T) {
	input := "random unparseable prose with no headers"

	got, tier := ExtractBranchesTier(input)

	if tier != TierFallback {
		t.Fatalf("tier = %q, want %q", tier, TierFallback)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, b := range got {
		wantID := []string{"branch-1", "branch-2", "branch-3"}[i]
		wantTitle := []string{"Story Path 1", "Story Path 2", "Story Path 3"}[i]
		if b.ID != wantID || b.Title != wantTitle {
			t.Errorf("branch %d = %s/%q, want %s/%q", i, b.ID, b.Title, wantID, wantTitle)
		}
		if b.Content != input {
			t.Errorf("branch %d content = %q, want the full input", i, b.Content)
		}
		if b.Summary != "random unpars..." {
			t.Errorf("branch %d summary = %q", i, b.Summary)
		}
	}
}

func TestExtractBranchesFallbackSummaryCapped(t *testing.T) {
	input := strings.Repeat("x", 400)

	got := ExtractBranches(input)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Summary != strings.Repeat("x", 100)+"..." {
		t.Errorf("summary = %q, want first 100 characters plus ellipsis", got[0].Summary)
	}
}

func TestExtractBranchesEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t\n"} {
		got, tier := ExtractBranchesTier(input)
		if len(got) != 0 {
			t.Errorf("ExtractBranches(%q) returned %d branches, want 0", input, len(got))
		}
		if tier != TierNone {
			t.Errorf("tier = %q, want %q", tier, TierNone)
		}
	}
}

func TestExtractBranchesIdempotent(t *testing.T) {
	inputs := []string{
		`[{"branch_id": 1, "title": "A", "summary": "s", "continuation": "c"}]`,
		"Branch 1: T\nContent: body",
		"plain prose without structure",
	}

	for _, input := range inputs {
		first := ExtractBranches(input)
		second := ExtractBranches(input)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("ExtractBranches(%q) is not deterministic", input)
		}
	}
}
