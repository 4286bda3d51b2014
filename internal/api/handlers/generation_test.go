package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/krznanoziyal/storyassist-api/internal/llm"
	"github.com/krznanoziyal/storyassist-api/internal/metrics"
	"github.com/krznanoziyal/storyassist-api/internal/models"
	"github.com/krznanoziyal/storyassist-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubProvider returns a fixed response (or error) without any network call
type stubProvider struct {
	text string
	err  error

	lastRequest *llm.GenerationRequest
}

func (p *stubProvider) GenerateContent(_ context.Context, request *llm.GenerationRequest) (*llm.GenerationResponse, error) {
	p.lastRequest = request
	if p.err != nil {
		return nil, p.err
	}
	return &llm.GenerationResponse{Text: p.text}, nil
}

func (p *stubProvider) Name() string { return "stub" }

func newTestService(t *testing.T, provider llm.Provider) *services.GenerationService {
	t.Helper()
	cloudwatch, err := metrics.NewClient(context.Background(), "test")
	require.NoError(t, err)
	return services.NewGenerationService(provider, cloudwatch, "gemini-2.0-flash", 5*time.Second)
}

func newGenerationRouter(t *testing.T, provider llm.Provider) *gin.Engine {
	t.Helper()
	handler := NewGenerationHandler(newTestService(t, provider))

	router := gin.New()
	router.POST("/generate/write", handler.Write)
	router.POST("/generate/rewrite", handler.Rewrite)
	router.POST("/generate/describe", handler.Describe)
	router.POST("/generate/brainstorm", handler.Brainstorm)
	router.POST("/generate/context-element", handler.ContextElement)
	router.POST("/generate/story-branches", handler.StoryBranches)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestWriteReturnsGeneratedText(t *testing.T) {
	provider := &stubProvider{text: "  The dragon woke.  \n"}
	router := newGenerationRouter(t, provider)

	w := postJSON(t, router, "/generate/write", gin.H{"instruction": "continue the story"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "The dragon woke.", resp["generated_text"])
}

func TestWriteRejectsMissingInstruction(t *testing.T) {
	provider := &stubProvider{text: "unused"}
	router := newGenerationRouter(t, provider)

	w := postJSON(t, router, "/generate/write", gin.H{"current_text": "Once upon a time"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "detail")
	// Validation failures never reach the gateway
	assert.Nil(t, provider.lastRequest)
}

func TestRewriteRequiresSelection(t *testing.T) {
	provider := &stubProvider{text: "unused"}
	router := newGenerationRouter(t, provider)

	w := postJSON(t, router, "/generate/rewrite", gin.H{"instruction": "make it darker"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "No text selected for rewriting.", resp["detail"])
	assert.Nil(t, provider.lastRequest)
}

func TestRewriteWithSelection(t *testing.T) {
	provider := &stubProvider{text: "The knight hesitated."}
	router := newGenerationRouter(t, provider)

	w := postJSON(t, router, "/generate/rewrite", gin.H{
		"instruction": "make it darker",
		"selection":   "The knight smiled.",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "The knight hesitated.", resp["generated_text"])

	require.NotNil(t, provider.lastRequest)
	assert.Contains(t, provider.lastRequest.Prompt, "The knight smiled.")
}

func TestContextElementRejectsUnsupportedType(t *testing.T) {
	provider := &stubProvider{text: "unused"}
	router := newGenerationRouter(t, provider)

	w := postJSON(t, router, "/generate/context-element", gin.H{
		"instruction":  "build it",
		"element_type": "soundtrack",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Unsupported context element type: 'soundtrack'", resp["detail"])
	assert.Nil(t, provider.lastRequest)
}

func TestContextElementSupportedType(t *testing.T) {
	provider := &stubProvider{text: "# Mara\nA wary cartographer."}
	router := newGenerationRouter(t, provider)

	w := postJSON(t, router, "/generate/context-element", gin.H{
		"instruction":  "develop the cast",
		"element_type": "characters",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Mara")
}

func TestGatewayFailureReturns500(t *testing.T) {
	provider := &stubProvider{err: &llm.ServiceError{Provider: "stub", Message: "upstream unavailable"}}
	router := newGenerationRouter(t, provider)

	w := postJSON(t, router, "/generate/write", gin.H{"instruction": "continue"})
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "AI generation failed: upstream unavailable", resp["detail"])
}

func TestStoryBranchesParsesJSONOutput(t *testing.T) {
	provider := &stubProvider{
		text: `[{"branch_id": 1, "title": "The Dark Path", "summary": "Risky.", "continuation": "She descended."},
			{"branch_id": 2, "title": "The Light Path", "summary": "Safe.", "continuation": "She sought allies."}]`,
	}
	router := newGenerationRouter(t, provider)

	w := postJSON(t, router, "/generate/story-branches", gin.H{"instruction": "branch the story"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Branches []models.Branch `json:"branches"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Branches, 2)
	assert.Equal(t, "branch-1", resp.Branches[0].ID)
	assert.Equal(t, "The Dark Path", resp.Branches[0].Title)
	assert.Equal(t, "She sought allies.", resp.Branches[1].Content)
}

func TestStoryBranchesFallbackOnProse(t *testing.T) {
	provider := &stubProvider{text: "The story could go many ways from here, none of them labelled."}
	router := newGenerationRouter(t, provider)

	w := postJSON(t, router, "/generate/story-branches", gin.H{"instruction": "branch the story"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Branches []models.Branch `json:"branches"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Branches, 3)
	for _, branch := range resp.Branches {
		assert.Equal(t, provider.text, branch.Content)
		assert.Contains(t, branch.Title, "Story Path")
	}
	assert.Equal(t, "branch-1", resp.Branches[0].ID)
	assert.Equal(t, "branch-3", resp.Branches[2].ID)
}

func TestStoryBranchesPromptUsesBranchDirective(t *testing.T) {
	provider := &stubProvider{text: "[]"}
	router := newGenerationRouter(t, provider)

	postJSON(t, router, "/generate/story-branches", gin.H{"instruction": "branch the story"})

	require.NotNil(t, provider.lastRequest)
	assert.Contains(t, provider.lastRequest.Prompt, "branch_id")
	assert.Contains(t, provider.lastRequest.Prompt, "continuation")
}
