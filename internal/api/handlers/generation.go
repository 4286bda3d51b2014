package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/krznanoziyal/storyassist-api/internal/models"
	"github.com/krznanoziyal/storyassist-api/internal/prompt"
	"github.com/krznanoziyal/storyassist-api/internal/services"
)

// GenerationHandler exposes the creative-writing generation endpoints
type GenerationHandler struct {
	genService *services.GenerationService
}

func NewGenerationHandler(genService *services.GenerationService) *GenerationHandler {
	return &GenerationHandler{genService: genService}
}

// Write handles POST /generate/write
func (h *GenerationHandler) Write(c *gin.Context) {
	h.generateText(c, services.ActionWrite)
}

// Describe handles POST /generate/describe
func (h *GenerationHandler) Describe(c *gin.Context) {
	h.generateText(c, services.ActionDescribe)
}

// Brainstorm handles POST /generate/brainstorm
func (h *GenerationHandler) Brainstorm(c *gin.Context) {
	h.generateText(c, services.ActionBrainstorm)
}

// Rewrite handles POST /generate/rewrite. A rewrite without a selection has
// nothing to operate on, so it is rejected before any generation call.
func (h *GenerationHandler) Rewrite(c *gin.Context) {
	var req models.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	if strings.TrimSpace(req.Selection) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "No text selected for rewriting."})
		return
	}

	text, err := h.genService.GenerateText(c.Request.Context(), &req, services.ActionRewrite)
	if err != nil {
		respondGenerationFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"generated_text": text})
}

// ContextElement handles POST /generate/context-element
func (h *GenerationHandler) ContextElement(c *gin.Context) {
	var req models.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	if !prompt.IsSupportedElementType(req.ElementType) {
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": fmt.Sprintf("Unsupported context element type: '%s'", req.ElementType),
		})
		return
	}

	text, err := h.genService.GenerateContextElement(c.Request.Context(), &req)
	if err != nil {
		respondGenerationFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"generated_text": text})
}

// StoryBranches handles POST /generate/story-branches. The extraction
// pipeline always yields a renderable list once generation succeeds, so the
// only failure surfaced here is the gateway's.
func (h *GenerationHandler) StoryBranches(c *gin.Context) {
	var req models.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	branches, err := h.genService.GenerateBranches(c.Request.Context(), &req)
	if err != nil {
		respondGenerationFailure(c, err)
		return
	}
	if branches == nil {
		branches = []models.Branch{}
	}

	c.JSON(http.StatusOK, gin.H{"branches": branches})
}

func (h *GenerationHandler) generateText(c *gin.Context, action services.Action) {
	var req models.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	text, err := h.genService.GenerateText(c.Request.Context(), &req, action)
	if err != nil {
		respondGenerationFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"generated_text": text})
}

func respondGenerationFailure(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"detail": "AI generation failed: " + err.Error(),
	})
}
