package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/krznanoziyal/storyassist-api/internal/models"
	"github.com/krznanoziyal/storyassist-api/internal/prompt"
	"github.com/krznanoziyal/storyassist-api/internal/services"
	"github.com/krznanoziyal/storyassist-api/internal/store"
)

// StoryBibleHandler generates and serves story-bible items. Each item is
// model-generated from the author's raw notes for one category and stored
// per (document, category).
type StoryBibleHandler struct {
	genService *services.GenerationService
	docs       store.DocumentStore
	bible      store.StoryBibleStore
}

func NewStoryBibleHandler(genService *services.GenerationService, docs store.DocumentStore, bible store.StoryBibleStore) *StoryBibleHandler {
	return &StoryBibleHandler{
		genService: genService,
		docs:       docs,
		bible:      bible,
	}
}

// GenerateItemRequest is the body for POST /story-bible
type GenerateItemRequest struct {
	Category   string `json:"category" binding:"required"`
	Content    string `json:"content"`
	DocumentID string `json:"document_id" binding:"required"`
}

// Generate handles POST /story-bible: validates the document and category,
// generates the item's content, and stores it (overwriting any previous item
// for the pair).
func (h *StoryBibleHandler) Generate(c *gin.Context) {
	var req GenerateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	if !prompt.IsStoryBibleCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid story bible category"})
		return
	}

	if _, err := h.docs.Get(req.DocumentID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Document not found"})
			return
		}
		respondStoreFailure(c, err)
		return
	}

	content, err := h.genService.GenerateStoryBibleContent(c.Request.Context(), req.Category, req.Content)
	if err != nil {
		respondGenerationFailure(c, err)
		return
	}

	item := &models.StoryBibleItem{
		ID:         req.Category + "_" + req.DocumentID,
		DocumentID: req.DocumentID,
		Type:       req.Category,
		Title:      capitalize(req.Category),
		Content:    content,
	}
	if err := h.bible.Put(item); err != nil {
		respondStoreFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// List handles GET /story-bible/:docID
func (h *StoryBibleHandler) List(c *gin.Context) {
	items, err := h.bible.ListByDocument(c.Param("docID"))
	if err != nil {
		respondStoreFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetItem handles GET /story-bible/:docID/:category
func (h *StoryBibleHandler) GetItem(c *gin.Context) {
	category := c.Param("category")
	item, err := h.bible.Get(c.Param("docID"), category)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"detail": fmt.Sprintf("Story bible item for category '%s' not found", category),
			})
			return
		}
		respondStoreFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
