package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/krznanoziyal/storyassist-api/internal/logger"
	"github.com/krznanoziyal/storyassist-api/internal/models"
	"github.com/krznanoziyal/storyassist-api/internal/store"
)

// DocumentHandler exposes CRUD for the author's documents
type DocumentHandler struct {
	docs store.DocumentStore
}

func NewDocumentHandler(docs store.DocumentStore) *DocumentHandler {
	return &DocumentHandler{docs: docs}
}

// CreateDocumentRequest is the optional body for POST /documents
type CreateDocumentRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdateDocumentRequest is the body for PUT /documents/:id
type UpdateDocumentRequest struct {
	Content string  `json:"content"`
	Title   *string `json:"title"`
}

// Create handles POST /documents
func (h *DocumentHandler) Create(c *gin.Context) {
	var req CreateDocumentRequest
	// Body is optional; an empty POST creates an untitled document
	_ = c.ShouldBindJSON(&req)

	title := req.Title
	if title == "" {
		count, err := h.docs.Count()
		if err != nil {
			respondStoreFailure(c, err)
			return
		}
		title = fmt.Sprintf("Untitled %d", count+1)
	}

	doc := &models.Document{
		ID:           uuid.New().String(),
		Title:        title,
		Content:      req.Content,
		LastModified: time.Now().UTC(),
	}
	if err := h.docs.Create(doc); err != nil {
		respondStoreFailure(c, err)
		return
	}

	logger.Info("Document created", logger.Fields{"document_id": doc.ID})
	c.JSON(http.StatusOK, doc)
}

// List handles GET /documents
func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := h.docs.List()
	if err != nil {
		respondStoreFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

// Get handles GET /documents/:id
func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.docs.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Document not found"})
			return
		}
		respondStoreFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// Update handles PUT /documents/:id
func (h *DocumentHandler) Update(c *gin.Context) {
	var req UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	doc, err := h.docs.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Document not found"})
			return
		}
		respondStoreFailure(c, err)
		return
	}

	doc.Content = req.Content
	if req.Title != nil {
		doc.Title = *req.Title
	}
	doc.LastModified = time.Now().UTC()

	if err := h.docs.Update(doc); err != nil {
		respondStoreFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// Delete handles DELETE /documents/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	if err := h.docs.Delete(c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Document not found"})
			return
		}
		respondStoreFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Document deleted successfully"})
}

func respondStoreFailure(c *gin.Context, err error) {
	logger.Error("Store operation failed", err, logger.WithContext(c))
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "Storage operation failed"})
}
