package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const serviceName = "storyassist-api"

// HealthHandler reports service liveness
type HealthHandler struct {
	version string
}

func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{version: version}
}

// HealthCheck handles GET /health
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": h.version,
	})
}

// Root handles GET /
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "StoryAssist Backend API is running",
	})
}
