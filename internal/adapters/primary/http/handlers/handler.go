package handlers

import (
	"artifact-registry-service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	registry *services.RegistryService
}

func New(registry *services.RegistryService) *Handler {
	return &Handler{registry: registry}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Artifacts
	r.POST("/artifacts", h.RegisterArtifact)
	r.GET("/artifacts/:type", h.ListByType)
	r.GET("/artifacts/:type/:id", h.GetVersions)
	r.GET("/artifacts/:type/:id/:version", h.GetVersion)

	// Registry-wide operations
	r.POST("/search", h.Search)
	r.DELETE("/reset", h.Reset)
}
