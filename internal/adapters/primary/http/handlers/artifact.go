package handlers

import (
	"net/http"

	"artifact-registry-service/internal/adapters/primary/http/dto"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) RegisterArtifact(c *gin.Context) {
	var req dto.RegisterArtifactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.registry.Register(c.Request.Context(), req.ArtifactType, req.ArtifactID, req.Version, req.Metadata)
	if err != nil {
		log.WithError(err).Error("register artifact failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToArtifactVersionResponse(rec))
}

func (h *Handler) ListByType(c *gin.Context) {
	summaries, err := h.registry.ListByType(c.Request.Context(), c.Param("type"))
	if err != nil {
		mapDomainError(c, err)
		return
	}

	items := make([]dto.ArtifactSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, dto.ToArtifactSummaryResponse(s))
	}
	c.JSON(http.StatusOK, dto.ListByTypeResponse{Items: items})
}

func (h *Handler) GetVersions(c *gin.Context) {
	versions, err := h.registry.GetVersions(c.Request.Context(), c.Param("type"), c.Param("id"))
	if err != nil {
		mapDomainError(c, err)
		return
	}

	items := make([]dto.ArtifactVersionResponse, 0, len(versions))
	for _, rec := range versions {
		items = append(items, dto.ToArtifactVersionResponse(rec))
	}
	c.JSON(http.StatusOK, dto.ListVersionsResponse{Items: items})
}

func (h *Handler) GetVersion(c *gin.Context) {
	rec, err := h.registry.GetVersion(c.Request.Context(), c.Param("type"), c.Param("id"), c.Param("version"))
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToArtifactVersionResponse(rec))
}

func (h *Handler) Search(c *gin.Context) {
	var req dto.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	keys, err := h.registry.Search(c.Request.Context(), req.Pattern)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	items := make([]dto.ArtifactKeyResponse, 0, len(keys))
	for _, k := range keys {
		items = append(items, dto.ToArtifactKeyResponse(k))
	}
	c.JSON(http.StatusOK, dto.SearchResponse{Items: items})
}

func (h *Handler) Reset(c *gin.Context) {
	if err := h.registry.Reset(c.Request.Context()); err != nil {
		log.WithError(err).Error("reset registry failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "registry reset"})
}
