package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artifact-registry-service/internal/adapters/primary/http/dto"
	"artifact-registry-service/internal/adapters/secondary/memory"
	"artifact-registry-service/internal/core/domain"
	"artifact-registry-service/internal/core/scoring"
	"artifact-registry-service/internal/core/services"
	"artifact-registry-service/internal/testutil"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fetcher := &testutil.StaticFetcher{Snapshots: map[domain.SourceKind]*domain.Snapshot{
		domain.SourceKindHubModel: {
			Kind:    domain.SourceKindHubModel,
			License: "apache-2.0",
			Readme:  "usage examples and training notes",
		},
	}}
	engine, err := scoring.NewEngine(fetcher, scoring.Config{})
	require.NoError(t, err)

	registry := services.NewRegistryService(memory.NewArtifactRepository(), engine, 100)

	router := gin.New()
	New(registry).RegisterRoutes(router.Group("/api/v1/registry"))
	return router
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func registerArtifact(t *testing.T, router *gin.Engine, artifactType, id, version string) dto.ArtifactVersionResponse {
	t.Helper()
	rec := doJSON(router, http.MethodPost, "/api/v1/registry/artifacts", dto.RegisterArtifactRequest{
		ArtifactType: artifactType,
		ArtifactID:   id,
		Version:      version,
		Metadata:     map[string]string{domain.MetadataKeyHubURL: "https://huggingface.co/" + id},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp dto.ArtifactVersionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestRegisterArtifact_Created(t *testing.T) {
	router := newTestRouter(t)

	resp := registerArtifact(t, router, "model", "bert", "1.0.0")

	assert.Equal(t, "model", resp.ArtifactType)
	assert.Equal(t, "bert", resp.ArtifactID)
	assert.Equal(t, "1.0.0", resp.Version)
	assert.False(t, resp.CreatedAt.IsZero())
	assert.Len(t, resp.Score.Metrics, 8)
	assert.Greater(t, resp.Score.NetScore, 0.0)
}

func TestRegisterArtifact_DuplicateConflict(t *testing.T) {
	router := newTestRouter(t)

	registerArtifact(t, router, "model", "bert", "1.0.0")

	rec := doJSON(router, http.MethodPost, "/api/v1/registry/artifacts", dto.RegisterArtifactRequest{
		ArtifactType: "model", ArtifactID: "bert", Version: "1.0.0",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterArtifact_InvalidType(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(router, http.MethodPost, "/api/v1/registry/artifacts", dto.RegisterArtifactRequest{
		ArtifactType: "notebook", ArtifactID: "x", Version: "1.0.0",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterArtifact_MissingFields(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(router, http.MethodPost, "/api/v1/registry/artifacts", map[string]string{
		"artifact_type": "model",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetVersion_RoundtripAndNotFound(t *testing.T) {
	router := newTestRouter(t)
	registerArtifact(t, router, "model", "bert", "1.0.0")

	rec := doJSON(router, http.MethodGet, "/api/v1/registry/artifacts/model/bert/1.0.0", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.ArtifactVersionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "1.0.0", resp.Version)

	rec = doJSON(router, http.MethodGet, "/api/v1/registry/artifacts/model/bert/9.9.9", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetVersions_InsertionOrderAndEmptyList(t *testing.T) {
	router := newTestRouter(t)
	registerArtifact(t, router, "model", "bert", "2.0.0")
	registerArtifact(t, router, "model", "bert", "1.0.0")

	rec := doJSON(router, http.MethodGet, "/api/v1/registry/artifacts/model/bert", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.ListVersionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "2.0.0", resp.Items[0].Version)
	assert.Equal(t, "1.0.0", resp.Items[1].Version)

	// Unknown id under a valid type is an empty list, not 404.
	rec = doJSON(router, http.MethodGet, "/api/v1/registry/artifacts/model/ghost", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Items)
}

func TestListByType_LatestVersionOnly(t *testing.T) {
	router := newTestRouter(t)
	registerArtifact(t, router, "model", "bert", "1.0.0")
	registerArtifact(t, router, "model", "bert", "2.0.0")
	registerArtifact(t, router, "dataset", "squad", "1.0.0")

	rec := doJSON(router, http.MethodGet, "/api/v1/registry/artifacts/model", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.ListByTypeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "bert", resp.Items[0].ArtifactID)
	assert.Equal(t, "2.0.0", resp.Items[0].LatestVersion)
}

func TestSearch_MatchesAcrossTypes(t *testing.T) {
	router := newTestRouter(t)
	registerArtifact(t, router, "model", "bert-base", "1.0.0")
	registerArtifact(t, router, "dataset", "bert-corpus", "1.0.0")
	registerArtifact(t, router, "model", "gpt2", "1.0.0")

	rec := doJSON(router, http.MethodPost, "/api/v1/registry/search", dto.SearchRequest{Pattern: "^bert"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "bert-corpus", resp.Items[0].ArtifactID)
	assert.Equal(t, "bert-base", resp.Items[1].ArtifactID)
}

func TestSearch_InvalidPattern(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(router, http.MethodPost, "/api/v1/registry/search", dto.SearchRequest{Pattern: "[unclosed"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReset_ClearsEverything(t *testing.T) {
	router := newTestRouter(t)
	registerArtifact(t, router, "model", "bert", "1.0.0")

	rec := doJSON(router, http.MethodDelete, "/api/v1/registry/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(router, http.MethodGet, "/api/v1/registry/artifacts/model", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.ListByTypeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Items)

	// A fresh registry accepts the same version again.
	registerArtifact(t, router, "model", "bert", "1.0.0")
}
