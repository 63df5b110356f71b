package dto

import (
	"time"

	"artifact-registry-service/internal/core/domain"
)

type RegisterArtifactRequest struct {
	ArtifactType string            `json:"artifact_type" binding:"required"`
	ArtifactID   string            `json:"artifact_id" binding:"required"`
	Version      string            `json:"version" binding:"required"`
	Metadata     map[string]string `json:"metadata"`
}

type SearchRequest struct {
	Pattern string `json:"pattern" binding:"required"`
}

type MetricResultResponse struct {
	Score     float64 `json:"score"`
	LatencyMS int64   `json:"latency_ms"`
	Error     string  `json:"error,omitempty"`
}

type ScoreRecordResponse struct {
	Metrics      map[string]MetricResultResponse `json:"metrics"`
	NetScore     float64                         `json:"net_score"`
	NetLatencyMS int64                           `json:"net_latency_ms"`
	ComputedAt   time.Time                       `json:"computed_at"`
}

type ArtifactVersionResponse struct {
	ArtifactType string              `json:"artifact_type"`
	ArtifactID   string              `json:"artifact_id"`
	Version      string              `json:"version"`
	Metadata     map[string]string   `json:"metadata"`
	CreatedAt    time.Time           `json:"created_at"`
	Score        ScoreRecordResponse `json:"score"`
}

type ListVersionsResponse struct {
	Items []ArtifactVersionResponse `json:"items"`
}

type ArtifactSummaryResponse struct {
	ArtifactType  string              `json:"artifact_type"`
	ArtifactID    string              `json:"artifact_id"`
	LatestVersion string              `json:"latest_version"`
	Score         ScoreRecordResponse `json:"score"`
}

type ListByTypeResponse struct {
	Items []ArtifactSummaryResponse `json:"items"`
}

type ArtifactKeyResponse struct {
	ArtifactType string `json:"artifact_type"`
	ArtifactID   string `json:"artifact_id"`
}

type SearchResponse struct {
	Items []ArtifactKeyResponse `json:"items"`
}

func ToScoreRecordResponse(s domain.ScoreRecord) ScoreRecordResponse {
	metrics := make(map[string]MetricResultResponse, len(s.Metrics))
	for name, res := range s.Metrics {
		metrics[name] = MetricResultResponse{
			Score:     res.Score,
			LatencyMS: res.LatencyMS,
			Error:     res.Err,
		}
	}
	return ScoreRecordResponse{
		Metrics:      metrics,
		NetScore:     s.NetScore,
		NetLatencyMS: s.NetLatencyMS,
		ComputedAt:   s.ComputedAt,
	}
}

func ToArtifactVersionResponse(rec *domain.ArtifactVersion) ArtifactVersionResponse {
	return ArtifactVersionResponse{
		ArtifactType: string(rec.Type),
		ArtifactID:   rec.ID,
		Version:      rec.Version,
		Metadata:     rec.Metadata,
		CreatedAt:    rec.CreatedAt,
		Score:        ToScoreRecordResponse(rec.Score),
	}
}

func ToArtifactSummaryResponse(s *domain.ArtifactSummary) ArtifactSummaryResponse {
	return ArtifactSummaryResponse{
		ArtifactType:  string(s.Type),
		ArtifactID:    s.ID,
		LatestVersion: s.LatestVersion,
		Score:         ToScoreRecordResponse(s.Score),
	}
}

func ToArtifactKeyResponse(k domain.ArtifactKey) ArtifactKeyResponse {
	return ArtifactKeyResponse{
		ArtifactType: string(k.Type),
		ArtifactID:   k.ID,
	}
}
