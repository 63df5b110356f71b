package domain

import (
	"time"
)

type ArtifactType string

const (
	ArtifactTypeModel   ArtifactType = "model"
	ArtifactTypeDataset ArtifactType = "dataset"
	ArtifactTypeCode    ArtifactType = "code"
)

// ParseArtifactType validates a caller-supplied type string.
func ParseArtifactType(s string) (ArtifactType, error) {
	switch ArtifactType(s) {
	case ArtifactTypeModel, ArtifactTypeDataset, ArtifactTypeCode:
		return ArtifactType(s), nil
	default:
		return "", ErrInvalidType
	}
}

// Metadata keys the scoring pipeline consults. Any other keys are carried
// opaquely and returned verbatim on reads.
const (
	MetadataKeyHubURL     = "hub_url"
	MetadataKeyDatasetURL = "dataset_url"
	MetadataKeyCodeURL    = "code_url"
)

// ArtifactVersion is one immutable record per (type, id, version). The store
// assigns CreatedAt at write time; nothing mutates a version after creation.
type ArtifactVersion struct {
	Type      ArtifactType      `json:"artifact_type"`
	ID        string            `json:"artifact_id"`
	Version   string            `json:"version"`
	Metadata  map[string]string `json:"metadata"`
	CreatedAt time.Time         `json:"created_at"`
	Score     ScoreRecord       `json:"score"`
}

// PartitionKey is the physical partition key, type#id.
func (a *ArtifactVersion) PartitionKey() string {
	return string(a.Type) + "#" + a.ID
}

// SortKey is the physical sort key, v#version.
func (a *ArtifactVersion) SortKey() string {
	return "v#" + a.Version
}

// ArtifactKey identifies an artifact independent of version.
type ArtifactKey struct {
	Type ArtifactType `json:"artifact_type"`
	ID   string       `json:"artifact_id"`
}

// ArtifactSummary pairs an artifact id with its latest version's score, for
// type-level listings.
type ArtifactSummary struct {
	Type          ArtifactType `json:"artifact_type"`
	ID            string       `json:"artifact_id"`
	LatestVersion string       `json:"latest_version"`
	Score         ScoreRecord  `json:"score"`
}
