package services

import (
	"context"
	"fmt"
	"regexp"

	log "github.com/sirupsen/logrus"

	"artifact-registry-service/internal/core/domain"
	ports "artifact-registry-service/internal/core/ports/output"
	"artifact-registry-service/internal/core/scoring"
)

const defaultSearchScanLimit = 1000

// RegistryService orchestrates the five registry operations. Writes score
// synchronously before the store put so the store never holds an unscored
// record; reads touch the store only.
type RegistryService struct {
	repo      ports.ArtifactRepository
	engine    *scoring.Engine
	scanLimit int
}

func NewRegistryService(repo ports.ArtifactRepository, engine *scoring.Engine, searchScanLimit int) *RegistryService {
	if searchScanLimit <= 0 {
		searchScanLimit = defaultSearchScanLimit
	}
	return &RegistryService{repo: repo, engine: engine, scanLimit: searchScanLimit}
}

// Register validates the identity triple, scores the artifact's provenance,
// and writes the combined record. Scoring failure never blocks registration:
// a total fetch outage yields an all-zero vector, visible in the stored
// record itself. Only an identity conflict or a store failure is returned.
func (s *RegistryService) Register(ctx context.Context, artifactType, id, version string, metadata map[string]string) (*domain.ArtifactVersion, error) {
	if artifactType == "" || id == "" || version == "" {
		return nil, domain.ErrMissingArgument
	}
	t, err := domain.ParseArtifactType(artifactType)
	if err != nil {
		return nil, err
	}
	if metadata == nil {
		metadata = make(map[string]string)
	}

	vec := s.engine.Score(ctx, metadata)
	record := scoring.Aggregate(vec, s.engine.Weights())

	stored, err := s.repo.Put(ctx, &domain.ArtifactVersion{
		Type:     t,
		ID:       id,
		Version:  version,
		Metadata: metadata,
		Score:    record,
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"artifact_type": t,
		"artifact_id":   id,
		"version":       version,
		"net_score":     record.NetScore,
	}).Info("artifact registered")

	return stored, nil
}

// GetVersion returns one version record.
func (s *RegistryService) GetVersion(ctx context.Context, artifactType, id, version string) (*domain.ArtifactVersion, error) {
	t, err := domain.ParseArtifactType(artifactType)
	if err != nil {
		return nil, err
	}
	return s.repo.GetVersion(ctx, t, id, version)
}

// GetVersions returns every version of one artifact in insertion order. An
// unknown id under a valid type is an empty slice, not an error.
func (s *RegistryService) GetVersions(ctx context.Context, artifactType, id string) ([]*domain.ArtifactVersion, error) {
	t, err := domain.ParseArtifactType(artifactType)
	if err != nil {
		return nil, err
	}
	return s.repo.ListVersions(ctx, t, id)
}

// ListByType returns the distinct artifacts of a type, each with its latest
// version's score record.
func (s *RegistryService) ListByType(ctx context.Context, artifactType string) ([]*domain.ArtifactSummary, error) {
	t, err := domain.ParseArtifactType(artifactType)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByType(ctx, t)
}

// Search matches artifact ids across all types against a caller-supplied
// regular expression. The pattern is validated before any scan; the scan is
// bounded, so this is not a hot-path operation.
func (s *RegistryService) Search(ctx context.Context, pattern string) ([]domain.ArtifactKey, error) {
	if pattern == "" {
		return nil, domain.ErrInvalidPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPattern, err)
	}
	return s.repo.Search(ctx, re, s.scanLimit)
}

// Reset clears the entire store. Test/session boundaries only; not safe to
// call concurrently with registrations.
func (s *RegistryService) Reset(ctx context.Context) error {
	if err := s.repo.Reset(ctx); err != nil {
		return err
	}
	log.Warn("registry reset: all records deleted")
	return nil
}
