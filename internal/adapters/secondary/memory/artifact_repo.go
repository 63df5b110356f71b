package memory

import (
	"context"
	"regexp"
	"sort"
	"sync"
	"time"

	"artifact-registry-service/internal/core/domain"
	ports "artifact-registry-service/internal/core/ports/output"
)

// artifactRepo is an in-process implementation of the artifact store,
// honoring the same write-once and ordering contract as the Postgres
// adapter. Used for tests and local development (STORE_DRIVER=memory).
type artifactRepo struct {
	mu         sync.RWMutex
	partitions map[string][]*domain.ArtifactVersion // pk -> versions in insertion order
}

func NewArtifactRepository() ports.ArtifactRepository {
	return &artifactRepo{partitions: make(map[string][]*domain.ArtifactVersion)}
}

func (r *artifactRepo) Put(ctx context.Context, rec *domain.ArtifactVersion) (*domain.ArtifactVersion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pk := rec.PartitionKey()
	for _, existing := range r.partitions[pk] {
		if existing.Version == rec.Version {
			return nil, domain.ErrVersionAlreadyExists
		}
	}

	stored := cloneVersion(rec)
	stored.CreatedAt = time.Now().UTC()
	// created_at is monotonically non-decreasing per artifact.
	if n := len(r.partitions[pk]); n > 0 {
		if last := r.partitions[pk][n-1].CreatedAt; stored.CreatedAt.Before(last) {
			stored.CreatedAt = last
		}
	}

	r.partitions[pk] = append(r.partitions[pk], stored)
	return cloneVersion(stored), nil
}

func (r *artifactRepo) GetVersion(ctx context.Context, t domain.ArtifactType, id, version string) (*domain.ArtifactVersion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.partitions[string(t)+"#"+id] {
		if rec.Version == version {
			return cloneVersion(rec), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *artifactRepo) ListVersions(ctx context.Context, t domain.ArtifactType, id string) ([]*domain.ArtifactVersion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := r.partitions[string(t)+"#"+id]
	out := make([]*domain.ArtifactVersion, 0, len(records))
	for _, rec := range records {
		out = append(out, cloneVersion(rec))
	}
	return out, nil
}

func (r *artifactRepo) ListByType(ctx context.Context, t domain.ArtifactType) ([]*domain.ArtifactSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summaries := make([]*domain.ArtifactSummary, 0)
	for _, records := range r.partitions {
		if len(records) == 0 || records[0].Type != t {
			continue
		}
		latest := records[len(records)-1]
		summaries = append(summaries, &domain.ArtifactSummary{
			Type:          latest.Type,
			ID:            latest.ID,
			LatestVersion: latest.Version,
			Score:         latest.Score,
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })
	return summaries, nil
}

func (r *artifactRepo) Search(ctx context.Context, pattern *regexp.Regexp, scanLimit int) ([]domain.ArtifactKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]domain.ArtifactKey, 0, len(r.partitions))
	for _, records := range r.partitions {
		if len(records) == 0 {
			continue
		}
		keys = append(keys, domain.ArtifactKey{Type: records[0].Type, ID: records[0].ID})
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Type != keys[j].Type {
			return keys[i].Type < keys[j].Type
		}
		return keys[i].ID < keys[j].ID
	})
	if len(keys) > scanLimit {
		keys = keys[:scanLimit]
	}

	matches := make([]domain.ArtifactKey, 0)
	for _, key := range keys {
		if pattern.MatchString(key.ID) {
			matches = append(matches, key)
		}
	}
	return matches, nil
}

func (r *artifactRepo) Reset(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.partitions = make(map[string][]*domain.ArtifactVersion)
	return nil
}

func (r *artifactRepo) Ping(ctx context.Context) error { return nil }

func cloneVersion(rec *domain.ArtifactVersion) *domain.ArtifactVersion {
	out := *rec
	out.Metadata = make(map[string]string, len(rec.Metadata))
	for k, v := range rec.Metadata {
		out.Metadata[k] = v
	}
	if rec.Score.Metrics != nil {
		out.Score.Metrics = make(domain.MetricVector, len(rec.Score.Metrics))
		for k, v := range rec.Score.Metrics {
			out.Score.Metrics[k] = v
		}
	}
	return &out
}
