package ports

import (
	"context"
	"regexp"

	"artifact-registry-service/internal/core/domain"
)

// ArtifactRepository is the output port for the versioned artifact store.
// Any backend offering atomic put-if-absent on the full (type#id, v#version)
// key and ordered range reads within a partition satisfies it.
type ArtifactRepository interface {
	// Put creates a new version record, assigning CreatedAt. Returns
	// domain.ErrVersionAlreadyExists if the (type, id, version) triple is
	// already present; the stored record is left untouched in that case.
	Put(ctx context.Context, rec *domain.ArtifactVersion) (*domain.ArtifactVersion, error)

	// GetVersion returns one version or domain.ErrNotFound.
	GetVersion(ctx context.Context, t domain.ArtifactType, id, version string) (*domain.ArtifactVersion, error)

	// ListVersions returns all versions of one artifact in insertion order.
	// An unknown id under a valid type yields an empty slice, not an error.
	ListVersions(ctx context.Context, t domain.ArtifactType, id string) ([]*domain.ArtifactVersion, error)

	// ListByType returns the distinct artifact ids under a type, each paired
	// with its latest version's score record.
	ListByType(ctx context.Context, t domain.ArtifactType) ([]*domain.ArtifactSummary, error)

	// Search scans artifact ids across all types against a pre-compiled
	// pattern, visiting at most scanLimit distinct artifacts. Pattern
	// validation happens before this call; Search never sees a bad pattern.
	Search(ctx context.Context, pattern *regexp.Regexp, scanLimit int) ([]domain.ArtifactKey, error)

	// Reset deletes every record. Idempotent; test/session boundaries only.
	Reset(ctx context.Context) error

	// Ping reports backend reachability for health checks.
	Ping(ctx context.Context) error
}
