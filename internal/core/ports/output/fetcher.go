package ports

import (
	"context"

	"artifact-registry-service/internal/core/domain"
)

// ProvenanceFetcher pulls a structured snapshot of an external source. Pure
// I/O boundary: implementations perform idempotent GETs with a bounded
// per-call timeout and report failure as one of domain.ErrFetchUnavailable,
// domain.ErrFetchNotFound, or domain.ErrFetchMalformed.
type ProvenanceFetcher interface {
	Fetch(ctx context.Context, url string, kind domain.SourceKind) (*domain.Snapshot, error)
}
