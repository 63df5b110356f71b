package provenance

import (
	"context"

	"artifact-registry-service/internal/core/domain"
	ports "artifact-registry-service/internal/core/ports/output"
)

// Mux routes a fetch to the client responsible for its source kind.
type Mux struct {
	hub  ports.ProvenanceFetcher
	repo ports.ProvenanceFetcher
}

func NewMux(hub, repo ports.ProvenanceFetcher) *Mux {
	return &Mux{hub: hub, repo: repo}
}

func (m *Mux) Fetch(ctx context.Context, url string, kind domain.SourceKind) (*domain.Snapshot, error) {
	switch kind {
	case domain.SourceKindHubModel, domain.SourceKindHubDataset:
		return m.hub.Fetch(ctx, url, kind)
	case domain.SourceKindRepository:
		return m.repo.Fetch(ctx, url, kind)
	default:
		return nil, domain.ErrUnsupportedKind
	}
}
