package testutil

import (
	"context"
	"regexp"

	"github.com/stretchr/testify/mock"

	"artifact-registry-service/internal/core/domain"
)

// MockArtifactRepo is a mock of ArtifactRepository.
type MockArtifactRepo struct {
	mock.Mock
}

func (m *MockArtifactRepo) Put(ctx context.Context, rec *domain.ArtifactVersion) (*domain.ArtifactVersion, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ArtifactVersion), args.Error(1)
}

func (m *MockArtifactRepo) GetVersion(ctx context.Context, t domain.ArtifactType, id, version string) (*domain.ArtifactVersion, error) {
	args := m.Called(ctx, t, id, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ArtifactVersion), args.Error(1)
}

func (m *MockArtifactRepo) ListVersions(ctx context.Context, t domain.ArtifactType, id string) ([]*domain.ArtifactVersion, error) {
	args := m.Called(ctx, t, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ArtifactVersion), args.Error(1)
}

func (m *MockArtifactRepo) ListByType(ctx context.Context, t domain.ArtifactType) ([]*domain.ArtifactSummary, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ArtifactSummary), args.Error(1)
}

func (m *MockArtifactRepo) Search(ctx context.Context, pattern *regexp.Regexp, scanLimit int) ([]domain.ArtifactKey, error) {
	args := m.Called(ctx, pattern, scanLimit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ArtifactKey), args.Error(1)
}

func (m *MockArtifactRepo) Reset(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockArtifactRepo) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// StaticFetcher serves canned snapshots per source kind, or a fixed error
// for simulating outages.
type StaticFetcher struct {
	Snapshots map[domain.SourceKind]*domain.Snapshot
	Err       error
}

func (f *StaticFetcher) Fetch(ctx context.Context, url string, kind domain.SourceKind) (*domain.Snapshot, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	snap, ok := f.Snapshots[kind]
	if !ok {
		return nil, domain.ErrFetchNotFound
	}
	return snap, nil
}
