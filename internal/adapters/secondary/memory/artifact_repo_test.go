package memory

import (
	"context"
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artifact-registry-service/internal/core/domain"
)

func newVersion(t domain.ArtifactType, id, version string) *domain.ArtifactVersion {
	return &domain.ArtifactVersion{
		Type:     t,
		ID:       id,
		Version:  version,
		Metadata: map[string]string{"hub_url": "https://huggingface.co/" + id},
		Score: domain.ScoreRecord{
			NetScore: 0.5,
			Metrics:  domain.MetricVector{"license": {Score: 1.0, LatencyMS: 3}},
		},
	}
}

func TestPutGetRoundtrip(t *testing.T) {
	repo := NewArtifactRepository()
	ctx := context.Background()

	stored, err := repo.Put(ctx, newVersion(domain.ArtifactTypeModel, "bert", "1.0.0"))
	require.NoError(t, err)
	assert.False(t, stored.CreatedAt.IsZero())

	got, err := repo.GetVersion(ctx, domain.ArtifactTypeModel, "bert", "1.0.0")
	require.NoError(t, err)
	assert.Equal(t, "bert", got.ID)
	assert.Equal(t, "1.0.0", got.Version)
	assert.Equal(t, stored.CreatedAt, got.CreatedAt)
	assert.Equal(t, 0.5, got.Score.NetScore)
	assert.Equal(t, int64(3), got.Score.Metrics["license"].LatencyMS)
}

func TestPutIsWriteOnce(t *testing.T) {
	repo := NewArtifactRepository()
	ctx := context.Background()

	_, err := repo.Put(ctx, newVersion(domain.ArtifactTypeModel, "bert", "1.0.0"))
	require.NoError(t, err)

	_, err = repo.Put(ctx, newVersion(domain.ArtifactTypeModel, "bert", "1.0.0"))
	assert.ErrorIs(t, err, domain.ErrVersionAlreadyExists)

	// Same id under a different type is a distinct artifact.
	_, err = repo.Put(ctx, newVersion(domain.ArtifactTypeDataset, "bert", "1.0.0"))
	assert.NoError(t, err)
}

func TestListVersionsInsertionOrder(t *testing.T) {
	repo := NewArtifactRepository()
	ctx := context.Background()

	versions := []string{"2.0.0", "1.0.0", "1.5.0", "3.0.0"}
	for _, v := range versions {
		_, err := repo.Put(ctx, newVersion(domain.ArtifactTypeModel, "bert", v))
		require.NoError(t, err)
	}

	got, err := repo.ListVersions(ctx, domain.ArtifactTypeModel, "bert")
	require.NoError(t, err)
	require.Len(t, got, len(versions))
	for i, v := range versions {
		assert.Equal(t, v, got[i].Version, "position %d", i)
	}
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].CreatedAt.Before(got[i-1].CreatedAt))
	}
}

func TestListVersionsUnknownArtifactIsEmpty(t *testing.T) {
	repo := NewArtifactRepository()
	got, err := repo.ListVersions(context.Background(), domain.ArtifactTypeModel, "nope")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGetVersionNotFound(t *testing.T) {
	repo := NewArtifactRepository()
	_, err := repo.GetVersion(context.Background(), domain.ArtifactTypeModel, "bert", "9.9.9")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListByTypeLatestPerArtifact(t *testing.T) {
	repo := NewArtifactRepository()
	ctx := context.Background()

	_, err := repo.Put(ctx, newVersion(domain.ArtifactTypeModel, "bert", "1.0.0"))
	require.NoError(t, err)
	_, err = repo.Put(ctx, newVersion(domain.ArtifactTypeModel, "bert", "2.0.0"))
	require.NoError(t, err)
	_, err = repo.Put(ctx, newVersion(domain.ArtifactTypeModel, "albert", "0.1.0"))
	require.NoError(t, err)
	_, err = repo.Put(ctx, newVersion(domain.ArtifactTypeDataset, "squad", "1.0.0"))
	require.NoError(t, err)

	got, err := repo.ListByType(ctx, domain.ArtifactTypeModel)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "albert", got[0].ID)
	assert.Equal(t, "0.1.0", got[0].LatestVersion)
	assert.Equal(t, "bert", got[1].ID)
	assert.Equal(t, "2.0.0", got[1].LatestVersion)
}

func TestSearchMatchesAndOrdering(t *testing.T) {
	repo := NewArtifactRepository()
	ctx := context.Background()

	for _, id := range []string{"bert-base", "bert-large", "gpt2"} {
		_, err := repo.Put(ctx, newVersion(domain.ArtifactTypeModel, id, "1.0.0"))
		require.NoError(t, err)
	}
	_, err := repo.Put(ctx, newVersion(domain.ArtifactTypeDataset, "bert-corpus", "1.0.0"))
	require.NoError(t, err)

	got, err := repo.Search(ctx, regexp.MustCompile(`^bert`), 1000)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, domain.ArtifactKey{Type: domain.ArtifactTypeDataset, ID: "bert-corpus"}, got[0])
	assert.Equal(t, domain.ArtifactKey{Type: domain.ArtifactTypeModel, ID: "bert-base"}, got[1])
	assert.Equal(t, domain.ArtifactKey{Type: domain.ArtifactTypeModel, ID: "bert-large"}, got[2])

	// Deterministic across calls.
	again, err := repo.Search(ctx, regexp.MustCompile(`^bert`), 1000)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestSearchNoMatchIsEmptyNotError(t *testing.T) {
	repo := NewArtifactRepository()
	ctx := context.Background()
	_, err := repo.Put(ctx, newVersion(domain.ArtifactTypeModel, "bert", "1.0.0"))
	require.NoError(t, err)

	got, err := repo.Search(ctx, regexp.MustCompile(`^nothing$`), 1000)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchScanLimitBoundsWork(t *testing.T) {
	repo := NewArtifactRepository()
	ctx := context.Background()
	for i := 0; i < 20; i++ {
		_, err := repo.Put(ctx, newVersion(domain.ArtifactTypeModel, fmt.Sprintf("model-%02d", i), "1.0.0"))
		require.NoError(t, err)
	}

	got, err := repo.Search(ctx, regexp.MustCompile(`.*`), 5)
	require.NoError(t, err)
	assert.Len(t, got, 5)
}

func TestResetIsIdempotent(t *testing.T) {
	repo := NewArtifactRepository()
	ctx := context.Background()

	_, err := repo.Put(ctx, newVersion(domain.ArtifactTypeModel, "bert", "1.0.0"))
	require.NoError(t, err)

	require.NoError(t, repo.Reset(ctx))
	require.NoError(t, repo.Reset(ctx))

	got, err := repo.ListByType(ctx, domain.ArtifactTypeModel)
	require.NoError(t, err)
	assert.Empty(t, got)

	// Fresh store accepts the previously registered version again.
	_, err = repo.Put(ctx, newVersion(domain.ArtifactTypeModel, "bert", "1.0.0"))
	assert.NoError(t, err)
}

func TestStoredRecordIsIsolatedFromCaller(t *testing.T) {
	repo := NewArtifactRepository()
	ctx := context.Background()

	rec := newVersion(domain.ArtifactTypeModel, "bert", "1.0.0")
	_, err := repo.Put(ctx, rec)
	require.NoError(t, err)

	rec.Metadata["hub_url"] = "mutated"

	got, err := repo.GetVersion(ctx, domain.ArtifactTypeModel, "bert", "1.0.0")
	require.NoError(t, err)
	assert.Equal(t, "https://huggingface.co/bert", got.Metadata["hub_url"])
}
