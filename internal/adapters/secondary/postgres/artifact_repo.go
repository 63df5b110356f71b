package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"artifact-registry-service/internal/core/domain"
	ports "artifact-registry-service/internal/core/ports/output"
)

// artifactRepo persists artifact versions in a single table keyed by the
// composite (pk, sk) = (type#id, v#version). The seq column preserves
// insertion order independent of clock resolution.
type artifactRepo struct {
	pool *pgxpool.Pool
}

func NewArtifactRepository(pool *pgxpool.Pool) ports.ArtifactRepository {
	return &artifactRepo{pool: pool}
}

// EnsureSchema creates the backing table if missing. Called once at startup.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS registry_artifact (
			seq           bigint GENERATED ALWAYS AS IDENTITY,
			pk            text NOT NULL,
			sk            text NOT NULL,
			artifact_type text NOT NULL,
			artifact_id   text NOT NULL,
			version       text NOT NULL,
			metadata      jsonb NOT NULL,
			score         jsonb NOT NULL,
			created_at    timestamptz NOT NULL,
			PRIMARY KEY (pk, sk)
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure registry_artifact schema: %w", err)
	}
	return nil
}

func (r *artifactRepo) Put(ctx context.Context, rec *domain.ArtifactVersion) (*domain.ArtifactVersion, error) {
	metadataJSON, err := json.Marshal(rec.Metadata)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}
	scoreJSON, err := json.Marshal(rec.Score)
	if err != nil {
		return nil, fmt.Errorf("marshal score: %w", err)
	}

	stored := *rec
	stored.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO registry_artifact
			(pk, sk, artifact_type, artifact_id, version, metadata, score, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (pk, sk) DO NOTHING
	`
	result, err := r.pool.Exec(ctx, query,
		stored.PartitionKey(), stored.SortKey(),
		string(stored.Type), stored.ID, stored.Version,
		metadataJSON, scoreJSON, stored.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("put artifact version: %w", err)
	}
	if result.RowsAffected() == 0 {
		return nil, domain.ErrVersionAlreadyExists
	}
	return &stored, nil
}

func (r *artifactRepo) GetVersion(ctx context.Context, t domain.ArtifactType, id, version string) (*domain.ArtifactVersion, error) {
	query := `
		SELECT artifact_type, artifact_id, version, metadata, score, created_at
		FROM registry_artifact
		WHERE pk = $1 AND sk = $2
	`
	pk := string(t) + "#" + id
	rec, err := scanVersion(r.pool.QueryRow(ctx, query, pk, "v#"+version))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get artifact version: %w", err)
	}
	return rec, nil
}

func (r *artifactRepo) ListVersions(ctx context.Context, t domain.ArtifactType, id string) ([]*domain.ArtifactVersion, error) {
	query := `
		SELECT artifact_type, artifact_id, version, metadata, score, created_at
		FROM registry_artifact
		WHERE pk = $1
		ORDER BY seq ASC
	`
	rows, err := r.pool.Query(ctx, query, string(t)+"#"+id)
	if err != nil {
		return nil, fmt.Errorf("list artifact versions: %w", err)
	}
	defer rows.Close()

	versions := make([]*domain.ArtifactVersion, 0)
	for rows.Next() {
		rec, err := scanVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan artifact version row: %w", err)
		}
		versions = append(versions, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artifact version rows: %w", err)
	}
	return versions, nil
}

func (r *artifactRepo) ListByType(ctx context.Context, t domain.ArtifactType) ([]*domain.ArtifactSummary, error) {
	query := `
		SELECT DISTINCT ON (artifact_id)
			artifact_type, artifact_id, version, score
		FROM registry_artifact
		WHERE artifact_type = $1
		ORDER BY artifact_id ASC, seq DESC
	`
	rows, err := r.pool.Query(ctx, query, string(t))
	if err != nil {
		return nil, fmt.Errorf("list artifacts by type: %w", err)
	}
	defer rows.Close()

	summaries := make([]*domain.ArtifactSummary, 0)
	for rows.Next() {
		s := &domain.ArtifactSummary{}
		var scoreJSON []byte
		if err := rows.Scan(&s.Type, &s.ID, &s.LatestVersion, &scoreJSON); err != nil {
			return nil, fmt.Errorf("scan artifact summary row: %w", err)
		}
		if err := json.Unmarshal(scoreJSON, &s.Score); err != nil {
			return nil, fmt.Errorf("unmarshal score: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artifact summary rows: %w", err)
	}
	return summaries, nil
}

func (r *artifactRepo) Search(ctx context.Context, pattern *regexp.Regexp, scanLimit int) ([]domain.ArtifactKey, error) {
	// Arbitrary Go regex syntax cannot be pushed into the database, so the
	// scan is bounded here and matching happens client-side.
	query := `
		SELECT DISTINCT artifact_type, artifact_id
		FROM registry_artifact
		ORDER BY artifact_type ASC, artifact_id ASC
		LIMIT $1
	`
	rows, err := r.pool.Query(ctx, query, scanLimit)
	if err != nil {
		return nil, fmt.Errorf("search artifacts: %w", err)
	}
	defer rows.Close()

	matches := make([]domain.ArtifactKey, 0)
	for rows.Next() {
		var key domain.ArtifactKey
		if err := rows.Scan(&key.Type, &key.ID); err != nil {
			return nil, fmt.Errorf("scan artifact key row: %w", err)
		}
		if pattern.MatchString(key.ID) {
			matches = append(matches, key)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artifact key rows: %w", err)
	}
	return matches, nil
}

func (r *artifactRepo) Reset(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `TRUNCATE registry_artifact`); err != nil {
		return fmt.Errorf("reset registry: %w", err)
	}
	return nil
}

func (r *artifactRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func scanVersion(row pgx.Row) (*domain.ArtifactVersion, error) {
	rec := &domain.ArtifactVersion{}
	var metadataJSON, scoreJSON []byte

	err := row.Scan(&rec.Type, &rec.ID, &rec.Version, &metadataJSON, &scoreJSON, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(metadataJSON, &rec.Metadata); err != nil {
		return nil, fmt.Errorf("unmarshal metadata: %w", err)
	}
	if err := json.Unmarshal(scoreJSON, &rec.Score); err != nil {
		return nil, fmt.Errorf("unmarshal score: %w", err)
	}
	return rec, nil
}
