package scoring

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"artifact-registry-service/internal/core/domain"
	ports "artifact-registry-service/internal/core/ports/output"
)

const defaultDeadline = 30 * time.Second

// Config carries the engine's immutable scoring configuration. It is passed
// in at construction, never read from ambient state, so tests can run with
// alternate weight tables.
type Config struct {
	Weights  Weights
	Deadline time.Duration
}

// Engine computes the fixed metric catalog for one artifact's provenance.
// All metrics run concurrently over a shared read-only snapshot set; a
// failing or slow metric is recorded as score 0.0 with its reason, never
// propagated.
type Engine struct {
	fetcher  ports.ProvenanceFetcher
	metrics  []Metric
	weights  Weights
	deadline time.Duration
}

func NewEngine(fetcher ports.ProvenanceFetcher, cfg Config) (*Engine, error) {
	metrics := Catalog()

	weights := cfg.Weights
	if weights == nil {
		weights = DefaultWeights()
	}
	if err := weights.Validate(metrics); err != nil {
		return nil, fmt.Errorf("scoring config: %w", err)
	}

	deadline := cfg.Deadline
	if deadline <= 0 {
		deadline = defaultDeadline
	}

	return &Engine{
		fetcher:  fetcher,
		metrics:  metrics,
		weights:  weights,
		deadline: deadline,
	}, nil
}

// Weights exposes the engine's weight table for aggregation.
func (e *Engine) Weights() Weights { return e.weights }

// Score fetches the artifact's provenance snapshots and computes every
// metric in the catalog. It always returns a complete vector: one entry per
// catalog metric, with failures and timeouts absorbed as zero scores.
func (e *Engine) Score(ctx context.Context, metadata map[string]string) domain.MetricVector {
	ctx, cancel := context.WithTimeout(ctx, e.deadline)
	defer cancel()

	started := time.Now()
	snaps := e.resolveSnapshots(ctx, metadata)
	// Every metric consumed the fetched snapshots, so the shared fetch
	// phase counts toward each metric's latency.
	fetchMS := time.Since(started).Milliseconds()

	type outcome struct {
		name string
		res  domain.MetricResult
	}
	results := make(chan outcome, len(e.metrics))

	for _, m := range e.metrics {
		go func(m Metric) {
			start := time.Now()
			score, err := safeCompute(m, snaps)
			res := domain.MetricResult{
				Score:     clamp01(score),
				LatencyMS: fetchMS + time.Since(start).Milliseconds(),
			}
			if err != nil {
				res.Score = 0.0
				res.Err = err.Error()
			}
			results <- outcome{name: m.Name(), res: res}
		}(m)
	}

	vec := make(domain.MetricVector, len(e.metrics))
gather:
	for range e.metrics {
		select {
		case out := <-results:
			vec[out.name] = out.res
		case <-ctx.Done():
			break gather
		}
	}

	// Anything still running when the deadline fired is treated as failed.
	elapsed := time.Since(started).Milliseconds()
	for _, m := range e.metrics {
		if _, ok := vec[m.Name()]; !ok {
			log.WithField("metric", m.Name()).Warn("metric timed out")
			vec[m.Name()] = domain.MetricResult{
				Score:     0.0,
				LatencyMS: elapsed,
				Err:       "timeout",
			}
		}
	}

	return vec
}

// safeCompute converts a metric panic into a failed result so one broken
// metric cannot take down a registration.
func safeCompute(m Metric, snaps *domain.SnapshotSet) (score float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			score = 0.0
			err = fmt.Errorf("metric panic: %v", r)
		}
	}()
	return m.Compute(snaps)
}

// resolveSnapshots classifies the artifact's provenance URLs and fetches
// each reachable source once, concurrently. The resulting set is shared
// read-only by all metrics.
func (e *Engine) resolveSnapshots(ctx context.Context, metadata map[string]string) *domain.SnapshotSet {
	snaps := &domain.SnapshotSet{Errs: make(map[domain.SourceKind]error)}

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, key := range []string{domain.MetadataKeyHubURL, domain.MetadataKeyDatasetURL, domain.MetadataKeyCodeURL} {
		rawURL := metadata[key]
		if rawURL == "" {
			continue
		}
		kind, ok := ClassifySource(rawURL)
		if !ok {
			log.WithField("url", rawURL).Debug("unrecognized provenance source, skipping")
			continue
		}

		wg.Add(1)
		go func(rawURL string, kind domain.SourceKind) {
			defer wg.Done()
			snap, err := e.fetcher.Fetch(ctx, rawURL, kind)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.WithError(err).WithFields(log.Fields{
					"url": rawURL, "kind": kind,
				}).Warn("provenance fetch failed")
				snaps.Errs[kind] = err
				return
			}
			switch kind {
			case domain.SourceKindHubModel:
				snaps.Model = snap
			case domain.SourceKindHubDataset:
				snaps.Dataset = snap
			case domain.SourceKindRepository:
				snaps.Code = snap
			}
		}(rawURL, kind)
	}
	wg.Wait()

	return snaps
}
