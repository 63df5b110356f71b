package scoring

import (
	"artifact-registry-service/internal/core/domain"
)

// datasetAndCodeMetric rewards reproducibility: are the training dataset and
// the training code both reachable?
type datasetAndCodeMetric struct{}

func (datasetAndCodeMetric) Name() string { return MetricDatasetAndCode }

func (datasetAndCodeMetric) Compute(snaps *domain.SnapshotSet) (float64, error) {
	var score float64
	if snaps.Dataset != nil {
		score += 0.6
	}
	if snaps.Code != nil {
		score += 0.4
	}
	return score, nil
}
