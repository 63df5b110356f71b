package scoring

import (
	"artifact-registry-service/internal/core/domain"
)

type datasetQualityMetric struct{}

func (datasetQualityMetric) Name() string { return MetricDatasetQuality }

func (datasetQualityMetric) Compute(snaps *domain.SnapshotSet) (float64, error) {
	if snaps.Dataset == nil {
		if err := snaps.FetchErr(domain.SourceKindHubDataset); err != nil {
			return 0, err
		}
		return 0, nil
	}

	s := snaps.Dataset
	var score float64
	if s.Readme != "" {
		score += 0.3
	}
	switch {
	case s.Downloads > 1000:
		score += 0.3
	case s.Downloads > 100:
		score += 0.2
	case s.Downloads > 10:
		score += 0.1
	}
	if len(s.Tags) > 2 {
		score += 0.2
	}
	if len(s.Files) > 1 {
		score += 0.2
	}
	return clamp01(score), nil
}
