package scoring

import (
	"artifact-registry-service/internal/core/domain"
)

// sizeScoreMetric rates how well the model's on-disk footprint fits common
// deployment targets, averaged into a single score.
type sizeScoreMetric struct{}

func (sizeScoreMetric) Name() string { return MetricSizeScore }

func (sizeScoreMetric) Compute(snaps *domain.SnapshotSet) (float64, error) {
	if snaps.Model == nil {
		if err := snaps.FetchErr(domain.SourceKindHubModel); err != nil {
			return 0, err
		}
		return 0, nil
	}

	sizeMB := snaps.Model.TotalSizeMB()
	bands := []float64{
		raspberryPiScore(sizeMB),
		jetsonNanoScore(sizeMB),
		desktopScore(sizeMB),
		serverScore(sizeMB),
	}
	var sum float64
	for _, b := range bands {
		sum += b
	}
	return sum / float64(len(bands)), nil
}

func raspberryPiScore(mb float64) float64 {
	switch {
	case mb < 100:
		return 1.0
	case mb < 500:
		return 0.5
	default:
		return 0.0
	}
}

func jetsonNanoScore(mb float64) float64 {
	switch {
	case mb < 1000:
		return 1.0
	case mb < 2000:
		return 0.7
	default:
		return 0.3
	}
}

func desktopScore(mb float64) float64 {
	switch {
	case mb < 5000:
		return 1.0
	case mb < 10000:
		return 0.8
	default:
		return 0.5
	}
}

func serverScore(mb float64) float64 {
	if mb < 20000 {
		return 1.0
	}
	return 0.9
}
