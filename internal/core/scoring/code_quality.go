package scoring

import (
	"time"

	"artifact-registry-service/internal/core/domain"
)

type codeQualityMetric struct{}

func (codeQualityMetric) Name() string { return MetricCodeQuality }

func (codeQualityMetric) Compute(snaps *domain.SnapshotSet) (float64, error) {
	if snaps.Code == nil {
		if err := snaps.FetchErr(domain.SourceKindRepository); err != nil {
			return 0, err
		}
		return 0, nil
	}

	s := snaps.Code
	var score float64
	if s.Readme != "" {
		score += 0.3
	}
	switch {
	case s.Stars > 100:
		score += 0.4
	case s.Stars > 10:
		score += 0.3
	case s.Stars > 0:
		score += 0.2
	}
	if !s.LastModified.IsZero() && time.Since(s.LastModified) < 365*24*time.Hour {
		score += 0.3
	}
	if s.HasIssues {
		score += 0.2
	}
	return clamp01(score), nil
}
