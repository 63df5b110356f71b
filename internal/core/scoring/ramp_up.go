package scoring

import (
	"strings"

	"artifact-registry-service/internal/core/domain"
)

// rampUpTimeMetric estimates how quickly a new user can get productive,
// from documentation quality across every declared source.
type rampUpTimeMetric struct{}

func (rampUpTimeMetric) Name() string { return MetricRampUpTime }

func (rampUpTimeMetric) Compute(snaps *domain.SnapshotSet) (float64, error) {
	var scores []float64
	if snaps.Model != nil {
		scores = append(scores, modelDocScore(snaps.Model))
	}
	if snaps.Dataset != nil {
		scores = append(scores, datasetDocScore(snaps.Dataset))
	}
	if snaps.Code != nil {
		scores = append(scores, repoDocScore(snaps.Code))
	}
	if len(scores) == 0 {
		return 0, snaps.FetchErr(domain.SourceKindHubModel)
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores)), nil
}

func modelDocScore(s *domain.Snapshot) float64 {
	lower := strings.ToLower(s.Readme)
	var score float64
	if len(s.Readme) > 500 {
		score += 0.3
	}
	if strings.Contains(lower, "usage") {
		score += 0.3
	}
	if strings.Contains(lower, "example") {
		score += 0.2
	}
	if strings.Contains(lower, "training") {
		score += 0.2
	}
	return clamp01(score)
}

func datasetDocScore(s *domain.Snapshot) float64 {
	var score float64
	if s.Readme != "" {
		score += 0.5
	}
	if s.Description != "" {
		score += 0.3
	}
	if len(s.Tags) > 0 {
		score += 0.2
	}
	return clamp01(score)
}

func repoDocScore(s *domain.Snapshot) float64 {
	var score float64
	if s.Description != "" {
		score += 0.3
	}
	if s.Readme != "" {
		score += 0.4
	}
	if s.HasWiki {
		score += 0.2
	}
	if s.Homepage != "" {
		score += 0.1
	}
	return clamp01(score)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
