package scoring

import (
	"strings"

	"artifact-registry-service/internal/core/domain"
)

// performanceClaimsMetric scores the evidence behind a model's performance
// claims: benchmarks in the model card, evaluation code in the repository,
// and an evaluation-grade dataset.
type performanceClaimsMetric struct{}

func (performanceClaimsMetric) Name() string { return MetricPerformanceClaims }

var benchmarkKeywords = []string{"benchmark", "evaluation", "performance", "score", "metric"}

func (performanceClaimsMetric) Compute(snaps *domain.SnapshotSet) (float64, error) {
	var score float64

	if snaps.Model != nil && containsAny(snaps.Model.Readme, benchmarkKeywords) {
		score += 0.5
	}
	if snaps.Code != nil && hasEvaluationCode(snaps.Code) {
		score += 0.3
	}
	if snaps.Dataset != nil && hasEvaluationTag(snaps.Dataset) {
		score += 0.2
	}
	return clamp01(score), nil
}

func hasEvaluationCode(s *domain.Snapshot) bool {
	for _, f := range s.Files {
		lower := strings.ToLower(f.Path)
		if strings.Contains(lower, "eval") || strings.Contains(lower, "benchmark") || strings.Contains(lower, "test") {
			return true
		}
	}
	return containsAny(s.Readme+" "+s.Description, []string{"evaluation", "benchmark"})
}

func hasEvaluationTag(s *domain.Snapshot) bool {
	for _, tag := range s.Tags {
		if tag == "evaluation" || tag == "benchmark" {
			return true
		}
	}
	return false
}

func containsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
