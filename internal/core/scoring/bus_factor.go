package scoring

import (
	"artifact-registry-service/internal/core/domain"
)

// busFactorMetric measures knowledge concentration risk across all related
// sources. Hub sources expose no contributor list, so community size is
// approximated from download and like counts.
type busFactorMetric struct{}

func (busFactorMetric) Name() string { return MetricBusFactor }

func (busFactorMetric) Compute(snaps *domain.SnapshotSet) (float64, error) {
	var counts []int
	if snaps.Model != nil {
		counts = append(counts, hubContributorEstimate(snaps.Model))
	}
	if snaps.Dataset != nil {
		counts = append(counts, datasetContributorEstimate(snaps.Dataset))
	}
	if snaps.Code != nil {
		c := snaps.Code.Contributors
		if c < 1 {
			c = 1
		}
		counts = append(counts, c)
	}

	var avg float64
	if len(counts) > 0 {
		var sum int
		for _, c := range counts {
			sum += c
		}
		avg = float64(sum) / float64(len(counts))
	}

	switch {
	case avg >= 10:
		return 1.0, nil
	case avg >= 5:
		return 0.8, nil
	case avg >= 2:
		return 0.5, nil
	default:
		return 0.2, nil
	}
}

func hubContributorEstimate(s *domain.Snapshot) int {
	switch {
	case s.Downloads > 10000 || s.Likes > 100:
		return 10
	case s.Downloads > 1000 || s.Likes > 20:
		return 5
	case s.Downloads > 100 || s.Likes > 5:
		return 2
	default:
		return 1
	}
}

func datasetContributorEstimate(s *domain.Snapshot) int {
	switch {
	case s.Downloads > 10000:
		return 5
	case s.Downloads > 1000:
		return 3
	default:
		return 1
	}
}
