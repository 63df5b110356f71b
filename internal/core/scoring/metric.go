package scoring

import (
	"artifact-registry-service/internal/core/domain"
)

// Metric scores one independent quality signal from a provenance snapshot
// set. Implementations must not depend on each other's output and must not
// mutate the shared input; the engine runs them concurrently.
type Metric interface {
	Name() string
	Compute(snaps *domain.SnapshotSet) (float64, error)
}

// Metric names are part of the stored record contract.
const (
	MetricLicense           = "license"
	MetricRampUpTime        = "ramp_up_time"
	MetricBusFactor         = "bus_factor"
	MetricPerformanceClaims = "performance_claims"
	MetricSizeScore         = "size_score"
	MetricDatasetAndCode    = "dataset_and_code_score"
	MetricDatasetQuality    = "dataset_quality"
	MetricCodeQuality       = "code_quality"
)

// Catalog returns the fixed, ordered metric set. Adding a metric means
// adding an implementation here and a weight-table entry, nothing else.
func Catalog() []Metric {
	return []Metric{
		licenseMetric{},
		rampUpTimeMetric{},
		busFactorMetric{},
		performanceClaimsMetric{},
		sizeScoreMetric{},
		datasetAndCodeMetric{},
		datasetQualityMetric{},
		codeQualityMetric{},
	}
}
