package scoring

import (
	"fmt"
	"math"
)

// Weights is the fixed combination table for the net score. It is part of
// the engine's configuration, never computed at runtime.
type Weights map[string]float64

// DefaultWeights mirrors the registry's published scoring policy.
func DefaultWeights() Weights {
	return Weights{
		MetricLicense:           0.20,
		MetricPerformanceClaims: 0.15,
		MetricRampUpTime:        0.15,
		MetricBusFactor:         0.10,
		MetricSizeScore:         0.10,
		MetricDatasetAndCode:    0.10,
		MetricDatasetQuality:    0.10,
		MetricCodeQuality:       0.10,
	}
}

// Validate checks that the table covers exactly the given metrics and sums
// to 1.0 within floating-point tolerance.
func (w Weights) Validate(metrics []Metric) error {
	var sum float64
	for _, m := range metrics {
		weight, ok := w[m.Name()]
		if !ok {
			return fmt.Errorf("weight table missing metric %q", m.Name())
		}
		if weight < 0 {
			return fmt.Errorf("weight for %q is negative", m.Name())
		}
		sum += weight
	}
	if len(w) != len(metrics) {
		return fmt.Errorf("weight table has %d entries for %d metrics", len(w), len(metrics))
	}
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("weights sum to %v, want 1.0", sum)
	}
	return nil
}
