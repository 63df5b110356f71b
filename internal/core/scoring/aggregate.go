package scoring

import (
	"sort"
	"time"

	"artifact-registry-service/internal/core/domain"
)

// Aggregate combines a complete metric vector into a ScoreRecord using the
// fixed weight table. For a given vector and table the net score is
// deterministic: same inputs, bit-identical output. Net latency is the
// maximum per-metric latency, the wall-clock cost of obtaining the vector
// under concurrent execution.
func Aggregate(vec domain.MetricVector, weights Weights) domain.ScoreRecord {
	// The sum runs in sorted name order: float addition is not associative,
	// so map iteration order would leak into the low bits of the net score.
	names := make([]string, 0, len(vec))
	for name := range vec {
		names = append(names, name)
	}
	sort.Strings(names)

	var net float64
	var maxLatency int64
	for _, name := range names {
		res := vec[name]
		net += weights[name] * res.Score
		if res.LatencyMS > maxLatency {
			maxLatency = res.LatencyMS
		}
	}
	return domain.ScoreRecord{
		Metrics:      vec,
		NetScore:     net,
		NetLatencyMS: maxLatency,
		ComputedAt:   time.Now().UTC(),
	}
}
