package domain

import "time"

// MetricResult is one metric's outcome. A metric that failed to compute is
// recorded with Score 0.0 and the failure reason in Err, never omitted, so
// the aggregator always sees a complete vector.
type MetricResult struct {
	Score     float64 `json:"score"`
	LatencyMS int64   `json:"latency_ms"`
	Err       string  `json:"error,omitempty"`
}

// MetricVector maps metric name to result. Every name in the engine's fixed
// catalog appears exactly once.
type MetricVector map[string]MetricResult

// ScoreRecord is the immutable scoring outcome stored with a version.
type ScoreRecord struct {
	Metrics      MetricVector `json:"metrics"`
	NetScore     float64      `json:"net_score"`
	NetLatencyMS int64        `json:"net_latency_ms"`
	ComputedAt   time.Time    `json:"computed_at"`
}
