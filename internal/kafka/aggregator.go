package kafka

import (
	"log"
	"sync"
	"time"
)

// MetricsAggregator handles real-time aggregation of engine metrics
type MetricsAggregator struct {
	computations  ComputationMetrics
	rejections    RejectionMetrics
	mu            sync.RWMutex
	lastFlush     time.Time
	flushInterval time.Duration
}

// ComputationMetrics tracks aggregated move computation metrics
type ComputationMetrics struct {
	TotalComputations int64            `json:"total_computations"`
	WinningMoves      int64            `json:"winning_moves"`
	TotalDurationMs   int64            `json:"total_duration_ms"`
	AverageDurationMs float64          `json:"average_duration_ms"`
	ByLevel           map[int]int64    `json:"by_level"`
	ByColumn          map[int]int64    `json:"by_column"`
	BySide            map[string]int64 `json:"by_side"`
}

// RejectionMetrics tracks aggregated request rejection metrics
type RejectionMetrics struct {
	TotalRejections int64            `json:"total_rejections"`
	ByKind          map[string]int64 `json:"by_kind"`
	LastKind        string           `json:"last_kind,omitempty"`
	LastMessage     string           `json:"last_message,omitempty"`
	LastSeen        time.Time        `json:"last_seen"`
}

// NewMetricsAggregator creates a new metrics aggregator
func NewMetricsAggregator() *MetricsAggregator {
	return &MetricsAggregator{
		computations: ComputationMetrics{
			ByLevel:  make(map[int]int64),
			ByColumn: make(map[int]int64),
			BySide:   make(map[string]int64),
		},
		rejections: RejectionMetrics{
			ByKind: make(map[string]int64),
		},
		lastFlush:     time.Now(),
		flushInterval: 5 * time.Minute,
	}
}

// RecordComputation processes a move computed event
func (ma *MetricsAggregator) RecordComputation(event MoveComputedEvent) error {
	ma.mu.Lock()
	defer ma.mu.Unlock()

	ma.computations.TotalComputations++
	ma.computations.TotalDurationMs += event.DurationMs
	ma.computations.AverageDurationMs = float64(ma.computations.TotalDurationMs) / float64(ma.computations.TotalComputations)

	if event.WinningMove {
		ma.computations.WinningMoves++
	}

	ma.computations.ByLevel[event.Level]++
	ma.computations.ByColumn[event.Column]++
	ma.computations.BySide[event.SideToMove]++

	return nil
}

// RecordRejection processes a request rejected event
func (ma *MetricsAggregator) RecordRejection(event RequestRejectedEvent) error {
	ma.mu.Lock()
	defer ma.mu.Unlock()

	ma.rejections.TotalRejections++
	ma.rejections.ByKind[event.Kind]++
	ma.rejections.LastKind = event.Kind
	ma.rejections.LastMessage = event.Message
	ma.rejections.LastSeen = event.Timestamp

	return nil
}

// AggregateMetrics performs the periodic aggregation pass
func (ma *MetricsAggregator) AggregateMetrics() error {
	ma.mu.Lock()
	defer ma.mu.Unlock()

	ma.lastFlush = time.Now()

	log.Printf("Metrics aggregation completed. Computations: %d, Rejections: %d, Avg Duration: %.1fms",
		ma.computations.TotalComputations, ma.rejections.TotalRejections, ma.computations.AverageDurationMs)

	return nil
}

// GetComputationMetrics returns current computation metrics
func (ma *MetricsAggregator) GetComputationMetrics() ComputationMetrics {
	ma.mu.RLock()
	defer ma.mu.RUnlock()

	// Create a copy to avoid race conditions
	metrics := ma.computations
	metrics.ByLevel = make(map[int]int64)
	metrics.ByColumn = make(map[int]int64)
	metrics.BySide = make(map[string]int64)

	for k, v := range ma.computations.ByLevel {
		metrics.ByLevel[k] = v
	}
	for k, v := range ma.computations.ByColumn {
		metrics.ByColumn[k] = v
	}
	for k, v := range ma.computations.BySide {
		metrics.BySide[k] = v
	}

	return metrics
}

// GetRejectionMetrics returns current rejection metrics
func (ma *MetricsAggregator) GetRejectionMetrics() RejectionMetrics {
	ma.mu.RLock()
	defer ma.mu.RUnlock()

	// Create a copy to avoid race conditions
	metrics := ma.rejections
	metrics.ByKind = make(map[string]int64)

	for k, v := range ma.rejections.ByKind {
		metrics.ByKind[k] = v
	}

	return metrics
}

// Flush runs a final aggregation pass
func (ma *MetricsAggregator) Flush() error {
	return ma.AggregateMetrics()
}
