package kafka

import (
	"sync"
	"time"
)

// LevelTracker tracks per-level computation statistics
type LevelTracker struct {
	levels map[int]*LevelStats
	mu     sync.RWMutex
}

// LevelStats represents statistics for a single search level
type LevelStats struct {
	Level             int       `json:"level"`
	Computations      int64     `json:"computations"`
	WinningMoves      int64     `json:"winning_moves"`
	TotalDurationMs   int64     `json:"total_duration_ms"`
	AverageDurationMs float64   `json:"average_duration_ms"`
	LastSeen          time.Time `json:"last_seen"`
}

// NewLevelTracker creates a new level tracker
func NewLevelTracker() *LevelTracker {
	return &LevelTracker{
		levels: make(map[int]*LevelStats),
	}
}

// Record records a computation at the given level
func (lt *LevelTracker) Record(level int, winningMove bool, durationMs int64, timestamp time.Time) {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	stats, exists := lt.levels[level]
	if !exists {
		stats = &LevelStats{Level: level}
		lt.levels[level] = stats
	}

	stats.Computations++
	stats.TotalDurationMs += durationMs
	stats.AverageDurationMs = float64(stats.TotalDurationMs) / float64(stats.Computations)
	stats.LastSeen = timestamp

	if winningMove {
		stats.WinningMoves++
	}
}

// GetLevelCount returns the number of distinct levels seen
func (lt *LevelTracker) GetLevelCount() int {
	lt.mu.RLock()
	defer lt.mu.RUnlock()
	return len(lt.levels)
}

// GetLevelStats returns statistics for a specific level
func (lt *LevelTracker) GetLevelStats(level int) *LevelStats {
	lt.mu.RLock()
	defer lt.mu.RUnlock()

	if stats, exists := lt.levels[level]; exists {
		statsCopy := *stats
		return &statsCopy
	}
	return nil
}

// Snapshot returns a copy of all per-level statistics
func (lt *LevelTracker) Snapshot() map[int]*LevelStats {
	lt.mu.RLock()
	defer lt.mu.RUnlock()

	snapshot := make(map[int]*LevelStats, len(lt.levels))
	for level, stats := range lt.levels {
		statsCopy := *stats
		snapshot[level] = &statsCopy
	}
	return snapshot
}

// ColumnTracker tracks how often each column gets chosen
type ColumnTracker struct {
	counts map[int]int64
	mu     sync.RWMutex
}

// NewColumnTracker creates a new column tracker
func NewColumnTracker() *ColumnTracker {
	return &ColumnTracker{
		counts: make(map[int]int64),
	}
}

// Record records a chosen column
func (ct *ColumnTracker) Record(column int) {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	ct.counts[column]++
}

// GetMostChosen returns the most frequently chosen column and its count
func (ct *ColumnTracker) GetMostChosen() (int, int64) {
	ct.mu.RLock()
	defer ct.mu.RUnlock()

	best := -1
	var bestCount int64
	for column, count := range ct.counts {
		if count > bestCount || (count == bestCount && best >= 0 && column < best) {
			best = column
			bestCount = count
		}
	}
	return best, bestCount
}

// Snapshot returns a copy of all column counts
func (ct *ColumnTracker) Snapshot() map[int]int64 {
	ct.mu.RLock()
	defer ct.mu.RUnlock()

	snapshot := make(map[int]int64, len(ct.counts))
	for column, count := range ct.counts {
		snapshot[column] = count
	}
	return snapshot
}

// LatencyTracker tracks computation latency across all levels
type LatencyTracker struct {
	count   int64
	totalMs int64
	minMs   int64
	maxMs   int64
	mu      sync.RWMutex
}

// LatencySnapshot represents a point-in-time latency view
type LatencySnapshot struct {
	Count     int64   `json:"count"`
	AverageMs float64 `json:"average_ms"`
	MinMs     int64   `json:"min_ms"`
	MaxMs     int64   `json:"max_ms"`
}

// NewLatencyTracker creates a new latency tracker
func NewLatencyTracker() *LatencyTracker {
	return &LatencyTracker{}
}

// Record records one computation duration
func (lt *LatencyTracker) Record(durationMs int64) {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	if lt.count == 0 || durationMs < lt.minMs {
		lt.minMs = durationMs
	}
	if durationMs > lt.maxMs {
		lt.maxMs = durationMs
	}

	lt.count++
	lt.totalMs += durationMs
}

// Average returns the mean duration in milliseconds
func (lt *LatencyTracker) Average() float64 {
	lt.mu.RLock()
	defer lt.mu.RUnlock()

	if lt.count == 0 {
		return 0
	}
	return float64(lt.totalMs) / float64(lt.count)
}

// Snapshot returns a point-in-time latency view
func (lt *LatencyTracker) Snapshot() LatencySnapshot {
	lt.mu.RLock()
	defer lt.mu.RUnlock()

	snapshot := LatencySnapshot{
		Count: lt.count,
		MinMs: lt.minMs,
		MaxMs: lt.maxMs,
	}
	if lt.count > 0 {
		snapshot.AverageMs = float64(lt.totalMs) / float64(lt.count)
	}
	return snapshot
}

// RejectionTracker tracks rejected requests by kind
type RejectionTracker struct {
	byKind   map[string]int64
	total    int64
	lastSeen time.Time
	mu       sync.RWMutex
}

// NewRejectionTracker creates a new rejection tracker
func NewRejectionTracker() *RejectionTracker {
	return &RejectionTracker{
		byKind: make(map[string]int64),
	}
}

// Record records a rejection of the given kind
func (rt *RejectionTracker) Record(kind string, timestamp time.Time) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	rt.byKind[kind]++
	rt.total++
	rt.lastSeen = timestamp
}

// Total returns the total number of rejections seen
func (rt *RejectionTracker) Total() int64 {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return rt.total
}

// Snapshot returns a copy of rejection counts by kind
func (rt *RejectionTracker) Snapshot() map[string]int64 {
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	snapshot := make(map[string]int64, len(rt.byKind))
	for kind, count := range rt.byKind {
		snapshot[kind] = count
	}
	return snapshot
}

// HourlyTracker tracks hourly engine statistics
type HourlyTracker struct {
	hourlyStats map[string]*HourlyStats
	mu          sync.RWMutex
}

// HourlyStats represents statistics for a specific hour
type HourlyStats struct {
	Hour              string    `json:"hour"`
	Computations      int       `json:"computations"`
	Rejections        int       `json:"rejections"`
	TotalDurationMs   int64     `json:"total_duration_ms"`
	AverageDurationMs float64   `json:"average_duration_ms"`
	LastUpdated       time.Time `json:"last_updated"`
}

// NewHourlyTracker creates a new hourly tracker
func NewHourlyTracker() *HourlyTracker {
	return &HourlyTracker{
		hourlyStats: make(map[string]*HourlyStats),
	}
}

// RecordComputation records a computation for hourly tracking
func (ht *HourlyTracker) RecordComputation(timestamp time.Time, durationMs int64) {
	ht.mu.Lock()
	defer ht.mu.Unlock()

	hourKey := timestamp.Format("2006-01-02-15")
	if _, exists := ht.hourlyStats[hourKey]; !exists {
		ht.hourlyStats[hourKey] = &HourlyStats{
			Hour: hourKey,
		}
	}

	stats := ht.hourlyStats[hourKey]
	stats.Computations++
	stats.TotalDurationMs += durationMs

	if stats.Computations > 0 {
		stats.AverageDurationMs = float64(stats.TotalDurationMs) / float64(stats.Computations)
	}

	stats.LastUpdated = timestamp
}

// RecordRejection records a rejection for hourly tracking
func (ht *HourlyTracker) RecordRejection(timestamp time.Time) {
	ht.mu.Lock()
	defer ht.mu.Unlock()

	hourKey := timestamp.Format("2006-01-02-15")
	if _, exists := ht.hourlyStats[hourKey]; !exists {
		ht.hourlyStats[hourKey] = &HourlyStats{
			Hour: hourKey,
		}
	}

	ht.hourlyStats[hourKey].Rejections++
	ht.hourlyStats[hourKey].LastUpdated = timestamp
}

// GetComputationsToday returns the number of computations today
func (ht *HourlyTracker) GetComputationsToday() int {
	ht.mu.RLock()
	defer ht.mu.RUnlock()

	today := time.Now().Format("2006-01-02")
	total := 0

	for hourKey, stats := range ht.hourlyStats {
		if len(hourKey) >= 10 && hourKey[:10] == today {
			total += stats.Computations
		}
	}

	return total
}

// GetComputationsThisHour returns the number of computations this hour
func (ht *HourlyTracker) GetComputationsThisHour() int {
	ht.mu.RLock()
	defer ht.mu.RUnlock()

	currentHour := time.Now().Format("2006-01-02-15")
	if stats, exists := ht.hourlyStats[currentHour]; exists {
		return stats.Computations
	}
	return 0
}

// GetHourlyStats returns statistics for a specific hour
func (ht *HourlyTracker) GetHourlyStats(hour string) *HourlyStats {
	ht.mu.RLock()
	defer ht.mu.RUnlock()

	if stats, exists := ht.hourlyStats[hour]; exists {
		statsCopy := *stats
		return &statsCopy
	}
	return nil
}

// GetRecentHours returns statistics for the last N hours
func (ht *HourlyTracker) GetRecentHours(hours int) []*HourlyStats {
	ht.mu.RLock()
	defer ht.mu.RUnlock()

	var recentStats []*HourlyStats
	now := time.Now()

	for i := 0; i < hours; i++ {
		hourTime := now.Add(-time.Duration(i) * time.Hour)
		hourKey := hourTime.Format("2006-01-02-15")

		if stats, exists := ht.hourlyStats[hourKey]; exists {
			statsCopy := *stats
			recentStats = append(recentStats, &statsCopy)
		} else {
			// Create empty stats for missing hours
			recentStats = append(recentStats, &HourlyStats{
				Hour: hourKey,
			})
		}
	}

	return recentStats
}

// CleanupOldStats removes statistics older than the specified duration
func (ht *HourlyTracker) CleanupOldStats(maxAge time.Duration) {
	ht.mu.Lock()
	defer ht.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	cutoffKey := cutoff.Format("2006-01-02-15")

	for hourKey := range ht.hourlyStats {
		if hourKey < cutoffKey {
			delete(ht.hourlyStats, hourKey)
		}
	}
}
