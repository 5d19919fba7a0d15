package mimgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordPartition is called after a modality's doppelgaenger subset was extracted.
	RecordPartition(modality string, cells int, duration time.Duration, err error)

	// RecordDistance is called after a modality's distance matrix was computed.
	// bytes is the matrix footprint.
	RecordDistance(modality string, rows int, bytes int64, duration time.Duration, err error)

	// RecordScore is called once per scoring run.
	// scored counts cells that received a similarity, missing those that did not.
	RecordScore(scored, missing int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordPartition(string, int, time.Duration, error)       {}
func (NoopMetricsCollector) RecordDistance(string, int, int64, time.Duration, error) {}
func (NoopMetricsCollector) RecordScore(int, int, time.Duration, error)              {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	PartitionCount     atomic.Int64
	PartitionErrors    atomic.Int64
	PartitionCells     atomic.Int64
	DistanceCount      atomic.Int64
	DistanceErrors     atomic.Int64
	DistanceBytes      atomic.Int64
	DistanceTotalNanos atomic.Int64
	ScoreCount         atomic.Int64
	ScoreErrors        atomic.Int64
	ScoredCells        atomic.Int64
	MissingCells       atomic.Int64
	ScoreTotalNanos    atomic.Int64
}

// RecordPartition implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPartition(_ string, cells int, _ time.Duration, err error) {
	b.PartitionCount.Add(1)
	if err != nil {
		b.PartitionErrors.Add(1)
		return
	}
	b.PartitionCells.Add(int64(cells))
}

// RecordDistance implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDistance(_ string, _ int, bytes int64, duration time.Duration, err error) {
	b.DistanceCount.Add(1)
	b.DistanceTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.DistanceErrors.Add(1)
		return
	}
	b.DistanceBytes.Add(bytes)
}

// RecordScore implements MetricsCollector.
func (b *BasicMetricsCollector) RecordScore(scored, missing int, duration time.Duration, err error) {
	b.ScoreCount.Add(1)
	b.ScoreTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ScoreErrors.Add(1)
		return
	}
	b.ScoredCells.Add(int64(scored))
	b.MissingCells.Add(int64(missing))
}

// BasicMetricsStats is a point-in-time snapshot of BasicMetricsCollector.
type BasicMetricsStats struct {
	Runs             int64
	RunErrors        int64
	ScoredCells      int64
	MissingCells     int64
	DistanceBytes    int64
	AvgScoreNanos    int64
	AvgDistanceNanos int64
}

// GetStats returns a snapshot of the collected metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	stats := BasicMetricsStats{
		Runs:          b.ScoreCount.Load(),
		RunErrors:     b.ScoreErrors.Load(),
		ScoredCells:   b.ScoredCells.Load(),
		MissingCells:  b.MissingCells.Load(),
		DistanceBytes: b.DistanceBytes.Load(),
	}
	if stats.Runs > 0 {
		stats.AvgScoreNanos = b.ScoreTotalNanos.Load() / stats.Runs
	}
	if n := b.DistanceCount.Load(); n > 0 {
		stats.AvgDistanceNanos = b.DistanceTotalNanos.Load() / n
	}
	return stats
}
