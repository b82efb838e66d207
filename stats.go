package smc

import "sync/atomic"

// PoolStats contains statistics about the session pool.
// All fields are safe for concurrent access.
//
// Struct is optimized to fit within a single cache line (64 bytes).
// Fields are ordered largest to smallest for optimal memory layout.
//
// For Prometheus integration, expose these as:
//   - Gauges: TotalSessions, IdleSessions, ActiveSessions
//   - Counters: AcquireCount, AcquireWaitCount, CreatedSessions, DestroyedSessions, AcquireErrors
//   - Histogram: acquire wait duration (use AcquireWaitCount and AcquireWaitTimeNs to calculate)
type PoolStats struct {
	// Lifetime counters (uint64 - 8 bytes each)
	AcquireCount      uint64 // Total acquire attempts
	AcquireWaitCount  uint64 // Acquires that had to wait
	CreatedSessions   uint64 // Total sessions opened
	DestroyedSessions uint64 // Total sessions closed
	AcquireErrors     uint64 // Failed acquire attempts
	AcquireWaitTimeNs uint64 // Total nanoseconds spent waiting

	// Current state gauges (int32 - 4 bytes each)
	TotalSessions  int32 // Total sessions in pool (active + idle)
	IdleSessions   int32 // Idle sessions available
	ActiveSessions int32 // Sessions currently in use
	_              int32 // Padding to align to 64 bytes
}

// ClientStats contains statistics about client operations.
// All fields are safe for concurrent access.
//
// Struct is optimized to fit within a single cache line (64 bytes).
//
// For Prometheus integration, expose these as:
//   - Counters: Reads, Infos, NotFound, Errors (with operation label)
//   - Counter: CacheHits (derive the hit rate as CacheHits/Reads)
type ClientStats struct {
	Reads     uint64    // Read operations that returned a value
	Infos     uint64    // Info operations that returned metadata
	CacheHits uint64    // Reads that reused cached metadata
	NotFound  uint64    // Operations that asked for a key the controller lacks
	Errors    uint64    // Total errors across all operations
	_         [3]uint64 // Padding to align to 64 bytes
}

// clientStatsCollector provides internal methods for updating client stats.
// Not exported - the client updates its own stats.
type clientStatsCollector struct {
	stats *ClientStats
}

func newClientStatsCollector() *clientStatsCollector {
	return &clientStatsCollector{
		stats: &ClientStats{},
	}
}

func (c *clientStatsCollector) recordRead(cacheHit bool) {
	atomic.AddUint64(&c.stats.Reads, 1)
	if cacheHit {
		atomic.AddUint64(&c.stats.CacheHits, 1)
	}
}

func (c *clientStatsCollector) recordInfo() {
	atomic.AddUint64(&c.stats.Infos, 1)
}

func (c *clientStatsCollector) recordNotFound() {
	atomic.AddUint64(&c.stats.NotFound, 1)
}

func (c *clientStatsCollector) recordError() {
	atomic.AddUint64(&c.stats.Errors, 1)
}

func (c *clientStatsCollector) snapshot() ClientStats {
	return ClientStats{
		Reads:     atomic.LoadUint64(&c.stats.Reads),
		Infos:     atomic.LoadUint64(&c.stats.Infos),
		CacheHits: atomic.LoadUint64(&c.stats.CacheHits),
		NotFound:  atomic.LoadUint64(&c.stats.NotFound),
		Errors:    atomic.LoadUint64(&c.stats.Errors),
	}
}
