// File: control/stats.go
// Author: momentics <momentics@gmail.com>
//
// Metrics-backed stats tracker for pool observability.
// Exposes counters in a thread-safe map with snapshot semantics.

package control

import (
	"sync"
	"time"

	"github.com/momentics/hioload-mem/api"
)

// MetricsTracker implements api.StatsTracker over a counter map.
type MetricsTracker struct {
	mu       sync.RWMutex
	counters map[string]int64
	updated  time.Time
}

var _ api.StatsTracker = (*MetricsTracker)(nil)

// NewMetricsTracker creates an empty tracker.
func NewMetricsTracker() *MetricsTracker {
	return &MetricsTracker{
		counters: make(map[string]int64),
	}
}

func (mt *MetricsTracker) add(key string, delta int64) {
	mt.mu.Lock()
	mt.counters[key] += delta
	mt.updated = time.Now()
	mt.mu.Unlock()
}

func (mt *MetricsTracker) OnAlloc(sizeInBytes int) {
	mt.add("pool.alloc.count", 1)
	mt.add("pool.alloc.bytes", int64(sizeInBytes))
}

func (mt *MetricsTracker) OnFree(sizeInBytes int) {
	mt.add("pool.free.count", 1)
	mt.add("pool.free.bytes", int64(sizeInBytes))
}

func (mt *MetricsTracker) OnValueReuse(bucketedSize int) {
	mt.add("pool.reuse.count", 1)
	mt.add("pool.reuse.bytes", int64(bucketedSize))
}

func (mt *MetricsTracker) OnValueRelease(bucketedSize int) {
	mt.add("pool.release.count", 1)
	mt.add("pool.release.bytes", int64(bucketedSize))
}

func (mt *MetricsTracker) OnHardCapMiss(requestSize int) {
	mt.add("pool.hardcap_miss.count", 1)
}

// Snapshot returns the latest counters.
func (mt *MetricsTracker) Snapshot() map[string]int64 {
	mt.mu.RLock()
	defer mt.mu.RUnlock()
	out := make(map[string]int64, len(mt.counters))
	for k, v := range mt.counters {
		out[k] = v
	}
	return out
}

// Updated returns the time of the last recorded event.
func (mt *MetricsTracker) Updated() time.Time {
	mt.mu.RLock()
	defer mt.mu.RUnlock()
	return mt.updated
}
