// File: pool/base_pool.go
// Package pool implements the generic bucketed pooling engine.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// BasePool is the size-classed reuse algorithm shared by every concrete
// pool. It is parameterized by an api.Allocator that supplies the
// resource-specific pieces: allocation, disposal, the bucketing function,
// and the reusability predicate. A single mutex guards all bucket state;
// trim runs under the same lock as alloc/release so a pressure signal can
// never race a disposal against an in-flight checkout.

package pool

import (
	"sync"

	"github.com/momentics/hioload-mem/api"
)

// BasePool is the generic bucketed engine. Concrete pools embed it.
type BasePool[T any] struct {
	mu           sync.Mutex
	allocator    api.Allocator[T]
	params       Params
	stats        api.StatsTracker
	registry     api.TrimRegistry
	onDisposeErr func(error)

	buckets map[int]*bucket[T]

	usedBytes  int
	freeBytes  int
	usedCount  int
	freeCount  int
	totalAlloc int64
	totalFree  int64
	closed     bool
}

var _ api.Pool[[]byte] = (*BasePool[[]byte])(nil)
var _ api.Trimmable = (*BasePool[int])(nil)

// NewBasePool validates params, builds the engine, and registers it with
// the trim registry when one is configured.
func NewBasePool[T any](allocator api.Allocator[T], params Params, opts ...Option) (*BasePool[T], error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	p := &BasePool[T]{
		allocator:    allocator,
		params:       params,
		stats:        o.stats,
		registry:     o.registry,
		onDisposeErr: o.onDisposeErr,
		buckets:      make(map[int]*bucket[T]),
	}
	if p.registry != nil {
		p.registry.Register(p)
	}
	return p, nil
}

// Alloc returns a value covering at least size units: from the free list
// when a reusable entry exists, freshly allocated otherwise. Entries that
// fail the reusability re-check are disposed, never handed out.
func (p *BasePool[T]) Alloc(size int) (T, error) {
	var zero T
	if size < 0 {
		return zero, api.NewError(api.ErrCodeInvalidConfig, "pool: negative request size").
			WithContext("size", size)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return zero, api.NewError(api.ErrCodeClosed, "pool: alloc on closed pool")
	}

	bucketed := p.allocator.BucketedSize(size)
	bytes := p.allocator.SizeInBytes(bucketed)

	// Over the hard cap pooling is bypassed: the value is fresh, untracked,
	// and always disposed on release.
	if p.overHardCap(bytes) {
		p.stats.OnHardCapMiss(size)
		v, err := p.allocator.Alloc(bucketed)
		if err != nil {
			return zero, err
		}
		p.totalAlloc++
		p.stats.OnAlloc(bytes)
		return v, nil
	}

	b := p.getOrCreateBucket(bucketed)
	for b.free.Length() > 0 {
		v := b.pop()
		p.freeBytes -= bytes
		p.freeCount--
		if p.allocator.IsReusable(v) {
			b.inUse++
			p.usedBytes += bytes
			p.usedCount++
			p.stats.OnValueReuse(bucketed)
			return v, nil
		}
		// Stale entry (disposed behind the pool's back); discard it.
		p.dispose(v, bytes)
	}

	v, err := p.allocator.Alloc(bucketed)
	if err != nil {
		return zero, err
	}
	b.inUse++
	p.usedBytes += bytes
	p.usedCount++
	p.totalAlloc++
	p.stats.OnAlloc(bytes)
	return v, nil
}

// Release hands ownership back to the pool. The value's bucket is derived
// from its true footprint, which may differ from the bucket it was
// allocated from when a decoder reconfigured the surface; the bucket is
// created on demand in that case. The value is parked on the free list
// when it is reusable, the bucket has spare capacity, and the soft cap is
// not exceeded; otherwise it is disposed immediately.
func (p *BasePool[T]) Release(v T) {
	p.mu.Lock()
	defer p.mu.Unlock()

	bucketed := p.allocator.BucketedSizeForValue(v)
	bytes := p.allocator.SizeInBytes(bucketed)

	b := p.getOrCreateBucket(bucketed)
	if b.inUse > 0 {
		b.inUse--
		p.usedBytes -= bytes
		p.usedCount--
	}

	if p.closed || p.overHardCap(bytes) ||
		!p.allocator.IsReusable(v) || !b.hasSpare() || p.softCapExceeded(bytes) {
		p.dispose(v, bytes)
		return
	}

	b.push(v)
	p.freeBytes += bytes
	p.freeCount++
	p.stats.OnValueRelease(bucketed)
}

// Trim evicts idle entries until the free byte total is at or below the
// level's target. Checked-out values are never evicted.
func (p *BasePool[T]) Trim(level api.TrimLevel) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.trimToLocked(p.trimTarget(level))
}

// GetBucketedSize maps a requested size to its canonical bucket size.
func (p *BasePool[T]) GetBucketedSize(size int) int {
	return p.allocator.BucketedSize(size)
}

// GetBucketedSizeForValue computes the bucket a live value belongs to.
func (p *BasePool[T]) GetBucketedSizeForValue(v T) int {
	return p.allocator.BucketedSizeForValue(v)
}

// GetSizeInBytes converts a bucket size to its true byte footprint.
func (p *BasePool[T]) GetSizeInBytes(bucketedSize int) int {
	return p.allocator.SizeInBytes(bucketedSize)
}

// IsReusable reports whether the value may be handed to a new owner.
func (p *BasePool[T]) IsReusable(v T) bool {
	return p.allocator.IsReusable(v)
}

// Stats returns a snapshot of the pool counters.
func (p *BasePool[T]) Stats() api.PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return api.PoolStats{
		TotalAlloc: p.totalAlloc,
		TotalFree:  p.totalFree,
		UsedBytes:  p.usedBytes,
		FreeBytes:  p.freeBytes,
		UsedCount:  p.usedCount,
		FreeCount:  p.freeCount,
	}
}

// Close frees every idle entry and unregisters from the trim registry.
// Values still checked out are disposed when released.
func (p *BasePool[T]) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.trimToLocked(0)
	p.mu.Unlock()

	// Outside the pool lock: the registry may be broadcasting a trim.
	if p.registry != nil {
		p.registry.Unregister(p)
	}
}

func (p *BasePool[T]) getOrCreateBucket(bucketedSize int) *bucket[T] {
	b, ok := p.buckets[bucketedSize]
	if !ok {
		b = newBucket[T](bucketedSize, p.params.maxCountFor(bucketedSize))
		p.buckets[bucketedSize] = b
	}
	return b
}

func (p *BasePool[T]) overHardCap(bytes int) bool {
	return p.params.MaxSizeHardCap > 0 && bytes > p.params.MaxSizeHardCap
}

// softCapExceeded reports whether retaining extra additional bytes would
// push the pool's total footprint past the soft cap.
func (p *BasePool[T]) softCapExceeded(extra int) bool {
	return p.params.MaxSizeSoftCap > 0 &&
		p.usedBytes+p.freeBytes+extra > p.params.MaxSizeSoftCap
}

func (p *BasePool[T]) trimTarget(level api.TrimLevel) int {
	switch level {
	case api.TrimLight:
		return p.params.MaxSizeSoftCap
	case api.TrimModerate:
		return p.params.MaxSizeSoftCap / 2
	default:
		return 0
	}
}

// trimToLocked evicts free-list entries until freeBytes <= target.
// Caller holds p.mu.
func (p *BasePool[T]) trimToLocked(target int) {
	if p.freeBytes <= target {
		return
	}
	for _, b := range p.buckets {
		for b.free.Length() > 0 {
			v := b.pop()
			bytes := p.allocator.SizeInBytes(b.itemSize)
			p.freeBytes -= bytes
			p.freeCount--
			p.dispose(v, bytes)
			if p.freeBytes <= target {
				return
			}
		}
	}
}

// dispose frees a value, routing failures to the disposal hook so release
// paths never throw past a caller merely handing back ownership.
// Caller holds p.mu.
func (p *BasePool[T]) dispose(v T, bytes int) {
	if err := p.allocator.Free(v); err != nil {
		p.onDisposeErr(err)
	}
	p.totalFree++
	p.stats.OnFree(bytes)
}
