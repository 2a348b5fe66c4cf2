// File: api/pool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Defines the abstract pooling APIs: bucketed, size-classed reuse of
// expensive buffers (byte arrays, native memory chunks, bitmaps) across
// image pipeline stages.

package api

// Pool is the surface every concrete pool exposes to the pipeline.
//
// Values handed out by Alloc must be returned through Release exactly once.
// Releasing a value that was not obtained from the same pool is undefined
// and must be guarded by callers.
type Pool[T any] interface {
	// Alloc returns a value whose capacity covers at least size units.
	// A request above the hard cap is satisfied with a fresh, un-pooled
	// allocation that is always freed on Release.
	Alloc(size int) (T, error)

	// Release hands ownership back. The value is either parked on its
	// bucket's free list or freed, depending on reusability and caps.
	Release(v T)

	// Trim evicts idle free-list entries according to the given severity.
	// Values currently checked out are never touched.
	Trim(level TrimLevel)

	// GetBucketedSize maps a requested size to its canonical bucket size.
	// Deterministic, and never smaller than the request.
	GetBucketedSize(size int) int

	// GetBucketedSizeForValue computes the bucket a live value belongs to.
	GetBucketedSizeForValue(v T) int

	// GetSizeInBytes converts a bucket size to its true byte footprint.
	GetSizeInBytes(bucketedSize int) int

	// IsReusable reports whether the value may be handed to a new owner.
	IsReusable(v T) bool

	// Stats returns a snapshot of the pool's counters.
	Stats() PoolStats

	// Close frees all idle entries and unregisters the pool from its
	// trim registry. The pool allocates nothing afterwards.
	Close()
}

// Allocator is the resource-specific capability interface the bucketed
// engine is parameterized with. One conforming implementation exists per
// concrete pool (byte arrays, native chunks, bitmaps).
type Allocator[T any] interface {
	// Alloc creates a fresh value of the canonical bucket size.
	Alloc(bucketedSize int) (T, error)

	// Free disposes a value. Errors are reported to the pool's disposal
	// hook, never propagated past Release.
	Free(v T) error

	// BucketedSize rounds a requested size up to its size class.
	BucketedSize(requestSize int) int

	// BucketedSizeForValue derives the size class of an existing value.
	BucketedSizeForValue(v T) int

	// SizeInBytes converts a bucket size to bytes.
	SizeInBytes(bucketedSize int) int

	// IsReusable rejects disposed values, aliasing views, and anything
	// else that cannot safely reach a new owner.
	IsReusable(v T) bool
}

// PoolStats aggregates allocation/reuse counters for one pool.
type PoolStats struct {
	TotalAlloc int64 // fresh allocations since construction
	TotalFree  int64 // values disposed since construction
	UsedBytes  int   // bytes currently checked out
	FreeBytes  int   // bytes currently idle on free lists
	UsedCount  int   // values currently checked out
	FreeCount  int   // values currently idle on free lists
}
