// File: pool/nativepool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// NativePool recycles mmap-backed memory chunks. Requests are rounded up
// to the configured size-class table (the keys of Params.BucketSizes) so
// a handful of canonical chunk sizes serves the whole pipeline.

package pool

import (
	"github.com/momentics/hioload-mem/api"
	"github.com/momentics/hioload-mem/native"
	"github.com/momentics/hioload-mem/refcount"
)

type chunkAllocator struct {
	sizeClasses []int // ascending
}

// Alloc maps a fresh region; exhaustion surfaces as api.ErrAllocFailed.
func (chunkAllocator) Alloc(bucketedSize int) (*native.Chunk, error) {
	return native.Alloc(bucketedSize)
}

// Free unmaps the region exactly once; Chunk.Close is idempotent.
func (chunkAllocator) Free(c *native.Chunk) error {
	return c.Close()
}

// BucketedSize returns the smallest configured class covering the request,
// or the request itself above the table.
func (a chunkAllocator) BucketedSize(requestSize int) int {
	for _, c := range a.sizeClasses {
		if requestSize <= c {
			return c
		}
	}
	return requestSize
}

// BucketedSizeForValue: chunks are allocated at canonical sizes, so the
// chunk's own size is its bucket.
func (chunkAllocator) BucketedSizeForValue(c *native.Chunk) int {
	return c.Size()
}

func (chunkAllocator) SizeInBytes(bucketedSize int) int { return bucketedSize }

// IsReusable rejects chunks whose native region was freed behind the pool.
func (chunkAllocator) IsReusable(c *native.Chunk) bool {
	return c != nil && !c.IsClosed()
}

var _ api.Allocator[*native.Chunk] = chunkAllocator{}

// NativePool recycles native memory regions.
type NativePool struct {
	*BasePool[*native.Chunk]
}

// NewNativePool builds a native chunk pool; Params.BucketSizes keys form
// the size-class table.
func NewNativePool(params Params, opts ...Option) (*NativePool, error) {
	alloc := chunkAllocator{sizeClasses: sortedBucketSizes(params.BucketSizes)}
	base, err := NewBasePool[*native.Chunk](alloc, params, opts...)
	if err != nil {
		return nil, err
	}
	return &NativePool{BasePool: base}, nil
}

// AllocRef checks a chunk out wrapped in a reference-counted handle whose
// final close returns the chunk to this pool. This is the form pipeline
// stages consume; the raw Alloc/Release pair stays available for callers
// managing ownership themselves.
func (p *NativePool) AllocRef(size int) (*refcount.Ref[*native.Chunk], error) {
	c, err := p.Alloc(size)
	if err != nil {
		return nil, err
	}
	return refcount.Acquire(c, func(ch *native.Chunk) {
		p.Release(ch)
	}), nil
}
