// File: pool/bitmappool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// BitmapPool recycles decoded bitmap surfaces. Requests are bucketed by
// rounded-up byte footprint; a value's bucket is its true decoded
// footprint (width * height * bytes-per-pixel) regardless of the nominal
// request that produced it.

package pool

import (
	"github.com/momentics/hioload-mem/api"
	"github.com/momentics/hioload-mem/bitmap"
)

// DefaultBitmapGranularity is the rounding step for bitmap requests when
// the caller does not supply one.
const DefaultBitmapGranularity = 4096

type bitmapAllocator struct {
	granularity int
	format      bitmap.Format
}

// Alloc creates a one-pixel-wide surface tall enough to cover the
// requested byte footprint, ready for reconfiguration by the decoder.
func (a bitmapAllocator) Alloc(bucketedSize int) (*bitmap.Bitmap, error) {
	bpp := a.format.BytesPerPixel()
	height := (bucketedSize + bpp - 1) / bpp
	return bitmap.New(1, height, a.format)
}

func (bitmapAllocator) Free(b *bitmap.Bitmap) error {
	b.Dispose()
	return nil
}

// BucketedSize rounds the request up to the pool granularity. A zero
// request maps to the smallest bucket.
func (a bitmapAllocator) BucketedSize(requestSize int) int {
	if requestSize <= 0 {
		return a.granularity
	}
	return (requestSize + a.granularity - 1) / a.granularity * a.granularity
}

func (bitmapAllocator) BucketedSizeForValue(b *bitmap.Bitmap) int {
	return b.SizeInBytes()
}

func (bitmapAllocator) SizeInBytes(bucketedSize int) int { return bucketedSize }

// IsReusable rejects disposed surfaces and read-only views. A view aliases
// another bitmap's memory and must never reach the free list.
func (bitmapAllocator) IsReusable(b *bitmap.Bitmap) bool {
	return b != nil && !b.IsDisposed() && !b.IsView()
}

var _ api.Allocator[*bitmap.Bitmap] = bitmapAllocator{}

// BitmapPool recycles bitmap surfaces bucketed by byte footprint.
type BitmapPool struct {
	*BasePool[*bitmap.Bitmap]
}

// NewBitmapPool builds a bitmap pool. granularity <= 0 selects
// DefaultBitmapGranularity; format is the layout fresh surfaces carry.
func NewBitmapPool(params Params, granularity int, format bitmap.Format, opts ...Option) (*BitmapPool, error) {
	if granularity <= 0 {
		granularity = DefaultBitmapGranularity
	}
	alloc := bitmapAllocator{granularity: granularity, format: format}
	base, err := NewBasePool[*bitmap.Bitmap](alloc, params, opts...)
	if err != nil {
		return nil, err
	}
	return &BitmapPool{BasePool: base}, nil
}
