// File: pool/bytepool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import "github.com/momentics/hioload-mem/api"

// byteArrayAllocator backs BytePool. Bucketing is the identity function so
// consumers keep their exact requested capacity; arrays are inert once
// returned, so they are always reusable and disposal is a no-op (the
// engine still enforces capacity bookkeeping).
type byteArrayAllocator struct{}

func (byteArrayAllocator) Alloc(bucketedSize int) ([]byte, error) {
	return make([]byte, bucketedSize), nil
}

func (byteArrayAllocator) Free([]byte) error { return nil }

func (byteArrayAllocator) BucketedSize(requestSize int) int { return requestSize }

func (byteArrayAllocator) BucketedSizeForValue(v []byte) int { return len(v) }

func (byteArrayAllocator) SizeInBytes(bucketedSize int) int { return bucketedSize }

func (byteArrayAllocator) IsReusable([]byte) bool { return true }

var _ api.Allocator[[]byte] = byteArrayAllocator{}

// BytePool recycles contiguous byte buffers, bucketed by exact size.
type BytePool struct {
	*BasePool[[]byte]
}

// NewBytePool builds a byte-array pool over the given parameters.
func NewBytePool(params Params, opts ...Option) (*BytePool, error) {
	base, err := NewBasePool[[]byte](byteArrayAllocator{}, params, opts...)
	if err != nil {
		return nil, err
	}
	return &BytePool{BasePool: base}, nil
}
