// File: native/chunk.go
// Package native manages raw native memory regions used as decode targets.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// On unix platforms a Chunk is an anonymous private mapping obtained through
// mmap, so its memory lives outside the Go heap and must be unmapped exactly
// once. Elsewhere the chunk falls back to a heap slice (see alloc_other.go).

package native

import (
	"sync"
	"unsafe"

	"github.com/momentics/hioload-mem/api"
)

// Chunk is a fixed-size native buffer with bounds-checked accessors.
//
// A Chunk is exclusively owned by the refcount handle that wraps it; it is
// never aliased outside that handle's clones. All accessors fail with
// api.ErrClosed once the chunk has been freed.
type Chunk struct {
	mu     sync.RWMutex
	data   []byte
	mapped bool // true when data came from mmap and needs munmap
	closed bool
}

// Size returns the chunk's capacity in bytes. Valid even after Close.
func (c *Chunk) Size() int {
	return len(c.data)
}

// Read returns the byte at offset.
func (c *Chunk) Read(offset int) (byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return 0, api.NewError(api.ErrCodeClosed, "native: read from freed chunk")
	}
	if offset < 0 || offset >= len(c.data) {
		return 0, rangeErr("read", offset, 1, len(c.data))
	}
	return c.data[offset], nil
}

// ReadRange copies n bytes starting at offset into dst[dstOffset:].
// Returns the number of bytes copied, which is always n on success.
func (c *Chunk) ReadRange(offset int, dst []byte, dstOffset, n int) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return 0, api.NewError(api.ErrCodeClosed, "native: read from freed chunk")
	}
	if err := checkRange(offset, n, len(c.data)); err != nil {
		return 0, err
	}
	if dstOffset < 0 || n > len(dst)-dstOffset {
		return 0, rangeErr("read", dstOffset, n, len(dst))
	}
	copy(dst[dstOffset:dstOffset+n], c.data[offset:offset+n])
	return n, nil
}

// Write stores b at offset. Decoders fill chunks through WriteRange; the
// single-byte form exists for header patching.
func (c *Chunk) Write(offset int, b byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return api.NewError(api.ErrCodeClosed, "native: write to freed chunk")
	}
	if offset < 0 || offset >= len(c.data) {
		return rangeErr("write", offset, 1, len(c.data))
	}
	c.data[offset] = b
	return nil
}

// WriteRange copies n bytes from src[srcOffset:] into the chunk at offset.
func (c *Chunk) WriteRange(offset int, src []byte, srcOffset, n int) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, api.NewError(api.ErrCodeClosed, "native: write to freed chunk")
	}
	if err := checkRange(offset, n, len(c.data)); err != nil {
		return 0, err
	}
	if srcOffset < 0 || n > len(src)-srcOffset {
		return 0, rangeErr("write", srcOffset, n, len(src))
	}
	copy(c.data[offset:offset+n], src[srcOffset:srcOffset+n])
	return n, nil
}

// Ptr exposes the raw region for zero-copy handoff to decoders.
// Callers must not retain the pointer beyond the owning handle's validity.
func (c *Chunk) Ptr() (unsafe.Pointer, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, api.NewError(api.ErrCodeClosed, "native: pointer to freed chunk")
	}
	if len(c.data) == 0 {
		return nil, nil
	}
	return unsafe.Pointer(&c.data[0]), nil
}

// Close frees the native region exactly once. Subsequent calls are no-ops.
func (c *Chunk) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.free()
}

// IsClosed reports whether the region has been freed.
func (c *Chunk) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// checkRange validates an offset/length pair against a region size.
func checkRange(offset, n, size int) error {
	if n < 0 || offset < 0 || offset >= size || offset+n > size {
		return rangeErr("access", offset, n, size)
	}
	return nil
}

func rangeErr(op string, offset, n, size int) error {
	return api.NewError(api.ErrCodeOutOfRange, "native: "+op+" out of range").
		WithContext("offset", offset).
		WithContext("length", n).
		WithContext("size", size)
}
