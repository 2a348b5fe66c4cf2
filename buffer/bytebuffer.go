// File: buffer/bytebuffer.go
// Package buffer provides the read-only view object pipeline stages pass
// between each other: a declared logical size over a shared native chunk.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package buffer

import (
	"sync"
	"unsafe"

	"github.com/momentics/hioload-mem/api"
	"github.com/momentics/hioload-mem/native"
	"github.com/momentics/hioload-mem/refcount"
)

// NativeByteBuffer is an immutable view of (handle, declared size) with
// declared size <= chunk size. It owns one clone of the handle and shares
// the chunk's lifetime; Close drops that clone exactly once.
//
// One mutex serializes every accessor and the disposal path, so a close
// in progress can never be observed mid-read.
type NativeByteBuffer struct {
	mu   sync.Mutex
	ref  *refcount.Ref[*native.Chunk]
	size int
}

// New builds a buffer over its own clone of ref. Fails with api.ErrClosed
// when the handle is already dead, and with api.ErrOutOfRange when the
// declared size does not fit the chunk.
func New(ref *refcount.Ref[*native.Chunk], size int) (*NativeByteBuffer, error) {
	if ref == nil {
		return nil, api.NewError(api.ErrCodeClosed, "buffer: nil chunk handle")
	}
	c, err := ref.Get()
	if err != nil {
		return nil, err
	}
	if size < 0 || size > c.Size() {
		return nil, api.NewError(api.ErrCodeOutOfRange, "buffer: declared size exceeds chunk").
			WithContext("size", size).
			WithContext("chunk_size", c.Size())
	}
	clone, err := ref.Clone()
	if err != nil {
		return nil, err
	}
	return &NativeByteBuffer{ref: clone, size: size}, nil
}

// chunkLocked resolves the backing chunk. Caller holds b.mu.
func (b *NativeByteBuffer) chunkLocked() (*native.Chunk, error) {
	if b.ref == nil {
		return nil, api.NewError(api.ErrCodeClosed, "buffer: buffer is closed")
	}
	return b.ref.Get()
}

// Size returns the declared logical size.
func (b *NativeByteBuffer) Size() (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := b.chunkLocked(); err != nil {
		return 0, err
	}
	return b.size, nil
}

// Read returns the byte at offset, 0 <= offset < Size.
func (b *NativeByteBuffer) Read(offset int) (byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, err := b.chunkLocked()
	if err != nil {
		return 0, err
	}
	if offset < 0 || offset >= b.size {
		return 0, api.NewError(api.ErrCodeOutOfRange, "buffer: read out of range").
			WithContext("offset", offset).
			WithContext("size", b.size)
	}
	return c.Read(offset)
}

// ReadRange copies n bytes starting at offset into dst[dstOffset:],
// requiring offset+n <= Size. Returns the number of bytes copied.
func (b *NativeByteBuffer) ReadRange(offset int, dst []byte, dstOffset, n int) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, err := b.chunkLocked()
	if err != nil {
		return 0, err
	}
	if n < 0 || offset < 0 || offset+n > b.size {
		return 0, api.NewError(api.ErrCodeOutOfRange, "buffer: read range out of range").
			WithContext("offset", offset).
			WithContext("length", n).
			WithContext("size", b.size)
	}
	if n == 0 {
		return 0, nil
	}
	return c.ReadRange(offset, dst, dstOffset, n)
}

// NativePtr exposes the chunk's raw region for zero-copy decode. The
// pointer must not outlive this buffer.
func (b *NativeByteBuffer) NativePtr() (unsafe.Pointer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, err := b.chunkLocked()
	if err != nil {
		return nil, err
	}
	return c.Ptr()
}

// Close drops the held handle clone exactly once. Idempotent.
func (b *NativeByteBuffer) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ref != nil {
		b.ref.Close()
		b.ref = nil
	}
}

// IsClosed reports whether this buffer can no longer serve reads.
func (b *NativeByteBuffer) IsClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ref == nil || !b.ref.IsValid()
}
