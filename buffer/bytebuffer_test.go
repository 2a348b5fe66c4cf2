// File: buffer/bytebuffer_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package buffer_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-mem/api"
	"github.com/momentics/hioload-mem/buffer"
	"github.com/momentics/hioload-mem/native"
	"github.com/momentics/hioload-mem/refcount"
)

// newChunkRef allocates a chunk filled with a ramp pattern and wraps it in
// a counting disposer so tests can observe the exactly-once free.
func newChunkRef(t *testing.T, size int, frees *int) *refcount.Ref[*native.Chunk] {
	t.Helper()
	c, err := native.Alloc(size)
	require.NoError(t, err)
	for i := 0; i < size; i++ {
		require.NoError(t, c.Write(i, byte(i)))
	}
	return refcount.Acquire(c, func(ch *native.Chunk) {
		*frees++
		_ = ch.Close()
	})
}

func TestNativeByteBuffer_ReadAccessors(t *testing.T) {
	frees := 0
	ref := newChunkRef(t, 64, &frees)
	defer ref.Close()

	buf, err := buffer.New(ref, 40)
	require.NoError(t, err)
	defer buf.Close()

	size, err := buf.Size()
	require.NoError(t, err)
	assert.Equal(t, 40, size)

	b, err := buf.Read(10)
	require.NoError(t, err)
	assert.Equal(t, byte(10), b)

	dst := make([]byte, 8)
	n, err := buf.ReadRange(4, dst, 0, 8)
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Equal(t, []byte{4, 5, 6, 7, 8, 9, 10, 11}, dst)

	ptr, err := buf.NativePtr()
	require.NoError(t, err)
	assert.NotNil(t, ptr)
}

func TestNativeByteBuffer_DeclaredSizeBounds(t *testing.T) {
	frees := 0
	ref := newChunkRef(t, 64, &frees)
	defer ref.Close()

	buf, err := buffer.New(ref, 40)
	require.NoError(t, err)
	defer buf.Close()

	// Offset 40 is inside the chunk but outside the declared size.
	_, err = buf.Read(40)
	assert.True(t, errors.Is(err, api.ErrOutOfRange))

	dst := make([]byte, 16)
	_, err = buf.ReadRange(36, dst, 0, 8)
	assert.True(t, errors.Is(err, api.ErrOutOfRange))

	n, err := buf.ReadRange(40, dst, 0, 0)
	require.NoError(t, err, "zero-length read at the declared boundary is valid")
	assert.Equal(t, 0, n)
}

func TestNativeByteBuffer_DeclaredSizeMustFitChunk(t *testing.T) {
	frees := 0
	ref := newChunkRef(t, 16, &frees)
	defer ref.Close()

	_, err := buffer.New(ref, 17)
	assert.True(t, errors.Is(err, api.ErrOutOfRange))
	_, err = buffer.New(ref, -1)
	assert.True(t, errors.Is(err, api.ErrOutOfRange))
}

func TestNativeByteBuffer_CloseTwiceFreesOnce(t *testing.T) {
	frees := 0
	ref := newChunkRef(t, 32, &frees)

	bufA, err := buffer.New(ref, 32)
	require.NoError(t, err)
	bufB, err := buffer.New(ref, 16)
	require.NoError(t, err)
	ref.Close() // buffers hold their own clones

	bufA.Close()
	bufA.Close() // no error, no double-free
	assert.True(t, bufA.IsClosed())
	assert.Equal(t, 0, frees, "chunk survives while another buffer is live")

	_, err = bufA.Read(0)
	assert.True(t, errors.Is(err, api.ErrClosed))
	_, err = bufA.Size()
	assert.True(t, errors.Is(err, api.ErrClosed))

	b, err := bufB.Read(3)
	require.NoError(t, err)
	assert.Equal(t, byte(3), b)

	bufB.Close()
	bufB.Close()
	assert.Equal(t, 1, frees, "underlying chunk freed exactly once")

	_, err = bufB.ReadRange(0, make([]byte, 4), 0, 4)
	assert.True(t, errors.Is(err, api.ErrClosed))
	_, err = bufB.NativePtr()
	assert.True(t, errors.Is(err, api.ErrClosed))
}

func TestNativeByteBuffer_RejectsDeadHandle(t *testing.T) {
	frees := 0
	ref := newChunkRef(t, 8, &frees)
	ref.Close()

	_, err := buffer.New(ref, 8)
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrClosed))

	_, err = buffer.New(nil, 0)
	assert.True(t, errors.Is(err, api.ErrClosed))
}

func TestNativeByteBuffer_ConcurrentReadsAndClose(t *testing.T) {
	frees := 0
	ref := newChunkRef(t, 128, &frees)

	buf, err := buffer.New(ref, 128)
	require.NoError(t, err)
	ref.Close()

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dst := make([]byte, 16)
			for i := 0; i < 100; i++ {
				// Reads either succeed fully or fail closed; never tear.
				if _, err := buf.ReadRange(0, dst, 0, 16); err != nil {
					assert.True(t, errors.Is(err, api.ErrClosed))
					return
				}
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		buf.Close()
	}()
	wg.Wait()

	assert.Equal(t, 1, frees)
	assert.True(t, buf.IsClosed())
}
