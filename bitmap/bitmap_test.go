// File: bitmap/bitmap_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package bitmap_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-mem/api"
	"github.com/momentics/hioload-mem/bitmap"
)

func TestFormat_BytesPerPixel(t *testing.T) {
	assert.Equal(t, 4, bitmap.RGBA8888.BytesPerPixel())
	assert.Equal(t, 8, bitmap.RGBA16F.BytesPerPixel())
	assert.Equal(t, 2, bitmap.RGB565.BytesPerPixel())
	assert.Equal(t, 1, bitmap.Alpha8.BytesPerPixel())
}

func TestBitmap_SizeInBytes(t *testing.T) {
	bm, err := bitmap.New(7, 8, bitmap.RGBA8888)
	require.NoError(t, err)
	assert.Equal(t, 224, bm.SizeInBytes())

	wide, err := bitmap.New(7, 8, bitmap.RGBA16F)
	require.NoError(t, err)
	assert.Equal(t, 448, wide.SizeInBytes())
}

func TestBitmap_DisposeIdempotent(t *testing.T) {
	bm, err := bitmap.New(4, 4, bitmap.RGB565)
	require.NoError(t, err)

	px, err := bm.Pixels()
	require.NoError(t, err)
	assert.Len(t, px, 32)

	bm.Dispose()
	bm.Dispose()
	assert.True(t, bm.IsDisposed())

	_, err = bm.Pixels()
	assert.True(t, errors.Is(err, api.ErrClosed))
}

func TestBitmap_ViewAliasesParent(t *testing.T) {
	bm, err := bitmap.New(2, 2, bitmap.Alpha8)
	require.NoError(t, err)

	px, err := bm.Pixels()
	require.NoError(t, err)
	px[0] = 0x7F

	view := bm.NewView()
	assert.True(t, view.IsView())
	assert.False(t, bm.IsView())
	assert.Equal(t, bm.SizeInBytes(), view.SizeInBytes())

	vpx, err := view.Pixels()
	require.NoError(t, err)
	assert.Equal(t, byte(0x7F), vpx[0], "view shares the parent's pixel storage")
}

func TestBitmap_NegativeDimensionsRejected(t *testing.T) {
	_, err := bitmap.New(-1, 4, bitmap.RGBA8888)
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrInvalidConfig))
}
