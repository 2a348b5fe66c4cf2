// File: bitmap/bitmap.go
// Package bitmap models the decoded platform bitmap objects the pipeline
// recycles. Construction of real platform bitmaps happens outside this
// module; the pool only needs dimensions, format, and lifecycle flags.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package bitmap

import (
	"sync"

	"github.com/momentics/hioload-mem/api"
)

// Format identifies a pixel layout. BytesPerPixel drives the pool's
// footprint arithmetic.
type Format int

const (
	// RGBA8888 is 8 bits per channel, 4 components.
	RGBA8888 Format = iota
	// RGBA16F is 16 bits per channel, 4 components.
	RGBA16F
	// RGB565 packs three channels into two bytes.
	RGB565
	// Alpha8 is a single 8-bit channel.
	Alpha8
)

// BytesPerPixel returns the per-pixel footprint of the format.
func (f Format) BytesPerPixel() int {
	switch f {
	case RGBA8888:
		return 4
	case RGBA16F:
		return 8
	case RGB565:
		return 2
	case Alpha8:
		return 1
	default:
		return 4
	}
}

// Bitmap is a decoded image surface. Views alias their parent's pixels and
// are read-only; a view must never be handed to a new owner by a pool.
type Bitmap struct {
	mu       sync.Mutex
	width    int
	height   int
	format   Format
	pixels   []byte
	disposed bool
	view     bool
}

// New allocates a bitmap surface of the given dimensions and format.
func New(width, height int, format Format) (*Bitmap, error) {
	if width < 0 || height < 0 {
		return nil, api.NewError(api.ErrCodeInvalidConfig, "bitmap: negative dimensions").
			WithContext("width", width).
			WithContext("height", height)
	}
	return &Bitmap{
		width:  width,
		height: height,
		format: format,
		pixels: make([]byte, width*height*format.BytesPerPixel()),
	}, nil
}

func (b *Bitmap) Width() int     { return b.width }
func (b *Bitmap) Height() int    { return b.height }
func (b *Bitmap) Format() Format { return b.format }

// SizeInBytes is the true decoded footprint: width * height * bpp.
func (b *Bitmap) SizeInBytes() int {
	return b.width * b.height * b.format.BytesPerPixel()
}

// Pixels exposes the backing storage for decode/encode stages.
func (b *Bitmap) Pixels() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.disposed {
		return nil, api.NewError(api.ErrCodeClosed, "bitmap: access to disposed bitmap")
	}
	return b.pixels, nil
}

// NewView derives a read-only view sharing this bitmap's pixel storage.
// Views are categorically non-reusable: they alias another bitmap's memory.
func (b *Bitmap) NewView() *Bitmap {
	return &Bitmap{
		width:  b.width,
		height: b.height,
		format: b.format,
		pixels: b.pixels,
		view:   true,
	}
}

// IsView reports whether this bitmap aliases another bitmap's storage.
func (b *Bitmap) IsView() bool { return b.view }

// Dispose releases the surface. Idempotent.
func (b *Bitmap) Dispose() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.disposed {
		return
	}
	b.disposed = true
	b.pixels = nil
}

// IsDisposed reports whether Dispose has run.
func (b *Bitmap) IsDisposed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.disposed
}
