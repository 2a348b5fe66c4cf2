// Package pool
// Author: momentics <momentics@gmail.com>
//
// Memory layer of the hioload-mem image pipeline core.
// Implements the generic bucketed pooling engine plus its concrete
// specializations: exact-size byte arrays, mmap-backed native chunks,
// and footprint-bucketed bitmaps.
// See base_pool.go for the engine, bytepool.go / nativepool.go /
// bitmappool.go for the specializations.
package pool
