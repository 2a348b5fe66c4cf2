// File: pool/params.go
// Package pool defines immutable pool parameters.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"sort"

	"github.com/momentics/hioload-mem/api"
)

// Params is the immutable configuration of one pool.
//
// MaxSizeSoftCap bounds the total bytes (checked out + idle) beyond which
// Release declines to retain entries. MaxSizeHardCap bounds the single
// allocation size beyond which pooling is bypassed entirely. A cap of 0
// disables the corresponding limit.
type Params struct {
	MaxSizeSoftCap int
	MaxSizeHardCap int

	// BucketSizes maps a bucketed size to the maximum number of values
	// (checked out + idle) the bucket may hold. Absent entries are
	// unbounded. For the native pool the keys double as the size-class
	// table for request rounding.
	BucketSizes map[int]int
}

// DefaultParams returns the configuration used when no file or explicit
// parameters are supplied.
func DefaultParams() Params {
	return Params{
		MaxSizeSoftCap: 4 << 20,
		MaxSizeHardCap: 16 << 20,
	}
}

// Validate rejects structurally invalid parameters with api.ErrInvalidConfig.
func (p Params) Validate() error {
	if p.MaxSizeSoftCap < 0 {
		return api.NewError(api.ErrCodeInvalidConfig, "pool: negative soft cap").
			WithContext("max_size_soft_cap", p.MaxSizeSoftCap)
	}
	if p.MaxSizeHardCap < 0 {
		return api.NewError(api.ErrCodeInvalidConfig, "pool: negative hard cap").
			WithContext("max_size_hard_cap", p.MaxSizeHardCap)
	}
	if p.MaxSizeSoftCap > 0 && p.MaxSizeHardCap > 0 && p.MaxSizeSoftCap > p.MaxSizeHardCap {
		return api.NewError(api.ErrCodeInvalidConfig, "pool: soft cap above hard cap").
			WithContext("max_size_soft_cap", p.MaxSizeSoftCap).
			WithContext("max_size_hard_cap", p.MaxSizeHardCap)
	}
	for size, count := range p.BucketSizes {
		if size < 0 || count < 0 {
			return api.NewError(api.ErrCodeInvalidConfig, "pool: negative bucket entry").
				WithContext("bucket_size", size).
				WithContext("max_count", count)
		}
	}
	return nil
}

// maxCountFor returns the configured cap for a bucket, 0 meaning unbounded.
func (p Params) maxCountFor(bucketedSize int) int {
	if p.BucketSizes == nil {
		return 0
	}
	return p.BucketSizes[bucketedSize]
}

// sortedBucketSizes returns the configured bucket sizes in ascending order,
// forming the size-class table for pools that round requests upward.
func sortedBucketSizes(bucketSizes map[int]int) []int {
	out := make([]int, 0, len(bucketSizes))
	for size := range bucketSizes {
		out = append(out, size)
	}
	sort.Ints(out)
	return out
}
