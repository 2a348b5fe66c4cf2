// File: pool/bytepool_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-mem/pool"
)

// Representative configuration used across the byte pool tests: a 224-byte
// hard cap with a handful of bounded buckets.
func byteTestParams() pool.Params {
	return pool.Params{
		MaxSizeSoftCap: 224,
		MaxSizeHardCap: 224,
		BucketSizes:    map[int]int{12: 4, 48: 4, 56: 4, 224: 1},
	}
}

func TestBytePool_ExactSizeBucketing(t *testing.T) {
	p, err := pool.NewBytePool(byteTestParams())
	require.NoError(t, err)

	buf, err := p.Alloc(12)
	require.NoError(t, err)
	assert.Len(t, buf, 12)
	p.Release(buf)

	assert.Equal(t, 12, p.GetBucketedSize(12))
	assert.Equal(t, 56, p.GetBucketedSize(56))
	assert.Equal(t, 48, p.GetSizeInBytes(48))
	assert.Equal(t, 224, p.GetSizeInBytes(224))
}

func TestBytePool_BucketedSizeIsMonotonicIdentity(t *testing.T) {
	p, err := pool.NewBytePool(byteTestParams())
	require.NoError(t, err)

	for _, size := range []int{0, 1, 7, 12, 100, 224, 10000} {
		got := p.GetBucketedSize(size)
		assert.GreaterOrEqual(t, got, size)
		assert.Equal(t, got, p.GetBucketedSize(size), "bucketing must be deterministic")
	}
}

func TestBytePool_ZeroSizeRequest(t *testing.T) {
	p, err := pool.NewBytePool(byteTestParams())
	require.NoError(t, err)

	buf, err := p.Alloc(0)
	require.NoError(t, err)
	assert.Len(t, buf, 0)
	p.Release(buf)
}

func TestBytePool_ArraysAlwaysReusable(t *testing.T) {
	p, err := pool.NewBytePool(byteTestParams())
	require.NoError(t, err)

	buf, err := p.Alloc(48)
	require.NoError(t, err)
	assert.True(t, p.IsReusable(buf))
	assert.Equal(t, 48, p.GetBucketedSizeForValue(buf))
	p.Release(buf)

	st := p.Stats()
	assert.Equal(t, 1, st.FreeCount)
	assert.Equal(t, int64(0), st.TotalFree, "byte array disposal is bookkeeping only")
}
