// File: control/control_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package control_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-mem/api"
	"github.com/momentics/hioload-mem/control"
	"github.com/momentics/hioload-mem/pool"
)

type countingTrimmable struct {
	levels []api.TrimLevel
}

func (c *countingTrimmable) Trim(level api.TrimLevel) {
	c.levels = append(c.levels, level)
}

func TestRegistry_RegisterUnregisterTrim(t *testing.T) {
	reg := control.NewRegistry()
	a := &countingTrimmable{}
	b := &countingTrimmable{}

	reg.Register(a)
	reg.Register(b)
	reg.Register(a) // re-register is a no-op
	assert.Equal(t, 2, reg.Len())

	reg.TrimAll(api.TrimModerate)
	assert.Equal(t, []api.TrimLevel{api.TrimModerate}, a.levels)
	assert.Equal(t, []api.TrimLevel{api.TrimModerate}, b.levels)

	reg.Unregister(b)
	reg.TrimAll(api.TrimSevere)
	assert.Len(t, a.levels, 2)
	assert.Len(t, b.levels, 1, "unregistered member no longer receives signals")
}

// A pool closing itself during a broadcast unregisters from inside Trim's
// caller context; the registry must not deadlock.
func TestRegistry_PoolTeardownDuringBroadcast(t *testing.T) {
	reg := control.NewRegistry()

	p, err := pool.NewBytePool(pool.Params{MaxSizeSoftCap: 1024, MaxSizeHardCap: 1024},
		pool.WithTrimRegistry(reg))
	require.NoError(t, err)
	require.Equal(t, 1, reg.Len())

	buf, err := p.Alloc(512)
	require.NoError(t, err)
	p.Release(buf)
	require.Equal(t, 512, p.Stats().FreeBytes)

	reg.TrimAll(api.TrimSevere)
	assert.Equal(t, 0, p.Stats().FreeBytes, "broadcast reached the pool")

	p.Close()
	assert.Equal(t, 0, reg.Len(), "pool unregistered itself on Close")
}

func TestMetricsTracker_Counters(t *testing.T) {
	mt := control.NewMetricsTracker()

	mt.OnAlloc(128)
	mt.OnAlloc(64)
	mt.OnFree(64)
	mt.OnValueReuse(128)
	mt.OnValueRelease(128)
	mt.OnHardCapMiss(1 << 20)

	snap := mt.Snapshot()
	assert.Equal(t, int64(2), snap["pool.alloc.count"])
	assert.Equal(t, int64(192), snap["pool.alloc.bytes"])
	assert.Equal(t, int64(1), snap["pool.free.count"])
	assert.Equal(t, int64(1), snap["pool.reuse.count"])
	assert.Equal(t, int64(1), snap["pool.release.count"])
	assert.Equal(t, int64(1), snap["pool.hardcap_miss.count"])
	assert.False(t, mt.Updated().IsZero())
}

func TestMetricsTracker_DrivenByPool(t *testing.T) {
	mt := control.NewMetricsTracker()
	p, err := pool.NewBytePool(pool.Params{MaxSizeSoftCap: 1024, MaxSizeHardCap: 1024},
		pool.WithStatsTracker(mt))
	require.NoError(t, err)

	buf, err := p.Alloc(256)
	require.NoError(t, err)
	p.Release(buf)
	buf, err = p.Alloc(256)
	require.NoError(t, err)
	p.Release(buf)

	snap := mt.Snapshot()
	assert.Equal(t, int64(1), snap["pool.alloc.count"])
	assert.Equal(t, int64(1), snap["pool.reuse.count"])
	assert.Equal(t, int64(2), snap["pool.release.count"])
}
