// File: config/params.go
// Package config loads pool parameters from TOML files.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Recognized keys:
//
//	max_size_soft_cap = 4194304
//	max_size_hard_cap = 16777216
//	[bucket_sizes]
//	"4096" = 64
//	"16384" = 32
//
// Absent keys fall back to pool.DefaultParams(); absent bucket entries
// are unbounded.

package config

import (
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/momentics/hioload-mem/api"
	"github.com/momentics/hioload-mem/pool"
)

type fileParams struct {
	MaxSizeSoftCap *int           `toml:"max_size_soft_cap"`
	MaxSizeHardCap *int           `toml:"max_size_hard_cap"`
	BucketSizes    map[string]int `toml:"bucket_sizes"`
}

// LoadParams reads and validates pool parameters from a TOML file.
func LoadParams(path string) (pool.Params, error) {
	var fp fileParams
	if _, err := toml.DecodeFile(path, &fp); err != nil {
		return pool.Params{}, api.NewError(api.ErrCodeInvalidConfig, "config: cannot parse parameters file").
			WithContext("path", path).
			WithContext("cause", err.Error())
	}
	return paramsFrom(fp, path)
}

// ParseParams is LoadParams over in-memory TOML, used by tests and by
// pipelines that ship configuration through other channels.
func ParseParams(data string) (pool.Params, error) {
	var fp fileParams
	if _, err := toml.Decode(data, &fp); err != nil {
		return pool.Params{}, api.NewError(api.ErrCodeInvalidConfig, "config: cannot parse parameters").
			WithContext("cause", err.Error())
	}
	return paramsFrom(fp, "")
}

func paramsFrom(fp fileParams, path string) (pool.Params, error) {
	p := pool.DefaultParams()
	if fp.MaxSizeSoftCap != nil {
		p.MaxSizeSoftCap = *fp.MaxSizeSoftCap
	}
	if fp.MaxSizeHardCap != nil {
		p.MaxSizeHardCap = *fp.MaxSizeHardCap
	}
	if len(fp.BucketSizes) > 0 {
		p.BucketSizes = make(map[int]int, len(fp.BucketSizes))
		for key, count := range fp.BucketSizes {
			size, err := strconv.Atoi(key)
			if err != nil {
				return pool.Params{}, api.NewError(api.ErrCodeInvalidConfig, "config: bucket size key is not an integer").
					WithContext("key", key).
					WithContext("path", path)
			}
			p.BucketSizes[size] = count
		}
	}
	if err := p.Validate(); err != nil {
		return pool.Params{}, err
	}
	return p, nil
}
