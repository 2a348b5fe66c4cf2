// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime control plane for the pooling core: the memory-pressure trim
// registry the surrounding pipeline signals into, and a metrics-backed
// stats tracker for observability.
package control
