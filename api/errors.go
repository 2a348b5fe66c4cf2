// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for hioload-mem.

package api

import (
	"errors"
	"fmt"
)

// Sentinel errors used across the library. Structured errors built with
// NewError unwrap to one of these, so callers can match with errors.Is.
var (
	ErrClosed        = errors.New("resource is closed")
	ErrOutOfRange    = errors.New("offset out of range")
	ErrInvalidConfig = errors.New("invalid pool configuration")
	ErrAllocFailed   = errors.New("native allocation failed")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeClosed
	ErrCodeOutOfRange
	ErrCodeInvalidConfig
	ErrCodeAllocFailed
	ErrCodeInternal
)

// sentinelFor maps an ErrorCode to its package-level sentinel.
func sentinelFor(code ErrorCode) error {
	switch code {
	case ErrCodeClosed:
		return ErrClosed
	case ErrCodeOutOfRange:
		return ErrOutOfRange
	case ErrCodeInvalidConfig:
		return ErrInvalidConfig
	case ErrCodeAllocFailed:
		return ErrAllocFailed
	default:
		return nil
	}
}

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// Unwrap exposes the sentinel matching the error's code.
func (e *Error) Unwrap() error {
	return sentinelFor(e.Code)
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}
