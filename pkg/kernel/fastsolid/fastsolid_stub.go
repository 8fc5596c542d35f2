//go:build !fastunion

// Package fastsolid provides the union-lite fast-preview kernel backend.
// When the "fastunion" build tag is not set, this stub package is compiled
// instead, returning an error from New().
//
// Build with: go build -tags=fastunion
package fastsolid

import (
	"errors"

	"github.com/chazu/csgforge/pkg/kernel"
)

// New returns an error indicating the fast-preview backend was not built in.
// Build with -tags=fastunion to enable.
func New() (kernel.Kernel, error) {
	return nil, errors.New("fastsolid kernel not available: build with -tags=fastunion")
}
