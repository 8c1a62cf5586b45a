// Package platform provides an OS abstraction layer for reading the host
// operating system's release identifier.
// Each supported OS implements the Platform interface; New picks the one
// matching the build target.
package platform

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when the environment cannot report a version.
var ErrUnavailable = errors.New("platform version unavailable")

// Platform reports the host OS label and version.
type Platform interface {
	// Name returns the short platform label (iOS, Android, macOS, Linux, Windows).
	Name() string

	// Version returns the OS release exactly as the environment reports it.
	// It is read on every call and never cached.
	Version(ctx context.Context) (string, error)
}

// Static is a Platform with a fixed label and release, used to stand in for
// the host environment.
type Static struct {
	Label   string
	Release string
	Err     error
}

// Name returns the configured label.
func (s Static) Name() string { return s.Label }

// Version returns the configured release, or Err if set.
func (s Static) Version(ctx context.Context) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	return s.Release, nil
}
