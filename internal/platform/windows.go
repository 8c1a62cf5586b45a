//go:build windows

// Windows-specific Platform implementation.
package platform

import (
	"context"
	"fmt"

	"golang.org/x/sys/windows"
)

// WindowsPlatform implements Platform for Windows systems.
type WindowsPlatform struct{}

// New creates a new Windows platform instance.
func New() Platform {
	return &WindowsPlatform{}
}

// Name returns the platform label.
func (p *WindowsPlatform) Name() string { return "Windows" }

// Version returns "major.minor.build" from RtlGetVersion, e.g. "10.0.22631".
// RtlGetVersion is not subject to the manifest-based version lie of GetVersionEx.
func (p *WindowsPlatform) Version(ctx context.Context) (string, error) {
	v := windows.RtlGetVersion()
	return fmt.Sprintf("%d.%d.%d", v.MajorVersion, v.MinorVersion, v.BuildNumber), nil
}
