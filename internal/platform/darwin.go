//go:build darwin && !ios

package platform

import "context"

// DarwinPlatform implements Platform for macOS.
type DarwinPlatform struct{}

// New creates a new macOS platform instance.
func New() Platform {
	return &DarwinPlatform{}
}

// Name returns the platform label.
func (p *DarwinPlatform) Name() string { return "macOS" }

// Version returns the macOS product version, e.g. "14.2.1".
func (p *DarwinPlatform) Version(ctx context.Context) (string, error) {
	return productVersion()
}
