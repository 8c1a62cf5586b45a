//go:build ios

package platform

import "context"

// IOSPlatform implements Platform for iOS devices.
type IOSPlatform struct{}

// New creates a new iOS platform instance.
func New() Platform {
	return &IOSPlatform{}
}

// Name returns the platform label.
func (p *IOSPlatform) Name() string { return "iOS" }

// Version returns the iOS system version, e.g. "17.4".
func (p *IOSPlatform) Version(ctx context.Context) (string, error) {
	return productVersion()
}
