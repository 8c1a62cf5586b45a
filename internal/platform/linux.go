//go:build linux && !android

package platform

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/host"
)

// LinuxPlatform implements Platform for Linux distributions.
type LinuxPlatform struct{}

// New creates a new Linux platform instance.
func New() Platform {
	return &LinuxPlatform{}
}

// Name returns the platform label.
func (p *LinuxPlatform) Name() string { return "Linux" }

// Version returns the distribution version (VERSION_ID from os-release,
// e.g. "22.04") as resolved by gopsutil.
func (p *LinuxPlatform) Version(ctx context.Context) (string, error) {
	_, _, version, err := host.PlatformInformationWithContext(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return version, nil
}
