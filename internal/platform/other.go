//go:build !linux && !darwin && !windows

// Fallback Platform for BSDs, Solaris, AIX and friends.
// gopsutil resolves the release where it can.
package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/host"
)

// GenericPlatform labels itself with the GOOS name.
type GenericPlatform struct{}

// New creates a platform instance for the current GOOS.
func New() Platform {
	return &GenericPlatform{}
}

// Name returns runtime.GOOS.
func (p *GenericPlatform) Name() string { return runtime.GOOS }

// Version returns the platform version reported by gopsutil.
func (p *GenericPlatform) Version(ctx context.Context) (string, error) {
	_, _, version, err := host.PlatformInformationWithContext(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return version, nil
}
