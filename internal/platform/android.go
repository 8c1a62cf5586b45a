//go:build android

package platform

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// AndroidPlatform implements Platform for Android devices.
type AndroidPlatform struct{}

// New creates a new Android platform instance.
func New() Platform {
	return &AndroidPlatform{}
}

// Name returns the platform label.
func (p *AndroidPlatform) Name() string { return "Android" }

// Version returns the Android release (Build.VERSION.RELEASE) via getprop.
func (p *AndroidPlatform) Version(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "getprop", "ro.build.version.release").Output()
	if err != nil {
		return "", fmt.Errorf("%w: getprop: %v", ErrUnavailable, err)
	}
	// getprop terminates its output with a newline; the value itself is untouched.
	return strings.TrimSuffix(string(out), "\n"), nil
}
