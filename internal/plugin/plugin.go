// Package plugin binds the platform-version query to a method channel.
package plugin

import (
	"context"
	"fmt"

	"github.com/Guliveer/sysquery/internal/channel"
	"github.com/Guliveer/sysquery/internal/platform"
)

const (
	// ChannelName is the default channel the plugin registers on.
	ChannelName = "player_plugin"

	// MethodGetPlatformVersion returns "<label> <version>", e.g. "iOS 17.4".
	MethodGetPlatformVersion = "getPlatformVersion"

	// CodeUnavailable is the error code used when the OS version cannot be read.
	CodeUnavailable = "UNAVAILABLE"
)

// VersionHandler answers getPlatformVersion. It holds no mutable state, so a
// single instance serves any number of concurrent calls.
type VersionHandler struct {
	platform platform.Platform
}

// NewVersionHandler creates a handler reading from p.
func NewVersionHandler(p platform.Platform) *VersionHandler {
	return &VersionHandler{platform: p}
}

// Handle ignores call arguments and returns the platform version string.
func (h *VersionHandler) Handle(ctx context.Context, call channel.MethodCall) (interface{}, error) {
	return h.PlatformVersion(ctx)
}

// PlatformVersion returns the platform label and the OS release joined by a
// space. The release is passed through exactly as reported.
func (h *VersionHandler) PlatformVersion(ctx context.Context) (string, error) {
	version, err := h.platform.Version(ctx)
	if err != nil {
		return "", channel.NewError(CodeUnavailable, err.Error(), nil, err)
	}
	return h.platform.Name() + " " + version, nil
}

// Register binds the plugin's handlers on the named channel obtained from r.
// An empty name selects ChannelName.
func Register(r channel.Registrar, p platform.Platform, name string) error {
	if name == "" {
		name = ChannelName
	}
	ch := r.Channel(name)
	if err := ch.Register(MethodGetPlatformVersion, NewVersionHandler(p)); err != nil {
		return fmt.Errorf("registering plugin: %w", err)
	}
	return nil
}
