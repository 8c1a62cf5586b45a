package plugin

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Guliveer/sysquery/internal/channel"
	"github.com/Guliveer/sysquery/internal/platform"
)

func TestVersionHandler_ConcatenatesLabelAndVersion(t *testing.T) {
	h := NewVersionHandler(platform.Static{Label: "iOS", Release: "17.4"})

	got, err := h.Handle(context.Background(), channel.MethodCall{Method: MethodGetPlatformVersion})
	require.NoError(t, err)
	assert.Equal(t, "iOS 17.4", got)
}

func TestVersionHandler_IgnoresArguments(t *testing.T) {
	h := NewVersionHandler(platform.Static{Label: "iOS", Release: "17.4"})
	ctx := context.Background()

	want, err := h.Handle(ctx, channel.MethodCall{Method: MethodGetPlatformVersion})
	require.NoError(t, err)

	for _, args := range []interface{}{"extra", 42, map[string]interface{}{"k": "v"}, []interface{}{1, 2}} {
		got, err := h.Handle(ctx, channel.MethodCall{Method: MethodGetPlatformVersion, Arguments: args})
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestVersionHandler_PassesReleaseThrough(t *testing.T) {
	tests := []struct {
		release string
		want    string
	}{
		{"17.4", "iOS 17.4"},
		{"17.4.1 (21E236)", "iOS 17.4.1 (21E236)"},
		{" 16.0 ", "iOS  16.0 "},
		{"", "iOS "},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			h := NewVersionHandler(platform.Static{Label: "iOS", Release: tt.release})
			got, err := h.PlatformVersion(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVersionHandler_Unavailable(t *testing.T) {
	cause := errors.Join(platform.ErrUnavailable, errors.New("sysctl failed"))
	h := NewVersionHandler(platform.Static{Label: "iOS", Err: cause})

	_, err := h.Handle(context.Background(), channel.MethodCall{Method: MethodGetPlatformVersion})
	var ce *channel.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, CodeUnavailable, ce.Code)
	assert.ErrorIs(t, err, platform.ErrUnavailable)
}

func TestVersionHandler_HostPlatform(t *testing.T) {
	p := platform.New()
	h := NewVersionHandler(p)
	ctx := context.Background()

	first, err := h.PlatformVersion(ctx)
	if errors.Is(err, platform.ErrUnavailable) {
		t.Skipf("host does not report a version: %v", err)
	}
	require.NoError(t, err)

	assert.NotEmpty(t, first)
	assert.True(t, strings.HasPrefix(first, p.Name()+" "), "%q lacks label prefix", first)

	second, err := h.PlatformVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestVersionHandler_Concurrent(t *testing.T) {
	h := NewVersionHandler(platform.Static{Label: "iOS", Release: "17.4"})

	var wg sync.WaitGroup
	results := make([]string, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = h.PlatformVersion(context.Background())
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, "iOS 17.4", r)
	}
}

func TestRegister(t *testing.T) {
	m := channel.NewMessenger(zap.NewNop())
	p := platform.Static{Label: "iOS", Release: "17.4"}

	require.NoError(t, Register(m, p, ""))

	got, err := m.Send(context.Background(), ChannelName, channel.MethodCall{Method: MethodGetPlatformVersion})
	require.NoError(t, err)
	assert.Equal(t, "iOS 17.4", got)

	_, err = m.Send(context.Background(), ChannelName, channel.MethodCall{Method: "play"})
	assert.ErrorIs(t, err, channel.ErrNotImplemented)

	assert.ErrorIs(t, Register(m, p, ChannelName), channel.ErrDuplicateMethod)

	require.NoError(t, Register(m, p, "other"))
	assert.Equal(t, []string{"other", ChannelName}, m.Names())
}
