package channel

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Registrar hands out channels to plugins at registration time.
type Registrar interface {
	Channel(name string) *Channel
}

// Messenger owns every named channel and routes messages to them.
type Messenger struct {
	logger   *zap.Logger
	mu       sync.RWMutex
	channels map[string]*Channel
}

// NewMessenger creates a messenger with no channels.
func NewMessenger(logger *zap.Logger) *Messenger {
	return &Messenger{
		logger:   logger,
		channels: make(map[string]*Channel),
	}
}

// Channel returns the channel with the given name, creating it on first use.
func (m *Messenger) Channel(name string) *Channel {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.channels[name]; ok {
		return c
	}
	c := New(name, m.logger)
	m.channels[name] = c
	m.logger.Debug("Created channel", zap.String("channel", name))
	return c
}

// Lookup returns an existing channel without creating one.
func (m *Messenger) Lookup(name string) (*Channel, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.channels[name]
	return c, ok
}

// Names returns all channel names in sorted order.
func (m *Messenger) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.channels))
	for n := range m.channels {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Send delivers call to the named channel.
func (m *Messenger) Send(ctx context.Context, name string, call MethodCall) (interface{}, error) {
	c, ok := m.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrUnknownChannel)
	}
	return c.Invoke(ctx, call)
}
