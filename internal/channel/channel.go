// Package channel implements named method channels: dispatch tables mapping a
// method name to a Handler, the Messenger that owns them, and the JSON codec
// used to carry calls and replies across a transport.
package channel

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

var (
	// ErrNotImplemented is returned when a channel has no handler for a method.
	ErrNotImplemented = errors.New("method not implemented")

	// ErrDuplicateMethod is returned when a method is registered twice.
	ErrDuplicateMethod = errors.New("method already registered")

	// ErrUnknownChannel is returned when a message targets a channel nobody registered.
	ErrUnknownChannel = errors.New("unknown channel")
)

// MethodCall is a single request delivered to a channel.
type MethodCall struct {
	Method    string
	Arguments interface{}
}

// Handler answers method calls.
type Handler interface {
	Handle(ctx context.Context, call MethodCall) (interface{}, error)
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, call MethodCall) (interface{}, error)

// Handle calls f(ctx, call).
func (f HandlerFunc) Handle(ctx context.Context, call MethodCall) (interface{}, error) {
	return f(ctx, call)
}

// Channel is a named dispatch table of method handlers.
// Registration and invocation are safe for concurrent use.
type Channel struct {
	name     string
	logger   *zap.Logger
	mu       sync.RWMutex
	handlers map[string]Handler
}

// New creates an empty channel with the given name.
func New(name string, logger *zap.Logger) *Channel {
	return &Channel{
		name:     name,
		logger:   logger,
		handlers: make(map[string]Handler),
	}
}

// Name returns the channel name.
func (c *Channel) Name() string { return c.name }

// Register binds h to method.
func (c *Channel) Register(method string, h Handler) error {
	if method == "" {
		return fmt.Errorf("channel %s: empty method name", c.name)
	}
	if h == nil {
		return fmt.Errorf("channel %s: nil handler for %s", c.name, method)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.handlers[method]; ok {
		return fmt.Errorf("channel %s: %s: %w", c.name, method, ErrDuplicateMethod)
	}
	c.handlers[method] = h
	c.logger.Debug("Registered method",
		zap.String("channel", c.name),
		zap.String("method", method))
	return nil
}

// Invoke routes call to its handler. Unknown methods yield ErrNotImplemented.
// Handler errors are returned as *Error so they can be carried on the wire.
func (c *Channel) Invoke(ctx context.Context, call MethodCall) (interface{}, error) {
	c.mu.RLock()
	h, ok := c.handlers[call.Method]
	c.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("channel %s: %s: %w", c.name, call.Method, ErrNotImplemented)
	}

	result, err := h.Handle(ctx, call)
	if err != nil {
		c.logger.Debug("Method failed",
			zap.String("channel", c.name),
			zap.String("method", call.Method),
			zap.Error(err))
		return nil, AsError(err)
	}
	return result, nil
}

// Methods returns the registered method names in sorted order.
func (c *Channel) Methods() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	methods := make([]string, 0, len(c.handlers))
	for m := range c.handlers {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	return methods
}
