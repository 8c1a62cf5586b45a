//go:build !windows

// Package service is a foreground stub outside Windows.
package service

import (
	"context"

	"go.uber.org/zap"
)

// Service runs its function directly on non-Windows platforms.
type Service struct {
	logger *zap.Logger
	run    func(ctx context.Context) error
}

// New creates a service wrapper.
func New(logger *zap.Logger, run func(ctx context.Context) error) *Service {
	return &Service{logger: logger, run: run}
}

// IsWindowsService always returns false on non-Windows platforms.
func IsWindowsService() bool {
	return false
}

// Run executes the function with a background context.
func (s *Service) Run() error {
	return s.run(context.Background())
}
