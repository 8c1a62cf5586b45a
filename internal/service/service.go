//go:build windows

// Package service runs the query server under the Windows Service Control Manager.
// From a terminal the server runs in the foreground instead.
package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sys/windows/svc"
)

const serviceName = "SysQuery"

// Service adapts a blocking run function to the SCM handler interface.
type Service struct {
	logger *zap.Logger
	run    func(ctx context.Context) error
}

// New creates a service wrapper. run must return once its context is cancelled.
func New(logger *zap.Logger, run func(ctx context.Context) error) *Service {
	return &Service{logger: logger, run: run}
}

// IsWindowsService reports whether the process was started by the SCM.
func IsWindowsService() bool {
	isService, err := svc.IsWindowsService()
	if err != nil {
		return false
	}
	return isService
}

// Run enters the SCM control loop.
func (s *Service) Run() error {
	return svc.Run(serviceName, s)
}

// Execute implements svc.Handler.
func (s *Service) Execute(args []string, r <-chan svc.ChangeRequest, changes chan<- svc.Status) (ssec bool, errno uint32) {
	changes <- svc.Status{State: svc.StartPending}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- s.run(ctx) }()

	changes <- svc.Status{
		State:   svc.Running,
		Accepts: svc.AcceptStop | svc.AcceptShutdown,
	}
	s.logger.Info("Windows service started")

	for {
		select {
		case err := <-done:
			if err != nil {
				s.logger.Error("Server exited", zap.Error(err))
				return false, 1
			}
			return false, 0
		case c := <-r:
			switch c.Cmd {
			case svc.Interrogate:
				changes <- c.CurrentStatus
			case svc.Stop, svc.Shutdown:
				s.logger.Info("Windows service stopping")
				changes <- svc.Status{State: svc.StopPending}
				cancel()
				if err := <-done; err != nil {
					s.logger.Error("Server shutdown failed", zap.Error(err))
				}
				return false, 0
			default:
				s.logger.Warn("Unexpected service control request",
					zap.Uint32("cmd", uint32(c.Cmd)))
			}
		}
	}
}
