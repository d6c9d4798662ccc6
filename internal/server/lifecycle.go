// Package server runs long-lived simulation services with graceful shutdown
// on SIGINT or SIGTERM.
package server

import (
	"context"
	"fmt"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Service is a long-running component that can be started and stopped.
type Service interface {
	// Start runs the service until ctx is cancelled, Stop is called, or its
	// work is finished. A nil return means the service finished cleanly.
	Start(ctx context.Context) error
	// Stop asks a running service to return from Start.
	Stop()
}

// FuncService adapts a start/stop function pair into the Service interface.
type FuncService struct {
	StartFn func(ctx context.Context) error
	StopFn  func()
}

// Start calls the underlying start function.
func (f *FuncService) Start(ctx context.Context) error { return f.StartFn(ctx) }

// Stop calls the underlying stop function, if any.
func (f *FuncService) Stop() {
	if f.StopFn != nil {
		f.StopFn()
	}
}

// Lifecycle manages the startup and shutdown of multiple services.
// Services are started in order and stopped in reverse order.
type Lifecycle struct {
	logger   *zap.Logger
	services []namedService
	mu       sync.Mutex
}

type namedService struct {
	name    string
	service Service
}

// NewLifecycle creates a new Lifecycle manager.
//
// Precondition: logger must be non-nil.
func NewLifecycle(logger *zap.Logger) *Lifecycle {
	if logger == nil {
		panic("server.NewLifecycle: logger must not be nil")
	}
	return &Lifecycle{
		logger: logger,
	}
}

// Add registers a named service for lifecycle management.
// Services are started in the order they are added.
//
// Precondition: name must be non-empty; svc must be non-nil.
func (l *Lifecycle) Add(name string, svc Service) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.services = append(l.services, namedService{name: name, service: svc})
}

// Run starts all services and blocks until a termination signal arrives,
// ctx is cancelled, a service fails, or every service has finished. Services
// are then stopped in reverse order.
//
// Postcondition: every Start has returned; the first service error, if any,
// is returned.
func (l *Lifecycle) Run(ctx context.Context) error {
	start := time.Now()

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	l.mu.Lock()
	services := append([]namedService(nil), l.services...)
	l.mu.Unlock()

	errCh := make(chan error, len(services))
	var wg sync.WaitGroup
	for _, ns := range services {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.logger.Info("starting service", zap.String("service", ns.name))
			svcStart := time.Now()
			if err := ns.service.Start(ctx); err != nil {
				l.logger.Error("service failed",
					zap.String("service", ns.name),
					zap.Error(err),
					zap.Duration("uptime", time.Since(svcStart)),
				)
				errCh <- fmt.Errorf("service %s: %w", ns.name, err)
				return
			}
			l.logger.Info("service finished",
				zap.String("service", ns.name),
				zap.Duration("uptime", time.Since(svcStart)),
			)
		}()
	}
	finished := make(chan struct{})
	go func() {
		wg.Wait()
		close(finished)
	}()

	l.logger.Info("all services started",
		zap.Int("count", len(services)),
		zap.Duration("startup", time.Since(start)),
	)

	var firstErr error
	select {
	case <-ctx.Done():
		l.logger.Info("context cancelled, shutting down", zap.Error(context.Cause(ctx)))
	case firstErr = <-errCh:
		l.logger.Error("service error, shutting down", zap.Error(firstErr))
	case <-finished:
		l.logger.Info("all services finished")
	}

	cancel()
	shutdown(l.logger, services)
	<-finished

	if firstErr == nil {
		select {
		case firstErr = <-errCh:
		default:
		}
	}
	l.logger.Info("shutdown complete",
		zap.Duration("total_uptime", time.Since(start)),
	)
	return firstErr
}

func shutdown(logger *zap.Logger, services []namedService) {
	shutdownStart := time.Now()
	for i := len(services) - 1; i >= 0; i-- {
		ns := services[i]
		svcStart := time.Now()
		logger.Info("stopping service", zap.String("service", ns.name))
		ns.service.Stop()
		logger.Info("service stopped",
			zap.String("service", ns.name),
			zap.Duration("elapsed", time.Since(svcStart)),
		)
	}
	logger.Info("all services stopped",
		zap.Duration("shutdown_elapsed", time.Since(shutdownStart)),
	)
}
