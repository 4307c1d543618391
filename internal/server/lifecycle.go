// Package server manages the startup and shutdown ordering of the
// service's long-running components.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

// Service is a long-running component with ordered startup and shutdown.
type Service interface {
	// Name identifies the service in logs.
	Name() string
	// Start begins the service. It must not block.
	Start(ctx context.Context) error
	// Stop shuts the service down, honoring the context deadline.
	Stop(ctx context.Context) error
}

// FuncService adapts start/stop closures into a Service.
type FuncService struct {
	ServiceName string
	OnStart     func(ctx context.Context) error
	OnStop      func(ctx context.Context) error
}

func (f *FuncService) Name() string { return f.ServiceName }

func (f *FuncService) Start(ctx context.Context) error {
	if f.OnStart == nil {
		return nil
	}
	return f.OnStart(ctx)
}

func (f *FuncService) Stop(ctx context.Context) error {
	if f.OnStop == nil {
		return nil
	}
	return f.OnStop(ctx)
}

// Lifecycle starts services in registration order and stops them in
// reverse order.
type Lifecycle struct {
	services []Service
	logger   *zap.Logger
}

// NewLifecycle creates a Lifecycle with no registered services.
func NewLifecycle(logger *zap.Logger) *Lifecycle {
	return &Lifecycle{logger: logger}
}

// Register appends svc to the startup order.
func (l *Lifecycle) Register(svc Service) {
	l.services = append(l.services, svc)
}

// Start starts every registered service in order. On failure it stops the
// services already started, in reverse order, before returning the error.
func (l *Lifecycle) Start(ctx context.Context) error {
	for i, svc := range l.services {
		l.logger.Info("starting service", zap.String("service", svc.Name()))
		if err := svc.Start(ctx); err != nil {
			l.logger.Error("service failed to start",
				zap.String("service", svc.Name()),
				zap.Error(err))
			l.stopFrom(ctx, i-1)
			return fmt.Errorf("starting service %q: %w", svc.Name(), err)
		}
	}
	return nil
}

// Stop stops every registered service in reverse order. All services are
// stopped even if some return errors; the first error is returned.
func (l *Lifecycle) Stop(ctx context.Context) error {
	return l.stopFrom(ctx, len(l.services)-1)
}

func (l *Lifecycle) stopFrom(ctx context.Context, idx int) error {
	var firstErr error
	for i := idx; i >= 0; i-- {
		svc := l.services[i]
		l.logger.Info("stopping service", zap.String("service", svc.Name()))
		if err := svc.Stop(ctx); err != nil {
			l.logger.Error("service failed to stop",
				zap.String("service", svc.Name()),
				zap.Error(err))
			if firstErr == nil {
				firstErr = fmt.Errorf("stopping service %q: %w", svc.Name(), err)
			}
		}
	}
	return firstErr
}

// Run starts all services, blocks until the context is cancelled or a
// SIGINT/SIGTERM arrives, then stops them.
func (l *Lifecycle) Run(ctx context.Context) error {
	if err := l.Start(ctx); err != nil {
		return err
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sig)

	select {
	case s := <-sig:
		l.logger.Info("received signal, shutting down", zap.String("signal", s.String()))
	case <-ctx.Done():
		l.logger.Info("context cancelled, shutting down")
	}

	return l.Stop(context.Background())
}
