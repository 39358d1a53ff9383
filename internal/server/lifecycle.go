// Package server runs the process's long-lived components and tears them
// down together: when any component returns, the context is cancelled or a
// termination signal arrives, the rest are stopped in reverse order.
package server

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Service is a long-running component.
type Service interface {
	// Start runs the component and blocks until it finishes or Stop is called.
	Start() error
	// Stop asks a running Start to return. It must be safe to call after
	// Start has already returned.
	Stop()
}

// FuncService adapts a start/stop function pair into the Service interface.
type FuncService struct {
	StartFn func() error
	StopFn  func()
}

// Start calls the underlying start function.
func (f *FuncService) Start() error { return f.StartFn() }

// Stop calls the underlying stop function.
func (f *FuncService) Stop() { f.StopFn() }

// Lifecycle owns a set of named services.
type Lifecycle struct {
	logger   *zap.Logger
	services []namedService
	mu       sync.Mutex
}

type namedService struct {
	name    string
	service Service
}

type exit struct {
	index int
	err   error
}

// NewLifecycle creates a new Lifecycle manager.
//
// Precondition: logger must be non-nil.
func NewLifecycle(logger *zap.Logger) *Lifecycle {
	return &Lifecycle{logger: logger}
}

// Add registers a named service. Services start in the order added.
//
// Precondition: name must be non-empty; svc must be non-nil.
func (l *Lifecycle) Add(name string, svc Service) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.services = append(l.services, namedService{name: name, service: svc})
}

// Run starts every service and blocks until the first one returns, ctx is
// done, or SIGINT/SIGTERM arrives. Services still running are then stopped
// in reverse order and awaited.
//
// Postcondition: every service has returned; the result joins all service
// errors.
func (l *Lifecycle) Run(ctx context.Context) error {
	l.mu.Lock()
	services := append([]namedService(nil), l.services...)
	l.mu.Unlock()
	if len(services) == 0 {
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	exits := make(chan exit, len(services))
	for i, ns := range services {
		i, ns := i, ns
		go func() {
			l.logger.Debug("starting service", zap.String("service", ns.name))
			exits <- exit{index: i, err: ns.service.Start()}
		}()
	}
	l.logger.Info("services started",
		zap.Int("count", len(services)),
		zap.Duration("startup", time.Since(start)),
	)

	returned := make([]bool, len(services))
	var errs []error
	record := func(e exit) {
		returned[e.index] = true
		name := services[e.index].name
		if e.err != nil {
			l.logger.Error("service failed", zap.String("service", name), zap.Error(e.err))
			errs = append(errs, fmt.Errorf("service %s: %w", name, e.err))
			return
		}
		l.logger.Info("service returned", zap.String("service", name))
	}

	select {
	case e := <-exits:
		record(e)
	case <-ctx.Done():
		l.logger.Info("shutting down", zap.NamedError("cause", context.Cause(ctx)))
	}

	pending := 0
	for i := len(services) - 1; i >= 0; i-- {
		if returned[i] {
			continue
		}
		l.logger.Debug("stopping service", zap.String("service", services[i].name))
		services[i].service.Stop()
		pending++
	}
	for ; pending > 0; pending-- {
		record(<-exits)
	}

	l.logger.Info("shutdown complete", zap.Duration("uptime", time.Since(start)))
	return errors.Join(errs...)
}
