// Package registrar keeps one instance registered with a registry node: it registers,
// heartbeats every interval, registers again when the registry has lost the lease and
// deregisters on Stop.
package registrar

import (
	"context"
	"sync"
	"time"

	"myregistry/domain"
	"myregistry/helpers"
	"myregistry/interfaces"

	"github.com/benbjohnson/clock"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Registrar is the client side of the heartbeat protocol.
type Registrar struct {
	client   interfaces.RegistryClient
	instance domain.ServiceInstance
	ttl      time.Duration
	interval time.Duration
	clock    clock.Clock
	logger   log.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a registrar for instance. interval must be positive and, when ttl is set,
// shorter than ttl, otherwise the lease would expire between two heartbeats.
func New(client interfaces.RegistryClient, instance domain.ServiceInstance, ttl, interval time.Duration, clk clock.Clock, logger log.Logger) *Registrar {
	if interval <= 0 {
		panic("registrar.registrar.go: interval must be positive")
	}
	if ttl > 0 && interval >= ttl {
		panic("registrar.registrar.go: interval must be shorter than ttl")
	}
	return &Registrar{
		client:   helpers.NilPanic(client, "registrar.registrar.go: client is required"),
		instance: instance,
		ttl:      ttl,
		interval: interval,
		clock:    helpers.NilPanic(clk, "registrar.registrar.go: clock is required"),
		logger: log.With(helpers.NilPanic(logger, "registrar.registrar.go: logger is required"),
			"component", "registrar", "service", instance.ServiceName, "instance", instance.InstanceID),
	}
}

// Start registers the instance and starts the heartbeat loop. A failed registration is
// retried on the next tick. Calling Start on a running registrar has no effect.
func (r *Registrar) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return
	}

	ctx, r.cancel = context.WithCancel(ctx)
	r.done = make(chan struct{})
	ticker := r.clock.Ticker(r.interval)
	registered := r.register(ctx)
	go r.run(ctx, ticker, registered, r.done)
}

// Stop ends the heartbeat loop and deregisters the instance.
func (r *Registrar) Stop(ctx context.Context) error {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()

	if cancel != nil {
		cancel()
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if err := r.client.Deregister(ctx, r.instance.ServiceName, r.instance.InstanceID); err != nil {
		level.Warn(r.logger).Log("msg", "deregistration failed", "err", err)
		return err
	}
	level.Info(r.logger).Log("msg", "instance deregistered")
	return nil
}

func (r *Registrar) run(ctx context.Context, ticker *clock.Ticker, registered bool, done chan struct{}) {
	defer close(done)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			registered = r.tick(ctx, registered)
		}
	}
}

// tick returns whether the instance is believed to be registered after this step.
func (r *Registrar) tick(ctx context.Context, registered bool) bool {
	if !registered {
		return r.register(ctx)
	}

	callCtx, cancel := context.WithTimeout(ctx, r.interval)
	defer cancel()
	result, err := r.client.Heartbeat(callCtx, r.instance.ServiceName, r.instance.InstanceID)
	switch {
	case err != nil:
		level.Warn(r.logger).Log("msg", "heartbeat failed", "err", err)
		return true
	case result == domain.HeartbeatNotFound:
		level.Info(r.logger).Log("msg", "lease lost, registering again")
		return r.register(ctx)
	default:
		return true
	}
}

func (r *Registrar) register(ctx context.Context) bool {
	callCtx, cancel := context.WithTimeout(ctx, r.interval)
	defer cancel()
	if err := r.client.Register(callCtx, r.instance, r.ttl); err != nil {
		level.Warn(r.logger).Log("msg", "registration failed", "err", err)
		return false
	}
	level.Info(r.logger).Log("msg", "instance registered", "address", r.instance.Address, "ttl", r.ttl)
	return true
}
