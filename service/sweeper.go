package service

import (
	"context"
	"math"
	"time"

	"myregistry/domain"
	"myregistry/helpers"
	"myregistry/interfaces"

	"github.com/benbjohnson/clock"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Sweeper periodically evicts expired leases. An expired lease may stay visible for
// up to one interval after its deadline.
type Sweeper struct {
	store     interfaces.LeaseStore
	interval  time.Duration
	threshold float64
	clock     clock.Clock
	metrics   *Metrics
	logger    log.Logger
}

// NewSweeper creates a sweeper ticking every interval on clk.
//
// threshold enables self-preservation when > 0: one sweep evicts at most
// floor(size * (1 - threshold)) leases, so a network partition that silences most
// clients at once does not empty the registry. Zero evicts every expired lease.
func NewSweeper(store interfaces.LeaseStore, interval time.Duration, threshold float64, clk clock.Clock, metrics *Metrics, logger log.Logger) *Sweeper {
	if interval <= 0 {
		panic("service.sweeper.go: interval must be positive")
	}
	if threshold < 0 || threshold >= 1 {
		panic("service.sweeper.go: threshold must be in [0, 1)")
	}
	return &Sweeper{
		store:     helpers.NilPanic(store, "service.sweeper.go: store is required"),
		interval:  interval,
		threshold: threshold,
		clock:     helpers.NilPanic(clk, "service.sweeper.go: clock is required"),
		metrics:   helpers.NilPanic(metrics, "service.sweeper.go: metrics is required"),
		logger:    log.With(helpers.NilPanic(logger, "service.sweeper.go: logger is required"), "component", "sweeper"),
	}
}

// Run sweeps on every tick until ctx is cancelled. No sweep starts after Run returns.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := s.clock.Ticker(s.interval)
	defer ticker.Stop()

	level.Info(s.logger).Log("msg", "sweeper started", "interval", s.interval, "self_preservation_threshold", s.threshold)
	for {
		select {
		case <-ctx.Done():
			level.Info(s.logger).Log("msg", "sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep(s.clock.Now())
		}
	}
}

// Sweep evicts the leases expired at now and returns them. With nothing expired it has no effect.
func (s *Sweeper) Sweep(now time.Time) []domain.ServiceInstance {
	limit := 0
	if s.threshold > 0 {
		limit = int(math.Floor(float64(s.store.Len()) * (1 - s.threshold)))
		if limit == 0 {
			if expired := len(s.store.Expired(now)); expired > 0 {
				s.metrics.SuppressedEvict.Add(float64(expired))
				level.Warn(s.logger).Log("msg", "self-preservation: eviction suppressed", "expired", expired)
			}
			return nil
		}
	}

	evicted := s.store.EvictExpired(now, limit)
	if len(evicted) == 0 {
		return nil
	}
	s.metrics.Evictions.Add(float64(len(evicted)))
	for _, inst := range evicted {
		level.Info(s.logger).Log(
			"msg", "lease expired",
			"service", inst.ServiceName,
			"instance", inst.InstanceID,
			"last_renewal", inst.LastRenewal,
		)
	}
	if limit > 0 {
		if remaining := len(s.store.Expired(now)); remaining > 0 {
			s.metrics.SuppressedEvict.Add(float64(remaining))
			level.Warn(s.logger).Log("msg", "self-preservation: eviction capped", "evicted", len(evicted), "kept", remaining)
		}
	}
	return evicted
}
