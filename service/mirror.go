package service

import (
	"context"
	"time"

	"myregistry/domain"
	"myregistry/helpers"
	"myregistry/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// MirrorSync projects the lease store into an external Mirror. Writes happen on the
// Run goroutine, never under the store lock. The mirror is write-only from the
// registry's point of view.
type MirrorSync struct {
	store   interfaces.LeaseStore
	mirror  interfaces.Mirror[domain.ServiceInstance]
	queue   chan domain.Delta
	timeout time.Duration
	metrics *Metrics
	logger  log.Logger
}

// NewMirrorSync subscribes to store with a queue of queueSize deltas.
func NewMirrorSync(store interfaces.LeaseStore, mirror interfaces.Mirror[domain.ServiceInstance], queueSize int, metrics *Metrics, logger log.Logger) *MirrorSync {
	if queueSize <= 0 {
		queueSize = 1024
	}
	m := &MirrorSync{
		store:   helpers.NilPanic(store, "service.mirror.go: store is required"),
		mirror:  helpers.NilPanic(mirror, "service.mirror.go: mirror is required"),
		queue:   make(chan domain.Delta, queueSize),
		timeout: 3 * time.Second,
		metrics: helpers.NilPanic(metrics, "service.mirror.go: metrics is required"),
		logger:  log.With(helpers.NilPanic(logger, "service.mirror.go: logger is required"), "component", "mirror"),
	}
	m.store.Subscribe(m.enqueue)
	return m
}

func (m *MirrorSync) enqueue(d domain.Delta) {
	select {
	case m.queue <- d:
	default:
		m.metrics.MirrorDropped.Inc()
	}
}

// Run applies queued deltas until ctx is cancelled.
func (m *MirrorSync) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case d := <-m.queue:
			if err := m.apply(ctx, d); err != nil {
				level.Warn(m.logger).Log("msg", "mirror update failed", "op", d.Op, "key", d.Instance.Key(), "err", err)
			}
		}
	}
}

// Reconcile deletes mirrored instances that have no lease in the store, such as the
// keys left behind by a previous run. Returns the number of keys deleted.
func (m *MirrorSync) Reconcile(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	mirrored, err := m.mirror.ListAllValues(ctx)
	if err != nil {
		return 0, err
	}
	deleted := 0
	for _, inst := range mirrored {
		if _, ok := m.store.Get(inst.ServiceName, inst.InstanceID); ok {
			continue
		}
		if err := m.mirror.DeleteValue(ctx, MirrorKey(inst.Key())); err != nil {
			return deleted, err
		}
		deleted++
	}
	level.Info(m.logger).Log("msg", "mirror reconciled", "mirrored", len(mirrored), "deleted", deleted)
	return deleted, nil
}

func (m *MirrorSync) apply(ctx context.Context, d domain.Delta) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	key := MirrorKey(d.Instance.Key())
	switch d.Op {
	case domain.DeltaCancel, domain.DeltaEvict:
		return m.mirror.DeleteValue(ctx, key)
	default:
		return m.mirror.WriteValue(ctx, key, d.Instance, mirrorTTLMs(d))
	}
}

// MirrorKey is the mirror key of an instance: "<service>:<instance>".
func MirrorKey(key domain.InstanceKey) string {
	return key.ServiceName + ":" + key.InstanceID
}

// mirrorTTLMs lets a mirrored key outlive its lease by at most the time between the mutation and the write.
func mirrorTTLMs(d domain.Delta) int {
	if d.TTL < time.Millisecond {
		return 1
	}
	return int(d.TTL / time.Millisecond)
}
