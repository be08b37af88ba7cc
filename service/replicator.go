package service

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"myregistry/domain"
	"myregistry/helpers"
	"myregistry/interfaces"

	"github.com/benbjohnson/clock"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// ReplicatorConfig tunes peer replication.
type ReplicatorConfig struct {
	// QueueSize bounds the deltas buffered per peer; overflow forces a full resync.
	QueueSize int
	// BatchSize bounds the deltas sent in one push.
	BatchSize int
	// RetryInterval is the pause after a failed push before the peer is synced again.
	RetryInterval time.Duration
	// PushTimeout bounds one Sync or Replicate call.
	PushTimeout time.Duration
}

// Replicator streams locally-originated mutations to peer registry nodes.
// Each peer goes DISCONNECTED -> SYNCING -> STREAMING; any failure drops it back to
// DISCONNECTED and a full lease set is pushed again before streaming resumes.
// Removals the peer missed meanwhile are kept as tombstones and pushed right after the
// lease set, so a deregistration is not lost while the peer is unreachable.
type Replicator struct {
	store   interfaces.LeaseStore
	peers   []*peer
	cfg     ReplicatorConfig
	clock   clock.Clock
	metrics *Metrics
	logger  log.Logger
}

type peer struct {
	client interfaces.PeerClient
	queue  chan domain.Delta
	resync atomic.Bool

	mu      sync.RWMutex
	state   domain.PeerState
	lastErr string

	tombMu     sync.Mutex
	tombstones map[domain.InstanceKey]domain.Delta
}

// NewReplicator subscribes to store and prepares one state machine per peer client.
func NewReplicator(store interfaces.LeaseStore, clients []interfaces.PeerClient, cfg ReplicatorConfig, clk clock.Clock, metrics *Metrics, logger log.Logger) *Replicator {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1024
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = 5 * time.Second
	}
	if cfg.PushTimeout <= 0 {
		cfg.PushTimeout = 5 * time.Second
	}
	r := &Replicator{
		store:   helpers.NilPanic(store, "service.replicator.go: store is required"),
		cfg:     cfg,
		clock:   helpers.NilPanic(clk, "service.replicator.go: clock is required"),
		metrics: helpers.NilPanic(metrics, "service.replicator.go: metrics is required"),
		logger:  log.With(helpers.NilPanic(logger, "service.replicator.go: logger is required"), "component", "replicator"),
	}
	for _, c := range clients {
		r.peers = append(r.peers, &peer{
			client:     helpers.NilPanic(c, "service.replicator.go: peer client is required"),
			queue:      make(chan domain.Delta, cfg.QueueSize),
			state:      domain.PeerDisconnected,
			tombstones: make(map[domain.InstanceKey]domain.Delta),
		})
	}
	if len(r.peers) > 0 {
		store.Subscribe(r.enqueue)
	}
	return r
}

// enqueue runs under the store lock: it never blocks.
func (r *Replicator) enqueue(d domain.Delta) {
	if d.Replicated {
		return
	}
	for _, p := range r.peers {
		select {
		case p.queue <- d:
		default:
			p.resync.Store(true)
			p.addTombstone(d)
		}
	}
}

// Peers reports the replication state of every peer.
func (r *Replicator) Peers() []domain.PeerStatus {
	out := make([]domain.PeerStatus, 0, len(r.peers))
	for _, p := range r.peers {
		p.mu.RLock()
		out = append(out, domain.PeerStatus{
			URL:       p.client.URL(),
			State:     p.state,
			LastError: p.lastErr,
			Pending:   len(p.queue),
		})
		p.mu.RUnlock()
	}
	return out
}

// Run drives every peer until ctx is cancelled.
func (r *Replicator) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, p := range r.peers {
		wg.Add(1)
		go func(p *peer) {
			defer wg.Done()
			r.runPeer(ctx, p)
		}(p)
	}
	wg.Wait()
}

func (r *Replicator) runPeer(ctx context.Context, p *peer) {
	logger := log.With(r.logger, "peer", p.client.URL())
	wait := false
	for {
		if ctx.Err() != nil {
			return
		}
		switch p.getState() {
		case domain.PeerDisconnected:
			if wait {
				select {
				case <-ctx.Done():
					return
				case <-r.clock.After(r.cfg.RetryInterval):
				}
			}
			wait = true
			p.setState(domain.PeerSyncing, "")

		case domain.PeerSyncing:
			if err := r.sync(ctx, p); err != nil {
				if ctx.Err() != nil {
					return
				}
				level.Warn(logger).Log("msg", "peer sync failed", "err", err)
				p.setState(domain.PeerDisconnected, err.Error())
				continue
			}
			level.Info(logger).Log("msg", "peer synced, streaming deltas")
			p.setState(domain.PeerStreaming, "")

		case domain.PeerStreaming:
			batch, ok := r.nextBatch(ctx, p)
			if !ok {
				return
			}
			if p.resync.Load() {
				level.Warn(logger).Log("msg", "peer queue overflowed, resyncing")
				wait = false
				p.setState(domain.PeerDisconnected, "queue overflow")
				continue
			}
			if err := r.push(ctx, p, batch); err != nil {
				if ctx.Err() != nil {
					return
				}
				level.Warn(logger).Log("msg", "peer replication failed", "err", err, "deltas", len(batch))
				p.setState(domain.PeerDisconnected, err.Error())
			}
		}
	}
}

// sync pushes the whole lease set, then the tombstones of keys absent from it.
// Deltas queued before the copy is taken are already part of it.
func (r *Replicator) sync(ctx context.Context, p *peer) error {
	p.resync.Store(false)
	for _, d := range drain(p.queue) {
		p.addTombstone(d)
	}
	leases := r.store.Leases()
	tombstones := p.takeTombstones(leases)

	pushCtx, cancel := context.WithTimeout(ctx, r.cfg.PushTimeout)
	defer cancel()
	err := p.client.Sync(pushCtx, leases)
	r.metrics.Replicated.WithLabelValues(p.client.URL(), "sync", resultLabel(err)).Inc()
	if err != nil {
		p.restoreTombstones(tombstones)
		return err
	}
	if len(tombstones) == 0 {
		return nil
	}
	err = p.client.Replicate(pushCtx, tombstones)
	r.metrics.Replicated.WithLabelValues(p.client.URL(), "tombstones", resultLabel(err)).Inc()
	if err != nil {
		p.restoreTombstones(tombstones)
	}
	return err
}

func (r *Replicator) push(ctx context.Context, p *peer, batch []domain.Delta) error {
	pushCtx, cancel := context.WithTimeout(ctx, r.cfg.PushTimeout)
	defer cancel()
	err := p.client.Replicate(pushCtx, batch)
	r.metrics.Replicated.WithLabelValues(p.client.URL(), "deltas", resultLabel(err)).Inc()
	if err != nil {
		p.restoreTombstones(batch)
	}
	return err
}

// nextBatch blocks for the first delta, then takes whatever else is queued up to BatchSize.
func (r *Replicator) nextBatch(ctx context.Context, p *peer) ([]domain.Delta, bool) {
	var first domain.Delta
	select {
	case <-ctx.Done():
		return nil, false
	case first = <-p.queue:
	}
	batch := []domain.Delta{first}
	for len(batch) < r.cfg.BatchSize {
		select {
		case d := <-p.queue:
			batch = append(batch, d)
		default:
			return batch, true
		}
	}
	return batch, true
}

func (p *peer) getState() domain.PeerState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

func (p *peer) setState(state domain.PeerState, lastErr string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = state
	if lastErr != "" || state == domain.PeerStreaming {
		p.lastErr = lastErr
	}
}

// addTombstone remembers a removal the peer has not received. Other ops are ignored.
func (p *peer) addTombstone(d domain.Delta) {
	if d.Op != domain.DeltaCancel && d.Op != domain.DeltaEvict {
		return
	}
	p.tombMu.Lock()
	defer p.tombMu.Unlock()
	p.tombstones[d.Instance.Key()] = d
}

func (p *peer) restoreTombstones(deltas []domain.Delta) {
	for _, d := range deltas {
		p.addTombstone(d)
	}
}

// takeTombstones empties the tombstone set and returns the removals of keys that have no lease in leases.
func (p *peer) takeTombstones(leases []domain.Lease) []domain.Delta {
	p.tombMu.Lock()
	defer p.tombMu.Unlock()
	if len(p.tombstones) == 0 {
		return nil
	}
	for _, l := range leases {
		delete(p.tombstones, l.Instance.Key())
	}
	out := make([]domain.Delta, 0, len(p.tombstones))
	for _, d := range p.tombstones {
		out = append(out, d)
	}
	p.tombstones = make(map[domain.InstanceKey]domain.Delta)
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out
}

func drain(queue chan domain.Delta) []domain.Delta {
	var out []domain.Delta
	for {
		select {
		case d := <-queue:
			out = append(out, d)
		default:
			return out
		}
	}
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
