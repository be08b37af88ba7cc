package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"myregistry/adapters/memstore"
	"myregistry/domain"
	"myregistry/interfaces"
	"myregistry/interfaces/mock"

	"github.com/benbjohnson/clock"
	"github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPeerURL = "http://peer-b:8080"

func newPeerClient() *mock.PeerClientMock {
	return &mock.PeerClientMock{
		URLFunc: func() string { return testPeerURL },
	}
}

// startReplicator runs r until the test ends.
func startReplicator(t *testing.T, r *Replicator) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		r.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Error("replicator did not stop")
		}
	})
}

func peerState(r *Replicator) domain.PeerStatus {
	return r.Peers()[0]
}

func TestNewReplicator_Panics(t *testing.T) {
	assert.PanicsWithValue(t, "service.replicator.go: store is required", func() {
		NewReplicator(nil, nil, ReplicatorConfig{}, clock.NewMock(), NewMetrics(), log.NewNopLogger())
	})
	assert.PanicsWithValue(t, "service.replicator.go: peer client is required", func() {
		NewReplicator(memstore.NewLeaseStore(), []interfaces.PeerClient{nil}, ReplicatorConfig{}, clock.NewMock(), NewMetrics(), log.NewNopLogger())
	})
}

func TestReplicator_NoPeers(t *testing.T) {
	r := NewReplicator(memstore.NewLeaseStore(), nil, ReplicatorConfig{}, clock.NewMock(), NewMetrics(), log.NewNopLogger())
	assert.Empty(t, r.Peers())

	done := make(chan struct{})
	go func() {
		defer close(done)
		r.Run(context.Background())
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "Run without peers must return immediately")
	}
}

func TestReplicator_SyncThenStream(t *testing.T) {
	store := memstore.NewLeaseStore()
	store.Put(instance("orders", "1"), 30*time.Second, t0)

	client := newPeerClient()
	metrics := NewMetrics()
	r := NewReplicator(store, []interfaces.PeerClient{client}, ReplicatorConfig{}, clock.NewMock(), metrics, log.NewNopLogger())
	assert.Equal(t, domain.PeerDisconnected, peerState(r).State)

	startReplicator(t, r)

	assert.Eventually(t, func() bool { return peerState(r).State == domain.PeerStreaming }, time.Second, 5*time.Millisecond)
	syncs := client.SyncCalls()
	require.Len(t, syncs, 1)
	require.Len(t, syncs[0].Leases, 1)
	assert.Equal(t, "1", syncs[0].Leases[0].Instance.InstanceID)

	store.Put(instance("orders", "2"), 30*time.Second, t0.Add(time.Second))
	store.Renew("orders", "1", t0.Add(2*time.Second))
	store.Remove("orders", "2", t0.Add(3*time.Second))

	var ops []domain.DeltaOp
	assert.Eventually(t, func() bool {
		ops = ops[:0]
		for _, call := range client.ReplicateCalls() {
			for _, d := range call.Deltas {
				ops = append(ops, d.Op)
			}
		}
		return len(ops) == 3
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []domain.DeltaOp{domain.DeltaRegister, domain.DeltaRenew, domain.DeltaCancel}, ops)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Replicated.WithLabelValues(testPeerURL, "sync", "ok")))
}

func TestReplicator_DoesNotForwardReplicatedDeltas(t *testing.T) {
	store := memstore.NewLeaseStore()
	client := newPeerClient()
	r := NewReplicator(store, []interfaces.PeerClient{client}, ReplicatorConfig{}, clock.NewMock(), NewMetrics(), log.NewNopLogger())
	startReplicator(t, r)
	assert.Eventually(t, func() bool { return peerState(r).State == domain.PeerStreaming }, time.Second, 5*time.Millisecond)

	remote := instance("orders", "remote")
	remote.Status = domain.StatusUp
	remote.LastRenewal = t0
	require.True(t, store.Apply(domain.Delta{Op: domain.DeltaRegister, Instance: remote, TTL: 30 * time.Second, Timestamp: t0}))
	require.True(t, store.Merge(domain.Lease{Instance: instance("orders", "merged"), TTL: 30 * time.Second}))

	store.Put(instance("orders", "local"), 30*time.Second, t0)
	assert.Eventually(t, func() bool { return len(client.ReplicateCalls()) >= 1 }, time.Second, 5*time.Millisecond)

	for _, call := range client.ReplicateCalls() {
		for _, d := range call.Deltas {
			assert.Equal(t, "local", d.Instance.InstanceID)
		}
	}
}

func TestReplicator_RetriesFailedSync(t *testing.T) {
	clk := clock.NewMock()
	client := newPeerClient()
	var attempts atomic.Int32
	client.SyncFunc = func(ctx context.Context, leases []domain.Lease) error {
		if attempts.Add(1) == 1 {
			return assert.AnError
		}
		return nil
	}
	metrics := NewMetrics()
	r := NewReplicator(memstore.NewLeaseStore(), []interfaces.PeerClient{client}, ReplicatorConfig{RetryInterval: 5 * time.Second}, clk, metrics, log.NewNopLogger())
	startReplicator(t, r)

	assert.Eventually(t, func() bool {
		status := peerState(r)
		return status.State == domain.PeerDisconnected && status.LastError != ""
	}, time.Second, 5*time.Millisecond)
	assert.Len(t, client.SyncCalls(), 1)

	assert.Eventually(t, func() bool {
		clk.Add(5 * time.Second)
		return peerState(r).State == domain.PeerStreaming
	}, time.Second, 5*time.Millisecond)
	assert.Len(t, client.SyncCalls(), 2)
	assert.Empty(t, peerState(r).LastError)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Replicated.WithLabelValues(testPeerURL, "sync", "error")))
}

func TestReplicator_FailedPushResyncs(t *testing.T) {
	clk := clock.NewMock()
	store := memstore.NewLeaseStore()
	client := newPeerClient()
	client.ReplicateFunc = func(ctx context.Context, deltas []domain.Delta) error {
		return assert.AnError
	}
	r := NewReplicator(store, []interfaces.PeerClient{client}, ReplicatorConfig{RetryInterval: time.Second}, clk, NewMetrics(), log.NewNopLogger())
	startReplicator(t, r)
	assert.Eventually(t, func() bool { return peerState(r).State == domain.PeerStreaming }, time.Second, 5*time.Millisecond)

	store.Put(instance("orders", "1"), 30*time.Second, t0)
	assert.Eventually(t, func() bool { return peerState(r).State == domain.PeerDisconnected }, time.Second, 5*time.Millisecond)

	assert.Eventually(t, func() bool {
		clk.Add(time.Second)
		return len(client.SyncCalls()) == 2
	}, time.Second, 5*time.Millisecond)
	syncs := client.SyncCalls()
	require.Len(t, syncs[1].Leases, 1, "the resync carries the lease whose delta was lost")
}

func TestReplicator_QueueOverflowForcesResync(t *testing.T) {
	store := memstore.NewLeaseStore()
	client := newPeerClient()
	release := make(chan struct{})
	var pushes atomic.Int32
	client.ReplicateFunc = func(ctx context.Context, deltas []domain.Delta) error {
		if pushes.Add(1) == 1 {
			<-release
		}
		return nil
	}
	r := NewReplicator(store, []interfaces.PeerClient{client}, ReplicatorConfig{QueueSize: 2, BatchSize: 1}, clock.NewMock(), NewMetrics(), log.NewNopLogger())
	startReplicator(t, r)
	assert.Eventually(t, func() bool { return peerState(r).State == domain.PeerStreaming }, time.Second, 5*time.Millisecond)

	store.Put(instance("orders", "a"), 30*time.Second, t0)
	assert.Eventually(t, func() bool { return len(client.ReplicateCalls()) == 1 }, time.Second, 5*time.Millisecond)

	for _, id := range []string{"b", "c", "d"} {
		store.Put(instance("orders", id), 30*time.Second, t0)
	}
	assert.Equal(t, 2, peerState(r).Pending)
	close(release)

	assert.Eventually(t, func() bool { return len(client.SyncCalls()) == 2 }, time.Second, 5*time.Millisecond)
	assert.Len(t, client.SyncCalls()[1].Leases, 4)
	assert.Eventually(t, func() bool { return peerState(r).State == domain.PeerStreaming }, time.Second, 5*time.Millisecond)
}

func TestReplicator_PushesRemovalsAfterResync(t *testing.T) {
	tests := []struct {
		name      string
		queueSize int
		mutate    func(store interfaces.LeaseStore)
		leases    []string
		cancelled []string
	}{
		{
			name: "deregistered while disconnected",
			mutate: func(store interfaces.LeaseStore) {
				store.Put(instance("orders", "a"), 30*time.Second, t0)
				store.Put(instance("orders", "b"), 30*time.Second, t0)
				store.Remove("orders", "a", t0.Add(time.Second))
			},
			leases:    []string{"b"},
			cancelled: []string{"a"},
		},
		{
			name:      "removal dropped by a full queue",
			queueSize: 1,
			mutate: func(store interfaces.LeaseStore) {
				store.Put(instance("orders", "a"), 30*time.Second, t0)
				store.Remove("orders", "a", t0.Add(time.Second))
			},
			cancelled: []string{"a"},
		},
		{
			name: "registered again after removal",
			mutate: func(store interfaces.LeaseStore) {
				store.Put(instance("orders", "a"), 30*time.Second, t0)
				store.Remove("orders", "a", t0.Add(time.Second))
				store.Put(instance("orders", "a"), 30*time.Second, t0.Add(2*time.Second))
			},
			leases: []string{"a"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memstore.NewLeaseStore()
			client := newPeerClient()
			r := NewReplicator(store, []interfaces.PeerClient{client}, ReplicatorConfig{QueueSize: tt.queueSize}, clock.NewMock(), NewMetrics(), log.NewNopLogger())
			tt.mutate(store)

			startReplicator(t, r)
			assert.Eventually(t, func() bool { return peerState(r).State == domain.PeerStreaming }, time.Second, 5*time.Millisecond)

			syncs := client.SyncCalls()
			require.Len(t, syncs, 1)
			var synced []string
			for _, l := range syncs[0].Leases {
				synced = append(synced, l.Instance.InstanceID)
			}
			assert.Equal(t, tt.leases, synced)

			var cancelled []string
			for _, call := range client.ReplicateCalls() {
				for _, d := range call.Deltas {
					assert.Equal(t, domain.DeltaCancel, d.Op)
					cancelled = append(cancelled, d.Instance.InstanceID)
				}
			}
			assert.Equal(t, tt.cancelled, cancelled)
		})
	}
}

func TestReplicator_KeepsRemovalsAcrossFailedSync(t *testing.T) {
	clk := clock.NewMock()
	store := memstore.NewLeaseStore()
	client := newPeerClient()
	var attempts atomic.Int32
	client.SyncFunc = func(ctx context.Context, leases []domain.Lease) error {
		if attempts.Add(1) == 1 {
			return assert.AnError
		}
		return nil
	}
	r := NewReplicator(store, []interfaces.PeerClient{client}, ReplicatorConfig{RetryInterval: time.Second}, clk, NewMetrics(), log.NewNopLogger())
	store.Put(instance("orders", "a"), 30*time.Second, t0)
	store.Remove("orders", "a", t0.Add(time.Second))

	startReplicator(t, r)
	assert.Eventually(t, func() bool { return peerState(r).State == domain.PeerDisconnected && peerState(r).LastError != "" }, time.Second, 5*time.Millisecond)
	assert.Empty(t, client.ReplicateCalls())

	assert.Eventually(t, func() bool {
		clk.Add(time.Second)
		return peerState(r).State == domain.PeerStreaming
	}, time.Second, 5*time.Millisecond)
	calls := client.ReplicateCalls()
	require.Len(t, calls, 1)
	require.Len(t, calls[0].Deltas, 1)
	assert.Equal(t, domain.DeltaCancel, calls[0].Deltas[0].Op)
	assert.Equal(t, t0.Add(time.Second), calls[0].Deltas[0].Timestamp)
}
