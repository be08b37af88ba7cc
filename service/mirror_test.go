package service

import (
	"context"
	"testing"
	"time"

	"myregistry/adapters/memstore"
	"myregistry/domain"
	"myregistry/interfaces/mock"

	"github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runMirror(t *testing.T, m *MirrorSync) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		m.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func TestNewMirrorSync_Panics(t *testing.T) {
	store := memstore.NewLeaseStore()
	mirror := &mock.MirrorMock[domain.ServiceInstance]{}

	assert.PanicsWithValue(t, "service.mirror.go: store is required", func() {
		NewMirrorSync(nil, mirror, 1, NewMetrics(), log.NewNopLogger())
	})
	assert.PanicsWithValue(t, "service.mirror.go: mirror is required", func() {
		NewMirrorSync(store, nil, 1, NewMetrics(), log.NewNopLogger())
	})
	assert.PanicsWithValue(t, "service.mirror.go: logger is required", func() {
		NewMirrorSync(store, mirror, 1, NewMetrics(), nil)
	})
}

func TestMirrorSync_WritesAndDeletes(t *testing.T) {
	store := memstore.NewLeaseStore()
	mirror := &mock.MirrorMock[domain.ServiceInstance]{}
	runMirror(t, NewMirrorSync(store, mirror, 16, NewMetrics(), log.NewNopLogger()))

	store.Put(instance("orders", "1"), 30*time.Second, t0)
	assert.Eventually(t, func() bool { return len(mirror.WriteValueCalls()) == 1 }, time.Second, 5*time.Millisecond)

	write := mirror.WriteValueCalls()[0]
	assert.Equal(t, "orders:1", write.Key)
	assert.Equal(t, 30000, write.TtlMs)
	assert.Equal(t, "10.0.0.1:8080", write.Item.Address)
	assert.Equal(t, t0, write.Item.LastRenewal)

	store.Remove("orders", "1", t0)
	assert.Eventually(t, func() bool { return len(mirror.DeleteValueCalls()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "orders:1", mirror.DeleteValueCalls()[0].Key)

	store.Put(instance("orders", "2"), 10*time.Second, t0)
	require.Len(t, store.EvictExpired(t0.Add(11*time.Second), 0), 1)
	assert.Eventually(t, func() bool { return len(mirror.DeleteValueCalls()) == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "orders:2", mirror.DeleteValueCalls()[1].Key)
}

func TestMirrorSync_KeepsRunningAfterWriteError(t *testing.T) {
	store := memstore.NewLeaseStore()
	mirror := &mock.MirrorMock[domain.ServiceInstance]{
		WriteValueFunc: func(ctx context.Context, key string, item domain.ServiceInstance, ttlMs int) error {
			return NewInternalServerError("redis unavailable", assert.AnError)
		},
	}
	runMirror(t, NewMirrorSync(store, mirror, 16, NewMetrics(), log.NewNopLogger()))

	store.Put(instance("orders", "1"), 30*time.Second, t0)
	store.Put(instance("orders", "2"), 30*time.Second, t0)
	assert.Eventually(t, func() bool { return len(mirror.WriteValueCalls()) == 2 }, time.Second, 5*time.Millisecond)
}

func TestMirrorSync_DropsOnFullQueue(t *testing.T) {
	store := memstore.NewLeaseStore()
	metrics := NewMetrics()
	NewMirrorSync(store, &mock.MirrorMock[domain.ServiceInstance]{}, 1, metrics, log.NewNopLogger())

	for _, id := range []string{"1", "2", "3"} {
		store.Put(instance("orders", id), 30*time.Second, t0)
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.MirrorDropped))
	assert.Equal(t, 3, store.Len(), "a full mirror queue never blocks the store")
}

func TestMirrorSync_Reconcile(t *testing.T) {
	store := memstore.NewLeaseStore()
	mirror := &mock.MirrorMock[domain.ServiceInstance]{
		ListAllValuesFunc: func(ctx context.Context) ([]domain.ServiceInstance, error) {
			return []domain.ServiceInstance{instance("orders", "live"), instance("orders", "stale"), instance("billing", "7")}, nil
		},
	}
	m := NewMirrorSync(store, mirror, 16, NewMetrics(), log.NewNopLogger())
	store.Put(instance("orders", "live"), 30*time.Second, t0)

	deleted, err := m.Reconcile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	var keys []string
	for _, call := range mirror.DeleteValueCalls() {
		keys = append(keys, call.Key)
	}
	assert.Equal(t, []string{"orders:stale", "billing:7"}, keys)
}

func TestMirrorSync_ReconcileListError(t *testing.T) {
	mirror := &mock.MirrorMock[domain.ServiceInstance]{
		ListAllValuesFunc: func(ctx context.Context) ([]domain.ServiceInstance, error) {
			return nil, assert.AnError
		},
	}
	m := NewMirrorSync(memstore.NewLeaseStore(), mirror, 16, NewMetrics(), log.NewNopLogger())

	deleted, err := m.Reconcile(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
	assert.Zero(t, deleted)
	assert.Empty(t, mirror.DeleteValueCalls())
}

func TestMirrorKey(t *testing.T) {
	assert.Equal(t, "orders:i-1", MirrorKey(domain.InstanceKey{ServiceName: "orders", InstanceID: "i-1"}))
}

func TestMirrorTTLMs(t *testing.T) {
	tests := []struct {
		name string
		ttl  time.Duration
		want int
	}{
		{name: "seconds", ttl: 30 * time.Second, want: 30000},
		{name: "sub-millisecond", ttl: time.Microsecond, want: 1},
		{name: "zero", ttl: 0, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mirrorTTLMs(domain.Delta{TTL: tt.ttl}))
		})
	}
}
