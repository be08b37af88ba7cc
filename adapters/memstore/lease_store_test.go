package memstore

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"myregistry/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 2, 19, 12, 0, 0, 0, time.UTC)

func newInstance(service, id string) domain.ServiceInstance {
	return domain.ServiceInstance{
		ServiceName: service,
		InstanceID:  id,
		Address:     "10.0.0.1:8080",
		Status:      domain.StatusUp,
		Metadata:    map[string]string{"zone": "a"},
	}
}

func TestLeaseStore_Put(t *testing.T) {
	s := NewLeaseStore()

	replaced := s.Put(newInstance("orders", "1"), 30*time.Second, t0)
	assert.False(t, replaced)

	lease, ok := s.Get("orders", "1")
	require.True(t, ok)
	assert.Equal(t, t0, lease.Instance.LastRenewal)
	assert.Equal(t, t0, lease.Instance.RegisteredAt)
	assert.Equal(t, t0.Add(30*time.Second), lease.Deadline())
	assert.Equal(t, 1, s.Len())

	t.Run("upsert replaces address and metadata, keeps RegisteredAt", func(t *testing.T) {
		updated := newInstance("orders", "1")
		updated.Address = "10.0.0.2:9090"
		updated.Metadata = map[string]string{"zone": "b"}

		replaced := s.Put(updated, 60*time.Second, t0.Add(10*time.Second))
		assert.True(t, replaced)

		lease, ok := s.Get("orders", "1")
		require.True(t, ok)
		assert.Equal(t, "10.0.0.2:9090", lease.Instance.Address)
		assert.Equal(t, map[string]string{"zone": "b"}, lease.Instance.Metadata)
		assert.Equal(t, t0, lease.Instance.RegisteredAt)
		assert.Equal(t, t0.Add(70*time.Second), lease.Deadline())
		assert.Equal(t, 1, s.Len())
	})

	t.Run("caller mutations do not leak into the store", func(t *testing.T) {
		inst := newInstance("billing", "x")
		s.Put(inst, time.Minute, t0)
		inst.Metadata["zone"] = "changed"

		lease, ok := s.Get("billing", "x")
		require.True(t, ok)
		assert.Equal(t, "a", lease.Instance.Metadata["zone"])
	})
}

func TestLeaseStore_Renew(t *testing.T) {
	s := NewLeaseStore()
	s.Put(newInstance("orders", "1"), 30*time.Second, t0)

	lease, ok := s.Renew("orders", "1", t0.Add(20*time.Second))
	require.True(t, ok)
	assert.Equal(t, t0.Add(50*time.Second), lease.Deadline())

	_, ok = s.Renew("orders", "missing", t0)
	assert.False(t, ok)
	_, ok = s.Renew("unknown", "1", t0)
	assert.False(t, ok)
}

func TestLeaseStore_Remove(t *testing.T) {
	s := NewLeaseStore()
	s.Put(newInstance("orders", "1"), 30*time.Second, t0)

	assert.True(t, s.Remove("orders", "1", t0))
	assert.False(t, s.Remove("orders", "1", t0))
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Snapshot(t0).Services)
}

func TestLeaseStore_SetStatus(t *testing.T) {
	s := NewLeaseStore()
	s.Put(newInstance("orders", "1"), 30*time.Second, t0)

	assert.True(t, s.SetStatus("orders", "1", domain.StatusOutOfService, t0))
	lease, _ := s.Get("orders", "1")
	assert.Equal(t, domain.StatusOutOfService, lease.Instance.Status)
	assert.Equal(t, t0.Add(30*time.Second), lease.Deadline())

	assert.False(t, s.SetStatus("orders", "2", domain.StatusUp, t0))
}

func TestLeaseStore_Snapshot(t *testing.T) {
	s := NewLeaseStore()
	s.Put(newInstance("orders", "b"), time.Minute, t0)
	s.Put(newInstance("orders", "a"), time.Minute, t0)
	s.Put(newInstance("billing", "1"), time.Minute, t0)

	snap := s.Snapshot(t0.Add(time.Second))
	assert.Equal(t, t0.Add(time.Second), snap.TakenAt)
	require.Len(t, snap.Services, 2)
	require.Len(t, snap.Services["orders"], 2)
	assert.Equal(t, "a", snap.Services["orders"][0].InstanceID)
	assert.Equal(t, "b", snap.Services["orders"][1].InstanceID)
	assert.Equal(t, 3, snap.Len())

	snap.Services["orders"][0].Metadata["zone"] = "mutated"
	assert.Equal(t, "a", s.Instances("orders")[0].Metadata["zone"])

	assert.Empty(t, s.Instances("unknown"))
	assert.NotNil(t, s.Instances("unknown"))
}

func TestLeaseStore_ExpiredAndEvict(t *testing.T) {
	s := NewLeaseStore()
	s.Put(newInstance("orders", "old"), 10*time.Second, t0)
	s.Put(newInstance("orders", "older"), 5*time.Second, t0)
	s.Put(newInstance("orders", "fresh"), time.Minute, t0)

	t.Run("deadline equal to now is not expired", func(t *testing.T) {
		assert.Empty(t, s.Expired(t0.Add(5*time.Second)))
	})

	now := t0.Add(11 * time.Second)
	keys := s.Expired(now)
	assert.ElementsMatch(t, []domain.InstanceKey{
		{ServiceName: "orders", InstanceID: "old"},
		{ServiceName: "orders", InstanceID: "older"},
	}, keys)

	t.Run("limit evicts the oldest deadline first", func(t *testing.T) {
		evicted := s.EvictExpired(now, 1)
		require.Len(t, evicted, 1)
		assert.Equal(t, "older", evicted[0].InstanceID)
	})

	evicted := s.EvictExpired(now, 0)
	require.Len(t, evicted, 1)
	assert.Equal(t, "old", evicted[0].InstanceID)

	assert.Empty(t, s.EvictExpired(now, 0))
	assert.Equal(t, 1, s.Len())
}

func TestLeaseStore_Merge(t *testing.T) {
	s := NewLeaseStore()
	s.Put(newInstance("orders", "1"), 30*time.Second, t0.Add(10*time.Second))

	older := domain.Lease{Instance: newInstance("orders", "1"), TTL: 30 * time.Second}
	older.Instance.LastRenewal = t0
	older.Instance.Address = "stale:1"
	assert.False(t, s.Merge(older))

	newer := older
	newer.Instance.LastRenewal = t0.Add(20 * time.Second)
	newer.Instance.Address = "fresh:1"
	assert.True(t, s.Merge(newer))

	lease, _ := s.Get("orders", "1")
	assert.Equal(t, "fresh:1", lease.Instance.Address)

	unknown := domain.Lease{Instance: newInstance("billing", "7"), TTL: time.Minute}
	unknown.Instance.LastRenewal = t0
	assert.True(t, s.Merge(unknown))
	assert.Equal(t, 2, s.Len())
}

func TestLeaseStore_Apply(t *testing.T) {
	s := NewLeaseStore()
	var got []domain.Delta
	s.Subscribe(func(d domain.Delta) { got = append(got, d) })

	inst := newInstance("orders", "1")
	inst.LastRenewal = t0

	assert.True(t, s.Apply(domain.Delta{Op: domain.DeltaRenew, Instance: inst, TTL: 30 * time.Second, Timestamp: t0}))
	lease, ok := s.Get("orders", "1")
	require.True(t, ok, "renew of an unknown lease registers it")
	assert.Equal(t, t0, lease.Instance.LastRenewal)

	assert.False(t, s.Apply(domain.Delta{Op: domain.DeltaRenew, Instance: inst, TTL: 30 * time.Second, Timestamp: t0}))
	assert.True(t, s.Apply(domain.Delta{Op: domain.DeltaRenew, Instance: inst, TTL: 30 * time.Second, Timestamp: t0.Add(time.Second)}))

	inst.Status = domain.StatusDown
	assert.True(t, s.Apply(domain.Delta{Op: domain.DeltaStatus, Instance: inst, TTL: 30 * time.Second, Timestamp: t0}))
	lease, _ = s.Get("orders", "1")
	assert.Equal(t, domain.StatusDown, lease.Instance.Status)

	assert.True(t, s.Apply(domain.Delta{Op: domain.DeltaCancel, Instance: inst, Timestamp: t0}))
	assert.False(t, s.Apply(domain.Delta{Op: domain.DeltaEvict, Instance: inst, Timestamp: t0}))

	require.Len(t, got, 4)
	for _, d := range got {
		assert.True(t, d.Replicated)
	}
	assert.Equal(t, domain.DeltaRegister, got[0].Op)
	assert.Equal(t, domain.DeltaCancel, got[3].Op)
}

func TestLeaseStore_ApplyEvictKeepsLiveLease(t *testing.T) {
	s := NewLeaseStore()
	s.Put(newInstance("orders", "1"), 30*time.Second, t0)
	s.Renew("orders", "1", t0.Add(20*time.Second))
	var got []domain.Delta
	s.Subscribe(func(d domain.Delta) { got = append(got, d) })

	inst := newInstance("orders", "1")
	tests := []struct {
		name    string
		at      time.Time
		applied bool
	}{
		{name: "peer evicts before the local deadline", at: t0.Add(40 * time.Second), applied: false},
		{name: "peer evicts at the local deadline", at: t0.Add(50 * time.Second), applied: false},
		{name: "peer evicts after the local deadline", at: t0.Add(51 * time.Second), applied: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.applied, s.Apply(domain.Delta{Op: domain.DeltaEvict, Instance: inst, Timestamp: tt.at}))
			_, present := s.Get("orders", "1")
			assert.Equal(t, !tt.applied, present)
		})
	}
	require.Len(t, got, 1)
	assert.Equal(t, domain.DeltaEvict, got[0].Op)
	assert.True(t, got[0].Replicated)
}

func TestLeaseStore_RemoveAndSetStatusStampDeltas(t *testing.T) {
	s := NewLeaseStore()
	var got []domain.Delta
	s.Subscribe(func(d domain.Delta) { got = append(got, d) })

	s.Put(newInstance("orders", "1"), time.Minute, t0)
	s.SetStatus("orders", "1", domain.StatusDown, t0.Add(time.Second))
	s.Remove("orders", "1", t0.Add(2*time.Second))

	require.Len(t, got, 3)
	assert.Equal(t, t0.Add(time.Second), got[1].Timestamp)
	assert.Equal(t, t0.Add(2*time.Second), got[2].Timestamp)
}

func TestLeaseStore_SubscribeOrder(t *testing.T) {
	s := NewLeaseStore()
	var ops []domain.DeltaOp
	s.Subscribe(func(d domain.Delta) {
		assert.False(t, d.Replicated)
		ops = append(ops, d.Op)
	})

	s.Put(newInstance("orders", "1"), time.Second, t0)
	s.Renew("orders", "1", t0.Add(500*time.Millisecond))
	s.SetStatus("orders", "1", domain.StatusDown, t0.Add(600*time.Millisecond))
	s.EvictExpired(t0.Add(time.Hour), 0)
	s.Put(newInstance("orders", "2"), time.Second, t0)
	s.Remove("orders", "2", t0)
	s.Remove("orders", "2", t0)

	assert.Equal(t, []domain.DeltaOp{
		domain.DeltaRegister, domain.DeltaRenew, domain.DeltaStatus,
		domain.DeltaEvict, domain.DeltaRegister, domain.DeltaCancel,
	}, ops)
}

func TestLeaseStore_ConcurrentPut(t *testing.T) {
	s := NewLeaseStore()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Put(newInstance("orders", fmt.Sprintf("inst-%03d", i)), time.Minute, t0)
		}(i)
	}
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Snapshot(t0)
		}()
	}
	wg.Wait()

	instances := s.Instances("orders")
	require.Len(t, instances, 100)
	seen := make(map[string]bool, len(instances))
	for _, inst := range instances {
		assert.False(t, seen[inst.InstanceID], "duplicate %s", inst.InstanceID)
		seen[inst.InstanceID] = true
	}
}
