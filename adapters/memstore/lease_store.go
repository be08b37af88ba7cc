// Package memstore keeps the registry leases in process memory.
package memstore

import (
	"sort"
	"sync"
	"time"

	"myregistry/domain"
)

// leaseStore implements interfaces.LeaseStore with a single RWMutex over a
// service name -> instance id -> lease table. Readers copy under the read lock,
// so a snapshot never observes a half-applied mutation.
type leaseStore struct {
	mu        sync.RWMutex
	services  map[string]map[string]*domain.Lease
	size      int
	listeners []func(domain.Delta)
}

// NewLeaseStore creates an empty store.
func NewLeaseStore() *leaseStore {
	return &leaseStore{
		services: make(map[string]map[string]*domain.Lease),
	}
}

func (s *leaseStore) Subscribe(fn func(domain.Delta)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *leaseStore) Put(instance domain.ServiceInstance, ttl time.Duration, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := instance.Clone()
	stored.LastRenewal = now
	stored.RegisteredAt = now
	existing := s.lookupLocked(instance.ServiceName, instance.InstanceID)
	if existing != nil {
		stored.RegisteredAt = existing.Instance.RegisteredAt
	}
	s.storeLocked(&domain.Lease{Instance: stored, TTL: ttl})
	s.notifyLocked(domain.DeltaRegister, stored, ttl, now, false)
	return existing != nil
}

func (s *leaseStore) Renew(serviceName, instanceID string, now time.Time) (domain.Lease, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lease := s.lookupLocked(serviceName, instanceID)
	if lease == nil {
		return domain.Lease{}, false
	}
	lease.Instance.LastRenewal = now
	s.notifyLocked(domain.DeltaRenew, lease.Instance, lease.TTL, now, false)
	return copyLease(lease), true
}

func (s *leaseStore) Remove(serviceName, instanceID string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	lease := s.deleteLocked(serviceName, instanceID)
	if lease == nil {
		return false
	}
	s.notifyLocked(domain.DeltaCancel, lease.Instance, lease.TTL, now, false)
	return true
}

func (s *leaseStore) SetStatus(serviceName, instanceID string, status domain.Status, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	lease := s.lookupLocked(serviceName, instanceID)
	if lease == nil {
		return false
	}
	lease.Instance.Status = status
	s.notifyLocked(domain.DeltaStatus, lease.Instance, lease.TTL, now, false)
	return true
}

func (s *leaseStore) Get(serviceName, instanceID string) (domain.Lease, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lease := s.lookupLocked(serviceName, instanceID)
	if lease == nil {
		return domain.Lease{}, false
	}
	return copyLease(lease), true
}

func (s *leaseStore) Merge(lease domain.Lease) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.lookupLocked(lease.Instance.ServiceName, lease.Instance.InstanceID)
	if existing != nil && !lease.Instance.LastRenewal.After(existing.Instance.LastRenewal) {
		return false
	}
	merged := domain.Lease{Instance: lease.Instance.Clone(), TTL: lease.TTL}
	s.storeLocked(&merged)
	s.notifyLocked(domain.DeltaRegister, merged.Instance, merged.TTL, merged.Instance.LastRenewal, true)
	return true
}

func (s *leaseStore) Apply(delta domain.Delta) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := delta.Instance.Key()
	existing := s.lookupLocked(key.ServiceName, key.InstanceID)

	switch delta.Op {
	case domain.DeltaRegister:
		incoming := &domain.Lease{Instance: delta.Instance.Clone(), TTL: delta.TTL}
		s.storeLocked(incoming)
		s.notifyLocked(delta.Op, incoming.Instance, incoming.TTL, delta.Timestamp, true)
		return true

	case domain.DeltaRenew:
		if existing == nil {
			// The registration never reached this node; the renewal carries the full instance.
			incoming := &domain.Lease{Instance: delta.Instance.Clone(), TTL: delta.TTL}
			incoming.Instance.LastRenewal = delta.Timestamp
			s.storeLocked(incoming)
			s.notifyLocked(domain.DeltaRegister, incoming.Instance, incoming.TTL, delta.Timestamp, true)
			return true
		}
		if !delta.Timestamp.After(existing.Instance.LastRenewal) {
			return false
		}
		existing.Instance.LastRenewal = delta.Timestamp
		s.notifyLocked(delta.Op, existing.Instance, existing.TTL, delta.Timestamp, true)
		return true

	case domain.DeltaStatus:
		if existing == nil {
			incoming := &domain.Lease{Instance: delta.Instance.Clone(), TTL: delta.TTL}
			s.storeLocked(incoming)
			s.notifyLocked(domain.DeltaRegister, incoming.Instance, incoming.TTL, delta.Timestamp, true)
			return true
		}
		existing.Instance.Status = delta.Instance.Status
		s.notifyLocked(delta.Op, existing.Instance, existing.TTL, delta.Timestamp, true)
		return true

	case domain.DeltaCancel, domain.DeltaEvict:
		if existing == nil {
			return false
		}
		// A peer's eviction only stands if the lease has expired here too.
		if delta.Op == domain.DeltaEvict && !existing.Expired(delta.Timestamp) {
			return false
		}
		removed := s.deleteLocked(key.ServiceName, key.InstanceID)
		if removed == nil {
			return false
		}
		s.notifyLocked(delta.Op, removed.Instance, removed.TTL, delta.Timestamp, true)
		return true
	}

	return false
}

func (s *leaseStore) Snapshot(now time.Time) domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	services := make(map[string][]domain.ServiceInstance, len(s.services))
	for name, instances := range s.services {
		services[name] = sortedInstances(instances)
	}
	return domain.Snapshot{TakenAt: now, Services: services}
}

func (s *leaseStore) Instances(serviceName string) []domain.ServiceInstance {
	s.mu.RLock()
	defer s.mu.RUnlock()

	instances, ok := s.services[serviceName]
	if !ok {
		return []domain.ServiceInstance{}
	}
	return sortedInstances(instances)
}

func (s *leaseStore) Leases() []domain.Lease {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Lease, 0, s.size)
	for _, instances := range s.services {
		for _, lease := range instances {
			out = append(out, copyLease(lease))
		}
	}
	return out
}

func (s *leaseStore) Expired(now time.Time) []domain.InstanceKey {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []domain.InstanceKey
	for _, instances := range s.services {
		for _, lease := range instances {
			if lease.Expired(now) {
				keys = append(keys, lease.Instance.Key())
			}
		}
	}
	return keys
}

func (s *leaseStore) EvictExpired(now time.Time, limit int) []domain.ServiceInstance {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expired []*domain.Lease
	for _, instances := range s.services {
		for _, lease := range instances {
			if lease.Expired(now) {
				expired = append(expired, lease)
			}
		}
	}
	if len(expired) == 0 {
		return nil
	}

	// Oldest deadlines go first when the eviction is capped.
	sort.Slice(expired, func(i, j int) bool {
		return expired[i].Deadline().Before(expired[j].Deadline())
	})
	if limit > 0 && len(expired) > limit {
		expired = expired[:limit]
	}

	evicted := make([]domain.ServiceInstance, 0, len(expired))
	for _, lease := range expired {
		s.deleteLocked(lease.Instance.ServiceName, lease.Instance.InstanceID)
		s.notifyLocked(domain.DeltaEvict, lease.Instance, lease.TTL, now, false)
		evicted = append(evicted, lease.Instance.Clone())
	}
	return evicted
}

func (s *leaseStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.size
}

func (s *leaseStore) lookupLocked(serviceName, instanceID string) *domain.Lease {
	instances, ok := s.services[serviceName]
	if !ok {
		return nil
	}
	return instances[instanceID]
}

func (s *leaseStore) storeLocked(lease *domain.Lease) {
	name := lease.Instance.ServiceName
	instances, ok := s.services[name]
	if !ok {
		instances = make(map[string]*domain.Lease)
		s.services[name] = instances
	}
	if _, exists := instances[lease.Instance.InstanceID]; !exists {
		s.size++
	}
	instances[lease.Instance.InstanceID] = lease
}

func (s *leaseStore) deleteLocked(serviceName, instanceID string) *domain.Lease {
	instances, ok := s.services[serviceName]
	if !ok {
		return nil
	}
	lease, ok := instances[instanceID]
	if !ok {
		return nil
	}
	delete(instances, instanceID)
	s.size--
	if len(instances) == 0 {
		delete(s.services, serviceName)
	}
	return lease
}

func (s *leaseStore) notifyLocked(op domain.DeltaOp, instance domain.ServiceInstance, ttl time.Duration, at time.Time, replicated bool) {
	if len(s.listeners) == 0 {
		return
	}
	delta := domain.Delta{
		Op:         op,
		Instance:   instance.Clone(),
		TTL:        ttl,
		Timestamp:  at,
		Replicated: replicated,
	}
	for _, fn := range s.listeners {
		fn(delta)
	}
}

func copyLease(lease *domain.Lease) domain.Lease {
	return domain.Lease{Instance: lease.Instance.Clone(), TTL: lease.TTL}
}

func sortedInstances(instances map[string]*domain.Lease) []domain.ServiceInstance {
	out := make([]domain.ServiceInstance, 0, len(instances))
	for _, lease := range instances {
		out = append(out, lease.Instance.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].InstanceID < out[j].InstanceID
	})
	return out
}
