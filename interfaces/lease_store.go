package interfaces

import (
	"time"

	"myregistry/domain"
)

// LeaseStore is the in-memory table of leases, the single source of truth of the registry.
// Every method is safe for concurrent use and every mutation is atomic with respect to
// Snapshot and Instances.
type LeaseStore interface {
	// Put inserts or replaces the lease of instance.Key(). LastRenewal is set to now;
	// RegisteredAt is kept from the replaced lease. Returns true when a lease was replaced.
	Put(instance domain.ServiceInstance, ttl time.Duration, now time.Time) bool

	// Renew moves the deadline of an existing lease to now + TTL.
	// Returns (lease, false) when there is no lease.
	Renew(serviceName, instanceID string, now time.Time) (domain.Lease, bool)

	// Remove deletes the lease; now stamps the CANCEL notification. Returns false when it was already absent.
	Remove(serviceName, instanceID string, now time.Time) bool

	// SetStatus changes the status of an existing lease without touching its deadline.
	SetStatus(serviceName, instanceID string, status domain.Status, now time.Time) bool

	// Get returns a copy of the lease.
	Get(serviceName, instanceID string) (domain.Lease, bool)

	// Merge applies a lease received from a peer if it is unknown locally or renewed later
	// than the local copy. Returns true when applied.
	Merge(lease domain.Lease) bool

	// Apply replays a delta received from a peer. The resulting notification carries
	// Replicated = true. An EVICT only removes a lease that is expired at the delta's
	// timestamp by the local deadline. Returns false when the delta had no effect.
	Apply(delta domain.Delta) bool

	// Snapshot returns an immutable copy of every instance grouped by service, taken at now.
	Snapshot(now time.Time) domain.Snapshot

	// Instances returns a copy of the instances of serviceName ordered by InstanceID.
	Instances(serviceName string) []domain.ServiceInstance

	// Leases returns a copy of every lease.
	Leases() []domain.Lease

	// Expired lists the keys of leases whose deadline is before now.
	Expired(now time.Time) []domain.InstanceKey

	// EvictExpired removes at most limit leases that are expired at now (limit <= 0 means all)
	// in one atomic step and returns the removed instances.
	EvictExpired(now time.Time, limit int) []domain.ServiceInstance

	// Len returns the number of leases.
	Len() int

	// Subscribe registers fn to receive every applied mutation, in order.
	// fn runs while the store lock is held and must not block.
	Subscribe(fn func(domain.Delta))
}
