package interfaces

import (
	"context"
	"time"

	"myregistry/domain"
)

// Registry is the registration, heartbeat and query surface consumed by the HTTP handlers.
//
//go:generate moq -stub -out mock/registry.go -pkg mock . Registry
type Registry interface {
	// Register validates and upserts the instance with the given TTL (0 means the default TTL).
	// Returns bad_parameter on validation failure; nothing is stored in that case.
	Register(ctx context.Context, instance domain.ServiceInstance, ttl time.Duration) error

	// Deregister removes the instance. Never fails; absent instances are ignored.
	Deregister(ctx context.Context, serviceName, instanceID string)

	// Heartbeat renews the lease at the current time.
	Heartbeat(ctx context.Context, serviceName, instanceID string) (domain.HeartbeatResult, domain.Lease)

	// SetStatus overrides the status of a registered instance. Returns entity_not_found when absent.
	SetStatus(ctx context.Context, serviceName, instanceID string, status domain.Status) error

	// GetInstances returns the instances of serviceName; an unknown service yields an empty slice.
	GetInstances(ctx context.Context, serviceName string, filter domain.Filter) []domain.ServiceInstance

	// GetAll returns a snapshot of the whole registry.
	GetAll(ctx context.Context, filter domain.Filter) domain.Snapshot

	// Pick chooses the UP instance of serviceName that owns key on the consistent hash ring.
	Pick(ctx context.Context, serviceName, key string) (domain.ServiceInstance, error)

	// ApplyDeltas replays mutations received from a peer.
	ApplyDeltas(ctx context.Context, deltas []domain.Delta)

	// MergeLeases reconciles a full lease set pushed by a reconnecting peer.
	MergeLeases(ctx context.Context, leases []domain.Lease) int
}
