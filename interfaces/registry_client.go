package interfaces

import (
	"context"
	"time"

	"myregistry/domain"
)

// RegistryClient is the client side of the registration protocol used by registrar.Registrar.
//
//go:generate moq -stub -out mock/registry_client.go -pkg mock . RegistryClient
type RegistryClient interface {
	Register(ctx context.Context, instance domain.ServiceInstance, ttl time.Duration) error

	// Heartbeat returns domain.HeartbeatNotFound (and a nil error) when the registry has no lease.
	Heartbeat(ctx context.Context, serviceName, instanceID string) (domain.HeartbeatResult, error)

	Deregister(ctx context.Context, serviceName, instanceID string) error
}
