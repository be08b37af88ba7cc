package interfaces

import "context"

// Mirror is an external key/value projection of the registry (e.g. Redis) with per-key expiry.
//
//go:generate moq -stub -out mock/mirror.go -pkg mock . Mirror
type Mirror[T any] interface {
	// WriteValue writes value with the given TTL (ms).
	// Returns internal_server_error when marshalling or the storage write fails.
	WriteValue(ctx context.Context, key string, item T, ttlMs int) error

	// ListAllValues returns all values under the mirror prefix; keys that cannot be read
	// or decoded are skipped. Returns an empty slice when there are none.
	ListAllValues(ctx context.Context) ([]T, error)

	// DeleteValue deletes the value for key. Deleting a missing key is not an error.
	DeleteValue(ctx context.Context, key string) error
}
