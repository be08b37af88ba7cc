package interfaces

import (
	"context"

	"myregistry/domain"
)

// PeerClient pushes registry state to one peer registry node.
//
//go:generate moq -stub -out mock/peer_client.go -pkg mock . PeerClient
type PeerClient interface {
	// URL identifies the peer.
	URL() string

	// Sync pushes the full local lease set; the peer merges it.
	Sync(ctx context.Context, leases []domain.Lease) error

	// Replicate pushes a batch of locally-originated deltas.
	Replicate(ctx context.Context, deltas []domain.Delta) error
}
