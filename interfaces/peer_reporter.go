package interfaces

import "myregistry/domain"

// PeerReporter reports the replication state of the configured peers.
//
//go:generate moq -stub -out mock/peer_reporter.go -pkg mock . PeerReporter
type PeerReporter interface {
	Peers() []domain.PeerStatus
}
