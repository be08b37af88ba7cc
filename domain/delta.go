package domain

import "time"

// DeltaOp is the kind of registry mutation carried by a Delta.
type DeltaOp string

const (
	DeltaRegister DeltaOp = "REGISTER"
	DeltaRenew    DeltaOp = "RENEW"
	DeltaCancel   DeltaOp = "CANCEL"
	DeltaStatus   DeltaOp = "STATUS"
	DeltaEvict    DeltaOp = "EVICT"
)

// Delta describes one applied mutation of the lease store.
// Replicated is set when the mutation was received from a peer; such deltas are not broadcast again.
type Delta struct {
	Op         DeltaOp         `json:"op"`
	Instance   ServiceInstance `json:"instance"`
	TTL        time.Duration   `json:"ttl"`
	Timestamp  time.Time       `json:"timestamp"`
	Replicated bool            `json:"-"`
}

// PeerState is the replication state of one peer connection.
type PeerState string

const (
	PeerDisconnected PeerState = "DISCONNECTED"
	PeerSyncing      PeerState = "SYNCING"
	PeerStreaming    PeerState = "STREAMING"
)

// PeerStatus reports the state of a peer for diagnostics.
type PeerStatus struct {
	URL       string    `json:"url"`
	State     PeerState `json:"state"`
	LastError string    `json:"lastError,omitempty"`
	Pending   int       `json:"pending"`
}
