package domain

import "time"

// Lease binds an instance to its expiry deadline (LastRenewal + TTL).
type Lease struct {
	Instance ServiceInstance `json:"instance"`
	TTL      time.Duration   `json:"ttl"`
}

// Deadline is the moment after which the lease is eligible for eviction.
func (l Lease) Deadline() time.Time {
	return l.Instance.LastRenewal.Add(l.TTL)
}

// Expired reports whether the deadline is strictly before now.
func (l Lease) Expired(now time.Time) bool {
	return l.Deadline().Before(now)
}

// HeartbeatResult is the outcome of a renewal attempt.
type HeartbeatResult string

const (
	// HeartbeatRenewed means the lease deadline has been moved to now + TTL.
	HeartbeatRenewed HeartbeatResult = "RENEWED"
	// HeartbeatNotFound means there is no lease; the client has to register again.
	HeartbeatNotFound HeartbeatResult = "NOT_FOUND"
)
