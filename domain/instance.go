package domain

import (
	"fmt"
	"time"
)

// Status is the lifecycle status reported for a registered instance.
type Status string

const (
	StatusStarting     Status = "STARTING"
	StatusUp           Status = "UP"
	StatusDown         Status = "DOWN"
	StatusOutOfService Status = "OUT_OF_SERVICE"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusStarting, StatusUp, StatusDown, StatusOutOfService:
		return true
	default:
		return false
	}
}

// InstanceKey identifies an instance inside the registry.
type InstanceKey struct {
	ServiceName string `json:"serviceName"`
	InstanceID  string `json:"instanceId"`
}

func (k InstanceKey) String() string {
	return fmt.Sprintf("%s/%s", k.ServiceName, k.InstanceID)
}

// ServiceInstance represents a registered instance stored by the registry.
// Address is host:port. LastRenewal is the time of the last registration or heartbeat.
type ServiceInstance struct {
	ServiceName  string            `json:"serviceName"`
	InstanceID   string            `json:"instanceId"`
	Address      string            `json:"address"`
	Status       Status            `json:"status"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	RegisteredAt time.Time         `json:"registeredAt"`
	LastRenewal  time.Time         `json:"lastRenewal"`
}

// Key returns the registry key of the instance.
func (i ServiceInstance) Key() InstanceKey {
	return InstanceKey{ServiceName: i.ServiceName, InstanceID: i.InstanceID}
}

// Clone returns a copy of the instance that shares no mutable state with i.
func (i ServiceInstance) Clone() ServiceInstance {
	out := i
	if i.Metadata != nil {
		out.Metadata = make(map[string]string, len(i.Metadata))
		for k, v := range i.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}
