package handlers

import (
	"math"
	"time"

	"myregistry/domain"
	"myregistry/service"
)

// Largest TTLs that still fit in a time.Duration.
const (
	maxTTLSeconds = int64(math.MaxInt64 / time.Second)
	maxTTLMs      = int64(math.MaxInt64 / time.Millisecond)
)

// fromRegisterRequest converts RegisterRequest to a domain instance and its requested TTL.
// A missing ttlSeconds yields 0, which the registry replaces with the deployment default.
func fromRegisterRequest(req RegisterRequest) (domain.ServiceInstance, time.Duration, error) {
	if req.TtlSeconds != nil && *req.TtlSeconds <= 0 {
		return domain.ServiceInstance{}, 0, service.BadParameterf("ttlSeconds must be at least 1")
	}
	if req.TtlSeconds != nil && int64(*req.TtlSeconds) > maxTTLSeconds {
		return domain.ServiceInstance{}, 0, service.BadParameterf("ttlSeconds must be at most %d", maxTTLSeconds)
	}

	instance := domain.ServiceInstance{
		ServiceName: req.ServiceName,
		InstanceID:  req.InstanceId,
		Address:     req.Address,
		Status:      domain.Status(service.Value(req.Status)),
		Metadata:    fromMetadata(req.Metadata),
	}
	return instance, time.Duration(service.Value(req.TtlSeconds)) * time.Second, nil
}

// fromStatusFilter converts the optional status query parameter to a domain.Filter.
func fromStatusFilter(status *StatusFilter) (domain.Filter, error) {
	if status == nil {
		return domain.Filter{}, nil
	}
	s := domain.Status(*status)
	if !s.Valid() {
		return domain.Filter{}, service.BadParameterf("status must be one of STARTING, UP, DOWN, OUT_OF_SERVICE")
	}
	return domain.Filter{Status: s}, nil
}

func fromInstance(in Instance) domain.ServiceInstance {
	return domain.ServiceInstance{
		ServiceName:  in.ServiceName,
		InstanceID:   in.InstanceId,
		Address:      in.Address,
		Status:       domain.Status(in.Status),
		Metadata:     fromMetadata(in.Metadata),
		RegisteredAt: in.RegisteredAt,
		LastRenewal:  in.LastRenewal,
	}
}

// fromReplicationDeltas converts a peer's delta batch. The whole batch is rejected on the first unknown op.
func fromReplicationDeltas(in []ReplicationDelta) ([]domain.Delta, error) {
	out := make([]domain.Delta, 0, len(in))
	for i, d := range in {
		op := domain.DeltaOp(d.Op)
		switch op {
		case domain.DeltaRegister, domain.DeltaRenew, domain.DeltaCancel, domain.DeltaStatus, domain.DeltaEvict:
		default:
			return nil, service.BadParameterf("deltas[%d]: unknown op %q", i, d.Op)
		}
		if d.TtlMs < 0 || d.TtlMs > maxTTLMs {
			return nil, service.BadParameterf("deltas[%d]: ttlMs must be between 0 and %d", i, maxTTLMs)
		}
		out = append(out, domain.Delta{
			Op:        op,
			Instance:  fromInstance(d.Instance),
			TTL:       time.Duration(d.TtlMs) * time.Millisecond,
			Timestamp: d.Timestamp,
		})
	}
	return out, nil
}

func fromReplicatedLeases(in []ReplicatedLease) ([]domain.Lease, error) {
	out := make([]domain.Lease, 0, len(in))
	for i, l := range in {
		if l.TtlMs <= 0 {
			return nil, service.BadParameterf("leases[%d]: ttlMs must be positive", i)
		}
		if l.TtlMs > maxTTLMs {
			return nil, service.BadParameterf("leases[%d]: ttlMs must be at most %d", i, maxTTLMs)
		}
		out = append(out, domain.Lease{
			Instance: fromInstance(l.Instance),
			TTL:      time.Duration(l.TtlMs) * time.Millisecond,
		})
	}
	return out, nil
}

func fromMetadata(m *Metadata) map[string]string {
	if m == nil || len(*m) == 0 {
		return nil
	}
	out := make(map[string]string, len(*m))
	for k, v := range *m {
		out[k] = v
	}
	return out
}
