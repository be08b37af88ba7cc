package handlers

import (
	"myregistry/domain"
	"myregistry/service"
)

func toInstance(i domain.ServiceInstance) Instance {
	out := Instance{
		ServiceName:  i.ServiceName,
		InstanceId:   i.InstanceID,
		Address:      i.Address,
		Status:       InstanceStatus(i.Status),
		RegisteredAt: i.RegisteredAt,
		LastRenewal:  i.LastRenewal,
	}
	if len(i.Metadata) > 0 {
		md := Metadata(i.Metadata)
		out.Metadata = &md
	}
	return out
}

// toInstances never returns nil so an unknown service is rendered as [].
func toInstances(instances []domain.ServiceInstance) []Instance {
	out := make([]Instance, 0, len(instances))
	for _, i := range instances {
		out = append(out, toInstance(i))
	}
	return out
}

func toSnapshotResponse(snap domain.Snapshot) SnapshotResponse {
	services := make(map[string][]Instance, len(snap.Services))
	for name, instances := range snap.Services {
		services[name] = toInstances(instances)
	}
	return SnapshotResponse{
		TakenAt:  snap.TakenAt,
		Services: services,
	}
}

func toHeartbeatResponse(lease domain.Lease) HeartbeatResponse {
	return HeartbeatResponse{
		ServiceName: lease.Instance.ServiceName,
		InstanceId:  lease.Instance.InstanceID,
		Deadline:    lease.Deadline(),
	}
}

func toPeerStatuses(peers []domain.PeerStatus) []PeerStatus {
	out := make([]PeerStatus, 0, len(peers))
	for _, p := range peers {
		ps := PeerStatus{
			Url:     p.URL,
			State:   PeerState(p.State),
			Pending: p.Pending,
		}
		if p.LastError != "" {
			ps.LastError = service.Ptr(p.LastError)
		}
		out = append(out, ps)
	}
	return out
}
