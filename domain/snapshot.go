package domain

import "time"

// Snapshot is a point-in-time view of the registry, keyed by service name.
// Instances of a service are ordered by InstanceID.
type Snapshot struct {
	TakenAt  time.Time                    `json:"takenAt"`
	Services map[string][]ServiceInstance `json:"services"`
}

// Instances returns the instances of serviceName, or an empty slice.
func (s Snapshot) Instances(serviceName string) []ServiceInstance {
	instances, ok := s.Services[serviceName]
	if !ok {
		return []ServiceInstance{}
	}
	return instances
}

// Len returns the total number of instances in the snapshot.
func (s Snapshot) Len() int {
	n := 0
	for _, instances := range s.Services {
		n += len(instances)
	}
	return n
}

// Filter selects instances in query results. A zero Filter matches everything.
type Filter struct {
	Status Status
}

// Match reports whether the instance passes the filter.
func (f Filter) Match(i ServiceInstance) bool {
	return f.Status == "" || f.Status == i.Status
}
