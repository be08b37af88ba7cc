package service

import (
	"context"
	"net"
	"strconv"
	"strings"
	"time"

	"myregistry/domain"
	"myregistry/helpers"
	"myregistry/interfaces"

	"github.com/benbjohnson/clock"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/stathat/consistent"
)

const maxNameLength = 255

// RegistryConfig holds the lease limits of a deployment.
type RegistryConfig struct {
	// DefaultTTL applies when a registration does not carry its own TTL.
	DefaultTTL time.Duration
	// MaxTTL bounds the TTL a client may ask for.
	MaxTTL time.Duration
}

// Registry implements interfaces.Registry on top of a LeaseStore: the registration API,
// the heartbeat processor and the query API share the store and the clock.
type Registry struct {
	store   interfaces.LeaseStore
	clock   clock.Clock
	cfg     RegistryConfig
	metrics *Metrics
	logger  log.Logger
}

// NewRegistry creates the registry service. Panics on missing dependencies or a non-positive DefaultTTL.
func NewRegistry(store interfaces.LeaseStore, clk clock.Clock, cfg RegistryConfig, metrics *Metrics, logger log.Logger) *Registry {
	if cfg.DefaultTTL <= 0 {
		panic("service.registry.go: default ttl must be positive")
	}
	if cfg.MaxTTL < cfg.DefaultTTL {
		cfg.MaxTTL = cfg.DefaultTTL
	}
	return &Registry{
		store:   helpers.NilPanic(store, "service.registry.go: store is required"),
		clock:   helpers.NilPanic(clk, "service.registry.go: clock is required"),
		cfg:     cfg,
		metrics: helpers.NilPanic(metrics, "service.registry.go: metrics is required"),
		logger:  log.With(helpers.NilPanic(logger, "service.registry.go: logger is required"), "component", "registry"),
	}
}

// Register validates the instance and upserts its lease. Re-registering the same key
// replaces address, metadata and status and resets the lease in one store operation.
func (r *Registry) Register(_ context.Context, instance domain.ServiceInstance, ttl time.Duration) error {
	if instance.Status == "" {
		instance.Status = domain.StatusUp
	}
	if err := ValidateInstance(instance); err != nil {
		return err
	}
	ttl, err := r.resolveTTL(ttl)
	if err != nil {
		return err
	}

	replaced := r.store.Put(instance, ttl, r.clock.Now())
	r.metrics.Registrations.Inc()
	level.Info(r.logger).Log(
		"msg", "instance registered",
		"service", instance.ServiceName,
		"instance", instance.InstanceID,
		"address", instance.Address,
		"ttl", ttl,
		"replaced", replaced,
	)
	return nil
}

// Deregister removes the lease if present. Calling it twice has the same effect as once.
func (r *Registry) Deregister(_ context.Context, serviceName, instanceID string) {
	if !r.store.Remove(serviceName, instanceID, r.clock.Now()) {
		level.Debug(r.logger).Log("msg", "deregister of absent instance", "service", serviceName, "instance", instanceID)
		return
	}
	r.metrics.Cancellations.Inc()
	level.Info(r.logger).Log("msg", "instance deregistered", "service", serviceName, "instance", instanceID)
}

// Heartbeat renews the lease at the current clock time.
func (r *Registry) Heartbeat(_ context.Context, serviceName, instanceID string) (domain.HeartbeatResult, domain.Lease) {
	return r.ProcessHeartbeat(serviceName, instanceID, r.clock.Now())
}

// ProcessHeartbeat moves the deadline of the lease to now + TTL. Address, metadata and
// status are left untouched. NOT_FOUND tells the client to register again.
func (r *Registry) ProcessHeartbeat(serviceName, instanceID string, now time.Time) (domain.HeartbeatResult, domain.Lease) {
	lease, ok := r.store.Renew(serviceName, instanceID, now)
	if !ok {
		r.metrics.Renewals.WithLabelValues(string(domain.HeartbeatNotFound)).Inc()
		level.Debug(r.logger).Log("msg", "heartbeat for unknown instance", "service", serviceName, "instance", instanceID)
		return domain.HeartbeatNotFound, domain.Lease{}
	}
	r.metrics.Renewals.WithLabelValues(string(domain.HeartbeatRenewed)).Inc()
	return domain.HeartbeatRenewed, lease
}

// SetStatus overrides the status of a registered instance without renewing it.
// Setting the status it already has changes nothing and emits no delta.
func (r *Registry) SetStatus(_ context.Context, serviceName, instanceID string, status domain.Status) error {
	if !status.Valid() {
		return BadParameterf("status must be one of STARTING, UP, DOWN, OUT_OF_SERVICE")
	}
	lease, ok := r.store.Get(serviceName, instanceID)
	if !ok {
		return EntityNotFoundf("instance %s/%s is not registered", serviceName, instanceID)
	}
	if lease.Instance.Status == status {
		return nil
	}
	if !r.store.SetStatus(serviceName, instanceID, status, r.clock.Now()) {
		return EntityNotFoundf("instance %s/%s is not registered", serviceName, instanceID)
	}
	level.Info(r.logger).Log("msg", "instance status changed", "service", serviceName, "instance", instanceID, "from", lease.Instance.Status, "to", status)
	return nil
}

// GetInstances returns the instances of serviceName passing filter. Unknown services yield an empty slice.
func (r *Registry) GetInstances(_ context.Context, serviceName string, filter domain.Filter) []domain.ServiceInstance {
	return filterInstances(r.store.Instances(serviceName), filter)
}

// GetAll returns a snapshot of every service. Services left without matching instances are omitted.
func (r *Registry) GetAll(_ context.Context, filter domain.Filter) domain.Snapshot {
	snap := r.store.Snapshot(r.clock.Now())
	if filter == (domain.Filter{}) {
		return snap
	}
	for name, instances := range snap.Services {
		kept := filterInstances(instances, filter)
		if len(kept) == 0 {
			delete(snap.Services, name)
			continue
		}
		snap.Services[name] = kept
	}
	return snap
}

// Pick maps key onto the UP instances of serviceName with consistent hashing, so the
// same key keeps landing on the same instance while the set of UP instances is stable.
func (r *Registry) Pick(_ context.Context, serviceName, key string) (domain.ServiceInstance, error) {
	if key == "" {
		return domain.ServiceInstance{}, BadParameterf("key is required")
	}
	up := filterInstances(r.store.Instances(serviceName), domain.Filter{Status: domain.StatusUp})
	if len(up) == 0 {
		return domain.ServiceInstance{}, EntityNotFoundf("service %q has no UP instance", serviceName)
	}

	ring := consistent.New()
	byID := make(map[string]domain.ServiceInstance, len(up))
	for _, inst := range up {
		ring.Add(inst.InstanceID)
		byID[inst.InstanceID] = inst
	}
	id, err := ring.Get(key)
	if err != nil {
		return domain.ServiceInstance{}, NewInternalServerError("consistent hash lookup failed", err)
	}
	return byID[id], nil
}

// ApplyDeltas replays mutations received from a peer.
func (r *Registry) ApplyDeltas(_ context.Context, deltas []domain.Delta) {
	applied := 0
	for _, d := range deltas {
		if r.store.Apply(d) {
			applied++
		}
	}
	r.metrics.ReplicaApplied.Add(float64(applied))
	level.Debug(r.logger).Log("msg", "replicated deltas applied", "received", len(deltas), "applied", applied)
}

// MergeLeases reconciles the lease set pushed by a peer. Returns the number of leases taken over.
func (r *Registry) MergeLeases(_ context.Context, leases []domain.Lease) int {
	merged := 0
	for _, l := range leases {
		if r.store.Merge(l) {
			merged++
		}
	}
	r.metrics.ReplicaApplied.Add(float64(merged))
	level.Info(r.logger).Log("msg", "peer lease set merged", "received", len(leases), "merged", merged)
	return merged
}

func (r *Registry) resolveTTL(ttl time.Duration) (time.Duration, error) {
	switch {
	case ttl == 0:
		return r.cfg.DefaultTTL, nil
	case ttl < time.Second:
		return 0, BadParameterf("ttlSeconds must be at least 1")
	case ttl > r.cfg.MaxTTL:
		return 0, BadParameterf("ttlSeconds must be at most %d", int(r.cfg.MaxTTL/time.Second))
	default:
		return ttl, nil
	}
}

// ValidateInstance checks the identity, address and status of an instance.
func ValidateInstance(instance domain.ServiceInstance) error {
	if err := validateName("serviceName", instance.ServiceName); err != nil {
		return err
	}
	if err := validateName("instanceId", instance.InstanceID); err != nil {
		return err
	}
	if err := validateAddress(instance.Address); err != nil {
		return err
	}
	if !instance.Status.Valid() {
		return BadParameterf("status must be one of STARTING, UP, DOWN, OUT_OF_SERVICE")
	}
	for k := range instance.Metadata {
		if k == "" {
			return BadParameterf("metadata keys must not be empty")
		}
	}
	return nil
}

func validateName(field, value string) error {
	switch {
	case strings.TrimSpace(value) == "":
		return BadParameterf("%s is required", field)
	case len(value) > maxNameLength:
		return BadParameterf("%s must be at most %d characters", field, maxNameLength)
	case strings.Contains(value, "/"):
		return BadParameterf("%s must not contain '/'", field)
	}
	return nil
}

func validateAddress(address string) error {
	if address == "" {
		return BadParameterf("address is required")
	}
	host, portStr, err := net.SplitHostPort(address)
	if err != nil {
		return NewBadParameterError("address must be host:port", err)
	}
	if host == "" {
		return BadParameterf("address must contain a host")
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return BadParameterf("address port must be 1-65535")
	}
	return nil
}

func filterInstances(instances []domain.ServiceInstance, filter domain.Filter) []domain.ServiceInstance {
	if filter == (domain.Filter{}) {
		return instances
	}
	out := make([]domain.ServiceInstance, 0, len(instances))
	for _, inst := range instances {
		if filter.Match(inst) {
			out = append(out, inst)
		}
	}
	return out
}
