// Package handlers contains http handlers for myregistry.
//
//go:generate oapi-codegen -config openapi-api.config.yaml ../api/my-registry.openapi.yaml
//go:generate oapi-codegen -config openapi-types.config.yaml ../api/my-registry.openapi.yaml
package handlers

import (
	"net/http"

	"myregistry/domain"
	"myregistry/helpers"
	"myregistry/interfaces"
	"myregistry/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// HTTPServer implements ServerInterface generated from OpenAPI spec.
type HTTPServer struct {
	registry interfaces.Registry
	peers    interfaces.PeerReporter
	logger   log.Logger
}

// NewHTTPServer creates a new HTTPServer. Panics on nil dependencies.
func NewHTTPServer(registry interfaces.Registry, peers interfaces.PeerReporter, logger log.Logger) *HTTPServer {
	logger = log.WithPrefix(helpers.NilPanic(logger, "handlers.http.go: logger is required"), "component", "HTTPServer")
	return &HTTPServer{
		registry: helpers.NilPanic(registry, "handlers.http.go: registry is required"),
		peers:    helpers.NilPanic(peers, "handlers.http.go: peer reporter is required"),
		logger:   logger,
	}
}

// RegisterInstance (POST /v1/instances) upserts the instance lease. Returns 204 on success, 400 on parse/validation error.
func (h *HTTPServer) RegisterInstance(ectx echo.Context) error {
	var req RegisterRequest
	if err := ectx.Bind(&req); err != nil {
		return service.NewBadParameterError("invalid request body", err)
	}

	instance, ttl, err := fromRegisterRequest(req)
	if err != nil {
		return err
	}

	if err := h.registry.Register(ectx.Request().Context(), instance, ttl); err != nil {
		return err
	}

	return ectx.NoContent(http.StatusNoContent)
}

// DeregisterInstance (DELETE /v1/instances/{serviceName}/{instanceId}) removes the lease. Always 204.
func (h *HTTPServer) DeregisterInstance(ectx echo.Context, serviceName ServiceName, instanceId InstanceId) error {
	h.registry.Deregister(ectx.Request().Context(), serviceName, instanceId)
	return ectx.NoContent(http.StatusNoContent)
}

// Heartbeat (PUT /v1/instances/{serviceName}/{instanceId}/heartbeat) renews the lease.
// Returns 404 entity_not_found when there is no lease; the client is expected to register again.
func (h *HTTPServer) Heartbeat(ectx echo.Context, serviceName ServiceName, instanceId InstanceId) error {
	result, lease := h.registry.Heartbeat(ectx.Request().Context(), serviceName, instanceId)
	if result != domain.HeartbeatRenewed {
		return service.EntityNotFoundf("instance %s/%s is not registered", serviceName, instanceId)
	}

	return ectx.JSON(http.StatusOK, toHeartbeatResponse(lease))
}

// SetInstanceStatus (PUT /v1/instances/{serviceName}/{instanceId}/status) overrides the instance status.
func (h *HTTPServer) SetInstanceStatus(ectx echo.Context, serviceName ServiceName, instanceId InstanceId) error {
	var req StatusRequest
	if err := ectx.Bind(&req); err != nil {
		return service.NewBadParameterError("invalid request body", err)
	}

	if err := h.registry.SetStatus(ectx.Request().Context(), serviceName, instanceId, domain.Status(req.Status)); err != nil {
		return err
	}

	return ectx.NoContent(http.StatusNoContent)
}

// GetServiceInstances (GET /v1/instances/{serviceName}) lists the instances of one service.
func (h *HTTPServer) GetServiceInstances(ectx echo.Context, serviceName ServiceName, params GetServiceInstancesParams) error {
	filter, err := fromStatusFilter(params.Status)
	if err != nil {
		return err
	}

	instances := h.registry.GetInstances(ectx.Request().Context(), serviceName, filter)
	return ectx.JSON(http.StatusOK, toInstances(instances))
}

// PickInstance (GET /v1/instances/{serviceName}/pick) returns the UP instance owning params.Key.
func (h *HTTPServer) PickInstance(ectx echo.Context, serviceName ServiceName, params PickInstanceParams) error {
	instance, err := h.registry.Pick(ectx.Request().Context(), serviceName, params.Key)
	if err != nil {
		return err
	}

	return ectx.JSON(http.StatusOK, toInstance(instance))
}

// GetAllInstances (GET /v1/instances) returns a snapshot of the registry.
func (h *HTTPServer) GetAllInstances(ectx echo.Context, params GetAllInstancesParams) error {
	filter, err := fromStatusFilter(params.Status)
	if err != nil {
		return err
	}

	snap := h.registry.GetAll(ectx.Request().Context(), filter)
	return ectx.JSON(http.StatusOK, toSnapshotResponse(snap))
}

// ReplicateDeltas (POST /v1/replication/deltas) applies a delta batch pushed by a peer.
func (h *HTTPServer) ReplicateDeltas(ectx echo.Context) error {
	var req DeltasRequest
	if err := ectx.Bind(&req); err != nil {
		return service.NewBadParameterError("invalid request body", err)
	}

	deltas, err := fromReplicationDeltas(req.Deltas)
	if err != nil {
		return err
	}

	h.registry.ApplyDeltas(ectx.Request().Context(), deltas)
	return ectx.NoContent(http.StatusNoContent)
}

// SyncLeases (POST /v1/replication/sync) merges the full lease set of a (re)connecting peer.
func (h *HTTPServer) SyncLeases(ectx echo.Context) error {
	var req SyncRequest
	if err := ectx.Bind(&req); err != nil {
		return service.NewBadParameterError("invalid request body", err)
	}

	leases, err := fromReplicatedLeases(req.Leases)
	if err != nil {
		return err
	}

	merged := h.registry.MergeLeases(ectx.Request().Context(), leases)
	level.Debug(h.logger).Log("msg", "peer sync received", "leases", len(leases), "merged", merged)
	return ectx.NoContent(http.StatusNoContent)
}

// GetPeers (GET /v1/replication/peers) reports the replication state of each peer.
func (h *HTTPServer) GetPeers(ectx echo.Context) error {
	return ectx.JSON(http.StatusOK, toPeerStatuses(h.peers.Peers()))
}

// RegisterOperational adds /healthz and /metrics, which are not part of the OpenAPI document.
func RegisterOperational(e *echo.Echo, metrics http.Handler) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(metrics))
}
