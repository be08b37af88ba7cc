// Package registryhttp talks to a registry node over its HTTP API. It is used by
// registrar.Registrar to advertise an instance and by service.Replicator to push
// state to peers.
package registryhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"myregistry/domain"
	"myregistry/helpers"
	"myregistry/interfaces"
	"myregistry/service"
)

var (
	_ interfaces.RegistryClient = (*Client)(nil)
	_ interfaces.PeerClient     = (*Client)(nil)
)

// Client is an HTTP client for one registry node. Panics on empty baseURL or nil http client.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for baseURL (e.g. http://registry-b:8080). A trailing slash is ignored.
func NewClient(baseURL string, client *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(helpers.StrPanic(baseURL, "adapters.registryhttp.client.go: baseURL is required"), "/"),
		client:  helpers.NilPanic(client, "adapters.registryhttp.client.go: http client is required"),
	}
}

// wireInstance mirrors the Instance schema of the registry API.
type wireInstance struct {
	ServiceName  string            `json:"serviceName"`
	InstanceID   string            `json:"instanceId"`
	Address      string            `json:"address"`
	Status       string            `json:"status"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	RegisteredAt time.Time         `json:"registeredAt"`
	LastRenewal  time.Time         `json:"lastRenewal"`
}

type registerRequest struct {
	ServiceName string            `json:"serviceName"`
	InstanceID  string            `json:"instanceId"`
	Address     string            `json:"address"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Status      string            `json:"status,omitempty"`
	TTLSeconds  *int              `json:"ttlSeconds,omitempty"`
}

type wireDelta struct {
	Op        string       `json:"op"`
	Instance  wireInstance `json:"instance"`
	TTLMs     int64        `json:"ttlMs"`
	Timestamp time.Time    `json:"timestamp"`
}

type wireLease struct {
	Instance wireInstance `json:"instance"`
	TTLMs    int64        `json:"ttlMs"`
}

type errorResponse struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// URL returns the base URL of the node.
func (c *Client) URL() string {
	return c.baseURL
}

// Register performs POST /v1/instances. A zero ttl leaves the TTL to the registry default.
func (c *Client) Register(ctx context.Context, instance domain.ServiceInstance, ttl time.Duration) error {
	req := registerRequest{
		ServiceName: instance.ServiceName,
		InstanceID:  instance.InstanceID,
		Address:     instance.Address,
		Metadata:    instance.Metadata,
		Status:      string(instance.Status),
	}
	if ttl > 0 {
		seconds := int((ttl + time.Second - 1) / time.Second)
		req.TTLSeconds = &seconds
	}
	_, err := c.do(ctx, http.MethodPost, "/v1/instances", req, http.StatusNoContent)
	return err
}

// Heartbeat performs PUT /v1/instances/{serviceName}/{instanceId}/heartbeat.
// A 404 is reported as domain.HeartbeatNotFound with a nil error.
func (c *Client) Heartbeat(ctx context.Context, serviceName, instanceID string) (domain.HeartbeatResult, error) {
	status, err := c.do(ctx, http.MethodPut, instancePath(serviceName, instanceID)+"/heartbeat", nil, http.StatusOK)
	if status == http.StatusNotFound {
		return domain.HeartbeatNotFound, nil
	}
	if err != nil {
		return "", err
	}
	return domain.HeartbeatRenewed, nil
}

// Deregister performs DELETE /v1/instances/{serviceName}/{instanceId}.
func (c *Client) Deregister(ctx context.Context, serviceName, instanceID string) error {
	_, err := c.do(ctx, http.MethodDelete, instancePath(serviceName, instanceID), nil, http.StatusNoContent)
	return err
}

// Sync performs POST /v1/replication/sync with the full lease set.
func (c *Client) Sync(ctx context.Context, leases []domain.Lease) error {
	body := struct {
		Leases []wireLease `json:"leases"`
	}{Leases: make([]wireLease, 0, len(leases))}
	for _, l := range leases {
		body.Leases = append(body.Leases, wireLease{
			Instance: toWireInstance(l.Instance),
			TTLMs:    l.TTL.Milliseconds(),
		})
	}
	_, err := c.do(ctx, http.MethodPost, "/v1/replication/sync", body, http.StatusNoContent)
	return err
}

// Replicate performs POST /v1/replication/deltas.
func (c *Client) Replicate(ctx context.Context, deltas []domain.Delta) error {
	body := struct {
		Deltas []wireDelta `json:"deltas"`
	}{Deltas: make([]wireDelta, 0, len(deltas))}
	for _, d := range deltas {
		body.Deltas = append(body.Deltas, wireDelta{
			Op:        string(d.Op),
			Instance:  toWireInstance(d.Instance),
			TTLMs:     d.TTL.Milliseconds(),
			Timestamp: d.Timestamp,
		})
	}
	_, err := c.do(ctx, http.MethodPost, "/v1/replication/deltas", body, http.StatusNoContent)
	return err
}

// do sends the request and returns the response status. Any status other than expected
// is an error; a registry error body is decoded into a *service.MyError carrying its code.
func (c *Client) do(ctx context.Context, method, path string, body any, expected int) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshal %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	payload, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode == expected {
		return resp.StatusCode, nil
	}

	statusErr := fmt.Errorf("registry %s %s returned %d", method, path, resp.StatusCode)
	var errBody errorResponse
	if json.Unmarshal(payload, &errBody) == nil && errBody.Error != nil && errBody.Error.Code != "" {
		return resp.StatusCode, service.NewMyError(errBody.Error.Code, errBody.Error.Message, statusErr)
	}
	return resp.StatusCode, statusErr
}

func instancePath(serviceName, instanceID string) string {
	return "/v1/instances/" + url.PathEscape(serviceName) + "/" + url.PathEscape(instanceID)
}

func toWireInstance(i domain.ServiceInstance) wireInstance {
	return wireInstance{
		ServiceName:  i.ServiceName,
		InstanceID:   i.InstanceID,
		Address:      i.Address,
		Status:       string(i.Status),
		Metadata:     i.Metadata,
		RegisteredAt: i.RegisteredAt,
		LastRenewal:  i.LastRenewal,
	}
}
