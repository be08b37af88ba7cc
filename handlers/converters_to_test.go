package handlers

import (
	"testing"
	"time"

	"myregistry/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToInstance(t *testing.T) {
	in := ordersInstance("1", domain.StatusUp)
	out := toInstance(in)

	assert.Equal(t, "orders", out.ServiceName)
	assert.Equal(t, "1", out.InstanceId)
	assert.Equal(t, "10.0.0.1:8080", out.Address)
	assert.Equal(t, UP, out.Status)
	assert.Equal(t, testNow, out.RegisteredAt)
	assert.Equal(t, testNow, out.LastRenewal)
	require.NotNil(t, out.Metadata)
	assert.Equal(t, "a", (*out.Metadata)["zone"])

	in.Metadata = nil
	assert.Nil(t, toInstance(in).Metadata)
}

func TestToInstances_NeverNil(t *testing.T) {
	out := toInstances(nil)
	require.NotNil(t, out)
	assert.Empty(t, out)
}

func TestToSnapshotResponse(t *testing.T) {
	snap := domain.Snapshot{
		TakenAt: testNow,
		Services: map[string][]domain.ServiceInstance{
			"orders":   {ordersInstance("1", domain.StatusUp), ordersInstance("2", domain.StatusUp)},
			"payments": {},
		},
	}
	out := toSnapshotResponse(snap)

	assert.Equal(t, testNow, out.TakenAt)
	assert.Len(t, out.Services["orders"], 2)
	require.Contains(t, out.Services, "payments")
	assert.NotNil(t, out.Services["payments"])
}

func TestToHeartbeatResponse(t *testing.T) {
	lease := domain.Lease{Instance: ordersInstance("1", domain.StatusUp), TTL: 30 * time.Second}
	out := toHeartbeatResponse(lease)

	assert.Equal(t, HeartbeatResponse{
		ServiceName: "orders",
		InstanceId:  "1",
		Deadline:    testNow.Add(30 * time.Second),
	}, out)
}

func TestToPeerStatuses(t *testing.T) {
	out := toPeerStatuses([]domain.PeerStatus{
		{URL: "http://a", State: domain.PeerSyncing},
		{URL: "http://b", State: domain.PeerDisconnected, LastError: "timeout"},
	})

	require.Len(t, out, 2)
	assert.Equal(t, SYNCING, out[0].State)
	assert.Nil(t, out[0].LastError)
	require.NotNil(t, out[1].LastError)
	assert.Equal(t, "timeout", *out[1].LastError)
	assert.NotNil(t, toPeerStatuses(nil))
}
