//go:build e2e

package network

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func devnetClient() *Client {
	return NewClient(RPCConfig{
		URL: "http://localhost:18545", User: "neptune", Password: "neptune",
	})
}

func skipIfUnavailable(t *testing.T, client *Client) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	var supply string
	if err := client.Call(ctx, "npt_totalSupply", nil, &supply); err != nil {
		t.Skip("devnet node unavailable:", err)
	}
}

func TestE2E_TotalSupply(t *testing.T) {
	client := devnetClient()
	skipIfUnavailable(t, client)

	supply, err := NewRemoteLedger(client).TotalSupply(context.Background())
	require.NoError(t, err)
	assert.False(t, supply.IsZero())
}

func TestE2E_EpochGovernor(t *testing.T) {
	client := devnetClient()
	skipIfUnavailable(t, client)

	ctx := context.Background()

	fromRouter, err := NewRemoteRouter(client).EpochGovernor(ctx)
	require.NoError(t, err)

	fromOracle, err := NewRemoteOracle(client).EpochGovernor(ctx)
	require.NoError(t, err)

	// Router and oracle designate the same governor on a healthy node.
	assert.Equal(t, fromRouter, fromOracle)
}

func TestE2E_VotingSnapshot(t *testing.T) {
	client := devnetClient()
	skipIfUnavailable(t, client)

	ctx := context.Background()
	ledger := NewRemoteLedger(client)
	snapshot := NewRemoteSnapshot(client)

	supply, err := ledger.TotalSupply(ctx)
	require.NoError(t, err)

	locked, err := snapshot.TotalSupplyAt(ctx, time.Now().Unix())
	require.NoError(t, err)

	// Locked voting supply can never exceed the total supply.
	assert.LessOrEqual(t, locked.Cmp(supply), 0)
}
