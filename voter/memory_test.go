package voter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neptunefi/libneptune-go/token"
)

func makeAddr(b byte) token.Address {
	var a token.Address
	a[0] = b
	return a
}

func TestMemorySnapshotLookup(t *testing.T) {
	s := NewMemorySnapshot()
	ctx := context.Background()

	// Empty history reads as zero.
	got, err := s.TotalSupplyAt(ctx, 1000)
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	// Out-of-order checkpoints.
	s.Checkpoint(2000, token.WholeTokens(20))
	s.Checkpoint(1000, token.WholeTokens(10))
	s.Checkpoint(3000, token.WholeTokens(30))

	tests := []struct {
		name string
		ts   int64
		want token.Amount
	}{
		{name: "before first", ts: 999, want: token.Amount{}},
		{name: "exact first", ts: 1000, want: token.WholeTokens(10)},
		{name: "between", ts: 2999, want: token.WholeTokens(20)},
		{name: "after last", ts: 9999, want: token.WholeTokens(30)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.TotalSupplyAt(ctx, tt.ts)
			require.NoError(t, err)
			assert.Equal(t, tt.want.String(), got.String())
		})
	}
}

func TestMemoryRouterPullsApprovedReward(t *testing.T) {
	minter := makeAddr(1)
	source := makeAddr(2)
	routerAddr := makeAddr(3)
	governor := makeAddr(4)
	ctx := context.Background()

	ledger := token.NewMemoryLedger(minter)
	require.NoError(t, ledger.Mint(ctx, minter, source, token.WholeTokens(100)))

	r := NewMemoryRouter(ledger, routerAddr, source, governor)
	assert.Equal(t, routerAddr, r.Addr())

	des, err := r.EpochGovernor(ctx)
	require.NoError(t, err)
	assert.Equal(t, governor, des)

	// Without an approval the pull fails.
	err = r.NotifyRewardAmount(ctx, token.WholeTokens(10))
	assert.ErrorIs(t, err, token.ErrInsufficientAllowance)

	require.NoError(t, ledger.Approve(ctx, source, routerAddr, token.WholeTokens(10)))
	require.NoError(t, r.NotifyRewardAmount(ctx, token.WholeTokens(10)))

	bal, err := ledger.BalanceOf(ctx, routerAddr)
	require.NoError(t, err)
	assert.Equal(t, token.WholeTokens(10).String(), bal.String())

	// Zero notifications are accepted without touching the ledger.
	require.NoError(t, r.NotifyRewardAmount(ctx, token.Amount{}))

	notified := r.Notified()
	require.Len(t, notified, 2)
	assert.Equal(t, token.WholeTokens(10).String(), notified[0].String())
	assert.True(t, notified[1].IsZero())
}

func TestMemoryOracle(t *testing.T) {
	governor := makeAddr(7)
	o := NewMemoryOracle(governor)
	ctx := context.Background()

	got, err := o.EpochGovernor(ctx)
	require.NoError(t, err)
	assert.Equal(t, governor, got)

	// Default outcome is expired.
	outcome, err := o.Result(ctx)
	require.NoError(t, err)
	assert.Equal(t, OutcomeExpired, outcome)

	o.SetOutcome(OutcomeSucceeded)
	outcome, err = o.Result(ctx)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSucceeded, outcome)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "expired", OutcomeExpired.String())
	assert.Equal(t, "succeeded", OutcomeSucceeded.String())
	assert.Equal(t, "defeated", OutcomeDefeated.String())
	assert.Equal(t, "unknown", Outcome(99).String())
	assert.True(t, OutcomeDefeated.Valid())
	assert.False(t, Outcome(99).Valid())
}
