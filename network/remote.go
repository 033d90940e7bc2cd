package network

import (
	"context"

	"github.com/neptunefi/libneptune-go/rebase"
	"github.com/neptunefi/libneptune-go/token"
	"github.com/neptunefi/libneptune-go/voter"
)

// The remote types implement the emission scheduler's collaborator
// interfaces against a Neptune node. Amounts cross the wire as base-10
// strings and addresses as lowercase hex; the node binds the authenticated
// RPC identity to the scheduler's account, so ledger calls act on its
// behalf.

var (
	_ token.AssetLedger      = (*RemoteLedger)(nil)
	_ voter.VotingSnapshot   = (*RemoteSnapshot)(nil)
	_ voter.RewardRouter     = (*RemoteRouter)(nil)
	_ voter.GovernanceOracle = (*RemoteOracle)(nil)
	_ rebase.Distributor     = (*RemoteDistributor)(nil)
)

// RemoteLedger is the node-backed asset ledger.
type RemoteLedger struct {
	client *Client
}

// NewRemoteLedger creates a ledger view backed by the node reached through
// client.
func NewRemoteLedger(client *Client) *RemoteLedger {
	return &RemoteLedger{client: client}
}

// TotalSupply returns the current total NPT supply.
func (l *RemoteLedger) TotalSupply(ctx context.Context) (token.Amount, error) {
	var supply token.Amount
	if err := l.client.Call(ctx, "npt_totalSupply", nil, &supply); err != nil {
		return token.Amount{}, err
	}
	return supply, nil
}

// BalanceOf returns the balance of an account.
func (l *RemoteLedger) BalanceOf(ctx context.Context, addr token.Address) (token.Amount, error) {
	var balance token.Amount
	if err := l.client.Call(ctx, "npt_balanceOf", []interface{}{addr}, &balance); err != nil {
		return token.Amount{}, err
	}
	return balance, nil
}

// Mint creates amount new units on the target account.
func (l *RemoteLedger) Mint(ctx context.Context, to token.Address, amount token.Amount) error {
	return l.client.Call(ctx, "npt_mint", []interface{}{to, amount}, nil)
}

// Transfer moves amount from the bound account to the target.
func (l *RemoteLedger) Transfer(ctx context.Context, to token.Address, amount token.Amount) error {
	return l.client.Call(ctx, "npt_transfer", []interface{}{to, amount}, nil)
}

// Approve authorizes spender to pull up to amount from the bound account.
func (l *RemoteLedger) Approve(ctx context.Context, spender token.Address, amount token.Amount) error {
	return l.client.Call(ctx, "npt_approve", []interface{}{spender, amount}, nil)
}

// RemoteSnapshot answers locked-supply queries against the node's
// voting-escrow ledger.
type RemoteSnapshot struct {
	client *Client
}

// NewRemoteSnapshot creates a snapshot view backed by the node reached
// through client.
func NewRemoteSnapshot(client *Client) *RemoteSnapshot {
	return &RemoteSnapshot{client: client}
}

// TotalSupplyAt returns the locked voting supply at the given unix time.
func (s *RemoteSnapshot) TotalSupplyAt(ctx context.Context, ts int64) (token.Amount, error) {
	var supply token.Amount
	if err := s.client.Call(ctx, "ve_totalSupplyAt", []interface{}{ts}, &supply); err != nil {
		return token.Amount{}, err
	}
	return supply, nil
}

// RemoteRouter is the node-backed reward router.
type RemoteRouter struct {
	client *Client
}

// NewRemoteRouter creates a router view backed by the node reached through
// client.
func NewRemoteRouter(client *Client) *RemoteRouter {
	return &RemoteRouter{client: client}
}

// NotifyRewardAmount tells the router amount has been approved for pull.
func (r *RemoteRouter) NotifyRewardAmount(ctx context.Context, amount token.Amount) error {
	return r.client.Call(ctx, "router_notifyRewardAmount", []interface{}{amount}, nil)
}

// EpochGovernor returns the address authorized to nudge the tail rate.
func (r *RemoteRouter) EpochGovernor(ctx context.Context) (token.Address, error) {
	var governor token.Address
	if err := r.client.Call(ctx, "router_epochGovernor", nil, &governor); err != nil {
		return token.Address{}, err
	}
	return governor, nil
}

// RemoteOracle reports tail-rate proposal outcomes from the node's
// governance module.
type RemoteOracle struct {
	client *Client
}

// NewRemoteOracle creates an oracle view backed by the node reached through
// client.
func NewRemoteOracle(client *Client) *RemoteOracle {
	return &RemoteOracle{client: client}
}

// EpochGovernor returns the oracle's authorized address.
func (o *RemoteOracle) EpochGovernor(ctx context.Context) (token.Address, error) {
	var governor token.Address
	if err := o.client.Call(ctx, "gov_epochGovernor", nil, &governor); err != nil {
		return token.Address{}, err
	}
	return governor, nil
}

// Result returns the current epoch's proposal outcome. Outcomes cross the
// wire numerically so values this client does not know yet pass through to
// the scheduler's own validation.
func (o *RemoteOracle) Result(ctx context.Context) (voter.Outcome, error) {
	var raw uint8
	if err := o.client.Call(ctx, "gov_result", nil, &raw); err != nil {
		return 0, err
	}
	return voter.Outcome(raw), nil
}

// RemoteDistributor is the node-backed rebase distributor.
type RemoteDistributor struct {
	client *Client
}

// NewRemoteDistributor creates a distributor view backed by the node reached
// through client.
func NewRemoteDistributor(client *Client) *RemoteDistributor {
	return &RemoteDistributor{client: client}
}

// CheckpointToken makes the distributor account for balance received since
// the previous checkpoint.
func (d *RemoteDistributor) CheckpointToken(ctx context.Context) error {
	return d.client.Call(ctx, "dist_checkpointToken", nil, nil)
}
