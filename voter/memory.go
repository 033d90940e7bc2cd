package voter

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/neptunefi/libneptune-go/token"
)

// MemorySnapshot is an in-memory checkpointed locked-supply history.
// TotalSupplyAt returns the most recent checkpoint at or before the queried
// time, or zero if none exists.
type MemorySnapshot struct {
	mu          sync.RWMutex
	checkpoints []checkpoint
}

type checkpoint struct {
	ts     int64
	supply token.Amount
}

// NewMemorySnapshot creates an empty history.
func NewMemorySnapshot() *MemorySnapshot {
	return &MemorySnapshot{}
}

var _ VotingSnapshot = (*MemorySnapshot)(nil)

// Checkpoint records the locked supply at ts. Checkpoints may arrive in any
// order; lookups always see a time-sorted history.
func (s *MemorySnapshot) Checkpoint(ts int64, supply token.Amount) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkpoints = append(s.checkpoints, checkpoint{ts: ts, supply: supply})
	sort.Slice(s.checkpoints, func(i, j int) bool {
		return s.checkpoints[i].ts < s.checkpoints[j].ts
	})
}

// TotalSupplyAt returns the locked supply at ts.
func (s *MemorySnapshot) TotalSupplyAt(ctx context.Context, ts int64) (token.Amount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	// Last checkpoint with checkpoint.ts <= ts.
	i := sort.Search(len(s.checkpoints), func(i int) bool {
		return s.checkpoints[i].ts > ts
	})
	if i == 0 {
		return token.Amount{}, nil
	}
	return s.checkpoints[i-1].supply, nil
}

// MemoryRouter is an in-memory reward router. On notification it pulls the
// announced amount from the scheduler account through the ledger allowance,
// mirroring the approve-then-notify contract, and keeps a log of notified
// amounts.
type MemoryRouter struct {
	ledger   *token.MemoryLedger
	addr     token.Address
	governor token.Address

	mu       sync.Mutex
	source   token.Address
	notified []token.Amount
}

// NewMemoryRouter creates a router holding the given ledger account. source
// is the account rewards are pulled from; governor is the designated nudge
// caller.
func NewMemoryRouter(ledger *token.MemoryLedger, addr, source, governor token.Address) *MemoryRouter {
	return &MemoryRouter{ledger: ledger, addr: addr, source: source, governor: governor}
}

var _ RewardRouter = (*MemoryRouter)(nil)

// Addr returns the router's ledger account address.
func (r *MemoryRouter) Addr() token.Address {
	return r.addr
}

// EpochGovernor returns the designated nudge caller.
func (r *MemoryRouter) EpochGovernor(ctx context.Context) (token.Address, error) {
	return r.governor, nil
}

// NotifyRewardAmount pulls amount from the source account and logs it.
func (r *MemoryRouter) NotifyRewardAmount(ctx context.Context, amount token.Amount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !amount.IsZero() {
		if err := r.ledger.TransferFrom(ctx, r.addr, r.source, r.addr, amount); err != nil {
			return fmt.Errorf("voter: pull reward: %w", err)
		}
	}
	r.notified = append(r.notified, amount)
	return nil
}

// Notified returns the notified amounts in call order.
func (r *MemoryRouter) Notified() []token.Amount {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]token.Amount, len(r.notified))
	copy(out, r.notified)
	return out
}

// MemoryOracle is an in-memory governance oracle with a fixed governor and a
// settable outcome.
type MemoryOracle struct {
	mu       sync.RWMutex
	governor token.Address
	outcome  Outcome
}

// NewMemoryOracle creates an oracle answering to the given governor. The
// initial outcome is OutcomeExpired.
func NewMemoryOracle(governor token.Address) *MemoryOracle {
	return &MemoryOracle{governor: governor}
}

var _ GovernanceOracle = (*MemoryOracle)(nil)

// SetOutcome sets the outcome returned by Result.
func (o *MemoryOracle) SetOutcome(outcome Outcome) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcome = outcome
}

// EpochGovernor returns the authorized nudge caller.
func (o *MemoryOracle) EpochGovernor(ctx context.Context) (token.Address, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.governor, nil
}

// Result returns the configured outcome.
func (o *MemoryOracle) Result(ctx context.Context) (Outcome, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.outcome, nil
}
