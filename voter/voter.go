// Package voter defines the voting-side collaborators of the emission
// scheduler: the historical locked-supply snapshot, the reward router that
// receives each epoch's emission, and the governance oracle that reports
// tail-rate proposal outcomes.
package voter

import (
	"context"

	"github.com/neptunefi/libneptune-go/token"
)

// Outcome is the result of the current epoch's tail-rate proposal.
type Outcome uint8

const (
	// OutcomeExpired means the proposal lapsed without reaching a decision.
	OutcomeExpired Outcome = iota

	// OutcomeSucceeded means the proposal passed.
	OutcomeSucceeded

	// OutcomeDefeated means the proposal was rejected.
	OutcomeDefeated
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeExpired:
		return "expired"
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeDefeated:
		return "defeated"
	default:
		return "unknown"
	}
}

// Valid reports whether o is one of the defined outcomes.
func (o Outcome) Valid() bool {
	return o <= OutcomeDefeated
}

// VotingSnapshot answers historical locked-supply queries against the
// voting-escrow ledger.
type VotingSnapshot interface {
	// TotalSupplyAt returns the locked voting supply at the given unix time.
	TotalSupplyAt(ctx context.Context, ts int64) (token.Amount, error)
}

// RewardRouter receives each epoch's emission and designates the address
// authorized to nudge the tail rate. NotifyRewardAmount is called after the
// scheduler has approved the router to pull the amount from its account.
type RewardRouter interface {
	NotifyRewardAmount(ctx context.Context, amount token.Amount) error

	// EpochGovernor returns the address authorized to nudge.
	EpochGovernor(ctx context.Context) (token.Address, error)
}

// GovernanceOracle reports how the current epoch's tail-rate proposal
// resolved. EpochGovernor identifies the oracle's own authorized address and
// normally matches the router's designation.
type GovernanceOracle interface {
	EpochGovernor(ctx context.Context) (token.Address, error)

	// Result returns the current epoch's proposal outcome. Read at most once
	// per nudge.
	Result(ctx context.Context) (Outcome, error)
}
