// Package emission implements the Neptune emission scheduler: the epoch
// clock, the weekly growth/decay curve, the governance-adjustable tail rate
// and the mint-and-distribute state transition that feeds the team treasury,
// the rebase distributor and the reward router once per epoch.
package emission

import (
	"fmt"

	"github.com/neptunefi/libneptune-go/token"
)

// Epoch and curve parameters. The curve is fixed at genesis; only TailRate
// and TeamRate move afterwards, inside their bounds.
const (
	// EpochLength is one emission epoch: a week, in seconds.
	EpochLength int64 = 7 * 24 * 60 * 60

	// GrowthEpochs is the epoch count below which the weekly target still
	// grows. From epoch GrowthEpochs on it decays.
	GrowthEpochs uint64 = 15

	// WeeklyGrowthBPS and WeeklyDecayBPS scale the weekly target once per
	// epoch: +3% during growth, -1% during decay.
	WeeklyGrowthBPS uint64 = 10_300
	WeeklyDecayBPS  uint64 = 9_900

	// MinTailRate and MaxTailRate bound the tail emission rate, in bps of
	// total supply.
	MinTailRate uint64 = 1
	MaxTailRate uint64 = 100

	// NudgeStep is the tail-rate adjustment per governance nudge, in bps.
	NudgeStep uint64 = 1

	// MaxTeamRate bounds the team markup rate, in bps.
	MaxTeamRate uint64 = 500

	// DefaultTailRate and DefaultTeamRate are the genesis rates, in bps.
	DefaultTailRate uint64 = 67
	DefaultTeamRate uint64 = 500
)

// Curve thresholds. Package-level for reuse; treated as constants.
var (
	// InitialWeekly is the genesis weekly emission target: 15M NPT.
	InitialWeekly = token.WholeTokens(15_000_000)

	// TailStart is the weekly-target threshold below which the scheduler
	// switches permanently into tail regime: 6M NPT.
	TailStart = token.WholeTokens(6_000_000)
)

// EpochStart floors a unix timestamp to its epoch boundary.
func EpochStart(ts int64) int64 {
	return (ts / EpochLength) * EpochLength
}

// NextWeeklyTarget returns the weekly target following a growth-regime epoch.
// epochCount is the just-incremented epoch number: targets grow through epoch
// GrowthEpochs-1 and decay from there on.
func NextWeeklyTarget(weekly token.Amount, epochCount uint64) token.Amount {
	if epochCount < GrowthEpochs {
		return token.ApplyBPS(weekly, WeeklyGrowthBPS)
	}
	return token.ApplyBPS(weekly, WeeklyDecayBPS)
}

// TailEmission returns the tail-regime emission: rate bps of the current
// total supply.
func TailEmission(totalSupply token.Amount, rate uint64) token.Amount {
	return token.ApplyBPS(totalSupply, rate)
}

// GrowthShare computes the rebase share of an epoch emission: the fraction
// flowing to passive holders, damped by the square of the unlocked-supply
// ratio. total is the current total supply, locked the voting supply at the
// epoch boundary.
//
// The evaluation order is part of the protocol:
// ((((emission*unlocked)/total)*unlocked)/total)/2, truncating at each
// division. Reordering changes the rounding.
func GrowthShare(emission, total, locked token.Amount) (token.Amount, error) {
	unlocked, err := total.Sub(locked)
	if err != nil {
		return token.Amount{}, fmt.Errorf("emission: locked supply exceeds total: %w", err)
	}
	step, err := emission.Mul(unlocked).Div(total)
	if err != nil {
		return token.Amount{}, fmt.Errorf("emission: growth share: %w", err)
	}
	step, err = step.Mul(unlocked).Div(total)
	if err != nil {
		return token.Amount{}, fmt.Errorf("emission: growth share: %w", err)
	}
	return step.Half(), nil
}

// TeamShare computes the team markup on base = growth + emission:
// rate*base/(MAX_BPS-rate), additional to base rather than carved out of it.
func TeamShare(base token.Amount, rate uint64) (token.Amount, error) {
	if rate > MaxTeamRate {
		return token.Amount{}, fmt.Errorf("%w: team rate %d", ErrRateOutOfBounds, rate)
	}
	share, err := base.MulUint(rate).DivUint(token.MaxBPS - rate)
	if err != nil {
		return token.Amount{}, fmt.Errorf("emission: team share: %w", err)
	}
	return share, nil
}

// ScheduleEntry is one projected epoch of the emission curve.
type ScheduleEntry struct {
	// Epoch is the projected epoch number.
	Epoch uint64

	// Weekly is the weekly target entering the epoch. In growth regime it is
	// also the epoch's emission; in tail regime the emission depends on live
	// supply and only the frozen target is known ahead of time.
	Weekly token.Amount

	// Tail marks tail-regime epochs.
	Tail bool
}

// ProjectSchedule projects the weekly-target curve for the n epochs after
// the given state. It is pure: no collaborators are consulted.
func ProjectSchedule(st *State, n int) []ScheduleEntry {
	entries := make([]ScheduleEntry, 0, n)
	weekly := st.WeeklyTarget
	count := st.EpochCount
	for i := 0; i < n; i++ {
		count++
		tail := weekly.Cmp(TailStart) < 0
		entries = append(entries, ScheduleEntry{Epoch: count, Weekly: weekly, Tail: tail})
		if !tail {
			weekly = NextWeeklyTarget(weekly, count)
		}
	}
	return entries
}
