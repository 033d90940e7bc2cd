package emission

import (
	"context"
	"fmt"

	"github.com/neptunefi/libneptune-go/token"
	"github.com/neptunefi/libneptune-go/voter"
)

// Nudge applies the current epoch's tail-rate proposal outcome: +1 bps on
// Succeeded, -1 bps on Defeated, unchanged on Expired, clamped to
// [MinTailRate, MaxTailRate]. Only the router-designated epoch governor may
// call it, only in tail regime, at most once per epoch. The epoch is marked
// nudged whatever the outcome.
func (s *Scheduler) Nudge(ctx context.Context, caller token.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	governor, err := s.router.EpochGovernor(ctx)
	if err != nil {
		return fmt.Errorf("emission: read epoch governor: %w", err)
	}
	if caller.IsZero() || caller != governor {
		return fmt.Errorf("%w: caller %s is not the epoch governor", ErrNotAuthorized, caller)
	}
	if !s.state.Tail() {
		return fmt.Errorf("%w: weekly target %s", ErrTailInactive, s.state.WeeklyTarget)
	}
	nudged, err := s.store.HasNudge(s.state.ActivePeriod)
	if err != nil {
		return fmt.Errorf("emission: check nudge guard: %w", err)
	}
	if nudged {
		return fmt.Errorf("%w: period %d", ErrAlreadyNudged, s.state.ActivePeriod)
	}

	outcome, err := s.oracle.Result(ctx)
	if err != nil {
		return fmt.Errorf("emission: read proposal outcome: %w", err)
	}

	oldRate := s.state.TailRate
	newRate := oldRate
	switch outcome {
	case voter.OutcomeSucceeded:
		newRate = oldRate + NudgeStep
		if newRate > MaxTailRate {
			newRate = MaxTailRate
		}
	case voter.OutcomeDefeated:
		if oldRate >= MinTailRate+NudgeStep {
			newRate = oldRate - NudgeStep
		} else {
			newRate = MinTailRate
		}
	case voter.OutcomeExpired:
		// Rate unchanged; the epoch is still consumed.
	default:
		return fmt.Errorf("%w: %d", ErrUnknownOutcome, outcome)
	}

	next := s.state.Clone()
	next.TailRate = newRate
	rec := &NudgeRecord{
		Period:  s.state.ActivePeriod,
		OldRate: oldRate,
		NewRate: newRate,
		Outcome: outcome,
	}
	if err := s.store.ApplyNudge(next, rec); err != nil {
		return fmt.Errorf("emission: apply nudge: %w", err)
	}
	s.state = next

	s.log.Info().
		Int64("period", rec.Period).
		Uint64("old_rate", rec.OldRate).
		Uint64("new_rate", rec.NewRate).
		Str("outcome", rec.Outcome.String()).
		Msg("tail rate nudged")
	return nil
}
