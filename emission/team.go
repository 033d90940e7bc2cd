package emission

import (
	"fmt"

	"github.com/neptunefi/libneptune-go/token"
)

// ProposeTeam nominates a new treasury address. Only the current team may
// call it; the handover takes effect when the nominee accepts.
func (s *Scheduler) ProposeTeam(caller, newTeam token.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if caller != s.state.Team {
		return fmt.Errorf("%w: caller %s is not the team", ErrNotAuthorized, caller)
	}
	if newTeam.IsZero() {
		return fmt.Errorf("%w: proposed team", ErrZeroAddress)
	}

	next := s.state.Clone()
	next.PendingTeam = newTeam
	if err := s.store.SaveState(next); err != nil {
		return fmt.Errorf("emission: persist state: %w", err)
	}
	s.state = next

	s.log.Info().Str("pending_team", newTeam.String()).Msg("team handover proposed")
	return nil
}

// AcceptTeam commits a proposed team handover and clears the pending slot.
// Only the pending nominee may call it.
func (s *Scheduler) AcceptTeam(caller token.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.PendingTeam.IsZero() || caller != s.state.PendingTeam {
		return fmt.Errorf("%w: caller %s is not the pending team", ErrNotAuthorized, caller)
	}

	next := s.state.Clone()
	next.Team = caller
	next.PendingTeam = token.ZeroAddress
	if err := s.store.SaveState(next); err != nil {
		return fmt.Errorf("emission: persist state: %w", err)
	}
	s.state = next

	s.log.Info().Str("team", caller.String()).Msg("team handover accepted")
	return nil
}

// SetTeamRate sets the team markup rate in bps, bounded by MaxTeamRate.
// Only the current team may call it.
func (s *Scheduler) SetTeamRate(caller token.Address, rate uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if caller != s.state.Team {
		return fmt.Errorf("%w: caller %s is not the team", ErrNotAuthorized, caller)
	}
	if rate > MaxTeamRate {
		return fmt.Errorf("%w: team rate %d > %d", ErrRateOutOfBounds, rate, MaxTeamRate)
	}

	next := s.state.Clone()
	next.TeamRate = rate
	if err := s.store.SaveState(next); err != nil {
		return fmt.Errorf("emission: persist state: %w", err)
	}
	s.state = next

	s.log.Info().Uint64("team_rate", rate).Msg("team rate updated")
	return nil
}
