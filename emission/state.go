package emission

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/neptunefi/libneptune-go/token"
)

// State is the scheduler's singleton persistent state. It is owned by the
// Scheduler and mutated only through its operations; everything else sees
// copies.
type State struct {
	// ActivePeriod is the start of the current epoch: unix seconds, always a
	// multiple of EpochLength, monotonically non-decreasing.
	ActivePeriod int64

	// EpochCount is incremented exactly once per successful advance.
	EpochCount uint64

	// WeeklyTarget is the pre-tail emission target. Frozen permanently once
	// it drops below TailStart.
	WeeklyTarget token.Amount

	// TailRate is the tail emission rate in bps of total supply, within
	// [MinTailRate, MaxTailRate].
	TailRate uint64

	// TeamRate is the team markup rate in bps, within [0, MaxTeamRate].
	TeamRate uint64

	// Team receives the team share. PendingTeam is the proposed successor in
	// the two-step handshake, zero when no handover is in flight.
	Team        token.Address
	PendingTeam token.Address
}

// NewGenesisState returns the state written at first construction:
// ActivePeriod floored to the current boundary, so the first emission is
// claimable only at the next one.
func NewGenesisState(now time.Time, team token.Address) (*State, error) {
	if team.IsZero() {
		return nil, fmt.Errorf("%w: team", ErrZeroAddress)
	}
	return &State{
		ActivePeriod: EpochStart(now.Unix()),
		WeeklyTarget: InitialWeekly,
		TailRate:     DefaultTailRate,
		TeamRate:     DefaultTeamRate,
		Team:         team,
	}, nil
}

// Tail reports whether the scheduler is in tail-emission regime.
func (s *State) Tail() bool {
	return s.WeeklyTarget.Cmp(TailStart) < 0
}

// Clone returns a copy of the state.
func (s *State) Clone() *State {
	c := *s
	return &c
}

// Validate checks the state invariants. Run after every decode.
func (s *State) Validate() error {
	if s.ActivePeriod < 0 || s.ActivePeriod%EpochLength != 0 {
		return fmt.Errorf("%w: active period %d not epoch-aligned", ErrInvalidState, s.ActivePeriod)
	}
	if s.TailRate < MinTailRate || s.TailRate > MaxTailRate {
		return fmt.Errorf("%w: tail rate %d", ErrInvalidState, s.TailRate)
	}
	if s.TeamRate > MaxTeamRate {
		return fmt.Errorf("%w: team rate %d", ErrInvalidState, s.TeamRate)
	}
	if s.Team.IsZero() {
		return fmt.Errorf("%w: zero team address", ErrInvalidState)
	}
	return nil
}

const (
	stateVersion = 1

	// version(1) + active_period(8) + epoch_count(8) + tail_rate(8) +
	// team_rate(8) + team(20) + pending_team(20) + weekly_len(2)
	stateHeaderSize = 75
)

// SerializeState encodes a State to its binary storage format.
func SerializeState(st *State) ([]byte, error) {
	if st == nil {
		return nil, fmt.Errorf("%w: state", ErrNilParam)
	}
	weekly := st.WeeklyTarget.Bytes()
	if len(weekly) > math.MaxUint16 {
		return nil, fmt.Errorf("%w: weekly target out of range", ErrInvalidState)
	}
	buf := make([]byte, stateHeaderSize+len(weekly))
	offset := 0

	buf[offset] = stateVersion
	offset++

	binary.BigEndian.PutUint64(buf[offset:offset+8], uint64(st.ActivePeriod))
	offset += 8

	binary.BigEndian.PutUint64(buf[offset:offset+8], st.EpochCount)
	offset += 8

	binary.BigEndian.PutUint64(buf[offset:offset+8], st.TailRate)
	offset += 8

	binary.BigEndian.PutUint64(buf[offset:offset+8], st.TeamRate)
	offset += 8

	copy(buf[offset:offset+token.AddressLen], st.Team[:])
	offset += token.AddressLen

	copy(buf[offset:offset+token.AddressLen], st.PendingTeam[:])
	offset += token.AddressLen

	binary.BigEndian.PutUint16(buf[offset:offset+2], uint16(len(weekly)))
	offset += 2

	copy(buf[offset:], weekly)
	return buf, nil
}

// DeserializeState decodes binary data into a State. The result is not
// validated; callers decide whether to enforce Validate.
func DeserializeState(data []byte) (*State, error) {
	if len(data) < stateHeaderSize {
		return nil, fmt.Errorf("%w: too short (%d bytes)", ErrInvalidState, len(data))
	}
	offset := 0

	if data[offset] != stateVersion {
		return nil, fmt.Errorf("%w: unknown version %d", ErrInvalidState, data[offset])
	}
	offset++

	st := &State{}
	st.ActivePeriod = int64(binary.BigEndian.Uint64(data[offset : offset+8]))
	offset += 8

	st.EpochCount = binary.BigEndian.Uint64(data[offset : offset+8])
	offset += 8

	st.TailRate = binary.BigEndian.Uint64(data[offset : offset+8])
	offset += 8

	st.TeamRate = binary.BigEndian.Uint64(data[offset : offset+8])
	offset += 8

	copy(st.Team[:], data[offset:offset+token.AddressLen])
	offset += token.AddressLen

	copy(st.PendingTeam[:], data[offset:offset+token.AddressLen])
	offset += token.AddressLen

	weeklyLen := int(binary.BigEndian.Uint16(data[offset : offset+2]))
	offset += 2

	if len(data) < stateHeaderSize+weeklyLen {
		return nil, fmt.Errorf("%w: expected %d bytes for weekly target, got %d",
			ErrInvalidState, stateHeaderSize+weeklyLen, len(data))
	}
	st.WeeklyTarget = token.AmountFromBytes(data[offset : offset+weeklyLen])
	return st, nil
}
