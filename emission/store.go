package emission

import (
	"fmt"
	"sync"

	"github.com/neptunefi/libneptune-go/token"
	"github.com/neptunefi/libneptune-go/voter"
)

// EpochRecord summarizes one completed period advance.
type EpochRecord struct {
	Epoch         uint64       // epoch number after the advance
	Period        int64        // epoch start, unix seconds
	Emission      token.Amount // amount routed to rewards
	Growth        token.Amount // rebase amount sent to the distributor
	TeamEmissions token.Amount // team markup
	Minted        token.Amount // shortfall actually minted
	TotalSupply   token.Amount // total supply after the mint
	Tail          bool         // tail-regime emission
}

// NudgeRecord records one tail-rate nudge. Its presence for a period is the
// once-per-epoch guard.
type NudgeRecord struct {
	Period  int64
	OldRate uint64
	NewRate uint64
	Outcome voter.Outcome
}

// StateStore persists the scheduler state, the epoch archive and the nudge
// guard.
type StateStore interface {
	// LoadState returns the persisted state, or ErrStateNotFound.
	LoadState() (*State, error)

	// SaveState persists the state, replacing any previous one.
	SaveState(st *State) error

	// PutEpoch appends an epoch record.
	PutEpoch(rec *EpochRecord) error

	// GetEpoch returns the record for an epoch number, or ErrEpochNotFound.
	GetEpoch(epoch uint64) (*EpochRecord, error)

	// LastEpoch returns the record with the greatest epoch number, or
	// ErrEpochNotFound if none exists.
	LastEpoch() (*EpochRecord, error)

	// HasNudge reports whether a nudge is recorded for the period.
	HasNudge(period int64) (bool, error)

	// ApplyNudge persists st and rec together, failing with ErrAlreadyNudged
	// if the period is already marked. The check and both writes are one
	// atomic step.
	ApplyNudge(st *State, rec *NudgeRecord) error

	// GetNudge returns the nudge record for a period, or ErrNudgeNotFound.
	GetNudge(period int64) (*NudgeRecord, error)
}

// MemoryStore is an in-memory StateStore for tests and throwaway runs.
type MemoryStore struct {
	mu        sync.RWMutex
	state     *State
	epochs    map[uint64]*EpochRecord
	lastEpoch uint64
	hasEpoch  bool
	nudges    map[int64]*NudgeRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		epochs: make(map[uint64]*EpochRecord),
		nudges: make(map[int64]*NudgeRecord),
	}
}

var _ StateStore = (*MemoryStore)(nil)

// LoadState returns a copy of the stored state.
func (s *MemoryStore) LoadState() (*State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == nil {
		return nil, ErrStateNotFound
	}
	return s.state.Clone(), nil
}

// SaveState stores a copy of st.
func (s *MemoryStore) SaveState(st *State) error {
	if st == nil {
		return fmt.Errorf("%w: state", ErrNilParam)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st.Clone()
	return nil
}

// PutEpoch stores a copy of rec.
func (s *MemoryStore) PutEpoch(rec *EpochRecord) error {
	if rec == nil {
		return fmt.Errorf("%w: epoch record", ErrNilParam)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *rec
	s.epochs[rec.Epoch] = &c
	if !s.hasEpoch || rec.Epoch > s.lastEpoch {
		s.lastEpoch = rec.Epoch
		s.hasEpoch = true
	}
	return nil
}

// GetEpoch returns the record for an epoch number.
func (s *MemoryStore) GetEpoch(epoch uint64) (*EpochRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.epochs[epoch]
	if !ok {
		return nil, fmt.Errorf("%w: epoch %d", ErrEpochNotFound, epoch)
	}
	c := *rec
	return &c, nil
}

// LastEpoch returns the most recent epoch record.
func (s *MemoryStore) LastEpoch() (*EpochRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hasEpoch {
		return nil, ErrEpochNotFound
	}
	c := *s.epochs[s.lastEpoch]
	return &c, nil
}

// HasNudge reports whether the period is marked nudged.
func (s *MemoryStore) HasNudge(period int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.nudges[period]
	return ok, nil
}

// ApplyNudge marks the period and persists the state in one step.
func (s *MemoryStore) ApplyNudge(st *State, rec *NudgeRecord) error {
	if st == nil {
		return fmt.Errorf("%w: state", ErrNilParam)
	}
	if rec == nil {
		return fmt.Errorf("%w: nudge record", ErrNilParam)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.nudges[rec.Period]; ok {
		return fmt.Errorf("%w: period %d", ErrAlreadyNudged, rec.Period)
	}
	c := *rec
	s.nudges[rec.Period] = &c
	s.state = st.Clone()
	return nil
}

// GetNudge returns the nudge record for a period.
func (s *MemoryStore) GetNudge(period int64) (*NudgeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.nudges[period]
	if !ok {
		return nil, fmt.Errorf("%w: period %d", ErrNudgeNotFound, period)
	}
	c := *rec
	return &c, nil
}
