package emission

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/neptunefi/libneptune-go/rebase"
	"github.com/neptunefi/libneptune-go/token"
	"github.com/neptunefi/libneptune-go/voter"
)

// Deps wires a Scheduler to its collaborators. All interface fields and all
// addresses except Team are required; Team is consulted only when the store
// holds no state yet.
type Deps struct {
	// Ledger is the asset ledger bound to Addr, the scheduler's own account.
	Ledger token.AssetLedger
	Addr   token.Address

	// Snapshot answers historical locked-supply queries.
	Snapshot voter.VotingSnapshot

	// Router receives emission notifications and designates the epoch
	// governor. RouterAddr is approved to pull each epoch's emission.
	Router     voter.RewardRouter
	RouterAddr token.Address

	// Oracle reports tail-rate proposal outcomes.
	Oracle voter.GovernanceOracle

	// Distributor is checkpointed after the growth transfer lands on
	// DistributorAddr.
	Distributor     rebase.Distributor
	DistributorAddr token.Address

	// Team is the genesis treasury address, used only on first construction.
	Team token.Address

	// Now overrides the epoch clock. Defaults to time.Now.
	Now func() time.Time

	// Logger receives epoch and nudge events. Defaults to a no-op logger.
	Logger *zerolog.Logger
}

// Scheduler owns the emission state machine. All operations are serialized;
// collaborator calls happen inside the same serialized transition.
type Scheduler struct {
	ledger      token.AssetLedger
	snapshot    voter.VotingSnapshot
	router      voter.RewardRouter
	oracle      voter.GovernanceOracle
	distributor rebase.Distributor

	addr            token.Address
	routerAddr      token.Address
	distributorAddr token.Address

	store StateStore
	state *State

	now func() time.Time
	log zerolog.Logger

	mu sync.Mutex
}

// New loads the scheduler from store, writing the genesis state on first
// use.
func New(store StateStore, deps Deps) (*Scheduler, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store", ErrNilParam)
	}
	if deps.Ledger == nil {
		return nil, fmt.Errorf("%w: ledger", ErrNilParam)
	}
	if deps.Snapshot == nil {
		return nil, fmt.Errorf("%w: snapshot", ErrNilParam)
	}
	if deps.Router == nil {
		return nil, fmt.Errorf("%w: router", ErrNilParam)
	}
	if deps.Oracle == nil {
		return nil, fmt.Errorf("%w: oracle", ErrNilParam)
	}
	if deps.Distributor == nil {
		return nil, fmt.Errorf("%w: distributor", ErrNilParam)
	}
	if deps.Addr.IsZero() {
		return nil, fmt.Errorf("%w: scheduler account", ErrZeroAddress)
	}
	if deps.RouterAddr.IsZero() {
		return nil, fmt.Errorf("%w: router account", ErrZeroAddress)
	}
	if deps.DistributorAddr.IsZero() {
		return nil, fmt.Errorf("%w: distributor account", ErrZeroAddress)
	}

	nowFn := deps.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	log := zerolog.Nop()
	if deps.Logger != nil {
		log = *deps.Logger
	}

	st, err := store.LoadState()
	switch {
	case errors.Is(err, ErrStateNotFound):
		st, err = NewGenesisState(nowFn(), deps.Team)
		if err != nil {
			return nil, err
		}
		if err := store.SaveState(st); err != nil {
			return nil, fmt.Errorf("emission: write genesis state: %w", err)
		}
		log.Info().
			Int64("active_period", st.ActivePeriod).
			Str("team", st.Team.String()).
			Msg("genesis state written")
	case err != nil:
		return nil, fmt.Errorf("emission: load state: %w", err)
	default:
		if err := st.Validate(); err != nil {
			return nil, err
		}
	}

	return &Scheduler{
		ledger:          deps.Ledger,
		snapshot:        deps.Snapshot,
		router:          deps.Router,
		oracle:          deps.Oracle,
		distributor:     deps.Distributor,
		addr:            deps.Addr,
		routerAddr:      deps.RouterAddr,
		distributorAddr: deps.DistributorAddr,
		store:           store,
		state:           st,
		now:             nowFn,
		log:             log,
	}, nil
}

// advancePlan is one computed epoch transition: filled in the compute phase,
// applied in commit, settled in notify.
type advancePlan struct {
	epochCount uint64
	period     int64
	weekly     token.Amount // next weekly target (unchanged in tail regime)
	tail       bool
	emission   token.Amount
	growth     token.Amount
	team       token.Amount
	required   token.Amount
	shortfall  token.Amount
}

// Advance performs the period advance. Before the epoch boundary it is a
// no-op returning the unchanged active period; at or after it, it runs one
// full emission transition and returns the new active period.
//
// The transition commits locally before any value moves. A failed mint rolls
// everything back; a failure after the mint leaves the epoch consumed and
// the remaining funds on the scheduler account, where the next epoch's
// shortfall rule reuses them.
func (s *Scheduler) Advance(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().Unix()
	if now < s.state.ActivePeriod+EpochLength {
		return s.state.ActivePeriod, nil
	}

	// Compute phase: one read per collaborator view, no mutations.
	plan, err := s.plan(ctx, now)
	if err != nil {
		return 0, err
	}

	// Commit phase: local state only.
	prior := s.state
	next := prior.Clone()
	next.EpochCount = plan.epochCount
	next.ActivePeriod = plan.period
	next.WeeklyTarget = plan.weekly
	s.state = next
	if err := s.store.SaveState(next); err != nil {
		s.state = prior
		return 0, fmt.Errorf("emission: persist state: %w", err)
	}

	// Notify phase. The mint is the first value-moving call; if it fails,
	// nothing has moved and the commit is undone so the epoch can retry.
	// Failures after the mint leave the epoch consumed: the minted funds sit
	// on the scheduler account and the next epoch's shortfall rule reuses
	// them.
	if !plan.shortfall.IsZero() {
		if err := s.ledger.Mint(ctx, s.addr, plan.shortfall); err != nil {
			mintErr := fmt.Errorf("emission: mint shortfall: %w", err)
			s.state = prior
			if saveErr := s.store.SaveState(prior); saveErr != nil {
				return 0, errors.Join(mintErr, fmt.Errorf("emission: restore state: %w", saveErr))
			}
			return 0, mintErr
		}
	}
	if err := s.distribute(ctx, plan); err != nil {
		return 0, err
	}
	return plan.period, nil
}

// plan computes the epoch transition from the current state.
func (s *Scheduler) plan(ctx context.Context, now int64) (*advancePlan, error) {
	st := s.state
	p := &advancePlan{
		epochCount: st.EpochCount + 1,
		period:     EpochStart(now),
		weekly:     st.WeeklyTarget,
		tail:       st.Tail(),
	}

	total, err := s.ledger.TotalSupply(ctx)
	if err != nil {
		return nil, fmt.Errorf("emission: read total supply: %w", err)
	}

	if p.tail {
		p.emission = TailEmission(total, st.TailRate)
	} else {
		p.emission = st.WeeklyTarget
		p.weekly = NextWeeklyTarget(st.WeeklyTarget, p.epochCount)
	}

	locked, err := s.snapshot.TotalSupplyAt(ctx, p.period-1)
	if err != nil {
		return nil, fmt.Errorf("emission: read locked supply: %w", err)
	}
	p.growth, err = GrowthShare(p.emission, total, locked)
	if err != nil {
		return nil, err
	}

	base := p.growth.Add(p.emission)
	p.team, err = TeamShare(base, st.TeamRate)
	if err != nil {
		return nil, err
	}
	p.required = base.Add(p.team)

	balance, err := s.ledger.BalanceOf(ctx, s.addr)
	if err != nil {
		return nil, fmt.Errorf("emission: read balance: %w", err)
	}
	if p.required.Cmp(balance) > 0 {
		p.shortfall, _ = p.required.Sub(balance)
	}
	return p, nil
}

// distribute moves the epoch amounts in the fixed order treasury,
// distribution ledger, reward router, then archives the epoch record.
func (s *Scheduler) distribute(ctx context.Context, plan *advancePlan) error {
	if err := s.ledger.Transfer(ctx, s.state.Team, plan.team); err != nil {
		return fmt.Errorf("emission: transfer team share: %w", err)
	}
	if err := s.ledger.Transfer(ctx, s.distributorAddr, plan.growth); err != nil {
		return fmt.Errorf("emission: transfer growth: %w", err)
	}
	if err := s.distributor.CheckpointToken(ctx); err != nil {
		return fmt.Errorf("emission: checkpoint distributor: %w", err)
	}

	if err := s.ledger.Approve(ctx, s.routerAddr, plan.emission); err != nil {
		return fmt.Errorf("emission: approve router: %w", err)
	}
	if err := s.router.NotifyRewardAmount(ctx, plan.emission); err != nil {
		return fmt.Errorf("emission: notify router: %w", err)
	}

	supply, err := s.ledger.TotalSupply(ctx)
	if err != nil {
		return fmt.Errorf("emission: read post-mint supply: %w", err)
	}

	rec := &EpochRecord{
		Epoch:         plan.epochCount,
		Period:        plan.period,
		Emission:      plan.emission,
		Growth:        plan.growth,
		TeamEmissions: plan.team,
		Minted:        plan.shortfall,
		TotalSupply:   supply,
		Tail:          plan.tail,
	}
	if err := s.store.PutEpoch(rec); err != nil {
		return fmt.Errorf("emission: record epoch: %w", err)
	}

	s.log.Info().
		Uint64("epoch", rec.Epoch).
		Int64("period", rec.Period).
		Str("emission", rec.Emission.String()).
		Str("growth", rec.Growth.String()).
		Str("team", rec.TeamEmissions.String()).
		Str("minted", rec.Minted.String()).
		Str("total_supply", rec.TotalSupply.String()).
		Bool("tail", rec.Tail).
		Msg("epoch advanced")
	return nil
}

// CalculateGrowth returns the rebase share the current epoch would assign to
// a minted amount. Read-only; usable by external observers.
func (s *Scheduler) CalculateGrowth(ctx context.Context, minted token.Amount) (token.Amount, error) {
	s.mu.Lock()
	period := s.state.ActivePeriod
	s.mu.Unlock()

	total, err := s.ledger.TotalSupply(ctx)
	if err != nil {
		return token.Amount{}, fmt.Errorf("emission: read total supply: %w", err)
	}
	locked, err := s.snapshot.TotalSupplyAt(ctx, period-1)
	if err != nil {
		return token.Amount{}, fmt.Errorf("emission: read locked supply: %w", err)
	}
	return GrowthShare(minted, total, locked)
}

// Schedule projects the weekly-target curve for the next n epochs.
func (s *Scheduler) Schedule(n int) []ScheduleEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ProjectSchedule(s.state, n)
}

// State returns a copy of the current scheduler state.
func (s *Scheduler) State() *State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// ActivePeriod returns the start of the current epoch, unix seconds.
func (s *Scheduler) ActivePeriod() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ActivePeriod
}

// EpochCount returns the number of completed advances.
func (s *Scheduler) EpochCount() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.EpochCount
}

// WeeklyTarget returns the current pre-tail emission target.
func (s *Scheduler) WeeklyTarget() token.Amount {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.WeeklyTarget
}

// Tail reports whether the scheduler is in tail-emission regime.
func (s *Scheduler) Tail() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Tail()
}

// TailRate returns the tail emission rate in bps.
func (s *Scheduler) TailRate() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.TailRate
}

// TeamRate returns the team markup rate in bps.
func (s *Scheduler) TeamRate() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.TeamRate
}

// Team returns the treasury address.
func (s *Scheduler) Team() token.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Team
}

// PendingTeam returns the proposed treasury successor, zero when none.
func (s *Scheduler) PendingTeam() token.Address {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.PendingTeam
}

// EpochRecordAt returns the archived record for an epoch number.
func (s *Scheduler) EpochRecordAt(epoch uint64) (*EpochRecord, error) {
	return s.store.GetEpoch(epoch)
}

// LastEpochRecord returns the most recent archived epoch record.
func (s *Scheduler) LastEpochRecord() (*EpochRecord, error) {
	return s.store.LastEpoch()
}

// NudgeRecordAt returns the archived nudge record for a period.
func (s *Scheduler) NudgeRecordAt(period int64) (*NudgeRecord, error) {
	return s.store.GetNudge(period)
}
