package voter

import (
	"context"

	"github.com/neptunefi/libneptune-go/token"
)

// MockSnapshot is a test double for VotingSnapshot.
// All function fields must be set before the corresponding method is called.
type MockSnapshot struct {
	TotalSupplyAtFn func(ctx context.Context, ts int64) (token.Amount, error)
}

var _ VotingSnapshot = (*MockSnapshot)(nil)

func (m *MockSnapshot) TotalSupplyAt(ctx context.Context, ts int64) (token.Amount, error) {
	return m.TotalSupplyAtFn(ctx, ts)
}

// MockRouter is a test double for RewardRouter.
type MockRouter struct {
	NotifyRewardAmountFn func(ctx context.Context, amount token.Amount) error
	EpochGovernorFn      func(ctx context.Context) (token.Address, error)
}

var _ RewardRouter = (*MockRouter)(nil)

func (m *MockRouter) NotifyRewardAmount(ctx context.Context, amount token.Amount) error {
	return m.NotifyRewardAmountFn(ctx, amount)
}

func (m *MockRouter) EpochGovernor(ctx context.Context) (token.Address, error) {
	return m.EpochGovernorFn(ctx)
}

// MockOracle is a test double for GovernanceOracle.
type MockOracle struct {
	EpochGovernorFn func(ctx context.Context) (token.Address, error)
	ResultFn        func(ctx context.Context) (Outcome, error)
}

var _ GovernanceOracle = (*MockOracle)(nil)

func (m *MockOracle) EpochGovernor(ctx context.Context) (token.Address, error) {
	return m.EpochGovernorFn(ctx)
}

func (m *MockOracle) Result(ctx context.Context) (Outcome, error) {
	return m.ResultFn(ctx)
}
