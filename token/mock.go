package token

import "context"

// MockLedger is a test double for AssetLedger.
// All function fields must be set before the corresponding method is called.
type MockLedger struct {
	TotalSupplyFn func(ctx context.Context) (Amount, error)
	BalanceOfFn   func(ctx context.Context, addr Address) (Amount, error)
	MintFn        func(ctx context.Context, to Address, amount Amount) error
	TransferFn    func(ctx context.Context, to Address, amount Amount) error
	ApproveFn     func(ctx context.Context, spender Address, amount Amount) error
}

var _ AssetLedger = (*MockLedger)(nil)

func (m *MockLedger) TotalSupply(ctx context.Context) (Amount, error) {
	return m.TotalSupplyFn(ctx)
}
func (m *MockLedger) BalanceOf(ctx context.Context, addr Address) (Amount, error) {
	return m.BalanceOfFn(ctx, addr)
}
func (m *MockLedger) Mint(ctx context.Context, to Address, amount Amount) error {
	return m.MintFn(ctx, to, amount)
}
func (m *MockLedger) Transfer(ctx context.Context, to Address, amount Amount) error {
	return m.TransferFn(ctx, to, amount)
}
func (m *MockLedger) Approve(ctx context.Context, spender Address, amount Amount) error {
	return m.ApproveFn(ctx, spender, amount)
}
