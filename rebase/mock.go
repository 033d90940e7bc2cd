package rebase

import "context"

// MockDistributor is a test double for Distributor.
// The function field must be set before the method is called.
type MockDistributor struct {
	CheckpointTokenFn func(ctx context.Context) error
}

var _ Distributor = (*MockDistributor)(nil)

func (m *MockDistributor) CheckpointToken(ctx context.Context) error {
	return m.CheckpointTokenFn(ctx)
}
