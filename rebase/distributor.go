// Package rebase defines the reward-distribution ledger consumed by the
// emission scheduler. The scheduler transfers each epoch's growth (rebase)
// amount to the distributor account and then signals the checkpoint.
package rebase

import "context"

// Distributor is told when new rebase balance has landed on its account.
type Distributor interface {
	// CheckpointToken makes the distributor account for balance received
	// since the previous checkpoint. Called strictly after the transfer.
	CheckpointToken(ctx context.Context) error
}
