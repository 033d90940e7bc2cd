package rebase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/neptunefi/libneptune-go/token"
)

// TokenCheckpoint records balance received by the distributor between two
// checkpoint calls.
type TokenCheckpoint struct {
	Time   int64
	Amount token.Amount
}

// MemoryDistributor is an in-memory distribution ledger. It watches its own
// account balance and turns every CheckpointToken call into a checkpoint of
// the balance received since the previous call.
type MemoryDistributor struct {
	ledger *token.MemoryLedger
	addr   token.Address
	now    func() time.Time

	mu          sync.Mutex
	seen        token.Amount
	checkpoints []TokenCheckpoint
}

// NewMemoryDistributor creates a distributor watching addr on the ledger.
func NewMemoryDistributor(ledger *token.MemoryLedger, addr token.Address) *MemoryDistributor {
	return &MemoryDistributor{ledger: ledger, addr: addr, now: time.Now}
}

var _ Distributor = (*MemoryDistributor)(nil)

// SetClock overrides the checkpoint clock. Test hook.
func (d *MemoryDistributor) SetClock(now func() time.Time) {
	d.now = now
}

// Addr returns the distributor's ledger account address.
func (d *MemoryDistributor) Addr() token.Address {
	return d.addr
}

// CheckpointToken accounts for balance received since the last checkpoint.
func (d *MemoryDistributor) CheckpointToken(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	bal, err := d.ledger.BalanceOf(ctx, d.addr)
	if err != nil {
		return fmt.Errorf("rebase: read balance: %w", err)
	}
	received, err := bal.Sub(d.seen)
	if err != nil {
		// Balance dropped between checkpoints (tokens left the account);
		// nothing new to account for.
		received = token.Amount{}
	}
	d.seen = bal
	d.checkpoints = append(d.checkpoints, TokenCheckpoint{
		Time:   d.now().Unix(),
		Amount: received,
	})
	return nil
}

// Checkpoints returns all checkpoints in call order.
func (d *MemoryDistributor) Checkpoints() []TokenCheckpoint {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]TokenCheckpoint, len(d.checkpoints))
	copy(out, d.checkpoints)
	return out
}
