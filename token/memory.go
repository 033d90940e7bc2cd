package token

import (
	"context"
	"fmt"
	"sync"
)

// MemoryLedger is an in-memory NPT ledger with balances, allowances, total
// supply and a single minting authority. It is the reference ledger used in
// tests and local deployments; production wiring talks to a node instead.
//
// Methods take the acting principal explicitly. Use Account to obtain an
// AssetLedger bound to one account.
type MemoryLedger struct {
	mu         sync.RWMutex
	balances   map[Address]Amount
	allowances map[Address]map[Address]Amount // owner -> spender -> remaining
	supply     Amount
	minter     Address
}

// NewMemoryLedger creates an empty ledger with the given minting authority.
func NewMemoryLedger(minter Address) *MemoryLedger {
	return &MemoryLedger{
		balances:   make(map[Address]Amount),
		allowances: make(map[Address]map[Address]Amount),
		minter:     minter,
	}
}

// TotalSupply returns the current total supply.
func (l *MemoryLedger) TotalSupply(ctx context.Context) (Amount, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.supply, nil
}

// BalanceOf returns the balance of addr.
func (l *MemoryLedger) BalanceOf(ctx context.Context, addr Address) (Amount, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[addr], nil
}

// Allowance returns how much spender may still pull from owner.
func (l *MemoryLedger) Allowance(ctx context.Context, owner, spender Address) (Amount, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.allowances[owner][spender], nil
}

// Minter returns the current minting authority.
func (l *MemoryLedger) Minter(ctx context.Context) (Address, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.minter, nil
}

// SetMinter hands the minting authority to next. Only the current minter may
// call it.
func (l *MemoryLedger) SetMinter(ctx context.Context, caller, next Address) error {
	if next.IsZero() {
		return ErrZeroAddress
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if caller != l.minter {
		return fmt.Errorf("%w: %s", ErrNotMinter, caller)
	}
	l.minter = next
	return nil
}

// Mint creates amount new units on to. caller must be the minting authority.
func (l *MemoryLedger) Mint(ctx context.Context, caller, to Address, amount Amount) error {
	if to.IsZero() {
		return ErrZeroAddress
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if caller != l.minter {
		return fmt.Errorf("%w: %s", ErrNotMinter, caller)
	}
	l.balances[to] = l.balances[to].Add(amount)
	l.supply = l.supply.Add(amount)
	return nil
}

// Transfer moves amount from from to to.
func (l *MemoryLedger) Transfer(ctx context.Context, from, to Address, amount Amount) error {
	if to.IsZero() {
		return ErrZeroAddress
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.move(from, to, amount)
}

// Approve authorizes spender to pull up to amount from owner, replacing any
// previous authorization.
func (l *MemoryLedger) Approve(ctx context.Context, owner, spender Address, amount Amount) error {
	if spender.IsZero() {
		return ErrZeroAddress
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	m := l.allowances[owner]
	if m == nil {
		m = make(map[Address]Amount)
		l.allowances[owner] = m
	}
	m[spender] = amount
	return nil
}

// TransferFrom lets spender move amount from owner to to, consuming
// allowance.
func (l *MemoryLedger) TransferFrom(ctx context.Context, spender, owner, to Address, amount Amount) error {
	if to.IsZero() {
		return ErrZeroAddress
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	remaining := l.allowances[owner][spender]
	left, err := remaining.Sub(amount)
	if err != nil {
		return fmt.Errorf("%w: %s of %s approved", ErrInsufficientAllowance, amount, remaining)
	}
	if err := l.move(owner, to, amount); err != nil {
		return err
	}
	l.allowances[owner][spender] = left
	return nil
}

// move debits from and credits to. Callers hold the write lock.
func (l *MemoryLedger) move(from, to Address, amount Amount) error {
	left, err := l.balances[from].Sub(amount)
	if err != nil {
		return fmt.Errorf("%w: balance %s, need %s", ErrInsufficientFunds, l.balances[from], amount)
	}
	l.balances[from] = left
	l.balances[to] = l.balances[to].Add(amount)
	return nil
}

// Account returns an AssetLedger bound to owner.
func (l *MemoryLedger) Account(owner Address) AssetLedger {
	return &boundAccount{ledger: l, owner: owner}
}

// boundAccount adapts MemoryLedger to AssetLedger for one account.
type boundAccount struct {
	ledger *MemoryLedger
	owner  Address
}

var _ AssetLedger = (*boundAccount)(nil)

func (b *boundAccount) TotalSupply(ctx context.Context) (Amount, error) {
	return b.ledger.TotalSupply(ctx)
}

func (b *boundAccount) BalanceOf(ctx context.Context, addr Address) (Amount, error) {
	return b.ledger.BalanceOf(ctx, addr)
}

func (b *boundAccount) Mint(ctx context.Context, to Address, amount Amount) error {
	return b.ledger.Mint(ctx, b.owner, to, amount)
}

func (b *boundAccount) Transfer(ctx context.Context, to Address, amount Amount) error {
	return b.ledger.Transfer(ctx, b.owner, to, amount)
}

func (b *boundAccount) Approve(ctx context.Context, spender Address, amount Amount) error {
	return b.ledger.Approve(ctx, b.owner, spender, amount)
}
