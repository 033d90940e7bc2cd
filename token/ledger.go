package token

import "context"

// AssetLedger is the view of the Neptune ledger held by a single account.
// Transfer and Approve act on behalf of that account; Mint requires it to be
// the ledger's minting authority.
type AssetLedger interface {
	// TotalSupply returns the current total NPT supply.
	TotalSupply(ctx context.Context) (Amount, error)

	// BalanceOf returns the balance of an account.
	BalanceOf(ctx context.Context, addr Address) (Amount, error)

	// Mint creates amount new units on the target account.
	Mint(ctx context.Context, to Address, amount Amount) error

	// Transfer moves amount from the bound account to the target.
	Transfer(ctx context.Context, to Address, amount Amount) error

	// Approve authorizes spender to pull up to amount from the bound account.
	// A repeat call replaces the previous authorization.
	Approve(ctx context.Context, spender Address, amount Amount) error
}
