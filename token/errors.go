package token

import "errors"

var (
	// ErrInvalidAmount indicates an amount string or value that cannot be
	// parsed.
	ErrInvalidAmount = errors.New("token: invalid amount")

	// ErrNegativeAmount indicates an operation that would produce a negative
	// amount.
	ErrNegativeAmount = errors.New("token: negative amount")

	// ErrDivideByZero indicates a division by a zero amount.
	ErrDivideByZero = errors.New("token: division by zero")

	// ErrInvalidAddress indicates a malformed address.
	ErrInvalidAddress = errors.New("token: invalid address")

	// ErrZeroAddress indicates the null address where a real account is
	// required.
	ErrZeroAddress = errors.New("token: zero address")

	// ErrNotMinter indicates the caller does not hold the minting authority.
	ErrNotMinter = errors.New("token: caller is not the minter")

	// ErrInsufficientFunds indicates a transfer exceeding the sender balance.
	ErrInsufficientFunds = errors.New("token: insufficient funds")

	// ErrInsufficientAllowance indicates a pull exceeding the approved
	// allowance.
	ErrInsufficientAllowance = errors.New("token: insufficient allowance")
)
