// Package token provides the Neptune asset primitives: arbitrary-precision
// amounts, 20-byte account addresses, basis-point math and the asset ledger
// interface consumed by the emission scheduler.
package token

import (
	"fmt"
	"math/big"
)

// Decimals is the number of base units per whole NPT token.
const Decimals = 18

// tokenUnit is 10^Decimals as a big integer. Never mutated.
var tokenUnit = new(big.Int).Exp(big.NewInt(10), big.NewInt(Decimals), nil)

// Amount is a non-negative NPT quantity in base units (1e-18 NPT).
//
// The zero value is a valid zero amount. All operations return new values;
// an Amount is never mutated after creation. Supply-scale quantities exceed
// uint64, so Amount is backed by a big integer throughout.
type Amount struct {
	i big.Int
}

// NewAmount returns an Amount of v base units.
func NewAmount(v uint64) Amount {
	var a Amount
	a.i.SetUint64(v)
	return a
}

// WholeTokens returns an Amount of n whole NPT (n * 1e18 base units).
func WholeTokens(n uint64) Amount {
	var a Amount
	a.i.SetUint64(n)
	a.i.Mul(&a.i, tokenUnit)
	return a
}

// AmountFromBig returns an Amount holding a copy of v.
func AmountFromBig(v *big.Int) (Amount, error) {
	if v == nil {
		return Amount{}, fmt.Errorf("%w: nil value", ErrInvalidAmount)
	}
	if v.Sign() < 0 {
		return Amount{}, fmt.Errorf("%w: %s", ErrNegativeAmount, v.String())
	}
	var a Amount
	a.i.Set(v)
	return a, nil
}

// ParseAmount parses a base-10 string of base units.
func ParseAmount(s string) (Amount, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return AmountFromBig(v)
}

// MustAmount parses a base-10 string of base units and panics on failure.
// Intended for constants and tests.
func MustAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	var r Amount
	r.i.Add(&a.i, &b.i)
	return r
}

// Sub returns a - b, or ErrNegativeAmount if b > a.
func (a Amount) Sub(b Amount) (Amount, error) {
	if a.i.Cmp(&b.i) < 0 {
		return Amount{}, fmt.Errorf("%w: %s - %s", ErrNegativeAmount, a.String(), b.String())
	}
	var r Amount
	r.i.Sub(&a.i, &b.i)
	return r, nil
}

// Mul returns a * b.
func (a Amount) Mul(b Amount) Amount {
	var r Amount
	r.i.Mul(&a.i, &b.i)
	return r
}

// MulUint returns a * n.
func (a Amount) MulUint(n uint64) Amount {
	var r Amount
	r.i.Mul(&a.i, new(big.Int).SetUint64(n))
	return r
}

// Div returns a / b truncated toward zero, or ErrDivideByZero if b is zero.
func (a Amount) Div(b Amount) (Amount, error) {
	if b.IsZero() {
		return Amount{}, ErrDivideByZero
	}
	var r Amount
	r.i.Quo(&a.i, &b.i)
	return r, nil
}

// DivUint returns a / n truncated toward zero, or ErrDivideByZero if n is zero.
func (a Amount) DivUint(n uint64) (Amount, error) {
	if n == 0 {
		return Amount{}, ErrDivideByZero
	}
	var r Amount
	r.i.Quo(&a.i, new(big.Int).SetUint64(n))
	return r, nil
}

// Half returns a / 2 truncated toward zero.
func (a Amount) Half() Amount {
	var r Amount
	r.i.Rsh(&a.i, 1)
	return r
}

// Cmp compares a and b, returning -1, 0 or +1.
func (a Amount) Cmp(b Amount) int {
	return a.i.Cmp(&b.i)
}

// Equal reports whether a == b.
func (a Amount) Equal(b Amount) bool {
	return a.i.Cmp(&b.i) == 0
}

// IsZero reports whether a is zero.
func (a Amount) IsZero() bool {
	return a.i.Sign() == 0
}

// Big returns a copy of the amount as a big integer.
func (a Amount) Big() *big.Int {
	return new(big.Int).Set(&a.i)
}

// Bytes returns the big-endian byte representation, empty for zero.
func (a Amount) Bytes() []byte {
	return a.i.Bytes()
}

// AmountFromBytes reconstructs an Amount from its big-endian bytes.
func AmountFromBytes(b []byte) Amount {
	var a Amount
	a.i.SetBytes(b)
	return a
}

// String returns the amount in base units as a base-10 string.
func (a Amount) String() string {
	return a.i.String()
}

// MarshalText implements encoding.TextMarshaler as a base-10 string.
func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Amount) UnmarshalText(text []byte) error {
	parsed, err := ParseAmount(string(text))
	if err != nil {
		return err
	}
	a.i.Set(&parsed.i)
	return nil
}

// GobEncode implements gob.GobEncoder.
func (a Amount) GobEncode() ([]byte, error) {
	return a.i.GobEncode()
}

// GobDecode implements gob.GobDecoder.
func (a *Amount) GobDecode(data []byte) error {
	if err := a.i.GobDecode(data); err != nil {
		return fmt.Errorf("token: decode amount: %w", err)
	}
	if a.i.Sign() < 0 {
		return fmt.Errorf("%w: %s", ErrNegativeAmount, a.i.String())
	}
	return nil
}
