package token

// MaxBPS is the basis-point denominator: 10000 bps = 100%.
const MaxBPS uint64 = 10_000

// ApplyBPS returns a * bps / 10000, truncated toward zero.
func ApplyBPS(a Amount, bps uint64) Amount {
	r, _ := a.MulUint(bps).DivUint(MaxBPS)
	return r
}
