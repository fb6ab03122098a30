package solido

import "math/bits"

// SolAmount, StSolAmount, and BSolAmount are 64-bit counts of the smallest
// indivisible unit of their respective tokens. They are never silently
// convertible into one another; crossing the SOL<->stSOL boundary goes
// through ExchangeRate, and SOL<->bSOL through Anker's own wrapper rate.
type (
	SolAmount   uint64
	StSolAmount uint64
	BSolAmount  uint64
)

// Rational is a checked exchange factor, numerator over denominator.
type Rational struct {
	Numerator   uint64
	Denominator uint64
}

// AddSol returns a+b, failing on overflow.
func AddSol(a, b SolAmount) (SolAmount, error) {
	r := uint64(a) + uint64(b)
	if r < uint64(a) {
		return 0, NewError(ErrCalculationFailure, "SolAmount addition overflow")
	}
	return SolAmount(r), nil
}

// SubSol returns a-b, failing on underflow.
func SubSol(a, b SolAmount) (SolAmount, error) {
	if b > a {
		return 0, NewError(ErrCalculationFailure, "SolAmount subtraction underflow")
	}
	return a - b, nil
}

// AddStSol returns a+b, failing on overflow.
func AddStSol(a, b StSolAmount) (StSolAmount, error) {
	r := uint64(a) + uint64(b)
	if r < uint64(a) {
		return 0, NewError(ErrCalculationFailure, "StSolAmount addition overflow")
	}
	return StSolAmount(r), nil
}

// SubStSol returns a-b, failing on underflow.
func SubStSol(a, b StSolAmount) (StSolAmount, error) {
	if b > a {
		return 0, NewError(ErrCalculationFailure, "StSolAmount subtraction underflow")
	}
	return a - b, nil
}

// MulSolRational multiplies a SOL amount by a Rational in 128-bit width and
// truncates to 64 bits, failing if the result does not fit or den is zero.
func MulSolRational(a SolAmount, r Rational) (SolAmount, error) {
	v, err := mulDivU64(uint64(a), r.Numerator, r.Denominator)
	if err != nil {
		return 0, err
	}
	return SolAmount(v), nil
}

// MulStSolRational multiplies a stSOL amount by a Rational in 128-bit width.
func MulStSolRational(a StSolAmount, r Rational) (StSolAmount, error) {
	v, err := mulDivU64(uint64(a), r.Numerator, r.Denominator)
	if err != nil {
		return 0, err
	}
	return StSolAmount(v), nil
}

// MulSolU64 scales a SOL amount by an integer weight, checked.
func MulSolU64(a SolAmount, n uint64) (SolAmount, error) {
	hi, lo := bits.Mul64(uint64(a), n)
	if hi != 0 {
		return 0, NewError(ErrCalculationFailure, "SolAmount multiplication overflow")
	}
	return SolAmount(lo), nil
}

// DivSolU64 divides a SOL amount by an integer divisor, checked.
func DivSolU64(a SolAmount, n uint64) (SolAmount, error) {
	if n == 0 {
		return 0, NewError(ErrCalculationFailure, "division by zero")
	}
	return SolAmount(uint64(a) / n), nil
}

// mulDivU64 computes floor(a*num/den) in 128-bit width, failing if it
// overflows 64 bits or den is zero.
func mulDivU64(a, num, den uint64) (uint64, error) {
	if den == 0 {
		return 0, NewError(ErrCalculationFailure, "division by zero")
	}
	hi, lo := bits.Mul64(a, num)
	if hi == 0 {
		// Fast path: the product fits in 64 bits already.
		return lo / den, nil
	}
	quo, _, ok := div128by64(hi, lo, den)
	if !ok {
		return 0, NewError(ErrCalculationFailure, "128-bit multiplication does not fit in 64 bits")
	}
	return quo, nil
}

// div128by64 divides the 128-bit value (hi:lo) by y, returning ok=false if
// the quotient would overflow 64 bits.
func div128by64(hi, lo, y uint64) (quo, rem uint64, ok bool) {
	if hi >= y {
		return 0, 0, false
	}
	quo, rem = bits.Div64(hi, lo, y)
	return quo, rem, true
}

// ExchangeRate is the epoch-boundary snapshot that converts between SOL and
// stSOL. It is immutable within an epoch; UpdateExchangeRate is the only
// operation that replaces it.
type ExchangeRate struct {
	ComputedInEpoch uint64
	StSolSupply     StSolAmount
	SolBalance      SolAmount
}

// ToStSol converts a SOL amount to stSOL at this rate. When the supply or
// balance is zero the rate is defined to be 1:1.
func (r ExchangeRate) ToStSol(amount SolAmount) (StSolAmount, error) {
	if r.StSolSupply == 0 || r.SolBalance == 0 {
		return StSolAmount(amount), nil
	}
	v, err := mulDivU64(uint64(amount), uint64(r.StSolSupply), uint64(r.SolBalance))
	if err != nil {
		return 0, err
	}
	return StSolAmount(v), nil
}

// ToSol converts a stSOL amount back to SOL at this rate.
func (r ExchangeRate) ToSol(amount StSolAmount) (SolAmount, error) {
	if r.StSolSupply == 0 || r.SolBalance == 0 {
		return SolAmount(amount), nil
	}
	v, err := mulDivU64(uint64(amount), uint64(r.SolBalance), uint64(r.StSolSupply))
	if err != nil {
		return 0, err
	}
	return SolAmount(v), nil
}
