package anker

import "github.com/chorusone/solido-go/smartcontract/sdk/go/solido"

// AddBSol returns a+b, failing on overflow, the same checked-arithmetic
// discipline solido.AddSol/AddStSol apply to their own token types.
func AddBSol(a, b solido.BSolAmount) (solido.BSolAmount, error) {
	r := uint64(a) + uint64(b)
	if r < uint64(a) {
		return 0, NewError(ErrInvalidAmount, "BSolAmount addition overflow")
	}
	return solido.BSolAmount(r), nil
}

// SubBSol returns a-b, failing on underflow.
func SubBSol(a, b solido.BSolAmount) (solido.BSolAmount, error) {
	if b > a {
		return 0, NewError(ErrInvalidAmount, "BSolAmount subtraction underflow")
	}
	return a - b, nil
}
