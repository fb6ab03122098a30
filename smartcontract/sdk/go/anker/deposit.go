package anker

import (
	"github.com/gagliardetto/solana-go"

	"github.com/chorusone/solido-go/smartcontract/sdk/go/solido"
)

// DepositParams resolves the inputs to Deposit: the stSOL amount the user
// is wrapping, and the reserve/mint accounts the caller supplied, checked
// against the derived addresses stored on State.
type DepositParams struct {
	StSolAmount    solido.StSolAmount
	ReserveAccount solana.PublicKey
	BSolMint       solana.PublicKey
}

// HandleDeposit wraps stSOL into bSOL. Following the original program's
// process_deposit: the bSOL minted is not 1:1 with the stSOL deposited,
// it is 1:1 with the *SOL value* that stSOL carries at Solido's current
// exchange rate, so bSOL tracks underlying SOL value the same way stSOL
// tracks it relative to the reserve.
func HandleDeposit(s *State, solidoState *solido.State, p DepositParams) (*State, solido.BSolAmount, error) {
	if p.StSolAmount == 0 {
		return nil, 0, NewError(ErrInvalidAmount, "deposit amount must be > 0")
	}
	if !p.ReserveAccount.Equals(s.ReserveAccount) {
		return nil, 0, NewError(ErrInvalidDerivedAccount, "reserve account does not match the instance's derived reserve")
	}
	if !p.BSolMint.Equals(s.BSolMint) {
		return nil, 0, NewError(ErrInvalidTokenMint, "bSOL mint does not match the instance's configured mint")
	}

	solValue, err := solidoState.ExchangeRate.ToSol(p.StSolAmount)
	if err != nil {
		return nil, 0, err
	}
	bSolAmount := solido.BSolAmount(solValue)

	s.Metrics.DepositCount++
	total, err := solido.AddStSol(solido.StSolAmount(s.Metrics.DepositTotal), p.StSolAmount)
	if err != nil {
		return nil, 0, err
	}
	s.Metrics.DepositTotal = uint64(total)

	return s, bSolAmount, nil
}
