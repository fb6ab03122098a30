package solido

import "github.com/gagliardetto/solana-go"

// DepositParams is the resolved input to HandleDeposit: the reserve pubkey
// the caller supplied and the one derived from the state, so the handler
// can enforce the regression guard from spec.md §4.3 without performing PDA
// derivation itself.
type DepositParams struct {
	Amount          SolAmount
	SuppliedReserve solana.PublicKey
	DerivedReserve  solana.PublicKey
	StSolMintOfDestination solana.PublicKey
}

// HandleDeposit moves amount SOL into the reserve and mints the equivalent
// stSOL to the user at the current exchange rate. The minted amount is
// returned explicitly: it is the quantity the caller must mint via a
// cross-program invocation to the token program, since the SPL mint's
// supply is not part of SolidoState itself.
func HandleDeposit(s *State, p DepositParams) (*State, StSolAmount, MaintenanceOutput, error) {
	if p.Amount == 0 {
		return nil, 0, MaintenanceOutput{}, NewError(ErrInvalidAmount, "deposit amount must be > 0")
	}
	if !p.SuppliedReserve.Equals(p.DerivedReserve) {
		return nil, 0, MaintenanceOutput{}, NewError(ErrInvalidReserveAccount, "supplied reserve does not match derivation")
	}
	if !p.StSolMintOfDestination.Equals(s.StSolMint) {
		return nil, 0, MaintenanceOutput{}, NewError(ErrInvalidMint, "destination account is not a stSOL token account")
	}

	minted, err := s.ExchangeRate.ToStSol(p.Amount)
	if err != nil {
		return nil, 0, MaintenanceOutput{}, err
	}

	s.Metrics.DepositCount++
	total, err := AddSol(s.Metrics.DepositTotal, p.Amount)
	if err != nil {
		return nil, 0, MaintenanceOutput{}, err
	}
	s.Metrics.DepositTotal = total

	return s, minted, depositOutput(p.Amount, minted), nil
}
