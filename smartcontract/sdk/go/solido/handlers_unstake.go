package solido

import "github.com/gagliardetto/solana-go"

// UnstakeParams resolves HandleUnstake's inputs: the maintainer is splitting
// amount out of an active stake account into a new deactivating one.
type UnstakeParams struct {
	Caller     solana.PublicKey
	VotePubkey solana.PublicKey
	Amount     SolAmount
}

// HandleUnstake moves amount from the validator's active stake balance into
// its unstake (deactivating) balance. The actual split-and-deactivate
// syscall is a cross-program invocation the caller performs alongside this
// state update. Gated to a whitelisted maintainer.
func HandleUnstake(s *State, p UnstakeParams) (*State, uint64, MaintenanceOutput, error) {
	if err := requireMaintainer(s, p.Caller); err != nil {
		return nil, 0, MaintenanceOutput{}, err
	}
	v, err := s.FindValidator(p.VotePubkey)
	if err != nil {
		return nil, 0, MaintenanceOutput{}, err
	}
	if p.Amount == 0 {
		return nil, 0, MaintenanceOutput{}, NewError(ErrInvalidAmount, "unstake amount must be > 0")
	}
	if p.Amount > v.StakeAccountsBalance {
		return nil, 0, MaintenanceOutput{}, NewError(ErrInvalidAmount, "unstake amount exceeds stake-account balance")
	}

	v.StakeAccountsBalance, err = SubSol(v.StakeAccountsBalance, p.Amount)
	if err != nil {
		return nil, 0, MaintenanceOutput{}, err
	}
	v.UnstakeAccountsBalance, err = AddSol(v.UnstakeAccountsBalance, p.Amount)
	if err != nil {
		return nil, 0, MaintenanceOutput{}, err
	}

	seed := v.UnstakeSeeds.End
	v.UnstakeSeeds.End++

	return s, seed, MaintenanceOutput{Instruction: InstructionUnstake, Validator: p.VotePubkey}, nil
}

// WithdrawInactiveStakeParams resolves HandleWithdrawInactiveStake's inputs.
type WithdrawInactiveStakeParams struct {
	Caller         solana.PublicKey
	VotePubkey     solana.PublicKey
	InactiveAmount SolAmount
}

// HandleWithdrawInactiveStake moves a validator's now-inactive unstake
// balance back to the reserve, advancing unstake_seeds.begin. Gated to a
// whitelisted maintainer.
func HandleWithdrawInactiveStake(s *State, p WithdrawInactiveStakeParams) (*State, MaintenanceOutput, error) {
	if err := requireMaintainer(s, p.Caller); err != nil {
		return nil, MaintenanceOutput{}, err
	}
	v, err := s.FindValidator(p.VotePubkey)
	if err != nil {
		return nil, MaintenanceOutput{}, err
	}
	if v.UnstakeSeeds.IsEmpty() {
		return nil, MaintenanceOutput{}, NewError(ErrInvalidStakeAccount, "no unstake accounts to withdraw")
	}
	if p.InactiveAmount > v.UnstakeAccountsBalance {
		return nil, MaintenanceOutput{}, NewError(ErrInvalidAmount, "inactive amount exceeds unstake-account balance")
	}

	v.UnstakeAccountsBalance, err = SubSol(v.UnstakeAccountsBalance, p.InactiveAmount)
	if err != nil {
		return nil, MaintenanceOutput{}, err
	}
	v.UnstakeSeeds.Begin++

	return s, MaintenanceOutput{Instruction: InstructionWithdrawInactiveStake, Validator: p.VotePubkey}, nil
}

// WithdrawParams resolves the user withdrawal path: burn st_sol_amount,
// release the equivalent SOL from the validator with the largest effective
// stake (chosen by the caller, per spec.md §4.8, to drive toward balance).
type WithdrawParams struct {
	StSolAmount StSolAmount
	SourceVote  solana.PublicKey
}

// HandleWithdraw burns st_sol_amount stSOL and returns the SOL amount a new
// stake account delegated to SourceVote must be created with.
func HandleWithdraw(s *State, p WithdrawParams) (*State, SolAmount, MaintenanceOutput, error) {
	if p.StSolAmount == 0 {
		return nil, 0, MaintenanceOutput{}, NewError(ErrInvalidAmount, "withdraw amount must be > 0")
	}

	v, err := s.FindValidator(p.SourceVote)
	if err != nil {
		return nil, 0, MaintenanceOutput{}, err
	}

	solAmount, err := s.ExchangeRate.ToSol(p.StSolAmount)
	if err != nil {
		return nil, 0, MaintenanceOutput{}, err
	}
	if solAmount > v.StakeAccountsBalance {
		return nil, 0, MaintenanceOutput{}, NewError(ErrInvalidAmount, "withdrawal exceeds source validator's stake balance")
	}

	v.StakeAccountsBalance, err = SubSol(v.StakeAccountsBalance, solAmount)
	if err != nil {
		return nil, 0, MaintenanceOutput{}, err
	}

	s.Metrics.WithdrawCount++
	s.Metrics.WithdrawTotal, err = AddStSol(s.Metrics.WithdrawTotal, p.StSolAmount)
	if err != nil {
		return nil, 0, MaintenanceOutput{}, err
	}

	return s, solAmount, withdrawOutput(p.StSolAmount, solAmount, p.SourceVote), nil
}

// LargestEffectiveStakeValidator picks the source validator for a user
// withdrawal: the one with the greatest stake_accounts_balance, which the
// withdrawal path drains from to drive the pool toward balance.
func LargestEffectiveStakeValidator(s *State) (solana.PublicKey, bool) {
	var best solana.PublicKey
	var bestBalance SolAmount
	found := false
	s.Validators.Iterate(func(pubkey solana.PublicKey, v *Validator) {
		if !found || v.StakeAccountsBalance > bestBalance {
			best = pubkey
			bestBalance = v.StakeAccountsBalance
			found = true
		}
	})
	return best, found
}
