package solido

import "github.com/gagliardetto/solana-go"

// MinimumStakeDelegation mirrors the runtime's stake-program floor below
// which a delegation is rejected.
const MinimumStakeDelegation = SolAmount(1_000_000_000) // 1 SOL, in lamports

// StakeDepositParams resolves the inputs HandleStakeDeposit needs: the
// vote pubkey, the amount to move from the reserve, which seed-selection
// mode to use, the address the caller supplied for the new stake account,
// and the validator's observed commission (checked against the policy cap).
type StakeDepositParams struct {
	Caller           solana.PublicKey
	VotePubkey       solana.PublicKey
	Amount           SolAmount
	Kind             StakeDepositKind
	SuppliedAddress  solana.PublicKey
	DerivedAddress   solana.PublicKey
	CommissionPercent uint8
}

// HandleStakeDeposit moves amount SOL from the reserve into a new or
// merge-target stake account delegated to the validator. Gated to a
// whitelisted maintainer, per the Glossary's "whitelisted off-chain
// submitter".
func HandleStakeDeposit(s *State, p StakeDepositParams) (*State, MaintenanceOutput, error) {
	if err := requireMaintainer(s, p.Caller); err != nil {
		return nil, MaintenanceOutput{}, err
	}
	v, err := s.FindValidator(p.VotePubkey)
	if err != nil {
		return nil, MaintenanceOutput{}, err
	}
	if !v.Active {
		return nil, MaintenanceOutput{}, NewError(ErrValidatorIsStillActive, "validator is not active")
	}
	if p.Amount < MinimumStakeDelegation {
		return nil, MaintenanceOutput{}, NewError(ErrInvalidAmount, "amount below minimum stake delegation")
	}
	if p.CommissionPercent > s.MaxCommissionPercentage {
		return nil, MaintenanceOutput{}, NewError(ErrValidationCommissionOutOfBounds, "validator commission exceeds policy cap")
	}

	var seed uint64
	switch p.Kind {
	case StakeDepositAppend:
		seed = v.StakeSeeds.End
	case StakeDepositMerge:
		if v.StakeSeeds.Len() == 0 {
			return nil, MaintenanceOutput{}, NewError(ErrInvalidStakeAccount, "no prior stake account to merge into")
		}
		seed = v.StakeSeeds.End - 1
	default:
		return nil, MaintenanceOutput{}, NewError(ErrInvalidInstructionAccounts, "unknown stake-deposit kind")
	}

	if !p.SuppliedAddress.Equals(p.DerivedAddress) {
		return nil, MaintenanceOutput{}, NewError(ErrInvalidStakeAccount, "supplied stake account does not match derivation")
	}

	newBalance, err := AddSol(v.StakeAccountsBalance, p.Amount)
	if err != nil {
		return nil, MaintenanceOutput{}, err
	}
	v.StakeAccountsBalance = newBalance

	if p.Kind == StakeDepositAppend {
		v.StakeSeeds.End++
	}

	return s, stakeDepositOutput(p.VotePubkey, p.Amount, seed), nil
}

// MergeStakeParams resolves HandleMergeStake's inputs.
type MergeStakeParams struct {
	Caller     solana.PublicKey
	VotePubkey solana.PublicKey
	FromSeed   uint64
	ToSeed     uint64
	FromBalance SolAmount
	ToBalance   SolAmount
}

// HandleMergeStake absorbs the `from` stake account into `to`, advancing
// stake_seeds.begin. A validator with fewer than two stake accounts cannot
// merge at all: this is a deliberate error, never a silent no-op. Gated to
// a whitelisted maintainer.
func HandleMergeStake(s *State, p MergeStakeParams) (*State, MaintenanceOutput, error) {
	if err := requireMaintainer(s, p.Caller); err != nil {
		return nil, MaintenanceOutput{}, err
	}
	v, err := s.FindValidator(p.VotePubkey)
	if err != nil {
		return nil, MaintenanceOutput{}, err
	}
	if v.StakeSeeds.Len() < 2 {
		return nil, MaintenanceOutput{}, NewError(ErrInvalidStakeAccount, "validator has fewer than two stake accounts")
	}
	if p.FromSeed != v.StakeSeeds.Begin {
		return nil, MaintenanceOutput{}, NewError(ErrInvalidStakeAccount, "from_seed must equal stake_seeds.begin")
	}
	if p.ToSeed == p.FromSeed {
		return nil, MaintenanceOutput{}, NewError(ErrInvalidStakeAccount, "cannot merge a stake account into itself")
	}

	merged, err := AddSol(p.FromBalance, p.ToBalance)
	if err != nil {
		return nil, MaintenanceOutput{}, err
	}

	v.StakeSeeds.Begin++

	return s, mergeStakeOutput(p.VotePubkey, p.FromSeed, p.ToSeed, merged), nil
}
