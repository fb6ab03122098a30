package solido

import "github.com/gagliardetto/solana-go"

// AddValidatorParams resolves the preconditions AddValidator must verify
// before admission: the vote account's owner and withdraw authority, and
// its commission/fee bounds, are all checked by the caller against the
// runtime's vote-account state and passed in here already resolved.
type AddValidatorParams struct {
	Caller                   solana.PublicKey
	VotePubkey              solana.PublicKey
	FeeAddress               solana.PublicKey
	VoteAccountOwner         solana.PublicKey
	VoteProgramID            solana.PublicKey
	VoteWithdrawAuthority    solana.PublicKey
	ExpectedWithdrawAuthority solana.PublicKey
	CommissionPercent        uint8
	ValidationFeeBps         uint8
}

// HandleAddValidator inserts a new, initially active validator with empty
// seed ranges. Gated to the manager, per §4.9.
func HandleAddValidator(s *State, p AddValidatorParams) (*State, error) {
	if err := requireManager(s, p.Caller); err != nil {
		return nil, err
	}
	if !p.VoteAccountOwner.Equals(p.VoteProgramID) {
		return nil, NewError(ErrValidatorVoteAccountHasDifferentOwner, "")
	}
	if !p.VoteWithdrawAuthority.Equals(p.ExpectedWithdrawAuthority) {
		return nil, NewError(ErrInvalidVoteAccount, "vote account withdraw authority is not the Solido PDA")
	}
	if p.CommissionPercent > s.MaxCommissionPercentage {
		return nil, NewError(ErrValidationCommissionOutOfBounds, "commission exceeds max_commission_percentage")
	}
	if p.ValidationFeeBps > s.MaxValidationFee {
		return nil, NewError(ErrValidationCommissionOutOfBounds, "validation fee exceeds max_validation_fee")
	}

	v := Validator{
		FeeAddress: p.FeeAddress,
		Active:     true,
	}
	if err := s.Validators.Add(p.VotePubkey, v); err != nil {
		return nil, err
	}
	return s, nil
}

// HandleDeactivateValidator sets active=false. Idempotent: applying it to
// an already-inactive validator is a no-op, not an error. Gated to the
// manager, per §4.9.
func HandleDeactivateValidator(s *State, caller, votePubkey solana.PublicKey) (*State, error) {
	if err := requireManager(s, caller); err != nil {
		return nil, err
	}
	v, err := s.FindValidator(votePubkey)
	if err != nil {
		return nil, err
	}
	v.Active = false
	return s, nil
}

// HandleDeactivateValidatorIfCommissionExceedsMax deactivates a validator
// automatically when its currently observed commission exceeds the policy
// cap, mirroring the check inside UpdateStakeAccountBalance but callable on
// its own. Gated to a whitelisted maintainer, the same off-chain submitter
// UpdateStakeAccountBalance trusts.
func HandleDeactivateValidatorIfCommissionExceedsMax(s *State, caller, votePubkey solana.PublicKey, commissionPercent uint8) (*State, bool, error) {
	if err := requireMaintainer(s, caller); err != nil {
		return nil, false, err
	}
	v, err := s.FindValidator(votePubkey)
	if err != nil {
		return nil, false, err
	}
	if commissionPercent <= s.MaxCommissionPercentage {
		return s, false, nil
	}
	v.Active = false
	return s, true, nil
}

// HandleRemoveValidator removes a validator, succeeding only when it is
// inactive, holds zero stake/unstake ranges, and has zero fee credit. Gated
// to the manager, per §4.9.
func HandleRemoveValidator(s *State, caller, votePubkey solana.PublicKey) (*State, error) {
	if err := requireManager(s, caller); err != nil {
		return nil, err
	}
	v, ok := s.Validators.Get(votePubkey)
	if !ok {
		return nil, NewError(ErrValidatorNotFound, votePubkey.String())
	}
	if v.Active {
		return nil, NewError(ErrValidatorIsStillActive, "")
	}
	if !v.StakeSeeds.IsEmpty() || !v.UnstakeSeeds.IsEmpty() {
		return nil, NewError(ErrInvalidStakeAccount, "validator still has stake or unstake accounts")
	}
	if v.FeeCredit != 0 {
		return nil, NewError(ErrValidatorHasUnclaimedCredit, "")
	}
	if _, err := s.Validators.Remove(votePubkey); err != nil {
		return nil, err
	}
	return s, nil
}
