package solido

import "github.com/gagliardetto/solana-go"

// HandleChangeRewardDistribution replaces the four reward weights wholesale;
// the manager is responsible for choosing a sane ratio, the handler does
// not itself reject zero-sum configurations (spec.md §4.6's "all weights
// zero" case is explicitly legal). Gated to the manager, per §4.9.
func HandleChangeRewardDistribution(s *State, caller solana.PublicKey, dist RewardDistribution) (*State, error) {
	if err := requireManager(s, caller); err != nil {
		return nil, err
	}
	s.RewardDistribution = dist
	return s, nil
}

// HandleSetMaxCommissionPercentage updates the policy cap new validators and
// UpdateStakeAccountBalance's misbehavior check are measured against. Gated
// to the manager, per §4.9.
func HandleSetMaxCommissionPercentage(s *State, caller solana.PublicKey, value uint8) (*State, error) {
	if err := requireManager(s, caller); err != nil {
		return nil, err
	}
	s.MaxCommissionPercentage = value
	return s, nil
}

// HandleSetMaxValidationFee updates the policy cap on a validator's
// validation-fee basis points. Gated to the manager, per §4.9.
func HandleSetMaxValidationFee(s *State, caller solana.PublicKey, value uint8) (*State, error) {
	if err := requireManager(s, caller); err != nil {
		return nil, err
	}
	s.MaxValidationFee = value
	return s, nil
}

// HandleClaimValidatorFee pays out a validator's accumulated fee_credit to
// its fee account and zeroes the credit. CollectValidatorFee (discriminator
// 7) and ClaimValidatorFee (discriminator 8) share this same state
// transition in this rendition: collection happens continuously inside
// UpdateStakeAccountBalance, so claiming is simply "mint what's owed". Gated
// to a whitelisted maintainer, the same off-chain submitter that runs
// maintenance.
func HandleClaimValidatorFee(s *State, caller, votePubkey solana.PublicKey) (*State, StSolAmount, error) {
	if err := requireMaintainer(s, caller); err != nil {
		return nil, 0, err
	}
	v, err := s.FindValidator(votePubkey)
	if err != nil {
		return nil, 0, err
	}
	amount := v.FeeCredit
	v.FeeCredit = 0
	return s, amount, nil
}
