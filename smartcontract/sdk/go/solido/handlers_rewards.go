package solido

import (
	"github.com/gagliardetto/solana-go"

	"github.com/chorusone/solido-go/smartcontract/sdk/go/rewardshare"
)

// UpdateStakeAccountBalanceParams resolves the inputs to the reward
// distributor: the validator's vote pubkey, the summed on-chain lamport
// balance of its stake accounts (the stakefeed package's job to compute),
// and the current epoch (must match exchange_rate.computed_in_epoch).
type UpdateStakeAccountBalanceParams struct {
	Caller            solana.PublicKey
	VotePubkey        solana.PublicKey
	ObservedBalance   SolAmount
	CurrentEpoch      uint64
	CommissionPercent uint8
}

// RewardMint describes one stSOL mint the caller must issue as a result of
// this handler; the mint itself is a cross-program invocation outside
// SolidoState.
type RewardMint struct {
	Recipient solana.PublicKey
	Amount    StSolAmount
}

// HandleUpdateStakeAccountBalance is the reward distributor: it detects
// per-epoch appreciation on a validator's stake accounts, splits it into
// treasury/developer/validator/appreciation shares, and returns the mints
// the caller must perform plus the SOL that must move from stake accounts
// back to the reserve to back them. Gated to a whitelisted maintainer, per
// the Glossary's "whitelisted off-chain submitter".
func HandleUpdateStakeAccountBalance(s *State, p UpdateStakeAccountBalanceParams) (*State, []RewardMint, SolAmount, MaintenanceOutput, error) {
	if err := requireMaintainer(s, p.Caller); err != nil {
		return nil, nil, 0, MaintenanceOutput{}, err
	}
	if s.ExchangeRate.ComputedInEpoch != p.CurrentEpoch {
		return nil, nil, 0, MaintenanceOutput{}, NewError(ErrExchangeRateNotUpdatedInThisEpoch, "")
	}

	v, err := s.FindValidator(p.VotePubkey)
	if err != nil {
		return nil, nil, 0, MaintenanceOutput{}, err
	}

	prior := v.StakeAccountsBalance
	if p.ObservedBalance < prior {
		return nil, nil, 0, MaintenanceOutput{}, NewError(ErrCalculationFailure, "observed balance decreased since last check")
	}

	reward, err := SubSol(p.ObservedBalance, prior)
	if err != nil {
		return nil, nil, 0, MaintenanceOutput{}, err
	}
	if reward == 0 {
		v.StakeAccountsBalance = p.ObservedBalance
		return s, nil, 0, updateStakeAccountBalanceOutput(p.VotePubkey, 0, 0, 0, 0), nil
	}

	weights := rewardshare.Weights{
		Treasury:     s.RewardDistribution.TreasuryFee,
		Developer:    s.RewardDistribution.DeveloperFee,
		Validator:    s.RewardDistribution.ValidatorFee,
		Appreciation: s.RewardDistribution.StSolAppreciation,
	}

	var split rewardshare.Split
	commissionExceeded := p.CommissionPercent > s.MaxCommissionPercentage
	if commissionExceeded {
		split = rewardshare.DistributeValidatorMisbehaving(uint64(reward), weights)
	} else {
		split = rewardshare.Distribute(uint64(reward), weights)
	}

	treasurySol := SolAmount(split.Treasury)
	developerSol := SolAmount(split.Developer)
	validatorSol := SolAmount(split.Validator)

	treasuryStSol, err := s.ExchangeRate.ToStSol(treasurySol)
	if err != nil {
		return nil, nil, 0, MaintenanceOutput{}, err
	}
	developerStSol, err := s.ExchangeRate.ToStSol(developerSol)
	if err != nil {
		return nil, nil, 0, MaintenanceOutput{}, err
	}
	validatorStSol, err := s.ExchangeRate.ToStSol(validatorSol)
	if err != nil {
		return nil, nil, 0, MaintenanceOutput{}, err
	}

	mints := []RewardMint{
		{Recipient: s.FeeRecipients.TreasuryAccount, Amount: treasuryStSol},
		{Recipient: s.FeeRecipients.DeveloperAccount, Amount: developerStSol},
	}
	if !commissionExceeded {
		mints = append(mints, RewardMint{Recipient: v.FeeAddress, Amount: validatorStSol})
		v.FeeCredit, err = AddStSol(v.FeeCredit, validatorStSol)
		if err != nil {
			return nil, nil, 0, MaintenanceOutput{}, err
		}
	}

	withdrawnToReserve, err := AddSol(treasurySol, developerSol)
	if err != nil {
		return nil, nil, 0, MaintenanceOutput{}, err
	}
	if !commissionExceeded {
		withdrawnToReserve, err = AddSol(withdrawnToReserve, validatorSol)
		if err != nil {
			return nil, nil, 0, MaintenanceOutput{}, err
		}
	}

	newBalance, err := SubSol(p.ObservedBalance, withdrawnToReserve)
	if err != nil {
		return nil, nil, 0, MaintenanceOutput{}, err
	}
	v.StakeAccountsBalance = newBalance

	feeTotal, err := AddStSol(treasuryStSol, developerStSol)
	if err != nil {
		return nil, nil, 0, MaintenanceOutput{}, err
	}
	if !commissionExceeded {
		feeTotal, err = AddStSol(feeTotal, validatorStSol)
		if err != nil {
			return nil, nil, 0, MaintenanceOutput{}, err
		}
	}
	s.Metrics.TreasuryFeeTotal, err = AddStSol(s.Metrics.TreasuryFeeTotal, treasuryStSol)
	if err != nil {
		return nil, nil, 0, MaintenanceOutput{}, err
	}
	s.Metrics.DeveloperFeeTotal, err = AddStSol(s.Metrics.DeveloperFeeTotal, developerStSol)
	if err != nil {
		return nil, nil, 0, MaintenanceOutput{}, err
	}
	if !commissionExceeded {
		s.Metrics.ValidatorFeeTotal, err = AddStSol(s.Metrics.ValidatorFeeTotal, validatorStSol)
		if err != nil {
			return nil, nil, 0, MaintenanceOutput{}, err
		}
	}

	if commissionExceeded {
		v.Active = false
	}

	out := updateStakeAccountBalanceOutput(p.VotePubkey, reward, treasuryStSol, developerStSol, validatorStSol)
	return s, mints, withdrawnToReserve, out, nil
}
