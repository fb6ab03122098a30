package solido

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// DispatchExtras carries the values Dispatch cannot derive from the
// discriminator, the account list, or the instruction bytes alone: PDA
// derivations, vote-account state, and off-chain observations the caller
// (the runtime's Client) resolves before invoking the dispatcher. Every
// Handle* still receives these as plain pre-resolved parameters, exactly
// like calling a Handle function directly; Dispatch only saves the caller
// from re-deriving which handler owns which discriminator.
type DispatchExtras struct {
	// Initialize
	FeeRecipients                FeeRecipients
	ReserveAuthorityBump         uint8
	StakeAuthorityBump           uint8
	MintAuthorityBump            uint8
	RewardsWithdrawAuthorityBump uint8

	// Deposit
	DerivedReserve solana.PublicKey

	// StakeDeposit
	DerivedStakeAccount solana.PublicKey

	// AddValidator
	VoteAccountOwner          solana.PublicKey
	VoteProgramID             solana.PublicKey
	VoteWithdrawAuthority     solana.PublicKey
	ExpectedWithdrawAuthority solana.PublicKey
	CommissionPercent         uint8
	ValidationFeeBps          uint8

	// UpdateStakeAccountBalance, DeactivateValidatorIfCommissionExceedsMax
	ObservedBalance           SolAmount
	CurrentEpoch              uint64
	ObservedCommissionPercent uint8

	// WithdrawInactiveStake
	InactiveAmount SolAmount

	// MergeStake
	FromBalance SolAmount
	ToBalance   SolAmount

	// UpdateExchangeRate
	ReserveBalance SolAmount
	StSolSupply    StSolAmount

	// Withdraw: the caller resolves DecodeWithdrawArgs' ValidatorIndex to an
	// actual vote pubkey before Dispatch ever sees it.
	SourceVote solana.PublicKey
}

// DispatchResult is the uniform envelope Dispatch returns for all twenty
// instructions. Output is always populated; the remaining fields are
// populated only by the handlers that produce them, left zero-valued
// otherwise.
type DispatchResult struct {
	Output             MaintenanceOutput
	MintedStSol        StSolAmount
	Mints              []RewardMint
	WithdrawnToReserve SolAmount
	ReleasedSol        SolAmount
	UnstakeSeed        uint64
	Deactivated        bool
}

// Dispatch is the program's single instruction-entry point: it peeks the
// discriminator, validates the account list's shape against
// instructionAccountSpecs, decodes the instruction's borsh payload, and
// calls the one handler that owns that discriminator, per spec.md §4.1. It
// never mutates accounts or performs cross-program invocations itself —
// callers apply the returned *State and DispatchResult to the runtime. A
// panic inside a handler is recovered here and returned as an
// ErrImplementationBug error.
func Dispatch(s *State, accounts []AccountInfo, data []byte, extras DispatchExtras) (st *State, res DispatchResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			st, res, err = nil, DispatchResult{}, NewError(ErrImplementationBug, fmt.Sprintf("panic during dispatch: %v", r))
		}
	}()

	discriminator, err := PeekDiscriminator(data)
	if err != nil {
		return nil, DispatchResult{}, err
	}
	if err := CheckAccounts(discriminator, accounts); err != nil {
		return nil, DispatchResult{}, err
	}

	switch discriminator {
	case InstructionInitialize:
		args, err := DecodeInitializeArgs(data)
		if err != nil {
			return nil, DispatchResult{}, err
		}
		s2, err := HandleInitialize(InitializeParams{
			Manager:                      accounts[1].Pubkey,
			StSolMint:                    accounts[2].Pubkey,
			RewardDistribution:           args.RewardDistribution,
			FeeRecipients:                extras.FeeRecipients,
			MaxValidators:                args.MaxValidators,
			MaxMaintainers:               args.MaxMaintainers,
			MaxCommissionPercentage:      args.MaxCommissionPercentage,
			MaxValidationFee:             args.MaxValidationFee,
			ReserveAuthorityBump:         extras.ReserveAuthorityBump,
			StakeAuthorityBump:           extras.StakeAuthorityBump,
			MintAuthorityBump:            extras.MintAuthorityBump,
			RewardsWithdrawAuthorityBump: extras.RewardsWithdrawAuthorityBump,
		})
		if err != nil {
			return nil, DispatchResult{}, err
		}
		return s2, DispatchResult{Output: MaintenanceOutput{Instruction: InstructionInitialize, Detail: "initialized"}}, nil

	case InstructionDeposit:
		amount, err := DecodeDepositArgs(data)
		if err != nil {
			return nil, DispatchResult{}, err
		}
		s2, minted, out, err := HandleDeposit(s, DepositParams{
			Amount:                 amount,
			SuppliedReserve:        accounts[1].Pubkey,
			DerivedReserve:         extras.DerivedReserve,
			StSolMintOfDestination: accounts[4].Pubkey,
		})
		if err != nil {
			return nil, DispatchResult{}, err
		}
		return s2, DispatchResult{Output: out, MintedStSol: minted}, nil

	case InstructionStakeDeposit:
		amount, kind, err := DecodeStakeDepositArgs(data)
		if err != nil {
			return nil, DispatchResult{}, err
		}
		s2, out, err := HandleStakeDeposit(s, StakeDepositParams{
			Caller:            accounts[5].Pubkey,
			VotePubkey:        accounts[2].Pubkey,
			Amount:            amount,
			Kind:              kind,
			SuppliedAddress:   accounts[3].Pubkey,
			DerivedAddress:    extras.DerivedStakeAccount,
			CommissionPercent: extras.CommissionPercent,
		})
		if err != nil {
			return nil, DispatchResult{}, err
		}
		return s2, DispatchResult{Output: out}, nil

	case InstructionUnstake:
		amount, err := DecodeUnstakeArgs(data)
		if err != nil {
			return nil, DispatchResult{}, err
		}
		s2, seed, out, err := HandleUnstake(s, UnstakeParams{
			Caller:     accounts[2].Pubkey,
			VotePubkey: accounts[1].Pubkey,
			Amount:     amount,
		})
		if err != nil {
			return nil, DispatchResult{}, err
		}
		return s2, DispatchResult{Output: out, UnstakeSeed: seed}, nil

	case InstructionUpdateExchangeRate:
		s2, out, err := HandleUpdateExchangeRate(s, UpdateExchangeRateParams{
			CurrentEpoch:   extras.CurrentEpoch,
			ReserveBalance: extras.ReserveBalance,
			StSolSupply:    extras.StSolSupply,
		})
		if err != nil {
			return nil, DispatchResult{}, err
		}
		return s2, DispatchResult{Output: out}, nil

	case InstructionUpdateStakeAccountBalance:
		s2, mints, withdrawn, out, err := HandleUpdateStakeAccountBalance(s, UpdateStakeAccountBalanceParams{
			Caller:            accounts[2].Pubkey,
			VotePubkey:        accounts[1].Pubkey,
			ObservedBalance:   extras.ObservedBalance,
			CurrentEpoch:      extras.CurrentEpoch,
			CommissionPercent: extras.ObservedCommissionPercent,
		})
		if err != nil {
			return nil, DispatchResult{}, err
		}
		return s2, DispatchResult{Output: out, Mints: mints, WithdrawnToReserve: withdrawn}, nil

	case InstructionWithdrawInactiveStake:
		s2, out, err := HandleWithdrawInactiveStake(s, WithdrawInactiveStakeParams{
			Caller:         accounts[2].Pubkey,
			VotePubkey:     accounts[1].Pubkey,
			InactiveAmount: extras.InactiveAmount,
		})
		if err != nil {
			return nil, DispatchResult{}, err
		}
		return s2, DispatchResult{Output: out}, nil

	case InstructionCollectValidatorFee, InstructionClaimValidatorFee:
		s2, amount, err := HandleClaimValidatorFee(s, accounts[2].Pubkey, accounts[1].Pubkey)
		if err != nil {
			return nil, DispatchResult{}, err
		}
		out := MaintenanceOutput{Instruction: discriminator, Validator: accounts[1].Pubkey, Detail: "claimed fee credit"}
		return s2, DispatchResult{Output: out, MintedStSol: amount}, nil

	case InstructionChangeRewardDistribution:
		dist, err := DecodeRewardDistributionArgs(data)
		if err != nil {
			return nil, DispatchResult{}, err
		}
		s2, err := HandleChangeRewardDistribution(s, accounts[1].Pubkey, dist)
		if err != nil {
			return nil, DispatchResult{}, err
		}
		return s2, DispatchResult{Output: MaintenanceOutput{Instruction: discriminator, Detail: "reward distribution changed"}}, nil

	case InstructionAddValidator:
		s2, err := HandleAddValidator(s, AddValidatorParams{
			Caller:                    accounts[1].Pubkey,
			VotePubkey:                accounts[2].Pubkey,
			FeeAddress:                accounts[3].Pubkey,
			VoteAccountOwner:          extras.VoteAccountOwner,
			VoteProgramID:             extras.VoteProgramID,
			VoteWithdrawAuthority:     extras.VoteWithdrawAuthority,
			ExpectedWithdrawAuthority: extras.ExpectedWithdrawAuthority,
			CommissionPercent:         extras.CommissionPercent,
			ValidationFeeBps:          extras.ValidationFeeBps,
		})
		if err != nil {
			return nil, DispatchResult{}, err
		}
		out := MaintenanceOutput{Instruction: discriminator, Validator: accounts[2].Pubkey, Detail: "validator added"}
		return s2, DispatchResult{Output: out}, nil

	case InstructionRemoveValidator:
		s2, err := HandleRemoveValidator(s, accounts[1].Pubkey, accounts[2].Pubkey)
		if err != nil {
			return nil, DispatchResult{}, err
		}
		out := MaintenanceOutput{Instruction: discriminator, Validator: accounts[2].Pubkey, Detail: "validator removed"}
		return s2, DispatchResult{Output: out}, nil

	case InstructionDeactivateValidator:
		s2, err := HandleDeactivateValidator(s, accounts[1].Pubkey, accounts[2].Pubkey)
		if err != nil {
			return nil, DispatchResult{}, err
		}
		out := MaintenanceOutput{Instruction: discriminator, Validator: accounts[2].Pubkey, Detail: "validator deactivated"}
		return s2, DispatchResult{Output: out, Deactivated: true}, nil

	case InstructionAddMaintainer:
		s2, err := HandleAddMaintainer(s, accounts[1].Pubkey, accounts[2].Pubkey)
		if err != nil {
			return nil, DispatchResult{}, err
		}
		out := MaintenanceOutput{Instruction: discriminator, Detail: "maintainer added: " + accounts[2].Pubkey.String()}
		return s2, DispatchResult{Output: out}, nil

	case InstructionRemoveMaintainer:
		s2, err := HandleRemoveMaintainer(s, accounts[1].Pubkey, accounts[2].Pubkey)
		if err != nil {
			return nil, DispatchResult{}, err
		}
		out := MaintenanceOutput{Instruction: discriminator, Detail: "maintainer removed: " + accounts[2].Pubkey.String()}
		return s2, DispatchResult{Output: out}, nil

	case InstructionMergeStake:
		fromSeed, toSeed, err := DecodeMergeStakeArgs(data)
		if err != nil {
			return nil, DispatchResult{}, err
		}
		s2, out, err := HandleMergeStake(s, MergeStakeParams{
			Caller:      accounts[2].Pubkey,
			VotePubkey:  accounts[1].Pubkey,
			FromSeed:    fromSeed,
			ToSeed:      toSeed,
			FromBalance: extras.FromBalance,
			ToBalance:   extras.ToBalance,
		})
		if err != nil {
			return nil, DispatchResult{}, err
		}
		return s2, DispatchResult{Output: out}, nil

	case InstructionWithdraw:
		amount, _, err := DecodeWithdrawArgs(data)
		if err != nil {
			return nil, DispatchResult{}, err
		}
		s2, released, out, err := HandleWithdraw(s, WithdrawParams{
			StSolAmount: amount,
			SourceVote:  extras.SourceVote,
		})
		if err != nil {
			return nil, DispatchResult{}, err
		}
		return s2, DispatchResult{Output: out, ReleasedSol: released}, nil

	case InstructionSetMaxCommissionPercentage:
		value, err := DecodeU8Arg(data)
		if err != nil {
			return nil, DispatchResult{}, err
		}
		s2, err := HandleSetMaxCommissionPercentage(s, accounts[1].Pubkey, value)
		if err != nil {
			return nil, DispatchResult{}, err
		}
		return s2, DispatchResult{Output: MaintenanceOutput{Instruction: discriminator, Detail: "max commission percentage updated"}}, nil

	case InstructionSetMaxValidationFee:
		value, err := DecodeU8Arg(data)
		if err != nil {
			return nil, DispatchResult{}, err
		}
		s2, err := HandleSetMaxValidationFee(s, accounts[1].Pubkey, value)
		if err != nil {
			return nil, DispatchResult{}, err
		}
		return s2, DispatchResult{Output: MaintenanceOutput{Instruction: discriminator, Detail: "max validation fee updated"}}, nil

	case InstructionDeactivateValidatorIfCommissionExceedsMax:
		s2, deactivated, err := HandleDeactivateValidatorIfCommissionExceedsMax(s, accounts[2].Pubkey, accounts[1].Pubkey, extras.ObservedCommissionPercent)
		if err != nil {
			return nil, DispatchResult{}, err
		}
		out := MaintenanceOutput{Instruction: discriminator, Validator: accounts[1].Pubkey, Detail: "checked commission against cap"}
		return s2, DispatchResult{Output: out, Deactivated: deactivated}, nil

	default:
		return nil, DispatchResult{}, NewError(ErrUnknownInstruction, fmt.Sprintf("discriminator %d", discriminator))
	}
}
