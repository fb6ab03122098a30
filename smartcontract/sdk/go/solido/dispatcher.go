package solido

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/near/borsh-go"
)

// AccountRequirement describes one positional slot in an instruction's
// account list: whether the runtime must see it as a signer and/or
// writable. CheckAccounts fails with a precise error before any handler
// runs if the supplied list doesn't match, per spec.md §4.1.
type AccountRequirement struct {
	Name     string
	Signer   bool
	Writable bool
}

// AccountInfo is the minimal shape Dispatch needs from a runtime account:
// its address and the flags the transaction declared for it. Account
// *data* (balances, owners) is handled separately by the caller
// (Client/Deserialize); the pure dispatcher only validates shape and
// identity, never reads content.
type AccountInfo struct {
	Pubkey     solana.PublicKey
	IsSigner   bool
	IsWritable bool
}

// instructionAccountSpecs is the fixed positional account list per
// discriminator, matching the Build*Instruction account order in
// instructions.go exactly.
var instructionAccountSpecs = map[uint8][]AccountRequirement{
	InstructionInitialize: {
		{Name: "solido", Writable: true},
		{Name: "manager", Signer: true},
		{Name: "st_sol_mint"},
	},
	InstructionDeposit: {
		{Name: "solido", Writable: true},
		{Name: "reserve", Writable: true},
		{Name: "user_source", Writable: true},
		{Name: "user_destination", Writable: true},
		{Name: "st_sol_mint", Writable: true},
		{Name: "mint_authority"},
		{Name: "user", Signer: true, Writable: true},
	},
	InstructionStakeDeposit: {
		{Name: "solido", Writable: true},
		{Name: "reserve", Writable: true},
		{Name: "vote_pubkey"},
		{Name: "stake_account", Writable: true},
		{Name: "stake_authority"},
		{Name: "maintainer", Signer: true},
	},
	InstructionUnstake: {
		{Name: "solido", Writable: true},
		{Name: "vote_pubkey"},
		{Name: "maintainer", Signer: true},
	},
	InstructionUpdateExchangeRate: {
		{Name: "solido", Writable: true},
	},
	InstructionUpdateStakeAccountBalance: {
		{Name: "solido", Writable: true},
		{Name: "vote_pubkey"},
		{Name: "maintainer", Signer: true},
	},
	InstructionWithdrawInactiveStake: {
		{Name: "solido", Writable: true},
		{Name: "vote_pubkey"},
		{Name: "maintainer", Signer: true},
	},
	InstructionCollectValidatorFee: {
		{Name: "solido", Writable: true},
		{Name: "vote_pubkey"},
		{Name: "maintainer", Signer: true},
	},
	InstructionClaimValidatorFee: {
		{Name: "solido", Writable: true},
		{Name: "vote_pubkey"},
		{Name: "maintainer", Signer: true},
	},
	InstructionChangeRewardDistribution: {
		{Name: "solido", Writable: true},
		{Name: "manager", Signer: true},
	},
	InstructionAddValidator: {
		{Name: "solido", Writable: true},
		{Name: "manager", Signer: true},
		{Name: "vote_pubkey"},
		{Name: "fee_address"},
	},
	InstructionRemoveValidator: {
		{Name: "solido", Writable: true},
		{Name: "manager", Signer: true},
		{Name: "vote_pubkey"},
	},
	InstructionDeactivateValidator: {
		{Name: "solido", Writable: true},
		{Name: "manager", Signer: true},
		{Name: "vote_pubkey"},
	},
	InstructionAddMaintainer: {
		{Name: "solido", Writable: true},
		{Name: "manager", Signer: true},
		{Name: "maintainer"},
	},
	InstructionRemoveMaintainer: {
		{Name: "solido", Writable: true},
		{Name: "manager", Signer: true},
		{Name: "maintainer"},
	},
	InstructionMergeStake: {
		{Name: "solido", Writable: true},
		{Name: "vote_pubkey"},
		{Name: "maintainer", Signer: true},
	},
	InstructionWithdraw: {
		{Name: "solido", Writable: true},
		{Name: "st_sol_mint", Writable: true},
		{Name: "user_st_sol_source", Writable: true},
		{Name: "user", Signer: true},
		{Name: "destination_stake_account", Writable: true},
	},
	InstructionSetMaxCommissionPercentage: {
		{Name: "solido", Writable: true},
		{Name: "manager", Signer: true},
	},
	InstructionSetMaxValidationFee: {
		{Name: "solido", Writable: true},
		{Name: "manager", Signer: true},
	},
	InstructionDeactivateValidatorIfCommissionExceedsMax: {
		{Name: "solido", Writable: true},
		{Name: "vote_pubkey"},
		{Name: "maintainer", Signer: true},
	},
}

// CheckAccounts validates that accounts matches the positional requirements
// for discriminator exactly: wrong length, wrong signer flag, or wrong
// writable flag all fail with ErrInvalidInstructionAccounts, before any
// handler mutates state.
func CheckAccounts(discriminator uint8, accounts []AccountInfo) error {
	specs, ok := instructionAccountSpecs[discriminator]
	if !ok {
		return NewError(ErrUnknownInstruction, fmt.Sprintf("discriminator %d", discriminator))
	}
	if len(accounts) != len(specs) {
		return NewError(ErrInvalidInstructionAccounts, fmt.Sprintf("expected %d accounts, got %d", len(specs), len(accounts)))
	}
	for i, spec := range specs {
		got := accounts[i]
		if spec.Signer && !got.IsSigner {
			return NewError(ErrInvalidInstructionAccounts, fmt.Sprintf("account %d (%s) must be a signer", i, spec.Name))
		}
		if spec.Writable && !got.IsWritable {
			return NewError(ErrInvalidInstructionAccounts, fmt.Sprintf("account %d (%s) must be writable", i, spec.Name))
		}
	}
	return nil
}

// PeekDiscriminator reads the one-byte tag without decoding the rest of the
// payload, so the caller can route to the right typed decode below.
func PeekDiscriminator(data []byte) (uint8, error) {
	if len(data) == 0 {
		return 0, NewError(ErrUnknownInstruction, "empty instruction data")
	}
	return data[0], nil
}

// DecodeDepositArgs decodes a Deposit instruction's payload.
func DecodeDepositArgs(data []byte) (SolAmount, error) {
	var payload struct {
		Discriminator uint8
		Amount        uint64
	}
	if err := borsh.Deserialize(&payload, data); err != nil {
		return 0, fmt.Errorf("decode Deposit: %w", err)
	}
	return SolAmount(payload.Amount), nil
}

// DecodeStakeDepositArgs decodes a StakeDeposit instruction's payload.
func DecodeStakeDepositArgs(data []byte) (SolAmount, StakeDepositKind, error) {
	var payload struct {
		Discriminator uint8
		Amount        uint64
		Kind          uint8
	}
	if err := borsh.Deserialize(&payload, data); err != nil {
		return 0, 0, fmt.Errorf("decode StakeDeposit: %w", err)
	}
	return SolAmount(payload.Amount), StakeDepositKind(payload.Kind), nil
}

// DecodeMergeStakeArgs decodes a MergeStake instruction's payload.
func DecodeMergeStakeArgs(data []byte) (fromSeed, toSeed uint64, err error) {
	var payload struct {
		Discriminator uint8
		FromSeed      uint64
		ToSeed        uint64
	}
	if err := borsh.Deserialize(&payload, data); err != nil {
		return 0, 0, fmt.Errorf("decode MergeStake: %w", err)
	}
	return payload.FromSeed, payload.ToSeed, nil
}

// DecodeWithdrawArgs decodes a Withdraw instruction's payload.
func DecodeWithdrawArgs(data []byte) (StSolAmount, uint32, error) {
	var payload struct {
		Discriminator  uint8
		Amount         uint64
		ValidatorIndex uint32
	}
	if err := borsh.Deserialize(&payload, data); err != nil {
		return 0, 0, fmt.Errorf("decode Withdraw: %w", err)
	}
	return StSolAmount(payload.Amount), payload.ValidatorIndex, nil
}

// DecodeRewardDistributionArgs decodes a ChangeRewardDistribution or
// Initialize payload's reward-distribution fields.
func DecodeRewardDistributionArgs(data []byte) (RewardDistribution, error) {
	var payload struct {
		Discriminator     uint8
		TreasuryFee       uint32
		DeveloperFee      uint32
		ValidatorFee      uint32
		StSolAppreciation uint32
	}
	if err := borsh.Deserialize(&payload, data); err != nil {
		return RewardDistribution{}, fmt.Errorf("decode RewardDistribution: %w", err)
	}
	return RewardDistribution{
		TreasuryFee:       payload.TreasuryFee,
		DeveloperFee:      payload.DeveloperFee,
		ValidatorFee:      payload.ValidatorFee,
		StSolAppreciation: payload.StSolAppreciation,
	}, nil
}

// DecodeU8Arg decodes the single-byte-value payload shared by
// SetMaxCommissionPercentage and SetMaxValidationFee.
func DecodeU8Arg(data []byte) (uint8, error) {
	var payload struct {
		Discriminator uint8
		Value         uint8
	}
	if err := borsh.Deserialize(&payload, data); err != nil {
		return 0, fmt.Errorf("decode u8 arg: %w", err)
	}
	return payload.Value, nil
}

// DecodeUnstakeArgs decodes an Unstake instruction's payload.
func DecodeUnstakeArgs(data []byte) (SolAmount, error) {
	var payload struct {
		Discriminator uint8
		Amount        uint64
	}
	if err := borsh.Deserialize(&payload, data); err != nil {
		return 0, fmt.Errorf("decode Unstake: %w", err)
	}
	return SolAmount(payload.Amount), nil
}

// DecodeInitializeArgs decodes an Initialize instruction's payload.
func DecodeInitializeArgs(data []byte) (InitializeArgs, error) {
	var payload struct {
		Discriminator           uint8
		TreasuryFee             uint32
		DeveloperFee            uint32
		ValidatorFee            uint32
		StSolAppreciation       uint32
		MaxValidators           uint32
		MaxMaintainers          uint32
		MaxCommissionPercentage uint8
		MaxValidationFee        uint8
	}
	if err := borsh.Deserialize(&payload, data); err != nil {
		return InitializeArgs{}, fmt.Errorf("decode Initialize: %w", err)
	}
	return InitializeArgs{
		RewardDistribution: RewardDistribution{
			TreasuryFee:       payload.TreasuryFee,
			DeveloperFee:      payload.DeveloperFee,
			ValidatorFee:      payload.ValidatorFee,
			StSolAppreciation: payload.StSolAppreciation,
		},
		MaxValidators:           payload.MaxValidators,
		MaxMaintainers:          payload.MaxMaintainers,
		MaxCommissionPercentage: payload.MaxCommissionPercentage,
		MaxValidationFee:        payload.MaxValidationFee,
	}, nil
}
