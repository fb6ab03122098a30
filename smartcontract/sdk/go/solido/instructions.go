package solido

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/near/borsh-go"
)

// Instruction discriminators. The catalog order is the discriminator value;
// each carries a fixed positional account list enforced by the dispatcher.
const (
	InstructionInitialize                              uint8 = 0
	InstructionDeposit                                 uint8 = 1
	InstructionStakeDeposit                            uint8 = 2
	InstructionUnstake                                 uint8 = 3
	InstructionUpdateExchangeRate                      uint8 = 4
	InstructionUpdateStakeAccountBalance                uint8 = 5
	InstructionWithdrawInactiveStake                   uint8 = 6
	InstructionCollectValidatorFee                     uint8 = 7
	InstructionClaimValidatorFee                       uint8 = 8
	InstructionChangeRewardDistribution                uint8 = 9
	InstructionAddValidator                            uint8 = 10
	InstructionRemoveValidator                         uint8 = 11
	InstructionDeactivateValidator                     uint8 = 12
	InstructionAddMaintainer                           uint8 = 13
	InstructionRemoveMaintainer                        uint8 = 14
	InstructionMergeStake                              uint8 = 15
	InstructionWithdraw                                uint8 = 16
	InstructionSetMaxCommissionPercentage              uint8 = 17
	InstructionSetMaxValidationFee                     uint8 = 18
	InstructionDeactivateValidatorIfCommissionExceedsMax uint8 = 19
)

// StakeDepositKind selects whether StakeDeposit appends a fresh stake
// account or merges into the immediately prior one.
type StakeDepositKind uint8

const (
	StakeDepositAppend StakeDepositKind = iota
	StakeDepositMerge
)

// Account lists, one struct per instruction, parsed positionally by the
// dispatcher. Field order is the wire account order.

type InitializeAccounts struct {
	Solido    solana.PublicKey
	Manager   solana.PublicKey
	StSolMint solana.PublicKey
}

type InitializeArgs struct {
	RewardDistribution      RewardDistribution
	MaxValidators           uint32
	MaxMaintainers          uint32
	MaxCommissionPercentage uint8
	MaxValidationFee        uint8
}

func BuildInitializeInstruction(programID solana.PublicKey, accounts InitializeAccounts, args InitializeArgs) (solana.Instruction, error) {
	data, err := borsh.Serialize(struct {
		Discriminator           uint8
		TreasuryFee             uint32
		DeveloperFee            uint32
		ValidatorFee            uint32
		StSolAppreciation       uint32
		MaxValidators           uint32
		MaxMaintainers          uint32
		MaxCommissionPercentage uint8
		MaxValidationFee        uint8
	}{
		Discriminator:           InstructionInitialize,
		TreasuryFee:             args.RewardDistribution.TreasuryFee,
		DeveloperFee:            args.RewardDistribution.DeveloperFee,
		ValidatorFee:            args.RewardDistribution.ValidatorFee,
		StSolAppreciation:       args.RewardDistribution.StSolAppreciation,
		MaxValidators:           args.MaxValidators,
		MaxMaintainers:          args.MaxMaintainers,
		MaxCommissionPercentage: args.MaxCommissionPercentage,
		MaxValidationFee:        args.MaxValidationFee,
	})
	if err != nil {
		return nil, fmt.Errorf("serialize Initialize: %w", err)
	}
	return &solana.GenericInstruction{
		ProgID: programID,
		AccountValues: []*solana.AccountMeta{
			{PublicKey: accounts.Solido, IsSigner: false, IsWritable: true},
			{PublicKey: accounts.Manager, IsSigner: true, IsWritable: false},
			{PublicKey: accounts.StSolMint, IsSigner: false, IsWritable: false},
		},
		DataBytes: data,
	}, nil
}

type DepositAccounts struct {
	Solido        solana.PublicKey
	Reserve       solana.PublicKey
	UserSource    solana.PublicKey
	UserDestination solana.PublicKey
	StSolMint     solana.PublicKey
	MintAuthority solana.PublicKey
	User          solana.PublicKey
}

func BuildDepositInstruction(programID solana.PublicKey, accounts DepositAccounts, amount SolAmount) (solana.Instruction, error) {
	if amount == 0 {
		return nil, NewError(ErrInvalidAmount, "deposit amount must be > 0")
	}
	data, err := borsh.Serialize(struct {
		Discriminator uint8
		Amount        uint64
	}{Discriminator: InstructionDeposit, Amount: uint64(amount)})
	if err != nil {
		return nil, fmt.Errorf("serialize Deposit: %w", err)
	}
	return &solana.GenericInstruction{
		ProgID: programID,
		AccountValues: []*solana.AccountMeta{
			{PublicKey: accounts.Solido, IsSigner: false, IsWritable: true},
			{PublicKey: accounts.Reserve, IsSigner: false, IsWritable: true},
			{PublicKey: accounts.UserSource, IsSigner: false, IsWritable: true},
			{PublicKey: accounts.UserDestination, IsSigner: false, IsWritable: true},
			{PublicKey: accounts.StSolMint, IsSigner: false, IsWritable: true},
			{PublicKey: accounts.MintAuthority, IsSigner: false, IsWritable: false},
			{PublicKey: accounts.User, IsSigner: true, IsWritable: true},
		},
		DataBytes: data,
	}, nil
}

type StakeDepositAccounts struct {
	Solido        solana.PublicKey
	Reserve       solana.PublicKey
	VotePubkey    solana.PublicKey
	StakeAccount  solana.PublicKey
	StakeAuthority solana.PublicKey
	Maintainer    solana.PublicKey
}

func BuildStakeDepositInstruction(programID solana.PublicKey, accounts StakeDepositAccounts, amount SolAmount, kind StakeDepositKind) (solana.Instruction, error) {
	data, err := borsh.Serialize(struct {
		Discriminator uint8
		Amount        uint64
		Kind          uint8
	}{Discriminator: InstructionStakeDeposit, Amount: uint64(amount), Kind: uint8(kind)})
	if err != nil {
		return nil, fmt.Errorf("serialize StakeDeposit: %w", err)
	}
	return &solana.GenericInstruction{
		ProgID: programID,
		AccountValues: []*solana.AccountMeta{
			{PublicKey: accounts.Solido, IsSigner: false, IsWritable: true},
			{PublicKey: accounts.Reserve, IsSigner: false, IsWritable: true},
			{PublicKey: accounts.VotePubkey, IsSigner: false, IsWritable: false},
			{PublicKey: accounts.StakeAccount, IsSigner: false, IsWritable: true},
			{PublicKey: accounts.StakeAuthority, IsSigner: false, IsWritable: false},
			{PublicKey: accounts.Maintainer, IsSigner: true, IsWritable: false},
		},
		DataBytes: data,
	}, nil
}

type ValidatorMaintainerAccounts struct {
	Solido     solana.PublicKey
	VotePubkey solana.PublicKey
	Maintainer solana.PublicKey
}

func BuildUnstakeInstruction(programID solana.PublicKey, accounts ValidatorMaintainerAccounts, amount SolAmount) (solana.Instruction, error) {
	data, err := borsh.Serialize(struct {
		Discriminator uint8
		Amount        uint64
	}{Discriminator: InstructionUnstake, Amount: uint64(amount)})
	if err != nil {
		return nil, fmt.Errorf("serialize Unstake: %w", err)
	}
	return simpleInstruction(programID, InstructionUnstake, data, accounts.Solido, accounts.VotePubkey, accounts.Maintainer)
}

type SolidoOnlyAccounts struct {
	Solido solana.PublicKey
}

func BuildUpdateExchangeRateInstruction(programID solana.PublicKey, accounts SolidoOnlyAccounts) (solana.Instruction, error) {
	data, err := borsh.Serialize(struct{ Discriminator uint8 }{Discriminator: InstructionUpdateExchangeRate})
	if err != nil {
		return nil, fmt.Errorf("serialize UpdateExchangeRate: %w", err)
	}
	return &solana.GenericInstruction{
		ProgID: programID,
		AccountValues: []*solana.AccountMeta{
			{PublicKey: accounts.Solido, IsSigner: false, IsWritable: true},
		},
		DataBytes: data,
	}, nil
}

func BuildUpdateStakeAccountBalanceInstruction(programID solana.PublicKey, accounts ValidatorMaintainerAccounts) (solana.Instruction, error) {
	data, err := borsh.Serialize(struct{ Discriminator uint8 }{Discriminator: InstructionUpdateStakeAccountBalance})
	if err != nil {
		return nil, fmt.Errorf("serialize UpdateStakeAccountBalance: %w", err)
	}
	return simpleInstruction(programID, InstructionUpdateStakeAccountBalance, data, accounts.Solido, accounts.VotePubkey, accounts.Maintainer)
}

func BuildWithdrawInactiveStakeInstruction(programID solana.PublicKey, accounts ValidatorMaintainerAccounts) (solana.Instruction, error) {
	data, err := borsh.Serialize(struct{ Discriminator uint8 }{Discriminator: InstructionWithdrawInactiveStake})
	if err != nil {
		return nil, fmt.Errorf("serialize WithdrawInactiveStake: %w", err)
	}
	return simpleInstruction(programID, InstructionWithdrawInactiveStake, data, accounts.Solido, accounts.VotePubkey, accounts.Maintainer)
}

func BuildCollectValidatorFeeInstruction(programID solana.PublicKey, accounts ValidatorMaintainerAccounts) (solana.Instruction, error) {
	data, err := borsh.Serialize(struct{ Discriminator uint8 }{Discriminator: InstructionCollectValidatorFee})
	if err != nil {
		return nil, fmt.Errorf("serialize CollectValidatorFee: %w", err)
	}
	return simpleInstruction(programID, InstructionCollectValidatorFee, data, accounts.Solido, accounts.VotePubkey, accounts.Maintainer)
}

func BuildClaimValidatorFeeInstruction(programID solana.PublicKey, accounts ValidatorMaintainerAccounts) (solana.Instruction, error) {
	data, err := borsh.Serialize(struct{ Discriminator uint8 }{Discriminator: InstructionClaimValidatorFee})
	if err != nil {
		return nil, fmt.Errorf("serialize ClaimValidatorFee: %w", err)
	}
	return simpleInstruction(programID, InstructionClaimValidatorFee, data, accounts.Solido, accounts.VotePubkey, accounts.Maintainer)
}

type ManagerAccounts struct {
	Solido  solana.PublicKey
	Manager solana.PublicKey
}

func BuildChangeRewardDistributionInstruction(programID solana.PublicKey, accounts ManagerAccounts, dist RewardDistribution) (solana.Instruction, error) {
	data, err := borsh.Serialize(struct {
		Discriminator     uint8
		TreasuryFee       uint32
		DeveloperFee      uint32
		ValidatorFee      uint32
		StSolAppreciation uint32
	}{
		Discriminator:     InstructionChangeRewardDistribution,
		TreasuryFee:       dist.TreasuryFee,
		DeveloperFee:      dist.DeveloperFee,
		ValidatorFee:      dist.ValidatorFee,
		StSolAppreciation: dist.StSolAppreciation,
	})
	if err != nil {
		return nil, fmt.Errorf("serialize ChangeRewardDistribution: %w", err)
	}
	return managerInstruction(programID, InstructionChangeRewardDistribution, data, accounts)
}

type ValidatorManagerAccounts struct {
	Solido     solana.PublicKey
	Manager    solana.PublicKey
	VotePubkey solana.PublicKey
	FeeAddress solana.PublicKey
}

func BuildAddValidatorInstruction(programID solana.PublicKey, accounts ValidatorManagerAccounts) (solana.Instruction, error) {
	data, err := borsh.Serialize(struct{ Discriminator uint8 }{Discriminator: InstructionAddValidator})
	if err != nil {
		return nil, fmt.Errorf("serialize AddValidator: %w", err)
	}
	return &solana.GenericInstruction{
		ProgID: programID,
		AccountValues: []*solana.AccountMeta{
			{PublicKey: accounts.Solido, IsSigner: false, IsWritable: true},
			{PublicKey: accounts.Manager, IsSigner: true, IsWritable: false},
			{PublicKey: accounts.VotePubkey, IsSigner: false, IsWritable: false},
			{PublicKey: accounts.FeeAddress, IsSigner: false, IsWritable: false},
		},
		DataBytes: data,
	}, nil
}

type ValidatorRemovalAccounts struct {
	Solido     solana.PublicKey
	Manager    solana.PublicKey
	VotePubkey solana.PublicKey
}

func BuildRemoveValidatorInstruction(programID solana.PublicKey, accounts ValidatorRemovalAccounts) (solana.Instruction, error) {
	data, err := borsh.Serialize(struct{ Discriminator uint8 }{Discriminator: InstructionRemoveValidator})
	if err != nil {
		return nil, fmt.Errorf("serialize RemoveValidator: %w", err)
	}
	return managerValidatorInstruction(programID, InstructionRemoveValidator, data, accounts)
}

func BuildDeactivateValidatorInstruction(programID solana.PublicKey, accounts ValidatorRemovalAccounts) (solana.Instruction, error) {
	data, err := borsh.Serialize(struct{ Discriminator uint8 }{Discriminator: InstructionDeactivateValidator})
	if err != nil {
		return nil, fmt.Errorf("serialize DeactivateValidator: %w", err)
	}
	return managerValidatorInstruction(programID, InstructionDeactivateValidator, data, accounts)
}

func BuildDeactivateValidatorIfCommissionExceedsMaxInstruction(programID solana.PublicKey, accounts ValidatorMaintainerAccounts) (solana.Instruction, error) {
	data, err := borsh.Serialize(struct{ Discriminator uint8 }{Discriminator: InstructionDeactivateValidatorIfCommissionExceedsMax})
	if err != nil {
		return nil, fmt.Errorf("serialize DeactivateValidatorIfCommissionExceedsMax: %w", err)
	}
	return simpleInstruction(programID, InstructionDeactivateValidatorIfCommissionExceedsMax, data, accounts.Solido, accounts.VotePubkey, accounts.Maintainer)
}

type MaintainerAccounts struct {
	Solido     solana.PublicKey
	Manager    solana.PublicKey
	Maintainer solana.PublicKey
}

func BuildAddMaintainerInstruction(programID solana.PublicKey, accounts MaintainerAccounts) (solana.Instruction, error) {
	data, err := borsh.Serialize(struct{ Discriminator uint8 }{Discriminator: InstructionAddMaintainer})
	if err != nil {
		return nil, fmt.Errorf("serialize AddMaintainer: %w", err)
	}
	return managerMaintainerInstruction(programID, InstructionAddMaintainer, data, accounts)
}

func BuildRemoveMaintainerInstruction(programID solana.PublicKey, accounts MaintainerAccounts) (solana.Instruction, error) {
	data, err := borsh.Serialize(struct{ Discriminator uint8 }{Discriminator: InstructionRemoveMaintainer})
	if err != nil {
		return nil, fmt.Errorf("serialize RemoveMaintainer: %w", err)
	}
	return managerMaintainerInstruction(programID, InstructionRemoveMaintainer, data, accounts)
}

func BuildMergeStakeInstruction(programID solana.PublicKey, accounts ValidatorMaintainerAccounts, fromSeed, toSeed uint64) (solana.Instruction, error) {
	data, err := borsh.Serialize(struct {
		Discriminator uint8
		FromSeed      uint64
		ToSeed        uint64
	}{Discriminator: InstructionMergeStake, FromSeed: fromSeed, ToSeed: toSeed})
	if err != nil {
		return nil, fmt.Errorf("serialize MergeStake: %w", err)
	}
	return simpleInstruction(programID, InstructionMergeStake, data, accounts.Solido, accounts.VotePubkey, accounts.Maintainer)
}

type WithdrawAccounts struct {
	Solido        solana.PublicKey
	StSolMint     solana.PublicKey
	UserStSolSource solana.PublicKey
	User          solana.PublicKey
	DestinationStakeAccount solana.PublicKey
}

func BuildWithdrawInstruction(programID solana.PublicKey, accounts WithdrawAccounts, amount StSolAmount, validatorIndex uint32) (solana.Instruction, error) {
	data, err := borsh.Serialize(struct {
		Discriminator  uint8
		Amount         uint64
		ValidatorIndex uint32
	}{Discriminator: InstructionWithdraw, Amount: uint64(amount), ValidatorIndex: validatorIndex})
	if err != nil {
		return nil, fmt.Errorf("serialize Withdraw: %w", err)
	}
	return &solana.GenericInstruction{
		ProgID: programID,
		AccountValues: []*solana.AccountMeta{
			{PublicKey: accounts.Solido, IsSigner: false, IsWritable: true},
			{PublicKey: accounts.StSolMint, IsSigner: false, IsWritable: true},
			{PublicKey: accounts.UserStSolSource, IsSigner: false, IsWritable: true},
			{PublicKey: accounts.User, IsSigner: true, IsWritable: false},
			{PublicKey: accounts.DestinationStakeAccount, IsSigner: false, IsWritable: true},
		},
		DataBytes: data,
	}, nil
}

func BuildSetMaxCommissionPercentageInstruction(programID solana.PublicKey, accounts ManagerAccounts, value uint8) (solana.Instruction, error) {
	data, err := borsh.Serialize(struct {
		Discriminator uint8
		Value         uint8
	}{Discriminator: InstructionSetMaxCommissionPercentage, Value: value})
	if err != nil {
		return nil, fmt.Errorf("serialize SetMaxCommissionPercentage: %w", err)
	}
	return managerInstruction(programID, InstructionSetMaxCommissionPercentage, data, accounts)
}

func BuildSetMaxValidationFeeInstruction(programID solana.PublicKey, accounts ManagerAccounts, value uint8) (solana.Instruction, error) {
	data, err := borsh.Serialize(struct {
		Discriminator uint8
		Value         uint8
	}{Discriminator: InstructionSetMaxValidationFee, Value: value})
	if err != nil {
		return nil, fmt.Errorf("serialize SetMaxValidationFee: %w", err)
	}
	return managerInstruction(programID, InstructionSetMaxValidationFee, data, accounts)
}

func simpleInstruction(programID solana.PublicKey, _ uint8, data []byte, solido, votePubkey, maintainer solana.PublicKey) (solana.Instruction, error) {
	return &solana.GenericInstruction{
		ProgID: programID,
		AccountValues: []*solana.AccountMeta{
			{PublicKey: solido, IsSigner: false, IsWritable: true},
			{PublicKey: votePubkey, IsSigner: false, IsWritable: false},
			{PublicKey: maintainer, IsSigner: true, IsWritable: false},
		},
		DataBytes: data,
	}, nil
}

func managerInstruction(programID solana.PublicKey, _ uint8, data []byte, accounts ManagerAccounts) (solana.Instruction, error) {
	return &solana.GenericInstruction{
		ProgID: programID,
		AccountValues: []*solana.AccountMeta{
			{PublicKey: accounts.Solido, IsSigner: false, IsWritable: true},
			{PublicKey: accounts.Manager, IsSigner: true, IsWritable: false},
		},
		DataBytes: data,
	}, nil
}

func managerValidatorInstruction(programID solana.PublicKey, _ uint8, data []byte, accounts ValidatorRemovalAccounts) (solana.Instruction, error) {
	return &solana.GenericInstruction{
		ProgID: programID,
		AccountValues: []*solana.AccountMeta{
			{PublicKey: accounts.Solido, IsSigner: false, IsWritable: true},
			{PublicKey: accounts.Manager, IsSigner: true, IsWritable: false},
			{PublicKey: accounts.VotePubkey, IsSigner: false, IsWritable: false},
		},
		DataBytes: data,
	}, nil
}

func managerMaintainerInstruction(programID solana.PublicKey, _ uint8, data []byte, accounts MaintainerAccounts) (solana.Instruction, error) {
	return &solana.GenericInstruction{
		ProgID: programID,
		AccountValues: []*solana.AccountMeta{
			{PublicKey: accounts.Solido, IsSigner: false, IsWritable: true},
			{PublicKey: accounts.Manager, IsSigner: true, IsWritable: false},
			{PublicKey: accounts.Maintainer, IsSigner: false, IsWritable: false},
		},
		DataBytes: data,
	}, nil
}
