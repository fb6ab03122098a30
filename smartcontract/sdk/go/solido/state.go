package solido

import "github.com/gagliardetto/solana-go"

// LidoVersion is the layout version this package reads and writes.
const LidoVersion uint8 = 1

// MaxStakeAccountsPerValidator names the compute-budget ceiling of about
// nine stake accounts per validator in one instruction. No handler in this
// package checks it: UpdateStakeAccountBalance and MergeStake take
// caller-supplied balances and do not iterate stake accounts themselves.
const MaxStakeAccountsPerValidator = 9

// SeedRange is a half-open range [Begin, End) of stake-account seeds. Begin
// and End only ever increase.
type SeedRange struct {
	Begin uint64
	End   uint64
}

func (r SeedRange) Len() uint64 {
	return r.End - r.Begin
}

func (r SeedRange) IsEmpty() bool {
	return r.Begin == r.End
}

// Validator is one entry of the validator registry.
type Validator struct {
	FeeAddress           solana.PublicKey
	StakeSeeds           SeedRange
	UnstakeSeeds         SeedRange
	StakeAccountsBalance SolAmount
	UnstakeAccountsBalance SolAmount
	Active               bool
	FeeCredit            StSolAmount
}

// CanBeRemoved reports whether this validator satisfies §4.9's removal
// preconditions: inactive, both seed ranges empty, zero unclaimed credit.
func (v *Validator) CanBeRemoved() bool {
	return !v.Active && v.StakeSeeds.IsEmpty() && v.UnstakeSeeds.IsEmpty() && v.FeeCredit == 0
}

// RewardDistribution is the four-weight split of per-epoch appreciation.
// This is the newer model mandated by the spec; the older two-weight
// "fee distribution" shape is not implemented.
type RewardDistribution struct {
	TreasuryFee       uint32
	DeveloperFee      uint32
	ValidatorFee      uint32
	StSolAppreciation uint32
}

func (d RewardDistribution) sum() uint64 {
	return uint64(d.TreasuryFee) + uint64(d.DeveloperFee) + uint64(d.ValidatorFee) + uint64(d.StSolAppreciation)
}

// FeeRecipients names the accounts minted stSOL fee shares are sent to.
type FeeRecipients struct {
	TreasuryAccount  solana.PublicKey
	DeveloperAccount solana.PublicKey
}

// Metrics accumulates lifetime counters, surfaced for observability but
// never consulted by handler logic.
type Metrics struct {
	DepositCount    uint64
	DepositTotal    SolAmount
	WithdrawCount   uint64
	WithdrawTotal   StSolAmount
	TreasuryFeeTotal StSolAmount
	DeveloperFeeTotal StSolAmount
	ValidatorFeeTotal StSolAmount
}

// State is the single record persisted in the Solido account. Its in-memory
// shape mirrors spec.md's declaration order exactly: that order is also the
// wire order Serialize/Deserialize use.
type State struct {
	LidoVersion  uint8
	Manager      solana.PublicKey
	StSolMint    solana.PublicKey
	ExchangeRate ExchangeRate

	SolReserveAuthorityBump    uint8
	StakeAuthorityBump         uint8
	MintAuthorityBump          uint8
	RewardsWithdrawAuthorityBump uint8

	RewardDistribution RewardDistribution
	FeeRecipients      FeeRecipients
	Metrics            Metrics

	Validators  AccountMap[Validator]
	Maintainers AccountMap[struct{}]

	MaxCommissionPercentage uint8
	MaxValidationFee        uint8
}

// FindValidator looks up a validator by vote pubkey.
func (s *State) FindValidator(votePubkey solana.PublicKey) (*Validator, error) {
	v, ok := s.Validators.GetMut(votePubkey)
	if !ok {
		return nil, NewError(ErrValidatorNotFound, votePubkey.String())
	}
	return v, nil
}

// IsMaintainer reports whether pubkey is in the maintainer set.
func (s *State) IsMaintainer(pubkey solana.PublicKey) bool {
	_, ok := s.Maintainers.Get(pubkey)
	return ok
}

// IsManager reports whether pubkey is the privileged manager authority.
func (s *State) IsManager(pubkey solana.PublicKey) bool {
	return s.Manager.Equals(pubkey)
}
