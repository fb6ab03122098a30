package solido

import "github.com/gagliardetto/solana-go"

// Serialize encodes the state in the fixed layout described in spec.md §6:
// every field at a fixed width, and AccountMap entries occupying exactly
// MaximumEntries slots regardless of occupancy (empty slots are the zero
// pubkey and a zero-valued entry).
func (s *State) Serialize() []byte {
	size := s.RequiredBytes()
	bw := NewByteWriter(size)

	bw.WriteU8(s.LidoVersion)
	bw.WritePubkey(s.Manager)
	bw.WritePubkey(s.StSolMint)
	bw.WriteU64(s.ExchangeRate.ComputedInEpoch)
	bw.WriteU64(uint64(s.ExchangeRate.StSolSupply))
	bw.WriteU64(uint64(s.ExchangeRate.SolBalance))

	bw.WriteU8(s.SolReserveAuthorityBump)
	bw.WriteU8(s.StakeAuthorityBump)
	bw.WriteU8(s.MintAuthorityBump)
	bw.WriteU8(s.RewardsWithdrawAuthorityBump)

	bw.WriteU32(s.RewardDistribution.TreasuryFee)
	bw.WriteU32(s.RewardDistribution.DeveloperFee)
	bw.WriteU32(s.RewardDistribution.ValidatorFee)
	bw.WriteU32(s.RewardDistribution.StSolAppreciation)

	bw.WritePubkey(s.FeeRecipients.TreasuryAccount)
	bw.WritePubkey(s.FeeRecipients.DeveloperAccount)

	bw.WriteU64(s.Metrics.DepositCount)
	bw.WriteU64(uint64(s.Metrics.DepositTotal))
	bw.WriteU64(s.Metrics.WithdrawCount)
	bw.WriteU64(uint64(s.Metrics.WithdrawTotal))
	bw.WriteU64(uint64(s.Metrics.TreasuryFeeTotal))
	bw.WriteU64(uint64(s.Metrics.DeveloperFeeTotal))
	bw.WriteU64(uint64(s.Metrics.ValidatorFeeTotal))

	writeValidatorMap(bw, &s.Validators)
	writeMaintainerMap(bw, &s.Maintainers)

	bw.WriteU8(s.MaxCommissionPercentage)
	bw.WriteU8(s.MaxValidationFee)

	return bw.Bytes()
}

// Deserialize decodes a State from its persisted layout. Each map's length
// and capacity are read from the data itself; maxValidators and
// maxMaintainers are accepted but not used or checked.
func Deserialize(data []byte, maxValidators, maxMaintainers uint32) (*State, error) {
	br := NewByteReader(data)
	s := &State{}

	s.LidoVersion = br.ReadU8()
	s.Manager = br.ReadPubkey()
	s.StSolMint = br.ReadPubkey()
	s.ExchangeRate.ComputedInEpoch = br.ReadU64()
	s.ExchangeRate.StSolSupply = StSolAmount(br.ReadU64())
	s.ExchangeRate.SolBalance = SolAmount(br.ReadU64())

	s.SolReserveAuthorityBump = br.ReadU8()
	s.StakeAuthorityBump = br.ReadU8()
	s.MintAuthorityBump = br.ReadU8()
	s.RewardsWithdrawAuthorityBump = br.ReadU8()

	s.RewardDistribution.TreasuryFee = br.ReadU32()
	s.RewardDistribution.DeveloperFee = br.ReadU32()
	s.RewardDistribution.ValidatorFee = br.ReadU32()
	s.RewardDistribution.StSolAppreciation = br.ReadU32()

	s.FeeRecipients.TreasuryAccount = br.ReadPubkey()
	s.FeeRecipients.DeveloperAccount = br.ReadPubkey()

	s.Metrics.DepositCount = br.ReadU64()
	s.Metrics.DepositTotal = SolAmount(br.ReadU64())
	s.Metrics.WithdrawCount = br.ReadU64()
	s.Metrics.WithdrawTotal = StSolAmount(br.ReadU64())
	s.Metrics.TreasuryFeeTotal = StSolAmount(br.ReadU64())
	s.Metrics.DeveloperFeeTotal = StSolAmount(br.ReadU64())
	s.Metrics.ValidatorFeeTotal = StSolAmount(br.ReadU64())

	s.Validators = readValidatorMap(br, maxValidators)
	s.Maintainers = readMaintainerMap(br, maxMaintainers)

	s.MaxCommissionPercentage = br.ReadU8()
	s.MaxValidationFee = br.ReadU8()

	if err := br.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

const validatorEntrySize = 32 + 8 + 8 + 8 + 8 + 8 + 8 + 1 + 8 // fee_address + 2 seed ranges + 2 balances + active + fee_credit

func writeValidatorMap(bw *ByteWriter, m *AccountMap[Validator]) {
	bw.WriteU32(uint32(len(m.Entries)))
	bw.WriteU32(m.MaximumEntries)
	for _, e := range m.Entries {
		writeValidatorEntry(bw, e.Pubkey, e.Entry)
	}
	for i := uint32(len(m.Entries)); i < m.MaximumEntries; i++ {
		writeValidatorEntry(bw, solana.PublicKey{}, Validator{})
	}
}

func writeValidatorEntry(bw *ByteWriter, pubkey solana.PublicKey, v Validator) {
	bw.WritePubkey(pubkey)
	bw.WritePubkey(v.FeeAddress)
	bw.WriteU64(v.StakeSeeds.Begin)
	bw.WriteU64(v.StakeSeeds.End)
	bw.WriteU64(v.UnstakeSeeds.Begin)
	bw.WriteU64(v.UnstakeSeeds.End)
	bw.WriteU64(uint64(v.StakeAccountsBalance))
	bw.WriteU64(uint64(v.UnstakeAccountsBalance))
	bw.WriteBool(v.Active)
	bw.WriteU64(uint64(v.FeeCredit))
}

func readValidatorMap(br *ByteReader, maxEntries uint32) AccountMap[Validator] {
	length := br.ReadU32()
	capacity := br.ReadU32()
	m := NewAccountMap[Validator](capacity)
	for i := uint32(0); i < capacity; i++ {
		pubkey, v := readValidatorEntry(br)
		if i < length {
			m.Entries = append(m.Entries, PubkeyAndEntry[Validator]{Pubkey: pubkey, Entry: v})
		}
	}
	_ = maxEntries
	return m
}

func readValidatorEntry(br *ByteReader) (solana.PublicKey, Validator) {
	pubkey := br.ReadPubkey()
	var v Validator
	v.FeeAddress = br.ReadPubkey()
	v.StakeSeeds.Begin = br.ReadU64()
	v.StakeSeeds.End = br.ReadU64()
	v.UnstakeSeeds.Begin = br.ReadU64()
	v.UnstakeSeeds.End = br.ReadU64()
	v.StakeAccountsBalance = SolAmount(br.ReadU64())
	v.UnstakeAccountsBalance = SolAmount(br.ReadU64())
	v.Active = br.ReadBool()
	v.FeeCredit = StSolAmount(br.ReadU64())
	return pubkey, v
}

func writeMaintainerMap(bw *ByteWriter, m *AccountMap[struct{}]) {
	bw.WriteU32(uint32(len(m.Entries)))
	bw.WriteU32(m.MaximumEntries)
	for _, e := range m.Entries {
		bw.WritePubkey(e.Pubkey)
	}
	for i := uint32(len(m.Entries)); i < m.MaximumEntries; i++ {
		bw.WritePubkey(solana.PublicKey{})
	}
}

func readMaintainerMap(br *ByteReader, maxEntries uint32) AccountMap[struct{}] {
	length := br.ReadU32()
	capacity := br.ReadU32()
	m := NewAccountMap[struct{}](capacity)
	for i := uint32(0); i < capacity; i++ {
		pubkey := br.ReadPubkey()
		if i < length {
			m.Entries = append(m.Entries, PubkeyAndEntry[struct{}]{Pubkey: pubkey})
		}
	}
	_ = maxEntries
	return m
}

// RequiredBytes returns the exact serialized size of s given its maps'
// current capacities.
func (s *State) RequiredBytes() int {
	fixed := 1 + 32 + 32 + 8 + 8 + 8 + // version, manager, mint, exchange rate
		4 + // 4 bumps
		16 + // reward distribution weights
		64 + // fee recipients
		56 + // metrics
		2 // max commission / max validation fee
	validatorsSize := RequiredBytes(s.Validators.MaximumEntries, validatorEntrySize)
	maintainersSize := RequiredBytes(s.Maintainers.MaximumEntries, 0)
	return fixed + validatorsSize + maintainersSize
}
