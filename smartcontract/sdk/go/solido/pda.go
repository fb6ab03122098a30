package solido

import "github.com/gagliardetto/solana-go"

// Role tags for Solido's authority program-derived addresses. Each authority
// is derived from (solido_pubkey, role_tag); stake and unstake accounts are
// derived from (solido_pubkey, vote_pubkey, ["unstake"], seed) with no role
// tag. Every Derive* function searches for the bump with FindProgramAddress;
// Initialize records the authority bumps on State.
const (
	RoleReserveAuthority        = "reserve_authority"
	RoleStakeAuthority          = "stake_authority"
	RoleMintAuthority           = "mint_authority"
	RoleRewardsWithdrawAuthority = "rewards_withdraw_authority"
)

// DeriveReserveAuthority derives the reserve account, the program-owned
// holder of undelegated SOL.
func DeriveReserveAuthority(programID, solidoPubkey solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{solidoPubkey[:], []byte(RoleReserveAuthority)},
		programID,
	)
}

// DeriveStakeAuthority derives the authority permitted to sign stake-program
// invocations (delegate, split, merge, withdraw) on behalf of Solido.
func DeriveStakeAuthority(programID, solidoPubkey solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{solidoPubkey[:], []byte(RoleStakeAuthority)},
		programID,
	)
}

// DeriveMintAuthority derives the authority permitted to mint stSOL.
func DeriveMintAuthority(programID, solidoPubkey solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{solidoPubkey[:], []byte(RoleMintAuthority)},
		programID,
	)
}

// DeriveRewardsWithdrawAuthority derives the address a validator's vote
// account withdraw authority must be reassigned to before admission.
func DeriveRewardsWithdrawAuthority(programID, solidoPubkey solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{solidoPubkey[:], []byte(RoleRewardsWithdrawAuthority)},
		programID,
	)
}

// DeriveStakeAccount derives a validator's N-th stake account from
// (solido, vote, seed).
func DeriveStakeAccount(programID, solidoPubkey, votePubkey solana.PublicKey, seed uint64) (solana.PublicKey, uint8, error) {
	var seedBytes [8]byte
	putUint64LE(seedBytes[:], seed)
	return solana.FindProgramAddress(
		[][]byte{solidoPubkey[:], votePubkey[:], seedBytes[:]},
		programID,
	)
}

// DeriveUnstakeAccount derives a validator's N-th unstake (deactivating)
// account, addressed under a distinct seed series from the active stake
// accounts.
func DeriveUnstakeAccount(programID, solidoPubkey, votePubkey solana.PublicKey, seed uint64) (solana.PublicKey, uint8, error) {
	var seedBytes [8]byte
	putUint64LE(seedBytes[:], seed)
	return solana.FindProgramAddress(
		[][]byte{solidoPubkey[:], votePubkey[:], []byte("unstake"), seedBytes[:]},
		programID,
	)
}

func putUint64LE(dst []byte, v uint64) {
	for i := 0; i < 8; i++ {
		dst[i] = byte(v >> (8 * i))
	}
}
