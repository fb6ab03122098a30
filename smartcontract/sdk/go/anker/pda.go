package anker

import "github.com/gagliardetto/solana-go"

// Role tags for Anker's program-derived addresses, matching the teacher's
// (and lido's own) convention of (owner_pubkey, role_tag) seed pairs.
const (
	RoleReserveAuthority = "reserve_authority"
	RoleStSolReserve     = "st_sol_reserve_account"
	RoleMintAuthority    = "mint_authority"
)

// DeriveInstanceAddress derives the Anker instance address belonging to a
// given Solido instance: one Anker instance per Solido instance.
func DeriveInstanceAddress(programID, solidoPubkey solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{solidoPubkey[:]}, programID)
}

// DeriveReserveAuthority derives the authority that owns Anker's stSOL
// reserve account.
func DeriveReserveAuthority(programID, ankerPubkey solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{ankerPubkey[:], []byte(RoleReserveAuthority)}, programID)
}

// DeriveStSolReserveAccount derives the token account that holds stSOL
// deposited into Anker before it is wrapped into bSOL.
func DeriveStSolReserveAccount(programID, ankerPubkey solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{ankerPubkey[:], []byte(RoleStSolReserve)}, programID)
}

// DeriveMintAuthority derives the authority permitted to mint bSOL.
func DeriveMintAuthority(programID, ankerPubkey solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{ankerPubkey[:], []byte(RoleMintAuthority)}, programID)
}
