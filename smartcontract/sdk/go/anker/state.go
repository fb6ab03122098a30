// Package anker implements the stSOL-wrapping side of Solido's sibling
// protocol: depositing stSOL mints bSOL 1:1 with the SOL value stSOL
// carries at deposit time, per Solido's own exchange rate. The
// withdraw/claim path and the UST bridge/AMM integration are explicit
// Non-goals; only the wrap path lives here.
package anker

import "github.com/gagliardetto/solana-go"

// Metrics accumulates lifetime deposit counters, mirroring solido.Metrics'
// role as an observability-only accumulator the handler logic never reads
// back.
type Metrics struct {
	DepositCount uint64
	DepositTotal uint64 // stSOL micro-units deposited, lifetime.
}

// State is the single record persisted in the Anker account: one per
// Solido instance it wraps.
type State struct {
	SolidoProgramID solana.PublicKey
	Solido          solana.PublicKey
	BSolMint        solana.PublicKey
	ReserveAccount  solana.PublicKey
	ReserveAuthority solana.PublicKey

	ReserveAuthorityBump uint8
	MintAuthorityBump    uint8

	Metrics Metrics
}

// InitializeParams mirrors solido.InitializeParams' shape: the caller
// resolves the PDA inputs (program and instance addresses), the pure
// handler derives and stores the resulting bumps.
type InitializeParams struct {
	ProgramID       solana.PublicKey
	AnkerPubkey     solana.PublicKey
	SolidoProgramID solana.PublicKey
	SolidoPubkey    solana.PublicKey
	BSolMint        solana.PublicKey
	ReserveAccount  solana.PublicKey
}

// HandleInitialize derives Anker's PDAs for the given Solido instance and
// returns a fresh, empty State, mirroring lido::logic's "derive once at
// Initialize, store the bumps" discipline.
func HandleInitialize(p InitializeParams) (*State, error) {
	if p.SolidoPubkey.IsZero() {
		return nil, NewError(ErrInvalidSolidoInstance, "solido instance must not be the zero address")
	}
	if p.BSolMint.IsZero() {
		return nil, NewError(ErrInvalidTokenMint, "bSOL mint must not be the zero address")
	}

	reserveAuthority, reserveAuthorityBump, err := DeriveReserveAuthority(p.ProgramID, p.AnkerPubkey)
	if err != nil {
		return nil, err
	}
	_, mintAuthorityBump, err := DeriveMintAuthority(p.ProgramID, p.AnkerPubkey)
	if err != nil {
		return nil, err
	}

	return &State{
		SolidoProgramID:      p.SolidoProgramID,
		Solido:               p.SolidoPubkey,
		BSolMint:             p.BSolMint,
		ReserveAccount:       p.ReserveAccount,
		ReserveAuthority:     reserveAuthority,
		ReserveAuthorityBump: reserveAuthorityBump,
		MintAuthorityBump:    mintAuthorityBump,
	}, nil
}
