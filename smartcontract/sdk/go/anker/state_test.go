package anker

import (
	"testing"

	"github.com/gagliardetto/solana-go"
)

func TestHandleInitializeDerivesAuthorities(t *testing.T) {
	programID := solana.NewWallet().PublicKey()
	ankerPubkey := solana.NewWallet().PublicKey()
	solidoProgramID := solana.NewWallet().PublicKey()
	solidoPubkey := solana.NewWallet().PublicKey()
	bSolMint := solana.NewWallet().PublicKey()
	reserveAccount := solana.NewWallet().PublicKey()

	s, err := HandleInitialize(InitializeParams{
		ProgramID:       programID,
		AnkerPubkey:     ankerPubkey,
		SolidoProgramID: solidoProgramID,
		SolidoPubkey:    solidoPubkey,
		BSolMint:        bSolMint,
		ReserveAccount:  reserveAccount,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Solido != solidoPubkey || s.BSolMint != bSolMint || s.ReserveAccount != reserveAccount {
		t.Fatalf("State fields not populated as given: %+v", s)
	}

	wantAuthority, wantBump, err := DeriveReserveAuthority(programID, ankerPubkey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ReserveAuthority != wantAuthority || s.ReserveAuthorityBump != wantBump {
		t.Fatalf("ReserveAuthority = (%s, %d), want (%s, %d)", s.ReserveAuthority, s.ReserveAuthorityBump, wantAuthority, wantBump)
	}
}

func TestHandleInitializeRejectsZeroSolido(t *testing.T) {
	programID := solana.NewWallet().PublicKey()
	ankerPubkey := solana.NewWallet().PublicKey()
	bSolMint := solana.NewWallet().PublicKey()

	_, err := HandleInitialize(InitializeParams{
		ProgramID:      programID,
		AnkerPubkey:    ankerPubkey,
		SolidoPubkey:   solana.PublicKey{},
		BSolMint:       bSolMint,
		ReserveAccount: solana.NewWallet().PublicKey(),
	})
	if err == nil {
		t.Fatal("expected error for zero solido instance, got nil")
	}
	if !Is(err, ErrInvalidSolidoInstance) {
		t.Fatalf("expected ErrInvalidSolidoInstance, got %v", err)
	}
}

func TestHandleInitializeRejectsZeroMint(t *testing.T) {
	programID := solana.NewWallet().PublicKey()
	ankerPubkey := solana.NewWallet().PublicKey()
	solidoPubkey := solana.NewWallet().PublicKey()

	_, err := HandleInitialize(InitializeParams{
		ProgramID:       programID,
		AnkerPubkey:     ankerPubkey,
		SolidoProgramID: solana.NewWallet().PublicKey(),
		SolidoPubkey:    solidoPubkey,
		BSolMint:        solana.PublicKey{},
		ReserveAccount:  solana.NewWallet().PublicKey(),
	})
	if err == nil {
		t.Fatal("expected error for zero bSOL mint, got nil")
	}
	if !Is(err, ErrInvalidTokenMint) {
		t.Fatalf("expected ErrInvalidTokenMint, got %v", err)
	}
}
