package anker

import (
	"testing"

	"github.com/gagliardetto/solana-go"

	"github.com/chorusone/solido-go/smartcontract/sdk/go/solido"
)

func testState(t *testing.T) (*State, solana.PublicKey, solana.PublicKey) {
	t.Helper()
	programID := solana.NewWallet().PublicKey()
	ankerPubkey := solana.NewWallet().PublicKey()
	solidoPubkey := solana.NewWallet().PublicKey()
	bSolMint := solana.NewWallet().PublicKey()
	reserveAccount := solana.NewWallet().PublicKey()

	s, err := HandleInitialize(InitializeParams{
		ProgramID:       programID,
		AnkerPubkey:     ankerPubkey,
		SolidoProgramID: solana.NewWallet().PublicKey(),
		SolidoPubkey:    solidoPubkey,
		BSolMint:        bSolMint,
		ReserveAccount:  reserveAccount,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s, bSolMint, reserveAccount
}

// TestHandleDepositAtOneToOneRate mirrors the original program's
// test_successful_deposit: a fresh Solido instance starts at a 1:1
// exchange rate, so depositing 1 SOL worth of stSOL mints the same
// number of bSOL micro-units.
func TestHandleDepositAtOneToOneRate(t *testing.T) {
	s, bSolMint, reserveAccount := testState(t)
	solidoState := &solido.State{ExchangeRate: solido.ExchangeRate{}}

	const deposit = solido.StSolAmount(1_000_000_000)
	s2, minted, err := HandleDeposit(s, solidoState, DepositParams{
		StSolAmount:    deposit,
		ReserveAccount: reserveAccount,
		BSolMint:       bSolMint,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if minted != solido.BSolAmount(deposit) {
		t.Fatalf("minted = %d, want %d at a 1:1 rate", minted, deposit)
	}
	if s2.Metrics.DepositCount != 1 || s2.Metrics.DepositTotal != uint64(deposit) {
		t.Fatalf("Metrics = %+v, want DepositCount=1 DepositTotal=%d", s2.Metrics, deposit)
	}
}

// TestHandleDepositAtNonUnityRate mirrors
// test_successful_deposit_different_exchange_rate: at a 1:2 stSOL:SOL
// rate (stSolSupply twice solBalance), a stSOL deposit converts to half
// as much underlying SOL value, so half as much bSOL is minted.
func TestHandleDepositAtNonUnityRate(t *testing.T) {
	s, bSolMint, reserveAccount := testState(t)
	solidoState := &solido.State{ExchangeRate: solido.ExchangeRate{
		ComputedInEpoch: 1,
		StSolSupply:     2_000_000_000,
		SolBalance:      1_000_000_000,
	}}

	const deposit = solido.StSolAmount(1_000_000_000)
	_, minted, err := HandleDeposit(s, solidoState, DepositParams{
		StSolAmount:    deposit,
		ReserveAccount: reserveAccount,
		BSolMint:       bSolMint,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if minted != 500_000_000 {
		t.Fatalf("minted = %d, want 500000000 at a 1:2 rate", minted)
	}
}

func TestHandleDepositRejectsZeroAmount(t *testing.T) {
	s, bSolMint, reserveAccount := testState(t)
	solidoState := &solido.State{}

	_, _, err := HandleDeposit(s, solidoState, DepositParams{
		StSolAmount:    0,
		ReserveAccount: reserveAccount,
		BSolMint:       bSolMint,
	})
	if err == nil {
		t.Fatal("expected error for zero deposit amount, got nil")
	}
}

// TestHandleDepositRejectsWrongReserve mirrors
// test_deposit_fails_with_wrong_reserve: passing an attacker-controlled
// reserve account that isn't the one derived for this Anker instance
// must fail rather than silently minting bSOL against it.
func TestHandleDepositRejectsWrongReserve(t *testing.T) {
	s, bSolMint, _ := testState(t)
	solidoState := &solido.State{}

	_, _, err := HandleDeposit(s, solidoState, DepositParams{
		StSolAmount:    1_000_000_000,
		ReserveAccount: solana.NewWallet().PublicKey(),
		BSolMint:       bSolMint,
	})
	if err == nil {
		t.Fatal("expected error for a reserve account that doesn't match the instance, got nil")
	}
	if !Is(err, ErrInvalidDerivedAccount) {
		t.Fatalf("expected ErrInvalidDerivedAccount, got %v", err)
	}
}

func TestHandleDepositRejectsWrongMint(t *testing.T) {
	s, _, reserveAccount := testState(t)
	solidoState := &solido.State{}

	_, _, err := HandleDeposit(s, solidoState, DepositParams{
		StSolAmount:    1_000_000_000,
		ReserveAccount: reserveAccount,
		BSolMint:       solana.NewWallet().PublicKey(),
	})
	if err == nil {
		t.Fatal("expected error for a bSOL mint that doesn't match the instance, got nil")
	}
	if !Is(err, ErrInvalidTokenMint) {
		t.Fatalf("expected ErrInvalidTokenMint, got %v", err)
	}
}
