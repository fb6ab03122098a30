package solido

import "testing"
import "github.com/gagliardetto/solana-go"

func newTestState(t *testing.T) *State {
	t.Helper()
	s, err := HandleInitialize(InitializeParams{
		Manager:                 solana.NewWallet().PublicKey(),
		StSolMint:               solana.NewWallet().PublicKey(),
		RewardDistribution:      RewardDistribution{TreasuryFee: 4, DeveloperFee: 1, ValidatorFee: 5, StSolAppreciation: 90},
		MaxValidators:           10,
		MaxMaintainers:          5,
		MaxCommissionPercentage: 10,
		MaxValidationFee:        200,
	})
	if err != nil {
		t.Fatalf("unexpected error initializing test state: %v", err)
	}
	return s
}

// Scenario 1: first deposit into an empty pool mints 1:1.
func TestHandleDepositFirstDepositIsOneToOne(t *testing.T) {
	s := newTestState(t)
	reserve := solana.NewWallet().PublicKey()

	s2, minted, _, err := HandleDeposit(s, DepositParams{
		Amount:                 SolAmount(10_000_000_000),
		SuppliedReserve:        reserve,
		DerivedReserve:         reserve,
		StSolMintOfDestination: s.StSolMint,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if minted != StSolAmount(10_000_000_000) {
		t.Fatalf("minted = %d, want 10000000000", minted)
	}
	if s2.Metrics.DepositCount != 1 {
		t.Fatalf("DepositCount = %d, want 1", s2.Metrics.DepositCount)
	}
	if s2.Metrics.DepositTotal != SolAmount(10_000_000_000) {
		t.Fatalf("DepositTotal = %d, want 10000000000", s2.Metrics.DepositTotal)
	}
}

// Scenario 2: a subsequent deposit after the rate has moved off 1:1 mints
// proportionally less stSOL per SOL.
func TestHandleDepositAtNonUnityRate(t *testing.T) {
	s := newTestState(t)
	s.ExchangeRate = ExchangeRate{
		ComputedInEpoch: 1,
		StSolSupply:     StSolAmount(100_000_000_000),
		SolBalance:      SolAmount(105_000_000_000),
	}
	reserve := solana.NewWallet().PublicKey()

	_, minted, _, err := HandleDeposit(s, DepositParams{
		Amount:                 SolAmount(1_050_000_000),
		SuppliedReserve:        reserve,
		DerivedReserve:         reserve,
		StSolMintOfDestination: s.StSolMint,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if minted != StSolAmount(1_000_000_000) {
		t.Fatalf("minted = %d, want 1000000000", minted)
	}
}

func TestHandleDepositRejectsZeroAmount(t *testing.T) {
	s := newTestState(t)
	reserve := solana.NewWallet().PublicKey()
	_, _, _, err := HandleDeposit(s, DepositParams{
		Amount:                 0,
		SuppliedReserve:        reserve,
		DerivedReserve:         reserve,
		StSolMintOfDestination: s.StSolMint,
	})
	if err == nil {
		t.Fatal("expected error for zero amount, got nil")
	}
}

func TestHandleDepositRejectsWrongReserve(t *testing.T) {
	s := newTestState(t)
	_, _, _, err := HandleDeposit(s, DepositParams{
		Amount:                 SolAmount(1),
		SuppliedReserve:        solana.NewWallet().PublicKey(),
		DerivedReserve:         solana.NewWallet().PublicKey(),
		StSolMintOfDestination: s.StSolMint,
	})
	if err == nil {
		t.Fatal("expected error for mismatched reserve, got nil")
	}
}

func TestHandleDepositRejectsWrongMint(t *testing.T) {
	s := newTestState(t)
	reserve := solana.NewWallet().PublicKey()
	_, _, _, err := HandleDeposit(s, DepositParams{
		Amount:                 SolAmount(1),
		SuppliedReserve:        reserve,
		DerivedReserve:         reserve,
		StSolMintOfDestination: solana.NewWallet().PublicKey(),
	})
	if err == nil {
		t.Fatal("expected error for mismatched mint, got nil")
	}
}

// Scenario 5: deposit amounts that would overflow Metrics.DepositTotal fail
// cleanly rather than wrapping.
func TestHandleDepositOverflowingMetricsFails(t *testing.T) {
	s := newTestState(t)
	s.Metrics.DepositTotal = SolAmount(^uint64(0))
	reserve := solana.NewWallet().PublicKey()

	_, _, _, err := HandleDeposit(s, DepositParams{
		Amount:                 SolAmount(1),
		SuppliedReserve:        reserve,
		DerivedReserve:         reserve,
		StSolMintOfDestination: s.StSolMint,
	})
	if err == nil {
		t.Fatal("expected overflow error, got nil")
	}
}
