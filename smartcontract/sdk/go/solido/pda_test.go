package solido

import "testing"
import "github.com/gagliardetto/solana-go"

func TestDeriveAuthoritiesAreDistinctAndDeterministic(t *testing.T) {
	programID := solana.NewWallet().PublicKey()
	solidoPubkey := solana.NewWallet().PublicKey()

	reserve, _, err := DeriveReserveAuthority(programID, solidoPubkey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stake, _, err := DeriveStakeAuthority(programID, solidoPubkey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mint, _, err := DeriveMintAuthority(programID, solidoPubkey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rewards, _, err := DeriveRewardsWithdrawAuthority(programID, solidoPubkey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := map[solana.PublicKey]string{}
	for name, pk := range map[string]solana.PublicKey{
		"reserve": reserve, "stake": stake, "mint": mint, "rewards": rewards,
	} {
		if other, ok := seen[pk]; ok {
			t.Fatalf("%s and %s derived to the same PDA %s", name, other, pk)
		}
		seen[pk] = name
	}

	reserveAgain, _, err := DeriveReserveAuthority(programID, solidoPubkey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reserveAgain.Equals(reserve) {
		t.Fatalf("DeriveReserveAuthority is not deterministic: %s != %s", reserveAgain, reserve)
	}
}

func TestDeriveStakeAccountVariesWithSeed(t *testing.T) {
	programID := solana.NewWallet().PublicKey()
	solidoPubkey := solana.NewWallet().PublicKey()
	votePubkey := solana.NewWallet().PublicKey()

	a, _, err := DeriveStakeAccount(programID, solidoPubkey, votePubkey, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _, err := DeriveStakeAccount(programID, solidoPubkey, votePubkey, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Equals(b) {
		t.Fatal("stake accounts at different seeds derived to the same PDA")
	}
}

func TestDeriveStakeAndUnstakeAccountsDiffer(t *testing.T) {
	programID := solana.NewWallet().PublicKey()
	solidoPubkey := solana.NewWallet().PublicKey()
	votePubkey := solana.NewWallet().PublicKey()

	stake, _, err := DeriveStakeAccount(programID, solidoPubkey, votePubkey, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	unstake, _, err := DeriveUnstakeAccount(programID, solidoPubkey, votePubkey, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stake.Equals(unstake) {
		t.Fatal("stake and unstake accounts at the same seed derived to the same PDA")
	}
}
