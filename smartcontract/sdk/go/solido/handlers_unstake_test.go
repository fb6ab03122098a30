package solido

import "testing"
import "github.com/gagliardetto/solana-go"

func TestHandleUnstakeMovesActiveToUnstakeBalance(t *testing.T) {
	s := newTestState(t)
	maintainer := addTestMaintainer(t, s)
	vote := addTestValidator(t, s)
	v, _ := s.Validators.GetMut(vote)
	v.StakeAccountsBalance = SolAmount(10_000_000_000)

	s2, seed, _, err := HandleUnstake(s, UnstakeParams{Caller: maintainer, VotePubkey: vote, Amount: SolAmount(3_000_000_000)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seed != 0 {
		t.Fatalf("seed = %d, want 0", seed)
	}
	v2, _ := s2.Validators.Get(vote)
	if v2.StakeAccountsBalance != SolAmount(7_000_000_000) {
		t.Fatalf("StakeAccountsBalance = %d, want 7000000000", v2.StakeAccountsBalance)
	}
	if v2.UnstakeAccountsBalance != SolAmount(3_000_000_000) {
		t.Fatalf("UnstakeAccountsBalance = %d, want 3000000000", v2.UnstakeAccountsBalance)
	}
	if v2.UnstakeSeeds.End != 1 {
		t.Fatalf("UnstakeSeeds.End = %d, want 1", v2.UnstakeSeeds.End)
	}
}

func TestHandleUnstakeRejectsExceedingBalance(t *testing.T) {
	s := newTestState(t)
	maintainer := addTestMaintainer(t, s)
	vote := addTestValidator(t, s)
	_, _, _, err := HandleUnstake(s, UnstakeParams{Caller: maintainer, VotePubkey: vote, Amount: SolAmount(1)})
	if err == nil {
		t.Fatal("expected error unstaking more than the stake-account balance, got nil")
	}
}

func TestHandleUnstakeRejectsNonMaintainer(t *testing.T) {
	s := newTestState(t)
	vote := addTestValidator(t, s)
	_, _, _, err := HandleUnstake(s, UnstakeParams{Caller: solana.NewWallet().PublicKey(), VotePubkey: vote, Amount: SolAmount(1)})
	if err == nil {
		t.Fatal("expected error for a non-maintainer caller, got nil")
	}
	if !Is(err, ErrInvalidMaintainer) {
		t.Fatalf("expected ErrInvalidMaintainer, got %v", err)
	}
}

func TestHandleWithdrawInactiveStakeAdvancesBegin(t *testing.T) {
	s := newTestState(t)
	maintainer := addTestMaintainer(t, s)
	vote := addTestValidator(t, s)
	v, _ := s.Validators.GetMut(vote)
	v.UnstakeAccountsBalance = SolAmount(5_000_000_000)
	v.UnstakeSeeds = SeedRange{Begin: 0, End: 1}

	s2, _, err := HandleWithdrawInactiveStake(s, WithdrawInactiveStakeParams{Caller: maintainer, VotePubkey: vote, InactiveAmount: SolAmount(5_000_000_000)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v2, _ := s2.Validators.Get(vote)
	if v2.UnstakeSeeds.Begin != 1 {
		t.Fatalf("UnstakeSeeds.Begin = %d, want 1", v2.UnstakeSeeds.Begin)
	}
	if v2.UnstakeAccountsBalance != 0 {
		t.Fatalf("UnstakeAccountsBalance = %d, want 0", v2.UnstakeAccountsBalance)
	}
}

func TestHandleWithdrawInactiveStakeRejectsEmptyRange(t *testing.T) {
	s := newTestState(t)
	maintainer := addTestMaintainer(t, s)
	vote := addTestValidator(t, s)
	_, _, err := HandleWithdrawInactiveStake(s, WithdrawInactiveStakeParams{Caller: maintainer, VotePubkey: vote})
	if err == nil {
		t.Fatal("expected error when there are no unstake accounts, got nil")
	}
}

func TestHandleWithdrawInactiveStakeRejectsNonMaintainer(t *testing.T) {
	s := newTestState(t)
	vote := addTestValidator(t, s)
	_, _, err := HandleWithdrawInactiveStake(s, WithdrawInactiveStakeParams{Caller: solana.NewWallet().PublicKey(), VotePubkey: vote})
	if err == nil {
		t.Fatal("expected error for a non-maintainer caller, got nil")
	}
	if !Is(err, ErrInvalidMaintainer) {
		t.Fatalf("expected ErrInvalidMaintainer, got %v", err)
	}
}

func TestHandleWithdrawBurnsAndConverts(t *testing.T) {
	s := newTestState(t)
	s.ExchangeRate = ExchangeRate{ComputedInEpoch: 1, StSolSupply: 100, SolBalance: 105}
	vote := addTestValidator(t, s)
	v, _ := s.Validators.GetMut(vote)
	v.StakeAccountsBalance = SolAmount(1_000_000_000)

	s2, solAmount, _, err := HandleWithdraw(s, WithdrawParams{StSolAmount: StSolAmount(100), SourceVote: vote})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if solAmount != SolAmount(105) {
		t.Fatalf("solAmount = %d, want 105", solAmount)
	}
	if s2.Metrics.WithdrawCount != 1 {
		t.Fatalf("WithdrawCount = %d, want 1", s2.Metrics.WithdrawCount)
	}
}

func TestHandleWithdrawRejectsExceedingValidatorBalance(t *testing.T) {
	s := newTestState(t)
	vote := addTestValidator(t, s)
	_, _, _, err := HandleWithdraw(s, WithdrawParams{StSolAmount: StSolAmount(1_000_000_000), SourceVote: vote})
	if err == nil {
		t.Fatal("expected error withdrawing more than the source validator holds, got nil")
	}
}

func TestLargestEffectiveStakeValidatorPicksMax(t *testing.T) {
	s := newTestState(t)
	a := addTestValidator(t, s)
	b := addTestValidator(t, s)
	va, _ := s.Validators.GetMut(a)
	va.StakeAccountsBalance = SolAmount(1_000)
	vb, _ := s.Validators.GetMut(b)
	vb.StakeAccountsBalance = SolAmount(9_000)

	best, found := LargestEffectiveStakeValidator(s)
	if !found {
		t.Fatal("expected a validator to be found")
	}
	if !best.Equals(b) {
		t.Fatalf("best = %s, want %s", best, b)
	}
}

func TestLargestEffectiveStakeValidatorEmpty(t *testing.T) {
	s := newTestState(t)
	_, found := LargestEffectiveStakeValidator(s)
	if found {
		t.Fatal("expected found=false for an empty validator set")
	}
}
