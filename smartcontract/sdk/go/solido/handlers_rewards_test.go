package solido

import (
	"testing"

	"github.com/gagliardetto/solana-go"
)

// Scenario 4: a validator's observed stake balance grows by 19 SOL since the
// last check; the reward splits 3% treasury / 2% developer / 5% validator /
// 90% appreciation of that growth, and the validator's fee share is both
// minted to its fee address and recorded as FeeCredit.
func TestHandleUpdateStakeAccountBalanceDistributesReward(t *testing.T) {
	s := newTestState(t)
	maintainer := addTestMaintainer(t, s)
	s.RewardDistribution = RewardDistribution{TreasuryFee: 3, DeveloperFee: 2, ValidatorFee: 5, StSolAppreciation: 90}
	s.ExchangeRate = ExchangeRate{ComputedInEpoch: 7, StSolSupply: 1, SolBalance: 1} // keep 1:1 for an exact check
	vote := addTestValidator(t, s)
	v, _ := s.Validators.GetMut(vote)
	v.StakeAccountsBalance = SolAmount(100_000_000_000)

	observed := SolAmount(100_000_000_000 + 19_000_000_000)

	s2, mints, withdrawn, _, err := HandleUpdateStakeAccountBalance(s, UpdateStakeAccountBalanceParams{
		Caller:            maintainer,
		VotePubkey:        vote,
		ObservedBalance:   observed,
		CurrentEpoch:      7,
		CommissionPercent: 5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantTreasury := StSolAmount(19_000_000_000 * 3 / 100)
	wantDeveloper := StSolAmount(19_000_000_000 * 2 / 100)
	wantValidator := StSolAmount(19_000_000_000 * 5 / 100)

	if len(mints) != 3 {
		t.Fatalf("len(mints) = %d, want 3", len(mints))
	}
	if mints[0].Amount != wantTreasury {
		t.Fatalf("treasury mint = %d, want %d", mints[0].Amount, wantTreasury)
	}
	if mints[1].Amount != wantDeveloper {
		t.Fatalf("developer mint = %d, want %d", mints[1].Amount, wantDeveloper)
	}
	if mints[2].Amount != wantValidator {
		t.Fatalf("validator mint = %d, want %d", mints[2].Amount, wantValidator)
	}

	wantWithdrawn := SolAmount(uint64(wantTreasury) + uint64(wantDeveloper) + uint64(wantValidator))
	if withdrawn != wantWithdrawn {
		t.Fatalf("withdrawn = %d, want %d", withdrawn, wantWithdrawn)
	}

	v2, _ := s2.Validators.Get(vote)
	if v2.FeeCredit != wantValidator {
		t.Fatalf("FeeCredit = %d, want %d", v2.FeeCredit, wantValidator)
	}
}

// TestHandleUpdateStakeAccountBalanceRoundsDownStSolMintsAtNonUnityRate
// covers spec.md §8 Scenario 4's documented rounding-slack edge case: the SOL
// share each fee recipient is owed is itself an exact round_down(reward*pct/
// 100), but converting that SOL share to stSOL at a rate where stSOL is
// worth fractionally more than 1 SOL floors it down one more micro-unit, so
// the actual mint lands at round_down(reward*pct/100) - 1, not the naive
// integer split.
func TestHandleUpdateStakeAccountBalanceRoundsDownStSolMintsAtNonUnityRate(t *testing.T) {
	s := newTestState(t)
	maintainer := addTestMaintainer(t, s)
	s.RewardDistribution = RewardDistribution{TreasuryFee: 3, DeveloperFee: 2, ValidatorFee: 5, StSolAppreciation: 90}
	// StSolSupply one short of SolBalance: each SOL share converts to
	// fractionally less stSOL, so a clean integer SOL share still truncates
	// on the SOL->stSOL leg.
	s.ExchangeRate = ExchangeRate{ComputedInEpoch: 7, StSolSupply: 999_999_999, SolBalance: 1_000_000_000}
	vote := addTestValidator(t, s)
	v, _ := s.Validators.GetMut(vote)
	v.StakeAccountsBalance = SolAmount(100_000_000_000)

	const rewardDelta = 19_000_000_000
	observed := SolAmount(100_000_000_000 + rewardDelta)

	s2, mints, _, _, err := HandleUpdateStakeAccountBalance(s, UpdateStakeAccountBalanceParams{
		Caller:            maintainer,
		VotePubkey:        vote,
		ObservedBalance:   observed,
		CurrentEpoch:      7,
		CommissionPercent: 5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	naiveTreasury := StSolAmount(rewardDelta * 3 / 100)
	naiveDeveloper := StSolAmount(rewardDelta * 2 / 100)
	naiveValidator := StSolAmount(rewardDelta * 5 / 100)

	if len(mints) != 3 {
		t.Fatalf("len(mints) = %d, want 3", len(mints))
	}
	if mints[0].Amount != naiveTreasury-1 {
		t.Fatalf("treasury mint = %d, want %d (naive %d minus rounding slack)", mints[0].Amount, naiveTreasury-1, naiveTreasury)
	}
	if mints[1].Amount != naiveDeveloper-1 {
		t.Fatalf("developer mint = %d, want %d (naive %d minus rounding slack)", mints[1].Amount, naiveDeveloper-1, naiveDeveloper)
	}

	v2, _ := s2.Validators.Get(vote)
	if v2.FeeCredit != naiveValidator-1 {
		t.Fatalf("FeeCredit = %d, want %d (naive %d minus rounding slack)", v2.FeeCredit, naiveValidator-1, naiveValidator)
	}
}

func TestHandleUpdateStakeAccountBalanceZeroRewardIsNoOp(t *testing.T) {
	s := newTestState(t)
	maintainer := addTestMaintainer(t, s)
	s.ExchangeRate.ComputedInEpoch = 3
	vote := addTestValidator(t, s)
	v, _ := s.Validators.GetMut(vote)
	v.StakeAccountsBalance = SolAmount(50_000_000_000)

	s2, mints, withdrawn, _, err := HandleUpdateStakeAccountBalance(s, UpdateStakeAccountBalanceParams{
		Caller:          maintainer,
		VotePubkey:      vote,
		ObservedBalance: SolAmount(50_000_000_000),
		CurrentEpoch:    3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mints) != 0 || withdrawn != 0 {
		t.Fatalf("expected no mints and no withdrawal for zero reward, got mints=%v withdrawn=%d", mints, withdrawn)
	}
	v2, _ := s2.Validators.Get(vote)
	if v2.StakeAccountsBalance != SolAmount(50_000_000_000) {
		t.Fatalf("StakeAccountsBalance = %d, want unchanged 50000000000", v2.StakeAccountsBalance)
	}
}

func TestHandleUpdateStakeAccountBalanceRejectsStaleEpoch(t *testing.T) {
	s := newTestState(t)
	maintainer := addTestMaintainer(t, s)
	s.ExchangeRate.ComputedInEpoch = 3
	vote := addTestValidator(t, s)
	_, _, _, _, err := HandleUpdateStakeAccountBalance(s, UpdateStakeAccountBalanceParams{
		Caller:       maintainer,
		VotePubkey:   vote,
		CurrentEpoch: 4,
	})
	if err == nil {
		t.Fatal("expected error for stale exchange-rate epoch, got nil")
	}
}

func TestHandleUpdateStakeAccountBalanceRejectsNonMaintainer(t *testing.T) {
	s := newTestState(t)
	vote := addTestValidator(t, s)
	_, _, _, _, err := HandleUpdateStakeAccountBalance(s, UpdateStakeAccountBalanceParams{
		Caller:       solana.NewWallet().PublicKey(),
		VotePubkey:   vote,
		CurrentEpoch: 0,
	})
	if err == nil {
		t.Fatal("expected error for a non-maintainer caller, got nil")
	}
	if !Is(err, ErrInvalidMaintainer) {
		t.Fatalf("expected ErrInvalidMaintainer, got %v", err)
	}
}

// Commission exceeding the policy cap folds the validator share into
// appreciation (no validator mint) and deactivates the validator.
func TestHandleUpdateStakeAccountBalanceCommissionExceededFoldsIntoAppreciation(t *testing.T) {
	s := newTestState(t)
	maintainer := addTestMaintainer(t, s)
	s.RewardDistribution = RewardDistribution{TreasuryFee: 4, DeveloperFee: 1, ValidatorFee: 5, StSolAppreciation: 90}
	s.ExchangeRate.ComputedInEpoch = 9
	vote := addTestValidator(t, s)
	v, _ := s.Validators.GetMut(vote)
	v.StakeAccountsBalance = SolAmount(10_000_000_000)

	s2, mints, _, _, err := HandleUpdateStakeAccountBalance(s, UpdateStakeAccountBalanceParams{
		Caller:            maintainer,
		VotePubkey:        vote,
		ObservedBalance:   SolAmount(11_000_000_000),
		CurrentEpoch:      9,
		CommissionPercent: 50, // exceeds MaxCommissionPercentage (10)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mints) != 2 {
		t.Fatalf("len(mints) = %d, want 2 (no validator mint when commission exceeded)", len(mints))
	}
	v2, _ := s2.Validators.Get(vote)
	if v2.Active {
		t.Fatal("expected validator to be deactivated after exceeding commission cap")
	}
	if v2.FeeCredit != 0 {
		t.Fatalf("FeeCredit = %d, want 0 when commission exceeded", v2.FeeCredit)
	}
}
