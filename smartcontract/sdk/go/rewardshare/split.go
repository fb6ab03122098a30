// Package rewardshare computes the proportional split of a per-epoch SOL
// reward across Solido's four weighted recipients (treasury, developer,
// validator, stSOL appreciation). It is kept separate from the solido
// package's account/state plumbing, mirroring how the teacher corpus keeps
// reward-share math (revdist) independent of the account types that consume
// it.
package rewardshare

import "math/bits"

// Weights is the four-way split configuration. Zero-valued weights are
// legal; a call with all weights zero splits nothing (the treasury,
// developer and validator shares are zero and the whole reward becomes
// appreciation).
type Weights struct {
	Treasury      uint32
	Developer     uint32
	Validator     uint32
	Appreciation  uint32
}

func (w Weights) sum() uint64 {
	return uint64(w.Treasury) + uint64(w.Developer) + uint64(w.Validator) + uint64(w.Appreciation)
}

// Split is the result of distributing a reward across the four weights.
// Appreciation absorbs whatever the other three shares don't claim,
// including rounding slack, so the four shares always sum to exactly the
// input reward.
type Split struct {
	Treasury     uint64
	Developer    uint64
	Validator    uint64
	Appreciation uint64
}

// Distribute partitions reward by the four weights normalized to their sum.
// If the weights are all zero, or reward is zero, the treasury, developer
// and validator shares are zero and Appreciation equals the full reward (a
// no-op, accounting-wise).
func Distribute(reward uint64, w Weights) Split {
	total := w.sum()
	if total == 0 || reward == 0 {
		return Split{Appreciation: reward}
	}

	treasury := mulDiv(reward, uint64(w.Treasury), total)
	developer := mulDiv(reward, uint64(w.Developer), total)
	validator := mulDiv(reward, uint64(w.Validator), total)

	// The remainder absorbs rounding slack from the three floor divisions
	// above, so the four shares always reconstruct the exact input reward.
	appreciation := reward - treasury - developer - validator

	return Split{
		Treasury:     treasury,
		Developer:    developer,
		Validator:    validator,
		Appreciation: appreciation,
	}
}

// DistributeValidatorMisbehaving is Distribute with the validator share
// folded into appreciation, used when the validator's commission has
// drifted above the policy cap at observation time: a misbehaving
// operator's fee share is withheld rather than minted.
func DistributeValidatorMisbehaving(reward uint64, w Weights) Split {
	s := Distribute(reward, w)
	s.Appreciation += s.Validator
	s.Validator = 0
	return s
}

// mulDiv computes floor(a*num/den) without overflowing when a*num exceeds
// 64 bits, matching the 128-bit-then-truncate arithmetic solido's own typed
// amounts use. num is always one of the four weights and den their sum, so
// num <= den and the result never exceeds a; the hi < den guard below is
// always satisfied for that reason, never for an arbitrary (num, den).
func mulDiv(a, num, den uint64) uint64 {
	hi, lo := bits.Mul64(a, num)
	if hi == 0 {
		return lo / den
	}
	if hi >= den {
		return a
	}
	q, _ := bits.Div64(hi, lo, den)
	return q
}
