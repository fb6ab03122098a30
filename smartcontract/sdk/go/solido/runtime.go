package solido

import (
	"github.com/gagliardetto/solana-go"
	"github.com/jonboulle/clockwork"
)

// Epoch is the runtime's coarse time unit: rewards accrue and rates refresh
// at most once per epoch. Handlers never read wall-clock time directly;
// they take the current epoch as an explicit argument so the engine stays a
// pure function of (state, instruction, accounts, epoch).
type Epoch uint64

// EpochClock turns a clockwork.Clock into epoch numbers for callers (tests,
// the maintenance daemon stand-in) that want to derive "now" from wall time
// rather than an externally supplied epoch. The production dispatch path
// never needs this: the epoch is always passed in by the caller, matching
// how a real runtime injects it via the instruction-processing context.
type EpochClock struct {
	clock        clockwork.Clock
	genesis      Epoch
	epochSeconds int64
}

// NewEpochClock constructs an EpochClock over a real or fake clockwork.Clock.
// epochSeconds is the wall-clock duration of one epoch (Solana targets
// roughly two days; tests use clockwork.NewFakeClock with a short duration).
func NewEpochClock(clock clockwork.Clock, epochSeconds int64) *EpochClock {
	return &EpochClock{clock: clock, epochSeconds: epochSeconds}
}

// Now returns the epoch number for the clock's current time.
func (c *EpochClock) Now() Epoch {
	if c.epochSeconds <= 0 {
		return c.genesis
	}
	elapsed := c.clock.Now().Unix()
	return c.genesis + Epoch(elapsed/c.epochSeconds)
}

// requireManager is a small helper shared by every manager-gated handler: it
// fails with ErrInvalidManager unless caller is the signer occupying the
// manager account slot. Kept here rather than duplicated per-handler,
// matching the terse, single-purpose helper style the rest of this package
// uses.
func requireManager(s *State, caller solana.PublicKey) error {
	if !s.IsManager(caller) {
		return NewError(ErrInvalidManager, "caller "+caller.String()+" is not the manager")
	}
	return nil
}

// requireMaintainer is requireManager's sibling for maintainer-gated
// handlers: it fails with ErrInvalidMaintainer unless caller is in the
// maintainer whitelist.
func requireMaintainer(s *State, caller solana.PublicKey) error {
	if !s.IsMaintainer(caller) {
		return NewError(ErrInvalidMaintainer, "caller "+caller.String()+" is not a maintainer")
	}
	return nil
}
