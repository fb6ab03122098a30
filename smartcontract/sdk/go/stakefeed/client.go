// Package stakefeed observes the native stake program to learn what
// UpdateStakeAccountBalance needs but SolidoState cannot know on its own:
// the current lamport balance backing each validator's stake accounts.
package stakefeed

import (
	"context"
	"log/slog"

	"github.com/gagliardetto/solana-go"

	"github.com/chorusone/solido-go/smartcontract/sdk/go/solido"
)

// Client reads stake-account balances for validators tracked by a Solido
// instance. It never decodes the native stake program's account layout;
// the lamport balance reported by the RPC node is all the reward
// distributor needs.
type Client struct {
	log       *slog.Logger
	rpc       RPCClient
	programID solana.PublicKey
	solido    solana.PublicKey
}

// New constructs a stakefeed Client. log may be nil, in which case a
// disabled logger is used.
func New(rpc RPCClient, programID, solidoPubkey solana.PublicKey, log *slog.Logger) *Client {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Client{log: log, rpc: rpc, programID: programID, solido: solidoPubkey}
}

// ValidatorBalance is the observed lamport sum across one validator's stake
// accounts, and the count of accounts that contributed to it.
type ValidatorBalance struct {
	VotePubkey   solana.PublicKey
	Balance      solido.SolAmount
	AccountsSeen int
}

// GetValidatorStakeBalance sums the lamport balance of every stake account
// in [seeds.Begin, seeds.End) derived for votePubkey under this Solido
// instance. A stake account that does not yet exist on-chain (not yet
// funded, or already withdrawn down to zero and closed) contributes zero
// rather than failing the whole query, since maintenance transactions can
// legitimately race account creation and closure.
func (c *Client) GetValidatorStakeBalance(ctx context.Context, votePubkey solana.PublicKey, seeds solido.SeedRange) (ValidatorBalance, error) {
	result := ValidatorBalance{VotePubkey: votePubkey}
	for seed := seeds.Begin; seed < seeds.End; seed++ {
		stakeAccount, _, err := solido.DeriveStakeAccount(c.programID, c.solido, votePubkey, seed)
		if err != nil {
			return ValidatorBalance{}, err
		}
		lamports, found, err := c.getLamports(ctx, stakeAccount)
		if err != nil {
			return ValidatorBalance{}, err
		}
		if !found {
			c.log.Warn("stake account missing on-chain", "validator", votePubkey.String(), "seed", seed, "account", stakeAccount.String())
			continue
		}
		sum, err := solido.AddSol(result.Balance, solido.SolAmount(lamports))
		if err != nil {
			return ValidatorBalance{}, err
		}
		result.Balance = sum
		result.AccountsSeen++
	}
	return result, nil
}

// GetAllValidatorStakeBalances observes every active and inactive
// validator's stake accounts via GetProgramAccounts against the native
// stake program, attributing each returned account back to whichever
// validator/seed it was derived for. This is cheaper than one
// GetAccountInfo round trip per stake account when a validator has many
// seeds outstanding, at the cost of fetching (and discarding) every other
// stake account the stake program owns.
func (c *Client) GetAllValidatorStakeBalances(ctx context.Context, validators map[solana.PublicKey]solido.SeedRange) ([]ValidatorBalance, error) {
	accounts, err := c.rpc.GetProgramAccounts(ctx, stakeProgramID)
	if err != nil {
		return nil, err
	}

	known := make(map[solana.PublicKey]uint64, len(accounts))
	for _, element := range accounts {
		known[element.Pubkey] = uint64(element.Account.Lamports)
	}

	results := make([]ValidatorBalance, 0, len(validators))
	for vote, seeds := range validators {
		balance := ValidatorBalance{VotePubkey: vote}
		for seed := seeds.Begin; seed < seeds.End; seed++ {
			stakeAccount, _, err := solido.DeriveStakeAccount(c.programID, c.solido, vote, seed)
			if err != nil {
				return nil, err
			}
			lamports, ok := known[stakeAccount]
			if !ok {
				c.log.Warn("stake account missing from program scan", "validator", vote.String(), "seed", seed)
				continue
			}
			sum, err := solido.AddSol(balance.Balance, solido.SolAmount(lamports))
			if err != nil {
				return nil, err
			}
			balance.Balance = sum
			balance.AccountsSeen++
		}
		results = append(results, balance)
	}
	return results, nil
}

func (c *Client) getLamports(ctx context.Context, account solana.PublicKey) (uint64, bool, error) {
	info, err := c.rpc.GetAccountInfo(ctx, account)
	if err != nil {
		return 0, false, err
	}
	if info == nil || info.Value == nil {
		return 0, false, nil
	}
	return uint64(info.Value.Lamports), true, nil
}

// stakeProgramID is the native Solana stake program, the owner of every
// account DeriveStakeAccount/DeriveUnstakeAccount produce.
var stakeProgramID = solana.MustPublicKeyFromBase58("Stake11111111111111111111111111111111111")
