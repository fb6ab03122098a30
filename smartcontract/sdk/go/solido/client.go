package solido

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Client fetches and decodes the single Solido State account a program
// instance owns. Unlike the multi-account-type programs in this SDK family,
// Solido keeps its entire state in one account, so there is no
// dispatch-by-first-byte step here — GetState decodes unconditionally.
type Client struct {
	rpc         RPCClient
	programID   solana.PublicKey
	solidoState solana.PublicKey
}

func NewClient(rpc RPCClient, programID, solidoState solana.PublicKey) *Client {
	return &Client{rpc: rpc, programID: programID, solidoState: solidoState}
}

func (c *Client) ProgramID() solana.PublicKey {
	return c.programID
}

// GetState fetches the Solido account and deserializes it, sized to
// maxValidators/maxMaintainers as fixed at Initialize.
func (c *Client) GetState(ctx context.Context, maxValidators, maxMaintainers uint32) (*State, error) {
	info, err := c.rpc.GetAccountInfo(ctx, c.solidoState)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch solido state account %s: %w", c.solidoState, err)
	}
	if info == nil || info.Value == nil {
		return nil, fmt.Errorf("solido state account %s not found", c.solidoState)
	}

	data := info.Value.Data.GetBinary()
	if len(data) == 0 {
		return nil, fmt.Errorf("solido state account %s has empty data", c.solidoState)
	}

	state, err := Deserialize(data, maxValidators, maxMaintainers)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize solido state: %w", err)
	}
	return state, nil
}

// GetValidatorVoteAccounts returns the vote-account pubkeys of every
// validator currently in state, in the order the validators occupy the
// state's account map (AccountMap.Iterate order).
func (c *Client) GetValidatorVoteAccounts(ctx context.Context, maxValidators, maxMaintainers uint32) ([]solana.PublicKey, error) {
	state, err := c.GetState(ctx, maxValidators, maxMaintainers)
	if err != nil {
		return nil, err
	}
	pubkeys := make([]solana.PublicKey, 0, state.Validators.Len())
	state.Validators.Iterate(func(pubkey solana.PublicKey, _ *Validator) {
		pubkeys = append(pubkeys, pubkey)
	})
	return pubkeys, nil
}
