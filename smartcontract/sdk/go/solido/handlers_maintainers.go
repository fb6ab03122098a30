package solido

import "github.com/gagliardetto/solana-go"

// HandleAddMaintainer inserts pubkey into the maintainer whitelist. Gated
// to the manager, per §4.9.
func HandleAddMaintainer(s *State, caller, pubkey solana.PublicKey) (*State, error) {
	if err := requireManager(s, caller); err != nil {
		return nil, err
	}
	if err := s.Maintainers.Add(pubkey, struct{}{}); err != nil {
		return nil, err
	}
	return s, nil
}

// HandleRemoveMaintainer removes pubkey from the maintainer whitelist.
// Gated to the manager, per §4.9.
func HandleRemoveMaintainer(s *State, caller, pubkey solana.PublicKey) (*State, error) {
	if err := requireManager(s, caller); err != nil {
		return nil, err
	}
	if !s.IsMaintainer(pubkey) {
		return nil, NewError(ErrMaintainerNotFound, pubkey.String())
	}
	if _, err := s.Maintainers.Remove(pubkey); err != nil {
		return nil, err
	}
	return s, nil
}
