package solido

import "github.com/gagliardetto/solana-go"

// InitializeParams mirrors the InitializeArgs payload plus the derived
// authority bumps the caller resolved before invoking this handler (a real
// dispatcher derives them itself; the pure function takes them as input so
// it stays free of PDA-search side effects).
type InitializeParams struct {
	Manager                 solana.PublicKey
	StSolMint                solana.PublicKey
	RewardDistribution       RewardDistribution
	FeeRecipients            FeeRecipients
	MaxValidators            uint32
	MaxMaintainers           uint32
	MaxCommissionPercentage  uint8
	MaxValidationFee         uint8
	ReserveAuthorityBump     uint8
	StakeAuthorityBump       uint8
	MintAuthorityBump        uint8
	RewardsWithdrawAuthorityBump uint8
}

// HandleInitialize creates the Solido state record. It is called exactly
// once per deployment; there is no re-initialization path.
func HandleInitialize(params InitializeParams) (*State, error) {
	if params.Manager.IsZero() {
		return nil, NewError(ErrInvalidManager, "manager must not be the zero pubkey")
	}
	if params.StSolMint.IsZero() {
		return nil, NewError(ErrInvalidMint, "stSOL mint must not be the zero pubkey")
	}

	s := &State{
		LidoVersion:                  LidoVersion,
		Manager:                      params.Manager,
		StSolMint:                    params.StSolMint,
		ExchangeRate:                 ExchangeRate{ComputedInEpoch: 0, StSolSupply: 0, SolBalance: 0},
		SolReserveAuthorityBump:      params.ReserveAuthorityBump,
		StakeAuthorityBump:           params.StakeAuthorityBump,
		MintAuthorityBump:            params.MintAuthorityBump,
		RewardsWithdrawAuthorityBump: params.RewardsWithdrawAuthorityBump,
		RewardDistribution:           params.RewardDistribution,
		FeeRecipients:                params.FeeRecipients,
		Validators:                   NewAccountMap[Validator](params.MaxValidators),
		Maintainers:                  NewAccountMap[struct{}](params.MaxMaintainers),
		MaxCommissionPercentage:      params.MaxCommissionPercentage,
		MaxValidationFee:             params.MaxValidationFee,
	}
	return s, nil
}
