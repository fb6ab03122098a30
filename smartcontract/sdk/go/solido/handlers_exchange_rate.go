package solido

import "github.com/gagliardetto/solana-go"

// UpdateExchangeRateParams is the observed totals HandleUpdateExchangeRate
// snapshots into the new rate.
type UpdateExchangeRateParams struct {
	CurrentEpoch   uint64
	ReserveBalance SolAmount
	StSolSupply    StSolAmount
}

// HandleUpdateExchangeRate recomputes the exchange rate once per epoch from
// the reserve balance plus every validator's last-known stake and unstake
// balances. It fails if already computed for the current epoch.
func HandleUpdateExchangeRate(s *State, p UpdateExchangeRateParams) (*State, MaintenanceOutput, error) {
	if s.ExchangeRate.ComputedInEpoch == p.CurrentEpoch {
		return nil, MaintenanceOutput{}, NewError(ErrExchangeRateAlreadyUpToDate, "")
	}

	total := p.ReserveBalance
	var err error
	s.Validators.Iterate(func(_ solana.PublicKey, v *Validator) {
		if err != nil {
			return
		}
		total, err = AddSol(total, v.StakeAccountsBalance)
		if err != nil {
			return
		}
		total, err = AddSol(total, v.UnstakeAccountsBalance)
	})
	if err != nil {
		return nil, MaintenanceOutput{}, err
	}

	s.ExchangeRate = ExchangeRate{
		ComputedInEpoch: p.CurrentEpoch,
		SolBalance:      total,
		StSolSupply:     p.StSolSupply,
	}

	return s, updateExchangeRateOutput(s.ExchangeRate), nil
}
