package solido

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// MaintenanceOutput is a structured description of what the last handler
// invocation did, observable by the off-chain maintenance driver so it can
// decide what to submit next. It carries no policy of its own.
type MaintenanceOutput struct {
	Instruction uint8
	Validator   solana.PublicKey
	Detail      string
}

func (m MaintenanceOutput) String() string {
	if m.Validator.IsZero() {
		return fmt.Sprintf("instruction=%d %s", m.Instruction, m.Detail)
	}
	return fmt.Sprintf("instruction=%d validator=%s %s", m.Instruction, m.Validator, m.Detail)
}

func depositOutput(amount SolAmount, minted StSolAmount) MaintenanceOutput {
	return MaintenanceOutput{
		Instruction: InstructionDeposit,
		Detail:      fmt.Sprintf("deposited %d lamports, minted %d stSOL-micro", amount, minted),
	}
}

func stakeDepositOutput(vote solana.PublicKey, amount SolAmount, seed uint64) MaintenanceOutput {
	return MaintenanceOutput{
		Instruction: InstructionStakeDeposit,
		Validator:   vote,
		Detail:      fmt.Sprintf("staked %d lamports at seed %d", amount, seed),
	}
}

func updateExchangeRateOutput(rate ExchangeRate) MaintenanceOutput {
	return MaintenanceOutput{
		Instruction: InstructionUpdateExchangeRate,
		Detail:      fmt.Sprintf("epoch=%d sol_balance=%d st_sol_supply=%d", rate.ComputedInEpoch, rate.SolBalance, rate.StSolSupply),
	}
}

func updateStakeAccountBalanceOutput(vote solana.PublicKey, reward SolAmount, treasury, developer, validatorFee StSolAmount) MaintenanceOutput {
	return MaintenanceOutput{
		Instruction: InstructionUpdateStakeAccountBalance,
		Validator:   vote,
		Detail: fmt.Sprintf(
			"reward=%d treasury_minted=%d developer_minted=%d validator_minted=%d",
			reward, treasury, developer, validatorFee,
		),
	}
}

func mergeStakeOutput(vote solana.PublicKey, fromSeed, toSeed uint64, merged SolAmount) MaintenanceOutput {
	return MaintenanceOutput{
		Instruction: InstructionMergeStake,
		Validator:   vote,
		Detail:      fmt.Sprintf("merged seed %d into seed %d, balance now %d", fromSeed, toSeed, merged),
	}
}

func withdrawOutput(amount StSolAmount, sol SolAmount, vote solana.PublicKey) MaintenanceOutput {
	return MaintenanceOutput{
		Instruction: InstructionWithdraw,
		Validator:   vote,
		Detail:      fmt.Sprintf("burned %d stSOL-micro, released %d lamports", amount, sol),
	}
}
