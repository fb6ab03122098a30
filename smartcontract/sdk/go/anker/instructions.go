package anker

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/near/borsh-go"

	"github.com/chorusone/solido-go/smartcontract/sdk/go/solido"
)

// InstructionDeposit is Anker's sole wired discriminator; this rendition
// does not implement withdraw/claim/bridge instructions.
const InstructionDeposit uint8 = 0

// DepositAccounts is the positional account list for Deposit, matching
// the order the original program's DepositAccountsInfo parses.
type DepositAccounts struct {
	Anker         solana.PublicKey
	Solido        solana.PublicKey
	FromAccount   solana.PublicKey
	ReserveAccount solana.PublicKey
	BSolMint      solana.PublicKey
	MintAuthority solana.PublicKey
	UserBSolAccount solana.PublicKey
	UserAuthority solana.PublicKey
}

// BuildDepositInstruction encodes a Deposit instruction wrapping amount
// stSOL micro-units into bSOL.
func BuildDepositInstruction(programID solana.PublicKey, accounts DepositAccounts, amount solido.StSolAmount) (solana.Instruction, error) {
	if amount == 0 {
		return nil, NewError(ErrInvalidAmount, "deposit amount must be > 0")
	}
	data, err := borsh.Serialize(struct {
		Discriminator uint8
		Amount        uint64
	}{
		Discriminator: InstructionDeposit,
		Amount:        uint64(amount),
	})
	if err != nil {
		return nil, fmt.Errorf("serialize Deposit: %w", err)
	}
	return &solana.GenericInstruction{
		ProgID: programID,
		AccountValues: []*solana.AccountMeta{
			{PublicKey: accounts.Anker, IsSigner: false, IsWritable: false},
			{PublicKey: accounts.Solido, IsSigner: false, IsWritable: false},
			{PublicKey: accounts.FromAccount, IsSigner: false, IsWritable: true},
			{PublicKey: accounts.ReserveAccount, IsSigner: false, IsWritable: true},
			{PublicKey: accounts.BSolMint, IsSigner: false, IsWritable: true},
			{PublicKey: accounts.MintAuthority, IsSigner: false, IsWritable: false},
			{PublicKey: accounts.UserBSolAccount, IsSigner: false, IsWritable: true},
			{PublicKey: accounts.UserAuthority, IsSigner: true, IsWritable: false},
		},
		DataBytes: data,
	}, nil
}

// DecodeDepositArgs decodes a Deposit instruction's data back into the
// stSOL amount it carries.
func DecodeDepositArgs(data []byte) (solido.StSolAmount, error) {
	var args struct {
		Discriminator uint8
		Amount        uint64
	}
	if err := borsh.Deserialize(&args, data); err != nil {
		return 0, fmt.Errorf("deserialize Deposit: %w", err)
	}
	if args.Discriminator != InstructionDeposit {
		return 0, NewError(ErrInvalidAmount, fmt.Sprintf("unexpected discriminator %d", args.Discriminator))
	}
	return solido.StSolAmount(args.Amount), nil
}
