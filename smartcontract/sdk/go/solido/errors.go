package solido

import "fmt"

// ErrorCode is a closed enumeration of every failure kind a Solido handler
// can return. Values below 4000 are Solido's own namespace; 4000-5000 is
// reserved for Anker; everything else (arithmetic, rent, account-not-found)
// is expected to flow through as a wrapped runtime error instead of one of
// these constants.
type ErrorCode uint32

const (
	ErrAlreadyInUse ErrorCode = iota
	ErrInvalidOwner
	ErrInvalidAmount
	ErrInvalidFeeRecipient
	ErrExchangeRateAlreadyUpToDate
	ErrExchangeRateNotUpdatedInThisEpoch
	ErrValidatorIsStillActive
	ErrValidatorHasUnclaimedCredit
	ErrDuplicatedEntry
	ErrInvalidAccountMember
	ErrMaximumNumberOfAccountsExceeded
	ErrInvalidReserveAccount
	ErrInvalidStakeAccount
	ErrInvalidManager
	ErrInvalidMaintainer
	ErrInvalidMint
	ErrValidatorVoteAccountHasDifferentOwner
	ErrInvalidVoteAccount
	ErrValidationCommissionOutOfBounds
	ErrWrongStakeState
	ErrCalculationFailure
	ErrValidatorNotFound
	ErrMaintainerNotFound
	ErrInvalidInstructionAccounts
	ErrUnknownInstruction
	ErrImplementationBug
)

var errorCodeNames = map[ErrorCode]string{
	ErrAlreadyInUse:                          "AlreadyInUse",
	ErrInvalidOwner:                          "InvalidOwner",
	ErrInvalidAmount:                         "InvalidAmount",
	ErrInvalidFeeRecipient:                   "InvalidFeeRecipient",
	ErrExchangeRateAlreadyUpToDate:           "ExchangeRateAlreadyUpToDate",
	ErrExchangeRateNotUpdatedInThisEpoch:     "ExchangeRateNotUpdatedInThisEpoch",
	ErrValidatorIsStillActive:                "ValidatorIsStillActive",
	ErrValidatorHasUnclaimedCredit:           "ValidatorHasUnclaimedCredit",
	ErrDuplicatedEntry:                       "DuplicatedEntry",
	ErrInvalidAccountMember:                  "InvalidAccountMember",
	ErrMaximumNumberOfAccountsExceeded:       "MaximumNumberOfAccountsExceeded",
	ErrInvalidReserveAccount:                 "InvalidReserveAccount",
	ErrInvalidStakeAccount:                   "InvalidStakeAccount",
	ErrInvalidManager:                        "InvalidManager",
	ErrInvalidMaintainer:                     "InvalidMaintainer",
	ErrInvalidMint:                           "InvalidMint",
	ErrValidatorVoteAccountHasDifferentOwner: "ValidatorVoteAccountHasDifferentOwner",
	ErrInvalidVoteAccount:                    "InvalidVoteAccount",
	ErrValidationCommissionOutOfBounds:       "ValidationCommissionOutOfBounds",
	ErrWrongStakeState:                       "WrongStakeState",
	ErrCalculationFailure:                    "CalculationFailure",
	ErrValidatorNotFound:                     "ValidatorNotFound",
	ErrMaintainerNotFound:                    "MaintainerNotFound",
	ErrInvalidInstructionAccounts:            "InvalidInstructionAccounts",
	ErrUnknownInstruction:                    "UnknownInstruction",
	ErrImplementationBug:                     "ImplementationBug",
}

func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ErrorCode(%d)", uint32(c))
}

// SolidoError wraps an ErrorCode with the context that produced it. Handlers
// always return one of these (or a cross-program error propagated verbatim);
// they never panic.
type SolidoError struct {
	Code    ErrorCode
	Context string
}

func (e *SolidoError) Error() string {
	if e.Context == "" {
		return e.Code.String()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Context)
}

func NewError(code ErrorCode, context string) error {
	return &SolidoError{Code: code, Context: context}
}

// Is reports whether err is a SolidoError carrying code.
func Is(err error, code ErrorCode) bool {
	se, ok := err.(*SolidoError)
	return ok && se.Code == code
}
