package anker

import "fmt"

// ErrorCode is Anker's own closed enumeration, namespaced starting at 4000
// so a caller holding only a raw program error code can still tell a
// Solido failure (0-4000, see solido.ErrorCode) apart from an Anker one
// without inspecting which program emitted it.
type ErrorCode uint32

const (
	ErrInvalidTokenAccount ErrorCode = iota + 4000
	ErrInvalidTokenAccountOwner
	ErrInvalidTokenMint
	ErrInvalidReserveAccount
	ErrInvalidSolidoInstance
	ErrInvalidDerivedAccount
	ErrInvalidOwner
	ErrInvalidAmount
)

var errorCodeNames = map[ErrorCode]string{
	ErrInvalidTokenAccount:      "InvalidTokenAccount",
	ErrInvalidTokenAccountOwner: "InvalidTokenAccountOwner",
	ErrInvalidTokenMint:         "InvalidTokenMint",
	ErrInvalidReserveAccount:    "InvalidReserveAccount",
	ErrInvalidSolidoInstance:    "InvalidSolidoInstance",
	ErrInvalidDerivedAccount:    "InvalidDerivedAccount",
	ErrInvalidOwner:             "InvalidOwner",
	ErrInvalidAmount:            "InvalidAmount",
}

func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ErrorCode(%d)", uint32(c))
}

// AnkerError wraps an ErrorCode with the context that produced it.
type AnkerError struct {
	Code    ErrorCode
	Context string
}

func (e *AnkerError) Error() string {
	if e.Context == "" {
		return e.Code.String()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Context)
}

func NewError(code ErrorCode, context string) error {
	return &AnkerError{Code: code, Context: context}
}

// Is reports whether err is an AnkerError carrying code.
func Is(err error, code ErrorCode) bool {
	ae, ok := err.(*AnkerError)
	return ok && ae.Code == code
}
