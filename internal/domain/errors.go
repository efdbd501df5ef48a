package domain

import "errors"

// Error kinds surfaced by the ledger. Every failure leaves ledger state unchanged.
var (
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrDuplicateIdentity    = errors.New("identity already exists")
	ErrUnknownIdentity      = errors.New("identity not found")
	ErrCredentialMismatch   = errors.New("credential does not match")
	ErrInvalidCredential    = errors.New("identity and credential must not be empty")
	ErrNotAuthenticated     = errors.New("not authenticated")
	ErrAlreadyAuthenticated = errors.New("session already authenticated")
	ErrSelfTransfer         = errors.New("cannot transfer to the same account")
	ErrBusy                 = errors.New("account busy, try again")
	ErrTooManyAttempts      = errors.New("too many attempts, try again later")
)

// ErrorCode is the stable, machine readable name of an error kind
type ErrorCode string

const (
	CodeInvalidAmount        ErrorCode = "INVALID_AMOUNT"
	CodeInsufficientFunds    ErrorCode = "INSUFFICIENT_FUNDS"
	CodeDuplicateIdentity    ErrorCode = "DUPLICATE_IDENTITY"
	CodeUnknownIdentity      ErrorCode = "UNKNOWN_IDENTITY"
	CodeCredentialMismatch   ErrorCode = "CREDENTIAL_MISMATCH"
	CodeInvalidCredential    ErrorCode = "INVALID_CREDENTIAL"
	CodeNotAuthenticated     ErrorCode = "NOT_AUTHENTICATED"
	CodeAlreadyAuthenticated ErrorCode = "ALREADY_AUTHENTICATED"
	CodeSelfTransfer         ErrorCode = "SELF_TRANSFER"
	CodeBusy                 ErrorCode = "BUSY"
	CodeTooManyAttempts      ErrorCode = "TOO_MANY_ATTEMPTS"
	CodeInternal             ErrorCode = "INTERNAL"
)

var errorCodes = []struct {
	err  error
	code ErrorCode
}{
	{ErrInvalidAmount, CodeInvalidAmount},
	{ErrInsufficientFunds, CodeInsufficientFunds},
	{ErrDuplicateIdentity, CodeDuplicateIdentity},
	{ErrUnknownIdentity, CodeUnknownIdentity},
	{ErrCredentialMismatch, CodeCredentialMismatch},
	{ErrInvalidCredential, CodeInvalidCredential},
	{ErrNotAuthenticated, CodeNotAuthenticated},
	{ErrAlreadyAuthenticated, CodeAlreadyAuthenticated},
	{ErrSelfTransfer, CodeSelfTransfer},
	{ErrBusy, CodeBusy},
	{ErrTooManyAttempts, CodeTooManyAttempts},
}

// Code returns the ErrorCode of the first known error kind found in err's chain.
// Unknown errors map to CodeInternal; a nil error maps to the empty code.
func Code(err error) ErrorCode {
	if err == nil {
		return ""
	}
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return CodeInternal
}
