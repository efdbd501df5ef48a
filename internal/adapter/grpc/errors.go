package grpc

import (
	"context"
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/simaogato/atm-backend/internal/domain"
)

// errorDomain names the error space in ErrorInfo details
const errorDomain = "atm"

var grpcCodes = map[domain.ErrorCode]codes.Code{
	domain.CodeInvalidAmount:        codes.InvalidArgument,
	domain.CodeInvalidCredential:    codes.InvalidArgument,
	domain.CodeSelfTransfer:         codes.InvalidArgument,
	domain.CodeInsufficientFunds:    codes.FailedPrecondition,
	domain.CodeAlreadyAuthenticated: codes.FailedPrecondition,
	domain.CodeDuplicateIdentity:    codes.AlreadyExists,
	domain.CodeUnknownIdentity:      codes.NotFound,
	domain.CodeCredentialMismatch:   codes.Unauthenticated,
	domain.CodeNotAuthenticated:     codes.Unauthenticated,
	domain.CodeBusy:                 codes.Unavailable,
	domain.CodeTooManyAttempts:      codes.ResourceExhausted,
}

// mapError converts an error to a gRPC status carrying the domain code as an ErrorInfo reason
func mapError(err error) error {
	if err == nil {
		return nil
	}

	code := domain.Code(err)
	if code == domain.CodeInternal {
		if _, ok := status.FromError(err); ok {
			return err
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return status.FromContextError(err).Err()
		}
	}

	grpcCode, ok := grpcCodes[code]
	if !ok {
		grpcCode = codes.Internal
	}

	st := status.New(grpcCode, err.Error())
	detailed, detailErr := st.WithDetails(&errdetails.ErrorInfo{
		Reason: string(code),
		Domain: errorDomain,
	})
	if detailErr != nil {
		return st.Err()
	}
	return detailed.Err()
}

// ErrorReason returns the domain code carried by a status error, or "" if none
func ErrorReason(err error) domain.ErrorCode {
	st, ok := status.FromError(err)
	if !ok {
		return ""
	}
	for _, detail := range st.Details() {
		if info, ok := detail.(*errdetails.ErrorInfo); ok && info.GetDomain() == errorDomain {
			return domain.ErrorCode(info.GetReason())
		}
	}
	return ""
}
