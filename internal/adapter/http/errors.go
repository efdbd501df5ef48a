package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simaogato/atm-backend/internal/domain"
)

// codeInvalidRequest is reported when a body cannot be bound
const codeInvalidRequest = "INVALID_REQUEST"

var httpStatuses = map[domain.ErrorCode]int{
	domain.CodeInvalidAmount:        http.StatusBadRequest,
	domain.CodeInvalidCredential:    http.StatusBadRequest,
	domain.CodeSelfTransfer:         http.StatusBadRequest,
	domain.CodeInsufficientFunds:    http.StatusUnprocessableEntity,
	domain.CodeAlreadyAuthenticated: http.StatusConflict,
	domain.CodeDuplicateIdentity:    http.StatusConflict,
	domain.CodeUnknownIdentity:      http.StatusNotFound,
	domain.CodeCredentialMismatch:   http.StatusUnauthorized,
	domain.CodeNotAuthenticated:     http.StatusUnauthorized,
	domain.CodeBusy:                 http.StatusServiceUnavailable,
	domain.CodeTooManyAttempts:      http.StatusTooManyRequests,
}

// statusFor returns the HTTP status for a domain error
func statusFor(err error) (int, domain.ErrorCode) {
	code := domain.Code(err)
	if status, ok := httpStatuses[code]; ok {
		return status, code
	}
	return http.StatusInternalServerError, domain.CodeInternal
}

// abortWithError writes the error body and stops the handler chain
func abortWithError(c *gin.Context, err error) {
	status, code := statusFor(err)
	msg := err.Error()
	if code == domain.CodeInternal {
		loggerFrom(c).Error("request failed", "err", err)
		msg = "internal server error"
	} else {
		loggerFrom(c).Warn("request rejected", "code", code, "err", err)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg, Code: string(code)})
}

func abortWithBindError(c *gin.Context, err error) {
	loggerFrom(c).Warn("failed to bind request", "err", err)
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Error: "invalid request format: " + err.Error(),
		Code:  codeInvalidRequest,
	})
}
