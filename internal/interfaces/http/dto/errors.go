package dto

import (
	"net/http"
	"strings"
)

// Error codes carried in the error envelope.
// Format: ERR_<DESCRIPTION>
const (
	ErrCodeUnknown         = "ERR_UNKNOWN"
	ErrCodeInternal        = "ERR_INTERNAL"
	ErrCodeBadRequest      = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput    = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON     = "ERR_INVALID_JSON"
	ErrCodeUnauthorized    = "ERR_UNAUTHORIZED"
	ErrCodeForbidden       = "ERR_FORBIDDEN"
	ErrCodeTokenExpired    = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid    = "ERR_TOKEN_INVALID"
	ErrCodeTokenRevoked    = "ERR_TOKEN_REVOKED"
	ErrCodeNotFound        = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists   = "ERR_ALREADY_EXISTS"
	ErrCodeLockBusy        = "ERR_LOCK_BUSY"
	ErrCodeRateLimited     = "ERR_RATE_LIMITED"
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
	ErrCodeServiceDown     = "ERR_SERVICE_UNAVAILABLE"

	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrCodeAccountInactive    = "ERR_ACCOUNT_INACTIVE"
	ErrCodeUserNotFound       = "ERR_USER_NOT_FOUND"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:         http.StatusInternalServerError,
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeUnauthorized:    http.StatusUnauthorized,
	ErrCodeForbidden:       http.StatusForbidden,
	ErrCodeTokenExpired:    http.StatusUnauthorized,
	ErrCodeTokenInvalid:    http.StatusUnauthorized,
	ErrCodeTokenRevoked:    http.StatusUnauthorized,
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeAlreadyExists:   http.StatusConflict,
	ErrCodeLockBusy:        http.StatusServiceUnavailable,
	ErrCodeRateLimited:     http.StatusTooManyRequests,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeServiceDown:     http.StatusServiceUnavailable,

	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeAccountInactive:    http.StatusUnauthorized,
	ErrCodeUserNotFound:       http.StatusNotFound,
}

// GetHTTPStatus returns the HTTP status for an error code, 500 when unknown
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// NormalizeErrorCode converts bare domain codes (NOT_FOUND) to the ERR_ form.
// Codes that already carry the prefix pass through.
func NormalizeErrorCode(code string) string {
	if code == "" {
		return ErrCodeUnknown
	}
	if strings.HasPrefix(code, "ERR_") {
		return code
	}
	return "ERR_" + code
}
