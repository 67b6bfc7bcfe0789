package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeTokenRevoked, http.StatusUnauthorized},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeLockBusy, http.StatusServiceUnavailable},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{ErrCodeInvalidCredentials, http.StatusUnauthorized},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode("NOT_FOUND"))
	assert.Equal(t, "ERR_INVALID_CREDENTIALS", NormalizeErrorCode("INVALID_CREDENTIALS"))
	assert.Equal(t, ErrCodeLockBusy, NormalizeErrorCode(ErrCodeLockBusy))
	assert.Equal(t, ErrCodeUnknown, NormalizeErrorCode(""))
}

func TestNewListResponse_EmptyIsArray(t *testing.T) {
	body, err := json.Marshal(NewListResponse[string](nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"objects":[],"count":0}`, string(body))

	body, err = json.Marshal(NewListResponse([]int{4, 5}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"objects":[4,5],"count":2}`, string(body))
}

func TestNewErrorResponse(t *testing.T) {
	body, err := json.Marshal(NewErrorResponse(ErrCodeInternal, "An internal error occurred", "req-1"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":{"code":"ERR_INTERNAL","message":"An internal error occurred","request_id":"req-1"}}`, string(body))
}
