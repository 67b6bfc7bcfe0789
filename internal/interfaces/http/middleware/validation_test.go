package middleware

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginForm struct {
	Username string `json:"username" binding:"required,max=5"`
	Password string `json:"password" binding:"required"`
}

func TestValidationMessages(t *testing.T) {
	SetupValidator()

	err := binding.Validator.ValidateStruct(loginForm{Username: "abcdefgh"})
	require.Error(t, err)

	msgs := ValidationMessages(err)
	assert.Equal(t, map[string]string{
		"username": "Must be at most 5 characters",
		"password": "This field is required",
	}, msgs)

	assert.Nil(t, ValidationMessages(assert.AnError))
}
