package validation_test

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/orryin/orryin-backend/pkg/validation"
)

// Gin's validator instance reads the "binding" tag.
type sample struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Currency string `json:"currency" binding:"required,currency"`
}

func TestToDetailsUsesJSONFieldNames(t *testing.T) {
	validation.Init()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	err := v.Struct(sample{Email: "nope", Password: "short", Currency: "US"})
	require.Error(t, err)

	details := validation.ToDetails(err)
	require.Equal(t, "must be a valid email", details["email"])
	require.Equal(t, "min length 8", details["password"])
	require.Equal(t, "must be a 3-letter currency code", details["currency"])
}

func TestToDetailsNonValidationError(t *testing.T) {
	require.Nil(t, validation.ToDetails(nil))

	details := validation.ToDetails(assertErr{})
	require.Equal(t, "invalid payload", details["payload"])
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }
