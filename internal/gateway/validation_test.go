package gateway

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationMessage(t *testing.T) {
	v := validator.New(validator.WithRequiredStructEnabled())

	t.Run("required and size", func(t *testing.T) {
		in := struct {
			Name string `validate:"required"`
			Size int64  `validate:"gt=0"`
		}{}

		err := v.Struct(in)

		require.Error(t, err)
		assert.Equal(t, "Name is required; Size must not be empty", validationMessage(err))
	})

	t.Run("other rules read plainly", func(t *testing.T) {
		in := struct {
			Mode string `validate:"oneof=asc desc"`
		}{Mode: "sideways"}

		err := v.Struct(in)

		require.Error(t, err)
		msg := validationMessage(err)
		assert.Equal(t, "Mode is not valid", msg)
		assert.NotContains(t, msg, "oneof")
	})
}

func TestCheckRequired(t *testing.T) {
	assert.Error(t, checkRequired("SignInWithEmail", "email", " \t"))
	assert.NoError(t, checkRequired("SignInWithEmail", "email", "not an address"))
}
