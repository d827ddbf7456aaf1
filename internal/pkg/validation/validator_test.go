package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	Init()

	type input struct {
		Name  string `validate:"required"`
		Count int64  `validate:"required"`
	}

	t.Run("should pass for a valid struct", func(t *testing.T) {
		err := Validate(input{Name: "wallet", Count: 1})
		assert.NoError(t, err)
	})

	t.Run("should return ErrValidation when a required field is missing", func(t *testing.T) {
		err := Validate(input{Count: 1})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("should include every violated field in the error", func(t *testing.T) {
		err := Validate(input{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "'Name'")
		assert.Contains(t, err.Error(), "'Count'")
	})
}
