package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	Email    string  `json:"email"    validate:"required,email"`
	Password string  `json:"password" validate:"required"`
	Name     *string `json:"name,omitempty"`
}

func TestValidator_Valid(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	assert.NoError(t, v.Struct(testPayload{Email: "a@x.com", Password: "pw1"}))
}

func TestValidator_Invalid(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	err = v.Struct(testPayload{Email: "not-an-email"})
	require.Error(t, err)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 2)

	assert.Equal(t, "email", verr.Fields[0].Field)
	assert.Equal(t, "email must be a valid email address", verr.Fields[0].Message)
	assert.Equal(t, "password", verr.Fields[1].Field)
	assert.Equal(t, "password is a required field", verr.Fields[1].Message)
	assert.Contains(t, verr.Error(), "password is a required field")
}
