package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maheshmohan7319/GOODINSIDE/internal/usecase"
)

func TestIsPhoneNumber(t *testing.T) {
	assert.True(t, IsPhoneNumber("+919876543210"))
	assert.True(t, IsPhoneNumber("9876543"))
	assert.False(t, IsPhoneNumber("98765"))
	assert.False(t, IsPhoneNumber("98-76-54-32"))
	assert.False(t, IsPhoneNumber("+1234567890123456"))
}

func TestAuthValidator_ValidateRegister(t *testing.T) {
	v := NewAuthValidator()

	assert.NoError(t, v.ValidateRegister("9876543210", "CorrectHorse9"))

	for _, c := range []struct{ phone, pass string }{
		{"", "CorrectHorse9"},
		{"9876543210", ""},
		{"abc", "CorrectHorse9"},
		{"9876543210", "short"},
		{"9876543210", "Password123"},
	} {
		err := v.ValidateRegister(c.phone, c.pass)
		assert.Equal(t, usecase.KindValidationFailed, usecase.KindOf(err), "%q/%q", c.phone, c.pass)
	}
}

func TestAuthValidator_ValidateEmail(t *testing.T) {
	v := NewAuthValidator()
	assert.NoError(t, v.ValidateEmail(""))
	assert.NoError(t, v.ValidateEmail("me@example.com"))
	assert.Error(t, v.ValidateEmail("nope"))
}
