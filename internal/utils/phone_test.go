package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhoneValidator_CanonicalForm(t *testing.T) {
	v := NewPhoneValidator("BR", true)

	inputs := []string{
		"11987654321",
		"(11) 98765-4321",
		"11 98765 4321",
		"11.98765.4321",
		"+55 11 98765-4321",
		"+55 (11) 98765 4321",
		"  +5511987654321  ",
	}

	for _, in := range inputs {
		got, err := v.Validate(in)
		require.NoError(t, err, in)
		assert.Equal(t, "+5511987654321", got, in)
	}
}

func TestPhoneValidator_FormatError(t *testing.T) {
	v := NewPhoneValidator("BR", true)

	for _, in := range []string{"abc", "", "   ", "telefone"} {
		got, err := v.Validate(in)
		assert.Empty(t, got, in)
		assert.ErrorIs(t, err, ErrPhoneFormat, in)
		assert.True(t, IsPhoneError(err))
	}
}

func TestPhoneValidator_Rejects(t *testing.T) {
	v := NewPhoneValidator("BR", false)

	for _, in := range []string{"12345", "0000000000", "+1 202 555 0143", "99999999999999"} {
		got, err := v.Validate(in)
		assert.Error(t, err, in)
		assert.Empty(t, got, in)
		assert.True(t, IsPhoneError(err), in)
	}
}

func TestPhoneValidator_MobileStrictness(t *testing.T) {
	landline := "(11) 3333-4444"

	lenient := NewPhoneValidator("BR", false)
	got, err := lenient.Validate(landline)
	require.NoError(t, err)
	assert.Equal(t, "+551133334444", got)

	strict := NewPhoneValidator("BR", true)
	_, err = strict.Validate(landline)
	assert.ErrorIs(t, err, ErrPhoneInvalid)
}

func TestNewPhoneValidator_DefaultRegion(t *testing.T) {
	v := NewPhoneValidator("", true)
	assert.Equal(t, DefaultPhoneRegion, v.Region())

	v = NewPhoneValidator("br", true)
	assert.Equal(t, "BR", v.Region())
}
