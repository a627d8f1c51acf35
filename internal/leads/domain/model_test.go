package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"qa@example.com",
		"nombre.apellido@empresa.com.ar",
		"dev+tag@sub.dominio.io",
	}
	for _, email := range valid {
		assert.NoError(t, ValidateEmail(email), "email %q", email)
	}

	invalid := []string{
		"",
		"bad-email",
		"@example.com",
		"qa@",
		"qa@nodot",
		"qa example@example.com",
		"Name <qa@example.com>",
	}
	for _, email := range invalid {
		assert.ErrorIs(t, ValidateEmail(email), ErrInvalidEmail, "email %q", email)
	}
}

func TestContactValidate(t *testing.T) {
	m := ContactMessage{Name: "  Ana  ", Email: "ana@example.com", Message: " hola "}
	assert.NoError(t, m.Validate())
	assert.Equal(t, "Ana", m.Name, "fields are trimmed")

	assert.Error(t, (&ContactMessage{Email: "ana@example.com", Message: "hola"}).Validate())
	assert.Error(t, (&ContactMessage{Name: "Ana", Email: "ana@example.com"}).Validate())
	assert.Error(t, (&ContactMessage{Name: "Ana", Email: "bad", Message: "hola"}).Validate())
}

func TestApplicationValidate(t *testing.T) {
	a := JobApplication{Name: "Marta", Email: "marta@example.com", Position: "Backend Dev"}
	assert.NoError(t, a.Validate())

	a.Position = "   "
	assert.Error(t, a.Validate())
}
