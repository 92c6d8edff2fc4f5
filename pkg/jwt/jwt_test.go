package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateYParse(t *testing.T) {
	token, err := Generate("secreto-de-prueba", "user-1", "admin", "taller-api", 60)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, rol, err := Parse("secreto-de-prueba", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "admin", rol)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := Generate("secreto-a", "user-1", "vendedor", "taller-api", 60)
	require.NoError(t, err)

	_, _, err = Parse("secreto-b", token)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	token, err := Generate("secreto-de-prueba", "user-1", "vendedor", "taller-api", -5)
	require.NoError(t, err)

	_, _, err = Parse("secreto-de-prueba", token)
	assert.Error(t, err)
}

func TestParse_Basura(t *testing.T) {
	_, _, err := Parse("secreto-de-prueba", "no-es-un-jwt")
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := Generate("", "user-1", "admin", "taller-api", 60)
	assert.Error(t, err)
}
