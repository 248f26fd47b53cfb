package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-tracker/pkg/jwt"
)

func TestGenerateParse(t *testing.T) {
	token, err := jwt.Generate("s3cret", "user-1", "inventory-tracker", 5)
	require.NoError(t, err)

	userID, err := jwt.Parse("s3cret", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	_, err = jwt.Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	token, err := jwt.Generate("s3cret", "user-1", "inventory-tracker", -1)
	require.NoError(t, err)
	_, err = jwt.Parse("s3cret", token)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "u", "i", 1)
	assert.Error(t, err)
	_, err = jwt.Parse("", "x")
	assert.Error(t, err)
}
