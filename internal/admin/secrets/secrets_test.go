package secrets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("correct horse battery staple")
	require.NoError(t, err)

	assert.NoError(t, Verify("correct horse battery staple", hash))
	assert.ErrorIs(t, Verify("wrong password", hash), ErrMismatch)
}

func TestHashUsesFixedCost(t *testing.T) {
	hash, err := Hash("some-password")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, Cost, cost)
}

func TestHashRejectsEmptySecret(t *testing.T) {
	_, err := Hash("")
	assert.Error(t, err)
}

func TestVerifyMalformedHashIsNotAMismatch(t *testing.T) {
	err := Verify("anything", "not-a-bcrypt-hash")
	require.Error(t, err)
	// A broken stored hash is an internal problem, never reported as a
	// credential failure.
	assert.NotErrorIs(t, err, ErrMismatch)
}

func TestGenerateSigningKey(t *testing.T) {
	a, err := GenerateSigningKey()
	require.NoError(t, err)
	b, err := GenerateSigningKey()
	require.NoError(t, err)

	assert.Len(t, a, 128)
	assert.NotEqual(t, a, b)
}
