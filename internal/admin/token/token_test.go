package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	svc := New("test-signing-key", 2*time.Hour)
	now := time.Now()

	signed, err := svc.Issue(now, "203.0.113.9")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := svc.Verify(signed)
	require.NoError(t, err)
	assert.True(t, claims.Authenticated)
	assert.Equal(t, "203.0.113.9", claims.IP)
	assert.Equal(t, now.UnixMilli(), claims.Timestamp)
}

func TestVerifyExpired(t *testing.T) {
	svc := New("test-signing-key", 2*time.Hour)

	// Issued three hours ago, so the 2h validity window has elapsed.
	signed, err := svc.Issue(time.Now().Add(-3*time.Hour), "203.0.113.9")
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestVerifyWrongKey(t *testing.T) {
	issuer := New("key-one", 2*time.Hour)
	verifier := New("key-two", 2*time.Hour)

	signed, err := issuer.Issue(time.Now(), "203.0.113.9")
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestVerifyGarbage(t *testing.T) {
	svc := New("test-signing-key", 2*time.Hour)

	_, err := svc.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestIssueWithoutKey(t *testing.T) {
	svc := New("", 2*time.Hour)

	_, err := svc.Issue(time.Now(), "203.0.113.9")
	assert.ErrorIs(t, err, ErrNoSigningKey)
}

func TestExpiresIn(t *testing.T) {
	assert.Equal(t, "2h", New("k", 2*time.Hour).ExpiresIn())
	assert.Equal(t, "30m0s", New("k", 30*time.Minute).ExpiresIn())
}
