// Package secrets handles hashing and verification of the admin password.
package secrets

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the fixed bcrypt work factor for newly generated hashes.
const Cost = 12

// MaxCandidateLength bounds submitted secrets before any hashing work
// happens. This is an abuse guard, not a correctness requirement: bcrypt
// itself truncates at 72 bytes, so nothing legitimate is lost.
const MaxCandidateLength = 100

// ErrMismatch reports that the candidate does not match the stored hash.
var ErrMismatch = errors.New("secret does not match")

// Hash creates a bcrypt hash of the provided secret at the fixed cost.
func Hash(secret string) (string, error) {
	if secret == "" {
		return "", errors.New("secret cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), Cost)
	if err != nil {
		return "", fmt.Errorf("could not hash secret: %w", err)
	}
	return string(hashed), nil
}

// Verify checks a plaintext candidate against a bcrypt hash. A mismatch
// returns ErrMismatch; anything else (malformed hash, etc.) is an internal
// error the caller should not present as a credential failure.
func Verify(candidate, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatch
		}
		return fmt.Errorf("could not verify secret: %w", err)
	}
	return nil
}

// GenerateSigningKey returns a random hex-encoded key suitable for JWT
// signing, used by the hashgen tool when provisioning a deployment.
func GenerateSigningKey() (string, error) {
	buf := make([]byte, 64)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("could not generate signing key: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
