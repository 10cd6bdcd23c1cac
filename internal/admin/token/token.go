// Package token mints and validates the admin bearer token. Tokens are
// stateless: validity is determined entirely by the HMAC signature and the
// embedded expiry, so there is no revocation before natural expiry.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoSigningKey = errors.New("jwt signing key not configured")
	ErrExpired      = errors.New("token has expired")
	ErrInvalid      = errors.New("invalid token")
)

// Claims carried by the admin token. The client IP is recorded at issuance
// for audit correlation only; verification does not compare it against the
// presenting request's address.
type Claims struct {
	Authenticated bool   `json:"authenticated"`
	Timestamp     int64  `json:"timestamp"` // issuance time, unix millis
	IP            string `json:"ip"`
	jwt.RegisteredClaims
}

// Service issues and verifies admin tokens with a symmetric key.
type Service struct {
	signingKey []byte
	ttl        time.Duration
}

func New(signingKey string, ttl time.Duration) *Service {
	return &Service{signingKey: []byte(signingKey), ttl: ttl}
}

// Issue signs a token for the single admin principal. The caller supplies
// "now" so issuance uses the request-scoped clock.
func (s *Service) Issue(now time.Time, ip string) (string, error) {
	if len(s.signingKey) == 0 {
		return "", ErrNoSigningKey
	}

	claims := Claims{
		Authenticated: true,
		Timestamp:     now.UnixMilli(),
		IP:            ip,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string. Expired tokens are reported as
// ErrExpired so the audit trail can distinguish them; everything else invalid
// collapses to ErrInvalid.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	if len(s.signingKey) == 0 {
		return nil, ErrNoSigningKey
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || !claims.Authenticated {
		return nil, ErrInvalid
	}
	return claims, nil
}

// ExpiresIn renders the declared token lifetime the way the API reports it,
// e.g. "2h".
func (s *Service) ExpiresIn() string {
	if s.ttl%time.Hour == 0 {
		return fmt.Sprintf("%dh", s.ttl/time.Hour)
	}
	return s.ttl.String()
}
