// Package service implements the admin boundary: the login decision pipeline
// and the protected reads. Every terminal state of an authentication decision
// emits exactly one audit entry before the caller writes a response.
package service

import (
	"context"
	"errors"
	"log/slog"

	"breakpoint/internal/admin/secrets"
	"breakpoint/internal/admin/token"
	"breakpoint/internal/audit"
	"breakpoint/internal/contact"
	contactstore "breakpoint/internal/contact/store"
	"breakpoint/internal/platform/metrics"
	"breakpoint/pkg/requestcontext"
)

// Login terminal errors; the handler maps these to HTTP statuses and the
// fixed client-facing messages. Invalid input and wrong password are
// deliberately indistinguishable to the client.
var (
	ErrInvalidInput    = errors.New("missing or invalid password")
	ErrSuspiciousInput = errors.New("password exceeds length limit")
	ErrWrongPassword   = errors.New("wrong password")
	ErrConfig          = errors.New("admin password hash not configured")
	ErrToken           = errors.New("token issuance failed")
	ErrInternal        = errors.New("internal login error")
)

// CredentialVerifier compares a candidate secret against a stored hash.
// An interface so tests can count invocations.
type CredentialVerifier interface {
	Verify(candidate, hash string) error
}

// VerifierFunc adapts a function to CredentialVerifier.
type VerifierFunc func(candidate, hash string) error

func (f VerifierFunc) Verify(candidate, hash string) error { return f(candidate, hash) }

// Service composes the credential verifier, token issuer, contact store, and
// audit pipeline behind the admin HTTP surface.
type Service struct {
	verifier     CredentialVerifier
	tokens       *token.Service
	contacts     contactstore.Store
	auditStore   audit.Store
	recorder     *audit.Recorder
	logger       *slog.Logger
	metrics      *metrics.Metrics
	passwordHash string
}

func New(
	verifier CredentialVerifier,
	tokens *token.Service,
	contacts contactstore.Store,
	auditStore audit.Store,
	recorder *audit.Recorder,
	logger *slog.Logger,
	m *metrics.Metrics,
	passwordHash string,
) *Service {
	if verifier == nil {
		verifier = VerifierFunc(secrets.Verify)
	}
	return &Service{
		verifier:     verifier,
		tokens:       tokens,
		contacts:     contacts,
		auditStore:   auditStore,
		recorder:     recorder,
		logger:       logger,
		metrics:      m,
		passwordHash: passwordHash,
	}
}

// LoginResult carries the signed token and its declared lifetime.
type LoginResult struct {
	Token     string
	ExpiresIn string
}

// Login runs the decision pipeline for one attempt:
// validated -> credential-checked -> token-issued, with one audit entry per
// terminal state. The rate check happens in middleware before this is called.
func (s *Service) Login(ctx context.Context, password string) (*LoginResult, error) {
	ip := requestcontext.ClientIP(ctx)

	if password == "" {
		s.record(ctx, audit.ActionLoginFailedInvalidInput, map[string]any{
			"ip":     ip,
			"reason": "Missing or invalid password",
		})
		s.metrics.LoginAttempts.WithLabelValues("invalid_input").Inc()
		return nil, ErrInvalidInput
	}

	// Length guard runs before any hashing work so oversized payloads never
	// reach the expensive comparison.
	if len(password) > secrets.MaxCandidateLength {
		s.record(ctx, audit.ActionLoginFailedSuspiciousInput, map[string]any{
			"ip":             ip,
			"passwordLength": len(password),
		})
		s.metrics.LoginAttempts.WithLabelValues("suspicious_input").Inc()
		return nil, ErrSuspiciousInput
	}

	if s.passwordHash == "" {
		s.logger.Error("ADMIN_PASSWORD_HASH not configured")
		s.record(ctx, audit.ActionLoginFailedConfigError, map[string]any{
			"ip":     ip,
			"reason": "Missing password hash configuration",
		})
		s.metrics.LoginAttempts.WithLabelValues("config_error").Inc()
		return nil, ErrConfig
	}

	if err := s.verifier.Verify(password, s.passwordHash); err != nil {
		if errors.Is(err, secrets.ErrMismatch) {
			s.record(ctx, audit.ActionLoginFailedWrongPassword, map[string]any{"ip": ip})
			s.metrics.LoginAttempts.WithLabelValues("wrong_password").Inc()
			return nil, ErrWrongPassword
		}
		s.logger.Error("credential verification failed", "error", err)
		s.record(ctx, audit.ActionLoginError, map[string]any{
			"ip":    ip,
			"error": err.Error(),
		})
		s.metrics.LoginAttempts.WithLabelValues("error").Inc()
		return nil, ErrInternal
	}

	signed, err := s.tokens.Issue(requestcontext.Now(ctx), ip)
	if err != nil {
		s.logger.Error("jwt signing failed", "error", err)
		s.record(ctx, audit.ActionLoginFailedJWTError, map[string]any{
			"ip":    ip,
			"error": err.Error(),
		})
		s.metrics.LoginAttempts.WithLabelValues("jwt_error").Inc()
		return nil, ErrToken
	}

	s.record(ctx, audit.ActionLoginSuccess, map[string]any{"ip": ip})
	s.metrics.LoginAttempts.WithLabelValues("success").Inc()
	return &LoginResult{Token: signed, ExpiresIn: s.tokens.ExpiresIn()}, nil
}

// ExpiresIn reports the declared token lifetime, e.g. "2h".
func (s *Service) ExpiresIn() string {
	return s.tokens.ExpiresIn()
}

// ListContacts returns all stored submissions newest-first and audits the
// access with the returned count.
func (s *Service) ListContacts(ctx context.Context) ([]contact.Submission, error) {
	subs, err := s.contacts.List(ctx)
	if err != nil {
		s.record(ctx, audit.ActionDataAccessError, map[string]any{
			"ip":    requestcontext.ClientIP(ctx),
			"error": err.Error(),
		})
		return nil, err
	}

	s.record(ctx, audit.ActionDataAccessContacts, map[string]any{
		"ip":    requestcontext.ClientIP(ctx),
		"count": len(subs),
	})
	return subs, nil
}

// RecentLogs returns the last 100 audit entries, newest first. A log target
// with no entries yet yields an empty list. The read itself is audited, so
// the entry shows up on the next listing.
func (s *Service) RecentLogs(ctx context.Context) ([]audit.Entry, error) {
	entries, err := s.auditStore.Tail(ctx, 100)
	if err != nil {
		return nil, err
	}

	s.record(ctx, audit.ActionLogsAccessed, map[string]any{
		"ip":    requestcontext.ClientIP(ctx),
		"count": len(entries),
	})
	return entries, nil
}

func (s *Service) record(ctx context.Context, action audit.Action, details map[string]any) {
	if ua := requestcontext.UserAgent(ctx); ua != "" {
		details["userAgent"] = ua
	}
	s.recorder.Record(ctx, action, details)
}
