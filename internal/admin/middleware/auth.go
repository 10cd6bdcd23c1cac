// Package middleware guards protected admin routes behind the x-auth-token
// header. A missing token and an invalid token produce the same 401 shape but
// distinct audit actions.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"breakpoint/internal/admin/token"
	"breakpoint/internal/audit"
	"breakpoint/pkg/httputil"
	"breakpoint/pkg/requestcontext"
)

// TokenHeader is the dedicated request header carrying the bearer token.
const TokenHeader = "x-auth-token"

type claimsKey struct{}

// ClaimsFrom retrieves the verified token claims placed by RequireToken.
func ClaimsFrom(ctx context.Context) *token.Claims {
	claims, _ := ctx.Value(claimsKey{}).(*token.Claims)
	return claims
}

// RequireToken verifies the admin bearer token on every protected operation
// and attaches the decoded claims to the request context.
func RequireToken(tokens *token.Service, rec *audit.Recorder, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ip := requestcontext.ClientIP(ctx)

			raw := r.Header.Get(TokenHeader)
			if raw == "" {
				rec.Record(ctx, audit.ActionUnauthorizedAccess, map[string]any{
					"ip":       ip,
					"endpoint": r.URL.Path,
				})
				httputil.Fail(w, http.StatusUnauthorized, "Access denied. Authentication required.")
				return
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				reason := "invalid signature"
				if errors.Is(err, token.ErrExpired) {
					reason = "token expired"
				}
				rec.Record(ctx, audit.ActionInvalidToken, map[string]any{
					"ip":       ip,
					"endpoint": r.URL.Path,
					"error":    reason,
				})
				httputil.Fail(w, http.StatusUnauthorized, "Invalid or expired token.")
				return
			}

			logger.Debug("admin token verified", "ip", ip, "endpoint", r.URL.Path)
			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, claimsKey{}, claims)))
		})
	}
}
