package ratelimit

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"breakpoint/internal/audit"
	"breakpoint/pkg/httputil"
	"breakpoint/pkg/requestcontext"
)

const rejectionMsg = "Too many login attempts. Please try again after 15 minutes."

// Middleware guards the login route. A blocked address gets the fixed 429
// payload with standard rate-limit headers and never reaches the credential
// check. A limiter store outage fails open: locking the admin out because
// redis is down would be worse than briefly losing throttling.
func Middleware(l *Limiter, rec *audit.Recorder, throttled prometheus.Counter, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ip := requestcontext.ClientIP(ctx)

			res, err := l.Check(ctx, ip)
			if err != nil {
				logger.Warn("rate limiter unavailable, allowing request", "ip", ip, "error", err)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("RateLimit-Limit", strconv.Itoa(res.Limit))
			w.Header().Set("RateLimit-Remaining", strconv.Itoa(res.Remaining))
			resetSecs := int(res.ResetAt.Sub(requestcontext.Now(ctx)).Seconds())
			if resetSecs < 0 {
				resetSecs = 0
			}
			w.Header().Set("RateLimit-Reset", strconv.Itoa(resetSecs))

			if !res.Allowed {
				throttled.Inc()
				rec.Record(ctx, audit.ActionLoginRateLimited, map[string]any{
					"ip":       ip,
					"failures": res.Limit,
				})
				httputil.Fail(w, http.StatusTooManyRequests, rejectionMsg)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
