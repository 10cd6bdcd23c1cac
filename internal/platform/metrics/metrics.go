package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	LoginAttempts       *prometheus.CounterVec
	LoginsThrottled     prometheus.Counter
	ContactsStored      prometheus.Counter
	AuditEntriesDropped prometheus.Counter
}

// New creates and registers all metrics against the given registerer.
// Tests pass a fresh registry to avoid duplicate-registration panics.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		LoginAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "breakpoint_login_attempts_total",
			Help: "Admin login attempts by terminal outcome.",
		}, []string{"outcome"}),
		LoginsThrottled: factory.NewCounter(prometheus.CounterOpts{
			Name: "breakpoint_logins_throttled_total",
			Help: "Admin login attempts rejected by the rate limiter.",
		}),
		ContactsStored: factory.NewCounter(prometheus.CounterOpts{
			Name: "breakpoint_contacts_stored_total",
			Help: "Contact form submissions persisted.",
		}),
		AuditEntriesDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "breakpoint_audit_entries_dropped_total",
			Help: "Audit entries dropped because the recorder buffer was full.",
		}),
	}
}
