// Package httptransport assembles the HTTP surface: middleware chain, public
// contact endpoints, the protected admin surface, health, and metrics.
package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	adminhandler "breakpoint/internal/admin/handler"
	contacthandler "breakpoint/internal/contact/handler"
	"breakpoint/pkg/httputil"
	"breakpoint/pkg/middleware/metadata"
	"breakpoint/pkg/middleware/requesttime"
	"breakpoint/pkg/requestcontext"
)

// NewRouter wires all endpoints. Request time and client metadata run first
// so every downstream component sees a consistent clock and address.
func NewRouter(
	admin *adminhandler.Handler,
	contacts *contacthandler.Handler,
	loginLimit func(http.Handler) http.Handler,
	requireToken func(http.Handler) http.Handler,
	metricsHandler http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)

	r.Get("/api/health", handleHealth)
	r.Handle("/metrics", metricsHandler)

	contacts.Register(r)
	admin.Register(r, loginLimit, requireToken)

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"message":   "Backend server is running",
		"timestamp": requestcontext.Now(r.Context()).UTC(),
	})
}
