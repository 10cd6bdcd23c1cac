// Package handler is the thin HTTP layer over the admin service. It maps
// service outcomes to the fixed response envelope and owns no business logic.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"breakpoint/internal/admin/service"
	"breakpoint/internal/audit"
	"breakpoint/internal/contact"
	"breakpoint/internal/ratelimit"
	"breakpoint/pkg/httputil"
	"breakpoint/pkg/requestcontext"
)

type Handler struct {
	svc     *service.Service
	limiter *ratelimit.Limiter
	logger  *slog.Logger
}

func New(svc *service.Service, limiter *ratelimit.Limiter, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, limiter: limiter, logger: logger}
}

// Register mounts the admin routes. The login route sits behind the rate
// limiter; everything else requires a verified token.
func (h *Handler) Register(r chi.Router, loginLimit, requireToken func(http.Handler) http.Handler) {
	r.Route("/api/admin", func(r chi.Router) {
		r.With(loginLimit).Post("/login", h.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(requireToken)
			r.Get("/verify", h.handleVerify)
			r.Get("/contacts", h.handleContacts)
			r.Get("/logs", h.handleLogs)
		})
	})
}

type loginRequest struct {
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// A body that fails to decode (wrong type, malformed JSON) runs the same
	// pipeline as a missing password so the invalid-input decision is still
	// audited exactly once.
	var req loginRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	res, err := h.svc.Login(ctx, req.Password)
	if err != nil {
		// Every non-success outcome counts toward the address's window.
		if recErr := h.limiter.RecordFailure(ctx, requestcontext.ClientIP(ctx)); recErr != nil {
			h.logger.Warn("record login failure", "error", recErr)
		}
		h.writeLoginError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"token":     res.Token,
		"expiresIn": res.ExpiresIn,
		"msg":       "Authentication successful",
	})
}

func (h *Handler) writeLoginError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrSuspiciousInput):
		httputil.Fail(w, http.StatusBadRequest, "Invalid credentials.")
	case errors.Is(err, service.ErrWrongPassword):
		httputil.Fail(w, http.StatusUnauthorized, "Invalid credentials.")
	case errors.Is(err, service.ErrConfig):
		httputil.Fail(w, http.StatusInternalServerError, "Server configuration error. Please contact administrator.")
	case errors.Is(err, service.ErrToken):
		httputil.Fail(w, http.StatusInternalServerError, "Authentication error. Please try again.")
	default:
		httputil.Fail(w, http.StatusInternalServerError, "An error occurred. Please try again later.")
	}
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"msg":       "Token is valid",
		"expiresIn": h.svc.ExpiresIn(),
	})
}

func (h *Handler) handleContacts(w http.ResponseWriter, r *http.Request) {
	subs, err := h.svc.ListContacts(r.Context())
	if err != nil {
		h.logger.Error("fetch contacts", "error", err)
		httputil.Fail(w, http.StatusInternalServerError, "Unable to retrieve data. Please try again.")
		return
	}
	if subs == nil {
		subs = []contact.Submission{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(subs),
		"data":    subs,
	})
}

func (h *Handler) handleLogs(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.RecentLogs(r.Context())
	if err != nil {
		h.logger.Error("read audit logs", "error", err)
		httputil.Fail(w, http.StatusInternalServerError, "Unable to retrieve logs.")
		return
	}
	if entries == nil {
		entries = []audit.Entry{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"logs":    entries,
		"count":   len(entries),
	})
}
