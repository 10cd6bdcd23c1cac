// Package handler serves the public contact form endpoints. The contact path
// is unauthenticated and not audited.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"breakpoint/internal/contact"
	"breakpoint/internal/contact/store"
	"breakpoint/internal/platform/metrics"
	"breakpoint/pkg/httputil"
	"breakpoint/pkg/requestcontext"
)

// emailPattern checks basic local@domain.tld shape, nothing more.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Handler struct {
	store   store.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func New(store store.Store, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{store: store, logger: logger, metrics: m}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/api/contact", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Get("/{id}", h.handleGet)
	})
}

type createRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, map[string]string{"msg": "Please enter all fields"})
		return
	}

	if req.Name == "" || req.Email == "" || req.Contact == "" || req.Subject == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, map[string]string{"msg": "Please enter all fields"})
		return
	}
	if !emailPattern.MatchString(req.Email) {
		httputil.WriteJSON(w, http.StatusBadRequest, map[string]string{"msg": "Please enter a valid email address"})
		return
	}

	ctx := r.Context()
	sub := &contact.Submission{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Contact:   req.Contact,
		Subject:   req.Subject,
		Message:   req.Message, // "" when absent, by decode default
		CreatedAt: requestcontext.Now(ctx),
	}

	if err := h.store.Create(ctx, sub); err != nil {
		h.logger.Error("store contact submission", "error", err)
		httputil.Fail(w, http.StatusInternalServerError, "Server Error")
		return
	}

	h.metrics.ContactsStored.Inc()
	httputil.WriteJSON(w, http.StatusCreated, sub)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	subs, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Error("list contact submissions", "error", err)
		httputil.Fail(w, http.StatusInternalServerError, "Server Error")
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

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	sub, err := h.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		httputil.Fail(w, http.StatusNotFound, "Submission not found")
		return
	}
	if err != nil {
		h.logger.Error("get contact submission", "id", id, "error", err)
		httputil.Fail(w, http.StatusInternalServerError, "Server Error")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    sub,
	})
}
