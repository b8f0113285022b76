// Package handler exposes the lookup service over HTTP.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"deeplink/internal/lookup/models"
	dErrors "deeplink/pkg/domain-errors"
	"deeplink/pkg/platform/httputil"
)

// Service is the lookup behavior the HTTP layer depends on.
type Service interface {
	Lookup(ctx context.Context, rawQuery string) (*models.LookupResult, error)
	Stats(ctx context.Context) (*models.StoreStats, error)
	Health(ctx context.Context) error
}

type Handler struct {
	service Service
}

func New(service Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the lookup API.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/api/lookup", h.Lookup)
	r.Get("/api/stats", h.Stats)
	r.Get("/healthz", h.Healthz)
}

// Lookup handles GET /api/lookup?number=<identifier>.
func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	number := r.URL.Query().Get("number")
	if number == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "number parameter is required"))
		return
	}

	result, err := h.service.Lookup(r.Context(), number)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

// Stats handles GET /api/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, stats)
}

// Healthz reports liveness of the service and its backing store.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Health(r.Context()); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
