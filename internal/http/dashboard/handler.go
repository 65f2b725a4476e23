package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billkerfy/internal/dashboard"
	"github.com/MrJamesThe3rd/billkerfy/internal/organization"
)

//go:generate mockgen -source=handler.go -destination=handler_mock.go -package=dashboard
type Service interface {
	Summary(ctx context.Context, organizationID uuid.UUID) (dashboard.Summary, error)
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.summary)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	orgID, err := uuid.Parse(chi.URLParam(r, "orgID"))
	if err != nil {
		http.Error(w, "invalid organization id", http.StatusBadRequest)
		return
	}

	summary, err := h.svc.Summary(r.Context(), orgID)
	if err != nil {
		if errors.Is(err, organization.ErrNotFound) {
			http.Error(w, "organization not found", http.StatusNotFound)
			return
		}

		slog.Error("failed to build dashboard", "organization_id", orgID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(summary)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
