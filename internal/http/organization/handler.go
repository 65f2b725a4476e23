package organization

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billkerfy/internal/organization"
	"github.com/MrJamesThe3rd/billkerfy/internal/workspace"
)

//go:generate mockgen -source=handler.go -destination=handler_mock.go -package=organization
type Service interface {
	Create(ctx context.Context, params organization.CreateParams) (*organization.Organization, error)
	Get(ctx context.Context, id uuid.UUID) (*organization.Organization, error)
	List(ctx context.Context) ([]*organization.Organization, error)
}

type Reloader interface {
	Reload(ctx context.Context, organizationID uuid.UUID) (*workspace.Snapshot, error)
}

type Handler struct {
	svc       Service
	workspace Reloader
}

func NewHandler(svc Service, ws Reloader) *Handler {
	return &Handler{svc: svc, workspace: ws}
}

// Routes mounts the collection endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
}

// ItemRoutes mounts the endpoints under /{orgID}.
func (h *Handler) ItemRoutes(r chi.Router) {
	r.Get("/", h.get)
	r.Post("/reload", h.reload)
}

type createOrganizationRequest struct {
	LegalName    string `json:"legal_name"`
	TradeName    string `json:"trade_name"`
	TaxID        string `json:"tax_id"`
	AddressLine1 string `json:"address_line1"`
	City         string `json:"city"`
	Country      string `json:"country"`
	CurrencyCode string `json:"currency_code"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	org, err := h.svc.Create(r.Context(), organization.CreateParams{
		LegalName:    req.LegalName,
		TradeName:    req.TradeName,
		TaxID:        req.TaxID,
		AddressLine1: req.AddressLine1,
		City:         req.City,
		Country:      req.Country,
		CurrencyCode: req.CurrencyCode,
	})
	if err != nil {
		if errors.Is(err, organization.ErrMissingLegalName) || errors.Is(err, organization.ErrInvalidCurrency) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(org)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(orgs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "orgID"))
	if err != nil {
		http.Error(w, "invalid organization id", http.StatusBadRequest)
		return
	}

	org, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, organization.ErrNotFound) {
			http.Error(w, "organization not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(org)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// reload discards the cached workspace and loads it again. On failure the previous
// snapshot stays in place.
func (h *Handler) reload(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "orgID"))
	if err != nil {
		http.Error(w, "invalid organization id", http.StatusBadRequest)
		return
	}

	snap, err := h.workspace.Reload(r.Context(), id)
	if err != nil {
		if errors.Is(err, organization.ErrNotFound) {
			http.Error(w, "organization not found", http.StatusNotFound)
			return
		}

		slog.Error("failed to reload workspace", "organization_id", id, "error", err)
		http.Error(w, "failed to reload workspace", http.StatusBadGateway)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(reloadResponse{
		Customers: len(snap.Customers),
		Invoices:  len(snap.Invoices),
		LoadedAt:  snap.LoadedAt,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
