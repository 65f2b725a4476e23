package customer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billkerfy/internal/billing"
	"github.com/MrJamesThe3rd/billkerfy/internal/customer"
	"github.com/MrJamesThe3rd/billkerfy/internal/importer"
	"github.com/MrJamesThe3rd/billkerfy/internal/organization"
	"github.com/MrJamesThe3rd/billkerfy/internal/workspace"
)

// maxUploadSize bounds multipart CSV uploads.
const maxUploadSize = 10 << 20

//go:generate mockgen -source=handler.go -destination=handler_mock.go -package=customer
type Workspace interface {
	Snapshot(ctx context.Context, organizationID uuid.UUID) (*workspace.Snapshot, error)
	CreateCustomer(ctx context.Context, params customer.CreateParams) (*customer.Customer, error)
	UpdateCustomer(ctx context.Context, id uuid.UUID, params customer.UpdateParams) (*customer.Customer, error)
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
}

type CustomerImporter interface {
	ImportCustomers(ctx context.Context, organizationID uuid.UUID, r io.Reader) (*customer.ImportResult, error)
}

type BillingReporter interface {
	Report(ctx context.Context, organizationID uuid.UUID, query string) (billing.Report, error)
}

type Handler struct {
	workspace Workspace
	importer  CustomerImporter
	billing   BillingReporter
}

func NewHandler(ws Workspace, imp CustomerImporter, reporter BillingReporter) *Handler {
	return &Handler{
		workspace: ws,
		importer:  imp,
		billing:   reporter,
	}
}

// Routes mounts the endpoints addressed by customer id.
func (h *Handler) Routes(r chi.Router) {
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

// OrganizationRoutes mounts the endpoints under /organizations/{orgID}/customers.
func (h *Handler) OrganizationRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Post("/import", h.importCSV)
	r.Get("/billing", h.billingReport)
}

func organizationID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "orgID"))
	if err != nil {
		http.Error(w, "invalid organization id", http.StatusBadRequest)
		return uuid.Nil, false
	}

	return id, true
}

// writeError maps domain errors to status codes.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, customer.ErrNotFound):
		http.Error(w, "customer not found", http.StatusNotFound)
	case errors.Is(err, organization.ErrNotFound):
		http.Error(w, "organization not found", http.StatusNotFound)
	case errors.Is(err, customer.ErrMissingCompanyName), errors.Is(err, customer.ErrMissingOrganization):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		slog.Error("customer request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizationID(w, r)
	if !ok {
		return
	}

	snap, err := h.workspace.Snapshot(r.Context(), orgID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponseList(snap.Customers))
}

type createCustomerRequest struct {
	CompanyName string `json:"company_name"`
	TaxID       string `json:"tax_id"`
	Address     string `json:"address"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizationID(w, r)
	if !ok {
		return
	}

	var req createCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.workspace.CreateCustomer(r.Context(), customer.CreateParams{
		OrganizationID: orgID,
		CompanyName:    req.CompanyName,
		TaxID:          req.TaxID,
		Address:        req.Address,
		Email:          req.Email,
		Phone:          req.Phone,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(c))
}

type updateCustomerRequest struct {
	CompanyName *string `json:"company_name,omitempty"`
	TaxID       *string `json:"tax_id,omitempty"`
	Address     *string `json:"address,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.workspace.UpdateCustomer(r.Context(), id, customer.UpdateParams{
		CompanyName: req.CompanyName,
		TaxID:       req.TaxID,
		Address:     req.Address,
		Email:       req.Email,
		Phone:       req.Phone,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(c))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.workspace.DeleteCustomer(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizationID(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	result, err := h.importer.ImportCustomers(r.Context(), orgID, file)
	if err != nil {
		if errors.Is(err, importer.ErrInvalidFile) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeError(w, err)

		return
	}

	status := http.StatusCreated
	if len(result.Conflicts) > 0 {
		status = http.StatusConflict
	}

	writeJSON(w, status, toImportResponse(result))
}

func (h *Handler) billingReport(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizationID(w, r)
	if !ok {
		return
	}

	report, err := h.billing.Report(r.Context(), orgID, r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toBillingResponse(report))
}
