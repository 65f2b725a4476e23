package invoice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billkerfy/internal/invoice"
	"github.com/MrJamesThe3rd/billkerfy/internal/organization"
	"github.com/MrJamesThe3rd/billkerfy/internal/workspace"
)

//go:generate mockgen -source=handler.go -destination=handler_mock.go -package=invoice
type Workspace interface {
	Snapshot(ctx context.Context, organizationID uuid.UUID) (*workspace.Snapshot, error)
	CreateInvoice(ctx context.Context, params invoice.CreateParams) (*invoice.Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, id uuid.UUID, status invoice.Status) (*invoice.Invoice, error)
}

type InvoiceGetter interface {
	Get(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error)
}

type Documents interface {
	Render(ctx context.Context, w io.Writer, id uuid.UUID) (string, error)
	Bundle(ctx context.Context, w io.Writer, organizationID uuid.UUID, filter invoice.ListFilter) (int, error)
}

type Handler struct {
	workspace Workspace
	invoices  InvoiceGetter
	documents Documents
	now       func() time.Time
}

func NewHandler(ws Workspace, invoices InvoiceGetter, documents Documents) *Handler {
	return &Handler{
		workspace: ws,
		invoices:  invoices,
		documents: documents,
		now:       time.Now,
	}
}

// WithClock returns a copy of h that derives display statuses at now.
func (h *Handler) WithClock(now func() time.Time) *Handler {
	c := *h
	c.now = now

	return &c
}

// Routes mounts the endpoints addressed by invoice id, plus the draft preview.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/preview", h.preview)
	r.Get("/{id}", h.get)
	r.Patch("/{id}/status", h.updateStatus)
	r.Get("/{id}/document", h.document)
}

// OrganizationRoutes mounts the endpoints under /organizations/{orgID}/invoices.
func (h *Handler) OrganizationRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Post("/export", h.export)
}

func writeError(w http.ResponseWriter, err error) {
	var verr *invoice.ValidationError

	switch {
	case errors.Is(err, invoice.ErrNotFound):
		http.Error(w, "invoice not found", http.StatusNotFound)
	case errors.Is(err, organization.ErrNotFound):
		http.Error(w, "organization not found", http.StatusNotFound)
	case errors.As(err, &verr),
		errors.Is(err, invoice.ErrInvalidStatus),
		errors.Is(err, invoice.ErrInvalidAction),
		errors.Is(err, invoice.ErrMissingOrganization),
		errors.Is(err, invoice.ErrMissingCustomer),
		errors.Is(err, invoice.ErrMissingDescription):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, invoice.ErrTransitionNotAllowed), errors.Is(err, invoice.ErrDuplicateNumber):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		slog.Error("invoice request failed", "error", err)
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

func pathID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return uuid.Nil, false
	}

	return id, true
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	orgID, ok := pathID(w, r, "orgID")
	if !ok {
		return
	}

	q := r.URL.Query()

	filter, err := invoice.ParseListFilter(q.Get("status"), q.Get("range"), q.Get("q"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	snap, err := h.workspace.Snapshot(r.Context(), orgID)
	if err != nil {
		writeError(w, err)
		return
	}

	rows := invoice.Filter(snap.Invoices, snap.CustomerNames(), filter, h.now().UTC())

	writeJSON(w, http.StatusOK, toRowList(rows))
}

type lineItemRequest struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TaxRate     float64 `json:"tax_rate"`
}

type createInvoiceRequest struct {
	CustomerID   string               `json:"customer_id"`
	Action       invoice.CreateAction `json:"action"`
	IssueDate    string               `json:"issue_date"`
	DueDate      string               `json:"due_date"`
	Notes        string               `json:"notes"`
	CurrencyCode string               `json:"currency_code"`
	Items        []lineItemRequest    `json:"items"`
}

// toLineItems validates each requested line, reporting the first offending one.
func toLineItems(reqs []lineItemRequest) ([]invoice.LineItem, error) {
	items := make([]invoice.LineItem, 0, len(reqs))

	for i, req := range reqs {
		item, err := invoice.NewLineItem(req.ID, req.Description, req.Quantity, req.UnitPrice, req.TaxRate)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}

		items = append(items, item)
	}

	return items, nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	orgID, ok := pathID(w, r, "orgID")
	if !ok {
		return
	}

	var req createInvoiceRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// A blank customer id reaches validation as uuid.Nil and is reported as a missing customer.
	customerID := uuid.Nil
	if strings.TrimSpace(req.CustomerID) != "" {
		customerID, err = uuid.Parse(req.CustomerID)
		if err != nil {
			http.Error(w, "invalid customer_id", http.StatusBadRequest)
			return
		}
	}

	items, err := toLineItems(req.Items)
	if err != nil {
		writeError(w, err)
		return
	}

	snap, err := h.workspace.Snapshot(r.Context(), orgID)
	if err != nil {
		writeError(w, err)
		return
	}

	currency := req.CurrencyCode
	if currency == "" {
		currency = snap.CurrencyCode()
	}

	inv, err := h.workspace.CreateInvoice(r.Context(), invoice.CreateParams{
		OrganizationID: orgID,
		CustomerID:     customerID,
		Action:         req.Action,
		IssueDate:      invoice.ParseDate(req.IssueDate),
		DueDate:        invoice.ParseDate(req.DueDate),
		Notes:          req.Notes,
		CurrencyCode:   currency,
		Items:          items,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(inv, h.now().UTC()))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	inv, err := h.invoices.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(inv, h.now().UTC()))
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	status, err := invoice.ParseStatus(req.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	inv, err := h.workspace.UpdateInvoiceStatus(r.Context(), id, status)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(inv, h.now().UTC()))
}

type previewRequest struct {
	CurrencyCode string            `json:"currency_code"`
	Items        []lineItemRequest `json:"items"`
}

// preview runs the calculators over an unsaved draft. Nothing is persisted.
func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	items, err := toLineItems(req.Items)
	if err != nil {
		writeError(w, err)
		return
	}

	currency := req.CurrencyCode
	if currency == "" {
		currency = invoice.DefaultCurrency
	}

	writeJSON(w, http.StatusOK, toPreviewResponse(items, currency))
}

func (h *Handler) document(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var buf bytes.Buffer

	name, err := h.documents.Render(r.Context(), &buf, id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", name))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write document", "invoice_id", id, "error", err)
	}
}

type exportRequest struct {
	Status string `json:"status"`
	Range  string `json:"range"`
	Query  string `json:"q"`
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	orgID, ok := pathID(w, r, "orgID")
	if !ok {
		return
	}

	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	filter, err := invoice.ParseListFilter(req.Status, req.Range, req.Query)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer

	n, err := h.documents.Bundle(r.Context(), &buf, orgID, filter)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="invoices.zip"`)
	w.Header().Set("X-Invoice-Count", strconv.Itoa(n))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write export", "organization_id", orgID, "error", err)
	}
}
