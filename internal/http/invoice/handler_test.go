package invoice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/billkerfy/internal/customer"
	"github.com/MrJamesThe3rd/billkerfy/internal/invoice"
	"github.com/MrJamesThe3rd/billkerfy/internal/organization"
	"github.com/MrJamesThe3rd/billkerfy/internal/workspace"
)

var (
	fixedNow = time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC)
	orgID    = uuid.MustParse("00000000-0000-0000-0000-0000000000aa")
	custID   = uuid.MustParse("00000000-0000-0000-0000-0000000000c1")
)

type mocks struct {
	workspace *MockWorkspace
	invoices  *MockInvoiceGetter
	documents *MockDocuments
}

func newRouter(t *testing.T) (http.Handler, mocks) {
	ctrl := gomock.NewController(t)
	m := mocks{
		workspace: NewMockWorkspace(ctrl),
		invoices:  NewMockInvoiceGetter(ctrl),
		documents: NewMockDocuments(ctrl),
	}

	h := NewHandler(m.workspace, m.invoices, m.documents).WithClock(func() time.Time { return fixedNow })

	r := chi.NewRouter()
	r.Route("/organizations/{orgID}/invoices", h.OrganizationRoutes)
	r.Route("/invoices", h.Routes)

	return r, m
}

func do(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func snapshot() *workspace.Snapshot {
	return &workspace.Snapshot{
		Customers: []*customer.Customer{{ID: custID, CompanyName: "Acme SL"}},
		Invoices: []*invoice.Invoice{
			{
				ID:           uuid.New(),
				CustomerID:   custID,
				Number:       "INV-2026-000001",
				Status:       invoice.StatusPaid,
				IssueDate:    date(2026, 2, 1),
				Totals:       invoice.Totals{Subtotal: 200, Tax: 42, Total: 242},
				CurrencyCode: "EUR",
			},
			{
				ID:           uuid.New(),
				CustomerID:   uuid.New(),
				Number:       "INV-2026-000002",
				Status:       invoice.StatusIssued,
				IssueDate:    date(2026, 1, 2),
				DueDate:      date(2026, 2, 1),
				Totals:       invoice.Totals{Subtotal: 50, Total: 50},
				CurrencyCode: "EUR",
			},
		},
	}
}

func TestHandler_List(t *testing.T) {
	type testCase struct {
		name        string
		query       string
		wantNumbers []string
		wantStatus  []invoice.DisplayStatus
		wantNames   []string
	}

	tests := []testCase{
		{
			name:        "all",
			query:       "",
			wantNumbers: []string{"INV-2026-000001", "INV-2026-000002"},
			wantStatus:  []invoice.DisplayStatus{invoice.DisplayPaid, invoice.DisplayOverdue},
			wantNames:   []string{"Acme SL", invoice.UnknownCustomer},
		},
		{
			name:        "overdue only",
			query:       "?status=overdue",
			wantNumbers: []string{"INV-2026-000002"},
			wantStatus:  []invoice.DisplayStatus{invoice.DisplayOverdue},
			wantNames:   []string{invoice.UnknownCustomer},
		},
		{
			name:        "search by customer",
			query:       "?q=acme",
			wantNumbers: []string{"INV-2026-000001"},
			wantStatus:  []invoice.DisplayStatus{invoice.DisplayPaid},
			wantNames:   []string{"Acme SL"},
		},
		{
			name:        "last 30 days",
			query:       "?range=30d",
			wantNumbers: []string{"INV-2026-000001"},
			wantStatus:  []invoice.DisplayStatus{invoice.DisplayPaid},
			wantNames:   []string{"Acme SL"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router, m := newRouter(t)
			m.workspace.EXPECT().Snapshot(gomock.Any(), orgID).Return(snapshot(), nil)

			rec := do(router, http.MethodGet, fmt.Sprintf("/organizations/%s/invoices%s", orgID, tc.query), "")
			require.Equal(t, http.StatusOK, rec.Code)

			var got []rowResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			require.Len(t, got, len(tc.wantNumbers))

			for i := range got {
				assert.Equal(t, tc.wantNumbers[i], got[i].Number)
				assert.Equal(t, tc.wantStatus[i], got[i].DisplayStatus)
				assert.Equal(t, tc.wantNames[i], got[i].CustomerName)
			}
		})
	}
}

func TestHandler_List_BadFilter(t *testing.T) {
	router, _ := newRouter(t)

	rec := do(router, http.MethodGet, fmt.Sprintf("/organizations/%s/invoices?status=late", orgID), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Create(t *testing.T) {
	t.Run("issues with parsed dates and items", func(t *testing.T) {
		router, m := newRouter(t)

		m.workspace.EXPECT().Snapshot(gomock.Any(), orgID).Return(snapshot(), nil)
		m.workspace.EXPECT().
			CreateInvoice(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p invoice.CreateParams) (*invoice.Invoice, error) {
				assert.Equal(t, orgID, p.OrganizationID)
				assert.Equal(t, custID, p.CustomerID)
				assert.Equal(t, invoice.ActionIssue, p.Action)
				assert.Equal(t, date(2026, 2, 14), p.IssueDate)
				assert.False(t, invoice.ValidDate(p.DueDate))
				assert.Equal(t, "USD", p.CurrencyCode)
				require.Len(t, p.Items, 1)
				assert.Equal(t, "Hosting", p.Items[0].Description)
				assert.NotEmpty(t, p.Items[0].ID)

				return &invoice.Invoice{
					ID:           uuid.New(),
					Number:       "INV-2026-123456",
					Status:       invoice.StatusIssued,
					IssueDate:    p.IssueDate,
					Totals:       invoice.ComputeTotals(p.Items),
					CurrencyCode: p.CurrencyCode,
					Lines:        invoice.BuildLines(p.Items),
				}, nil
			})

		body := fmt.Sprintf(`{
			"customer_id": %q,
			"action": "issue",
			"issue_date": "2026-02-14",
			"due_date": "not a date",
			"currency_code": "USD",
			"items": [{"description": "Hosting", "quantity": 2, "unit_price": 1.34, "tax_rate": 0}]
		}`, custID)

		rec := do(router, http.MethodPost, fmt.Sprintf("/organizations/%s/invoices", orgID), body)
		require.Equal(t, http.StatusCreated, rec.Code)

		var got invoiceResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, "INV-2026-123456", got.Number)
		assert.Equal(t, "$2.68", got.Totals.TotalLabel)
		assert.Nil(t, got.DueDate)
		require.Len(t, got.Lines, 1)
		assert.Equal(t, 1, got.Lines[0].Order)
	})

	t.Run("defaults to the workspace currency", func(t *testing.T) {
		router, m := newRouter(t)

		snap := snapshot()
		snap.Invoices = nil

		m.workspace.EXPECT().Snapshot(gomock.Any(), orgID).Return(snap, nil)
		m.workspace.EXPECT().
			CreateInvoice(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p invoice.CreateParams) (*invoice.Invoice, error) {
				assert.Equal(t, invoice.DefaultCurrency, p.CurrencyCode)
				return &invoice.Invoice{Status: invoice.StatusDraft, CurrencyCode: p.CurrencyCode}, nil
			})

		body := fmt.Sprintf(`{"customer_id": %q, "action": "save_draft", "items": []}`, custID)

		rec := do(router, http.MethodPost, fmt.Sprintf("/organizations/%s/invoices", orgID), body)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("rejects out of range line before creating", func(t *testing.T) {
		router, _ := newRouter(t)

		body := fmt.Sprintf(`{"customer_id": %q, "action": "issue", "currency_code": "EUR",
			"items": [{"description": "ok", "quantity": 1, "unit_price": 10, "tax_rate": 150}]}`, custID)

		rec := do(router, http.MethodPost, fmt.Sprintf("/organizations/%s/invoices", orgID), body)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "tax_rate")
	})

	t.Run("missing customer", func(t *testing.T) {
		router, m := newRouter(t)

		m.workspace.EXPECT().Snapshot(gomock.Any(), orgID).Return(snapshot(), nil)
		m.workspace.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).Return(nil, invoice.ErrMissingCustomer)

		body := `{"action": "issue", "currency_code": "EUR", "items": []}`

		rec := do(router, http.MethodPost, fmt.Sprintf("/organizations/%s/invoices", orgID), body)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("blank customer id is a missing customer", func(t *testing.T) {
		router, m := newRouter(t)

		m.workspace.EXPECT().Snapshot(gomock.Any(), orgID).Return(snapshot(), nil)
		m.workspace.EXPECT().
			CreateInvoice(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p invoice.CreateParams) (*invoice.Invoice, error) {
				assert.Equal(t, uuid.Nil, p.CustomerID)
				return nil, invoice.ErrMissingCustomer
			})

		body := `{"customer_id": "", "action": "issue", "currency_code": "EUR", "items": []}`

		rec := do(router, http.MethodPost, fmt.Sprintf("/organizations/%s/invoices", orgID), body)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), invoice.ErrMissingCustomer.Error())
	})

	t.Run("malformed customer id", func(t *testing.T) {
		router, _ := newRouter(t)

		body := `{"customer_id": "acme", "action": "issue", "currency_code": "EUR", "items": []}`

		rec := do(router, http.MethodPost, fmt.Sprintf("/organizations/%s/invoices", orgID), body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown organization is rejected before writing", func(t *testing.T) {
		router, m := newRouter(t)

		m.workspace.EXPECT().Snapshot(gomock.Any(), orgID).Return(nil, organization.ErrNotFound)
		m.workspace.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).Times(0)

		body := fmt.Sprintf(`{"customer_id": %q, "action": "issue", "currency_code": "EUR",
			"items": [{"description": "Hosting", "quantity": 1, "unit_price": 10, "tax_rate": 21}]}`, custID)

		rec := do(router, http.MethodPost, fmt.Sprintf("/organizations/%s/invoices", orgID), body)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "organization not found")
	})

	t.Run("malformed body", func(t *testing.T) {
		router, _ := newRouter(t)

		rec := do(router, http.MethodPost, fmt.Sprintf("/organizations/%s/invoices", orgID), "{")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_Get(t *testing.T) {
	router, m := newRouter(t)

	id := uuid.New()
	m.invoices.EXPECT().Get(gomock.Any(), id).Return(nil, invoice.ErrNotFound)

	rec := do(router, http.MethodGet, "/invoices/"+id.String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(router, http.MethodGet, "/invoices/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_UpdateStatus(t *testing.T) {
	type testCase struct {
		name     string
		body     string
		setup    func(m mocks, id uuid.UUID)
		wantCode int
	}

	tests := []testCase{
		{
			name: "paid",
			body: `{"status": "PAID"}`,
			setup: func(m mocks, id uuid.UUID) {
				m.workspace.EXPECT().UpdateInvoiceStatus(gomock.Any(), id, invoice.StatusPaid).
					Return(&invoice.Invoice{ID: id, Status: invoice.StatusPaid}, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:     "unknown status",
			body:     `{"status": "archived"}`,
			setup:    func(mocks, uuid.UUID) {},
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "transition refused",
			body: `{"status": "draft"}`,
			setup: func(m mocks, id uuid.UUID) {
				m.workspace.EXPECT().UpdateInvoiceStatus(gomock.Any(), id, invoice.StatusDraft).
					Return(nil, fmt.Errorf("%w: void to draft", invoice.ErrTransitionNotAllowed))
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "remote failure",
			body: `{"status": "void"}`,
			setup: func(m mocks, id uuid.UUID) {
				m.workspace.EXPECT().UpdateInvoiceStatus(gomock.Any(), id, invoice.StatusVoid).
					Return(nil, fmt.Errorf("updating status: %w", io.ErrUnexpectedEOF))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router, m := newRouter(t)
			id := uuid.New()
			tc.setup(m, id)

			rec := do(router, http.MethodPatch, "/invoices/"+id.String()+"/status", tc.body)
			assert.Equal(t, tc.wantCode, rec.Code)
		})
	}
}

func TestHandler_Preview(t *testing.T) {
	router, _ := newRouter(t)

	body := `{"currency_code": "EUR", "items": [
		{"id": "a", "description": "Design", "quantity": 2, "unit_price": 100, "tax_rate": 21},
		{"id": "b", "description": "", "quantity": 1, "unit_price": 0.5, "tax_rate": 0}
	]}`

	rec := do(router, http.MethodPost, "/invoices/preview", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var got previewResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))

	require.Len(t, got.Lines, 2)
	assert.Equal(t, "a", got.Lines[0].ID)
	assert.InDelta(t, 242, got.Lines[0].Total, 1e-9)
	assert.InDelta(t, 200.5, got.Totals.Subtotal, 1e-9)
	assert.InDelta(t, 42, got.Totals.Tax, 1e-9)
	assert.Equal(t, "€242.50", got.Totals.TotalLabel)
}

func TestHandler_Document(t *testing.T) {
	router, m := newRouter(t)

	id := uuid.New()
	m.documents.EXPECT().Render(gomock.Any(), gomock.Any(), id).
		DoAndReturn(func(_ context.Context, w io.Writer, _ uuid.UUID) (string, error) {
			_, err := io.WriteString(w, "<html>INV-2026-000001</html>")
			return "INV-2026-000001.html", err
		})

	rec := do(router, http.MethodGet, "/invoices/"+id.String()+"/document", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `inline; filename="INV-2026-000001.html"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "<html>INV-2026-000001</html>", rec.Body.String())
}

func TestHandler_Export(t *testing.T) {
	router, m := newRouter(t)

	m.documents.EXPECT().
		Bundle(gomock.Any(), gomock.Any(), orgID, invoice.ListFilter{Status: invoice.FilterPaid, Range: invoice.RangeAll}).
		DoAndReturn(func(_ context.Context, w io.Writer, _ uuid.UUID, _ invoice.ListFilter) (int, error) {
			_, err := io.WriteString(w, "PK")
			return 3, err
		})

	rec := do(router, http.MethodPost, fmt.Sprintf("/organizations/%s/invoices/export", orgID), `{"status": "paid", "range": "all"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))
	assert.Equal(t, "3", rec.Header().Get("X-Invoice-Count"))
	assert.Equal(t, "PK", rec.Body.String())
}
