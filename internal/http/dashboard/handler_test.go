package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/billkerfy/internal/dashboard"
	"github.com/MrJamesThe3rd/billkerfy/internal/invoice"
	"github.com/MrJamesThe3rd/billkerfy/internal/organization"
)

func newRouter(t *testing.T) (http.Handler, *MockService) {
	ctrl := gomock.NewController(t)
	svc := NewMockService(ctrl)

	r := chi.NewRouter()
	r.Route("/organizations/{orgID}/dashboard", NewHandler(svc).Routes)

	return r, svc
}

func TestHandler_Summary(t *testing.T) {
	router, svc := newRouter(t)
	orgID := uuid.New()

	svc.EXPECT().Summary(gomock.Any(), orgID).Return(dashboard.Summary{
		CurrencyCode: "USD",
		TotalBilled:  450,
		Metrics: []dashboard.Metric{
			{Key: dashboard.MetricTotal, Title: "Total billed", Amount: 450, Value: "$450.00", Trend: dashboard.Trend{Value: "+275%", Direction: dashboard.Up}},
		},
		Revenue: []dashboard.RevenuePoint{{Year: 2026, Month: time.June, Label: "Jun", Amount: 300}},
		Recent: []dashboard.Activity{
			{Number: "INV-2026-000001", CustomerName: "Acme SL", Amount: 1234.5, CurrencyCode: "USD", Status: invoice.DisplayPaid, Tone: invoice.TonePaid},
		},
	}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/organizations/"+orgID.String()+"/dashboard", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got summaryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))

	require.Len(t, got.Metrics, 1)
	assert.Equal(t, "+275%", got.Metrics[0].Trend)
	assert.Equal(t, dashboard.Up, got.Metrics[0].Direction)
	require.Len(t, got.Revenue, 1)
	assert.Equal(t, 6, got.Revenue[0].Month)
	require.Len(t, got.Recent, 1)
	assert.Equal(t, "$1,234.50", got.Recent[0].AmountLabel)
}

func TestHandler_Summary_Errors(t *testing.T) {
	type testCase struct {
		name     string
		err      error
		wantCode int
	}

	tests := []testCase{
		{name: "unknown organization", err: organization.ErrNotFound, wantCode: http.StatusNotFound},
		{name: "load failure", err: errors.New("timeout"), wantCode: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router, svc := newRouter(t)
			orgID := uuid.New()

			svc.EXPECT().Summary(gomock.Any(), orgID).Return(dashboard.Summary{}, tc.err)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/organizations/"+orgID.String()+"/dashboard", nil))
			assert.Equal(t, tc.wantCode, rec.Code)
		})
	}
}
