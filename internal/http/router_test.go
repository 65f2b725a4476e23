package http_test

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	billhttp "github.com/MrJamesThe3rd/billkerfy/internal/http"
	"github.com/MrJamesThe3rd/billkerfy/internal/http/customer"
	"github.com/MrJamesThe3rd/billkerfy/internal/http/dashboard"
	"github.com/MrJamesThe3rd/billkerfy/internal/http/invoice"
	"github.com/MrJamesThe3rd/billkerfy/internal/http/organization"
)

func newRouter() http.Handler {
	return billhttp.New(
		[]string{"https://app.example.com"},
		organization.NewHandler(nil, nil),
		customer.NewHandler(nil, nil, nil),
		invoice.NewHandler(nil, nil, nil),
		dashboard.NewHandler(nil),
	)
}

func TestRouter_Routes(t *testing.T) {
	router, ok := newRouter().(chi.Routes)
	require.True(t, ok)

	var got []string

	err := chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		route = strings.TrimSuffix(strings.ReplaceAll(route, "/*", ""), "/")
		got = append(got, method+" "+route)

		return nil
	})
	require.NoError(t, err)

	want := []string{
		"GET /api/v1/organizations",
		"POST /api/v1/organizations",
		"GET /api/v1/organizations/{orgID}",
		"POST /api/v1/organizations/{orgID}/reload",
		"GET /api/v1/organizations/{orgID}/customers",
		"POST /api/v1/organizations/{orgID}/customers",
		"POST /api/v1/organizations/{orgID}/customers/import",
		"GET /api/v1/organizations/{orgID}/customers/billing",
		"GET /api/v1/organizations/{orgID}/invoices",
		"POST /api/v1/organizations/{orgID}/invoices",
		"POST /api/v1/organizations/{orgID}/invoices/export",
		"GET /api/v1/organizations/{orgID}/dashboard",
		"PATCH /api/v1/customers/{id}",
		"DELETE /api/v1/customers/{id}",
		"GET /api/v1/invoices/{id}",
		"PATCH /api/v1/invoices/{id}/status",
		"GET /api/v1/invoices/{id}/document",
		"POST /api/v1/invoices/preview",
	}

	sort.Strings(got)
	sort.Strings(want)

	for _, route := range want {
		assert.Contains(t, got, route)
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/invoices/preview", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)

	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_InvalidID(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/invoices/nope", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
