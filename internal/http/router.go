package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/billkerfy/internal/http/customer"
	"github.com/MrJamesThe3rd/billkerfy/internal/http/dashboard"
	"github.com/MrJamesThe3rd/billkerfy/internal/http/invoice"
	"github.com/MrJamesThe3rd/billkerfy/internal/http/organization"
)

func New(
	allowedOrigins []string,
	organizationsV1 *organization.Handler,
	customersV1 *customer.Handler,
	invoicesV1 *invoice.Handler,
	dashboardV1 *dashboard.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Invoice-Count"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/organizations", func(r chi.Router) {
			r.With(middleware.AllowContentType("application/json")).Group(organizationsV1.Routes)

			r.Route("/{orgID}", func(r chi.Router) {
				organizationsV1.ItemRoutes(r)

				r.Route("/customers", customersV1.OrganizationRoutes)
				r.Route("/invoices", invoicesV1.OrganizationRoutes)
				r.Route("/dashboard", dashboardV1.Routes)
			})
		})

		r.Route("/customers", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			customersV1.Routes(r)
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			invoicesV1.Routes(r)
		})
	})

	return router
}
