package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/javedfarm/dairybook/internal/http/backup"
	"github.com/javedfarm/dairybook/internal/http/billing"
	"github.com/javedfarm/dairybook/internal/http/customer"
	"github.com/javedfarm/dairybook/internal/http/daily"
	"github.com/javedfarm/dairybook/internal/http/dashboard"
	"github.com/javedfarm/dairybook/internal/http/ledgertx"
)

func New(
	customersV1 *customer.Handler,
	dailyV1 *daily.Handler,
	transactionsV1 *ledgertx.Handler,
	billingV1 *billing.Handler,
	dashboardV1 *dashboard.Handler,
	backupV1 *backup.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/customers", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			customersV1.Routes(r)
		})

		r.Route("/daily", func(r chi.Router) {
			dailyV1.Routes(r)
		})

		r.Route("/transactions", func(r chi.Router) {
			transactionsV1.Routes(r)
		})

		r.Route("/billing", func(r chi.Router) {
			billingV1.Routes(r)
		})

		r.Route("/dashboard", func(r chi.Router) {
			dashboardV1.Routes(r)
		})

		r.Route("/backup", func(r chi.Router) {
			backupV1.Routes(r)
		})
	})

	return router
}
