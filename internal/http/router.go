package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/centralcaixa/backoffice/internal/http/auth"
	"github.com/centralcaixa/backoffice/internal/http/coupon"
	"github.com/centralcaixa/backoffice/internal/http/dashboard"
	"github.com/centralcaixa/backoffice/internal/http/importcsv"
	"github.com/centralcaixa/backoffice/internal/http/plan"
	"github.com/centralcaixa/backoffice/internal/http/transaction"
	"github.com/centralcaixa/backoffice/internal/http/user"
)

func New(
	jwtSecret string,
	transactionsV1 *transaction.Handler,
	dashboardsV1 *dashboard.Handler,
	couponsV1 *coupon.Handler,
	plansV1 *plan.Handler,
	usersV1 *user.Handler,
	importV1 *importcsv.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(jwtSecret))

		r.Route("/transactions", func(r chi.Router) {
			transactionsV1.Routes(r)
		})

		r.Route("/dashboards", dashboardsV1.Routes)

		r.Route("/coupons", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			couponsV1.Routes(r)
		})

		r.Route("/plans", plansV1.Routes)

		r.Route("/users", func(r chi.Router) {
			usersV1.Routes(r)
		})

		r.Route("/import", importV1.Routes)
	})

	return router
}
