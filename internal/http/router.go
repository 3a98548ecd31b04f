package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/cambio/internal/http/auth"
	"github.com/MrJamesThe3rd/cambio/internal/http/balance"
	"github.com/MrJamesThe3rd/cambio/internal/http/bank"
	"github.com/MrJamesThe3rd/cambio/internal/http/caja"
	"github.com/MrJamesThe3rd/cambio/internal/http/client"
	"github.com/MrJamesThe3rd/cambio/internal/http/currency"
	authMiddleware "github.com/MrJamesThe3rd/cambio/internal/http/middleware"
	"github.com/MrJamesThe3rd/cambio/internal/http/operationtype"
	"github.com/MrJamesThe3rd/cambio/internal/http/operator"
	"github.com/MrJamesThe3rd/cambio/internal/http/sync"
	"github.com/MrJamesThe3rd/cambio/internal/http/transaction"
	domainOperator "github.com/MrJamesThe3rd/cambio/internal/operator"
)

type Handlers struct {
	Auth           *auth.Handler
	Caja           *caja.Handler
	Balances       *balance.Handler
	Transactions   *transaction.Handler
	Clients        *client.Handler
	Currencies     *currency.Handler
	OperationTypes *operationtype.Handler
	Operators      *operator.Handler
	Banks          *bank.Handler
	Sync           *sync.Handler
}

type Options struct {
	CORSOrigins []string
	Tokens      authMiddleware.TokenParser
}

func New(h Handlers, opts Options) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		authenticate := authMiddleware.Authenticate(opts.Tokens)

		r.Route("/auth", func(r chi.Router) {
			h.Auth.PublicRoutes(r)
			r.With(authenticate).Group(h.Auth.Routes)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Route("/caja", h.Caja.Routes)
			r.Route("/balances", h.Balances.Routes)
			r.Route("/operation-types", h.OperationTypes.Routes)
			r.Route("/sync", h.Sync.Routes)

			r.Route("/transactions", func(r chi.Router) {
				r.Use(authMiddleware.RequirePermission(func(p domainOperator.Permissions) bool { return p.Transactions }))
				h.Transactions.Routes(r)
			})

			r.Route("/clients", func(r chi.Router) {
				r.Use(authMiddleware.RequirePermission(func(p domainOperator.Permissions) bool { return p.Clients }))
				h.Clients.Routes(r)
			})

			r.Route("/currencies", func(r chi.Router) {
				r.Use(authMiddleware.RequirePermission(func(p domainOperator.Permissions) bool { return p.Currencies }))
				h.Currencies.CurrencyRoutes(r)
			})

			r.Route("/cryptos", func(r chi.Router) {
				r.Use(authMiddleware.RequirePermission(func(p domainOperator.Permissions) bool { return p.Cryptos }))
				h.Currencies.CryptoRoutes(r)
			})

			r.Route("/operators", func(r chi.Router) {
				r.Use(authMiddleware.RequirePermission(func(p domainOperator.Permissions) bool { return p.Operators }))
				h.Operators.Routes(r)
			})

			r.Route("/banks", func(r chi.Router) {
				r.Use(authMiddleware.RequirePermission(func(p domainOperator.Permissions) bool { return p.Banks }))
				h.Banks.Routes(r)
			})
		})
	})

	return router
}
