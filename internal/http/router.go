package http

import (
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/stefifm/dashboard/internal/http/auth"
	"github.com/stefifm/dashboard/internal/http/invoice"
)

type Options struct {
	AllowedOrigins []string
	// Sentry enables per-request hubs so suppressed errors are reported.
	Sentry bool
}

func New(opts Options, authV1 *auth.Handler, invoicesV1 *invoice.Handler) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if opts.Sentry {
		router.Use(sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle)
	}

	router.Group(func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/x-www-form-urlencoded", "multipart/form-data"))
		authV1.Routes(r)
	})

	router.Route("/dashboard", func(r chi.Router) {
		r.Use(authV1.RequireSession)
		invoicesV1.Routes(r)
	})

	return router
}
