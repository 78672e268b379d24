package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	_ "github.com/rogerio-castellano/product-catalog/docs"
	"github.com/rogerio-castellano/product-catalog/internal/http/handlers"
	mw "github.com/rogerio-castellano/product-catalog/internal/http/middleware"
	rl "github.com/rogerio-castellano/product-catalog/internal/http/rate_limiter"
	"github.com/rogerio-castellano/product-catalog/internal/logger"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Options struct {
	Server         *handlers.Server
	Logger         *logger.Logger
	Requests       mw.RequestObserver
	MetricsHandler http.Handler
	Limiter        rl.Limiter
	CORSOrigins    []string

	// TrustProxyHeaders takes the client address from X-Forwarded-For / X-Real-IP.
	// Only enable it behind a proxy that overwrites those headers.
	TrustProxyHeaders bool
}

func NewRouter(opts Options) http.Handler {
	srv := opts.Server
	r := chi.NewRouter()

	r.Use(mw.Recoverer(opts.Logger))
	if opts.TrustProxyHeaders {
		r.Use(chimw.RealIP)
	}
	r.Use(
		mw.RequestID(opts.Logger),
		mw.Logging(opts.Logger, opts.Requests),
		mw.CORS(opts.CORSOrigins),
	)

	r.Get("/", srv.RootHandler)
	r.Get("/readyz", srv.ReadyHandler)
	if opts.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", opts.MetricsHandler)
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/api", func(r chi.Router) {
		r.Use(mw.RequireReady(srv, opts.Logger))
		if opts.Limiter != nil {
			r.Use(mw.RateLimit(opts.Limiter, opts.Logger))
		}
		r.Get("/products", srv.ListProductsHandler)
	})

	return r
}
