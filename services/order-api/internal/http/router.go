package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"order-demo/shared/pkg/logger"
	"order-demo/shared/pkg/metrics"
)

type Handlers struct {
	Health          http.HandlerFunc
	OrdersProcessed http.HandlerFunc
	PlaceOrder      http.HandlerFunc
}

type RouterOptions struct {
	Service string
	Log     zerolog.Logger
	// Metrics is optional; nil disables request metrics.
	Metrics *metrics.HTTP
}

// NewRouter serves the three public routes. Unknown paths get chi's 404 and
// known paths with another method get chi's 405.
func NewRouter(h *Handlers, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(logger.RequestID)
	r.Use(logger.Middleware(opts.Log))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware(opts.Service))
	}
	r.Use(middleware.Recoverer)

	r.Get("/health", h.Health)
	r.Get("/metrics", h.OrdersProcessed)
	r.Get("/orders", h.PlaceOrder)
	return r
}
