package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tazeverywhere/dataquery/pkg/config"
	"github.com/tazeverywhere/dataquery/pkg/ratelimit"
)

// NewRouter wires the validate and health routes. The rate limiter only guards
// validation, health checks are never throttled.
func NewRouter(validate *ValidateHandler, limiter *ratelimit.Limiter) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Group(func(r chi.Router) {
		if limiter != nil {
			r.Use(ratelimit.Middleware(limiter, http.HandlerFunc(RateLimited)))
		}
		r.Get(config.ValidateRoute, validate.Validate)
		r.Post(config.ValidateRoute, validate.Validate)
	})

	r.Get(config.HealthRoute, Health)
	return r
}
