package wire

import (
	"field-booking/internal/adaptor"
	"field-booking/pkg/middleware"
	"field-booking/pkg/ratelimit"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	limiter ratelimit.Limiter,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		// brute-force guard on credential endpoints
		if limiter != nil {
			r.Use(middleware.RateLimit(limiter, log))
		}

		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})
}
