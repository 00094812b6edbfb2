// internal/wire/wire.go
package wire

import (
	"net/http"

	"field-booking/internal/adaptor"
	"field-booking/internal/data/repository"
	"field-booking/internal/usecase"
	"field-booking/pkg/middleware"
	"field-booking/pkg/mq"
	"field-booking/pkg/ratelimit"
	"field-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired router.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Options carries the collaborators built outside the wire package. Nil
// fields fall back to in-process defaults derived from config.
type Options struct {
	Publisher   mq.Publisher
	AuthLimiter ratelimit.Limiter
	AdminPolicy middleware.AdminPolicy
}

// Wiring builds services, handlers and the router.
func Wiring(repo *repository.Repository, opts Options, config *utils.Config, logger *zap.Logger) *App {
	if opts.Publisher == nil {
		opts.Publisher = mq.NopPublisher{}
	}
	if opts.AuthLimiter == nil && config.RateLimit.Limit > 0 {
		opts.AuthLimiter = ratelimit.NewMemory(config.RateLimit.Limit, config.RateLimit.Window)
	}
	if opts.AdminPolicy == nil {
		opts.AdminPolicy = middleware.NewStaticTokenPolicy(config.Admin.Token)
	}

	service := usecase.NewService(repo, opts.Publisher, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, opts, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	opts Options,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.CORSOrigins))

	adminGate := middleware.AdminGate(opts.AdminPolicy, logger)

	r.Route("/api", func(r chi.Router) {
		wireAuth(r, handler.Auth, opts.AuthLimiter, logger)
		wireField(r, handler.Field, adminGate)
		wireReservation(r, handler.Reservation, adminGate)
		wirePayment(r, handler.Payment)
		wireNotification(r, handler.Notification)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// browser client
	if config.App.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(config.App.StaticDir)))
	}

	return r
}
