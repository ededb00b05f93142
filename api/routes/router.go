package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/printdeskhq/printdesk-backend/api/controllers"
	"github.com/printdeskhq/printdesk-backend/api/middleware"
	"github.com/printdeskhq/printdesk-backend/internal/assignments"
	"github.com/printdeskhq/printdesk-backend/internal/recommendations"
	"github.com/printdeskhq/printdesk-backend/internal/settings"
	"github.com/printdeskhq/printdesk-backend/internal/suppliers"
	"github.com/printdeskhq/printdesk-backend/pkg/config"
	"github.com/printdeskhq/printdesk-backend/pkg/enums"
	"github.com/printdeskhq/printdesk-backend/pkg/logger"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       controllers.Pinger
	Cache    controllers.Pinger
	Registry *prometheus.Registry

	Recommendations recommendations.Service
	Assignments     assignments.Service
	Suppliers       suppliers.Service
	Settings        settings.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Cache))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	backOffice := []string{string(enums.UserRoleAdmin), string(enums.UserRoleStaff)}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAnyRole(logg, backOffice...))

			r.Route("/quotes/{quoteId}", func(r chi.Router) {
				r.Post("/recommendations", controllers.QuoteRecommendations(deps.Recommendations, logg))
				r.Post("/assignments", controllers.AssignSupplier(deps.Assignments, logg))
				r.Post("/jobs/cancel", controllers.CancelQuoteJobs(deps.Assignments, logg))
			})

			r.Route("/jobs/{jobId}", func(r chi.Router) {
				r.Post("/cancel", controllers.CancelJob(deps.Assignments, logg))
				r.Patch("/", controllers.CorrectJob(deps.Assignments, logg))
			})
		})

		r.Route("/supplier/prices", func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.UserRoleSupplier), logg))
			r.Put("/", controllers.PublishSupplierPrices(deps.Suppliers, logg))
			r.Get("/", controllers.ListSupplierPrices(deps.Suppliers, logg))
		})

		r.Route("/settings/scoring-weights", func(r chi.Router) {
			r.With(middleware.RequireAnyRole(logg, backOffice...)).
				Get("/", controllers.GetScoringWeights(deps.Settings, logg))
			r.With(middleware.RequireRole(string(enums.UserRoleAdmin), logg)).
				Put("/", controllers.UpdateScoringWeights(deps.Settings, logg))
		})
	})

	return r
}
