package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/easybody/easybody-backend/api/controllers"
	"github.com/easybody/easybody-backend/api/middleware"
	"github.com/easybody/easybody-backend/internal/associations"
	"github.com/easybody/easybody-backend/internal/gyms"
	"github.com/easybody/easybody-backend/internal/media"
	"github.com/easybody/easybody-backend/internal/offers"
	"github.com/easybody/easybody-backend/internal/ptusers"
	"github.com/easybody/easybody-backend/internal/ratings"
	"github.com/easybody/easybody-backend/internal/reports"
	"github.com/easybody/easybody-backend/pkg/config"
	"github.com/easybody/easybody-backend/pkg/enums"
	"github.com/easybody/easybody-backend/pkg/logger"
	"github.com/easybody/easybody-backend/pkg/metrics"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config *config.Config
	Logger *logger.Logger

	DBPinger    controllers.Pinger
	RedisPinger controllers.Pinger

	Identity middleware.IdentityResolver

	HTTPMetrics       *metrics.HTTPMetrics
	ModerationMetrics *metrics.ModerationMetrics
	MetricsHandler    http.Handler

	Gyms         gyms.Service
	PTUsers      ptusers.Service
	Offers       offers.Service
	Ratings      ratings.Service
	Associations associations.Service
	Reports      reports.Service
	Media        media.Service
}

// NewRouter assembles the full HTTP surface.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.Recoverer(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DBPinger, deps.RedisPinger))
	})

	metricsHandler := deps.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/gyms", func(r chi.Router) {
			r.Get("/", controllers.GymList(deps.Gyms, logg))
			r.Get("/search", controllers.GymSearch(deps.Gyms, logg))
			r.Get("/near", controllers.GymNear(deps.Gyms, logg))
			r.Get("/{id}", controllers.GymGet(deps.Gyms, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, deps.Identity, logg))
				r.Post("/", controllers.GymCreate(deps.Gyms, logg))
				r.Put("/{id}", controllers.GymUpdate(deps.Gyms, logg))
			})
		})

		r.Route("/pt-users", func(r chi.Router) {
			r.Get("/", controllers.PTUserList(deps.PTUsers, logg))
			r.Get("/near", controllers.PTUserNear(deps.PTUsers, logg))
			r.Get("/by-user/{userId}", controllers.PTUserByUser(deps.PTUsers, logg))
			r.Get("/{id}", controllers.PTUserGet(deps.PTUsers, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, deps.Identity, logg))
				r.Post("/", controllers.PTUserCreate(deps.PTUsers, logg))
				r.Put("/{id}", controllers.PTUserUpdate(deps.PTUsers, logg))
			})
		})

		r.Route("/offers", func(r chi.Router) {
			r.With(middleware.OptionalAuth(cfg.JWT, deps.Identity, logg)).Get("/{id}", controllers.OfferGet(deps.Offers, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, deps.Identity, logg))
				r.Post("/", controllers.OfferCreate(deps.Offers, logg))
				r.Put("/{id}", controllers.OfferUpdate(deps.Offers, logg))
			})
		})

		r.Post("/search/offers", controllers.OfferSearch(deps.Offers, logg))

		r.Route("/ratings", func(r chi.Router) {
			r.Get("/offer/{offerId}", controllers.RatingListByOffer(deps.Ratings, logg))
			r.With(middleware.Auth(cfg.JWT, deps.Identity, logg)).Post("/", controllers.RatingCreate(deps.Ratings, logg))
		})

		r.Route("/associations", func(r chi.Router) {
			r.Get("/gym/{gymId}", controllers.AssociationListByGym(deps.Associations, logg))
			r.Get("/pt/{ptUserId}", controllers.AssociationListByPT(deps.Associations, logg))
			r.With(middleware.Auth(cfg.JWT, deps.Identity, logg)).Post("/", controllers.AssociationRequest(deps.Associations, logg))
		})

		r.With(middleware.Auth(cfg.JWT, deps.Identity, logg)).Post("/reports", controllers.ReportCreate(deps.Reports, logg))
		r.With(middleware.Auth(cfg.JWT, deps.Identity, logg)).Post("/media/upload-url", controllers.MediaUploadURL(deps.Media, logg))

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Identity, logg))
			r.Use(middleware.RequireRole(enums.UserRoleAdmin.String(), logg))

			r.Route("/offers", func(r chi.Router) {
				r.Get("/pending", controllers.AdminPendingOffers(deps.Offers, deps.ModerationMetrics, logg))
				r.Post("/{id}/moderate", controllers.AdminModerateOffer(deps.Offers, deps.ModerationMetrics, logg))
			})
			r.Route("/associations", func(r chi.Router) {
				r.Get("/pending", controllers.AdminPendingAssociations(deps.Associations, deps.ModerationMetrics, logg))
				r.Post("/{id}/moderate", controllers.AdminModerateAssociation(deps.Associations, deps.ModerationMetrics, logg))
			})
			r.Route("/reports", func(r chi.Router) {
				r.Get("/", controllers.AdminListReports(deps.Reports, deps.ModerationMetrics, logg))
				r.Post("/{id}/resolve", controllers.AdminResolveReport(deps.Reports, deps.ModerationMetrics, logg))
				r.Post("/{id}/dismiss", controllers.AdminDismissReport(deps.Reports, deps.ModerationMetrics, logg))
			})
		})
	})

	return r
}
