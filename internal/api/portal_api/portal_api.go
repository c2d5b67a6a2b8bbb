package portal_api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/BearBump/DVCPortal/internal/apperr"
	"github.com/BearBump/DVCPortal/internal/logging"
	"github.com/BearBump/DVCPortal/internal/services/catalog"
	"github.com/BearBump/DVCPortal/internal/services/elections"
	"github.com/BearBump/DVCPortal/internal/services/submissions"
	"github.com/BearBump/DVCPortal/internal/services/tracking"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RateLimiter is satisfied by rediscache.RateLimiter.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, int64, error)
}

type Deps struct {
	Catalog     *catalog.Service
	Tracking    *tracking.Service
	Submissions *submissions.Service
	Elections   *elections.Service

	// Limiter throttles POST submissions per client. Nil disables it.
	Limiter         RateLimiter
	SubmitPerMinute int64

	// TrustProxy keys clients by X-Forwarded-For / X-Real-IP instead of
	// the connection address.
	TrustProxy bool

	Logger *slog.Logger
}

type PortalAPI struct {
	catalog     *catalog.Service
	tracking    *tracking.Service
	submissions *submissions.Service
	elections   *elections.Service

	limiter         RateLimiter
	submitPerMinute int64
	trustProxy      bool

	log *slog.Logger
	now func() time.Time
}

func New(d Deps) *PortalAPI {
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}
	return &PortalAPI{
		catalog:         d.Catalog,
		tracking:        d.Tracking,
		submissions:     d.Submissions,
		elections:       d.Elections,
		limiter:         d.Limiter,
		submitPerMinute: d.SubmitPerMinute,
		trustProxy:      d.TrustProxy,
		log:             log,
		now:             time.Now,
	}
}

// Mount registers the /api routes on r.
func (a *PortalAPI) Mount(r chi.Router) {
	r.Use(middleware.RequestID)
	if a.trustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(logging.RequestLogger(a.log))
	r.Use(a.recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeFail(w, http.StatusNotFound, apperr.MsgRouteNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeFail(w, http.StatusNotFound, apperr.MsgRouteNotFound)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", a.health)

		r.Get("/categories", a.listCategories)
		r.Get("/categories/{id}/services", a.categoryServices)

		r.Get("/services", a.listServices)
		r.Get("/services/popular", a.popularServices)
		r.Get("/services/{id}", a.serviceDetail)
		r.Get("/services/{id}/reviews", a.listReviews)

		r.Get("/search", a.search)
		r.Get("/news", a.news)
		r.Get("/statistics", a.statistics)

		r.Get("/tracking/{code}", a.getTracking)
		r.Get("/contact/{ticketId}", a.getContact)
		r.Get("/applications/{code}", a.getApplication)
		r.Get("/appointments/{code}", a.getAppointment)
		r.Get("/support/tickets/{code}", a.getSupportTicket)

		r.Route("/elections", func(r chi.Router) {
			r.Get("/", a.electionInfo)
			r.Get("/subscriptions/{id}", a.getSubscription)
			r.Get("/polling-stations", a.pollingStations)
			r.Get("/news", a.electionNews)
			r.Get("/candidates", a.candidates)
			r.Get("/statistics", a.electionStatistics)
			r.Get("/faq", a.faq)
			r.Get("/calendar", a.calendar)
			r.Get("/feedback/{code}", a.getFeedback)
			r.Get("/results", a.results)

			r.With(a.rateLimit).Post("/subscribe", a.subscribe)
			r.With(a.rateLimit).Post("/check-voter", a.checkVoter)
			r.With(a.rateLimit).Post("/feedback", a.submitFeedback)
		})

		r.Group(func(r chi.Router) {
			r.Use(a.rateLimit)
			r.Post("/services/{id}/reviews", a.createReview)
			r.Post("/contact", a.createContact)
			r.Post("/applications", a.createApplication)
			r.Post("/appointments", a.createAppointment)
			r.Post("/support/tickets", a.createSupportTicket)
		})
	})
}

// Handler returns a router with only the API mounted.
func (a *PortalAPI) Handler() http.Handler {
	r := chi.NewRouter()
	a.Mount(r)
	return r
}

func (a *PortalAPI) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{
		Success:   true,
		Message:   "API is running",
		Timestamp: a.now().UTC().Format(time.RFC3339Nano),
	})
}
