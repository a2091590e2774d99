package webapp

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ogefest/fbrowser/internal/logging"
	"github.com/ogefest/fbrowser/internal/metrics"
)

func router(webapp *WebApp) http.Handler {
	r := chi.NewRouter()
	r.Use(logging.Middleware)
	r.NotFound(webapp.notFoundHandler())
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		webapp.renderError(w, http.StatusMethodNotAllowed, "")
	})

	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(metrics.Middleware)

		r.Get("/listing", webapp.listing())
		r.Get("/listing/{row}/{role}", webapp.field())
		r.Get("/listing/{row}/content", webapp.download())
		r.Get("/breadcrumbs", webapp.breadcrumbs())
		r.Get("/stats", webapp.stats())
		r.Get("/history", webapp.history())

		r.Post("/path", webapp.setPath())
		r.Post("/refresh", webapp.refresh())
		r.Post("/remove", webapp.remove())
		r.Post("/rename", webapp.rename())
	})

	return r
}
