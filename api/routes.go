package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"playstore-insights/utils"
)

// NewRouter wires every route of h onto a chi router. The metrics endpoint
// serves gatherer.
func NewRouter(h *Handler, gatherer prometheus.Gatherer) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Get("/health", h.Health)
		r.Get("/status", h.Status)

		r.Route("/filters", func(r chi.Router) {
			r.Get("/", h.GetFilters)
			r.Put("/", h.PutFilters)
			r.Delete("/", h.DeleteFilters)
			r.Get("/options", h.FilterOptions)
		})

		r.Route("/views", func(r chi.Router) {
			r.Get("/top", h.Top)
			r.Get("/correlations/{pair}", h.Correlation)
			r.Get("/{view}", h.View)
		})
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		fail(w, req, http.StatusNotFound, "not found")
	})
	return r
}

func requestLogger(logger *utils.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("[api] %s %s %d %v (%s)", r.Method, r.URL.Path, ww.Status(), time.Since(start),
				middleware.GetReqID(r.Context()))
		})
	}
}
