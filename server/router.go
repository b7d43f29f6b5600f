// Package server exposes the staffing planner over HTTP.
package server

import (
	"clinic-staffing/config"
	"clinic-staffing/metrics"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter wires the API routes, middleware and the metrics endpoint.
func NewRouter(cfg *config.Config, h *Handler, log *zap.Logger) *chi.Mux {
	router := chi.NewRouter()

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: strings.Split(cfg.App.AllowedOrigins, ","),
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	router.Use(httprate.LimitByIP(cfg.App.MaxRequests, time.Second))
	router.Use(middleware.Recoverer)
	router.Use(RequestLogger(log))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeSuccess(w, http.StatusOK, "ok", nil)
	})
	router.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	router.Route(fmt.Sprintf("/%s", cfg.App.EndpointPrefix), func(r chi.Router) {
		r.Route(fmt.Sprintf("/%s", cfg.App.Version), func(r chi.Router) {
			r.Get("/profiles", h.ListProfiles)
			r.Route("/staffing", func(r chi.Router) {
				r.Get("/forecast", h.Forecast)
				r.Post("/manual", h.Manual)
			})
		})
	})

	return router
}

// RequestLogger logs every request and counts it by route pattern.
func RequestLogger(log *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			metrics.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(ww.Status())).Inc()

			log.Info("request",
				zap.String("method", r.Method),
				zap.String("route", route),
				zap.String("remote", r.RemoteAddr),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
