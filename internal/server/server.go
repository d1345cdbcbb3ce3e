// Package server exposes the worker manager's health, readiness and
// metrics endpoints.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"feasibility-workers/internal/common/logger"
)

// Checker reports whether one dependency is reachable.
type Checker func(ctx context.Context) error

type Options struct {
	Service  string
	Version  string
	Checkers map[string]Checker
	// CheckTimeout bounds each readiness probe; defaults to 2s.
	CheckTimeout time.Duration
	Metrics      http.Handler
	Logger       logger.Logger
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service,omitempty"`
	Version string `json:"version,omitempty"`
	Time    string `json:"time"`
}

type readyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
	Time   string            `json:"time"`
}

func NewRouter(opts Options) http.Handler {
	if opts.CheckTimeout <= 0 {
		opts.CheckTimeout = 2 * time.Second
	}
	if opts.Metrics == nil {
		opts.Metrics = promhttp.Handler()
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNoOpLogger()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(opts.Logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler(opts))
	r.Get("/ready", readyHandler(opts))
	r.Handle("/metrics", opts.Metrics)

	return r
}

func healthHandler(opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{
			Status:  "healthy",
			Service: opts.Service,
			Version: opts.Version,
			Time:    time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// readyHandler answers 503 as soon as one checker fails.
func readyHandler(opts Options) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names := make([]string, 0, len(opts.Checkers))
		for name := range opts.Checkers {
			names = append(names, name)
		}
		sort.Strings(names)

		resp := readyResponse{Status: "ready", Checks: make(map[string]string, len(names))}
		status := http.StatusOK
		for _, name := range names {
			ctx, cancel := context.WithTimeout(r.Context(), opts.CheckTimeout)
			err := opts.Checkers[name](ctx)
			cancel()

			if err != nil {
				resp.Checks[name] = err.Error()
				resp.Status = "not_ready"
				status = http.StatusServiceUnavailable
				opts.Logger.Warn("readiness check failed", map[string]interface{}{
					"dependency": name,
					"error":      err.Error(),
				})
				continue
			}
			resp.Checks[name] = "ok"
		}
		resp.Time = time.Now().UTC().Format(time.RFC3339)
		writeJSON(w, status, resp)
	}
}

func requestLogger(log logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			fields := map[string]interface{}{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"latency":    time.Since(start).String(),
				"request_id": middleware.GetReqID(r.Context()),
			}
			if ww.Status() >= 500 {
				log.Error("http request", fields)
				return
			}
			log.Debug("http request", fields)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
