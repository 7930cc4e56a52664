// Package server exposes a loaded resource over HTTP, so browsers and other
// services can pull the SDK through one shared, cached copy.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	skerrors "github.com/vnykmshr/shellkit/pkg/common/errors"
	"github.com/vnykmshr/shellkit/pkg/loader"
	"github.com/vnykmshr/shellkit/pkg/timing"
)

// Options configures a Server.
type Options struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Gatherer     prometheus.Gatherer // nil disables /metrics
	Logger       *zap.Logger
	Version      string

	// RateLimit caps /resource at this many requests per second, with bursts
	// of up to Burst. Zero disables limiting.
	RateLimit float64
	Burst     int
	Clock     timing.Clock
}

// Server serves the loader's resource.
type Server struct {
	router *chi.Mux
	server *http.Server
	loader *loader.Loader
	logger *zap.Logger
	opts   Options
}

// New creates a Server for l.
func New(l *loader.Loader, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(RequestID)
	r.Use(accessLog(opts.Logger))
	r.Use(middleware.Recoverer)

	s := &Server{
		router: r,
		loader: l,
		logger: opts.Logger,
		opts:   opts,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.Get("/health", s.health)
	s.router.Group(func(r chi.Router) {
		if s.opts.RateLimit > 0 {
			r.Use(rateLimit(newTokenBucket(s.opts.RateLimit, s.opts.Burst, s.opts.Clock)))
		}
		r.Get("/resource", s.resource)
		r.Head("/resource", s.resource)
	})
	if s.opts.Gatherer != nil {
		s.router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{}))
	}
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on Options.Addr until Shutdown.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.opts.Addr,
		Handler:      s.router,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}
	s.logger.Info("starting HTTP server", zap.String("addr", s.opts.Addr))

	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	s.logger.Info("shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

type healthResponse struct {
	Status  string `json:"status"`
	Loaded  bool   `json:"loaded"`
	Version string `json:"version,omitempty"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	status := healthResponse{Status: "ok", Loaded: s.loader.Loaded(), Version: s.opts.Version}
	if s.loader.Err() != nil {
		status.Status = "degraded"
	}
	writeJSON(w, http.StatusOK, status)
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) resource(w http.ResponseWriter, r *http.Request) {
	res, err := s.loader.Load(r.Context())
	if err != nil {
		code := http.StatusBadGateway
		switch {
		case errors.Is(err, skerrors.ErrTimeout):
			code = http.StatusGatewayTimeout
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			// client went away
			return
		}
		s.logger.Warn("resource unavailable", zap.Error(err), zap.String("request_id", GetRequestID(r.Context())))
		writeJSON(w, code, errorResponse{Error: err.Error(), RequestID: GetRequestID(r.Context())})
		return
	}

	etag := strconv.Quote(res.Checksum)
	h := w.Header()
	h.Set("ETag", etag)
	h.Set("X-Resource-Source", string(res.Source))
	if res.ContentType != "" {
		h.Set("Content-Type", res.ContentType)
	}
	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	h.Set("Content-Length", strconv.Itoa(res.Size()))
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write(res.Body)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
