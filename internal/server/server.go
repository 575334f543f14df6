package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lamim/prdforge/internal/config"
	"github.com/lamim/prdforge/internal/metrics"
	"github.com/lamim/prdforge/internal/writer"
)

const sweepInterval = time.Minute

// Options configures a Server
type Options struct {
	Config   config.ServerConfig
	Factory  ControllerFactory
	Exporter *writer.Exporter
	Metrics  *metrics.Collector
	Logger   *slog.Logger
}

// Server exposes wizard sessions over a JSON API and a websocket event stream
type Server struct {
	cfg      config.ServerConfig
	store    *Store
	bus      *EventBus
	exporter *writer.Exporter
	metrics  *metrics.Collector
	logger   *slog.Logger
	upgrader websocket.Upgrader
	handler  http.Handler
}

// New creates a server
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	bus := NewEventBus()
	s := &Server{
		cfg:      opts.Config,
		store:    NewStore(opts.Config.MaxSessions, time.Duration(opts.Config.SessionIdleMinutes)*time.Minute, opts.Factory, bus),
		bus:      bus,
		exporter: opts.Exporter,
		metrics:  opts.Metrics,
		logger:   opts.Logger.With("component", "server"),
	}
	s.upgrader = websocket.Upgrader{CheckOrigin: s.checkOrigin}
	s.handler = s.routes()
	return s
}

// Handler returns the HTTP handler of the server
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/sessions", s.handleCreate)
	mux.HandleFunc("GET /api/sessions/{id}", s.handleGet)
	mux.HandleFunc("DELETE /api/sessions/{id}", s.handleDelete)

	mux.HandleFunc("POST /api/sessions/{id}/problem", s.action(withText(submitProblem)))
	mux.HandleFunc("POST /api/sessions/{id}/answers", s.action(withText(submitAnswer)))
	mux.HandleFunc("POST /api/sessions/{id}/advance", s.action(advance))
	mux.HandleFunc("POST /api/sessions/{id}/back", s.action(goBack))
	mux.HandleFunc("POST /api/sessions/{id}/modifications", s.action(withText(requestModification)))
	mux.HandleFunc("POST /api/sessions/{id}/restart", s.action(restart))
	mux.HandleFunc("POST /api/sessions/{id}/backend", s.action(configureBackend))

	mux.HandleFunc("GET /api/sessions/{id}/export", s.handleExport)
	mux.HandleFunc("POST /api/sessions/{id}/export", s.handleSave)
	mux.HandleFunc("GET /api/sessions/{id}/events", s.handleEvents)

	mux.HandleFunc("GET /health", s.handleHealth)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}

	return mux
}

// checkOrigin accepts direct connections, localhost and configured origins
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if u, err := url.Parse(origin); err == nil {
		switch u.Hostname() {
		case "localhost", "127.0.0.1", "::1":
			return true
		}
	}
	return slices.Contains(s.cfg.AllowedOrigins, origin)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.handler,
		ReadTimeout:  time.Duration(s.cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeoutSeconds) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("Server listening", "addr", s.cfg.Addr, "max_sessions", s.cfg.MaxSessions)

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.sweepLoop(sweepCtx)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")
	s.bus.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

// sweepLoop drops idle sessions until ctx is cancelled
func (s *Server) sweepLoop(ctx context.Context) {
	interval := sweepInterval
	if idle := time.Duration(s.cfg.SessionIdleMinutes) * time.Minute; idle > 0 && idle < interval {
		interval = idle
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *Server) sweep() {
	swept := s.store.Sweep()
	if len(swept) == 0 {
		return
	}
	s.updateSessionGauge()
	s.logger.Info("Dropped idle sessions", "count", len(swept), "remaining", s.store.Len())
}

func (s *Server) updateSessionGauge() {
	if s.metrics != nil {
		s.metrics.SetActiveSessions(s.store.Len())
	}
}
