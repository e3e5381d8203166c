package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/isla-dev/isla/pkg/middleware"
	"github.com/isla-dev/isla/pkg/render"
	"github.com/isla-dev/isla/pkg/vdom"
)

// Page builds the VNode tree for one request. The renderer is handed in so
// pages can register island state scripts before rendering.
type Page func(r *http.Request, rd *render.Renderer) (*vdom.VNode, error)

// StateFunc produces the JSON document for an island using url: state.
type StateFunc func(r *http.Request) (any, error)

// Server renders pages and serves island state over HTTP.
type Server struct {
	cfg    Config
	router chi.Router
	logger *log.Logger
	reload *ReloadHub
	http   *http.Server
}

// New creates a Server with its base routes installed.
func New(cfg Config) *Server {
	cfg.fill()

	s := &Server{
		cfg:    cfg,
		router: chi.NewRouter(),
		logger: cfg.Logger,
	}

	if cfg.Metrics {
		s.router.Use(middleware.Metrics())
	}
	if cfg.Tracing {
		s.router.Use(middleware.OTel())
	}

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	if cfg.Metrics {
		s.router.Handle("/metrics", promhttp.Handler())
	}

	if cfg.DevReload {
		s.reload = NewReloadHub()
		s.router.Get("/dev/reload", s.reload.HandleWebSocket)
	}

	return s
}

// Router returns the underlying chi router for application routes.
func (s *Server) Router() chi.Router {
	return s.router
}

// Reload returns the dev reload hub, or nil when DevReload is disabled.
func (s *Server) Reload() *ReloadHub {
	return s.reload
}

// HandlePage registers a server-rendered page at the given route pattern.
func (s *Server) HandlePage(pattern string, page Page) {
	s.router.Get(pattern, func(w http.ResponseWriter, r *http.Request) {
		rd := render.NewRenderer(render.RendererConfig{Pretty: s.cfg.Pretty})

		node, err := page(r, rd)
		if err != nil {
			s.logger.Printf("isla: page %s: %v", pattern, err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := rd.RenderToWriter(w, node); err != nil {
			// Headers are gone; all we can do is log.
			s.logger.Printf("isla: render %s: %v", pattern, err)
		}
	})
}

// HandleState registers a JSON endpoint for islands using url: state. The
// route should match the path in the island's state="url:…" attribute.
func (s *Server) HandleState(pattern string, fn StateFunc) {
	s.router.Get(pattern, func(w http.ResponseWriter, r *http.Request) {
		state, err := fn(r)
		if err != nil {
			s.logger.Printf("isla: state %s: %v", pattern, err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(state); err != nil {
			s.logger.Printf("isla: state %s: %v", pattern, err)
		}
	})
}

// Start runs the server until it fails or Shutdown is called.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}
	s.logger.Printf("isla: listening on %s", s.cfg.Addr)
	return s.http.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()
	return s.http.Shutdown(ctx)
}
