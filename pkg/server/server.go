package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vtree/pkg/document"
	"github.com/vango-dev/vtree/pkg/host/memtree"
	"github.com/vango-dev/vtree/pkg/middleware"
	"github.com/vango-dev/vtree/pkg/reconcile"
)

// Server is the HTTP and websocket front end of the reconciler.
type Server struct {
	config   *ServerConfig
	logger   *slog.Logger
	registry *document.Registry

	tracerProvider trace.TracerProvider
	tracer         trace.Tracer

	metricsRegistry  *prometheus.Registry
	httpMetrics      *middleware.Metrics
	reconcileMetrics *reconcile.Metrics

	router   chi.Router
	upgrader websocket.Upgrader

	mu   sync.Mutex
	live map[*liveSession]struct{}

	httpServer *http.Server
}

// New creates a Server. A nil config uses DefaultServerConfig.
func New(config *ServerConfig) *Server {
	config = config.withDefaults()

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "server")

	registry := config.Registry
	if registry == nil {
		registry = document.DefaultRegistry()
	}

	reg := config.Metrics
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	provider := config.TracerProvider
	if provider == nil {
		provider = otel.GetTracerProvider()
	}

	s := &Server{
		config:          config,
		logger:          logger,
		registry:        registry,
		tracerProvider:  provider,
		tracer:          provider.Tracer(config.TracerName),
		metricsRegistry: reg,
		httpMetrics: middleware.NewMetrics(
			middleware.WithRegistry(reg),
			middleware.WithNamespace(config.Namespace),
		),
		reconcileMetrics: reconcile.NewMetrics(
			reconcile.WithRegistry(reg),
			reconcile.WithNamespace(config.Namespace),
		),
		live:     make(map[*liveSession]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimw.Recoverer)
	r.Use(s.httpMetrics.Handler)
	r.Use(middleware.OpenTelemetry(
		middleware.WithTracerName(s.config.TracerName),
		middleware.WithTracerProvider(s.tracerProvider),
	))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	r.Post("/render", s.handleRender)
	r.Get("/live", s.handleLive)
	if !s.config.DisableMetricsEndpoint {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metricsRegistry, promhttp.HandlerOpts{}))
	}
	return r
}

// Handler returns the server's routes for mounting in another router or
// an httptest server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// MetricsRegistry returns the registry served at /metrics.
func (s *Server) MetricsRegistry() *prometheus.Registry {
	return s.metricsRegistry
}

// Config returns the server configuration with defaults applied.
func (s *Server) Config() *ServerConfig {
	return s.config
}

// newReconciler builds a reconciler over tree sharing the server's logger,
// metrics and tracer.
func (s *Server) newReconciler(tree *memtree.Tree) *reconcile.Reconciler {
	return reconcile.New(tree,
		reconcile.WithLogger(s.logger),
		reconcile.WithMetrics(s.reconcileMetrics),
		reconcile.WithTracer(s.tracer),
	)
}

// Run listens on the configured address and serves until ctx is done, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String())
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.closeLive()
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}
	s.logger.Info("server shutdown complete")
	return nil
}
