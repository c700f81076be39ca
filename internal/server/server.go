package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aurrelhebert/warp10-zeppelin-quantumviz/internal/config"
	"github.com/aurrelhebert/warp10-zeppelin-quantumviz/internal/interpreter"
	"github.com/aurrelhebert/warp10-zeppelin-quantumviz/internal/monitoring"
	"github.com/aurrelhebert/warp10-zeppelin-quantumviz/internal/quantumviz"
	"github.com/aurrelhebert/warp10-zeppelin-quantumviz/internal/store"
	"github.com/aurrelhebert/warp10-zeppelin-quantumviz/internal/warpscript"
)

const shutdownTimeout = 10 * time.Second

// ErrNoInterpreters is returned when none of the interpreters could be
// opened.
var ErrNoInterpreters = errors.New("no interpreter could be opened")

// Server wraps the HTTP server and dependencies.
type Server struct {
	router    *gin.Engine
	registry  *interpreter.Registry
	resources *store.Memory
	metrics   *monitoring.Metrics
	logger    *zap.Logger
	config    *config.Config
}

// New opens the interpreters described by cfg and builds the router.
// An interpreter that fails to open is logged and left out; New fails
// only when none is available.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	metrics := monitoring.NewMetrics()
	resources := store.NewMemory()
	metrics.TrackStore(resources)
	registry := interpreter.NewRegistry().WithMetrics(metrics)

	candidates := []interpreter.Interpreter{
		warpscript.New(warpscript.Config{URL: cfg.Warp10.URL, RateLimit: cfg.Warp10.RateLimit}, logger),
		quantumviz.New(cfg.QuantumViz.URL, logger),
	}
	for _, in := range candidates {
		if err := registry.Register(ctx, in); err != nil {
			logger.Warn("interpreter unavailable", zap.String("interpreter", in.Definition().Name), zap.Error(err))
		}
	}
	if len(registry.List()) == 0 {
		return nil, ErrNoInterpreters
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		registry:  registry,
		resources: resources,
		metrics:   metrics,
		logger:    logger,
		config:    cfg,
	}
	s.router = NewRouter(NewHandlers(registry, resources, metrics, logger), metrics, cfg.Server.CORSOrigins, logger)

	logger.Info("server initialized", zap.Any("interpreters", registry.Stats()["interpreters"]))
	return s, nil
}

// NewRouter wires the middleware stack and routes.
func NewRouter(h *Handlers, metrics *monitoring.Metrics, origins []string, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(RequestLogger(logger))
	if metrics != nil {
		router.Use(monitoring.Middleware(metrics))
	}
	corsCfg := DefaultCORSConfig()
	if len(origins) > 0 {
		corsCfg.AllowOrigins = origins
	}
	router.Use(CORS(corsCfg))

	router.GET("/health", h.Health)

	router.GET("/interpreters", h.ListInterpreters)
	router.POST("/interpreters/:name/run", h.Run)

	router.GET("/resources", h.ListResources)
	router.GET("/resources/:name", h.GetResource)
	router.PUT("/resources/:name", h.PutResource)
	router.DELETE("/resources/:name", h.DeleteResource)

	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}
	return router
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := s.config.Server.Addr()
	srv := &http.Server{Addr: addr, Handler: s.router}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Close closes every interpreter.
func (s *Server) Close() error {
	s.logger.Info("shutting down server")
	if err := s.registry.Close(); err != nil {
		s.logger.Error("failed to close interpreters", zap.Error(err))
		return err
	}
	_ = s.logger.Sync()
	return nil
}
