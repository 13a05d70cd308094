package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/theoremus-urban-solutions/transit-planner/config"
	"github.com/theoremus-urban-solutions/transit-planner/graph"
	"github.com/theoremus-urban-solutions/transit-planner/planner"
)

// RouteFinder answers route queries; *planner.RoutePlanner and
// *planner.Cache both satisfy it
type RouteFinder interface {
	FindBestRoute(source, destination string) (*planner.RouteResponse, error)
}

// Server wires the HTTP API to a graph store and a route finder
type Server struct {
	cfg     config.ServerConfig
	finder  RouteFinder
	store   *graph.Store
	loader  graph.Loader
	engine  *gin.Engine
	httpSrv *http.Server

	// OnRefresh runs after every graph refresh, successful or not
	OnRefresh func()
}

// New builds the gin engine. A nil loader disables /api/graph/refresh.
func New(cfg config.ServerConfig, finder RouteFinder, store *graph.Store, loader graph.Loader) *Server {
	s := &Server{cfg: cfg, finder: finder, store: store, loader: loader}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	corsCfg := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	r.Use(cors.New(corsCfg))

	api := r.Group("/api")
	api.POST("/routes", s.handleRoutePost)
	api.GET("/routes", s.handleRouteGet)
	api.GET("/stops", s.handleStops)
	api.GET("/health", s.handleHealth)
	api.POST("/graph/refresh", s.handleRefresh)

	s.engine = r
	return s
}

// Handler returns the HTTP handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	slog.Info("server listening", "addr", addr)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}
	slog.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	slog.Info("server shut down successfully")
	return nil
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		level := slog.LevelInfo
		if c.Writer.Status() >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		slog.Log(c.Request.Context(), level, "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(start))
	}
}
