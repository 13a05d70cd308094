package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/theoremus-urban-solutions/transit-planner/config"
	"github.com/theoremus-urban-solutions/transit-planner/graph"
	"github.com/theoremus-urban-solutions/transit-planner/gtfs"
	"github.com/theoremus-urban-solutions/transit-planner/gtfsrt"
	"github.com/theoremus-urban-solutions/transit-planner/planner"
	"github.com/theoremus-urban-solutions/transit-planner/server"
)

// app holds everything a command needs once configuration is loaded
type app struct {
	cfg     config.AppConfig
	store   *graph.Store
	loader  graph.Loader
	planner *planner.RoutePlanner
	cache   *planner.Cache
}

// finder returns the cache when enabled, the bare planner otherwise
func (a *app) finder() server.RouteFinder {
	if a.cache != nil {
		return a.cache
	}
	return a.planner
}

func loadConfig(path string) (config.AppConfig, error) {
	if err := config.LoadEnv(); err != nil {
		return config.AppConfig{}, err
	}
	return config.LoadAppConfig(path)
}

func newApp(cfg config.AppConfig) (*app, error) {
	loader, err := buildLoader(cfg.Graph)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, store: graph.NewStore(), loader: loader}
	a.planner = planner.New(a.store, cfg.Planner)
	if !cfg.Cache.Disabled {
		a.cache = planner.NewCache(a.planner, cfg.Cache.Size, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
	}
	return a, nil
}

// refresh rebuilds the graph; a failure leaves an empty graph in place
func (a *app) refresh(ctx context.Context) error {
	_, err := a.store.Refresh(ctx, a.loader)
	if a.cache != nil {
		a.cache.Purge()
	}
	return err
}

// sourceLoader picks the loader for the configured source without any
// decoration
func sourceLoader(cfg config.GraphConfig) (graph.Loader, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("graph.path is required for source %q", cfg.Source)
	}
	switch cfg.Source {
	case config.SourceJSON, "":
		return graph.FileLoader(cfg.Path), nil
	case config.SourceGTFS:
		return gtfs.Loader(cfg.Path), nil
	case config.SourceSnapshot:
		return graph.SnapshotLoader(cfg.Path), nil
	default:
		return nil, fmt.Errorf("unknown graph source %q", cfg.Source)
	}
}

// buildLoader chains source, mirroring, alert filtering and snapshot caching
func buildLoader(cfg config.GraphConfig) (graph.Loader, error) {
	l, err := sourceLoader(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Bidirectional {
		l = graph.MirrorLoader(l)
	}
	if cfg.AlertsURL != "" {
		l = gtfsrt.FilterLoader(l, cfg.AlertsURL, nil)
	}
	if cfg.SnapshotPath != "" && cfg.Source != config.SourceSnapshot {
		l = graph.CachingLoader(l, cfg.SnapshotPath)
	}
	slog.Debug("graph loader configured",
		"source", cfg.Source, "path", cfg.Path, "bidirectional", cfg.Bidirectional,
		"alerts", cfg.AlertsURL != "", "snapshot", cfg.SnapshotPath)
	return l, nil
}
