package graph

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Loader produces a transit description from some source
type Loader interface {
	Load(ctx context.Context) (Description, error)
}

// LoaderFunc adapts a function to Loader
type LoaderFunc func(ctx context.Context) (Description, error)

func (f LoaderFunc) Load(ctx context.Context) (Description, error) { return f(ctx) }

// FileLoader reads a JSON transport graph from disk
func FileLoader(path string) Loader {
	return LoaderFunc(func(ctx context.Context) (Description, error) {
		f, err := os.Open(path)
		if err != nil {
			return Description{}, err
		}
		defer f.Close()
		return DecodeDescription(f)
	})
}

// MirrorLoader adds the reverse of every link produced by next
func MirrorLoader(next Loader) Loader {
	return LoaderFunc(func(ctx context.Context) (Description, error) {
		d, err := next.Load(ctx)
		if err != nil {
			return Description{}, err
		}
		return d.Mirrored(), nil
	})
}

type snapshot struct {
	graph   *TransitGraph
	version uint64
}

// Store owns the current graph snapshot. Readers never block; a rebuild
// publishes a complete new graph in one pointer swap.
type Store struct {
	mu  sync.Mutex // serialises writers
	cur atomic.Pointer[snapshot]
}

// NewStore returns a store holding an empty graph at version 0
func NewStore() *Store {
	s := &Store{}
	s.cur.Store(&snapshot{graph: New()})
	return s
}

// Load returns the current graph; never nil
func (s *Store) Load() *TransitGraph {
	return s.cur.Load().graph
}

// Snapshot returns the current graph along with its version
func (s *Store) Snapshot() (*TransitGraph, uint64) {
	snap := s.cur.Load()
	return snap.graph, snap.version
}

// Version returns the version of the current graph
func (s *Store) Version() uint64 {
	return s.cur.Load().version
}

// Swap publishes g and returns its version
func (s *Store) Swap(g *TransitGraph) uint64 {
	if g == nil {
		g = New()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := &snapshot{graph: g, version: s.cur.Load().version + 1}
	s.cur.Store(next)
	return next.version
}

// RefreshStats summarises one rebuild
type RefreshStats struct {
	Version  uint64
	Stops    int
	Edges    int
	Skipped  int
	Duration time.Duration
}

// Refresh rebuilds the graph from l and publishes it. When loading fails an
// empty graph is published instead so queries keep working; the error is
// logged and returned to the caller of Refresh only.
func (s *Store) Refresh(ctx context.Context, l Loader) (RefreshStats, error) {
	start := time.Now()
	desc, err := l.Load(ctx)
	if err != nil {
		v := s.Swap(New())
		slog.Error("transit graph load failed, serving empty graph", "err", err, "version", v)
		return RefreshStats{Version: v, Duration: time.Since(start)}, err
	}
	g, skipped := desc.Build()
	v := s.Swap(g)
	stats := RefreshStats{
		Version:  v,
		Stops:    g.StopCount(),
		Edges:    g.EdgeCount(),
		Skipped:  skipped,
		Duration: time.Since(start),
	}
	slog.Info("transit graph loaded",
		"stops", stats.Stops, "edges", stats.Edges, "skippedLinks", skipped,
		"version", v, "elapsed", stats.Duration)
	return stats, nil
}
