package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theoremus-urban-solutions/transit-planner/config"
	"github.com/theoremus-urban-solutions/transit-planner/graph"
	"github.com/theoremus-urban-solutions/transit-planner/planner"
)

const testNetwork = `{
  "nodes": [{"id": "Central"}, {"id": "Bugis"}, {"id": "Harbour"}],
  "links": [
    {"source": "Central", "target": "Bugis", "mode": "BUS", "transport": "Bus1"},
    {"source": "Bugis", "target": "Harbour", "mode": "BUS", "transport": "Bus2"}
  ]
}`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeConfig(t *testing.T, extra string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	graphPath := writeFile(t, dir, "transport_graph.json", testNetwork)
	cfg := "graph:\n  source: json\n  path: " + graphPath + "\n" + extra + "log:\n  level: error\n"
	return writeFile(t, dir, "config.yml", cfg), dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRouteCommand_JSON(t *testing.T) {
	cfgPath, _ := writeConfig(t, "")
	out, err := run(t, "--config", cfgPath, "route", "central", "harbour", "--json")
	if err != nil {
		t.Fatalf("route: %v\n%s", err, out)
	}
	var res planner.RouteResponse
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if res.Status != planner.StatusSuccess || len(res.CombinedRoutes) != 1 {
		t.Errorf("response = %+v", res)
	}
}

func TestRouteCommand_UnknownStop(t *testing.T) {
	cfgPath, _ := writeConfig(t, "")
	out, err := run(t, "--config", cfgPath, "route", "Nowhere", "Harbour")
	if err == nil {
		t.Fatal("expected an error for an unknown stop")
	}
	if !strings.Contains(out, "Nowhere") {
		t.Errorf("output should name the stop: %q", out)
	}
}

func TestStopsCommand(t *testing.T) {
	cfgPath, _ := writeConfig(t, "")
	out, err := run(t, "--config", cfgPath, "stops")
	if err != nil {
		t.Fatal(err)
	}
	if out != "Bugis\nCentral\nHarbour\n" {
		t.Errorf("stops output = %q", out)
	}
}

func TestSnapshotCommand(t *testing.T) {
	cfgPath, dir := writeConfig(t, "")
	snap := filepath.Join(dir, "graph.gob")
	if _, err := run(t, "--config", cfgPath, "snapshot", snap); err != nil {
		t.Fatal(err)
	}
	desc, err := graph.ReadSnapshot(snap)
	if err != nil {
		t.Fatal(err)
	}
	if len(desc.Stops) != 3 || len(desc.Links) != 2 {
		t.Errorf("snapshot = %+v", desc)
	}
}

func TestBuildLoader(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "g.json", testNetwork)
	snap := filepath.Join(dir, "cache.gob")

	tests := []struct {
		name      string
		cfg       config.GraphConfig
		wantLinks int
		wantErr   bool
	}{
		{"json", config.GraphConfig{Source: config.SourceJSON, Path: path}, 2, false},
		{"bidirectional", config.GraphConfig{Source: config.SourceJSON, Path: path, Bidirectional: true}, 4, false},
		{"snapshot cache", config.GraphConfig{Source: config.SourceJSON, Path: path, SnapshotPath: snap}, 2, false},
		{"missing path", config.GraphConfig{Source: config.SourceJSON}, 0, true},
		{"unknown source", config.GraphConfig{Source: "csv", Path: path}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := buildLoader(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			desc, err := l.Load(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			if len(desc.Links) != tt.wantLinks {
				t.Errorf("links = %d, want %d", len(desc.Links), tt.wantLinks)
			}
		})
	}

	if _, err := os.Stat(snap); err != nil {
		t.Errorf("caching loader did not write a snapshot: %v", err)
	}
	l, err := buildLoader(config.GraphConfig{Source: config.SourceSnapshot, Path: snap})
	if err != nil {
		t.Fatal(err)
	}
	if desc, err := l.Load(context.Background()); err != nil || len(desc.Stops) != 3 {
		t.Errorf("snapshot source: %+v, %v", desc, err)
	}
}
