package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults used when a value is absent from config.yml
const (
	DefaultPort              = 16182
	DefaultMaxStates         = 500000
	DefaultMaxTransfers      = 5
	DefaultMaxCombinedRoutes = 5
	DefaultMetroSearchLimit  = 50000
	DefaultCacheSize         = 1024
	DefaultCacheTTLSeconds   = 600
)

// DefaultMetroKeywords are matched against service names to detect metro lines
var DefaultMetroKeywords = []string{"MRT", "Metro"}

var searchPaths = []string{"config.yml", "./config/config.yml"}

// Default returns a configuration with every default applied
func Default() AppConfig {
	var cfg AppConfig
	applyDefaults(&cfg)
	return cfg
}

// LoadAppConfig loads and validates the application configuration.
// An empty path searches config.yml in the usual locations.
func LoadAppConfig(path string) (AppConfig, error) {
	paths := searchPaths
	if path != "" {
		paths = []string{path}
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return AppConfig{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes, defaults, applies environment overrides and validates a YAML document
func Parse(data []byte) (AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parse config: %w", err)
	}
	applyDefaults(&cfg)
	if err := applyEnv(&cfg); err != nil {
		return AppConfig{}, err
	}
	if err := Validate(cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks struct tags of every section
func Validate(cfg AppConfig) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadEnv reads a .env file into the process environment if one exists.
// Variables already set are not overwritten.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Graph.Source == "" {
		cfg.Graph.Source = SourceJSON
	}
	if cfg.Planner.MaxStates == 0 {
		cfg.Planner.MaxStates = DefaultMaxStates
	}
	if cfg.Planner.MaxTransfers == 0 {
		cfg.Planner.MaxTransfers = DefaultMaxTransfers
	}
	if cfg.Planner.MaxCombinedRoutes == 0 {
		cfg.Planner.MaxCombinedRoutes = DefaultMaxCombinedRoutes
	}
	if cfg.Planner.MetroSearchLimit == 0 {
		cfg.Planner.MetroSearchLimit = DefaultMetroSearchLimit
	}
	if len(cfg.Planner.MetroKeywords) == 0 {
		cfg.Planner.MetroKeywords = append([]string(nil), DefaultMetroKeywords...)
	}
	if cfg.Cache.Size == 0 {
		cfg.Cache.Size = DefaultCacheSize
	}
	if cfg.Cache.TTLSeconds == 0 {
		cfg.Cache.TTLSeconds = DefaultCacheTTLSeconds
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// applyEnv lets PORT, GRAPH_PATH, GRAPH_SOURCE and LOG_LEVEL override the file
func applyEnv(cfg *AppConfig) error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("GRAPH_PATH"); v != "" {
		cfg.Graph.Path = v
	}
	if v := os.Getenv("GRAPH_SOURCE"); v != "" {
		cfg.Graph.Source = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}
