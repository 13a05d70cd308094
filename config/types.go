package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port           int      `yaml:"port" validate:"gte=0,lte=65535"`
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// Graph source kinds
const (
	SourceJSON     = "json"
	SourceGTFS     = "gtfs"
	SourceSnapshot = "snapshot"
)

// GraphConfig describes where the transit description is loaded from
type GraphConfig struct {
	Source        string `yaml:"source" validate:"omitempty,oneof=json gtfs snapshot"`
	Path          string `yaml:"path"`
	Bidirectional bool   `yaml:"bidirectional"`
	AlertsURL     string `yaml:"alertsURL"`
	SnapshotPath  string `yaml:"snapshotPath"`
}

// PlannerConfig contains search limits and the metro heuristic
type PlannerConfig struct {
	MaxStates         int      `yaml:"maxStates" validate:"gte=0"`
	MaxTransfers      int      `yaml:"maxTransfers" validate:"gte=0"`
	MaxCombinedRoutes int      `yaml:"maxCombinedRoutes" validate:"gte=0"`
	MetroSearchLimit  int      `yaml:"metroSearchLimit" validate:"gte=0"`
	MetroKeywords     []string `yaml:"metroKeywords" validate:"dive,required"`
	TrustModeTags     bool     `yaml:"trustModeTags"`
}

// CacheConfig controls the route response cache
type CacheConfig struct {
	Disabled   bool `yaml:"disabled"`
	Size       int  `yaml:"size" validate:"gte=0"`
	TTLSeconds int  `yaml:"ttlSeconds" validate:"gte=0"`
}

// LogConfig controls the default logger
type LogConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server  ServerConfig  `yaml:"server"`
	Graph   GraphConfig   `yaml:"graph"`
	Planner PlannerConfig `yaml:"planner"`
	Cache   CacheConfig   `yaml:"cache"`
	Log     LogConfig     `yaml:"log"`
}
