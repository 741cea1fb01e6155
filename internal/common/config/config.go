// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Redis    RedisConfig    `mapstructure:"redis"`
	AppStore AppStoreConfig `mapstructure:"appstore"`
	Scoring  ScoringConfig  `mapstructure:"scoring"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port        int    `mapstructure:"port"`
	MetricsPort int    `mapstructure:"metrics_port"`
	APIKey      string `mapstructure:"api_key"`
	Timeout     int    `mapstructure:"timeout"` // milliseconds, per analysis request
}

// Addr returns the listen address for the API server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// --- App Store Data Sources ---

// AppStoreConfig holds settings for the iTunes search, suggestion and
// ranking clients.
type AppStoreConfig struct {
	Country   string `mapstructure:"country"`
	Language  string `mapstructure:"language"`
	Timeout   int    `mapstructure:"timeout"`    // milliseconds, per upstream call
	MaxApps   int    `mapstructure:"max_apps"`   // result set cap, default 100
	SearchURL string `mapstructure:"search_url"` // override for tests
	HintsURL  string `mapstructure:"hints_url"`
	RSSURL    string `mapstructure:"rss_url"`
}

// RequestTimeout returns the upstream call timeout as a duration.
func (a AppStoreConfig) RequestTimeout() time.Duration {
	if a.Timeout <= 0 {
		return 15 * time.Second
	}
	return time.Duration(a.Timeout) * time.Millisecond
}

// --- Scoring ---

// ScoringConfig holds settings for the scoring pipeline.
type ScoringConfig struct {
	CacheTTLHours  int `mapstructure:"cache_ttl_hours"`
	ExtractWorkers int `mapstructure:"extract_workers"` // competitor extraction pool size
}

// CacheTTL returns the score cache TTL as a duration.
func (s ScoringConfig) CacheTTL() time.Duration {
	if s.CacheTTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(s.CacheTTLHours) * time.Hour
}

// WorkerCount returns the bounded extraction pool size.
func (s ScoringConfig) WorkerCount() int {
	if s.ExtractWorkers <= 0 {
		return 8
	}
	return s.ExtractWorkers
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
