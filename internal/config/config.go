// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package config

import (
	"time"
)

// Config is the complete application configuration.
type Config struct {
	Server      ServerConfig      `koanf:"server"`
	Steam       SteamConfig       `koanf:"steam"`
	HLTB        HLTBConfig        `koanf:"hltb"`
	Recommender RecommenderConfig `koanf:"recommender"`
	Cache       CacheConfig       `koanf:"cache"`
	Storage     StorageConfig     `koanf:"storage"`
	Security    SecurityConfig    `koanf:"security"`
	Logging     LoggingConfig     `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`

	// AppURL is the externally visible base URL. The Steam OpenID realm and
	// return_to are derived from it.
	AppURL string `koanf:"app_url"`
}

// SteamConfig holds Steam Web API and store settings.
type SteamConfig struct {
	APIKey    string        `koanf:"api_key"`
	APIURL    string        `koanf:"api_url"`
	StoreURL  string        `koanf:"store_url"`
	OpenIDURL string        `koanf:"openid_url"`
	Timeout   time.Duration `koanf:"timeout"`

	// StoreRateLimit is the sustained appdetails request rate (per second).
	// The store API tolerates roughly 200 requests per 5 minutes.
	StoreRateLimit float64 `koanf:"store_rate_limit"`
	StoreBurst     int     `koanf:"store_burst"`
}

// HLTBConfig holds HowLongToBeat settings.
type HLTBConfig struct {
	URL     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
}

// RecommenderConfig selects and configures the recommendation backend.
type RecommenderConfig struct {
	Provider         string        `koanf:"provider"`
	DefaultModel     string        `koanf:"default_model"`
	APIKey           string        `koanf:"api_key"`
	BaseURL          string        `koanf:"base_url"`
	Timeout          time.Duration `koanf:"timeout"`
	SystemPromptPath string        `koanf:"system_prompt_path"`
}

// CacheConfig controls the in-process memo tables.
type CacheConfig struct {
	TTL time.Duration `koanf:"ttl"`
}

// StorageConfig controls the badger database holding exclusions.
type StorageConfig struct {
	Path       string        `koanf:"path"`
	InMemory   bool          `koanf:"in_memory"`
	GCInterval time.Duration `koanf:"gc_interval"`
}

// SecurityConfig holds session, CORS and rate limit settings.
type SecurityConfig struct {
	// SessionSecret signs session cookies. When empty a random secret is
	// generated at startup and sessions do not survive restarts.
	SessionSecret string        `koanf:"session_secret"`
	SessionTTL    time.Duration `koanf:"session_ttl"`
	CookieSecure  bool          `koanf:"cookie_secure"`

	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from defaults, file and environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return joinHostPort(s.Host, s.Port)
}
