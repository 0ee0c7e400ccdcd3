// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order; the first existing file wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/playnext/config.yaml",
	"/etc/playnext/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// Upstream defaults.
const (
	DefaultSteamAPIURL    = "https://api.steampowered.com"
	DefaultSteamStoreURL  = "https://store.steampowered.com"
	DefaultSteamOpenIDURL = "https://steamcommunity.com/openid/login"
	DefaultHLTBURL        = "https://howlongtobeat.com"
	DefaultOpenRouterURL  = "https://openrouter.ai/api/v1/chat/completions"
	DefaultModel          = "gryphe/mythomax-l2-13b"
)

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8000,
			// Must outlast the 5 minute model call.
			Timeout: 330 * time.Second,
			AppURL:  "http://127.0.0.1:8000",
		},
		Steam: SteamConfig{
			APIURL:         DefaultSteamAPIURL,
			StoreURL:       DefaultSteamStoreURL,
			OpenIDURL:      DefaultSteamOpenIDURL,
			Timeout:        30 * time.Second,
			StoreRateLimit: 0.66,
			StoreBurst:     10,
		},
		HLTB: HLTBConfig{
			URL:     DefaultHLTBURL,
			Timeout: 30 * time.Second,
		},
		Recommender: RecommenderConfig{
			Provider:         "openrouter",
			DefaultModel:     DefaultModel,
			BaseURL:          DefaultOpenRouterURL,
			Timeout:          300 * time.Second,
			SystemPromptPath: "src/system_prompt.txt",
		},
		Cache: CacheConfig{
			TTL: time.Hour,
		},
		Storage: StorageConfig{
			Path:       "data/playnext",
			GCInterval: 10 * time.Minute,
		},
		Security: SecurityConfig{
			SessionTTL:      24 * time.Hour,
			CORSOrigins:     []string{},
			RateLimitReqs:   60,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// sliceConfigPaths are split on commas when they arrive as a single string
// from the environment.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// LoadWithKoanf loads configuration in three layers (defaults, file, env)
// and validates the result.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok || s == "" {
			continue
		}
		parts := make([]string, 0, 4)
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_host":    "server.host",
	"http_port":    "server.port",
	"http_timeout": "server.timeout",
	"app_url":      "server.app_url",

	// Steam
	"steam_api_key":          "steam.api_key",
	"steam_api_url":          "steam.api_url",
	"steam_store_url":        "steam.store_url",
	"steam_openid_url":       "steam.openid_url",
	"steam_timeout":          "steam.timeout",
	"steam_store_rate_limit": "steam.store_rate_limit",
	"steam_store_burst":      "steam.store_burst",

	// HowLongToBeat
	"hltb_url":     "hltb.url",
	"hltb_timeout": "hltb.timeout",

	// Recommender
	"recommender_provider": "recommender.provider",
	"openrouter_api_key":   "recommender.api_key",
	"openrouter_model":     "recommender.default_model",
	"openrouter_base_url":  "recommender.base_url",
	"recommender_timeout":  "recommender.timeout",
	"system_prompt_path":   "recommender.system_prompt_path",

	// Cache and storage
	"cache_ttl":           "cache.ttl",
	"storage_path":        "storage.path",
	"storage_in_memory":   "storage.in_memory",
	"storage_gc_interval": "storage.gc_interval",

	// Security
	"secret_key":          "security.session_secret",
	"session_ttl":         "security.session_ttl",
	"cookie_secure":       "security.cookie_secure",
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc returns "" for unmapped variables so the rest of the
// environment never leaks into the configuration.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

func joinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
