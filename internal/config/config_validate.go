// Playnext - Game Library Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/playnext

package config

import (
	"fmt"
	"net/url"
	"strings"
)

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true,
}

var validLogFormats = map[string]bool{
	"json": true, "console": true,
}

// Validate checks that required configuration is present and consistent.
// The recommender provider and its API key are checked by recommender.New.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSteam(); err != nil {
		return err
	}
	if err := c.validateUpstreams(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return validateHTTPURL("APP_URL", c.Server.AppURL)
}

func (c *Config) validateSteam() error {
	if c.Steam.APIKey == "" {
		return fmt.Errorf("STEAM_API_KEY is required")
	}
	for name, u := range map[string]string{
		"STEAM_API_URL":    c.Steam.APIURL,
		"STEAM_STORE_URL":  c.Steam.StoreURL,
		"STEAM_OPENID_URL": c.Steam.OpenIDURL,
	} {
		if err := validateHTTPURL(name, u); err != nil {
			return err
		}
	}
	if c.Steam.StoreRateLimit <= 0 {
		return fmt.Errorf("STEAM_STORE_RATE_LIMIT must be positive")
	}
	if c.Steam.StoreBurst < 1 {
		return fmt.Errorf("STEAM_STORE_BURST must be at least 1")
	}
	return nil
}

func (c *Config) validateUpstreams() error {
	if err := validateHTTPURL("HLTB_URL", c.HLTB.URL); err != nil {
		return err
	}
	if err := validateHTTPURL("OPENROUTER_BASE_URL", c.Recommender.BaseURL); err != nil {
		return err
	}
	if c.Recommender.Timeout <= 0 {
		return fmt.Errorf("RECOMMENDER_TIMEOUT must be positive")
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	if !c.Storage.InMemory && c.Storage.Path == "" {
		return fmt.Errorf("STORAGE_PATH is required unless STORAGE_IN_MEMORY=true")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1")
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error (got %q)", c.Logging.Level)
	}
	if !validLogFormats[strings.ToLower(c.Logging.Format)] {
		return fmt.Errorf("LOG_FORMAT must be json or console (got %q)", c.Logging.Format)
	}
	return nil
}

func validateHTTPURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s must be an absolute http(s) URL (got %q)", name, raw)
	}
	return nil
}
