// Skillserve - Skill Classification and Recommendation Service
// Copyright 2026 Alex Voronov (avoronov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avoronov/skillserve

// Package config loads and validates the service configuration from
// defaults, an optional YAML file, and environment variables.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the service.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Artifacts ArtifactsConfig `koanf:"artifacts"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// ArtifactsConfig locates the classifier artifacts on disk.
type ArtifactsConfig struct {
	Dir              string  `koanf:"dir"`
	DefaultThreshold float64 `koanf:"default_threshold"`
}

// CatalogConfig describes the upstream catalog API.
type CatalogConfig struct {
	BaseURL        string        `koanf:"base_url"`
	Token          string        `koanf:"token"`
	Timeout        time.Duration `koanf:"timeout"`
	PageLimit      int           `koanf:"page_limit"`
	CacheTTL       time.Duration `koanf:"cache_ttl"`
	BreakerEnabled bool          `koanf:"breaker_enabled"`
}

// SecurityConfig covers CORS and rate limiting.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig configures the zerolog global logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration for values that would prevent the
// service from starting or behaving correctly.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Artifacts.Dir == "" {
		return fmt.Errorf("artifacts.dir must not be empty")
	}
	if c.Artifacts.DefaultThreshold < 0 || c.Artifacts.DefaultThreshold > 1 {
		return fmt.Errorf("artifacts.default_threshold must be in [0, 1], got %g", c.Artifacts.DefaultThreshold)
	}
	if c.Catalog.BaseURL == "" {
		return fmt.Errorf("catalog.base_url must not be empty")
	}
	if c.Catalog.PageLimit < 1 {
		return fmt.Errorf("catalog.page_limit must be at least 1, got %d", c.Catalog.PageLimit)
	}
	if c.Catalog.Timeout <= 0 {
		return fmt.Errorf("catalog.timeout must be positive, got %s", c.Catalog.Timeout)
	}
	if c.Catalog.CacheTTL < 0 {
		return fmt.Errorf("catalog.cache_ttl must not be negative, got %s", c.Catalog.CacheTTL)
	}
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitRequests < 1 {
			return fmt.Errorf("security.rate_limit_requests must be at least 1, got %d", c.Security.RateLimitRequests)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("security.rate_limit_window must be positive, got %s", c.Security.RateLimitWindow)
		}
	}
	return nil
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
