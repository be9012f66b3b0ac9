// Skillserve - Skill Classification and Recommendation Service
// Copyright 2026 Alex Voronov (avoronov)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avoronov/skillserve

package config

import (
	"fmt"
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

// DefaultConfigPaths lists where config files are searched, in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/skillserve/config.yaml",
	"/etc/skillserve/config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8000,
			Timeout: 30 * time.Second,
		},
		Artifacts: ArtifactsConfig{
			Dir:              "artifacts",
			DefaultThreshold: 0.35,
		},
		Catalog: CatalogConfig{
			BaseURL:        "",
			Token:          "",
			Timeout:        10 * time.Second,
			PageLimit:      100,
			CacheTTL:       60 * time.Second,
			BreakerEnabled: true,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load builds the effective configuration with precedence
// ENV > config file > defaults, then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	if err := processDurationFields(k); err != nil {
		return nil, fmt.Errorf("failed to process duration fields: %w", err)
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
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are paths whose env values arrive as comma-separated
// strings but unmarshal into slices.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}
		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// durationConfigPaths are duration paths whose legacy env values may arrive
// as bare numbers of seconds (MP_API_TIMEOUT=8.0, MP_API_CACHE_TTL=60).
var durationConfigPaths = []string{
	"catalog.timeout",
	"catalog.cache_ttl",
	"server.timeout",
	"security.rate_limit_window",
}

// processDurationFields rewrites bare numeric duration values as seconds so
// both the legacy format and Go duration strings unmarshal.
func processDurationFields(k *koanf.Koanf) error {
	for _, path := range durationConfigPaths {
		val := k.Get(path)
		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		secs, err := strconv.ParseFloat(strings.TrimSpace(strVal), 64)
		if err != nil {
			continue
		}
		d := time.Duration(secs * float64(time.Second))
		if err := k.Set(path, d.String()); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envTransformFunc maps environment variable names to koanf config paths.
// It supports both the nested SERVER_PORT style and the legacy flat names
// the original deployment used (MP_API_BASE, ARTIFACTS_DIR, DEFAULT_THR).
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Legacy deployment names.
		"api_host":          "server.host",
		"api_port":          "server.port",
		"artifacts_dir":     "artifacts.dir",
		"default_thr":       "artifacts.default_threshold",
		"mp_api_base":       "catalog.base_url",
		"mp_api_token":      "catalog.token",
		"mp_api_timeout":    "catalog.timeout",
		"mp_api_page_limit": "catalog.page_limit",
		"mp_api_cache_ttl":  "catalog.cache_ttl",

		// Nested names.
		"server_host":                 "server.host",
		"server_port":                 "server.port",
		"server_timeout":              "server.timeout",
		"artifacts_default_threshold": "artifacts.default_threshold",
		"catalog_base_url":            "catalog.base_url",
		"catalog_token":               "catalog.token",
		"catalog_timeout":             "catalog.timeout",
		"catalog_page_limit":          "catalog.page_limit",
		"catalog_cache_ttl":           "catalog.cache_ttl",
		"catalog_breaker_enabled":     "catalog.breaker_enabled",
		"cors_origins":                "security.cors_origins",
		"rate_limit_requests":         "security.rate_limit_requests",
		"rate_limit_window":           "security.rate_limit_window",
		"rate_limit_disabled":         "security.rate_limit_disabled",
		"log_level":                   "logging.level",
		"log_format":                  "logging.format",
		"log_caller":                  "logging.caller",
	}

	if path, ok := envMappings[key]; ok {
		return path
	}
	// Unknown variables are dropped rather than guessed at.
	return ""
}
