// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading. Values come
// from built-in defaults, an optional config file named by GIGFIN_CONFIG,
// and environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"net"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"gigfin/internal/locale"
)

// ConfigFileEnv names the environment variable holding an optional
// config file path (any format viper understands).
const ConfigFileEnv = "GIGFIN_CONFIG"

// Config holds all application configuration values.
type Config struct {
	// Server settings
	Host     string
	Port     string
	Env      string // "development", "production", "testing"
	LogLevel string

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// Public site
	SiteURL       string
	SiteLocales   []locale.Locale
	DefaultLocale locale.Locale

	// Snapshot caches
	CategoryCacheTTL time.Duration
	ArticleCacheTTL  time.Duration
	CacheMaxEntries  int
	// SitemapCacheTTL bounds how long a rendered sitemap is served; a refresh
	// that loads changed content clears it sooner.
	SitemapCacheTTL  time.Duration
	SnapshotRefresh  string // cron schedule

	// Requests per minute per client IP on /api.
	RateLimit int
}

var defaults = map[string]any{
	"APP_HOST":           "0.0.0.0",
	"APP_PORT":           "8080",
	"APP_ENV":            "development",
	"LOG_LEVEL":          "info",
	"POSTGRES_HOST":      "localhost",
	"POSTGRES_PORT":      "5432",
	"POSTGRES_USER":      "gigfin",
	"POSTGRES_PASSWORD":  "changeme",
	"POSTGRES_DB":        "gigfin",
	"VALKEY_HOST":        "localhost",
	"VALKEY_PORT":        "6379",
	"VALKEY_PASSWORD":    "",
	"SITE_URL":           "http://localhost:8080",
	"SITE_LOCALES":       "pt-BR,en-US",
	"DEFAULT_LOCALE":     "pt-BR",
	"CATEGORY_CACHE_TTL": "5m",
	"ARTICLE_CACHE_TTL":  "1h",
	"CACHE_MAX_ENTRIES":  64,
	"SITEMAP_CACHE_TTL":  "1h",
	"SNAPSHOT_REFRESH":   "@every 5m",
	"RATE_LIMIT":         120,
}

// Load reads configuration, applying defaults for development where
// appropriate. Returns an error if critical values are missing or invalid
// in production mode.
func Load() (*Config, error) {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.AutomaticEnv()

	if err := v.BindEnv(ConfigFileEnv); err != nil {
		return nil, fmt.Errorf("bind %s: %w", ConfigFileEnv, err)
	}
	if path := v.GetString(ConfigFileEnv); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		Host:     v.GetString("APP_HOST"),
		Port:     v.GetString("APP_PORT"),
		Env:      v.GetString("APP_ENV"),
		LogLevel: v.GetString("LOG_LEVEL"),

		DBHost:     v.GetString("POSTGRES_HOST"),
		DBPort:     v.GetString("POSTGRES_PORT"),
		DBUser:     v.GetString("POSTGRES_USER"),
		DBPassword: v.GetString("POSTGRES_PASSWORD"),
		DBName:     v.GetString("POSTGRES_DB"),

		ValkeyHost:     v.GetString("VALKEY_HOST"),
		ValkeyPort:     v.GetString("VALKEY_PORT"),
		ValkeyPassword: v.GetString("VALKEY_PASSWORD"),

		SiteURL: strings.TrimRight(v.GetString("SITE_URL"), "/"),

		CategoryCacheTTL: v.GetDuration("CATEGORY_CACHE_TTL"),
		ArticleCacheTTL:  v.GetDuration("ARTICLE_CACHE_TTL"),
		CacheMaxEntries:  v.GetInt("CACHE_MAX_ENTRIES"),
		SitemapCacheTTL:  v.GetDuration("SITEMAP_CACHE_TTL"),
		SnapshotRefresh:  v.GetString("SNAPSHOT_REFRESH"),

		RateLimit: v.GetInt("RATE_LIMIT"),
	}

	var err error
	cfg.SiteLocales, err = parseLocales(v.GetString("SITE_LOCALES"))
	if err != nil {
		return nil, err
	}
	cfg.DefaultLocale, err = locale.Parse(v.GetString("DEFAULT_LOCALE"))
	if err != nil {
		return nil, fmt.Errorf("DEFAULT_LOCALE: %w", err)
	}
	if !slices.Contains(cfg.SiteLocales, cfg.DefaultLocale) {
		return nil, fmt.Errorf("DEFAULT_LOCALE %s is not one of SITE_LOCALES", cfg.DefaultLocale)
	}

	if cfg.CategoryCacheTTL <= 0 || cfg.ArticleCacheTTL <= 0 || cfg.SitemapCacheTTL <= 0 {
		return nil, errors.New("cache TTLs must be positive durations")
	}
	if cfg.CacheMaxEntries < 1 {
		return nil, errors.New("CACHE_MAX_ENTRIES must be at least 1")
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == "changeme" {
			return nil, errors.New("POSTGRES_PASSWORD must be set in production")
		}
		if cfg.SiteURL == defaults["SITE_URL"] {
			return nil, errors.New("SITE_URL must be set in production")
		}
	}

	return cfg, nil
}

// parseLocales parses a comma-separated locale list, dropping duplicates.
func parseLocales(s string) ([]locale.Locale, error) {
	var out []locale.Locale
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		l, err := locale.Parse(part)
		if err != nil {
			return nil, fmt.Errorf("SITE_LOCALES %q: %w", part, err)
		}
		if !slices.Contains(out, l) {
			out = append(out, l)
		}
	}
	if len(out) == 0 {
		return nil, errors.New("SITE_LOCALES must name at least one locale")
	}
	return out, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// ValkeyAddr returns the Valkey address (host:port).
func (c *Config) ValkeyAddr() string {
	return net.JoinHostPort(c.ValkeyHost, c.ValkeyPort)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Locales returns the locales the site is published in.
func (c *Config) Locales() []locale.Locale {
	return c.SiteLocales
}
