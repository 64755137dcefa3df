// Tactus - Tactile Pattern Library and Composition Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tactus

// Package config loads application configuration with Koanf v2 in three
// layers, highest priority last:
//
//  1. Built-in defaults (structs provider)
//  2. Optional YAML config file (config.yaml, /etc/tactus/config.yaml, or
//     CONFIG_PATH)
//  3. Environment variables (SERVER_PORT, DATA_API_BASE_URL,
//     SECURITY_JWT_SECRET, ...)
//
// Config is immutable after Load() and safe for concurrent reads.
package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	DataAPI  DataAPIConfig  `koanf:"data_api"`
	API      APIConfig      `koanf:"api"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
//
// Environment variables: SERVER_HOST, SERVER_PORT, SERVER_READ_TIMEOUT,
// SERVER_WRITE_TIMEOUT, SERVER_SHUTDOWN_TIMEOUT.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// DataAPIConfig holds the connection settings for the external REST data
// layer that fronts the relational datastore.
//
// Mock replaces the HTTP client with the in-memory store; it exists for
// development and demos, not production.
//
// Environment variables: DATA_API_BASE_URL, DATA_API_TIMEOUT,
// DATA_API_MOCK.
type DataAPIConfig struct {
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`
	Mock    bool          `koanf:"mock"`
}

// APIConfig holds pagination and response limits.
//
// Environment variables: API_DEFAULT_PAGE_SIZE, API_MAX_PAGE_SIZE.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// SecurityConfig holds authentication and rate limiting settings.
//
// AuthMode is "jwt" (default) or "none" (development only; every request
// acts as a shared admin user and ownership checks always pass).
//
// Environment variables: SECURITY_AUTH_MODE, SECURITY_JWT_SECRET,
// SECURITY_SESSION_TIMEOUT, SECURITY_BCRYPT_COST,
// SECURITY_REGISTRATION_OPEN, SECURITY_ADMIN_USERNAME,
// SECURITY_CORS_ORIGINS (comma-separated), SECURITY_RATE_LIMIT_REQUESTS,
// SECURITY_RATE_LIMIT_WINDOW, SECURITY_RATE_LIMIT_DISABLED.
type SecurityConfig struct {
	AuthMode         string        `koanf:"auth_mode"`
	JWTSecret        string        `koanf:"jwt_secret"`
	SessionTimeout   time.Duration `koanf:"session_timeout"`
	BcryptCost       int           `koanf:"bcrypt_cost"`
	RegistrationOpen bool          `koanf:"registration_open"`

	// AdminUsername names the account that is granted the admin flag when
	// it registers. Existing rows keep whatever flag they have.
	AdminUsername string `koanf:"admin_username"`

	CORSOrigins []string `koanf:"cors_origins"`

	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	// Login attempts allowed per username per minute before throttling.
	LoginRatePerMinute int `koanf:"login_rate_per_minute"`
}

// LoggingConfig holds log output settings.
//
// Environment variables: LOGGING_LEVEL, LOGGING_FORMAT, LOGGING_CALLER.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks cross-field consistency after the layers are merged.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}

	switch c.Security.AuthMode {
	case "jwt":
		if len(c.Security.JWTSecret) < 32 {
			return fmt.Errorf("security.jwt_secret must be at least 32 characters when auth_mode is jwt")
		}
	case "none":
		// Development mode, nothing to check.
	default:
		return fmt.Errorf("security.auth_mode %q must be jwt or none", c.Security.AuthMode)
	}

	if c.Security.BcryptCost < 4 || c.Security.BcryptCost > 31 {
		return fmt.Errorf("security.bcrypt_cost %d out of range (4-31)", c.Security.BcryptCost)
	}

	if !c.DataAPI.Mock && c.DataAPI.BaseURL == "" {
		return fmt.Errorf("data_api.base_url is required unless data_api.mock is enabled")
	}

	if c.API.DefaultPageSize < 1 || c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("api page sizes invalid: default=%d max=%d", c.API.DefaultPageSize, c.API.MaxPageSize)
	}

	return nil
}
