// Tactus - Tactile Pattern Library and Composition Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tactus

package config

import (
	"strings"
	"testing"
)

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"SERVER_PORT", "server.port"},
		{"SERVER_SHUTDOWN_TIMEOUT", "server.shutdown_timeout"},
		{"DATA_API_BASE_URL", "data_api.base_url"},
		{"DATA_API_MOCK", "data_api.mock"},
		{"API_MAX_PAGE_SIZE", "api.max_page_size"},
		{"SECURITY_JWT_SECRET", "security.jwt_secret"},
		{"LOGGING_LEVEL", "logging.level"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := envTransformFunc(tt.in); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := defaultConfig()
		cfg.Security.JWTSecret = strings.Repeat("s", 32)
		cfg.DataAPI.BaseURL = "http://localhost:3000"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "short jwt secret",
			mutate:  func(c *Config) { c.Security.JWTSecret = "short" },
			wantErr: "jwt_secret",
		},
		{
			name: "auth mode none needs no secret",
			mutate: func(c *Config) {
				c.Security.AuthMode = "none"
				c.Security.JWTSecret = ""
			},
		},
		{
			name:    "unknown auth mode",
			mutate:  func(c *Config) { c.Security.AuthMode = "basic" },
			wantErr: "auth_mode",
		},
		{
			name:    "missing data layer URL",
			mutate:  func(c *Config) { c.DataAPI.BaseURL = "" },
			wantErr: "base_url",
		},
		{
			name: "mock mode allows missing URL",
			mutate: func(c *Config) {
				c.DataAPI.BaseURL = ""
				c.DataAPI.Mock = true
			},
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "port",
		},
		{
			name:    "bcrypt cost out of range",
			mutate:  func(c *Config) { c.Security.BcryptCost = 2 },
			wantErr: "bcrypt_cost",
		},
		{
			name:    "max page below default",
			mutate:  func(c *Config) { c.API.MaxPageSize = 1 },
			wantErr: "page sizes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultsAreValidWithMock(t *testing.T) {
	cfg := defaultConfig()
	cfg.Security.AuthMode = "none"
	cfg.DataAPI.Mock = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults with mock + no auth should validate: %v", err)
	}
}
