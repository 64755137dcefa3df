// Tactus - Tactile Pattern Library and Composition Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tactus

package auth

import (
	"testing"
	"time"

	"github.com/tomtom215/tactus/internal/config"
	"github.com/tomtom215/tactus/internal/models"
)

func testSecurityConfig() *config.SecurityConfig {
	return &config.SecurityConfig{
		AuthMode:       "jwt",
		JWTSecret:      "test-secret-that-is-long-enough-for-hs256",
		SessionTimeout: time.Hour,
	}
}

func TestNewJWTManagerRejectsShortSecret(t *testing.T) {
	cfg := testSecurityConfig()
	cfg.JWTSecret = "short"
	if _, err := NewJWTManager(cfg); err == nil {
		t.Fatal("expected error for short secret")
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	m, err := NewJWTManager(testSecurityConfig())
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}

	user := &models.User{ID: "u-1", Username: "alice", Admin: true}
	token, err := m.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != "u-1" || claims.Username != "alice" || !claims.Admin {
		t.Errorf("claims = %+v, want uid=u-1 username=alice admin=true", claims)
	}

	actor := claims.Actor()
	if actor.ID != "u-1" || !actor.Admin {
		t.Errorf("actor = %+v, want ID=u-1 Admin=true", actor)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	m1, _ := NewJWTManager(testSecurityConfig())

	other := testSecurityConfig()
	other.JWTSecret = "a-completely-different-secret-also-long-enough"
	m2, _ := NewJWTManager(other)

	token, err := m1.GenerateToken(&models.User{ID: "u-1", Username: "alice"})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := m2.ValidateToken(token); err == nil {
		t.Fatal("expected validation to fail with a different secret")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	cfg := testSecurityConfig()
	cfg.SessionTimeout = -time.Minute
	m, _ := NewJWTManager(cfg)

	token, err := m.GenerateToken(&models.User{ID: "u-1", Username: "alice"})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := m.ValidateToken(token); err == nil {
		t.Fatal("expected validation to fail for an expired token")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	m, _ := NewJWTManager(testSecurityConfig())
	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := m.ValidateToken(token); err == nil {
			t.Errorf("ValidateToken(%q) succeeded, want error", token)
		}
	}
}

func TestActorCanModify(t *testing.T) {
	owner := "u-1"
	tests := []struct {
		name    string
		actor   *Actor
		ownerID *string
		want    bool
	}{
		{"nil actor", nil, &owner, false},
		{"owner", &Actor{ID: "u-1"}, &owner, true},
		{"other user", &Actor{ID: "u-2"}, &owner, false},
		{"admin over other user", &Actor{ID: "u-2", Admin: true}, &owner, true},
		{"orphaned resource", &Actor{ID: "u-1"}, nil, false},
		{"admin over orphaned resource", &Actor{ID: "u-2", Admin: true}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.actor.CanModify(tt.ownerID); got != tt.want {
				t.Errorf("CanModify() = %v, want %v", got, tt.want)
			}
		})
	}
}
