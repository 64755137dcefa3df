// Tactus - Tactile Pattern Library and Composition Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tactus

package auth

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/tactus/internal/apperr"
	"github.com/tomtom215/tactus/internal/models"
	"github.com/tomtom215/tactus/internal/store"
)

func newTestService(t *testing.T) *UserService {
	t.Helper()

	cfg := testSecurityConfig()
	cfg.BcryptCost = bcrypt.MinCost
	cfg.RegistrationOpen = true
	cfg.AdminUsername = "root"
	cfg.LoginRatePerMinute = 100

	jwt, err := NewJWTManager(cfg)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}
	return NewUserService(store.NewMemory(), jwt, cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, &models.RegisterRequest{
		Username: "Alice",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("username = %q, want lowercased %q", user.Username, "alice")
	}
	if user.Admin {
		t.Error("regular user should not be admin")
	}

	resp, err := svc.Login(ctx, &models.LoginRequest{Username: "ALICE", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a session token")
	}
	if resp.User.ID != user.ID {
		t.Errorf("login user id = %q, want %q", resp.User.ID, user.ID)
	}

	got, err := svc.Get(ctx, user.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Username != "alice" {
		t.Errorf("Get username = %q, want alice", got.Username)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &models.RegisterRequest{Username: "bob", Password: "password1"}); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := svc.Register(ctx, &models.RegisterRequest{Username: "Bob", Password: "password2"})
	if !apperr.IsKind(err, apperr.Conflict) {
		t.Errorf("duplicate register error = %v, want Conflict", err)
	}
}

func TestRegisterClosed(t *testing.T) {
	svc := newTestService(t)
	svc.cfg.RegistrationOpen = false

	_, err := svc.Register(context.Background(), &models.RegisterRequest{Username: "carol", Password: "password1"})
	if !apperr.IsKind(err, apperr.Permission) {
		t.Errorf("register while closed = %v, want Permission", err)
	}
}

func TestRegisterAdminUsername(t *testing.T) {
	svc := newTestService(t)

	user, err := svc.Register(context.Background(), &models.RegisterRequest{Username: "Root", Password: "password1"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !user.Admin {
		t.Error("configured admin username should be granted the admin flag")
	}
}

func TestLoginFailures(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &models.RegisterRequest{Username: "dave", Password: "password1"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "dave", "wrong"},
		{"unknown user", "nobody", "password1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, &models.LoginRequest{Username: tt.username, Password: tt.password})
			if !apperr.IsKind(err, apperr.Permission) {
				t.Errorf("Login error = %v, want Permission", err)
			}
		})
	}
}

func TestLoginThrottled(t *testing.T) {
	svc := newTestService(t)
	svc.cfg.LoginRatePerMinute = 2
	ctx := context.Background()

	// Burn the burst allowance with failed attempts, then verify the next
	// attempt is rejected by the throttle rather than the password check.
	for i := 0; i < 2; i++ {
		_, _ = svc.Login(ctx, &models.LoginRequest{Username: "eve", Password: "nope"})
	}

	_, err := svc.Login(ctx, &models.LoginRequest{Username: "eve", Password: "nope"})
	if !apperr.IsKind(err, apperr.Permission) {
		t.Fatalf("throttled login error = %v, want Permission", err)
	}
	if apperr.MessageOf(err) == "invalid username or password" {
		t.Error("expected the throttle message, not the credential failure message")
	}

	// Other usernames keep their own bucket.
	_, err = svc.Login(ctx, &models.LoginRequest{Username: "frank", Password: "nope"})
	if apperr.MessageOf(err) != "invalid username or password" {
		t.Errorf("unrelated username was throttled: %v", err)
	}
}
