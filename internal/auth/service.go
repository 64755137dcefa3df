// Tactus - Tactile Pattern Library and Composition Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tactus

package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/tactus/internal/apperr"
	"github.com/tomtom215/tactus/internal/config"
	"github.com/tomtom215/tactus/internal/logging"
	"github.com/tomtom215/tactus/internal/metrics"
	"github.com/tomtom215/tactus/internal/models"
	"github.com/tomtom215/tactus/internal/store"
)

// UserService implements registration and login against the users
// collection. Both operations are plain validation-and-passthrough; the
// interesting guarantees (unique usernames) live in the storage layer.
type UserService struct {
	store store.Client
	jwt   *JWTManager
	cfg   *config.SecurityConfig

	// limiters throttles login attempts per username. Entries are never
	// evicted; the username space is bounded by the users collection.
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewUserService creates the account service. jwt may be nil in auth_mode
// none, in which case Login fails with a Dependency error.
func NewUserService(st store.Client, jwt *JWTManager, cfg *config.SecurityConfig) *UserService {
	return &UserService{
		store:    st,
		jwt:      jwt,
		cfg:      cfg,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Register creates a new user account. The username is trimmed and
// lowercased before storage so logins are case-insensitive. The configured
// admin username is granted the admin flag on registration.
func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	if !s.cfg.RegistrationOpen {
		return nil, apperr.New(apperr.Permission, "registration is closed")
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))

	// Pre-emptive uniqueness check; the storage constraint still catches
	// the concurrent-registration race.
	var existing []models.UserRow
	if err := s.store.Find(ctx, store.CollectionUsers, store.Filter{"username": username}, &existing); err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, apperr.New(apperr.Conflict, "username already taken")
	}

	hash, err := HashPassword(req.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.Dependency, "could not hash password", err)
	}

	row := models.UserRow{
		Username:     username,
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: hash,
		Admin:        s.cfg.AdminUsername != "" && username == strings.ToLower(s.cfg.AdminUsername),
		CreatedAt:    time.Now().UTC(),
	}

	var created models.UserRow
	if err := s.store.Insert(ctx, store.CollectionUsers, row, &created); err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().Str("username", created.Username).Bool("admin", created.Admin).Msg("User registered")
	user := created.ToUser()
	return &user, nil
}

// Login verifies credentials and issues a session token. Failed and
// succeeded attempts share one throttle bucket per username so an attacker
// cannot probe without spending attempts.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if s.jwt == nil {
		return nil, apperr.New(apperr.Dependency, "token issuance is not configured")
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))

	if !s.limiter(username).Allow() {
		metrics.LoginAttempts.WithLabelValues("throttled").Inc()
		return nil, apperr.New(apperr.Permission, "too many login attempts, try again later")
	}

	var rows []models.UserRow
	if err := s.store.Find(ctx, store.CollectionUsers, store.Filter{"username": username}, &rows); err != nil {
		return nil, err
	}

	// Run the hash comparison even when the user is unknown so response
	// timing does not reveal which usernames exist.
	hash := "$2a$10$invalidinvalidinvalidinvalidinvalidinvalidinvalidinv"
	if len(rows) == 1 {
		hash = rows[0].PasswordHash
	}
	if !CheckPassword(hash, req.Password) || len(rows) != 1 {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		return nil, apperr.New(apperr.Permission, "invalid username or password")
	}

	user := rows[0].ToUser()
	token, err := s.jwt.GenerateToken(&user)
	if err != nil {
		return nil, apperr.Wrap(apperr.Dependency, "could not issue session token", err)
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	logging.Ctx(ctx).Info().Str("username", user.Username).Msg("User logged in")
	return &models.LoginResponse{Token: token, User: user}, nil
}

// Get loads a user by id for the /auth/me endpoint.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	var row models.UserRow
	if err := s.store.FindOne(ctx, store.CollectionUsers, store.Filter{"id": id}, &row); err != nil {
		return nil, err
	}
	user := row.ToUser()
	return &user, nil
}

// limiter returns the per-username login limiter, creating it on first use.
func (s *UserService) limiter(username string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.limiters[username]
	if !ok {
		perMinute := s.cfg.LoginRatePerMinute
		if perMinute <= 0 {
			perMinute = 5
		}
		l = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
		s.limiters[username] = l
	}
	return l
}
