package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskflow/taskboard/internal/core/domain"
	"github.com/taskflow/taskboard/internal/core/ports"
)

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(identity domain.Identity) (string, error)
}

// AuthService implements the login flow.
type AuthService struct {
	users   ports.UserRepository
	tokens  TokenIssuer
	limiter ports.LoginLimiter
	log     zerolog.Logger
}

// NewAuthService builds an AuthService. limiter may be nil to disable throttling.
func NewAuthService(users ports.UserRepository, tokens TokenIssuer, limiter ports.LoginLimiter, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, limiter: limiter, log: log}
}

// decoyHash is compared against when the email is unknown so that both
// failure paths spend the same bcrypt work.
var decoyHash = sync.OnceValue(func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("decoy-password"), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("auth: generate decoy hash: %v", err))
	}
	return h
})

// Login verifies email and password and issues a session token.
//
// Missing fields are reported before any store access. An unknown email and
// a wrong password both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if strings.TrimSpace(email) == "" {
		return nil, domain.MissingField("email")
	}
	if password == "" {
		return nil, domain.MissingField("password")
	}
	key := domain.NormalizeEmail(email)

	if s.limiter != nil {
		allowed, err := s.limiter.Allowed(ctx, key)
		if err != nil {
			s.log.Warn().Err(err).Msg("login limiter unavailable, evaluating attempt")
		} else if !allowed {
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByEmail(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("login: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(decoyHash(), []byte(password))
		return nil, s.failed(ctx, key)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, s.failed(ctx, key)
	}

	identity := domain.Identity{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
	}
	token, err := s.tokens.Issue(identity)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, key); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset login limiter")
		}
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")

	return &ports.LoginResult{
		Identity:   identity,
		Token:      token,
		RedirectTo: domain.LandingPage(user.Role),
	}, nil
}

func (s *AuthService) failed(ctx context.Context, key string) error {
	if s.limiter != nil {
		if err := s.limiter.RecordFailure(ctx, key); err != nil {
			s.log.Warn().Err(err).Msg("failed to record login failure")
		}
	}
	return domain.ErrInvalidCredentials
}
