package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskflow/taskboard/internal/core/domain"
	"github.com/taskflow/taskboard/internal/core/ports"
)

// UserService implements account management.
type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Create validates the input, hashes the password and stores the account.
func (s *UserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	switch {
	case strings.TrimSpace(in.FullName) == "":
		return nil, domain.MissingField("fullName")
	case strings.TrimSpace(in.Email) == "":
		return nil, domain.MissingField("email")
	case in.Role == "":
		return nil, domain.MissingField("role")
	case in.Password == "":
		return nil, domain.MissingField("password")
	}

	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, domain.InvalidField("role", "must be one of Administrator, Project_Manager, Colaborator")
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Name:         strings.TrimSpace(in.FullName),
		Email:        domain.NormalizeEmail(in.Email),
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user created")
	return created, nil
}

// Update applies the non-empty fields of in.
func (s *UserService) Update(ctx context.Context, id string, in ports.UpdateUserInput) error {
	var upd ports.UserUpdate
	if name := strings.TrimSpace(in.FullName); name != "" {
		upd.Name = &name
	}
	if in.Email != "" {
		email := domain.NormalizeEmail(in.Email)
		upd.Email = &email
	}
	if in.Role != "" {
		role, err := domain.ParseRole(in.Role)
		if err != nil {
			return domain.InvalidField("role", "must be one of Administrator, Project_Manager, Colaborator")
		}
		upd.Role = &role
	}
	if in.Password != "" {
		hash, err := hashPassword(in.Password)
		if err != nil {
			return err
		}
		upd.PasswordHash = &hash
	}

	if err := s.repo.Update(ctx, id, upd); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Msg("user updated")
	return nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
