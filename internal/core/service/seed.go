package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/taskflow/taskboard/internal/core/domain"
	"github.com/taskflow/taskboard/internal/core/ports"
)

var demoUsers = []ports.CreateUserInput{
	{FullName: "Admin", Email: "admin@example.com", Password: "admin123", Role: string(domain.RoleAdministrator)},
	{FullName: "Project Manager", Email: "pm@example.com", Password: "pm123", Role: string(domain.RoleProjectManager)},
	{FullName: "Collaborator", Email: "colab@example.com", Password: "colab123", Role: string(domain.RoleCollaborator)},
}

// SeedDemoUsers creates one account per role, skipping emails already taken.
func (s *UserService) SeedDemoUsers(ctx context.Context) error {
	for _, in := range demoUsers {
		_, err := s.Create(ctx, in)
		switch {
		case err == nil:
		case errors.Is(err, domain.ErrUserExists):
			s.log.Debug().Str("email", in.Email).Msg("demo user already present")
		default:
			return fmt.Errorf("seed %s: %w", in.Email, err)
		}
	}
	return nil
}
