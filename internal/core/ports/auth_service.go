package ports

import (
	"context"

	"github.com/taskflow/taskboard/internal/core/domain"
)

// LoginResult is returned by a successful login.
type LoginResult struct {
	Identity   domain.Identity
	Token      string
	RedirectTo string
}

// AuthService verifies credentials and issues session tokens.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}
