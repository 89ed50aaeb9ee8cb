package ports

import (
	"context"

	"github.com/taskflow/taskboard/internal/core/domain"
)

// UserUpdate carries the fields a partial user update may change.
// Nil fields are left untouched.
type UserUpdate struct {
	Name         *string
	Email        *string
	Role         *domain.Role
	PasswordHash *string
	AvatarURL    *string
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// FindByID returns domain.ErrUserNotFound when no record matches.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByEmail returns domain.ErrUserNotFound when no record matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// List returns every user ordered by name.
	List(ctx context.Context) ([]*domain.User, error)
	// Create returns domain.ErrUserExists on a duplicate email.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, id string, update UserUpdate) error
	Delete(ctx context.Context, id string) error
}
