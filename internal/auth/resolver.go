package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/taskflow/taskboard/internal/core/domain"
)

// UserFinder is the part of the user store the resolver needs.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// Resolver turns a request's session cookie into the current identity by
// re-reading the user record the token points at. Only the token's id is
// used; role and profile always come from the store.
type Resolver struct {
	sessions *SessionExtractor
	users    UserFinder
}

func NewResolver(sessions *SessionExtractor, users UserFinder) *Resolver {
	return &Resolver{sessions: sessions, users: users}
}

// Resolve returns nil, nil when the request is anonymous or the user no
// longer exists. An error means the store could not be consulted.
func (r *Resolver) Resolve(ctx context.Context, header http.Header) (*domain.Identity, error) {
	claimed := r.sessions.Extract(header)
	if claimed == nil {
		return nil, nil
	}

	user, err := r.users.FindByID(ctx, claimed.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve identity: %w", err)
	}

	identity := user.Identity()
	return &identity, nil
}
