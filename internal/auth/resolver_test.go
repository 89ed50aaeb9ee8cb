package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"

	"github.com/taskflow/taskboard/internal/core/domain"
)

type stubFinder struct {
	users map[string]*domain.User
	err   error
}

func (f *stubFinder) FindByID(_ context.Context, id string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func cookieHeader(t *testing.T, c *TokenCodec, id domain.Identity) http.Header {
	t.Helper()
	token, err := c.Issue(id)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return http.Header{"Cookie": {CookieName + "=" + token}}
}

func TestResolver_UsesStoredRole(t *testing.T) {
	c := mustCodec(t, "secret")
	finder := &stubFinder{users: map[string]*domain.User{
		"u-1": {ID: "u-1", Name: "Demoted", Email: "admin@example.com", Role: domain.RoleCollaborator},
	}}
	r := NewResolver(NewSessionExtractor(c, zerolog.Nop()), finder)

	// The token still says Administrator.
	id, err := r.Resolve(context.Background(), cookieHeader(t, c, testIdentity()))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if id == nil || id.Role != domain.RoleCollaborator {
		t.Fatalf("expected stored role Colaborator, got %+v", id)
	}
	if id.Name == nil || *id.Name != "Demoted" {
		t.Fatalf("expected stored name, got %v", id.Name)
	}
}

func TestResolver_DeletedUserIsAnonymous(t *testing.T) {
	c := mustCodec(t, "secret")
	r := NewResolver(NewSessionExtractor(c, zerolog.Nop()), &stubFinder{users: map[string]*domain.User{}})

	id, err := r.Resolve(context.Background(), cookieHeader(t, c, testIdentity()))
	if err != nil || id != nil {
		t.Fatalf("expected anonymous, got %+v (%v)", id, err)
	}
}

func TestResolver_NoCookieSkipsStore(t *testing.T) {
	c := mustCodec(t, "secret")
	finder := &stubFinder{err: errors.New("must not be called")}
	r := NewResolver(NewSessionExtractor(c, zerolog.Nop()), finder)

	id, err := r.Resolve(context.Background(), http.Header{})
	if err != nil || id != nil {
		t.Fatalf("expected anonymous, got %+v (%v)", id, err)
	}
}

func TestResolver_StoreFailure(t *testing.T) {
	c := mustCodec(t, "secret")
	boom := errors.New("connection refused")
	r := NewResolver(NewSessionExtractor(c, zerolog.Nop()), &stubFinder{err: boom})

	_, err := r.Resolve(context.Background(), cookieHeader(t, c, testIdentity()))
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}
